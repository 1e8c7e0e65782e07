package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"unicode/utf8"

	"github.com/viant/afs"
)

var (
	ErrTooLarge = errors.New("file exceeds size limit")
	ErrBinary   = errors.New("binary file")
	ErrNotUTF8  = errors.New("file is not valid UTF-8")
)

// binarySniffLen は NUL バイト検査の対象とする先頭バイト数です。
const binarySniffLen = 8000

// Reader loads repository files through afs and enforces the read preconditions.
type Reader struct {
	fs       afs.Service
	root     string
	maxBytes int64
}

// NewReader returns a reader rooted at root. maxBytes <= 0 disables the size gate.
func NewReader(root string, maxBytes int64) *Reader {
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}
	return &Reader{fs: afs.New(), root: root, maxBytes: maxBytes}
}

// Read returns the content of a repo-relative path.
func (r *Reader) Read(ctx context.Context, rel string) (string, error) {
	location := filepath.Join(r.root, filepath.FromSlash(rel))
	if r.maxBytes > 0 {
		obj, err := r.fs.Object(ctx, location)
		if err != nil {
			return "", fmt.Errorf("stat %s: %w", rel, err)
		}
		if obj.Size() > r.maxBytes {
			return "", fmt.Errorf("%s (%d > %d bytes): %w", rel, obj.Size(), r.maxBytes, ErrTooLarge)
		}
	}
	data, err := r.fs.DownloadWithURL(ctx, location)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", rel, err)
	}
	sniff := data
	if len(sniff) > binarySniffLen {
		sniff = sniff[:binarySniffLen]
	}
	if bytes.IndexByte(sniff, 0) >= 0 {
		return "", fmt.Errorf("%s: %w", rel, ErrBinary)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%s: %w", rel, ErrNotUTF8)
	}
	return string(data), nil
}

// IsSkippable reports whether err is a precondition failure rather than an I/O error.
func IsSkippable(err error) bool {
	return errors.Is(err, ErrTooLarge) || errors.Is(err, ErrBinary) || errors.Is(err, ErrNotUTF8)
}
