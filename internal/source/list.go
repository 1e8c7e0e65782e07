// Package source enumerates and loads the files a check run inspects.
package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/phyten/hatchgate/internal/execx"
)

// ErrNotGitRepo は root が git の作業ツリーでないことを表します。
var ErrNotGitRepo = errors.New("not a git work tree")

// ListOptions は走査対象の列挙条件です。
type ListOptions struct {
	Root           string
	Paths          []string
	Excludes       []string
	PathRegex      []string
	ExcludeTypical bool
	NoGit          bool
	Runner         execx.Runner
}

// List returns repo-relative, slash-separated paths of regular files, sorted.
// Without NoGit the list comes from git; a root outside any work tree falls
// back to a filesystem walk with the same include and exclude rules.
func List(ctx context.Context, opts ListOptions) ([]string, error) {
	rx, err := CompilePathRegex(opts.PathRegex)
	if err != nil {
		return nil, fmt.Errorf("invalid path regex: %w", err)
	}
	root := opts.Root
	if root == "" {
		root = "."
	}

	var files []string
	useWalk := opts.NoGit
	if !useWalk {
		files, err = gitLsFiles(ctx, root, opts)
		switch {
		case errors.Is(err, ErrNotGitRepo):
			useWalk = true
		case err != nil:
			return nil, err
		}
	}
	if useWalk {
		files, err = walk(ctx, root, opts)
		if err != nil {
			return nil, err
		}
	}

	files = filterByPathRegex(files, rx)
	sort.Strings(files)
	return files, nil
}

func gitLsFiles(ctx context.Context, root string, opts ListOptions) ([]string, error) {
	runner := opts.Runner
	if runner == nil {
		runner = execx.DefaultRunner()
	}
	args := []string{"-c", "core.quotePath=false", "ls-files", "-z", "--cached", "--others", "--exclude-standard", "--"}
	args = append(args, buildPathspecs(opts.Paths, opts.Excludes, opts.ExcludeTypical)...)
	stdout, stderr, err := runner.Run(ctx, root, "git", args...)
	if err != nil {
		if execx.IsNotFound(err) || execx.ExitCode(err) == 128 {
			return nil, ErrNotGitRepo
		}
		return nil, execx.Wrap("git ls-files", stderr, err)
	}

	seen := make(map[string]bool)
	var files []string
	for _, raw := range bytes.Split(stdout, []byte{0}) {
		rel := filepath.ToSlash(string(raw))
		if rel == "" || seen[rel] {
			continue
		}
		seen[rel] = true
		// 削除済みやサブモジュールは除外
		fi, err := os.Lstat(filepath.Join(root, filepath.FromSlash(rel)))
		if err != nil || !fi.Mode().IsRegular() {
			continue
		}
		files = append(files, rel)
	}
	return files, nil
}

func walk(ctx context.Context, root string, opts ListOptions) ([]string, error) {
	includes := make([]string, 0, len(opts.Paths))
	for _, p := range opts.Paths {
		p = strings.TrimSpace(filepath.ToSlash(p))
		p = strings.TrimPrefix(stripMagic(p), "./")
		p = strings.TrimSuffix(p, "/")
		if p != "" && p != "." {
			includes = append(includes, p)
		}
	}
	excludes := walkExcludes(opts.Excludes, opts.ExcludeTypical)

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			if rel != "." && matchAny(excludes, rel) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if !included(includes, rel) || matchAny(excludes, rel) {
			return nil
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	return files, nil
}

func included(includes []string, rel string) bool {
	if len(includes) == 0 {
		return true
	}
	for _, inc := range includes {
		if rel == inc || strings.HasPrefix(rel, inc+"/") {
			return true
		}
		if ok, _ := doublestar.Match(inc, rel); ok {
			return true
		}
	}
	return false
}

func matchAny(patterns []string, rel string) bool {
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}
