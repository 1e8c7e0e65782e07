package util

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

func isTTY(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

// ShouldShowProgress は --progress / --no-progress と TTY 判定から表示有無を決めます。
func ShouldShowProgress(force, no bool) bool {
	if no {
		return false
	}
	if force {
		return true
	}
	return isTTY(os.Stdout) && isTTY(os.Stderr)
}

// Progress prints a single "[progress] n/total (p%) ETA" line, rewritten in place.
type Progress struct {
	mu       sync.Mutex
	out      io.Writer
	total    int
	done     int
	start    time.Time
	lastDraw time.Time
	enabled  bool
}

// drawInterval bounds redraws when workers advance quickly.
const drawInterval = 100 * time.Millisecond

func NewProgress(total int, enabled bool) *Progress {
	return &Progress{out: os.Stderr, total: total, start: time.Now(), enabled: enabled}
}

// SetOutput redirects the progress line, mainly for tests.
func (p *Progress) SetOutput(w io.Writer) {
	p.mu.Lock()
	p.out = w
	p.mu.Unlock()
}

// Advance marks one more unit done. Safe for concurrent use.
func (p *Progress) Advance() {
	if !p.enabled {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.done++
	now := time.Now()
	if p.done < p.total && now.Sub(p.lastDraw) < drawInterval {
		return
	}
	p.lastDraw = now
	p.draw(p.done)
}

func (p *Progress) draw(done int) {
	elapsed := time.Since(p.start)
	eta := "-"
	if done > 0 && done <= p.total {
		remain := time.Duration(float64(elapsed) * float64(p.total-done) / float64(done))
		eta = fmt.Sprintf("%02d:%02d:%02d", int(remain.Hours()), int(remain.Minutes())%60, int(remain.Seconds())%60)
	}
	// clear line and print
	fmt.Fprintf(p.out, "\r\033[K[progress] %d/%d files (%d%%) ETA %s",
		done, p.total, percent(done, p.total), eta)
}

func (p *Progress) Done() {
	if !p.enabled {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprint(p.out, "\r\033[K")
}

func percent(a, b int) int {
	if b == 0 || a >= b {
		return 100
	}
	return int(float64(a) * 100 / float64(b))
}
