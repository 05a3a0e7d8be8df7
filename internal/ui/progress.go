package ui

import (
	"io"
	"sync"

	"github.com/cheggaaa/pb/v3"
)

const progressTemplate = `{{string . "table" | printf "%-11s"}} {{counters . }} {{bar . "[" "=" ">" " " "]"}} {{percent . }}`

// LoadProgress draws one byte-counting bar per table while it is read
type LoadProgress struct {
	mu   sync.Mutex
	out  io.Writer
	bars []*pb.ProgressBar
}

// NewLoadProgress creates progress bars that write to out
func NewLoadProgress(out io.Writer) *LoadProgress {
	return &LoadProgress{out: out}
}

// Wrap starts a bar for the named table and returns a reader that advances it.
// It matches dataset.ReaderWrapper.
func (p *LoadProgress) Wrap(name string, r io.Reader, size int64) io.Reader {
	if size < 0 {
		size = 0
	}
	bar := pb.New64(size).
		Set(pb.Bytes, true).
		Set("table", name).
		SetTemplateString(progressTemplate).
		SetWriter(p.out)
	bar.Start()

	p.mu.Lock()
	p.bars = append(p.bars, bar)
	p.mu.Unlock()

	return bar.NewProxyReader(r)
}

// Finish completes every bar started so far
func (p *LoadProgress) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, bar := range p.bars {
		bar.Finish()
	}
	p.bars = nil
}
