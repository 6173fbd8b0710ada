// SPDX-License-Identifier: EPL-2.0

package output

import (
	"context"
	"io"
	"slices"
	"sync"

	"github.com/ik5/smplhlpr/audio"
)

// convertFrames is how many output frames the converter renders per pipe
// write.
const convertFrames = 256

// format is a sample rate and channel count.
type format struct {
	sampleRate int
	channels   int
}

// feed is a Source fed by converter.Write. ReadSamples blocks until a
// chunk arrives, the feed is closed (io.EOF) or aborted.
type feed struct {
	format
	chunks chan []float32
	eof    chan struct{}
	abort  chan struct{}
	cur    []float32
}

func (f *feed) SampleRate() int { return f.sampleRate }
func (f *feed) Channels() int   { return f.channels }
func (f *feed) BufSize() int    { return 4096 }
func (f *feed) Close() error    { return nil }

func (f *feed) ReadSamples(dst []float32) (int, error) {
	for len(f.cur) == 0 {
		select {
		case c := <-f.chunks:
			f.cur = c
		case <-f.eof:
			return 0, io.EOF
		case <-f.abort:
			return 0, io.ErrClosedPipe
		}
	}

	n := copy(dst, f.cur)
	f.cur = f.cur[n:]

	return n, nil
}

// converter remixes and resamples a session to the format the output
// runs at, writing 16-bit PCM to w from its own goroutine.
type converter struct {
	in  *feed
	src audio.Source
	w   *io.PipeWriter

	closeOnce sync.Once
	abortOnce sync.Once

	// err is written before finished is closed.
	finished chan struct{}
	err      error
}

func newConverter(from, to format, w *io.PipeWriter) *converter {
	in := &feed{
		format: from,
		chunks: make(chan []float32),
		eof:    make(chan struct{}),
		abort:  make(chan struct{}),
	}

	var src audio.Source = in
	if from.channels != to.channels {
		src = audio.NewRemix(src, to.channels)
	}
	if from.sampleRate != to.sampleRate {
		src = audio.NewResampler(src, to.sampleRate)
	}

	c := &converter{
		in:       in,
		src:      src,
		w:        w,
		finished: make(chan struct{}),
	}
	go c.run(make([]float32, convertFrames*to.channels))

	return c
}

func (c *converter) run(buf []float32) {
	defer close(c.finished)

	var pcm []byte
	for {
		n, err := c.src.ReadSamples(buf)
		if n > 0 {
			pcm = appendInt16LE(pcm[:0], buf[:n])
			if _, werr := c.w.Write(pcm); werr != nil {
				c.err = werr
				return
			}
		}

		switch {
		case err == io.EOF:
			c.err = c.w.Close()
			return
		case err != nil:
			c.err = err
			_ = c.w.CloseWithError(err)
			return
		}
	}
}

// Write hands samples to the converter and returns once it has taken them.
func (c *converter) Write(ctx context.Context, samples []float32) error {
	select {
	case c.in.chunks <- slices.Clone(samples):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-c.in.eof:
		return io.ErrClosedPipe
	case <-c.in.abort:
		return io.ErrClosedPipe
	case <-c.finished:
		if c.err != nil {
			return c.err
		}
		return io.ErrClosedPipe
	}
}

// Close flushes what is left and closes the pipe.
func (c *converter) Close(ctx context.Context) error {
	c.closeOnce.Do(func() { close(c.in.eof) })

	select {
	case <-c.finished:
		return c.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Abort stops the converter without flushing and waits for its goroutine.
// The pipe must already be closed so a pending write returns.
func (c *converter) Abort() {
	c.abortOnce.Do(func() { close(c.in.abort) })
	<-c.finished
}
