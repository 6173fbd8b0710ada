// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"fmt"
	"io"
	"os"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"
	"github.com/ik5/smplhlpr/audio"
	"github.com/ik5/smplhlpr/utils"
)

// Encoder writes a Buffer as 16-bit PCM AIFF.
//
// go-audio patches the chunk sizes on Close, so the output has to be
// seekable. Writers that are not an io.WriteSeeker get the file staged in
// a temporary file that is then copied to them.
type Encoder struct{}

func (e Encoder) Encode(w io.Writer, buf *audio.Buffer) error {
	if buf == nil {
		return audio.ErrEmptyBuffer
	}

	if ws, ok := w.(io.WriteSeeker); ok {
		return e.encode(ws, buf)
	}

	tmp, err := os.CreateTemp("", "smplhlpr-*.aiff")
	if err != nil {
		return fmt.Errorf("staging aiff: %w", err)
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	if err := e.encode(tmp, buf); err != nil {
		return err
	}

	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("%w", err)
	}

	if _, err := io.Copy(w, tmp); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

func (Encoder) encode(w io.WriteSeeker, buf *audio.Buffer) error {
	enc := aiff.NewEncoder(w, buf.SampleRate(), 16, buf.Channels())

	data := make([]int, buf.Len())
	for i, v := range buf.Samples() {
		data[i] = int(utils.Float32ToInt16(v))
	}

	ib := &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: buf.Channels(),
			SampleRate:  buf.SampleRate(),
		},
		Data:           data,
		SourceBitDepth: 16,
	}

	if err := enc.Write(ib); err != nil {
		return fmt.Errorf("writing aiff: %w", err)
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("closing aiff: %w", err)
	}

	return nil
}
