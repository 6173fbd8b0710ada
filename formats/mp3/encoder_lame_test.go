// SPDX-License-Identifier: EPL-2.0

//go:build lame

package mp3

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/ik5/smplhlpr/audio"
)

func TestEncoder_RoundTrip(t *testing.T) {
	t.Parallel()

	const rate = 44100
	samples := make([]float32, rate*2)
	for i := range rate {
		v := float32(0.5 * math.Sin(2*math.Pi*440*float64(i)/rate))
		samples[2*i], samples[2*i+1] = v, v
	}

	in, err := audio.NewBuffer(samples, rate, 2, 16)
	if err != nil {
		t.Fatal(err)
	}

	out := new(bytes.Buffer)
	if err := (Encoder{}).Encode(out, in); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	src, err := Decoder{}.Decode(bytes.NewReader(out.Bytes()))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	got, err := audio.Collect(src)
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}

	if got.SampleRate() != rate {
		t.Errorf("SampleRate() = %d, want %d", got.SampleRate(), rate)
	}

	// encoder padding adds frames, never removes them
	if got.Frames() < in.Frames() {
		t.Errorf("decoded %d frames, want at least %d", got.Frames(), in.Frames())
	}
}

func TestEncoder_TooManyChannels(t *testing.T) {
	t.Parallel()

	in, _ := audio.NewBuffer(make([]float32, 6), 8000, 3, 16)

	err := (Encoder{}).Encode(new(bytes.Buffer), in)
	if !errors.Is(err, ErrUnsupportedChannels) {
		t.Errorf("Encode() error = %v, want ErrUnsupportedChannels", err)
	}
}
