// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"errors"
	"io"
	"testing"

	goaudio "github.com/go-audio/audio"
)

// mockAiffReader simulates the aiff.Decoder for testing
type mockAiffReader struct {
	sampleRate   int
	channels     int
	samples      []int
	offset       int
	returnErrors bool
}

func (m *mockAiffReader) Format() *goaudio.Format {
	return &goaudio.Format{
		SampleRate:  m.sampleRate,
		NumChannels: m.channels,
	}
}

func (m *mockAiffReader) PCMBuffer(buf *goaudio.IntBuffer) (int, error) {
	if m.returnErrors {
		return 0, io.ErrUnexpectedEOF
	}

	if m.offset >= len(m.samples) {
		return 0, io.EOF
	}

	n := copy(buf.Data, m.samples[m.offset:])
	m.offset += n

	if m.offset >= len(m.samples) {
		return n, io.EOF
	}

	return n, nil
}

func newMockSource(bits, channels int, samples []int) *source {
	return &source{
		dec: &mockAiffReader{
			sampleRate: 44100,
			channels:   channels,
			samples:    samples,
		},
		sampleRate: 44100,
		channels:   channels,
		bitDepth:   bits,
	}
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
	}{
		{"garbage", []byte("This is not AIFF data")},
		{"empty", []byte{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Decoder{}.Decode(bytes.NewReader(tt.data))
			if !errors.Is(err, ErrNotAiffFile) {
				t.Errorf("Decode() error = %v, want ErrNotAiffFile", err)
			}
		})
	}
}

func TestSource_Metadata(t *testing.T) {
	t.Parallel()

	src := newMockSource(24, 2, make([]int, 100))

	if src.SampleRate() != 44100 {
		t.Errorf("SampleRate() = %d, want 44100", src.SampleRate())
	}
	if src.Channels() != 2 {
		t.Errorf("Channels() = %d, want 2", src.Channels())
	}
	if src.BitDepth() != 24 {
		t.Errorf("BitDepth() = %d, want 24", src.BitDepth())
	}
	if err := src.Close(); err != nil {
		t.Errorf("Close() error = %v, want nil", err)
	}
}

func TestSource_ReadSamples(t *testing.T) {
	t.Parallel()

	testSamples := []int{0, 16384, -16384, 32767, -32768}
	src := newMockSource(16, 1, testSamples)

	dst := make([]float32, len(testSamples))
	n, err := src.ReadSamples(dst)

	if err != nil && err != io.EOF {
		t.Fatalf("ReadSamples() error = %v, want nil or EOF", err)
	}
	if n != len(testSamples) {
		t.Fatalf("ReadSamples() n = %d, want %d", n, len(testSamples))
	}

	expected := []float32{0.0, 0.5, -0.5, 32767.0 / 32768.0, -1.0}
	for i := range n {
		if dst[i] != expected[i] {
			t.Errorf("dst[%d] = %f, want %f", i, dst[i], expected[i])
		}
	}
}

func TestSource_ReadSamples_EmptyBuffer(t *testing.T) {
	t.Parallel()

	n, err := newMockSource(16, 2, make([]int, 100)).ReadSamples(nil)
	if n != 0 || err != nil {
		t.Errorf("ReadSamples(nil) = %d, %v, want 0, nil", n, err)
	}
}

func TestSource_ReadSamples_Chunks(t *testing.T) {
	t.Parallel()

	src := newMockSource(16, 1, []int{100, 200, 300, 400, 500})
	dst := make([]float32, 2)

	steps := []struct {
		n   int
		err error
	}{
		{2, nil},
		{2, nil},
		{1, io.EOF},
		{0, io.EOF},
	}

	for i, want := range steps {
		n, err := src.ReadSamples(dst)
		if n != want.n || err != want.err {
			t.Errorf("read %d = %d, %v, want %d, %v", i, n, err, want.n, want.err)
		}
	}
}

func TestSource_ReadSamples_Error(t *testing.T) {
	t.Parallel()

	src := newMockSource(16, 1, []int{100, 200})
	src.dec.(*mockAiffReader).returnErrors = true

	_, err := src.ReadSamples(make([]float32, 10))
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("ReadSamples() error = %v, want io.ErrUnexpectedEOF", err)
	}
}

func TestSource_BufSize(t *testing.T) {
	t.Parallel()

	src := newMockSource(16, 2, make([]int, 100))

	if got := src.BufSize(); got != 4096 {
		t.Errorf("BufSize() = %d, want 4096 before the first read", got)
	}

	src.ReadSamples(make([]float32, 100))

	if got := src.BufSize(); got < 100 {
		t.Errorf("BufSize() = %d, want >= 100", got)
	}
}

func TestSource_BitDepthNormalization(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		bitDepth int
		input    int
		expected float32
	}{
		{"8-bit max", 8, 127, 127.0 / 128.0},
		{"8-bit min", 8, -128, -1.0},
		{"16-bit max", 16, 32767, 32767.0 / 32768.0},
		{"16-bit min", 16, -32768, -1.0},
		{"24-bit", 24, 8388607, 32767.0 / 32768.0},
		{"32-bit", 32, -2147483648, -1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dst := make([]float32, 1)
			n, _ := newMockSource(tt.bitDepth, 1, []int{tt.input}).ReadSamples(dst)

			if n != 1 {
				t.Fatalf("ReadSamples() n = %d, want 1", n)
			}
			if dst[0] != tt.expected {
				t.Errorf("dst[0] = %f, want %f", dst[0], tt.expected)
			}
		})
	}
}

func TestErrors_Messages(t *testing.T) {
	t.Parallel()

	seen := map[string]bool{}
	for _, err := range []error{ErrNotAiffFile, ErrUnsupportedBitDepth, ErrUnsupportedAiffLayout} {
		if seen[err.Error()] {
			t.Errorf("duplicate error message %q", err.Error())
		}
		seen[err.Error()] = true
	}
}

func BenchmarkSource_ReadSamples(b *testing.B) {
	samples := make([]int, 4096)
	for i := range samples {
		samples[i] = i * 8
	}

	src := newMockSource(16, 2, samples)
	dst := make([]float32, 1024)

	for b.Loop() {
		src.dec.(*mockAiffReader).offset = 0

		for {
			n, err := src.ReadSamples(dst)
			if err == io.EOF || n == 0 {
				break
			}
		}
	}
}
