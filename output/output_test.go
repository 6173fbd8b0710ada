// SPDX-License-Identifier: EPL-2.0

package output

import (
	"encoding/binary"
	"testing"

	"github.com/ik5/smplhlpr/playback"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ playback.Device = (*Oto)(nil)
	_ playback.Device = (*PortAudio)(nil)
	_ playback.Device = (*Null)(nil)
)

func TestNew(t *testing.T) {
	tests := []struct {
		name string
		want any
	}{
		{"", &Oto{}},
		{NameOto, &Oto{}},
		{NamePortAudio, &PortAudio{}},
		{NameNull, &Null{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dev, err := New(tt.name)
			require.NoError(t, err)
			assert.IsType(t, tt.want, dev)
		})
	}
}

func TestNewUnknown(t *testing.T) {
	_, err := New("speaker")
	assert.ErrorIs(t, err, ErrUnknownDevice)
}

func TestNames(t *testing.T) {
	for _, name := range Names() {
		_, err := New(name)
		assert.NoError(t, err, name)
	}
}

func TestAppendInt16LE(t *testing.T) {
	got := appendInt16LE(nil, []float32{0, 1, -1, 0.5})
	require.Len(t, got, 8)

	want := []int16{0, 32767, -32768, 16384}
	for i, w := range want {
		assert.Equal(t, w, int16(binary.LittleEndian.Uint16(got[i*2:])), "sample %d", i)
	}
}

func TestOtoRejectsInvalidFormat(t *testing.T) {
	o := NewOto()
	assert.ErrorIs(t, o.Open(0, 2), ErrInvalidFormat)
	assert.ErrorIs(t, o.Open(44100, 0), ErrInvalidFormat)
}

func TestOtoNotOpen(t *testing.T) {
	o := NewOto()
	assert.ErrorIs(t, o.Write(t.Context(), []float32{0, 0}), ErrNotOpen)
	assert.NoError(t, o.Drain(t.Context()))
	assert.NoError(t, o.Stop())
}
