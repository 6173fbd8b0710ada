// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"math"
	"testing"
)

func TestFloat32ToInt16(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input float32
		want  int16
	}{
		{name: "zero", input: 0.0, want: 0},
		{name: "full scale positive clamps", input: 1.0, want: math.MaxInt16},
		{name: "full scale negative", input: -1.0, want: math.MinInt16},
		{name: "half positive", input: 0.5, want: 16384},
		{name: "half negative", input: -0.5, want: -16384},
		{name: "rounds to nearest", input: 100.6 / 32768, want: 101},
		{name: "rounds negative to nearest", input: -100.4 / 32768, want: -100},
		{name: "clamp over max", input: 1.5, want: math.MaxInt16},
		{name: "clamp under min", input: -3, want: math.MinInt16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Float32ToInt16(tt.input); got != tt.want {
				t.Errorf("Float32ToInt16(%v) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestInt16ToFloat32(t *testing.T) {
	t.Parallel()

	if got := Int16ToFloat32(math.MinInt16); got != -1 {
		t.Errorf("Int16ToFloat32(MinInt16) = %v, want -1", got)
	}

	if got := Int16ToFloat32(16384); got != 0.5 {
		t.Errorf("Int16ToFloat32(16384) = %v, want 0.5", got)
	}

	if got := Int16ToFloat32(0); got != 0 {
		t.Errorf("Int16ToFloat32(0) = %v, want 0", got)
	}
}

// Decoders normalise with IntToFloat32 and encoders go back through
// Float32ToInt16, so every 16-bit value has to survive the trip unchanged.
func TestInt16RoundTrip(t *testing.T) {
	t.Parallel()

	for v := math.MinInt16; v <= math.MaxInt16; v++ {
		if got := Float32ToInt16(IntToFloat32(v, 16)); int(got) != v {
			t.Fatalf("Float32ToInt16(IntToFloat32(%d, 16)) = %d", v, got)
		}
		if got := Float32ToInt16(Int16ToFloat32(int16(v))); int(got) != v {
			t.Fatalf("Float32ToInt16(Int16ToFloat32(%d)) = %d", v, got)
		}
	}
}

func TestIntToFloat32(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value int
		bits  int
		want  float32
	}{
		{name: "16-bit half", value: 16384, bits: 16, want: 0.5},
		{name: "16-bit min", value: -32768, bits: 16, want: -1},
		{name: "24-bit half", value: 1 << 22, bits: 24, want: 0.5},
		{name: "24-bit drops low byte", value: (1 << 22) + 0xff, bits: 24, want: 0.5},
		{name: "32-bit quarter", value: 1 << 29, bits: 32, want: 0.25},
		{name: "8-bit half", value: 64, bits: 8, want: 0.5},
		{name: "unknown depth treated as 16-bit", value: 8192, bits: 0, want: 0.25},
		{name: "out of range clamps", value: 40000, bits: 16, want: 32767.0 / 32768},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := IntToFloat32(tt.value, tt.bits); got != tt.want {
				t.Errorf("IntToFloat32(%d, %d) = %v, want %v", tt.value, tt.bits, got, tt.want)
			}
		})
	}
}
