// SPDX-License-Identifier: EPL-2.0

package smplhlpr

import (
	"bytes"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ik5/smplhlpr/audio"
	"github.com/ik5/smplhlpr/formats/wav"
	"github.com/ik5/smplhlpr/internal/audiotest"
	"github.com/ik5/smplhlpr/pipeline"
	"github.com/ik5/smplhlpr/playback"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPoll = 10 * time.Millisecond

// indexWAV encodes a WAV whose every sample holds its frame index.
func indexWAV(t *testing.T, rate, channels, frames int) []byte {
	t.Helper()

	samples := make([]int16, frames*channels)
	for f := range frames {
		for ch := range channels {
			samples[f*channels+ch] = int16(f)
		}
	}

	var out bytes.Buffer
	require.NoError(t, wav.WritePCM16(&out, rate, channels, samples))
	return out.Bytes()
}

// decodedFrame recovers the frame index of a sample loaded from indexWAV.
func decodedFrame(v float32) int {
	return int(math.Round(float64(v) * 32768))
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func newTestSampler(t *testing.T, dev playback.Device, opts ...Option) *Sampler {
	t.Helper()

	if dev == nil {
		dev = audiotest.NewRecordingDevice()
	}

	opts = append([]Option{
		WithDevice(dev),
		WithPollInterval(testPoll),
		WithSettleInterval(0),
	}, opts...)

	s := New(opts...)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestLoadFileNotFound(t *testing.T) {
	s := newTestSampler(t, nil)

	err := s.Load(filepath.Join(t.TempDir(), "missing.wav"))
	assert.ErrorIs(t, err, ErrFileNotFound)
	assert.False(t, s.Loaded())
}

func TestLoadUnsupportedFormat(t *testing.T) {
	s := newTestSampler(t, nil)

	tests := []struct {
		name string
		data []byte
	}{
		{"clip.m4a", []byte("ftypM4A ")},
		{"noext", indexWAV(t, 8000, 1, 10)},
		{"broken.wav", []byte("definitely not RIFF data")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.Load(writeFile(t, tt.name, tt.data))
			assert.ErrorIs(t, err, ErrUnsupportedFormat)
			assert.False(t, s.Loaded())
		})
	}
}

func TestLoadMetadata(t *testing.T) {
	s := newTestSampler(t, nil)
	path := writeFile(t, "beat.WAV", indexWAV(t, 8000, 2, 4000))

	require.NoError(t, s.Load(path))

	assert.True(t, s.Loaded())
	assert.Equal(t, path, s.Path())
	assert.Equal(t, 8000, s.SampleRate())
	assert.Equal(t, 2, s.Channels())
	assert.Equal(t, 16, s.BitsPerSample())
	assert.InDelta(t, 0.5, s.LengthSeconds(), 1e-9)
	assert.Equal(t, 500*time.Millisecond, s.Duration())

	info := s.Info()
	assert.Equal(t, "wav", info.Format)
	assert.Equal(t, 8000, info.SampleRate)
	assert.Equal(t, info.Duration, info.FinalDuration)
	assert.Equal(t, playback.Idle, info.State)
	assert.Contains(t, info.String(), "sample rate: 8000 Hz")
}

func TestLoadFailureKeepsPreviousSample(t *testing.T) {
	s := newTestSampler(t, nil)
	good := writeFile(t, "good.wav", indexWAV(t, 8000, 1, 100))

	require.NoError(t, s.Load(good))
	require.NoError(t, s.SetVolume(-3))

	require.Error(t, s.Load(writeFile(t, "bad.wav", []byte("nope"))))

	assert.Equal(t, good, s.Path())
	assert.Equal(t, -3.0, s.Params().GainDB)
}

func TestLoadResetsParameters(t *testing.T) {
	s := newTestSampler(t, nil)
	data := indexWAV(t, 8000, 1, 800)

	require.NoError(t, s.LoadReader(bytes.NewReader(data), "wav"))
	require.NoError(t, s.SetBitDepth(4))
	require.NoError(t, s.SetPitch(3))

	require.NoError(t, s.LoadReader(bytes.NewReader(data), ".wav"))
	assert.Equal(t, pipeline.DefaultParams(8000), s.Params())
	assert.True(t, s.Final().Equal(s.Original()))
	assert.Empty(t, s.Path())
}

func TestNothingLoaded(t *testing.T) {
	s := newTestSampler(t, nil)

	assert.ErrorIs(t, s.Play(), ErrEmptyBuffer)

	path := filepath.Join(t.TempDir(), "out.wav")
	assert.ErrorIs(t, s.Save(path), ErrEmptyBuffer)
	assert.NoFileExists(t, path)

	assert.ErrorIs(t, s.SaveWriter(io.Discard, "wav"), ErrEmptyBuffer)

	assert.Zero(t, s.SampleRate())
	assert.Zero(t, s.Duration())
	assert.Nil(t, s.Final())
}

func TestParameterErrors(t *testing.T) {
	s := newTestSampler(t, nil)
	require.NoError(t, s.LoadReader(bytes.NewReader(indexWAV(t, 8000, 1, 800)), "wav"))

	before := s.Final()

	assert.ErrorIs(t, s.SetBitDepth(0), ErrInvalidParameter)
	assert.ErrorIs(t, s.SetBitDepth(17), ErrInvalidParameter)
	assert.ErrorIs(t, s.SetPan(1.5), ErrInvalidParameter)
	assert.ErrorIs(t, s.SetSampleRate(0), ErrInvalidParameter)

	assert.Same(t, before, s.Final())
}

func TestSetLoopValidation(t *testing.T) {
	s := newTestSampler(t, nil)

	require.NoError(t, s.SetLoop(time.Second, 2*time.Second, 3))
	want := s.Loop()

	assert.ErrorIs(t, s.SetLoop(2*time.Second, time.Second, 1), ErrInvalidLoopRange)
	assert.ErrorIs(t, s.SetLoop(0, 0, -1), ErrInvalidRepeat)
	assert.Equal(t, want, s.Loop())
}

func TestPanOnMonoIsNoop(t *testing.T) {
	s := newTestSampler(t, nil)
	require.NoError(t, s.LoadReader(bytes.NewReader(indexWAV(t, 8000, 1, 800)), "wav"))

	require.NoError(t, s.SetPan(0.5))

	assert.True(t, s.Final().Equal(s.Original()))
	assert.Equal(t, 0.5, s.Params().Pan)
}

func TestResetRestoresOriginal(t *testing.T) {
	s := newTestSampler(t, nil)
	data := indexWAV(t, 8000, 2, 1600)
	require.NoError(t, s.LoadReader(bytes.NewReader(data), "wav"))

	require.NoError(t, s.SetBitDepth(6))
	require.NoError(t, s.SetSampleRate(4000))
	require.NoError(t, s.SetPitch(-2))
	require.NoError(t, s.SetVolume(4))
	require.NoError(t, s.SetPan(-0.3))
	require.NoError(t, s.SetDistort(2))
	assert.False(t, s.Final().Equal(s.Original()))

	require.NoError(t, s.Reset())
	assert.True(t, s.Final().Equal(s.Original()))

	fresh, err := Decode(NewDecoderRegistry(), bytes.NewReader(data), "wav")
	require.NoError(t, err)
	assert.True(t, fresh.Equal(s.Original()))
}

func TestSaveRoundTrip(t *testing.T) {
	s := newTestSampler(t, nil)
	require.NoError(t, s.LoadReader(bytes.NewReader(indexWAV(t, 8000, 2, 800)), "wav"))
	require.NoError(t, s.SetVolume(-6))

	path := filepath.Join(t.TempDir(), "out.wav")
	require.NoError(t, s.Save(path))

	other := newTestSampler(t, nil)
	require.NoError(t, other.Load(path))

	want := s.Final()
	got := other.Original()
	require.Equal(t, want.SampleRate(), got.SampleRate())
	require.Equal(t, want.Channels(), got.Channels())
	require.Equal(t, want.Len(), got.Len())

	for i, v := range want.Samples() {
		assert.InDelta(t, v, got.Samples()[i], 0.5/32768, "sample %d", i)
	}
}

func TestSaveUnchangedIsLossless(t *testing.T) {
	for _, name := range []string{"out.wav", "out.aiff"} {
		t.Run(name, func(t *testing.T) {
			s := newTestSampler(t, nil)
			require.NoError(t, s.LoadReader(bytes.NewReader(indexWAV(t, 8000, 2, 1200)), "wav"))
			want := s.Original()

			// two generations: saving what was loaded must not drift
			path := filepath.Join(t.TempDir(), name)
			for range 2 {
				require.NoError(t, s.Save(path))
				require.NoError(t, s.Load(path))
			}

			got := s.Original()
			require.Equal(t, want.Len(), got.Len())
			for i, v := range got.Samples() {
				require.Equal(t, i/2, decodedFrame(v), "sample %d", i)
			}
		})
	}
}

func TestBitDepthOnDecodedSample(t *testing.T) {
	s := newTestSampler(t, nil)
	require.NoError(t, s.LoadReader(bytes.NewReader(indexWAV(t, 8000, 1, 2000)), "wav"))
	require.NoError(t, s.SetBitDepth(8))

	for f, v := range s.Final().Samples() {
		require.Equal(t, f/256*256, decodedFrame(v), "frame %d", f)
	}
}

func TestSaveMP3(t *testing.T) {
	const rate = 44100

	pcm := make([]int16, rate)
	for i := range rate / 2 {
		v := int16(12000 * math.Sin(2*math.Pi*440*float64(i)/rate))
		pcm[2*i], pcm[2*i+1] = v, v
	}

	var in bytes.Buffer
	require.NoError(t, wav.WritePCM16(&in, rate, 2, pcm))

	s := newTestSampler(t, nil)
	require.NoError(t, s.LoadReader(&in, "wav"))

	path := filepath.Join(t.TempDir(), "out.mp3")
	require.NoError(t, s.Save(path))

	other := newTestSampler(t, nil)
	require.NoError(t, other.Load(path))
	assert.Equal(t, "mp3", other.Info().Format)
	assert.Equal(t, rate, other.SampleRate())
	assert.Equal(t, 2, other.Channels())
	assert.Greater(t, other.Duration(), 250*time.Millisecond)
}

func TestSaveUnsupportedFormat(t *testing.T) {
	s := newTestSampler(t, nil)
	require.NoError(t, s.LoadReader(bytes.NewReader(indexWAV(t, 8000, 1, 80)), "wav"))

	path := filepath.Join(t.TempDir(), "out.xyz")
	assert.ErrorIs(t, s.Save(path), ErrUnsupportedFormat)
	assert.NoFileExists(t, path)

	assert.ErrorIs(t, s.SaveWriter(io.Discard, "m4a"), ErrUnsupportedFormat)
}

func TestSaveWriterAIFF(t *testing.T) {
	s := newTestSampler(t, nil)
	require.NoError(t, s.LoadReader(bytes.NewReader(indexWAV(t, 8000, 1, 80)), "wav"))

	var out bytes.Buffer
	require.NoError(t, s.SaveWriter(&out, "aiff"))
	assert.Equal(t, "FORM", out.String()[:4])
}

type recordingEncoder struct {
	calls int
	last  *audio.Buffer
}

func (e *recordingEncoder) Encode(_ io.Writer, buf *audio.Buffer) error {
	e.calls++
	e.last = buf
	return nil
}

func TestWithEncoder(t *testing.T) {
	enc := &recordingEncoder{}
	s := newTestSampler(t, nil, WithEncoder(".RAW", enc))
	require.NoError(t, s.LoadReader(bytes.NewReader(indexWAV(t, 8000, 1, 80)), "wav"))

	require.NoError(t, s.SaveWriter(io.Discard, "raw"))
	assert.Equal(t, 1, enc.calls)
	assert.Same(t, s.Final(), enc.last)
}

func TestLoopPlayback(t *testing.T) {
	dev := audiotest.NewRecordingDevice()
	s := newTestSampler(t, dev)

	require.NoError(t, s.LoadReader(bytes.NewReader(indexWAV(t, 1000, 1, 5000)), "wav"))
	require.NoError(t, s.SetLoop(time.Second, 2*time.Second, 3))
	require.NoError(t, s.Play())
	require.NoError(t, s.Wait(t.Context()))

	var want []int
	for range 3 {
		for f := 1000; f < 2000; f++ {
			want = append(want, f)
		}
	}
	for f := 2000; f < 5000; f++ {
		want = append(want, f)
	}

	samples := dev.Samples()
	got := make([]int, len(samples))
	for i, v := range samples {
		got[i] = decodedFrame(v)
	}

	assert.Equal(t, want, got)
	assert.Equal(t, playback.Idle, s.State())
}

func TestLoadStopsPlayback(t *testing.T) {
	dev := audiotest.NewRecordingDevice()
	dev.WriteDelay = testPoll
	s := newTestSampler(t, dev)

	require.NoError(t, s.LoadReader(bytes.NewReader(indexWAV(t, 1000, 1, 500)), "wav"))
	require.NoError(t, s.SetLoop(0, 0, 0))
	require.NoError(t, s.Play())

	select {
	case <-dev.Written():
	case <-time.After(time.Second):
		t.Fatal("no audio reached the device")
	}

	require.NoError(t, s.LoadReader(bytes.NewReader(indexWAV(t, 1000, 1, 300)), "wav"))
	assert.Equal(t, playback.Idle, s.State())
	assert.Equal(t, 1, dev.Stops())
}

func TestAutoRestart(t *testing.T) {
	tests := []struct {
		name  string
		on    bool
		opens int
	}{
		{"enabled", true, 2},
		{"disabled", false, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dev := audiotest.NewRecordingDevice()
			dev.WriteDelay = testPoll
			s := newTestSampler(t, dev, WithAutoRestart(tt.on))

			require.NoError(t, s.LoadReader(bytes.NewReader(indexWAV(t, 1000, 1, 500)), "wav"))
			require.NoError(t, s.SetLoop(0, 0, 0))
			require.NoError(t, s.Play())

			require.Eventually(t, func() bool { return len(dev.Opens()) == 1 }, time.Second, time.Millisecond)

			require.NoError(t, s.SetVolume(-12))

			if tt.on {
				require.Eventually(t, func() bool { return len(dev.Opens()) == tt.opens }, time.Second, time.Millisecond)
			} else {
				time.Sleep(3 * testPoll)
				assert.Len(t, dev.Opens(), tt.opens)
			}

			assert.Equal(t, playback.Playing, s.State())
			require.NoError(t, s.Close())
		})
	}
}
