// SPDX-License-Identifier: EPL-2.0

package mp3

const (
	DefaultBitrate = 192
	DefaultQuality = 2
)

// Encoder writes a Buffer as MP3 through LAME. A zero Bitrate or Quality
// falls back to the defaults.
type Encoder struct {
	// Bitrate in kbit/s, used as the VBR target.
	Bitrate int
	// Quality is LAME's 0 (best, slowest) to 9 (worst, fastest) scale.
	Quality int
}

func (e Encoder) settings() (bitrate, quality int) {
	bitrate, quality = e.Bitrate, e.Quality
	if bitrate <= 0 {
		bitrate = DefaultBitrate
	}
	if quality <= 0 || quality > 9 {
		quality = DefaultQuality
	}

	return bitrate, quality
}
