// SPDX-License-Identifier: EPL-2.0

// Package flac decodes FLAC audio with github.com/mewkiz/flac.
//
// Frames are parsed one at a time and interleaved into the float32 layout
// used by audio.Source, so memory stays bounded to a single FLAC block
// while streaming. Depths above 16 bits are shifted onto the 16-bit grid.
package flac
