// SPDX-License-Identifier: EPL-2.0

package mp3_test

import (
	"fmt"
	"log"
	"os"

	"github.com/ik5/smplhlpr/audio"
	"github.com/ik5/smplhlpr/formats/mp3"
	"github.com/ik5/smplhlpr/formats/wav"
)

// ExampleDecoder_Decode converts an MP3 file to WAV.
func ExampleDecoder_Decode() {
	f, err := os.Open("input.mp3")
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	src, err := mp3.Decoder{}.Decode(f)
	if err != nil {
		log.Fatal(err)
	}

	buf, err := audio.Collect(src)
	if err != nil {
		log.Fatal(err)
	}

	out, err := os.Create("output.wav")
	if err != nil {
		log.Fatal(err)
	}
	defer out.Close()

	if err := (wav.Encoder{}).Encode(out, buf); err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Converted %.2fs of audio\n", buf.LengthSeconds())
}

// ExampleEncoder_Encode writes a Buffer as a 128 kbit/s MP3.
func ExampleEncoder_Encode() {
	buf, _ := audio.NewBuffer(make([]float32, 44100*2), 44100, 2, 16)

	out, err := os.Create("silence.mp3")
	if err != nil {
		log.Fatal(err)
	}
	defer out.Close()

	enc := mp3.Encoder{Bitrate: 128}
	if err := enc.Encode(out, buf); err != nil {
		log.Fatal(err)
	}
}
