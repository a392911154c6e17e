// Command interp resamples WAV files, renders MOD modules and reports the
// frequency-domain quality of the interpolation kernels.
//
// Usage:
//
//	interp resample --rate 48000 input.wav output.wav
//	interp resample --rate 96000 --method hermite input.wav output.wav
//	interp mod --rate 44100 --seconds 30 song.mod song.wav
//	interp analyze --method all
package main

import (
	"log"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		log.Fatal(err)
	}
}
