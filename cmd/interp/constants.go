package main

const (
	// Buffer size for processing (number of frames per chunk)
	bufferSize = 65536

	// Channel count constants for fast paths
	monoChannels   = 1
	stereoChannels = 2

	// Sample format constants
	bitsPerSample16 = 16
	bitsPerSample24 = 24
	bitsPerSample32 = 32

	// Conversion constants
	maxInt16         = 32767.0
	maxInt24         = 8388607.0
	maxInt32         = 2147483647.0
	progressInterval = 10 // Print progress every N%
	percentScale     = 100

	// WAV format constants
	wavFormatPCM = 1

	// CLI defaults
	defaultRate    = 48000.0
	defaultModRate = 44100.0
	defaultSeconds = 0.0 // play until the song ends
	maxModSeconds  = 3600.0
	ioArgs         = 2 // input and output paths
)
