package main

import (
	"fmt"
	"log"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/tphakala/go-audio-interp/internal/simdops"
)

// wavInputInfo holds validated input file information.
type wavInputInfo struct {
	file        *os.File
	decoder     *wav.Decoder
	rate        int
	channels    int
	bitDepth    int
	totalFrames int64
	format      *audio.Format
}

// openWAVInput opens and validates a WAV file, returning format information.
func openWAVInput(path string, verbose bool) (*wavInputInfo, error) {
	inputFile, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}

	decoder := wav.NewDecoder(inputFile)
	if !decoder.IsValidFile() {
		_ = inputFile.Close()
		return nil, fmt.Errorf("invalid WAV file: %s", path)
	}

	format := decoder.Format()
	bitDepth := int(decoder.BitDepth)
	if verbose {
		log.Printf("Input format: %d Hz, %d channels, %d-bit", format.SampleRate, format.NumChannels, bitDepth)
	}

	// Duration is only used for progress reporting
	var totalFrames int64
	if duration, err := decoder.Duration(); err == nil {
		totalFrames = int64(duration.Seconds() * float64(format.SampleRate))
	}

	return &wavInputInfo{
		file:        inputFile,
		decoder:     decoder,
		rate:        format.SampleRate,
		channels:    format.NumChannels,
		bitDepth:    bitDepth,
		totalFrames: totalFrames,
		format:      format,
	}, nil
}

// Close closes the input file.
func (w *wavInputInfo) Close() error {
	return w.file.Close()
}

// wavOutputWriter wraps an output file and its encoder.
type wavOutputWriter struct {
	file    *os.File
	encoder *wav.Encoder
	buf     *audio.IntBuffer
	frames  int64
}

// createWAVOutput creates an output file with a PCM encoder.
func createWAVOutput(path string, sampleRate, bitDepth, channels int) (*wavOutputWriter, error) {
	outputFile, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}

	return &wavOutputWriter{
		file:    outputFile,
		encoder: wav.NewEncoder(outputFile, sampleRate, bitDepth, channels, wavFormatPCM),
		buf: &audio.IntBuffer{
			Format:         &audio.Format{NumChannels: channels, SampleRate: sampleRate},
			SourceBitDepth: bitDepth,
		},
	}, nil
}

// WriteSamples writes interleaved integer samples.
func (w *wavOutputWriter) WriteSamples(samples []int) error {
	if len(samples) == 0 {
		return nil
	}
	w.buf.Data = samples
	if err := w.encoder.Write(w.buf); err != nil {
		return fmt.Errorf("failed to write audio data: %w", err)
	}
	w.frames += int64(len(samples) / w.buf.Format.NumChannels)
	return nil
}

// Close finalizes the WAV header and closes the file.
func (w *wavOutputWriter) Close() error {
	if err := w.encoder.Close(); err != nil {
		_ = w.file.Close()
		return fmt.Errorf("failed to finalize WAV file: %w", err)
	}
	return w.file.Close()
}

// progressTracker handles progress reporting.
type progressTracker struct {
	total        int64
	lastProgress int
	verbose      bool
}

// newProgressTracker creates a new progress tracker.
func newProgressTracker(total int64, verbose bool) *progressTracker {
	return &progressTracker{
		total:   total,
		verbose: verbose,
	}
}

// reportIfNeeded reports progress if threshold crossed.
func (p *progressTracker) reportIfNeeded(current int64) {
	if !p.verbose || p.total == 0 {
		return
	}

	progress := int(float64(current) / float64(p.total) * percentScale)
	if progress >= p.lastProgress+progressInterval {
		log.Printf("Progress: %d%%", progress)
		p.lastProgress = progress
	}
}

// getMaxValue returns the maximum sample value for the given bit depth.
func getMaxValue(bitDepth int) float64 {
	switch bitDepth {
	case bitsPerSample16:
		return maxInt16
	case bitsPerSample24:
		return maxInt24
	case bitsPerSample32:
		return maxInt32
	default:
		return maxInt16
	}
}

// deinterleaveInto converts interleaved int samples into preallocated per-channel buffers.
// Stereo input is split with SIMD through scratch, which is grown when too
// small and returned for reuse.
func deinterleaveInto(data []int, channelBufs [][]float64, samplesPerChannel int, invMaxVal float64, scratch []float64) []float64 {
	numChannels := len(channelBufs)

	switch numChannels {
	case monoChannels:
		buf := channelBufs[0]
		for i := range samplesPerChannel {
			buf[i] = float64(data[i]) * invMaxVal
		}
		return scratch
	case stereoChannels:
		total := samplesPerChannel * stereoChannels
		if cap(scratch) < total {
			scratch = make([]float64, total)
		}
		scratch = scratch[:total]
		for i, v := range data[:total] {
			scratch[i] = float64(v)
		}

		ops := simdops.Float64Ops()
		left := channelBufs[0][:samplesPerChannel]
		right := channelBufs[1][:samplesPerChannel]
		ops.Deinterleave2(left, right, scratch)
		ops.Scale(left, left, invMaxVal)
		ops.Scale(right, right, invMaxVal)
		return scratch
	}

	for i := range samplesPerChannel {
		base := i * numChannels
		for ch := range numChannels {
			channelBufs[ch][i] = float64(data[base+ch]) * invMaxVal
		}
	}
	return scratch
}

// interleaveInto converts per-channel float slices to interleaved ints,
// clamping to [-1, 1]. dst is grown when too small. Returns the filled slice.
func interleaveInto(channels [][]float64, dst []int, maxVal float64) []int {
	if len(channels) == 0 || len(channels[0]) == 0 {
		return dst[:0]
	}

	numChannels := len(channels)
	samplesPerChannel := len(channels[0])
	totalLen := samplesPerChannel * numChannels
	if cap(dst) < totalLen {
		dst = make([]int, totalLen)
	}
	dst = dst[:totalLen]

	for i := range samplesPerChannel {
		base := i * numChannels
		for ch := range numChannels {
			sample := max(-1.0, min(1.0, channels[ch][i]))
			dst[base+ch] = int(sample * maxVal)
		}
	}

	return dst
}
