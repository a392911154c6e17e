package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/go-audio/audio"
	"github.com/spf13/cobra"

	interp "github.com/tphakala/go-audio-interp"
)

// resampleOptions holds flags of the resample command.
type resampleOptions struct {
	*rootOptions
	rate     float64
	method   string
	parallel bool
}

type resampleStats struct {
	inputRate    int
	outputRate   int
	channels     int
	bitDepth     int
	inputFrames  int64
	outputFrames int64
}

func resampleCommand(root *rootOptions) *cobra.Command {
	opts := &resampleOptions{rootOptions: root}

	cmd := &cobra.Command{
		Use:   "resample [input.wav] [output.wav]",
		Short: "Resample a WAV file",
		Long:  `Resample a PCM WAV file to a new sample rate, evaluating the interpolation kernel at every output position.`,
		Args:  cobra.ExactArgs(ioArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			method, err := interp.ParseMethod(opts.method)
			if err != nil {
				return err
			}

			opts.logf("Input: %s", args[0])
			opts.logf("Output: %s", args[1])
			opts.logf("Target rate: %.0f Hz, method: %s, parallel: %v", opts.rate, method, opts.parallel)

			start := time.Now()
			stats, err := resampleWAV(args[0], args[1], opts.rate, method, opts.parallel, opts.verbose)
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Resampled %s -> %s\n", filepath.Base(args[0]), filepath.Base(args[1]))
			fmt.Fprintf(out, "  %d Hz -> %d Hz (%d channels, %d-bit, %s)\n",
				stats.inputRate, stats.outputRate, stats.channels, stats.bitDepth, method)
			fmt.Fprintf(out, "  %d frames -> %d frames\n", stats.inputFrames, stats.outputFrames)
			if secs := elapsed.Seconds(); secs > 0 {
				fmt.Fprintf(out, "  Duration: %.2fs, Speed: %.1fx realtime\n",
					secs, float64(stats.inputFrames)/float64(stats.inputRate)/secs)
			}
			return nil
		},
	}

	cmd.Flags().Float64VarP(&opts.rate, "rate", "r", defaultRate, "Target sample rate in Hz")
	cmd.Flags().StringVarP(&opts.method, "method", "m", interp.MethodOptimal32x.String(), "Interpolation method: optimal32x, hermite, linear")
	cmd.Flags().BoolVar(&opts.parallel, "parallel", true, "Process channels concurrently")

	return cmd
}

// resampleWAV streams inputPath through a resampler into outputPath,
// keeping the input bit depth.
func resampleWAV(inputPath, outputPath string, targetRate float64, method interp.Method, parallel, verbose bool) (stats *resampleStats, err error) {
	input, err := openWAVInput(inputPath, verbose)
	if err != nil {
		return nil, err
	}
	defer func() { _ = input.Close() }()

	if input.channels < 1 {
		return nil, fmt.Errorf("invalid WAV file: %d channels", input.channels)
	}

	r, err := interp.New(&interp.Config{
		InputRate:      float64(input.rate),
		OutputRate:     targetRate,
		Channels:       input.channels,
		Method:         method,
		EnableParallel: parallel,
	})
	if err != nil {
		return nil, err
	}

	outputRate := int(targetRate)
	output, err := createWAVOutput(outputPath, outputRate, input.bitDepth, input.channels)
	if err != nil {
		return nil, err
	}
	// Close output, capturing close errors on success path (the header is finalized on close)
	defer func() {
		if closeErr := output.Close(); err == nil {
			err = closeErr
		}
	}()

	stats = &resampleStats{
		inputRate:  input.rate,
		outputRate: outputRate,
		channels:   input.channels,
		bitDepth:   input.bitDepth,
	}

	maxVal := getMaxValue(input.bitDepth)
	invMaxVal := 1.0 / maxVal
	intBuffer := &audio.IntBuffer{
		Data:   make([]int, bufferSize*input.channels),
		Format: input.format,
	}
	channelBufs := make([][]float64, input.channels)
	for ch := range channelBufs {
		channelBufs[ch] = make([]float64, bufferSize)
	}
	var (
		outputInts []int
		scratch    []float64
	)
	progress := newProgressTracker(input.totalFrames, verbose)

	for {
		n, err := input.decoder.PCMBuffer(intBuffer)
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to read audio data: %w", err)
		}
		frames := n / input.channels
		if frames == 0 {
			break
		}
		stats.inputFrames += int64(frames)

		scratch = deinterleaveInto(intBuffer.Data, channelBufs, frames, invMaxVal, scratch)
		chunk := make([][]float64, input.channels)
		for ch := range chunk {
			chunk[ch] = channelBufs[ch][:frames]
		}

		resampled, err := r.ProcessMulti(chunk)
		if err != nil {
			return nil, err
		}

		outputInts = interleaveInto(resampled, outputInts, maxVal)
		if err := output.WriteSamples(outputInts); err != nil {
			return nil, err
		}

		progress.reportIfNeeded(stats.inputFrames)
	}

	flushed, err := r.FlushMulti()
	if err != nil {
		return nil, err
	}
	outputInts = interleaveInto(flushed, outputInts, maxVal)
	if err := output.WriteSamples(outputInts); err != nil {
		return nil, err
	}

	stats.outputFrames = output.frames
	return stats, nil
}
