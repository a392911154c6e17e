package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	interp "github.com/tphakala/go-audio-interp"
	"github.com/tphakala/go-audio-interp/internal/mixer"
	"github.com/tphakala/go-audio-interp/internal/mod"
)

// modOptions holds flags of the mod command.
type modOptions struct {
	*rootOptions
	rate    float64
	seconds float64
	method  string
	gain    float64
}

func modCommand(root *rootOptions) *cobra.Command {
	opts := &modOptions{rootOptions: root}

	cmd := &cobra.Command{
		Use:   "mod [input.mod] [output.wav]",
		Short: "Render a ProTracker module to a stereo WAV file",
		Args:  cobra.ExactArgs(ioArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			method, err := interp.ParseMethod(opts.method)
			if err != nil {
				return err
			}
			if opts.seconds < 0 || opts.seconds > maxModSeconds {
				return fmt.Errorf("seconds must be between 0 and %.0f", maxModSeconds)
			}

			frames, title, err := renderModule(args[0], args[1], opts, method)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Rendered %q (%s) -> %s\n", title, filepath.Base(args[0]), filepath.Base(args[1]))
			fmt.Fprintf(cmd.OutOrStdout(), "  %d frames at %.0f Hz (%.2fs, %s)\n",
				frames, opts.rate, float64(frames)/opts.rate, method)
			return nil
		},
	}

	cmd.Flags().Float64VarP(&opts.rate, "rate", "r", defaultModRate, "Output sample rate in Hz")
	cmd.Flags().Float64VarP(&opts.seconds, "seconds", "s", defaultSeconds, "Maximum length in seconds (0 plays to the end)")
	cmd.Flags().StringVarP(&opts.method, "method", "m", interp.MethodOptimal32x.String(), "Interpolation method: optimal32x, hermite, linear")
	cmd.Flags().Float64Var(&opts.gain, "gain", mixer.DefaultGain, "Master gain")

	return cmd
}

// renderModule plays inputPath and writes 16-bit stereo PCM to outputPath.
func renderModule(inputPath, outputPath string, opts *modOptions, method interp.Method) (frames int64, title string, err error) {
	f, err := os.Open(inputPath)
	if err != nil {
		return 0, "", fmt.Errorf("failed to open input file: %w", err)
	}
	m, err := mod.Load(f)
	_ = f.Close()
	if err != nil {
		return 0, "", fmt.Errorf("%s: %w", inputPath, err)
	}
	opts.logf("Module %q: %d orders, %d patterns", m.Title, m.SongLength, len(m.Patterns))

	player, err := mixer.New(m, mixer.Config{
		SampleRate: opts.rate,
		Method:     method,
		Gain:       opts.gain,
	})
	if err != nil {
		return 0, "", err
	}

	output, err := createWAVOutput(outputPath, int(opts.rate), bitsPerSample16, stereoChannels)
	if err != nil {
		return 0, "", err
	}
	defer func() {
		if closeErr := output.Close(); err == nil {
			err = closeErr
		}
	}()

	limit := int64(-1)
	if opts.seconds > 0 {
		limit = int64(opts.seconds * opts.rate)
	}
	progress := newProgressTracker(max(limit, 0), opts.verbose)

	left := make([]float64, bufferSize)
	right := make([]float64, bufferSize)
	var ints []int
	for !player.Done() && (limit < 0 || output.frames < limit) {
		want := bufferSize
		if limit >= 0 {
			want = int(min(int64(bufferSize), limit-output.frames))
		}

		n := player.Render(left[:want], right[:want])
		if n == 0 {
			break
		}
		ints = interleaveInto([][]float64{left[:n], right[:n]}, ints, maxInt16)
		if err := output.WriteSamples(ints); err != nil {
			return 0, "", err
		}
		progress.reportIfNeeded(output.frames)
	}

	return output.frames, m.Title, nil
}
