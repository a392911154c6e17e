package interp

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/tphakala/go-audio-interp/internal/engine"
	"github.com/tphakala/go-audio-interp/internal/simdops"
)

// Edge decides what a window sees past either end of the source.
type Edge = engine.Edge

// Edge policies.
const (
	// EdgeZero treats samples outside the source as silence.
	EdgeZero = engine.EdgeZero

	// EdgeClamp repeats the first and last sample.
	EdgeClamp = engine.EdgeClamp

	// EdgeWrap treats the source as one period of a periodic signal.
	EdgeWrap = engine.EdgeWrap
)

// InterpolateAt returns the reconstruction of src at real position pos:
// the integer part selects y0, the fractional part is x.
func InterpolateAt(src []float64, pos float64, method Method, edge Edge) (float64, error) {
	k, err := engine.NewKernel[float64](method)
	if err != nil {
		return 0, err
	}
	return engine.InterpolateAt(k, src, pos, edge), nil
}

// RenderParallel fills dst[i] with the reconstruction of src at position
// start+i*step, splitting dst across up to workers goroutines
// (GOMAXPROCS when workers <= 0). Every output point is independent, so
// the result is identical to a sequential render. Cancellation of ctx is
// observed between chunks.
func RenderParallel(ctx context.Context, dst, src []float64, start, step float64, method Method, edge Edge, workers int) error {
	return renderParallel(ctx, dst, src, start, step, method, edge, workers)
}

// RenderParallelFloat32 is RenderParallel for float32 samples.
func RenderParallelFloat32(ctx context.Context, dst, src []float32, start, step float64, method Method, edge Edge, workers int) error {
	return renderParallel(ctx, dst, src, start, step, method, edge, workers)
}

func renderParallel[F simdops.Float](ctx context.Context, dst, src []F, start, step float64, method Method, edge Edge, workers int) error {
	k, err := engine.NewKernel[F](method)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	chunk := max((len(dst)+workers-1)/workers, minParallelChunk)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for lo := 0; lo < len(dst); lo += chunk {
		hi := min(lo+chunk, len(dst))
		if err := gctx.Err(); err != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			engine.RenderRange(k, dst, src, start, step, lo, hi, edge)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
