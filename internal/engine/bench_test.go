package engine

import (
	"testing"
)

var sink float64

// BenchmarkOptimal32x benchmarks a single direct evaluation.
func BenchmarkOptimal32x(b *testing.B) {
	x := 0.37
	for b.Loop() {
		sink = Optimal32x(x, 0.1, -0.2, 0.3, 0.4, -0.5, 0.6)
	}
}

// BenchmarkKernels benchmarks each kernel through the interface.
func BenchmarkKernels(b *testing.B) {
	w := []float64{0.1, -0.2, 0.3, 0.4, -0.5, 0.6}
	for _, m := range []Method{MethodOptimal32x, MethodHermite, MethodLinear} {
		k, err := NewKernel[float64](m)
		if err != nil {
			b.Fatal(err)
		}
		b.Run(m.String(), func(b *testing.B) {
			win := w[:k.Taps()]
			for b.Loop() {
				sink = k.Interpolate(win, 0.37)
			}
		})
	}
}

// BenchmarkPhaseTable benchmarks the tabulated dot-product path.
func BenchmarkPhaseTable(b *testing.B) {
	table, err := NewPhaseTable[float64](OptimalKernel[float64]{}, 32)
	if err != nil {
		b.Fatal(err)
	}
	w := []float64{0.1, -0.2, 0.3, 0.4, -0.5, 0.6}
	for b.Loop() {
		sink = table.Interpolate(w, 0.37)
	}
}

// BenchmarkStage_CD2DAT benchmarks CD to DAT streaming (44100 -> 48000)
func BenchmarkStage_CD2DAT(b *testing.B) {
	stage, err := NewStage[float64](OptimalKernel[float64]{}, 48000.0/44100.0)
	if err != nil {
		b.Fatal(err)
	}

	// 1 second of input
	input := make([]float64, 44100)
	for i := range input {
		input[i] = float64(i) * 0.00001
	}

	for b.Loop() {
		stage.Reset()
		_, _ = stage.Process(input)
	}
}

// BenchmarkRenderBlock benchmarks 4x upsampling of a block.
func BenchmarkRenderBlock(b *testing.B) {
	src := make([]float64, 4096)
	for i := range src {
		src[i] = float64(i%64) / 64
	}
	dst := make([]float64, 4*len(src))
	k := OptimalKernel[float64]{}
	for b.Loop() {
		RenderBlock[float64](k, dst, src, 0, 0.25, EdgeWrap)
	}
}
