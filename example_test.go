package interp_test

import (
	"context"
	"fmt"
	"log"

	interp "github.com/tphakala/go-audio-interp"
)

func ExampleOptimal32x() {
	y := interp.Optimal32x(0.5, 5, 5, 5, 5, 5, 5)
	fmt.Printf("%.6f\n", y)
	// Output: 5.000000
}

func ExampleWindow_At() {
	w := interp.Window{0, 0, 1, 0, 0, 0}
	for _, x := range []float64{0, 0.5} {
		fmt.Printf("x=%.1f y=%.6f\n", x, w.At(x))
	}
	// Output:
	// x=0.0 y=0.525589
	// x=0.5 y=0.426860
}

func ExampleRenderParallel() {
	src := []float64{1, 1, 1, 1, 1, 1, 1, 1}
	dst := make([]float64, 4)

	err := interp.RenderParallel(context.Background(), dst, src, 2, 0.5,
		interp.MethodOptimal32x, interp.EdgeClamp, 2)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%.3f\n", dst)
	// Output: [1.000 1.000 1.000 1.000]
}

func ExampleResampleMono() {
	input := make([]float64, 4410)
	out, err := interp.ResampleMono(input, interp.RateCD, interp.RateDAT, interp.MethodOptimal32x)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(len(out))
	// Output: 4800
}
