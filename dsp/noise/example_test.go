package noise_test

import (
	"fmt"

	"github.com/cwbudde/algo-ambient/dsp/noise"
)

func ExampleColorLabel() {
	for _, e := range []float64{0, 1, 2, 3} {
		label, err := noise.ColorLabel(e)
		if err != nil {
			panic(err)
		}
		fmt.Printf("%.0f %s\n", e, label)
	}

	// Output:
	// 0 White
	// 1 Pink
	// 2 Brown
	// 3 Black
}

func ExampleEffectiveExponent() {
	e, err := noise.EffectiveExponent(2.0)
	if err != nil {
		panic(err)
	}
	fmt.Printf("%.2f\n", e)

	// Output:
	// 1.50
}

func ExampleSynthesizer_Fill() {
	s := noise.NewSynthesizer(nil, noise.WithSeed(42))
	if err := s.SetExponent(1.0); err != nil {
		panic(err)
	}

	block := make([]float64, 4096)
	s.Fill(block)

	fmt.Println(len(block))

	// Output:
	// 4096
}
