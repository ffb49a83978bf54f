package collage_test

import (
	"fmt"
	"log"

	"github.com/Travis-Gilbert/collage/pkg/collage"
)

func ExampleCompose() {
	img, err := collage.Compose("parking-lot-problem", collage.Inputs{}, collage.DefaultOptions())
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%dx%d\n", img.Bounds().Dx(), img.Bounds().Dy())
	// Output: 1200x750
}

func ExampleParseGround() {
	c := collage.ParseGround("olive")
	fmt.Printf("rgb(%d, %d, %d)\n", c.R, c.G, c.B)
	// Output: rgb(58, 56, 32)
}

func ExampleNewRNG() {
	// Two generators with the same seed always agree, which is what makes a
	// layout reproducible from its slug.
	a := collage.NewRNG("my-essay")
	b := collage.NewRNG("my-essay")
	fmt.Println(a.Float() == b.Float())
	// Output: true
}
