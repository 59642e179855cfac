package placement_test

import (
	"fmt"

	"github.com/matzehuels/railing/pkg/placement"
)

func ExampleEngine_Offsets() {
	eng := placement.NewDefault()
	offsets, err := eng.Offsets(200)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(offsets)
	// Output: [17 40 63 86 109 132 155 178]
}

func ExampleEngine_Place() {
	eng := placement.New(placement.Config{PostWidth: 5, TargetGap: 18})
	for _, length := range []float64{10, 45, 46} {
		l, _ := eng.Place(length)
		fmt.Printf("%g: %s %v\n", length, l.Candidate, l.Offsets)
	}
	// Output:
	// 10: none []
	// 45: center [20]
	// 46: moved [9 32]
}

func ExampleTile() {
	fmt.Println(placement.Tile(50, 100, 23))
	// Output: [4 27 50 73 96]
}
