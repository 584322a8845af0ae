package soa_test

import (
	"errors"
	"fmt"
	"log"

	"github.com/hupe1980/soa"
)

var particle = soa.Schema{
	{Name: "x", Type: soa.Float32},
	{Name: "y", Type: soa.Float32},
	{Name: "alive", Type: soa.Bool},
}

// ExampleStructureOfArrays demonstrates index reuse and trailing compaction.
func ExampleStructureOfArrays() {
	particles, err := soa.New(particle)
	if err != nil {
		log.Fatal(err)
	}

	ids, _ := particles.Add(
		soa.Record{"x": 1, "y": 1, "alive": true},
		soa.Record{"x": 2, "y": 2, "alive": true},
		soa.Record{"x": 3, "y": 3, "alive": true},
	)
	fmt.Println("added:", ids)

	particles.Delete(1)
	fmt.Println("len:", particles.Len(), "size:", particles.Size())

	ids, _ = particles.Add(soa.Record{"x": 4})
	fmt.Println("reused:", ids)

	particles.Delete(2)
	particles.Delete(1)
	fmt.Println("len:", particles.Len(), "size:", particles.Size())

	// Output:
	// added: [0 1 2]
	// len: 3 size: 2
	// reused: [1]
	// len: 1 size: 1
}

// ExampleColumn demonstrates direct access to a backing column.
func ExampleColumn() {
	particles, err := soa.New(particle)
	if err != nil {
		log.Fatal(err)
	}
	if _, err := particles.Push(
		soa.Record{"x": 1.5, "y": 0},
		soa.Record{"x": 2.5, "y": 0},
	); err != nil {
		log.Fatal(err)
	}

	xs, err := soa.Column[float32](particles, "x")
	if err != nil {
		log.Fatal(err)
	}
	for i := range xs {
		xs[i] *= 2
	}

	x, _ := particles.Get(1, "x")
	fmt.Println(xs, x)

	// Output: [3 5] 5
}

// ExampleStructureOfSparseMaps demonstrates internal positions after a
// swap-with-last delete.
func ExampleStructureOfSparseMaps() {
	particles, err := soa.NewSparse(particle)
	if err != nil {
		log.Fatal(err)
	}

	_, _ = particles.Add(soa.Record{"x": 0}, soa.Record{"x": 1}, soa.Record{"x": 2})
	particles.Delete(0)

	for index := range particles.Indexes() {
		pos, _ := particles.GetInternalIndex(index)
		fmt.Printf("index %d at position %d\n", index, pos)
	}

	// Output:
	// index 2 at position 0
	// index 1 at position 1
}

// ExampleStructureOfArrays_TryGet demonstrates the non-failing accessors.
func ExampleStructureOfArrays_TryGet() {
	particles, err := soa.New(particle)
	if err != nil {
		log.Fatal(err)
	}

	_, ok, _ := particles.TryGet(0, "x")
	fmt.Println("found:", ok)

	_, err = particles.Get(0, "x")
	fmt.Println(errors.Is(err, soa.ErrIndexNotUsed))

	// Output:
	// found: false
	// true
}
