package services

import (
	"fmt"
	"testing"
)

// scriptedRandom replays fixed draws and records the order they were made in
type scriptedRandom struct {
	t      *testing.T
	ints   []int
	floats []float64
	calls  []string
}

func (r *scriptedRandom) Intn(n int) int {
	r.calls = append(r.calls, fmt.Sprintf("Intn(%d)", n))
	if len(r.ints) == 0 {
		r.t.Fatalf("unexpected Intn(%d) draw", n)
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	return v
}

func (r *scriptedRandom) Float64() float64 {
	r.calls = append(r.calls, "Float64")
	if len(r.floats) == 0 {
		r.t.Fatalf("unexpected Float64 draw")
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}
