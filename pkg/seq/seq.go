// Package seq holds small generic helpers over slices and maps.
package seq

import (
	"math/rand"

	"github.com/notapipeline/extensions/pkg/types"
)

// ForEach calls fn for every element of s in order and returns s
func ForEach[T any](s []T, fn func(T)) ([]T, error) {
	if fn == nil {
		return s, types.InvalidArgumentError{Argument: "fn"}
	}
	for _, v := range s {
		fn(v)
	}
	return s, nil
}

// Select maps every element of s through fn
func Select[T, R any](s []T, fn func(T) R) ([]R, error) {
	if fn == nil {
		return nil, types.InvalidArgumentError{Argument: "fn"}
	}
	out := make([]R, 0, len(s))
	for _, v := range s {
		out = append(out, fn(v))
	}
	return out, nil
}

// NotNil returns the non-nil elements of s, keeping their order
func NotNil[T any](s []*T) []*T {
	out := make([]*T, 0, len(s))
	for _, v := range s {
		if v != nil {
			out = append(out, v)
		}
	}
	return out
}

// ValueNotNil returns a copy of m without the entries holding a nil value
func ValueNotNil[K comparable, V any](m map[K]*V) map[K]*V {
	out := make(map[K]*V, len(m))
	for k, v := range m {
		if v != nil {
			out[k] = v
		}
	}
	return out
}

// Shuffle returns a shuffled copy of s. The input is left untouched.
//
// A nil r uses the global source from math/rand.
func Shuffle[T any](s []T, r *rand.Rand) []T {
	out := append([]T(nil), s...)
	swap := func(i, j int) { out[i], out[j] = out[j], out[i] }
	if r == nil {
		rand.Shuffle(len(out), swap)
		return out
	}
	r.Shuffle(len(out), swap)
	return out
}
