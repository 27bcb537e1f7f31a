/*
 *   Copyright 2023 Martin Proffitt <mproffitt@choclab.net>
 *
 *  Licensed under the Apache License, Version 2.0 (the "License");
 *  you may not use this file except in compliance with the License.
 *  You may obtain a copy of the License at
 *
 *      http://www.apache.org/licenses/LICENSE-2.0
 *
 *  Unless required by applicable law or agreed to in writing, software
 *  distributed under the License is distributed on an "AS IS" BASIS,
 *  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *  See the License for the specific language governing permissions and
 *  limitations under the License.
 */
package try

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"

	"golang.org/x/sync/errgroup"
)

// PanicError carries a value recovered from a panic and the stack at the
// point it was recovered.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Unwrap exposes the panic value when it was itself an error
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

func newPanicError(v any) *PanicError {
	return &PanicError{Value: v, Stack: debug.Stack()}
}

// Err calls fn and returns its error, or a *PanicError if fn panics
func Err(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = newPanicError(r)
		}
	}()
	return fn()
}

// Result calls fn and returns its results. If fn panics the zero value of T
// is returned together with a *PanicError.
func Result[T any](fn func() (T, error)) (v T, err error) {
	defer func() {
		if r := recover(); r != nil {
			var zero T
			v, err = zero, newPanicError(r)
		}
	}()
	return fn()
}

// As calls fn and separates errors of type E from everything else.
//
// A returned error or panic value matching E is delivered as the second
// result. Other returned errors come back as the third result. Panics whose
// value does not match E are not recovered.
func As[T any, E error](fn func() (T, error)) (v T, matched E, err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		perr, ok := r.(error)
		if !ok || !errors.As(perr, &matched) {
			panic(r)
		}
		var zero T
		v, err = zero, nil
	}()

	if v, err = fn(); err != nil && errors.As(err, &matched) {
		var zero T
		return zero, matched, nil
	}
	return
}

// Outcome is the result of a function run by ResultAsync
type Outcome[T any] struct {
	Value T
	Err   error
}

// Async runs fn on its own goroutine. The returned channel receives exactly
// one value: fn's error, a *PanicError, or ctx.Err() if the context ends
// first.
func Async(ctx context.Context, fn func(context.Context) error) <-chan error {
	out := make(chan error, 1)
	go func() {
		defer close(out)
		o := <-ResultAsync(ctx, func(ctx context.Context) (struct{}, error) {
			return struct{}{}, fn(ctx)
		})
		out <- o.Err
	}()
	return out
}

// ResultAsync is the value returning form of Async
func ResultAsync[T any](ctx context.Context, fn func(context.Context) (T, error)) <-chan Outcome[T] {
	out := make(chan Outcome[T], 1)
	go func() {
		defer close(out)
		if err := ctx.Err(); err != nil {
			out <- Outcome[T]{Err: err}
			return
		}

		done := make(chan Outcome[T], 1)
		go func() {
			v, err := Result(func() (T, error) { return fn(ctx) })
			done <- Outcome[T]{Value: v, Err: err}
		}()

		select {
		case o := <-done:
			out <- o
		case <-ctx.Done():
			out <- Outcome[T]{Err: ctx.Err()}
		}
	}()
	return out
}

// All runs every fn concurrently and returns the first error or recovered
// panic. The context passed to the functions is cancelled as soon as one of
// them fails.
func All(ctx context.Context, fns ...func(context.Context) error) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, fn := range fns {
		fn := fn
		g.Go(func() error {
			return Err(func() error { return fn(gctx) })
		})
	}
	return g.Wait()
}
