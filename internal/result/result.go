// Package result holds the success-or-failure value every qc operation returns.
//
// Go methods cannot declare their own type parameters, so the composition
// operators are package functions: Map(r, f) rather than r.Map(f).
package result

import (
	"errors"

	"qc/internal/models"
)

type Result[T any] struct {
	value T
	err   *models.Error
}

func Ok[T any](v T) Result[T] {
	return Result[T]{value: v}
}

// Fail builds a failed Result. A nil err still yields a failure so that a
// Result is never silently successful.
func Fail[T any](err *models.Error) Result[T] {
	if err == nil {
		err = &models.Error{Kind: models.KindUnknown}
	}
	return Result[T]{err: err}
}

// FromError lifts a Go (value, error) pair. A non-taxonomy error is wrapped
// with the given kind.
func FromError[T any](v T, err error, kind models.Kind) Result[T] {
	if err == nil {
		return Ok(v)
	}
	var e *models.Error
	if errors.As(err, &e) {
		return Fail[T](e)
	}
	return Fail[T](&models.Error{Kind: kind, Err: err})
}

func (r Result[T]) IsOk() bool {
	return r.err == nil
}

func (r Result[T]) Value() (T, bool) {
	return r.value, r.err == nil
}

func (r Result[T]) Err() *models.Error {
	return r.err
}

// Unpack converts back to a Go (value, error) pair.
func (r Result[T]) Unpack() (T, error) {
	if r.err != nil {
		var zero T
		return zero, r.err
	}
	return r.value, nil
}

func Map[T, U any](r Result[T], f func(T) U) Result[U] {
	if r.err != nil {
		return Result[U]{err: r.err}
	}
	return Ok(f(r.value))
}

func FlatMap[T, U any](r Result[T], f func(T) Result[U]) Result[U] {
	if r.err != nil {
		return Result[U]{err: r.err}
	}
	return f(r.value)
}

type Pair[A, B any] struct {
	First  A
	Second B
}

// Zip succeeds only when both inputs succeeded. Otherwise the left error wins.
func Zip[A, B any](a Result[A], b Result[B]) Result[Pair[A, B]] {
	if a.err != nil {
		return Result[Pair[A, B]]{err: a.err}
	}
	if b.err != nil {
		return Result[Pair[A, B]]{err: b.err}
	}
	return Ok(Pair[A, B]{First: a.value, Second: b.value})
}

func Match[T, U any](r Result[T], onOk func(T) U, onErr func(*models.Error) U) U {
	if r.err != nil {
		return onErr(r.err)
	}
	return onOk(r.value)
}
