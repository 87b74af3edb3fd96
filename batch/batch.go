// Package batch splits lists into fixed-size chunks.
package batch

import (
	"errors"
	"fmt"
	"iter"
)

// DefaultSize is the chunk size used for ticker batches.
const DefaultSize = 50

// ErrInvalidArgument is matched by InvalidArgumentError.
var ErrInvalidArgument = errors.New("invalid argument")

// InvalidArgumentError reports a malformed argument.
type InvalidArgumentError struct {
	Name  string
	Value int
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("%v: %s must be positive, got %d", ErrInvalidArgument, e.Name, e.Value)
}

func (e *InvalidArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

// Chunks returns a sequence of consecutive chunks of items, each of length
// size except the last which holds the remainder. The sequence is produced
// lazily and can be ranged over once; later ranges yield nothing.
//
// Chunks share memory with items but are capacity clipped, so appending to a
// chunk never overwrites the next one.
func Chunks[T any](items []T, size int) (iter.Seq[[]T], error) {
	if size <= 0 {
		return nil, &InvalidArgumentError{Name: "size", Value: size}
	}
	next := 0
	return func(yield func([]T) bool) {
		for next < len(items) {
			end := min(next+size, len(items))
			chunk := items[next:end:end]
			next = end
			if !yield(chunk) {
				return
			}
		}
	}, nil
}

// Collect drains seq into a slice.
func Collect[T any](seq iter.Seq[[]T]) [][]T {
	out := [][]T{}
	for chunk := range seq {
		out = append(out, chunk)
	}
	return out
}

// Split is Chunks followed by Collect.
func Split[T any](items []T, size int) ([][]T, error) {
	seq, err := Chunks(items, size)
	if err != nil {
		return nil, err
	}
	return Collect(seq), nil
}
