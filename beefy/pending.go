package beefy

import (
	"sort"

	"golang.org/x/exp/maps"

	"github.com/beefynet/beefy/common/types"
)

// pendingBuffer is an ordered map from block number to a list of items of
// type T, supporting a range-split-and-drain operation. Votes and
// justifications each get their own instance.
type pendingBuffer[T any] struct {
	items map[types.BlockNumber][]T
}

func newPendingBuffer[T any]() *pendingBuffer[T] {
	return &pendingBuffer[T]{items: make(map[types.BlockNumber][]T)}
}

func (p *pendingBuffer[T]) add(n types.BlockNumber, item T) {
	p.items[n] = append(p.items[n], item)
}

// drain splits the buffer into three partitions by block number: below lo
// (discarded), within [lo, hi] (returned in ascending block-number order,
// for the caller to handle), and above hi (retained for a later pass).
func (p *pendingBuffer[T]) drain(lo, hi types.BlockNumber) []pendingEntry[T] {
	var ready []pendingEntry[T]
	numbers := maps.Keys(p.items)
	sort.Slice(numbers, func(i, j int) bool { return numbers[i] < numbers[j] })
	for _, n := range numbers {
		switch {
		case n < lo:
			delete(p.items, n)
		case n > hi:
			// retained
		default:
			ready = append(ready, pendingEntry[T]{BlockNumber: n, Items: p.items[n]})
			delete(p.items, n)
		}
	}
	return ready
}

type pendingEntry[T any] struct {
	BlockNumber types.BlockNumber
	Items       []T
}
