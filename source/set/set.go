package set

import (
	"cmp"
	"slices"
)

type Set[E cmp.Ordered] map[E]struct{}

func MakeFromSlice[E cmp.Ordered](slice []E) Set[E] {
	S := Set[E]{}
	for _, v := range slice {
		S.Add(v)
	}
	return S
}

func (S Set[E]) Add(e E) {
	S[e] = struct{}{}
}

func (S Set[E]) AddSlice(slice []E) {
	for _, e := range slice {
		S.Add(e)
	}
}

func (S Set[E]) Remove(e E) {
	delete(S, e)
}

func (S Set[E]) Contains(e E) bool {
	_, found := S[e]
	return found
}

func (S Set[E]) IsEmpty() bool {
	return len(S) == 0
}

// The elements in order, so that anything we show the user comes out the same each time.
func (S Set[E]) ToSortedSlice() []E {
	result := make([]E, 0, len(S))
	for e := range S {
		result = append(result, e)
	}
	slices.Sort(result)
	return result
}
