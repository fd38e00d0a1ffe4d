package set

import (
	"slices"
	"testing"
)

func TestSet(t *testing.T) {
	S := MakeFromSlice([]string{"b", "a", "b"})
	if len(S) != 2 || !S.Contains("a") || S.Contains("c") {
		t.Fatalf("got %v", S.ToSortedSlice())
	}
	S.AddSlice([]string{"c", "a"})
	if got := S.ToSortedSlice(); !slices.Equal(got, []string{"a", "b", "c"}) {
		t.Fatalf("got %v", got)
	}
	S.Remove("a")
	S.Remove("b")
	S.Remove("c")
	if !S.IsEmpty() {
		t.Fatalf("wanted an empty set, got %v", S.ToSortedSlice())
	}
}
