package ordindex

import "testing"

func TestInsertContainsRemove(t *testing.T) {
	x := New()
	x.Insert("banana")
	x.Insert("apple")
	x.Insert("apple") // idempotent
	if x.Len() != 2 {
		t.Fatalf("expected len 2, got %d", x.Len())
	}
	if !x.Contains("apple") {
		t.Fatal("expected apple present")
	}
	x.Remove("apple")
	if x.Contains("apple") {
		t.Fatal("expected apple removed")
	}
}

func TestOrderedIteration(t *testing.T) {
	x := New()
	for _, s := range []string{"cherry", "apple", "banana"} {
		x.Insert(s)
	}
	got := x.All()
	want := []string{"apple", "banana", "cherry"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestPrefixRange(t *testing.T) {
	x := New()
	for _, s := range []string{"cat", "car", "cart", "dog", "care"} {
		x.Insert(s)
	}
	got := x.PrefixRange("car")
	want := []string{"car", "care", "cart"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestPrefixRangeEmpty(t *testing.T) {
	x := New()
	x.Insert("dog")
	if got := x.PrefixRange("cat"); len(got) != 0 {
		t.Fatalf("expected no matches, got %v", got)
	}
}
