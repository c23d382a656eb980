package search

import (
	"reflect"
	"testing"
)

func TestTermSet(t *testing.T) {
	t.Run("Add", func(t *testing.T) {
		t.Run("trims and appends in order", func(t *testing.T) {
			set := NewTermSet()

			if !set.Add("  golang  ") {
				t.Fatal("expected first add to succeed")
			}
			if !set.Add("kubernetes") {
				t.Fatal("expected second add to succeed")
			}

			want := []string{"golang", "kubernetes"}
			if !reflect.DeepEqual(set.Terms(), want) {
				t.Errorf("expected %v, got %v", want, set.Terms())
			}
		})

		t.Run("rejects blank input", func(t *testing.T) {
			set := NewTermSet()

			if set.Add("   ") {
				t.Error("expected blank term to be rejected")
			}
			if set.Len() != 0 {
				t.Errorf("expected empty set, got %d terms", set.Len())
			}
		})

		t.Run("rejects duplicates", func(t *testing.T) {
			set := NewTermSet()
			set.Add("golang")

			if set.Add("golang") {
				t.Error("expected duplicate to be rejected")
			}
			if set.Add(" golang ") {
				t.Error("expected trimmed duplicate to be rejected")
			}
			if set.Len() != 1 {
				t.Errorf("expected one term, got %d", set.Len())
			}
		})

		t.Run("terms are case-sensitive", func(t *testing.T) {
			set := NewTermSet()
			set.Add("Go")

			if !set.Add("go") {
				t.Error("expected differently cased term to be accepted")
			}
		})
	})

	t.Run("RemoveAt", func(t *testing.T) {
		set := NewTermSet()
		set.Add("a")
		set.Add("b")
		set.Add("c")

		if !set.RemoveAt(1) {
			t.Fatal("expected removal to succeed")
		}
		if !reflect.DeepEqual(set.Terms(), []string{"a", "c"}) {
			t.Errorf("unexpected terms: %v", set.Terms())
		}

		if set.RemoveAt(-1) || set.RemoveAt(5) {
			t.Error("expected out-of-range removal to fail")
		}
	})

	t.Run("RemoveLast", func(t *testing.T) {
		set := NewTermSet()

		if set.RemoveLast() {
			t.Error("expected removal from empty set to fail")
		}

		set.Add("a")
		set.Add("b")
		if !set.RemoveLast() {
			t.Fatal("expected removal to succeed")
		}
		if !reflect.DeepEqual(set.Terms(), []string{"a"}) {
			t.Errorf("unexpected terms: %v", set.Terms())
		}
	})

	t.Run("Clear", func(t *testing.T) {
		set := NewTermSet()
		set.Add("a")
		set.Clear()

		if set.Len() != 0 {
			t.Errorf("expected empty set after clear, got %d", set.Len())
		}
	})

	t.Run("Terms returns a copy", func(t *testing.T) {
		set := NewTermSet()
		set.Add("a")

		terms := set.Terms()
		terms[0] = "mutated"

		if set.Terms()[0] != "a" {
			t.Error("mutating the returned slice should not affect the set")
		}
	})
}
