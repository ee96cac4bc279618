package id

import (
	"testing"

	"github.com/google/uuid"
)

func TestRandomGenerator_NewID(t *testing.T) {
	t.Parallel()

	g := NewRandomGenerator()
	a, err := g.NewID()
	if err != nil {
		t.Fatalf("new id: %v", err)
	}
	b, err := g.NewID()
	if err != nil {
		t.Fatalf("new id: %v", err)
	}
	if a == b {
		t.Fatalf("expected distinct ids, got %s twice", a)
	}
	if _, err := uuid.Parse(a); err != nil {
		t.Fatalf("expected uuid, got %q: %v", a, err)
	}
}

func TestFixtureID_IsStable(t *testing.T) {
	t.Parallel()

	a := FixtureID("2025-08-02", "Banks o' Dee", "Keith", "Highland League")
	b := FixtureID(" 2025-08-02", "banks o' dee", "KEITH ", "highland league")
	if a != b {
		t.Fatalf("expected normalized key to yield the same id: %s vs %s", a, b)
	}
	if c := FixtureID("2025-08-02", "Keith", "Banks o' Dee", "Highland League"); c == a {
		t.Fatalf("expected reversed fixture to get a different id")
	}
}
