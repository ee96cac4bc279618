package postgres

import (
	"database/sql"
	"fmt"
	"testing"
)

func TestIsNotFound(t *testing.T) {
	if !isNotFound(fmt.Errorf("get fixture: %w", sql.ErrNoRows)) {
		t.Fatalf("expected wrapped ErrNoRows to be not found")
	}
	if isNotFound(fmt.Errorf("pq: relation fixtures does not exist")) {
		t.Fatalf("expected unrelated error to be reported as is")
	}
}

func TestNullHelpers(t *testing.T) {
	if got := nullString("  "); got.Valid {
		t.Fatalf("expected blank string to be NULL")
	}
	if got := nullString(" 2025/26 "); !got.Valid || got.String != "2025/26" {
		t.Fatalf("unexpected null string: %+v", got)
	}

	three := 3
	if got := intPtrFromNull(nullIntPtr(&three)); got == nil || *got != 3 {
		t.Fatalf("expected score to survive round trip, got %v", got)
	}
	if got := intPtrFromNull(nullIntPtr(nil)); got != nil {
		t.Fatalf("expected nil score, got %v", *got)
	}
}
