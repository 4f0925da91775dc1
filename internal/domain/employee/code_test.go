package employee

import "testing"

func TestNextCodeStartsSequence(t *testing.T) {
	if got := NextCode(""); got != "HTEMP101" {
		t.Fatalf("expected HTEMP101, got %s", got)
	}
}

func TestNextCodeIncrements(t *testing.T) {
	if got := NextCode("HTEMP101"); got != "HTEMP102" {
		t.Fatalf("expected HTEMP102, got %s", got)
	}
	if got := NextCode("HTEMP199"); got != "HTEMP200" {
		t.Fatalf("expected HTEMP200, got %s", got)
	}
}

func TestNextCodeFallsBackOnGarbage(t *testing.T) {
	if got := NextCode("EMP-7"); got != "HTEMP101" {
		t.Fatalf("expected fallback to HTEMP101, got %s", got)
	}
}
