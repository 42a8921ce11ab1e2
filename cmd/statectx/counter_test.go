package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestRunCounter(t *testing.T) {
	var out bytes.Buffer
	if err := runCounter(&out, 3); err != nil {
		t.Fatalf("runCounter() error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4:\n%s", len(lines), out.String())
	}
	for i, want := range []string{"Count: 0", "Count: 1", "Count: 2", "Count: 3"} {
		if !strings.Contains(lines[i], want) {
			t.Errorf("line %d = %q, want %q", i, lines[i], want)
		}
	}
}

func TestRunCounterRejectsNegativeSteps(t *testing.T) {
	var out bytes.Buffer
	err := runCounter(&out, -1)
	if err == nil || !strings.Contains(err.Error(), "S020") {
		t.Fatalf("runCounter(-1) error = %v, want S020", err)
	}
}
