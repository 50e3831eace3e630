package search

import (
	"testing"

	"github.com/marcus/dialog/internal/store"
)

func subs() []store.Submission {
	return []store.Submission{
		{ID: "s1", Form: "feedback", Values: map[string]string{
			"name":  "Ada Lovelace",
			"notes": "The engine works.\nMore later.",
		}},
		{ID: "s2", Form: "feedback", Values: map[string]string{
			"name":  "Grace Hopper",
			"notes": "",
		}},
	}
}

func TestFind(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantFirst string
		wantExact bool
		wantNone  bool
	}{
		{"substring", "lovelace", "Ada Lovelace", true, false},
		{"case insensitive", "ENGINE", "The engine works.\nMore later.", true, false},
		{"fuzzy", "grchpr", "Grace Hopper", false, false},
		{"empty", "  ", "", false, true},
		{"no match", "zzzz", "", false, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			hits := Find(subs(), tc.query)
			if tc.wantNone {
				if len(hits) != 0 {
					t.Errorf("got %d hits, want none", len(hits))
				}
				return
			}
			if len(hits) == 0 {
				t.Fatal("got no hits")
			}
			if hits[0].Value != tc.wantFirst {
				t.Errorf("first hit = %q, want %q", hits[0].Value, tc.wantFirst)
			}
			if hits[0].Exact != tc.wantExact {
				t.Errorf("Exact = %v, want %v", hits[0].Exact, tc.wantExact)
			}
		})
	}
}

func TestFindExactBeforeFuzzy(t *testing.T) {
	hits := Find(subs(), "ada")
	if len(hits) == 0 || !hits[0].Exact || hits[0].Submission.ID != "s1" {
		t.Fatalf("first hit should be the exact match in s1: %+v", hits)
	}
	for i, h := range hits {
		if i > 0 && h.Exact && !hits[i-1].Exact {
			t.Errorf("exact hit %d after a fuzzy hit", i)
		}
	}
	for _, h := range hits {
		if h.Value == "" {
			t.Error("empty values should never match")
		}
	}
}

func TestSnippet(t *testing.T) {
	h := Hit{Value: "line one\nline two"}
	if got := Snippet(h, 0); got != "line one line two" {
		t.Errorf("Snippet = %q", got)
	}

	long := Hit{Value: "aaaaaaaaaaaaaaaaaaaaneedlebbbbbbbbbbbbbbbbbbbb", Matched: []int{20}}
	got := Snippet(long, 12)
	if n := len([]rune(got)); n != 12 {
		t.Errorf("Snippet width = %d, want 12 (%q)", n, got)
	}
	if got[0:3] != "…" {
		t.Errorf("Snippet should elide the start: %q", got)
	}
}
