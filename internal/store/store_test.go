package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func openTest(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), ".dlg", "forms.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "forms.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer s.Close()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("Database file not created")
	}
	v, err := s.SchemaVersion()
	if err != nil {
		t.Fatalf("SchemaVersion failed: %v", err)
	}
	if v != SchemaVersion {
		t.Errorf("SchemaVersion = %d, want %d", v, SchemaVersion)
	}

	// Reopening applies nothing new.
	s.Close()
	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	n, err := s.RunMigrations()
	if err != nil {
		t.Fatalf("RunMigrations failed: %v", err)
	}
	if n != 0 {
		t.Errorf("RunMigrations applied %d, want 0", n)
	}
}

func TestSaveDraftUpserts(t *testing.T) {
	s := openTest(t)

	first, err := s.SaveDraft("feedback", map[string]string{"name": "Ada", "notes": "Hello"})
	if err != nil {
		t.Fatalf("SaveDraft failed: %v", err)
	}
	if first.Status != StatusDraft {
		t.Errorf("Status = %q, want draft", first.Status)
	}

	second, err := s.SaveDraft("feedback", map[string]string{"name": "Ada Lovelace"})
	if err != nil {
		t.Fatalf("SaveDraft failed: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("draft ID changed: %s -> %s", first.ID, second.ID)
	}
	if diff := cmp.Diff(map[string]string{"name": "Ada Lovelace"}, second.Values); diff != "" {
		t.Errorf("values mismatch (-want +got):\n%s", diff)
	}

	draft, err := s.LatestDraft("feedback")
	if err != nil {
		t.Fatalf("LatestDraft failed: %v", err)
	}
	if draft.ID != first.ID {
		t.Errorf("LatestDraft = %s, want %s", draft.ID, first.ID)
	}
	if !draft.UpdatedAt.After(draft.CreatedAt) && !draft.UpdatedAt.Equal(draft.CreatedAt) {
		t.Errorf("UpdatedAt %v before CreatedAt %v", draft.UpdatedAt, draft.CreatedAt)
	}
}

func TestSubmitFinalisesDraft(t *testing.T) {
	s := openTest(t)

	draft, err := s.SaveDraft("feedback", map[string]string{"notes": "wip"})
	if err != nil {
		t.Fatalf("SaveDraft failed: %v", err)
	}
	sub, err := s.Submit("feedback", map[string]string{"notes": "done"})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if sub.ID != draft.ID {
		t.Errorf("Submit should finalise the draft: got %s, want %s", sub.ID, draft.ID)
	}
	if sub.Status != StatusSubmitted {
		t.Errorf("Status = %q, want submitted", sub.Status)
	}
	if sub.Values["notes"] != "done" {
		t.Errorf("notes = %q", sub.Values["notes"])
	}

	if _, err := s.LatestDraft("feedback"); !errors.Is(err, ErrNotFound) {
		t.Errorf("LatestDraft after submit: err = %v, want ErrNotFound", err)
	}

	// Without a draft, Submit records a fresh submission.
	again, err := s.Submit("feedback", map[string]string{"notes": "again"})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if again.ID == sub.ID {
		t.Error("second submit should create a new submission")
	}
}

func TestSubmissionLookup(t *testing.T) {
	s := openTest(t)

	orig := idGenerator
	defer func() { idGenerator = orig }()
	ids := []string{"abc-111", "abc-222"}
	idGenerator = func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	}

	if _, err := s.Submit("a", nil); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if _, err := s.Submit("b", nil); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	tests := []struct {
		name    string
		id      string
		want    string
		wantErr bool
	}{
		{"exact", "abc-111", "abc-111", false},
		{"unique prefix", "abc-2", "abc-222", false},
		{"ambiguous prefix", "abc", "", true},
		{"missing", "zzz", "", true},
		{"empty", "", "", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := s.Submission(tc.id)
			if tc.wantErr {
				if err == nil {
					t.Errorf("Submission(%q) = %s, want error", tc.id, got.ID)
				}
				return
			}
			if err != nil {
				t.Fatalf("Submission(%q) failed: %v", tc.id, err)
			}
			if got.ID != tc.want {
				t.Errorf("Submission(%q) = %s, want %s", tc.id, got.ID, tc.want)
			}
		})
	}
}

func TestListSubmissions(t *testing.T) {
	s := openTest(t)

	for i := 0; i < 3; i++ {
		if _, err := s.Submit("feedback", map[string]string{"n": fmt.Sprint(i)}); err != nil {
			t.Fatalf("Submit failed: %v", err)
		}
	}
	if _, err := s.SaveDraft("survey", map[string]string{"q": "x"}); err != nil {
		t.Fatalf("SaveDraft failed: %v", err)
	}

	all, err := s.ListSubmissions("")
	if err != nil {
		t.Fatalf("ListSubmissions failed: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("got %d submissions, want 4", len(all))
	}
	if all[0].Form != "survey" {
		t.Errorf("newest first: got %s", all[0].Form)
	}

	fb, err := s.ListSubmissions("feedback")
	if err != nil {
		t.Fatalf("ListSubmissions failed: %v", err)
	}
	var got []string
	for _, sub := range fb {
		got = append(got, sub.Values["n"])
	}
	if diff := cmp.Diff([]string{"2", "1", "0"}, got); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestDiscardDraft(t *testing.T) {
	s := openTest(t)

	if _, err := s.SaveDraft("feedback", map[string]string{"a": "1"}); err != nil {
		t.Fatalf("SaveDraft failed: %v", err)
	}
	if _, err := s.Submit("other", map[string]string{"b": "2"}); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	ok, err := s.DiscardDraft("feedback")
	if err != nil || !ok {
		t.Fatalf("DiscardDraft = %v, %v; want true, nil", ok, err)
	}
	ok, err = s.DiscardDraft("feedback")
	if err != nil || ok {
		t.Errorf("second DiscardDraft = %v, %v; want false, nil", ok, err)
	}
	if ok, _ := s.DiscardDraft("other"); ok {
		t.Error("DiscardDraft must not touch submitted forms")
	}

	var n int
	s.conn.QueryRow(`SELECT COUNT(*) FROM field_values`).Scan(&n)
	if n != 1 {
		t.Errorf("field_values rows = %d, want 1", n)
	}
}

func TestSaveRequiresForm(t *testing.T) {
	s := openTest(t)
	if _, err := s.SaveDraft("", nil); err == nil {
		t.Error("expected error for empty form name")
	}
}

func TestKeysSorted(t *testing.T) {
	sub := Submission{Values: map[string]string{"b": "", "a": "", "c": ""}}
	if diff := cmp.Diff([]string{"a", "b", "c"}, sub.Keys()); diff != "" {
		t.Errorf("Keys mismatch (-want +got):\n%s", diff)
	}
}
