package output

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/marcus/dialog/internal/store"
)

func capture(t *testing.T) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var out, errOut bytes.Buffer
	origOut, origErr := Stdout, Stderr
	Stdout, Stderr = &out, &errOut
	t.Cleanup(func() { Stdout, Stderr = origOut, origErr })
	return &out, &errOut
}

func TestPrintHelpers(t *testing.T) {
	out, errOut := capture(t)

	Error("failed: %v", errors.New("boom"))
	Warning("careful %d", 2)
	Success("saved %s", "draft")

	if !strings.Contains(errOut.String(), "ERROR: failed: boom") {
		t.Errorf("stderr = %q", errOut.String())
	}
	if !strings.Contains(errOut.String(), "WARNING: careful 2") {
		t.Errorf("stderr = %q", errOut.String())
	}
	if !strings.Contains(out.String(), "saved draft") {
		t.Errorf("stdout = %q", out.String())
	}
}

func TestJSON(t *testing.T) {
	out, _ := capture(t)

	if err := JSON(map[string]int{"n": 1}); err != nil {
		t.Fatalf("JSON failed: %v", err)
	}
	if got := out.String(); got != "{\n  \"n\": 1\n}\n" {
		t.Errorf("JSON output = %q", got)
	}

	out.Reset()
	JSONError(errors.New("nope"))
	if !strings.Contains(out.String(), `"error": "nope"`) {
		t.Errorf("JSONError output = %q", out.String())
	}
}

func TestFormatTimeAgo(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		ago  time.Duration
		want string
	}{
		{10 * time.Second, "just now"},
		{5 * time.Minute, "5m ago"},
		{3 * time.Hour, "3h ago"},
		{50 * time.Hour, "2d ago"},
		{30 * 24 * time.Hour, "2026-02-08"},
	}
	for _, tc := range tests {
		if got := formatTimeAgo(now.Add(-tc.ago), now); got != tc.want {
			t.Errorf("formatTimeAgo(-%v) = %q, want %q", tc.ago, got, tc.want)
		}
	}
}

func TestFormatStatus(t *testing.T) {
	if got := FormatStatus(store.StatusDraft); !strings.Contains(got, "[draft]") {
		t.Errorf("FormatStatus(draft) = %q", got)
	}
	if got := FormatStatus(store.Status("other")); got != "[other]" {
		t.Errorf("FormatStatus(other) = %q", got)
	}
}

func TestSubmissionMarkdown(t *testing.T) {
	sub := &store.Submission{
		ID:     "abc",
		Form:   "feedback",
		Status: store.StatusSubmitted,
		Values: map[string]string{"name": "Ada", "notes": "Line one\nLine two", "blank": " "},
	}

	md := SubmissionMarkdown(sub, []string{"name", "notes", "blank", "missing"})
	for _, want := range []string{"# feedback", "## name\n\nAda", "## notes\n\nLine one\nLine two", "## blank\n\n_empty_", "`abc`"} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
	if strings.Contains(md, "missing") {
		t.Error("keys without values should be skipped")
	}
	if strings.Index(md, "## name") > strings.Index(md, "## notes") {
		t.Error("fields should follow the given key order")
	}
}

func TestMarkdown(t *testing.T) {
	out, err := Markdown("# Title\n\nSome *text*.", 40)
	if err != nil {
		t.Fatalf("Markdown failed: %v", err)
	}
	if !strings.Contains(out, "Title") || !strings.Contains(out, "text") {
		t.Errorf("rendered markdown lost content: %q", out)
	}
}
