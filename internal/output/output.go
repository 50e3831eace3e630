// Package output holds the CLI's printing helpers.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/marcus/dialog/internal/store"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	kindStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))

	draftStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	submittedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
)

// Stdout and Stderr are the writers used by the print helpers. Tests replace them.
var (
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

// Error prints a formatted error line to stderr
func Error(format string, args ...any) {
	fmt.Fprintln(Stderr, errorStyle.Render("ERROR:")+" "+fmt.Sprintf(format, args...))
}

// Warning prints a formatted warning line to stderr
func Warning(format string, args ...any) {
	fmt.Fprintln(Stderr, warningStyle.Render("WARNING:")+" "+fmt.Sprintf(format, args...))
}

// Success prints a formatted confirmation line to stdout
func Success(format string, args ...any) {
	fmt.Fprintln(Stdout, successStyle.Render(fmt.Sprintf(format, args...)))
}

// JSON writes v to stdout as indented JSON
func JSON(v any) error {
	enc := json.NewEncoder(Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// JSONError writes an error object to stdout for --json callers
func JSONError(err error) error {
	return JSON(map[string]string{"error": err.Error()})
}

// FormatStatus renders a submission status as a coloured tag
func FormatStatus(s store.Status) string {
	tag := "[" + string(s) + "]"
	switch s {
	case store.StatusDraft:
		return draftStyle.Render(tag)
	case store.StatusSubmitted:
		return submittedStyle.Render(tag)
	default:
		return tag
	}
}

// FormatTimeAgo renders t relative to now
func FormatTimeAgo(t time.Time) string {
	return formatTimeAgo(t, time.Now())
}

func formatTimeAgo(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	default:
		return t.Format("2006-01-02")
	}
}

// FormatSubmissionShort renders a one-line summary of a submission
func FormatSubmissionShort(sub *store.Submission) string {
	id := sub.ID
	if len(id) > 8 {
		id = id[:8]
	}
	return fmt.Sprintf("%s %s %s %s", id, FormatStatus(sub.Status), sub.Form,
		mutedStyle.Render(FormatTimeAgo(sub.UpdatedAt)))
}
