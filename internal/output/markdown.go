package output

import (
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/marcus/dialog/internal/store"
	"golang.org/x/term"
)

const defaultWidth = 80

// TermWidth returns the width of stdout, or 80 when it is not a terminal.
func TermWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return defaultWidth
	}
	w, _, err := term.GetSize(fd)
	if err != nil || w <= 0 {
		return defaultWidth
	}
	return w
}

// Markdown renders md for the terminal, wrapping at width.
func Markdown(md string, width int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	return r.Render(md)
}

// SubmissionMarkdown lays a submission out as markdown, one heading per field
// in keys order. Multi-line values are kept as paragraphs.
func SubmissionMarkdown(sub *store.Submission, keys []string) string {
	var b strings.Builder
	b.WriteString("# " + sub.Form + "\n\n")
	b.WriteString("*" + string(sub.Status) + " · " + sub.UpdatedAt.Format("2006-01-02 15:04") + " · `" + sub.ID + "`*\n\n")

	if len(keys) == 0 {
		keys = sub.Keys()
	}
	for _, k := range keys {
		v, ok := sub.Values[k]
		if !ok {
			continue
		}
		b.WriteString("## " + k + "\n\n")
		if strings.TrimSpace(v) == "" {
			b.WriteString("_empty_\n\n")
			continue
		}
		b.WriteString(v + "\n\n")
	}
	return b.String()
}
