package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/dialog/internal/config"
	"github.com/marcus/dialog/internal/formdef"
	"github.com/marcus/dialog/internal/output"
	"github.com/marcus/dialog/internal/store"
	"github.com/marcus/dialog/pkg/dialog/table"
	"github.com/spf13/cobra"
)

// runProgram runs the UI. Tests replace it to drive the model directly.
var runProgram = func(m tea.Model, opts ...tea.ProgramOption) (tea.Model, error) {
	return tea.NewProgram(m, opts...).Run()
}

var editCmd = &cobra.Command{
	Use:   "edit [form-file]",
	Short: "Fill in a form",
	Long: `Open a form definition in the terminal editor.

Values are saved as a draft whenever a field changes, so an interrupted session
resumes where it stopped. Press ctrl+s to submit. Without a file argument the
most recently edited form is opened.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, cfg, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		path := cfg.LastForm
		if len(args) == 1 {
			path = args[0]
		}
		if path == "" {
			err := errors.New("no form file given and no form edited before")
			output.Error("%v", err)
			return err
		}

		def, err := formdef.Load(path)
		if err != nil {
			output.Error("%v", err)
			return err
		}
		form, err := def.Build(formdef.Options{DefaultHeight: cfg.DefaultHeight})
		if err != nil {
			output.Error("%v", err)
			return err
		}

		sess := &editSession{store: st, form: form, now: time.Now}
		if err := sess.prefill(); err != nil {
			output.Error("%v", err)
			return err
		}
		form.OnChange(sess.changed)
		form.OnEdit(sess.edited)

		tbl := table.New(form.Root,
			table.WithStyles(table.StylesFromTheme(table.Theme{
				Primary:    cfg.Theme.Primary,
				Muted:      cfg.Theme.Muted,
				Background: cfg.Theme.Background,
			})),
			table.WithMouse(cfg.Mouse),
			table.WithSubmit(sess.submit),
		)

		opts := []tea.ProgramOption{tea.WithAltScreen()}
		if cfg.Mouse {
			opts = append(opts, tea.WithMouseCellMotion())
		}
		if _, err := runProgram(tbl, opts...); err != nil {
			output.Error("editor: %v", err)
			return err
		}
		form.Root.Dispose()

		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
		if err := config.SetLastForm(getBaseDir(), path); err != nil {
			slog.Warn("record last form", "err", err)
		}

		if err := tbl.Err(); err != nil {
			output.Error("%v", err)
			return err
		}
		return sess.finish()
	},
}

// draftSaveInterval bounds how often keystrokes inside a multi-line row
// write the draft. Committed edits always save.
const draftSaveInterval = 2 * time.Second

// editSession ties a built form to its stored draft.
type editSession struct {
	store *store.Store
	form  *formdef.Form
	now   func() time.Time

	initial   map[string]string
	draftID   string
	lastSave  time.Time
	submitted *store.Submission
	saveErr   error
}

func (s *editSession) prefill() error {
	defer func() { s.initial = s.form.Values() }()

	draft, err := s.store.LatestDraft(s.form.Name)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load draft: %w", err)
	}
	s.form.Prefill(draft.Values)
	s.draftID = draft.ID
	slog.Info("draft restored", "form", s.form.Name, "id", draft.ID)
	return nil
}

// changed saves the draft when a field edit is committed.
func (s *editSession) changed(key string) {
	s.saveDraft(key)
}

// edited saves the draft while typing, at most once per draftSaveInterval.
// Skipped keystrokes are picked up by the next commit or by finish.
func (s *editSession) edited(key string) {
	if s.now().Sub(s.lastSave) < draftSaveInterval {
		return
	}
	s.saveDraft(key)
}

func (s *editSession) saveDraft(key string) {
	if s.submitted != nil {
		return
	}
	sub, err := s.store.SaveDraft(s.form.Name, s.form.Values())
	if err != nil {
		s.saveErr = err
		slog.Error("save draft", "form", s.form.Name, "field", key, "err", err)
		return
	}
	s.draftID = sub.ID
	s.lastSave = s.now()
	slog.Debug("draft saved", "form", s.form.Name, "field", key, "id", sub.ID)
}

func (s *editSession) submit() {
	sub, err := s.store.Submit(s.form.Name, s.form.Values())
	if err != nil {
		s.saveErr = err
		slog.Error("submit", "form", s.form.Name, "err", err)
		return
	}
	s.submitted = sub
	slog.Info("form submitted", "form", s.form.Name, "id", sub.ID)
}

// finish reports the outcome once the UI has exited.
func (s *editSession) finish() error {
	if s.submitted != nil {
		output.Success("SUBMITTED %s (%s)", s.submitted.ID, s.form.Name)
		return nil
	}
	if s.saveErr != nil {
		output.Error("save: %v", s.saveErr)
		return s.saveErr
	}

	values := s.form.Values()
	if s.draftID == "" && maps.Equal(values, s.initial) {
		output.Warning("no changes to %s", s.form.Name)
		return nil
	}

	// Catch edits that never fired a change event, such as a field still focused on quit.
	sub, err := s.store.SaveDraft(s.form.Name, values)
	if err != nil {
		output.Error("save draft: %v", err)
		return err
	}
	output.Success("DRAFT %s saved (%s)", sub.ID, s.form.Name)
	return nil
}

func init() {
	rootCmd.AddCommand(editCmd)
}
