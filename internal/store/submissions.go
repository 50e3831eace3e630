package store

import (
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"
)

// Status of a submission
type Status string

const (
	StatusDraft     Status = "draft"
	StatusSubmitted Status = "submitted"
)

// timeLayout keeps stored timestamps fixed-width so they sort as text.
const timeLayout = "2006-01-02 15:04:05.000000000"

// ErrNotFound is returned when no submission matches a lookup.
var ErrNotFound = errors.New("submission not found")

// Submission is one saved set of field values for a form.
type Submission struct {
	ID        string            `json:"id"`
	Form      string            `json:"form"`
	Status    Status            `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
	Values    map[string]string `json:"values"`
}

// Keys returns the field keys in sorted order.
func (s *Submission) Keys() []string {
	keys := make([]string, 0, len(s.Values))
	for k := range s.Values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// SaveDraft stores values as the form's single draft, creating it if needed.
func (s *Store) SaveDraft(form string, values map[string]string) (*Submission, error) {
	return s.save(form, values, StatusDraft)
}

// Submit finalises the form's draft with values, or records a new submission
// when there is no draft.
func (s *Store) Submit(form string, values map[string]string) (*Submission, error) {
	return s.save(form, values, StatusSubmitted)
}

func (s *Store) save(form string, values map[string]string, status Status) (*Submission, error) {
	if form == "" {
		return nil, fmt.Errorf("save %s: form name required", status)
	}

	tx, err := s.conn.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(timeLayout)
	id, err := draftID(tx, form)
	if err != nil {
		return nil, err
	}
	if id == "" {
		id = idGenerator()
		if _, err := tx.Exec(`INSERT INTO submissions (id, form, status, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?)`, id, form, status, now, now); err != nil {
			return nil, fmt.Errorf("insert submission: %w", err)
		}
	} else {
		if _, err := tx.Exec(`UPDATE submissions SET status = ?, updated_at = ? WHERE id = ?`,
			status, now, id); err != nil {
			return nil, fmt.Errorf("update submission: %w", err)
		}
	}

	if _, err := tx.Exec(`DELETE FROM field_values WHERE submission_id = ?`, id); err != nil {
		return nil, fmt.Errorf("clear values: %w", err)
	}
	for k, v := range values {
		if _, err := tx.Exec(`INSERT INTO field_values (submission_id, field_key, value) VALUES (?, ?, ?)`,
			id, k, v); err != nil {
			return nil, fmt.Errorf("insert value %q: %w", k, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return s.Submission(id)
}

func draftID(tx *sql.Tx, form string) (string, error) {
	var id string
	err := tx.QueryRow(`SELECT id FROM submissions WHERE form = ? AND status = ?`, form, StatusDraft).Scan(&id)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("find draft: %w", err)
	}
	return id, nil
}

// LatestDraft returns the form's draft, or ErrNotFound.
func (s *Store) LatestDraft(form string) (*Submission, error) {
	var id string
	err := s.conn.QueryRow(`SELECT id FROM submissions WHERE form = ? AND status = ?
		ORDER BY updated_at DESC LIMIT 1`, form, StatusDraft).Scan(&id)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return s.Submission(id)
}

// Submission returns the submission whose ID equals or uniquely starts with id.
func (s *Store) Submission(id string) (*Submission, error) {
	if id == "" {
		return nil, ErrNotFound
	}
	rows, err := s.conn.Query(`SELECT id, form, status, created_at, updated_at FROM submissions
		WHERE id = ? OR id LIKE ? ORDER BY id = ? DESC LIMIT 2`, id, id+"%", id)
	if err != nil {
		return nil, err
	}
	subs, err := scanSubmissions(rows)
	if err != nil {
		return nil, err
	}
	switch {
	case len(subs) == 0:
		return nil, ErrNotFound
	case len(subs) > 1 && subs[0].ID != id:
		return nil, fmt.Errorf("ambiguous submission id %q", id)
	}

	sub := &subs[0]
	if err := s.loadValues(sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// ListSubmissions returns submissions newest first, limited to form when non-empty.
func (s *Store) ListSubmissions(form string) ([]Submission, error) {
	query := `SELECT id, form, status, created_at, updated_at FROM submissions`
	var args []any
	if form != "" {
		query += ` WHERE form = ?`
		args = append(args, form)
	}
	query += ` ORDER BY updated_at DESC, rowid DESC`

	rows, err := s.conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	subs, err := scanSubmissions(rows)
	if err != nil {
		return nil, err
	}
	for i := range subs {
		if err := s.loadValues(&subs[i]); err != nil {
			return nil, err
		}
	}
	return subs, nil
}

// DiscardDraft deletes the form's draft. Reports whether one existed.
func (s *Store) DiscardDraft(form string) (bool, error) {
	tx, err := s.conn.Begin()
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	id, err := draftID(tx, form)
	if err != nil || id == "" {
		return false, err
	}
	if _, err := tx.Exec(`DELETE FROM field_values WHERE submission_id = ?`, id); err != nil {
		return false, fmt.Errorf("discard values: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM submissions WHERE id = ?`, id); err != nil {
		return false, fmt.Errorf("discard draft: %w", err)
	}
	return true, tx.Commit()
}

func scanSubmissions(rows *sql.Rows) ([]Submission, error) {
	defer rows.Close()

	var subs []Submission
	for rows.Next() {
		var sub Submission
		var status string
		if err := rows.Scan(&sub.ID, &sub.Form, &status, &sub.CreatedAt, &sub.UpdatedAt); err != nil {
			return nil, err
		}
		sub.Status = Status(status)
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}

func (s *Store) loadValues(sub *Submission) error {
	rows, err := s.conn.Query(`SELECT field_key, value FROM field_values WHERE submission_id = ?`, sub.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	sub.Values = map[string]string{}
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return err
		}
		sub.Values[k] = v
	}
	return rows.Err()
}
