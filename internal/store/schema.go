package store

// SchemaVersion is the current store schema version
const SchemaVersion = 2

const schema = `
-- Submissions table: one row per filled-in form, draft or final
CREATE TABLE IF NOT EXISTS submissions (
    id TEXT PRIMARY KEY,
    form TEXT NOT NULL,
    status TEXT NOT NULL DEFAULT 'draft' CHECK(status IN ('draft', 'submitted')),
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

-- Field values table
CREATE TABLE IF NOT EXISTS field_values (
    submission_id TEXT NOT NULL,
    field_key TEXT NOT NULL,
    value TEXT NOT NULL DEFAULT '',
    PRIMARY KEY (submission_id, field_key),
    FOREIGN KEY (submission_id) REFERENCES submissions(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS schema_info (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_submissions_form ON submissions(form, status);
`

// Migration defines a store migration
type Migration struct {
	Version     int
	Description string
	SQL         string
}

// Migrations is the list of all store migrations in order
var Migrations = []Migration{
	// Version 1 is the initial schema - no migration needed
	{
		Version:     2,
		Description: "Index submissions by update time for list ordering",
		SQL:         `CREATE INDEX IF NOT EXISTS idx_submissions_updated ON submissions(updated_at);`,
	},
}
