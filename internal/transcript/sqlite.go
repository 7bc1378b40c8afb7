// Package transcript persists per-candidate interview transcripts, grouped
// by skill with a reserved HR group.
package transcript

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/spurge/netica/internal/interview"
)

const schema = `
CREATE TABLE IF NOT EXISTS skill_groups (
    candidate_id TEXT NOT NULL,
    skill TEXT NOT NULL,
    position INTEGER NOT NULL,
    PRIMARY KEY (candidate_id, skill)
);

CREATE TABLE IF NOT EXISTS entries (
    id TEXT PRIMARY KEY,
    candidate_id TEXT NOT NULL,
    skill TEXT NOT NULL,
    question TEXT NOT NULL,
    answer TEXT NOT NULL,
    reference_answer TEXT NOT NULL,
    relevant INTEGER NOT NULL,
    tier TEXT NOT NULL,
    depth INTEGER NOT NULL,
    asked_at TEXT NOT NULL,
    position INTEGER NOT NULL,
    FOREIGN KEY (candidate_id, skill) REFERENCES skill_groups(candidate_id, skill)
);
`

// SQLiteStore implements interview.TranscriptStore on a local sqlite file.
// It is safe for use by concurrent sessions; append order within one
// candidate is preserved by the single-writer-per-session discipline plus
// per-append transactions.
type SQLiteStore struct {
	db *sql.DB
}

var _ interview.TranscriptStore = (*SQLiteStore)(nil)

// NewSQLite opens (creating if needed) the transcript database at path.
func NewSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open transcript db: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("apply transcript schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Append stores one entry under the candidate's skill group, creating the
// group on first use and appending thereafter.
func (s *SQLiteStore) Append(ctx context.Context, candidateID, skill string, entry interview.Entry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin append: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO skill_groups (candidate_id, skill, position)
		SELECT ?, ?, COALESCE((SELECT MAX(position) + 1 FROM skill_groups WHERE candidate_id = ?), 0)
		WHERE NOT EXISTS (SELECT 1 FROM skill_groups WHERE candidate_id = ? AND skill = ?)`,
		candidateID, skill, candidateID, candidateID, skill,
	)
	if err != nil {
		return fmt.Errorf("upsert skill group: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO entries (id, candidate_id, skill, question, answer, reference_answer, relevant, tier, depth, asked_at, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?,
			COALESCE((SELECT MAX(position) + 1 FROM entries WHERE candidate_id = ? AND skill = ?), 0))`,
		uuid.NewString(), candidateID, skill,
		entry.Question, entry.Answer, entry.ReferenceAnswer,
		boolToInt(entry.Relevant), string(entry.Tier), entry.Depth,
		entry.AskedAt.UTC().Format(time.RFC3339Nano),
		candidateID, skill,
	)
	if err != nil {
		return fmt.Errorf("insert entry: %w", err)
	}

	return tx.Commit()
}

// ReadAll returns the candidate's entries grouped by skill in group creation
// order, append order within each group.
func (s *SQLiteStore) ReadAll(ctx context.Context, candidateID string) ([]interview.Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT e.skill, e.question, e.answer, e.reference_answer, e.relevant, e.tier, e.depth, e.asked_at
		FROM entries e
		JOIN skill_groups g ON g.candidate_id = e.candidate_id AND g.skill = e.skill
		WHERE e.candidate_id = ?
		ORDER BY g.position, e.position`,
		candidateID,
	)
	if err != nil {
		return nil, fmt.Errorf("query transcript: %w", err)
	}
	defer rows.Close()

	var entries []interview.Entry
	for rows.Next() {
		var (
			entry    interview.Entry
			relevant int
			tier     string
			askedAt  string
		)
		if err := rows.Scan(&entry.Skill, &entry.Question, &entry.Answer, &entry.ReferenceAnswer,
			&relevant, &tier, &entry.Depth, &askedAt); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}

		entry.Relevant = relevant != 0
		entry.Tier = interview.Tier(tier)
		if ts, perr := time.Parse(time.RFC3339Nano, askedAt); perr == nil {
			entry.AskedAt = ts
		}

		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

// SkillGroups returns the candidate's skill groups in creation order, one
// row per skill regardless of how many entries it holds.
func (s *SQLiteStore) SkillGroups(ctx context.Context, candidateID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT skill FROM skill_groups WHERE candidate_id = ? ORDER BY position`, candidateID)
	if err != nil {
		return nil, fmt.Errorf("query skill groups: %w", err)
	}
	defer rows.Close()

	var groups []string
	for rows.Next() {
		var skill string
		if err := rows.Scan(&skill); err != nil {
			return nil, fmt.Errorf("scan skill group: %w", err)
		}
		groups = append(groups, skill)
	}

	return groups, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
