package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/panorama-labs/survey-engine/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS question_sets (
	id         TEXT PRIMARY KEY,
	event_name TEXT NOT NULL,
	phase      TEXT NOT NULL,
	outcome    TEXT NOT NULL,
	questions  TEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS extraction_cache (
	id           TEXT PRIMARY KEY,
	url_key      TEXT NOT NULL,
	data         TEXT NOT NULL,
	extracted_at DATETIME NOT NULL DEFAULT (datetime('now')),
	expires_at   DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_question_sets_event ON question_sets(event_name);
CREATE INDEX IF NOT EXISTS idx_question_sets_phase ON question_sets(phase);
CREATE INDEX IF NOT EXISTS idx_extraction_cache_url_key ON extraction_cache(url_key);
CREATE INDEX IF NOT EXISTS idx_extraction_cache_expires_at ON extraction_cache(expires_at);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) SaveQuestionSet(ctx context.Context, eventName, phase, outcome string, questions []model.Question) (*QuestionSetRecord, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	questionsJSON, err := json.Marshal(questions)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: marshal questions")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO question_sets (id, event_name, phase, outcome, questions, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		id, eventName, phase, outcome, string(questionsJSON), now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert question set")
	}

	return &QuestionSetRecord{
		ID:        id,
		EventName: eventName,
		Phase:     phase,
		Outcome:   outcome,
		Questions: questions,
		CreatedAt: now,
	}, nil
}

func (s *SQLiteStore) GetQuestionSet(ctx context.Context, id string) (*QuestionSetRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, event_name, phase, outcome, questions, created_at FROM question_sets WHERE id = ?`,
		id,
	)
	return scanQuestionSet(row)
}

func (s *SQLiteStore) ListQuestionSets(ctx context.Context, filter QuestionSetFilter) ([]QuestionSetRecord, error) {
	query := `SELECT id, event_name, phase, outcome, questions, created_at FROM question_sets WHERE 1=1`
	var args []any

	if filter.EventName != "" {
		query += ` AND event_name = ?`
		args = append(args, filter.EventName)
	}
	if filter.Phase != "" {
		query += ` AND phase = ?`
		args = append(args, filter.Phase)
	}
	query += ` ORDER BY created_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += ` LIMIT ?`
	args = append(args, limit)

	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list question sets")
	}
	defer rows.Close()

	var records []QuestionSetRecord
	for rows.Next() {
		r, err := scanQuestionSet(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *r)
	}
	return records, eris.Wrap(rows.Err(), "sqlite: list question sets iterate")
}

func (s *SQLiteStore) GetCachedExtraction(ctx context.Context, urlKey string) (*model.ExtractedEventData, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT data FROM extraction_cache
		 WHERE url_key = ? AND expires_at > datetime('now')
		 ORDER BY extracted_at DESC LIMIT 1`,
		urlKey,
	)

	var dataJSON string
	err := row.Scan(&dataJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: get cached extraction")
	}

	var data model.ExtractedEventData
	if err := json.Unmarshal([]byte(dataJSON), &data); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal cached extraction")
	}
	return &data, nil
}

func (s *SQLiteStore) SetCachedExtraction(ctx context.Context, urlKey string, data model.ExtractedEventData, ttl time.Duration) error {
	id := uuid.New().String()
	now := time.Now().UTC()

	dataJSON, err := json.Marshal(data)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal extraction")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO extraction_cache (id, url_key, data, extracted_at, expires_at) VALUES (?, ?, ?, ?, ?)`,
		id, urlKey, string(dataJSON), now, now.Add(ttl),
	)
	return eris.Wrap(err, "sqlite: set cached extraction")
}

func (s *SQLiteStore) DeleteExpiredExtractions(ctx context.Context) (int, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM extraction_cache WHERE expires_at <= datetime('now')`,
	)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: delete expired extractions")
	}
	n, err := res.RowsAffected()
	return int(n), eris.Wrap(err, "sqlite: rows affected")
}

// helpers

type scannable interface {
	Scan(dest ...any) error
}

func scanQuestionSet(row scannable) (*QuestionSetRecord, error) {
	var r QuestionSetRecord
	var questionsJSON string

	err := row.Scan(&r.ID, &r.EventName, &r.Phase, &r.Outcome, &questionsJSON, &r.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, eris.New("question set not found")
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: scan question set")
	}

	if err := json.Unmarshal([]byte(questionsJSON), &r.Questions); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal questions")
	}
	return &r, nil
}
