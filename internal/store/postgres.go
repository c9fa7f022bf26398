package store

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/panorama-labs/survey-engine/internal/model"
)

// Pool is the subset of pgxpool.Pool the store uses, narrow enough for
// pgxmock to stand in during tests.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool Pool
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// preparedStatements lists queries to prepare on each new connection for
// the most frequently used store operations.
var preparedStatements = map[string]string{
	"insert_question_set":       `INSERT INTO question_sets (id, event_name, phase, outcome, questions, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
	"get_question_set":          `SELECT id, event_name, phase, outcome, questions, created_at FROM question_sets WHERE id = $1`,
	"get_cached_extraction":      `SELECT data FROM extraction_cache WHERE url_key = $1 AND expires_at > now() ORDER BY extracted_at DESC LIMIT 1`,
	"set_cached_extraction":      `INSERT INTO extraction_cache (id, url_key, data, extracted_at, expires_at) VALUES ($1, $2, $3, $4, $5) ON CONFLICT (url_key) DO UPDATE SET data = EXCLUDED.data, extracted_at = EXCLUDED.extracted_at, expires_at = EXCLUDED.expires_at`,
	"delete_expired_extractions": `DELETE FROM extraction_cache WHERE expires_at <= now()`,
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	maxConns := int32(10)
	minConns := int32(2)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pgxCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		for name, sql := range preparedStatements {
			if _, err := conn.Prepare(ctx, name, sql); err != nil {
				return eris.Wrapf(err, "postgres: prepare %s", name)
			}
		}
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS question_sets (
	id         TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	event_name TEXT NOT NULL,
	phase      TEXT NOT NULL,
	outcome    TEXT NOT NULL,
	questions  JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS extraction_cache (
	id           TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	url_key      TEXT NOT NULL UNIQUE,
	data         JSONB NOT NULL,
	extracted_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	expires_at   TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_question_sets_event ON question_sets(event_name);
CREATE INDEX IF NOT EXISTS idx_question_sets_phase ON question_sets(phase);
CREATE INDEX IF NOT EXISTS idx_extraction_cache_expires_at ON extraction_cache(expires_at);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) SaveQuestionSet(ctx context.Context, eventName, phase, outcome string, questions []model.Question) (*QuestionSetRecord, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	questionsJSON, err := json.Marshal(questions)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: marshal questions")
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO question_sets (id, event_name, phase, outcome, questions, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		id, eventName, phase, outcome, questionsJSON, now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: insert question set")
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

func (s *PostgresStore) GetQuestionSet(ctx context.Context, id string) (*QuestionSetRecord, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, event_name, phase, outcome, questions, created_at FROM question_sets WHERE id = $1`,
		id,
	)

	var r QuestionSetRecord
	var questionsJSON []byte
	err := row.Scan(&r.ID, &r.EventName, &r.Phase, &r.Outcome, &questionsJSON, &r.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, eris.Errorf("postgres: get question set: not found: %s", id)
	}
	if err != nil {
		return nil, eris.Wrap(err, "postgres: get question set")
	}

	if err := json.Unmarshal(questionsJSON, &r.Questions); err != nil {
		return nil, eris.Wrap(err, "postgres: unmarshal questions")
	}
	return &r, nil
}

func (s *PostgresStore) ListQuestionSets(ctx context.Context, filter QuestionSetFilter) ([]QuestionSetRecord, error) {
	query := `SELECT id, event_name, phase, outcome, questions, created_at FROM question_sets WHERE 1=1`
	var args []any

	if filter.EventName != "" {
		args = append(args, filter.EventName)
		query += ` AND event_name = $1`
	}
	if filter.Phase != "" {
		args = append(args, filter.Phase)
		query += ` AND phase = $` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY created_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	args = append(args, limit)
	query += ` LIMIT $` + strconv.Itoa(len(args))

	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += ` OFFSET $` + strconv.Itoa(len(args))
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list question sets")
	}
	defer rows.Close()

	var records []QuestionSetRecord
	for rows.Next() {
		var r QuestionSetRecord
		var questionsJSON []byte
		if err := rows.Scan(&r.ID, &r.EventName, &r.Phase, &r.Outcome, &questionsJSON, &r.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan question set")
		}
		if err := json.Unmarshal(questionsJSON, &r.Questions); err != nil {
			return nil, eris.Wrap(err, "postgres: unmarshal questions")
		}
		records = append(records, r)
	}
	return records, eris.Wrap(rows.Err(), "postgres: list question sets iterate")
}

func (s *PostgresStore) GetCachedExtraction(ctx context.Context, urlKey string) (*model.ExtractedEventData, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT data FROM extraction_cache WHERE url_key = $1 AND expires_at > now() ORDER BY extracted_at DESC LIMIT 1`,
		urlKey,
	)

	var dataJSON []byte
	err := row.Scan(&dataJSON)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "postgres: get cached extraction")
	}

	var data model.ExtractedEventData
	if err := json.Unmarshal(dataJSON, &data); err != nil {
		return nil, eris.Wrap(err, "postgres: unmarshal cached extraction")
	}
	return &data, nil
}

func (s *PostgresStore) SetCachedExtraction(ctx context.Context, urlKey string, data model.ExtractedEventData, ttl time.Duration) error {
	dataJSON, err := json.Marshal(data)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal extraction")
	}

	now := time.Now().UTC()
	_, err = s.pool.Exec(ctx,
		`INSERT INTO extraction_cache (id, url_key, data, extracted_at, expires_at) VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (url_key) DO UPDATE SET data = EXCLUDED.data, extracted_at = EXCLUDED.extracted_at, expires_at = EXCLUDED.expires_at`,
		uuid.New().String(), urlKey, dataJSON, now, now.Add(ttl),
	)
	return eris.Wrap(err, "postgres: set cached extraction")
}

func (s *PostgresStore) DeleteExpiredExtractions(ctx context.Context) (int, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM extraction_cache WHERE expires_at <= now()`)
	if err != nil {
		return 0, eris.Wrap(err, "postgres: delete expired extractions")
	}
	return int(tag.RowsAffected()), nil
}

