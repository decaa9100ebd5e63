package database

import (
	"context"
	"database/sql"
	"fmt"
)

// Table names shared by the PFHR workers.
const (
	TableAssessments = "pfhr_assessments"
	TableAuditLog    = "audit_log"
	TableUsers       = "users"
)

// schemaStatements are idempotent so EnsureSchema can run on every start.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id         TEXT PRIMARY KEY,
		email      TEXT NOT NULL DEFAULT '',
		phone      TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS pfhr_assessments (
		id              UUID PRIMARY KEY,
		user_id         TEXT NOT NULL,
		inputs          JSONB NOT NULL,
		score           NUMERIC(5,2) NOT NULL CHECK (score >= 0 AND score <= 100),
		risk_level      TEXT NOT NULL CHECK (risk_level IN ('low', 'medium', 'high')),
		breakdown       JSONB NOT NULL,
		recommendations JSONB NOT NULL,
		created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_pfhr_assessments_user_created
		ON pfhr_assessments (user_id, created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS audit_log (
		id          BIGSERIAL PRIMARY KEY,
		entity_type TEXT NOT NULL,
		entity_id   TEXT NOT NULL,
		action      TEXT NOT NULL,
		actor_id    TEXT NOT NULL,
		details     JSONB,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

// Execer is satisfied by *sql.DB and *sql.Tx.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// EnsureSchema creates the users, pfhr_assessments and audit_log tables if missing.
func EnsureSchema(ctx context.Context, db Execer) error {
	for i, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement %d: %w", i+1, err)
		}
	}
	return nil
}
