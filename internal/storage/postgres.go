package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"qrstudio/internal/infra"
	"qrstudio/internal/sqlinline"
)

// PostgresStore stages uploads as rows of the staged_uploads table.
type PostgresStore struct {
	db    infra.SQLExecutor
	newID func() uuid.UUID
}

func NewPostgresStore(db infra.SQLExecutor) *PostgresStore {
	return &PostgresStore{db: db, newID: uuid.New}
}

// EnsureSchema creates the staging table. Call it once at startup.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, sqlinline.QCreateStagedUploads); err != nil {
		return fmt.Errorf("storage: create staged_uploads: %w", err)
	}
	return nil
}

// Stage inserts data and returns "staged_uploads/<id>".
func (s *PostgresStore) Stage(ctx context.Context, name string, data []byte) (string, error) {
	if s == nil || s.db == nil {
		return "", errors.New("storage: no store configured")
	}
	id := s.newID()
	contentType := mimetype.Detect(data).String()
	var stored uuid.UUID
	err := s.db.QueryRow(ctx, sqlinline.QInsertStagedUpload,
		id, SanitizeName(name), contentType, int64(len(data)), data,
	).Scan(&stored)
	if err != nil {
		return "", fmt.Errorf("storage: insert upload: %w", err)
	}
	return "staged_uploads/" + stored.String(), nil
}

var _ Stager = (*PostgresStore)(nil)
