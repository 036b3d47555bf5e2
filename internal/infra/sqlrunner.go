package infra

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// SQLExecutor is the query surface used by the upload stager. Every query
// must start with a "--sql <uuid>" marker line.
type SQLExecutor interface {
	Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, query string, args ...any) pgx.Row
}

var (
	errEmptyQuery = errors.New("empty query")
	errNoMarker   = errors.New("sql marker missing or invalid")

	markerRegexp = regexp.MustCompile(`^--sql [0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)
)

// SQLRunner executes marker-tagged queries on a pool and logs each call by
// marker, never by SQL text or arguments. Calls made with a request-scoped
// logger in ctx log through it so the request id follows the query.
type SQLRunner struct {
	Pool   *pgxpool.Pool
	Logger zerolog.Logger
}

func NewSQLRunner(pool *pgxpool.Pool, logger zerolog.Logger) *SQLRunner {
	return &SQLRunner{Pool: pool, Logger: logger}
}

func (r *SQLRunner) Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	log, body, err := r.prepare(ctx, "exec", query)
	if err != nil {
		return pgconn.CommandTag{}, err
	}
	tag, err := r.Pool.Exec(ctx, body, args...)
	if err != nil {
		log.Error().Err(err).Msg("sql exec failed")
		return tag, err
	}
	log.Debug().Int64("rows", tag.RowsAffected()).Msg("sql exec done")
	return tag, nil
}

func (r *SQLRunner) QueryRow(ctx context.Context, query string, args ...any) pgx.Row {
	log, body, err := r.prepare(ctx, "query_row", query)
	if err != nil {
		return errorRow{err: err}
	}
	return loggingRow{Row: r.Pool.QueryRow(ctx, body, args...), log: log}
}

// prepare strips the marker and returns a logger tagged with it.
func (r *SQLRunner) prepare(ctx context.Context, op, query string) (zerolog.Logger, string, error) {
	marker, body, err := extractMarker(query)
	if err != nil {
		r.logger(ctx).Error().Err(err).Str("op", op).Msg("sql rejected")
		return zerolog.Nop(), "", err
	}
	log := r.logger(ctx).With().Str("sql", marker).Str("op", op).Logger()
	log.Debug().Msg("sql start")
	return log, body, nil
}

func (r *SQLRunner) logger(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l != zerolog.DefaultContextLogger && l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &r.Logger
}

type loggingRow struct {
	pgx.Row
	log zerolog.Logger
}

func (l loggingRow) Scan(dest ...any) error {
	err := l.Row.Scan(dest...)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		l.log.Error().Err(err).Msg("sql scan failed")
	}
	return err
}

type errorRow struct{ err error }

func (e errorRow) Scan(...any) error { return e.err }

// extractMarker splits a query into its marker uuid and the SQL after the
// marker line.
func extractMarker(query string) (string, string, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return "", "", errEmptyQuery
	}
	first, rest, _ := strings.Cut(trimmed, "\n")
	first = strings.TrimSpace(first)
	if !markerRegexp.MatchString(first) {
		return "", "", errNoMarker
	}
	return strings.TrimPrefix(first, "--sql "), rest, nil
}

var _ SQLExecutor = (*SQLRunner)(nil)
