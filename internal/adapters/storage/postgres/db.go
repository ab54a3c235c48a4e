package postgres

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"

	"vet-medication-reference/internal/platform/apperr"
)

// SQLSTATE que se traducen a errores de dominio.
const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
	// un id que no es uuid no puede existir
	invalidTextRepresentation = "22P02"
	numericValueOutOfRange    = "22003"
)

//go:embed schema.sql
var schema string

// Open abre una conexión pool a Postgres usando pgx (database/sql).
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// Migrate aplica schema.sql en una transacción. Es idempotente (IF NOT EXISTS).
func Migrate(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, stmt := range statements(schema) {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return tx.Commit()
}

func statements(src string) []string {
	parts := strings.Split(src, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// mapError traduce errores del driver a la taxonomía de apperr.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolation:
			return apperr.Conflict("duplicate value violates %s", pgErr.ConstraintName)
		case foreignKeyViolation:
			return apperr.NotFound("referenced medication does not exist")
		case invalidTextRepresentation:
			return apperr.ErrNotFound
		case numericValueOutOfRange:
			return apperr.Invalid("numeric value out of range")
		}
	}
	return err
}

// likePattern arma '%q%' escapando los comodines de LIKE.
func likePattern(q string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(q) + "%"
}

func offset(page, limit int) int {
	if page <= 1 {
		return 0
	}
	return (page - 1) * limit
}

type rowScanner interface {
	Scan(dest ...any) error
}

func itoa(n int) string { return strconv.Itoa(n) }

// validID: las columnas id son uuid; cualquier otra cosa no puede existir.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
