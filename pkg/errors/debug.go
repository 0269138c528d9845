package errors

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

// LogFields flattens an error into structured log fields: the typed code if
// present, the unwrap chain, and postgres diagnostics when a driver error
// hides anywhere in the chain. Only non-empty fields are emitted.
func LogFields(err error) map[string]any {
	if err == nil {
		return nil
	}

	fields := map[string]any{"error": err.Error()}
	if typed := As(err); typed != nil {
		fields["error_code"] = typed.Code()
	}

	var chain []string
	for e := err; e != nil; e = errors.Unwrap(e) {
		chain = append(chain, fmt.Sprintf("%T: %v", e, e))
	}
	if len(chain) > 1 {
		fields["error_chain"] = chain
	}

	addPGFields(err, fields)
	return fields
}

// addPGFields pulls constraint and table diagnostics out of a postgres
// driver error. Both drivers are checked: pgx carries the gorm connection,
// lib/pq surfaces through the array helpers.
func addPGFields(err error, fields map[string]any) {
	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		setNonEmpty(fields, "pg_code", pgxErr.Code)
		setNonEmpty(fields, "pg_constraint", pgxErr.ConstraintName)
		setNonEmpty(fields, "pg_table", pgxErr.TableName)
		setNonEmpty(fields, "pg_column", pgxErr.ColumnName)
		setNonEmpty(fields, "pg_detail", pgxErr.Detail)
		setNonEmpty(fields, "pg_message", pgxErr.Message)
		return
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		setNonEmpty(fields, "pg_code", string(pqErr.Code))
		setNonEmpty(fields, "pg_constraint", pqErr.Constraint)
		setNonEmpty(fields, "pg_table", pqErr.Table)
		setNonEmpty(fields, "pg_column", pqErr.Column)
		setNonEmpty(fields, "pg_detail", pqErr.Detail)
		setNonEmpty(fields, "pg_message", pqErr.Message)
	}
}

func setNonEmpty(fields map[string]any, key, value string) {
	if value != "" {
		fields[key] = value
	}
}
