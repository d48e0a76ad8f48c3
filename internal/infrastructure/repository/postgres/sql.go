package postgres

import (
	"database/sql"
	stderrors "errors"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/lib/pq"
	"github.com/riskibarqy/cricket-club/internal/usecase"
)

const pqUniqueViolation = "23505"

func isNotFound(err error) bool {
	return stderrors.Is(err, sql.ErrNoRows)
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if stderrors.As(err, &pqErr) {
		return string(pqErr.Code) == pqUniqueViolation
	}
	return false
}

// wrapWriteErr maps constraint violations onto the usecase conflict sentinel.
// The driver error is kept as a secondary cause.
func wrapWriteErr(err error, msg string) error {
	if isUniqueViolation(err) {
		return crerr.WithSecondaryError(crerr.Wrap(usecase.ErrConflict, msg), err)
	}
	return crerr.Wrap(err, msg)
}

// Poolers in transaction mode drop unnamed prepared statements between round trips.
func isBindParameterMismatch(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "bind message supplies") && strings.Contains(msg, "prepared statement")
}

func isUnnamedPreparedStatementMissing(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "unnamed prepared statement does not exist") || strings.Contains(msg, "(26000)")
}

func quoteLiteral(value string) string {
	return "'" + strings.ReplaceAll(value, "'", "''") + "'"
}

func nullableString(value string) sql.NullString {
	value = strings.TrimSpace(value)
	return sql.NullString{String: value, Valid: value != ""}
}

func stringSliceToAny(items []string) []any {
	out := make([]any, 0, len(items))
	for _, item := range items {
		out = append(out, item)
	}
	return out
}
