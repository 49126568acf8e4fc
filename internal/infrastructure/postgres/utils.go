package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	return pgCode(err) == "23505"
}

// isForeignKeyViolation 23503: fila referenciada inexistente o aún referenciada.
func isForeignKeyViolation(err error) bool {
	return pgCode(err) == "23503"
}

// isCheckViolation 23514.
func isCheckViolation(err error) bool {
	return pgCode(err) == "23514"
}
