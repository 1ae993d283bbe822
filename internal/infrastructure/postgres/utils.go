package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// unique_violation según la tabla de códigos de PostgreSQL.
const pgUniqueViolation = "23505"

// isUniqueViolation detecta la violación de una restricción UNIQUE para que
// los repositorios la traduzcan a domain.ErrDuplicate.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
