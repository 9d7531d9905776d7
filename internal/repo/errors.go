package repo

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound é retornado quando nenhum registro é encontrado.
	ErrNotFound = errors.New("registro não encontrado")
	// ErrDuplicate é retornado quando um insert/update viola constraint de unicidade.
	ErrDuplicate = errors.New("registro duplicado")
)

// IsUniqueViolation verifica se um erro é uma violação de constraint única (23505).
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
