package categoria

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/planejei/api/internal/repo"
)

const dbTimeout = 3 * time.Second

const categoriaColumns = "id, nome, cor, descricao, tenant_id, criado_em"

// Repository provê acesso à tabela categorias.
// A unicidade de lower(nome) por tenant é garantida por índice único no banco;
// violações são mapeadas para repo.ErrDuplicate.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository cria instância do repositório.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Insert grava uma nova categoria e devolve o registro persistido.
func (r *Repository) Insert(ctx context.Context, input CriarCategoriaInput) (*Categoria, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	const query = `
        INSERT INTO categorias (nome, cor, descricao, tenant_id)
        VALUES ($1, $2, $3, $4)
        RETURNING ` + categoriaColumns

	row := r.pool.QueryRow(ctx, query, input.Nome, input.Cor, input.Descricao, input.TenantID)
	cat, err := scanCategoria(row)
	if err != nil {
		if repo.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %s", repo.ErrDuplicate, err)
		}
		return nil, err
	}
	return cat, nil
}

// GetByID busca categoria pelo identificador dentro do escopo informado.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID, tenantID *uuid.UUID) (*Categoria, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	query := `SELECT ` + categoriaColumns + ` FROM categorias WHERE id = $1`
	args := []any{id}
	if tenantID != nil {
		query += " AND tenant_id = $2"
		args = append(args, *tenantID)
	}

	return scanCategoria(r.pool.QueryRow(ctx, query, args...))
}

// FindByNomeFold busca por nome com comparação case-insensitive.
func (r *Repository) FindByNomeFold(ctx context.Context, nome string, tenantID *uuid.UUID) (*Categoria, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	query := `SELECT ` + categoriaColumns + ` FROM categorias WHERE lower(nome) = lower($1)`
	args := []any{nome}
	if tenantID != nil {
		query += " AND tenant_id = $2"
		args = append(args, *tenantID)
	}

	return scanCategoria(r.pool.QueryRow(ctx, query, args...))
}

// FindByNomeExato busca por nome com igualdade exata.
func (r *Repository) FindByNomeExato(ctx context.Context, nome string, tenantID *uuid.UUID) (*Categoria, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	query := `SELECT ` + categoriaColumns + ` FROM categorias WHERE nome = $1`
	args := []any{nome}
	if tenantID != nil {
		query += " AND tenant_id = $2"
		args = append(args, *tenantID)
	}

	return scanCategoria(r.pool.QueryRow(ctx, query, args...))
}

// List devolve uma página de categorias e o total de registros do filtro.
// Busca textual cobre nome e descrição como substring, sem diferenciar caixa.
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]Categoria, int, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	var (
		clauses []string
		args    []any
		idx     = 1
	)

	if filter.TenantID != nil {
		clauses = append(clauses, fmt.Sprintf("tenant_id = $%d", idx))
		args = append(args, *filter.TenantID)
		idx++
	}

	if busca := strings.TrimSpace(filter.Busca); busca != "" {
		clauses = append(clauses, fmt.Sprintf("(nome ILIKE $%d OR descricao ILIKE $%d)", idx, idx))
		args = append(args, "%"+busca+"%")
		idx++
	}

	where := ""
	if len(clauses) > 0 {
		where = " WHERE " + strings.Join(clauses, " AND ")
	}

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT count(*) FROM categorias"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + categoriaColumns + ` FROM categorias` + where +
		fmt.Sprintf(" ORDER BY criado_em DESC LIMIT $%d OFFSET $%d", idx, idx+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	categorias, err := collectCategorias(rows)
	if err != nil {
		return nil, 0, err
	}
	return categorias, total, nil
}

// ListAll devolve todas as categorias visíveis no escopo, sem paginação.
func (r *Repository) ListAll(ctx context.Context, tenantID *uuid.UUID) ([]Categoria, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	query := `SELECT ` + categoriaColumns + ` FROM categorias`
	var args []any
	if tenantID != nil {
		query += " WHERE tenant_id = $1"
		args = append(args, *tenantID)
	}
	query += " ORDER BY criado_em DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectCategorias(rows)
}

// Update sobrescreve nome, cor e descrição dentro do escopo informado.
// Registro fora do escopo equivale a inexistente.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, input AtualizarCategoriaInput, tenantID *uuid.UUID) (*Categoria, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	query := `
        UPDATE categorias
        SET nome = $1, cor = $2, descricao = $3
        WHERE id = $4`
	args := []any{input.Nome, input.Cor, input.Descricao, id}
	if tenantID != nil {
		query += " AND tenant_id = $5"
		args = append(args, *tenantID)
	}
	query += " RETURNING " + categoriaColumns

	cat, err := scanCategoria(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if repo.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %s", repo.ErrDuplicate, err)
		}
		return nil, err
	}
	return cat, nil
}

// Delete remove a categoria definitivamente dentro do escopo informado.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID, tenantID *uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	query := "DELETE FROM categorias WHERE id = $1"
	args := []any{id}
	if tenantID != nil {
		query += " AND tenant_id = $2"
		args = append(args, *tenantID)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func scanCategoria(row pgx.Row) (*Categoria, error) {
	var c Categoria
	if err := row.Scan(&c.ID, &c.Nome, &c.Cor, &c.Descricao, &c.TenantID, &c.CriadoEm); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func collectCategorias(rows pgx.Rows) ([]Categoria, error) {
	var categorias []Categoria
	for rows.Next() {
		c, err := scanCategoria(rows)
		if err != nil {
			return nil, err
		}
		categorias = append(categorias, *c)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return categorias, nil
}
