package categoria

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/planejei/api/internal/repo"
)

var (
	// ErrNomeObrigatorio indica nome vazio após trim.
	ErrNomeObrigatorio = errors.New("nome da categoria é obrigatório")
)

const (
	tamanhoPadrao = 10
	tamanhoMaximo = 100
)

// CategoriaRepository define a capacidade de persistência consumida pelo serviço.
type CategoriaRepository interface {
	Insert(context.Context, CriarCategoriaInput) (*Categoria, error)
	GetByID(context.Context, uuid.UUID, *uuid.UUID) (*Categoria, error)
	FindByNomeFold(context.Context, string, *uuid.UUID) (*Categoria, error)
	FindByNomeExato(context.Context, string, *uuid.UUID) (*Categoria, error)
	List(context.Context, ListFilter) ([]Categoria, int, error)
	ListAll(context.Context, *uuid.UUID) ([]Categoria, error)
	Update(context.Context, uuid.UUID, AtualizarCategoriaInput, *uuid.UUID) (*Categoria, error)
	Delete(context.Context, uuid.UUID, *uuid.UUID) error
}

// Service contém as regras do módulo de categorias. O escopo de tenant nulo
// significa acesso irrestrito (super admin); qualquer outro valor filtra todas
// as leituras e escritas.
type Service struct {
	repo     CategoriaRepository
	cache    *redis.Client
	cacheTTL time.Duration
}

// NewService cria uma nova instância de Service. cache pode ser nil.
func NewService(repo CategoriaRepository, cache *redis.Client, cacheTTL time.Duration) *Service {
	if cacheTTL <= 0 {
		cacheTTL = 60 * time.Second
	}
	return &Service{repo: repo, cache: cache, cacheTTL: cacheTTL}
}

// ListarCategorias devolve uma página ordenada por criação decrescente.
// Valores não positivos de página/tamanho são normalizados (1 e 10).
func (s *Service) ListarCategorias(ctx context.Context, busca string, pagina, tamanho int, tenantID *uuid.UUID) (*Pagina, error) {
	if pagina < 1 {
		pagina = 1
	}
	if tamanho < 1 {
		tamanho = tamanhoPadrao
	}
	if tamanho > tamanhoMaximo {
		tamanho = tamanhoMaximo
	}

	itens, total, err := s.repo.List(ctx, ListFilter{
		Busca:    busca,
		TenantID: tenantID,
		Limit:    tamanho,
		Offset:   (pagina - 1) * tamanho,
	})
	if err != nil {
		return nil, err
	}

	return &Pagina{
		Itens:        itens,
		Total:        total,
		Pagina:       pagina,
		Tamanho:      tamanho,
		TotalPaginas: (total + tamanho - 1) / tamanho,
	}, nil
}

// BuscarPorID devolve a categoria visível no escopo ou repo.ErrNotFound.
func (s *Service) BuscarPorID(ctx context.Context, id uuid.UUID, tenantID *uuid.UUID) (*Categoria, error) {
	return s.repo.GetByID(ctx, id, tenantID)
}

// Criar insere uma categoria explícita. Não há pré-checagem de nome: uma
// violação do índice único chega ao chamador como repo.ErrDuplicate.
func (s *Service) Criar(ctx context.Context, input CriarCategoriaInput, tenantID *uuid.UUID) (*Categoria, error) {
	input.Nome = strings.TrimSpace(input.Nome)
	if input.Nome == "" {
		return nil, ErrNomeObrigatorio
	}
	input.Cor = strings.TrimSpace(input.Cor)
	input.TenantID = tenantID

	cat, err := s.repo.Insert(ctx, input)
	if err != nil {
		return nil, err
	}

	s.invalidateCache(ctx, tenantID)
	return cat, nil
}

// Atualizar sobrescreve nome, cor e descrição da categoria visível no escopo.
func (s *Service) Atualizar(ctx context.Context, id uuid.UUID, input AtualizarCategoriaInput, tenantID *uuid.UUID) (*Categoria, error) {
	input.Nome = strings.TrimSpace(input.Nome)
	if input.Nome == "" {
		return nil, ErrNomeObrigatorio
	}
	input.Cor = strings.TrimSpace(input.Cor)

	cat, err := s.repo.Update(ctx, id, input, tenantID)
	if err != nil {
		return nil, err
	}

	s.invalidateCache(ctx, tenantID)
	return cat, nil
}

// Remover apaga definitivamente a categoria visível no escopo.
func (s *Service) Remover(ctx context.Context, id uuid.UUID, tenantID *uuid.UUID) error {
	if err := s.repo.Delete(ctx, id, tenantID); err != nil {
		return err
	}

	s.invalidateCache(ctx, tenantID)
	return nil
}

// ListarTodas devolve todas as categorias do escopo, com cache best-effort.
func (s *Service) ListarTodas(ctx context.Context, tenantID *uuid.UUID) ([]Categoria, error) {
	key := cacheKey(tenantID)
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, key).Bytes(); err == nil {
			var categorias []Categoria
			if json.Unmarshal(data, &categorias) == nil {
				return categorias, nil
			}
		}
	}

	categorias, err := s.repo.ListAll(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if payload, err := json.Marshal(categorias); err == nil {
			_ = s.cache.Set(ctx, key, payload, s.cacheTTL).Err()
		}
	}

	return categorias, nil
}

// FindOrCreateByNome resolve um nome para o id da categoria, criando-a na
// primeira utilização. A sequência é insert otimista com recuperação: a
// checagem prévia não é livre de corrida, então a violação do índice único é
// tratada como "outro chamador venceu" e resolvida relendo o banco. Qualquer
// outra falha de persistência é propagada sem nova tentativa.
func (s *Service) FindOrCreateByNome(ctx context.Context, nome string, tenantID *uuid.UUID) (uuid.UUID, error) {
	nome = strings.TrimSpace(nome)
	if nome == "" {
		return uuid.Nil, ErrNomeObrigatorio
	}

	existente, err := s.repo.FindByNomeFold(ctx, nome, tenantID)
	if err == nil {
		return existente.ID, nil
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return uuid.Nil, err
	}

	criada, insertErr := s.repo.Insert(ctx, CriarCategoriaInput{
		Nome:     nome,
		Cor:      corAleatoria(),
		TenantID: tenantID,
	})
	if insertErr == nil {
		s.invalidateCache(ctx, tenantID)
		return criada.ID, nil
	}
	if !errors.Is(insertErr, repo.ErrDuplicate) {
		return uuid.Nil, insertErr
	}

	// Corrida perdida: o vencedor já inseriu a linha, basta reler.
	vencedora, err := s.repo.FindByNomeFold(ctx, nome, tenantID)
	if err == nil {
		return vencedora.ID, nil
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return uuid.Nil, err
	}

	// Fallback para divergência de caixa entre constraint e consulta.
	exata, err := s.repo.FindByNomeExato(ctx, nome, tenantID)
	if err == nil {
		return exata.ID, nil
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return uuid.Nil, err
	}

	return uuid.Nil, insertErr
}

func (s *Service) invalidateCache(ctx context.Context, tenantID *uuid.UUID) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Del(ctx, cacheKey(tenantID)).Err()
}

func cacheKey(tenantID *uuid.UUID) string {
	if tenantID == nil {
		return "categorias:todas:global"
	}
	return "categorias:todas:" + tenantID.String()
}
