package categoria

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/planejei/api/internal/repo"
)

// memRepo simula o banco: mutex no lugar do lock de página do Postgres e
// checagem de unicidade case-insensitive por tenant no lugar do índice único.
// O insert é atômico, então corridas de find-or-create perdem exatamente como
// perderiam contra o constraint real.
type memRepo struct {
	mu    sync.Mutex
	itens []Categoria
	seq   int
	base  time.Time
}

func newMemRepo() *memRepo {
	return &memRepo{base: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func sameScope(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func visible(c Categoria, tenantID *uuid.UUID) bool {
	if tenantID == nil {
		return true
	}
	return c.TenantID != nil && *c.TenantID == *tenantID
}

func (m *memRepo) Insert(_ context.Context, input CriarCategoriaInput) (*Categoria, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, c := range m.itens {
		if sameScope(c.TenantID, input.TenantID) && strings.EqualFold(c.Nome, input.Nome) {
			return nil, fmt.Errorf("%w: categorias_tenant_nome_key", repo.ErrDuplicate)
		}
	}

	m.seq++
	c := Categoria{
		ID:        uuid.New(),
		Nome:      input.Nome,
		Cor:       input.Cor,
		Descricao: input.Descricao,
		TenantID:  input.TenantID,
		CriadoEm:  m.base.Add(time.Duration(m.seq) * time.Second),
	}
	m.itens = append(m.itens, c)
	return &c, nil
}

func (m *memRepo) GetByID(_ context.Context, id uuid.UUID, tenantID *uuid.UUID) (*Categoria, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, c := range m.itens {
		if c.ID == id && visible(c, tenantID) {
			cc := c
			return &cc, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (m *memRepo) FindByNomeFold(_ context.Context, nome string, tenantID *uuid.UUID) (*Categoria, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, c := range m.itens {
		if visible(c, tenantID) && strings.EqualFold(c.Nome, nome) {
			cc := c
			return &cc, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (m *memRepo) FindByNomeExato(_ context.Context, nome string, tenantID *uuid.UUID) (*Categoria, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, c := range m.itens {
		if visible(c, tenantID) && c.Nome == nome {
			cc := c
			return &cc, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (m *memRepo) List(_ context.Context, filter ListFilter) ([]Categoria, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	busca := strings.ToLower(strings.TrimSpace(filter.Busca))

	var matched []Categoria
	for _, c := range m.itens {
		if !visible(c, filter.TenantID) {
			continue
		}
		if busca != "" {
			nome := strings.ToLower(c.Nome)
			descricao := ""
			if c.Descricao != nil {
				descricao = strings.ToLower(*c.Descricao)
			}
			if !strings.Contains(nome, busca) && !strings.Contains(descricao, busca) {
				continue
			}
		}
		matched = append(matched, c)
	}

	sort.Slice(matched, func(i, j int) bool { return matched[i].CriadoEm.After(matched[j].CriadoEm) })

	total := len(matched)
	if filter.Offset >= total {
		return nil, total, nil
	}
	end := filter.Offset + filter.Limit
	if end > total {
		end = total
	}
	return matched[filter.Offset:end], total, nil
}

func (m *memRepo) ListAll(ctx context.Context, tenantID *uuid.UUID) ([]Categoria, error) {
	itens, _, err := m.List(ctx, ListFilter{TenantID: tenantID, Limit: len(m.itens) + 1})
	return itens, err
}

func (m *memRepo) Update(_ context.Context, id uuid.UUID, input AtualizarCategoriaInput, tenantID *uuid.UUID) (*Categoria, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, c := range m.itens {
		if c.ID != id || !visible(c, tenantID) {
			continue
		}
		for _, outra := range m.itens {
			if outra.ID != id && sameScope(outra.TenantID, c.TenantID) && strings.EqualFold(outra.Nome, input.Nome) {
				return nil, fmt.Errorf("%w: categorias_tenant_nome_key", repo.ErrDuplicate)
			}
		}
		m.itens[i].Nome = input.Nome
		m.itens[i].Cor = input.Cor
		m.itens[i].Descricao = input.Descricao
		cc := m.itens[i]
		return &cc, nil
	}
	return nil, repo.ErrNotFound
}

func (m *memRepo) Delete(_ context.Context, id uuid.UUID, tenantID *uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, c := range m.itens {
		if c.ID == id && visible(c, tenantID) {
			m.itens = append(m.itens[:i], m.itens[i+1:]...)
			return nil
		}
	}
	return repo.ErrNotFound
}

func (m *memRepo) count(tenantID *uuid.UUID, nome string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, c := range m.itens {
		if visible(c, tenantID) && strings.EqualFold(c.Nome, strings.TrimSpace(nome)) {
			n++
		}
	}
	return n
}

// overrideRepo permite interceptar chamadas específicas mantendo o resto.
type overrideRepo struct {
	CategoriaRepository
	findFold  func(context.Context, string, *uuid.UUID) (*Categoria, error)
	findExato func(context.Context, string, *uuid.UUID) (*Categoria, error)
	insert    func(context.Context, CriarCategoriaInput) (*Categoria, error)
}

func (o *overrideRepo) FindByNomeFold(ctx context.Context, nome string, tenantID *uuid.UUID) (*Categoria, error) {
	if o.findFold != nil {
		return o.findFold(ctx, nome, tenantID)
	}
	return o.CategoriaRepository.FindByNomeFold(ctx, nome, tenantID)
}

func (o *overrideRepo) FindByNomeExato(ctx context.Context, nome string, tenantID *uuid.UUID) (*Categoria, error) {
	if o.findExato != nil {
		return o.findExato(ctx, nome, tenantID)
	}
	return o.CategoriaRepository.FindByNomeExato(ctx, nome, tenantID)
}

func (o *overrideRepo) Insert(ctx context.Context, input CriarCategoriaInput) (*Categoria, error) {
	if o.insert != nil {
		return o.insert(ctx, input)
	}
	return o.CategoriaRepository.Insert(ctx, input)
}

func tenantPtr(t *testing.T) *uuid.UUID {
	t.Helper()
	id := uuid.New()
	return &id
}

func novoServico(repo CategoriaRepository) *Service {
	return NewService(repo, nil, 0)
}

func TestFindOrCreateIdempotente(t *testing.T) {
	mem := newMemRepo()
	svc := novoServico(mem)
	ctx := context.Background()
	tenant := tenantPtr(t)

	primeiro, err := svc.FindOrCreateByNome(ctx, "Alimentação", tenant)
	if err != nil {
		t.Fatalf("primeira chamada: %v", err)
	}

	segundo, err := svc.FindOrCreateByNome(ctx, "Alimentação", tenant)
	if err != nil {
		t.Fatalf("segunda chamada: %v", err)
	}

	if primeiro != segundo {
		t.Fatalf("ids divergentes: %s != %s", primeiro, segundo)
	}
	if n := mem.count(tenant, "Alimentação"); n != 1 {
		t.Fatalf("esperava 1 linha, há %d", n)
	}

	cat, err := mem.GetByID(ctx, primeiro, tenant)
	if err != nil {
		t.Fatalf("linha criada sumiu: %v", err)
	}
	corValida := false
	for _, cor := range paletaPadrao {
		if cat.Cor == cor {
			corValida = true
			break
		}
	}
	if !corValida {
		t.Fatalf("cor %q fora da paleta padrão", cat.Cor)
	}
	if cat.Descricao != nil {
		t.Fatalf("descrição deveria ser nula, veio %q", *cat.Descricao)
	}
}

func TestFindOrCreateConcorrente(t *testing.T) {
	mem := newMemRepo()
	svc := novoServico(mem)
	tenant := tenantPtr(t)

	const chamadas = 32
	ids := make([]uuid.UUID, chamadas)
	errs := make([]error, chamadas)

	var wg sync.WaitGroup
	for i := 0; i < chamadas; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ids[i], errs[i] = svc.FindOrCreateByNome(context.Background(), "Transporte", tenant)
		}(i)
	}
	wg.Wait()

	for i := 0; i < chamadas; i++ {
		if errs[i] != nil {
			t.Fatalf("chamada %d falhou: %v", i, errs[i])
		}
		if ids[i] != ids[0] {
			t.Fatalf("chamada %d devolveu id divergente: %s != %s", i, ids[i], ids[0])
		}
	}
	if n := mem.count(tenant, "Transporte"); n != 1 {
		t.Fatalf("esperava exatamente 1 linha, há %d", n)
	}
}

func TestFindOrCreateNormalizaCaixaEEspacos(t *testing.T) {
	mem := newMemRepo()
	svc := novoServico(mem)
	ctx := context.Background()
	tenant := tenantPtr(t)

	primeiro, err := svc.FindOrCreateByNome(ctx, "Work", tenant)
	if err != nil {
		t.Fatalf("criação: %v", err)
	}

	segundo, err := svc.FindOrCreateByNome(ctx, "WORK ", tenant)
	if err != nil {
		t.Fatalf("resolução com caixa diferente: %v", err)
	}

	if primeiro != segundo {
		t.Fatalf("\"WORK \" deveria resolver para a mesma categoria")
	}
	if n := mem.count(tenant, "work"); n != 1 {
		t.Fatalf("esperava 1 linha, há %d", n)
	}
}

func TestFindOrCreateNomeVazio(t *testing.T) {
	svc := novoServico(newMemRepo())

	if _, err := svc.FindOrCreateByNome(context.Background(), "   ", tenantPtr(t)); !errors.Is(err, ErrNomeObrigatorio) {
		t.Fatalf("esperava ErrNomeObrigatorio, veio %v", err)
	}
}

func TestFindOrCreateRecuperaCorridaPerdida(t *testing.T) {
	// Simula o perdedor da corrida: o lookup inicial não vê nada, o insert
	// bate no constraint e a releitura encontra a linha do vencedor.
	mem := newMemRepo()
	tenant := tenantPtr(t)
	vencedora, err := mem.Insert(context.Background(), CriarCategoriaInput{Nome: "Lazer", Cor: "#3B82F6", TenantID: tenant})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	var foldCalls int
	stub := &overrideRepo{CategoriaRepository: mem}
	stub.findFold = func(ctx context.Context, nome string, tenantID *uuid.UUID) (*Categoria, error) {
		foldCalls++
		if foldCalls == 1 {
			return nil, repo.ErrNotFound
		}
		return mem.FindByNomeFold(ctx, nome, tenantID)
	}

	svc := novoServico(stub)
	id, err := svc.FindOrCreateByNome(context.Background(), "Lazer", tenant)
	if err != nil {
		t.Fatalf("recuperação deveria resolver: %v", err)
	}
	if id != vencedora.ID {
		t.Fatalf("deveria devolver o id do vencedor")
	}
	if foldCalls != 2 {
		t.Fatalf("esperava 2 lookups fold, houve %d", foldCalls)
	}
	if n := mem.count(tenant, "Lazer"); n != 1 {
		t.Fatalf("esperava 1 linha, há %d", n)
	}
}

func TestFindOrCreateFallbackExato(t *testing.T) {
	// Divergência de caixa entre constraint e consulta: o lookup fold nunca
	// encontra, mas a busca exata sim.
	mem := newMemRepo()
	tenant := tenantPtr(t)
	existente, err := mem.Insert(context.Background(), CriarCategoriaInput{Nome: "Saúde", Cor: "#22C55E", TenantID: tenant})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	stub := &overrideRepo{CategoriaRepository: mem}
	stub.findFold = func(context.Context, string, *uuid.UUID) (*Categoria, error) {
		return nil, repo.ErrNotFound
	}

	svc := novoServico(stub)
	id, err := svc.FindOrCreateByNome(context.Background(), "Saúde", tenant)
	if err != nil {
		t.Fatalf("fallback exato deveria resolver: %v", err)
	}
	if id != existente.ID {
		t.Fatalf("deveria devolver o id existente")
	}
}

func TestFindOrCreateEsgotaRecuperacao(t *testing.T) {
	mem := newMemRepo()
	tenant := tenantPtr(t)

	stub := &overrideRepo{CategoriaRepository: mem}
	stub.findFold = func(context.Context, string, *uuid.UUID) (*Categoria, error) {
		return nil, repo.ErrNotFound
	}
	stub.findExato = func(context.Context, string, *uuid.UUID) (*Categoria, error) {
		return nil, repo.ErrNotFound
	}
	stub.insert = func(context.Context, CriarCategoriaInput) (*Categoria, error) {
		return nil, fmt.Errorf("%w: categorias_tenant_nome_key", repo.ErrDuplicate)
	}

	svc := novoServico(stub)
	_, err := svc.FindOrCreateByNome(context.Background(), "Fantasma", tenant)
	if !errors.Is(err, repo.ErrDuplicate) {
		t.Fatalf("esperava o erro original de duplicidade, veio %v", err)
	}
}

func TestFindOrCreateErroGenericoNaoRecupera(t *testing.T) {
	mem := newMemRepo()
	falha := errors.New("conexão recusada")

	var foldCalls int
	stub := &overrideRepo{CategoriaRepository: mem}
	stub.findFold = func(context.Context, string, *uuid.UUID) (*Categoria, error) {
		foldCalls++
		return nil, repo.ErrNotFound
	}
	stub.insert = func(context.Context, CriarCategoriaInput) (*Categoria, error) {
		return nil, falha
	}

	svc := novoServico(stub)
	_, err := svc.FindOrCreateByNome(context.Background(), "Mercado", tenantPtr(t))
	if !errors.Is(err, falha) {
		t.Fatalf("erro genérico deveria propagar intacto, veio %v", err)
	}
	if foldCalls != 1 {
		t.Fatalf("não deveria reler após falha genérica; lookups: %d", foldCalls)
	}
}

func TestCriarValidaNome(t *testing.T) {
	svc := novoServico(newMemRepo())

	_, err := svc.Criar(context.Background(), CriarCategoriaInput{Nome: "  ", Cor: "#FF0000"}, tenantPtr(t))
	if !errors.Is(err, ErrNomeObrigatorio) {
		t.Fatalf("esperava ErrNomeObrigatorio, veio %v", err)
	}
}

func TestCriarDuplicadaNaoRecupera(t *testing.T) {
	mem := newMemRepo()
	svc := novoServico(mem)
	ctx := context.Background()
	tenant := tenantPtr(t)

	if _, err := svc.Criar(ctx, CriarCategoriaInput{Nome: "Contas", Cor: "#FF0000"}, tenant); err != nil {
		t.Fatalf("primeira criação: %v", err)
	}

	_, err := svc.Criar(ctx, CriarCategoriaInput{Nome: "contas", Cor: "#00FF00"}, tenant)
	if !errors.Is(err, repo.ErrDuplicate) {
		t.Fatalf("criação explícita duplicada deveria falhar com ErrDuplicate, veio %v", err)
	}
	if n := mem.count(tenant, "Contas"); n != 1 {
		t.Fatalf("esperava 1 linha, há %d", n)
	}
}

func TestCriarPreencheDescricaoNula(t *testing.T) {
	mem := newMemRepo()
	svc := novoServico(mem)
	tenant := tenantPtr(t)

	criada, err := svc.Criar(context.Background(), CriarCategoriaInput{Nome: "Bills", Cor: "#FF0000"}, tenant)
	if err != nil {
		t.Fatalf("criação: %v", err)
	}
	if criada.ID == uuid.Nil {
		t.Fatal("id não foi gerado")
	}
	if criada.Descricao != nil {
		t.Fatalf("descrição omitida deveria ficar nula")
	}
	if criada.TenantID == nil || *criada.TenantID != *tenant {
		t.Fatalf("tenant não foi gravado")
	}
}

func TestIsolamentoEntreTenants(t *testing.T) {
	mem := newMemRepo()
	svc := novoServico(mem)
	ctx := context.Background()
	tenantA := tenantPtr(t)
	tenantB := tenantPtr(t)

	criada, err := svc.Criar(ctx, CriarCategoriaInput{Nome: "Bills", Cor: "#FF0000"}, tenantA)
	if err != nil {
		t.Fatalf("criação: %v", err)
	}

	if _, err := svc.BuscarPorID(ctx, criada.ID, tenantB); !errors.Is(err, repo.ErrNotFound) {
		t.Fatalf("tenant B não deveria enxergar a categoria de A, veio %v", err)
	}
	if _, err := svc.BuscarPorID(ctx, criada.ID, tenantA); err != nil {
		t.Fatalf("tenant A deveria enxergar sua categoria: %v", err)
	}
	if _, err := svc.BuscarPorID(ctx, criada.ID, nil); err != nil {
		t.Fatalf("escopo irrestrito deveria enxergar tudo: %v", err)
	}

	// Mesmo nome em outro tenant cria linha própria.
	idB, err := svc.FindOrCreateByNome(ctx, "Bills", tenantB)
	if err != nil {
		t.Fatalf("find-or-create em B: %v", err)
	}
	if idB == criada.ID {
		t.Fatal("tenants diferentes não podem compartilhar a mesma linha")
	}

	pagina, err := svc.ListarCategorias(ctx, "", 1, 10, tenantB)
	if err != nil {
		t.Fatalf("listagem B: %v", err)
	}
	for _, c := range pagina.Itens {
		if c.ID == criada.ID {
			t.Fatal("listagem de B vazou categoria de A")
		}
	}
}

func TestListarPaginacao(t *testing.T) {
	mem := newMemRepo()
	svc := novoServico(mem)
	ctx := context.Background()
	tenant := tenantPtr(t)

	for i := 0; i < 25; i++ {
		if _, err := svc.Criar(ctx, CriarCategoriaInput{Nome: fmt.Sprintf("Categoria %02d", i), Cor: "#EF4444"}, tenant); err != nil {
			t.Fatalf("seed %d: %v", i, err)
		}
	}

	primeira, err := svc.ListarCategorias(ctx, "", 1, 10, tenant)
	if err != nil {
		t.Fatalf("página 1: %v", err)
	}
	if primeira.Total != 25 || primeira.TotalPaginas != 3 || len(primeira.Itens) != 10 {
		t.Fatalf("página 1 inesperada: total=%d paginas=%d itens=%d", primeira.Total, primeira.TotalPaginas, len(primeira.Itens))
	}

	// Ordenação padrão: criação decrescente.
	if primeira.Itens[0].Nome != "Categoria 24" {
		t.Fatalf("primeiro item deveria ser o mais recente, veio %q", primeira.Itens[0].Nome)
	}

	terceira, err := svc.ListarCategorias(ctx, "", 3, 10, tenant)
	if err != nil {
		t.Fatalf("página 3: %v", err)
	}
	if len(terceira.Itens) != 5 {
		t.Fatalf("página 3 deveria ter 5 itens, tem %d", len(terceira.Itens))
	}

	alemDoFim, err := svc.ListarCategorias(ctx, "", 4, 10, tenant)
	if err != nil {
		t.Fatalf("página 4: %v", err)
	}
	if len(alemDoFim.Itens) != 0 || alemDoFim.Total != 25 {
		t.Fatalf("página além do fim deveria vir vazia com total intacto: itens=%d total=%d", len(alemDoFim.Itens), alemDoFim.Total)
	}
}

func TestListarNormalizaPaginacao(t *testing.T) {
	svc := novoServico(newMemRepo())

	pagina, err := svc.ListarCategorias(context.Background(), "", 0, -5, tenantPtr(t))
	if err != nil {
		t.Fatalf("listagem: %v", err)
	}
	if pagina.Pagina != 1 || pagina.Tamanho != 10 {
		t.Fatalf("valores não positivos deveriam normalizar para 1/10, veio %d/%d", pagina.Pagina, pagina.Tamanho)
	}
}

func TestListarBuscaEmNomeEDescricao(t *testing.T) {
	mem := newMemRepo()
	svc := novoServico(mem)
	ctx := context.Background()
	tenant := tenantPtr(t)

	descricao := "gastos com Mercado e feira"
	if _, err := svc.Criar(ctx, CriarCategoriaInput{Nome: "Alimentação", Cor: "#EF4444", Descricao: &descricao}, tenant); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := svc.Criar(ctx, CriarCategoriaInput{Nome: "Transporte", Cor: "#3B82F6"}, tenant); err != nil {
		t.Fatalf("seed: %v", err)
	}

	porNome, err := svc.ListarCategorias(ctx, "alimen", 1, 10, tenant)
	if err != nil {
		t.Fatalf("busca por nome: %v", err)
	}
	if porNome.Total != 1 || porNome.Itens[0].Nome != "Alimentação" {
		t.Fatalf("busca por nome deveria achar Alimentação, total=%d", porNome.Total)
	}

	porDescricao, err := svc.ListarCategorias(ctx, "MERCADO", 1, 10, tenant)
	if err != nil {
		t.Fatalf("busca por descrição: %v", err)
	}
	if porDescricao.Total != 1 || porDescricao.Itens[0].Nome != "Alimentação" {
		t.Fatalf("busca por descrição deveria achar Alimentação, total=%d", porDescricao.Total)
	}
}

func TestAtualizarForaDoEscopo(t *testing.T) {
	mem := newMemRepo()
	svc := novoServico(mem)
	ctx := context.Background()
	tenantA := tenantPtr(t)
	tenantB := tenantPtr(t)

	criada, err := svc.Criar(ctx, CriarCategoriaInput{Nome: "Viagem", Cor: "#A855F7"}, tenantA)
	if err != nil {
		t.Fatalf("criação: %v", err)
	}

	_, err = svc.Atualizar(ctx, criada.ID, AtualizarCategoriaInput{Nome: "Férias", Cor: "#EC4899"}, tenantB)
	if !errors.Is(err, repo.ErrNotFound) {
		t.Fatalf("atualização fora do escopo deveria dar NotFound, veio %v", err)
	}

	intacta, err := mem.GetByID(ctx, criada.ID, tenantA)
	if err != nil {
		t.Fatalf("releitura: %v", err)
	}
	if intacta.Nome != "Viagem" {
		t.Fatalf("a linha não deveria ter sido alterada, nome=%q", intacta.Nome)
	}
}

func TestAtualizarSobrescreveDescricao(t *testing.T) {
	mem := newMemRepo()
	svc := novoServico(mem)
	ctx := context.Background()
	tenant := tenantPtr(t)

	descricao := "texto antigo"
	criada, err := svc.Criar(ctx, CriarCategoriaInput{Nome: "Casa", Cor: "#14B8A6", Descricao: &descricao}, tenant)
	if err != nil {
		t.Fatalf("criação: %v", err)
	}

	atualizada, err := svc.Atualizar(ctx, criada.ID, AtualizarCategoriaInput{Nome: "Casa", Cor: "#14B8A6"}, tenant)
	if err != nil {
		t.Fatalf("atualização: %v", err)
	}
	if atualizada.Descricao != nil {
		t.Fatalf("descrição omitida deveria virar nula, veio %q", *atualizada.Descricao)
	}
	if atualizada.TenantID == nil || *atualizada.TenantID != *tenant {
		t.Fatal("tenant não pode mudar na atualização")
	}
}

func TestRemoverInexistente(t *testing.T) {
	mem := newMemRepo()
	svc := novoServico(mem)
	ctx := context.Background()
	tenantA := tenantPtr(t)
	tenantB := tenantPtr(t)

	if err := svc.Remover(ctx, uuid.New(), tenantA); !errors.Is(err, repo.ErrNotFound) {
		t.Fatalf("remoção de id inexistente deveria dar NotFound, veio %v", err)
	}

	criada, err := svc.Criar(ctx, CriarCategoriaInput{Nome: "Educação", Cor: "#6366F1"}, tenantA)
	if err != nil {
		t.Fatalf("criação: %v", err)
	}
	if err := svc.Remover(ctx, criada.ID, tenantB); !errors.Is(err, repo.ErrNotFound) {
		t.Fatalf("remoção fora do escopo deveria dar NotFound, veio %v", err)
	}
	if err := svc.Remover(ctx, criada.ID, tenantA); err != nil {
		t.Fatalf("remoção no escopo correto: %v", err)
	}
	if _, err := svc.BuscarPorID(ctx, criada.ID, tenantA); !errors.Is(err, repo.ErrNotFound) {
		t.Fatal("categoria removida continua visível")
	}
}

func TestListarTodasOrdenacao(t *testing.T) {
	mem := newMemRepo()
	svc := novoServico(mem)
	ctx := context.Background()
	tenant := tenantPtr(t)

	for _, nome := range []string{"Primeira", "Segunda", "Terceira"} {
		if _, err := svc.Criar(ctx, CriarCategoriaInput{Nome: nome, Cor: "#EF4444"}, tenant); err != nil {
			t.Fatalf("seed %s: %v", nome, err)
		}
	}

	todas, err := svc.ListarTodas(ctx, tenant)
	if err != nil {
		t.Fatalf("listagem: %v", err)
	}
	if len(todas) != 3 {
		t.Fatalf("esperava 3 categorias, veio %d", len(todas))
	}
	if todas[0].Nome != "Terceira" || todas[2].Nome != "Primeira" {
		t.Fatalf("ordenação decrescente por criação violada: %s, %s, %s", todas[0].Nome, todas[1].Nome, todas[2].Nome)
	}
}
