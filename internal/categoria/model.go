package categoria

import (
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// Categoria representa uma categoria de lançamentos do tenant.
// TenantID nulo indica registro global (criado sem escopo).
type Categoria struct {
	ID        uuid.UUID  `json:"id"`
	Nome      string     `json:"nome"`
	Cor       string     `json:"cor"`
	Descricao *string    `json:"descricao"`
	TenantID  *uuid.UUID `json:"tenant_id,omitempty"`
	CriadoEm  time.Time  `json:"criado_em"`
}

// CriarCategoriaInput contém os campos aceitos na criação.
type CriarCategoriaInput struct {
	Nome      string
	Cor       string
	Descricao *string
	TenantID  *uuid.UUID
}

// AtualizarCategoriaInput contém os campos sobrescritos na atualização.
// Descricao omitida é gravada como NULL; tenant e id nunca mudam.
type AtualizarCategoriaInput struct {
	Nome      string
	Cor       string
	Descricao *string
}

// ListFilter parametriza busca e paginação do repositório.
type ListFilter struct {
	Busca    string
	TenantID *uuid.UUID
	Limit    int
	Offset   int
}

// Pagina é o resultado paginado de uma listagem.
type Pagina struct {
	Itens        []Categoria `json:"itens"`
	Total        int         `json:"total"`
	Pagina       int         `json:"pagina"`
	Tamanho      int         `json:"tamanho"`
	TotalPaginas int         `json:"total_paginas"`
}

// paletaPadrao alimenta a cor de categorias criadas implicitamente.
var paletaPadrao = [...]string{
	"#EF4444", "#F97316", "#F59E0B", "#84CC16", "#22C55E",
	"#14B8A6", "#3B82F6", "#6366F1", "#A855F7", "#EC4899",
}

func corAleatoria() string {
	return paletaPadrao[rand.Intn(len(paletaPadrao))]
}
