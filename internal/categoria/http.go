package categoria

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	httpmiddleware "github.com/planejei/api/internal/http/middleware"
	"github.com/planejei/api/internal/repo"
)

// Handler orquestra as rotas do módulo de categorias.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/categorias", func(r chi.Router) {
		r.Get("/", h.handleListar)
		r.Post("/", h.handleCriar)
		r.Get("/todas", h.handleListarTodas)
		r.Post("/resolver", h.handleResolverNome)
		r.Get("/{id}", h.handleBuscar)
		r.Put("/{id}", h.handleAtualizar)
		r.Delete("/{id}", h.handleRemover)
	})
}

func (h *Handler) handleListar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	escopo, err := escopoTenant(ctx)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "AUTH", "tenant inválido", nil)
		return
	}

	pagina := queryInt(r, "pagina", 1)
	tamanho := queryInt(r, "tamanho", 10)
	busca := strings.TrimSpace(r.URL.Query().Get("busca"))

	resultado, err := h.service.ListarCategorias(ctx, busca, pagina, tamanho, escopo)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resultado)
}

func (h *Handler) handleListarTodas(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	escopo, err := escopoTenant(ctx)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "AUTH", "tenant inválido", nil)
		return
	}

	categorias, err := h.service.ListarTodas(ctx, escopo)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"categorias": categorias})
}

func (h *Handler) handleBuscar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	escopo, err := escopoTenant(ctx)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "AUTH", "tenant inválido", nil)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", "categoria inválida", nil)
		return
	}

	cat, err := h.service.BuscarPorID(ctx, id, escopo)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, cat)
}

func (h *Handler) handleCriar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	escopo, err := escopoTenant(ctx)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "AUTH", "tenant inválido", nil)
		return
	}

	var payload struct {
		Nome      string  `json:"nome"`
		Cor       string  `json:"cor"`
		Descricao *string `json:"descricao"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", "JSON inválido", nil)
		return
	}

	if strings.TrimSpace(payload.Cor) == "" {
		writeError(w, http.StatusBadRequest, "VALIDATION", "Cor da categoria é obrigatória", nil)
		return
	}

	cat, err := h.service.Criar(ctx, CriarCategoriaInput{
		Nome:      payload.Nome,
		Cor:       payload.Cor,
		Descricao: payload.Descricao,
	}, escopo)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, cat)
}

func (h *Handler) handleAtualizar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	escopo, err := escopoTenant(ctx)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "AUTH", "tenant inválido", nil)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", "categoria inválida", nil)
		return
	}

	var payload struct {
		Nome      string  `json:"nome"`
		Cor       string  `json:"cor"`
		Descricao *string `json:"descricao"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", "JSON inválido", nil)
		return
	}

	if strings.TrimSpace(payload.Cor) == "" {
		writeError(w, http.StatusBadRequest, "VALIDATION", "Cor da categoria é obrigatória", nil)
		return
	}

	cat, err := h.service.Atualizar(ctx, id, AtualizarCategoriaInput{
		Nome:      payload.Nome,
		Cor:       payload.Cor,
		Descricao: payload.Descricao,
	}, escopo)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, cat)
}

func (h *Handler) handleRemover(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	escopo, err := escopoTenant(ctx)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "AUTH", "tenant inválido", nil)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", "categoria inválida", nil)
		return
	}

	if err := h.service.Remover(ctx, id, escopo); err != nil {
		handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) handleResolverNome(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	escopo, err := escopoTenant(ctx)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "AUTH", "tenant inválido", nil)
		return
	}

	var payload struct {
		Nome string `json:"nome"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", "JSON inválido", nil)
		return
	}

	id, err := h.service.FindOrCreateByNome(ctx, payload.Nome, escopo)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"id": id})
}

// escopoTenant deriva o escopo das claims: papel SUPER_ADMIN ou claim ausente
// significa acesso irrestrito; caso contrário o tenant do token delimita tudo.
func escopoTenant(ctx context.Context) (*uuid.UUID, error) {
	if httpmiddleware.HasRole(ctx, httpmiddleware.RoleSuperAdmin) {
		return nil, nil
	}
	raw := httpmiddleware.GetTenant(ctx)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func queryInt(r *http.Request, key string, def int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return val
}

func handleDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNomeObrigatorio):
		writeError(w, http.StatusBadRequest, "VALIDATION", "Nome da categoria é obrigatório", nil)
	case errors.Is(err, repo.ErrNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Categoria não encontrada", nil)
	case errors.Is(err, repo.ErrDuplicate):
		writeError(w, http.StatusConflict, "CONFLICT", "já existe categoria com esse nome", nil)
	default:
		writeInternalError(w, err)
	}
}

func writeInternalError(w http.ResponseWriter, err error) {
	log.Error().Err(err).Msg("categoria handler error")
	writeError(w, http.StatusInternalServerError, "INTERNAL", "erro interno", nil)
}

// Helpers de resposta JSON compatíveis com o resto do projeto.
type successEnvelope struct {
	Data  any `json:"data"`
	Error any `json:"error"`
}

type errorEnvelope struct {
	Data  any            `json:"data"`
	Error *errorResponse `json:"error"`
}

type errorResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(successEnvelope{Data: payload, Error: nil})
}

func writeError(w http.ResponseWriter, status int, code, message string, details interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorEnvelope{
		Data:  nil,
		Error: &errorResponse{Code: code, Message: message, Details: details},
	})
}
