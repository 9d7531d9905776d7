package categoria

import (
	"github.com/go-chi/chi/v5"
)

// Mount adiciona as rotas de categorias no router.
func Mount(r chi.Router, handler *Handler) {
	handler.RegisterRoutes(r)
}
