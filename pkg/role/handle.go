package role

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/tendant/simple-user-admin/pkg/errors"
	"golang.org/x/exp/slog"
)

type Handle struct {
	roleService *RoleService
}

func NewHandle(roleService *RoleService) Handle {
	return Handle{
		roleService: roleService,
	}
}

func (h Handle) RegisterRoutes(r chi.Router) {
	r.Get("/api/roles", h.FindRoles)
}

func (h Handle) FindRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := h.roleService.FindRoles(r.Context())
	if err != nil {
		slog.Error("Failed to find roles", "err", err)
		errors.RenderError(w, err)
		return
	}
	render.JSON(w, r, roles)
}
