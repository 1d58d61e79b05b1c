package tenant

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"smartmoney/internal/domain/tenant"
	"smartmoney/internal/infrastructure/storage"
)

type Handler struct {
	renamer    tenant.Renamer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(renamer tenant.Renamer, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		renamer:    renamer,
		log:        log,
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.renameOp(), h.rename)
}

func (h *Handler) rename(ctx context.Context, input *renameInput) (*renameOutput, error) {
	err := h.renamer.Rename(ctx, input.Tenant, input.Body.NewTenant)
	switch {
	case err == nil:
		return &renameOutput{Body: renameResponse{Tenant: input.Body.NewTenant, Status: "Ok"}}, nil
	case errors.Is(err, tenant.ErrRenameConflict):
		return nil, huma.Error409Conflict(err.Error())
	case errors.Is(err, tenant.ErrSameTenant), errors.Is(err, storage.ErrInvalidTenant):
		return nil, huma.Error400BadRequest(err.Error())
	}

	var re *tenant.RenameError
	if errors.As(err, &re) && re.Residual {
		h.log.Error("rename left residual data", "old", re.OldID, "new", re.NewID, "step", re.Step)
	}
	return nil, huma.Error500InternalServerError(err.Error())
}
