package tenant

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) renameOp() huma.Operation {
	return huma.Operation{
		OperationID: "tenants-rename",
		Method:      http.MethodPost,
		Path:        "/api/v1/tenants/{tenant}/rename",
		Summary:     "Переименовать тенанта",
		Description: "Переносит все локальные данные под новый идентификатор. 409, если у нового тенанта уже есть данные; старые данные тогда не меняются.",
		Tags:        []string{"tenants"},
		Middlewares: h.middleware,
	}
}
