package health

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

type Handler struct {
	remote     bool
	log        *slog.Logger
	middleware huma.Middlewares
}

// NewHandler создает обработчик проверки состояния. remote сообщает,
// подключена ли серверная копия данных.
func NewHandler(remote bool, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		remote:     remote,
		log:        log,
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.healthCheckOp(), h.healthCheck)
}

func (h *Handler) healthCheck(_ context.Context, _ *Input) (*Output, error) {
	h.log.Debug("health check request received")

	mode := "local"
	if h.remote {
		mode = "mirrored"
	}
	return &Output{
		Body: Response{
			Status: "OK",
			Mode:   mode,
		},
	}, nil
}
