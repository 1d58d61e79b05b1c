package ledger

import (
	"errors"

	"github.com/danielgtaylor/huma/v2"

	"smartmoney/internal/domain/finance"
	"smartmoney/internal/domain/ledger"
	"smartmoney/internal/infrastructure/storage"
)

// toHTTPError переводит доменные ошибки в ответы API.
func toHTTPError(err error) error {
	switch {
	case errors.Is(err, finance.ErrNotFound):
		return huma.Error404NotFound(err.Error())
	case errors.Is(err, finance.ErrInvalidData),
		errors.Is(err, storage.ErrInvalidTenant),
		errors.Is(err, ledger.ErrInvalidScope):
		return huma.Error400BadRequest(err.Error())
	case errors.Is(err, storage.ErrAlreadyExists):
		return huma.Error409Conflict(err.Error())
	case errors.Is(err, storage.ErrStorageUnavailable),
		errors.Is(err, storage.ErrFrozen),
		errors.Is(err, ledger.ErrNoRemote):
		return huma.Error503ServiceUnavailable(err.Error())
	}
	return huma.Error500InternalServerError("internal error")
}
