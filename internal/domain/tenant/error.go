package tenant

import (
	"errors"
	"fmt"
)

var (
	// ErrRenameConflict - у целевого тенанта уже есть данные. Пользователь может исправить имя.
	ErrRenameConflict = errors.New("target tenant already has data")
	// ErrRenameFailure - перенос не удался; данные старого тенанта не тронуты.
	ErrRenameFailure = errors.New("tenant rename failed")
	ErrSameTenant    = errors.New("old and new tenant ids are equal")
)

type Step string

const (
	StepReadSource   Step = "read source"
	StepOpenTarget   Step = "open target"
	StepImport       Step = "import"
	StepClose        Step = "close"
	StepDeleteSource Step = "delete source"
)

// RenameError описывает неудачный перенос. Residual означает, что в целевом
// хранилище могли остаться данные, которые не удалось убрать.
type RenameError struct {
	OldID    string
	NewID    string
	Step     Step
	Residual bool
	Err      error
}

func (e *RenameError) Error() string {
	msg := fmt.Sprintf("rename tenant %q to %q failed at %s: %v", e.OldID, e.NewID, e.Step, e.Err)
	if e.Residual {
		msg += "; target storage may still hold partial data"
	}
	return msg
}

func (e *RenameError) Unwrap() []error {
	return []error{ErrRenameFailure, e.Err}
}
