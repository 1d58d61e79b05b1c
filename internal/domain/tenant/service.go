package tenant

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/exp/slog"
)

// Renamer переносит все данные тенанта под новый идентификатор.
type Renamer interface {
	Rename(ctx context.Context, oldID, newID string) error
}

type Service struct {
	dir Directory
	log *slog.Logger
	mu  sync.Mutex
}

func NewService(dir Directory, log *slog.Logger) *Service {
	return &Service{
		dir: dir,
		log: log.With("component", "tenant_service"),
	}
}

// Rename копирует все строки старого тенанта в хранилище нового одной
// транзакцией, затем удаляет старое хранилище. Успех возвращается только
// после удаления. При любой ошибке старое хранилище остается нетронутым,
// а созданное целевое хранилище удаляется.
//
// До снимка старое хранилище замораживается: запись в него завершается
// ошибкой storage.ErrFrozen, поэтому подтвержденные записи не теряются.
//
// Переименования внутри процесса выполняются строго по одному.
func (s *Service) Rename(ctx context.Context, oldID, newID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if oldID == newID {
		return ErrSameTenant
	}

	hasData, err := s.dir.HasData(ctx, newID)
	if err != nil {
		return s.fail(oldID, newID, StepOpenTarget, err, false)
	}
	if hasData {
		s.log.Warn("rename target already has data", "from", oldID, "to", newID)
		return fmt.Errorf("%w: %q", ErrRenameConflict, newID)
	}

	exists, err := s.dir.Exists(oldID)
	if err != nil {
		return s.fail(oldID, newID, StepReadSource, err, false)
	}
	if !exists {
		// Хранилище еще не создавалось: переносить нечего.
		s.dir.Evict(oldID)
		s.log.Info("tenant renamed without local data", "from", oldID, "to", newID)
		return nil
	}

	// 1. Замораживаем старого тенанта и читаем все его строки.
	oldDS, err := s.dir.Dataset(oldID)
	if err != nil {
		return s.fail(oldID, newID, StepReadSource, err, false)
	}
	if err := oldDS.Freeze(ctx); err != nil {
		return s.fail(oldID, newID, StepReadSource, err, false)
	}
	snap, err := oldDS.Snapshot(ctx)
	if err != nil {
		return s.fail(oldID, newID, StepReadSource, err, false)
	}

	// 2. Открываем (создаем) хранилище нового тенанта.
	newDS, err := s.dir.Dataset(newID)
	if err != nil {
		return s.fail(oldID, newID, StepOpenTarget, err, false)
	}
	if err := newDS.Open(ctx); err != nil {
		return s.fail(oldID, newID, StepOpenTarget, err, true)
	}

	// 3. Вставляем все строки одной транзакцией; ключ профиля - новое имя.
	if snap.Profile != nil {
		profile := *snap.Profile
		profile.Username = newID
		snap.Profile = &profile
	}
	if err := newDS.Import(ctx, snap); err != nil {
		return s.fail(oldID, newID, StepImport, err, true)
	}

	// 4. Закрываем оба подключения.
	if err := errors.Join(oldDS.Close(), newDS.Close()); err != nil {
		return s.fail(oldID, newID, StepClose, err, true)
	}

	// 5. Сбрасываем кэш нового тенанта. Замороженный хэндл старого остается
	// в кэше до удаления и не дает открыть файл заново.
	s.dir.Evict(newID)

	// 6. Удаляем старое хранилище вместе с записью в кэше.
	if err := s.dir.Destroy(oldID); err != nil {
		return s.fail(oldID, newID, StepDeleteSource, err, true)
	}

	s.log.Info("tenant renamed", "from", oldID, "to", newID, "rows", snap.Rows())
	return nil
}

// fail откатывает целевое хранилище, если оно могло быть затронуто.
// На момент вызова в нем нет чужих данных: это проверено до переноса.
func (s *Service) fail(oldID, newID string, step Step, cause error, rollbackTarget bool) error {
	renameErr := &RenameError{OldID: oldID, NewID: newID, Step: step, Err: cause}

	if ds, err := s.dir.Dataset(oldID); err == nil {
		_ = ds.Close()
	}
	s.dir.Evict(oldID)

	if rollbackTarget {
		if ds, err := s.dir.Dataset(newID); err == nil {
			_ = ds.Close()
		}
		s.dir.Evict(newID)
		if err := s.dir.Destroy(newID); err != nil {
			renameErr.Residual = true
			s.log.Error("failed to roll back rename target", "tenant", newID, "error", err)
		}
	}

	s.log.Error("tenant rename failed",
		"from", oldID, "to", newID, "step", string(step), "residual", renameErr.Residual, "error", cause)
	return renameErr
}
