package storage

import "errors"

// Ошибки уровня хранилища, общие для локального и удаленного бэкендов.
var (
	// ErrStorageUnavailable - хранилище нельзя создать или открыть (квота,
	// повреждение файла, права доступа). Для сессии это фатально.
	ErrStorageUnavailable = errors.New("storage unavailable")
	// ErrNotOpen - операция над закрытым хэндлом. Ошибка программиста.
	ErrNotOpen = errors.New("storage handle is not open")
	// ErrInvalidTenant - идентификатор тенанта нельзя использовать как имя хранилища.
	ErrInvalidTenant = errors.New("invalid tenant id")
	// ErrAlreadyExists - строка с таким первичным ключом уже есть.
	ErrAlreadyExists = errors.New("already exists")
	// ErrFrozen - хранилище заморожено на время переименования тенанта и
	// принимает только чтение. Запись можно повторить после завершения.
	ErrFrozen = errors.New("storage is frozen for rename")
)
