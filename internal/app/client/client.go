package client

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/exp/slog"

	"smartmoney/internal/app/client/config"
	"smartmoney/internal/domain/ledger"
	"smartmoney/internal/domain/tenant"
	"smartmoney/internal/domain/user"
	"smartmoney/internal/infrastructure/storage/file"
	"smartmoney/internal/infrastructure/storage/postgres"
	"smartmoney/internal/infrastructure/storage/sqlite"
)

var ErrNotLoggedIn = errors.New("вход не выполнен. Выполните: smartmoney auth login")

type App struct {
	config   *config.Config
	log      *slog.Logger
	registry *sqlite.Registry
	mirror   *postgres.Storage
	users    user.Servicer
	ledger   ledger.Servicer
	state    *AppState
	mu       sync.RWMutex
}

// New собирает клиент: реестр локальных хранилищ, сервис переименования,
// учетные записи и, если задан DATABASE_URI, серверную копию данных.
func New(ctx context.Context, cfg *config.Config, log *slog.Logger) (*App, error) {
	state, err := loadAppState(cfg.StatePath)
	if err != nil {
		log.Warn("Не удалось загрузить состояние приложения", "error", err)
		state = &AppState{}
	}

	registry := sqlite.NewRegistry(cfg.DataDir, log)
	tenants := tenant.NewService(registry, log)
	users := user.NewService(file.NewUserRepository(cfg.UsersPath), user.NewPasswordValidator(), tenants, log)

	var (
		mirror *postgres.Storage
		remote ledger.Remote
	)
	if cfg.RemoteEnabled() {
		mirror, err = postgres.New(ctx, cfg.DatabaseURI, cfg.MigrationsPath)
		if err != nil {
			return nil, fmt.Errorf("ошибка подключения к серверу данных: %w", err)
		}
		remote = postgres.NewMirrorRepository(mirror.Pool(), log)
	}

	return &App{
		config:   cfg,
		log:      log,
		registry: registry,
		mirror:   mirror,
		users:    users,
		ledger:   ledger.NewService(registry, remote, log),
		state:    state,
	}, nil
}

// Close закрывает все открытые хранилища.
func (a *App) Close() error {
	err := a.registry.CloseAll()
	if a.mirror != nil {
		err = errors.Join(err, a.mirror.Close())
	}
	return err
}

func (a *App) Ledger() ledger.Servicer {
	return a.ledger
}

func (a *App) RemoteEnabled() bool {
	return a.mirror != nil
}

// Scope возвращает область данных текущего пользователя.
func (a *App) Scope() (ledger.Scope, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if !a.state.LoggedIn() {
		return ledger.Scope{}, ErrNotLoggedIn
	}
	return ledger.Scope{Tenant: a.state.Username, Owner: a.state.Email}, nil
}

// State возвращает копию текущей сессии.
func (a *App) State() AppState {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return *a.state
}

func (a *App) Register(ctx context.Context, email, username, password string) (user.User, error) {
	u, err := a.users.Register(ctx, email, username, password)
	if err != nil {
		return user.User{}, err
	}
	a.log.Info("Пользователь успешно зарегистрирован", "email", email, "username", username)
	return u, nil
}

// Login проверяет пароль и сохраняет сессию.
func (a *App) Login(ctx context.Context, email, password string) (user.User, error) {
	u, err := a.users.Authenticate(ctx, email, password)
	if err != nil {
		return user.User{}, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.state.Email = u.Email
	a.state.Username = u.Username
	a.state.LoggedInAt = time.Now().UTC()
	if err := saveAppState(a.config.StatePath, a.state); err != nil {
		return user.User{}, fmt.Errorf("ошибка сохранения состояния: %w", err)
	}

	a.log.Info("Вход выполнен успешно", "username", u.Username)
	return u, nil
}

// Logout очищает сессию. Данные пользователя остаются на диске.
func (a *App) Logout() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.state = &AppState{}
	if err := saveAppState(a.config.StatePath, a.state); err != nil {
		return fmt.Errorf("ошибка сохранения состояния: %w", err)
	}
	return nil
}

// Rename меняет имя текущего пользователя вместе с его локальными данными.
func (a *App) Rename(ctx context.Context, newUsername string) (user.User, error) {
	scope, err := a.Scope()
	if err != nil {
		return user.User{}, err
	}

	u, err := a.users.ChangeUsername(ctx, scope.Owner, newUsername)
	if err != nil {
		return user.User{}, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.state.Username = u.Username
	if err := saveAppState(a.config.StatePath, a.state); err != nil {
		return user.User{}, fmt.Errorf("ошибка сохранения состояния: %w", err)
	}
	return u, nil
}

// Sync заменяет локальный кэш данными сервера.
func (a *App) Sync(ctx context.Context) (int, error) {
	scope, err := a.Scope()
	if err != nil {
		return 0, err
	}

	n, err := a.ledger.Refresh(ctx, scope)
	if err != nil {
		return 0, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.state.LastSync = time.Now().UTC()
	if err := saveAppState(a.config.StatePath, a.state); err != nil {
		a.log.Warn("Не удалось сохранить состояние", "error", err)
	}
	return n, nil
}
