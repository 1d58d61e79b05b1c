package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"
)

// AppState - сессия клиента. Выход из системы очищает только ее,
// локальные хранилища пользователей не трогаются.
type AppState struct {
	Email      string    `json:"email,omitempty"`
	Username   string    `json:"username,omitempty"`
	LoggedInAt time.Time `json:"logged_in_at,omitempty"`
	LastSync   time.Time `json:"last_sync,omitempty"`
}

func (s *AppState) LoggedIn() bool {
	return s.Email != "" && s.Username != ""
}

func loadAppState(path string) (*AppState, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &AppState{}, nil
	}
	if err != nil {
		return nil, err
	}

	var state AppState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("decode state: %w", err)
	}
	return &state, nil
}

func saveAppState(path string, state *AppState) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
