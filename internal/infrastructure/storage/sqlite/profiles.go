package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"smartmoney/internal/domain/finance"
)

func (h *Handle) GetProfile(ctx context.Context, username string) (finance.Profile, error) {
	var p finance.Profile
	err := h.exec(ctx, func(db *sql.DB) error {
		var err error
		p, err = getProfile(ctx, db, username)
		return err
	})
	return p, err
}

func (h *Handle) PutProfile(ctx context.Context, p finance.Profile) error {
	return h.write(ctx, func(db *sql.DB) error {
		return insertProfile(ctx, db, true, p)
	})
}

func (h *Handle) DeleteProfile(ctx context.Context, username string) error {
	return h.write(ctx, func(db *sql.DB) error {
		return deleteByKey(ctx, db, "profiles", "username", username)
	})
}

func (t *Tx) AddProfile(ctx context.Context, p finance.Profile) error {
	return insertProfile(ctx, t.q, false, p)
}

func (t *Tx) PutProfile(ctx context.Context, p finance.Profile) error {
	return insertProfile(ctx, t.q, true, p)
}

func insertProfile(ctx context.Context, q querier, replace bool, p finance.Profile) error {
	verb := "INSERT"
	if replace {
		verb = "INSERT OR REPLACE"
	}
	_, err := q.ExecContext(ctx,
		verb+` INTO profiles (username, full_name, bio, avatar) VALUES (?, ?, ?, ?)`,
		p.Username, nullString(p.FullName), nullString(p.Bio), nullString(p.Avatar),
	)
	if err != nil {
		return fmt.Errorf("insert profile %s: %w", p.Username, mapWriteErr(err))
	}
	return nil
}

func getProfile(ctx context.Context, q querier, username string) (finance.Profile, error) {
	var (
		p                     finance.Profile
		fullName, bio, avatar sql.NullString
	)
	err := q.QueryRowContext(ctx, `SELECT username, full_name, bio, avatar FROM profiles WHERE username = ?`, username).
		Scan(&p.Username, &fullName, &bio, &avatar)
	if errors.Is(err, sql.ErrNoRows) {
		return p, fmt.Errorf("profile %s: %w", username, finance.ErrNotFound)
	}
	if err != nil {
		return p, fmt.Errorf("get profile: %w", err)
	}
	p.FullName = fullName.String
	p.Bio = bio.String
	p.Avatar = avatar.String
	return p, nil
}
