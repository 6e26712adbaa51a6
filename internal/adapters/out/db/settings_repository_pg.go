package db

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	dbcommon "storefront/internal/adapters/out/db/common"
	settingsdom "storefront/internal/domain/settings"
)

// PostgreSQL implementation of settings.Repository
type SettingsRepositoryPG struct {
	DB *sql.DB
}

func NewSettingsRepositoryPG(db *sql.DB) *SettingsRepositoryPG {
	return &SettingsRepositoryPG{DB: db}
}

func (r *SettingsRepositoryPG) Get(ctx context.Context, key string) (string, error) {
	run := dbcommon.GetRunner(ctx, r.DB)
	const q = `SELECT value FROM store_settings WHERE key = $1`

	var value string
	err := run.QueryRowContext(ctx, q, strings.TrimSpace(key)).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", settingsdom.ErrNotFound
		}
		return "", err
	}
	return value, nil
}
