package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/phrazzld/twitter-persistence/internal/domain"
	"github.com/phrazzld/twitter-persistence/internal/mapper"
	"github.com/phrazzld/twitter-persistence/internal/platform/postgres"
	"github.com/phrazzld/twitter-persistence/internal/store"
)

// parseSeed turns "ada:Ada Lovelace,grace" into users. A missing name is empty.
func parseSeed(spec string) ([]*domain.User, error) {
	var users []*domain.User
	for _, entry := range strings.Split(spec, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		username, name, _ := strings.Cut(entry, ":")
		u := domain.NewUser(strings.TrimSpace(name), strings.TrimSpace(username), nil)
		if err := u.Validate(); err != nil {
			return nil, fmt.Errorf("invalid seed entry %q: %w", entry, err)
		}
		users = append(users, u)
	}
	return users, nil
}

// seed persists users through the Data Mapper. On postgres the configured
// store is rebound to one transaction so a failed entry leaves nothing behind.
func (app *application) seed(ctx context.Context, spec string) error {
	users, err := parseSeed(spec)
	if err != nil {
		return err
	}

	rs, ok := app.stores.DataMapper.(*postgres.RecordStore)
	if !ok || app.stores.DB == nil {
		return persistAll(ctx, app.users, users)
	}

	return store.RunInTransaction(ctx, app.stores.DB, func(ctx context.Context, tx *sql.Tx) error {
		if err := persistAll(ctx, mapper.New(rs.WithTx(tx), mapper.WithLogger(app.logger)), users); err != nil {
			return err
		}
		app.logger.Info("Seeded users", slog.Int("count", len(users)))
		return nil
	})
}

func persistAll(ctx context.Context, m *mapper.UserMapper, users []*domain.User) error {
	for _, u := range users {
		if err := m.Persist(ctx, u); err != nil {
			return err
		}
	}
	return nil
}
