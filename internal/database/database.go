// Package database looks up the plugin in the host application's
// PostgreSQL database.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"net/url"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver

	"github.com/spacialist/plugin-doctor/internal/hostenv"
)

// ErrNotInstalled is returned when the plugins table has no row for the
// plugin.
var ErrNotInstalled = errors.New("package is not installed yet. You must install it manually in spacialist")

const driverName = "pgx"

const pluginUUIDQuery = `SELECT uuid FROM plugins WHERE name = $1`

// Store is a handle on the host database.
type Store struct {
	db *sql.DB
}

// DSN builds a postgres:// connection URL from the host environment.
func DSN(env hostenv.Environment) string {
	host := env.Host()
	if port := env.Port(); port != "" {
		host = net.JoinHostPort(host, port)
	}

	u := url.URL{
		Scheme: "postgres",
		Host:   host,
		Path:   "/" + env.Database(),
	}
	if env.Username() != "" {
		u.User = url.UserPassword(env.Username(), env.Password())
	}
	return u.String()
}

// Open prepares a connection pool for the host database. No connection is
// made until the first query.
func Open(env hostenv.Environment) (*Store, error) {
	db, err := sql.Open(driverName, DSN(env))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return New(db), nil
}

// New wraps an existing handle.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// PluginUUID returns the uuid the host assigned to the plugin named name.
func (s *Store) PluginUUID(ctx context.Context, name string) (uuid.UUID, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, pluginUUIDQuery, name).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return uuid.Nil, ErrNotInstalled
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("query plugin %q: %w", name, err)
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("plugin %q has an invalid uuid %q: %w", name, raw, err)
	}
	return id, nil
}

// Ping checks that the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close releases the connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}
