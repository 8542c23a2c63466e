package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"golang.org/x/sync/singleflight"

	"github.com/gaborage/go-appkit/config"
	"github.com/gaborage/go-appkit/logger"
)

const (
	connectTimeout = 10 * time.Second
	healthTimeout  = 5 * time.Second
)

var (
	openPostgresDB = func(cfg *pgx.ConnConfig) *sql.DB {
		return stdlib.OpenDB(*cfg)
	}
	pingPostgresDB = func(ctx context.Context, db *sql.DB) error {
		return db.PingContext(ctx)
	}
)

// Conn owns the single PostgreSQL connection handle of a facade
// instance. The handle is established lazily on first use and silently
// re-established when a later operation finds it absent.
type Conn struct {
	cfg *config.DatabaseConfig
	log logger.Logger

	mu sync.Mutex
	db *sql.DB

	// dedupes concurrent lazy connects
	sfg singleflight.Group
}

// NewConn creates a connection manager. No I/O happens until the first
// EnsureConnected call.
func NewConn(cfg *config.DatabaseConfig, log logger.Logger) *Conn {
	return &Conn{cfg: cfg, log: log}
}

// quoteDSN quotes a DSN value according to libpq rules:
// - Returns double single quotes for empty strings (empty value)
// - Escapes backslashes and single quotes
// - Wraps in single quotes when value contains non-alphanumeric/._- characters
func quoteDSN(value string) string {
	if value == "" {
		return "''"
	}

	needsQuoting := false
	for _, r := range value {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') &&
			(r < '0' || r > '9') && r != '.' && r != '_' && r != '-' {
			needsQuoting = true
			break
		}
	}

	if !needsQuoting {
		return value
	}

	escaped := strings.ReplaceAll(value, "\\", "\\\\")
	escaped = strings.ReplaceAll(escaped, "'", "\\'")

	return "'" + escaped + "'"
}

func buildDSN(cfg *config.DatabaseConfig) string {
	port := cfg.Port
	if port == 0 {
		port = 5432
	}

	parts := []string{
		fmt.Sprintf("host=%s", quoteDSN(cfg.Host)),
		fmt.Sprintf("port=%d", port),
		fmt.Sprintf("user=%s", quoteDSN(cfg.Username)),
		fmt.Sprintf("password=%s", quoteDSN(cfg.Password)),
		fmt.Sprintf("dbname=%s", quoteDSN(cfg.Database)),
		"client_encoding=UTF8",
	}

	if cfg.SSLMode != "" {
		parts = append(parts, fmt.Sprintf("sslmode=%s", cfg.SSLMode))
	}

	return strings.Join(parts, " ")
}

// EnsureConnected establishes the connection handle if it does not
// exist yet. A failure is the unrecoverable ErrConnectionFailed class.
// When the handle already exists, the call is a cheap no-op.
func (c *Conn) EnsureConnected(ctx context.Context) error {
	if c.handle() != nil {
		return nil
	}

	_, err, _ := c.sfg.Do("connect", func() (any, error) {
		// Double-check after acquiring the singleflight slot
		if db := c.handle(); db != nil {
			return db, nil
		}
		return c.connect(ctx)
	})

	return err
}

func (c *Conn) connect(ctx context.Context) (*sql.DB, error) {
	pgxConfig, err := pgx.ParseConfig(buildDSN(c.cfg))
	if err != nil {
		return nil, fmt.Errorf("%w: parse config: %w", ErrConnectionFailed, err)
	}

	db := openPostgresDB(pgxConfig)

	if c.cfg.MaxConns > 0 {
		db.SetMaxOpenConns(c.cfg.MaxConns)
	}
	if c.cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(c.cfg.MaxIdleConns)
	}
	db.SetConnMaxLifetime(c.cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(c.cfg.ConnMaxIdleTime)

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	if err := pingPostgresDB(pingCtx, db); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			c.log.Error().Err(closeErr).Msg("Failed to close database handle after ping failure")
		}
		return nil, fmt.Errorf("%w: ping: %w", ErrConnectionFailed, err)
	}

	c.mu.Lock()
	c.db = db
	c.mu.Unlock()

	c.log.Info().
		Str("host", c.cfg.Host).
		Str("database", c.cfg.Database).
		Msg("Connected to PostgreSQL database")

	return db, nil
}

// handle returns the current connection handle, or nil when not
// connected. A non-nil handle is the liveness flag; there is no
// separate boolean to drift out of sync.
func (c *Conn) handle() *sql.DB {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.db
}

// IsConnected reports liveness without side effects.
func (c *Conn) IsConnected() bool {
	return c.handle() != nil
}

// Disconnect releases the connection handle. Calling it while not
// connected is a no-op.
func (c *Conn) Disconnect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.db == nil {
		return nil
	}

	c.log.Info().Msg("Closing PostgreSQL database connection")
	err := c.db.Close()
	c.db = nil
	return err
}

// Health actively pings the database, connecting first if needed.
func (c *Conn) Health(ctx context.Context) error {
	if err := c.EnsureConnected(ctx); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()

	return pingPostgresDB(ctx, c.handle())
}
