package database

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"os"
	"time"

	"log/slog"

	"github.com/fallencrown/gamecore/gamecore/database/models"
	"github.com/fallencrown/gamecore/gamecore/logger"
	"github.com/uptrace/bun"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

const (
	defaultConnTimeout   = 5 * time.Second
	defaultMaxRetries    = 3
	defaultRetryInterval = time.Second
	schemaVersion        = 1 // bump when schema/migrations change
)

type DBConfig struct {
	Host         string `toml:"host"`
	Port         int    `toml:"port"`
	User         string `toml:"user"`
	Password     string `toml:"password"`
	Database     string `toml:"database"`
	PoolSize     int    `toml:"pool_size"`
	MaxIdleConns int    `toml:"max_idle_conns"`
	MaxLifetime  int    `toml:"max_lifetime"`
}

type DB struct {
	pool  *pgxpool.Pool
	bunDB *bun.DB
}

func New(ctx context.Context, cfg DBConfig) (*DB, error) {
	var conn net.Conn
	var err error

	tryDial := func() (net.Conn, error) {
		addr := net.JoinHostPort(cfg.Host, fmt.Sprintf("%d", cfg.Port))
		if c, e := net.DialTimeout("tcp4", addr, defaultConnTimeout); e == nil {
			return c, nil
		}
		return net.DialTimeout("tcp6", addr, defaultConnTimeout)
	}

	for i := 0; i < defaultMaxRetries; i++ {
		conn, err = tryDial()
		if err == nil {
			break
		}
		time.Sleep(defaultRetryInterval)
	}
	if err != nil {
		return nil, fmt.Errorf("database server unreachable after %d attempts: %w", defaultMaxRetries, err)
	}
	defer conn.Close()

	poolConfig, err := pgxpool.ParseConfig(buildConnString(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}

	if cfg.PoolSize > 0 {
		poolConfig.MaxConns = int32(cfg.PoolSize)
	}
	if cfg.MaxIdleConns > 0 {
		poolConfig.MinConns = int32(cfg.MaxIdleConns)
	}
	if cfg.MaxLifetime > 0 {
		poolConfig.MaxConnLifetime = time.Duration(cfg.MaxLifetime) * time.Second
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	return &DB{pool: pool, bunDB: newBunDB(pool)}, nil
}

func buildConnString(cfg DBConfig) string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?connect_timeout=5",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database,
	)
}

func (db *DB) GetPool() *pgxpool.Pool {
	return db.pool
}

func (db *DB) BunDB() *bun.DB {
	return db.bunDB
}

func newBunDB(pool *pgxpool.Pool) *bun.DB {
	sslMode := os.Getenv("PG_SSLMODE")
	if sslMode == "" {
		sslMode = "disable"
	}

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		pool.Config().ConnConfig.User,
		pool.Config().ConnConfig.Password,
		pool.Config().ConnConfig.Host,
		pool.Config().ConnConfig.Port,
		pool.Config().ConnConfig.Database,
		sslMode,
	)

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	return bun.NewDB(sqldb, pgdialect.New())
}

func (db *DB) ExecWithLog(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error) {
	start := time.Now()
	result, err := db.pool.Exec(ctx, sql, args...)
	logger.LogQuery(sql, time.Since(start), err)
	return result, err
}

func (db *DB) QueryWithLog(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error) {
	start := time.Now()
	rows, err := db.pool.Query(ctx, sql, args...)
	logger.LogQuery(sql, time.Since(start), err)
	return rows, err
}

func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
	if db.bunDB != nil {
		db.bunDB.Close()
	}
}

// SchemaModels lists every persisted model in dependency order.
func SchemaModels() []interface{} {
	return []interface{}{
		(*models.Player)(nil),
		(*models.Wallet)(nil),
		(*models.ItemCatalog)(nil),
		(*models.InventoryItem)(nil),
		(*models.Quest)(nil),
		(*models.QuestNode)(nil),
		(*models.QuestChoice)(nil),
		(*models.QuestProgress)(nil),
		(*models.PlantType)(nil),
		(*models.PlayerFarmingStats)(nil),
		(*models.FarmPlot)(nil),
		(*models.PlantedCrop)(nil),
	}
}

// InitializeSchema creates all required database tables and indexes
func (db *DB) InitializeSchema(ctx context.Context) error {
	fastInit := os.Getenv("DB_FAST_INIT") == "1"
	if fastInit {
		if err := db.ensureAppMeta(ctx); err == nil {
			if v, _ := db.getAppMeta(ctx, "schema_version"); v == fmt.Sprintf("%d", schemaVersion) {
				slog.Info("Fast DB init: schema up-to-date, skipping initialization",
					slog.String("mode", "DB_FAST_INIT"),
					slog.Int("schema_version", schemaVersion))
				return nil
			}
		}
	}

	// Quest and item content is Ukrainian; the database has to speak UTF-8.
	if err := db.ensureUTF8Encoding(ctx); err != nil {
		return fmt.Errorf("failed to ensure UTF-8 encoding: %w", err)
	}

	for _, model := range SchemaModels() {
		query := db.bunDB.NewCreateTable().
			Model(model).
			IfNotExists()

		if _, err := query.Exec(ctx); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_quest_nodes_quest_id ON quest_nodes(quest_id);",
		"CREATE INDEX IF NOT EXISTS idx_quest_nodes_start ON quest_nodes(quest_id) WHERE is_start = true;",
		"CREATE INDEX IF NOT EXISTS idx_quest_choices_node_id ON quest_choices(node_id);",
		"CREATE INDEX IF NOT EXISTS idx_quest_progress_node ON quest_progress(current_node_id);",
		"CREATE INDEX IF NOT EXISTS idx_inventory_items_owner ON inventory_items(owner_id);",
		"CREATE INDEX IF NOT EXISTS idx_farm_plots_player ON farm_plots(player_id, slot_index);",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_farm_crops_plot ON farm_planted_crops(plot_id);",
		"CREATE INDEX IF NOT EXISTS idx_farm_crops_ready ON farm_planted_crops(ready_at) WHERE state = 'growing';",
	}

	for _, idx := range indexes {
		if _, err := db.ExecWithLog(ctx, idx); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	if err := db.ensureAppMeta(ctx); err == nil {
		_ = db.setAppMeta(ctx, "schema_version", fmt.Sprintf("%d", schemaVersion))
	}

	return nil
}

// ensureAppMeta creates the app_meta table if not exists
func (db *DB) ensureAppMeta(ctx context.Context) error {
	_, err := db.ExecWithLog(ctx, `CREATE TABLE IF NOT EXISTS app_meta (key TEXT PRIMARY KEY, value TEXT)`)
	return err
}

func (db *DB) getAppMeta(ctx context.Context, key string) (string, error) {
	rows, err := db.QueryWithLog(ctx, `SELECT value FROM app_meta WHERE key = $1`, key)
	if err != nil {
		return "", err
	}
	defer rows.Close()
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return "", err
		}
		return "", sql.ErrNoRows
	}
	var v string
	if err := rows.Scan(&v); err != nil {
		return "", err
	}
	return v, nil
}

func (db *DB) setAppMeta(ctx context.Context, key, value string) error {
	sql := `INSERT INTO app_meta(key, value) VALUES($1, $2)
            ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`
	_, err := db.pool.Exec(ctx, sql, key, value)
	return err
}

// Ping verifies both database connections are working
func (db *DB) Ping(ctx context.Context) error {
	if err := db.pool.Ping(ctx); err != nil {
		return fmt.Errorf("pgxpool ping failed: %w", err)
	}

	if err := db.bunDB.PingContext(ctx); err != nil {
		return fmt.Errorf("bun ping failed: %w", err)
	}

	return nil
}

// ensureUTF8Encoding checks and ensures the database is using UTF-8 encoding
func (db *DB) ensureUTF8Encoding(ctx context.Context) error {
	var encoding string
	err := db.pool.QueryRow(ctx, "SHOW server_encoding;").Scan(&encoding)
	if err != nil {
		return fmt.Errorf("failed to check database encoding: %w", err)
	}

	slog.Info("Database encoding", "encoding", encoding)

	// Changing the encoding requires superuser, so only warn.
	if encoding != "UTF8" {
		slog.Warn("Database is not using UTF-8 encoding, quest text may render incorrectly",
			"current_encoding", encoding,
			"recommended", "UTF8")
	}

	_, err = db.pool.Exec(ctx, "SET client_encoding TO 'UTF8';")
	if err != nil {
		return fmt.Errorf("failed to set client encoding to UTF-8: %w", err)
	}

	return nil
}
