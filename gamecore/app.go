// Package gamecore wires the progression engines together over one
// database handle.
package gamecore

import (
	"context"
	"log/slog"

	"github.com/fallencrown/gamecore/gamecore/content"
	"github.com/fallencrown/gamecore/gamecore/database"
	"github.com/fallencrown/gamecore/gamecore/farm"
	"github.com/fallencrown/gamecore/gamecore/inventory"
	"github.com/fallencrown/gamecore/gamecore/leveling"
	"github.com/fallencrown/gamecore/gamecore/logger"
	"github.com/fallencrown/gamecore/gamecore/quest"
)

type App struct {
	Cfg          Config
	DB           *database.DB
	Leveling     *leveling.Service
	Inventory    *inventory.Service
	QuestBuilder *quest.Builder
	QuestEngine  *quest.Engine
	Farm         *farm.Service
	Version      string
	Commit       string
}

func New(cfg Config, version string, commit string) *App {
	return &App{
		Cfg:     cfg,
		Version: version,
		Commit:  commit,
	}
}

// Setup connects the database, builds the engines and syncs authored
// content. Safe to call once at startup.
func (a *App) Setup(ctx context.Context) error {
	db, err := database.New(ctx, a.Cfg.DB)
	if err != nil {
		return err
	}
	a.DB = db

	if err := db.Ping(ctx); err != nil {
		return err
	}
	logger.LogSystem("Database connected",
		slog.Int("pool_max_conns", int(db.GetPool().Config().MaxConns)))
	if err := db.InitializeSchema(ctx); err != nil {
		return err
	}

	cache, err := quest.NewNodeCache(a.Cfg.Quest.NodeCacheSize)
	if err != nil {
		return err
	}

	a.Leveling = leveling.NewService(leveling.NewDefaultConfig())
	a.Inventory = inventory.NewService()
	a.QuestBuilder = quest.NewBuilder(db.BunDB(), cache)
	a.QuestEngine = quest.NewEngine(db.BunDB(), a.Leveling, a.Inventory, cache)
	a.Farm = farm.NewService(db.BunDB())

	if err := a.Inventory.EnsureDefaultCatalog(ctx, db.BunDB()); err != nil {
		return err
	}
	if err := content.EnsureContent(ctx, a.QuestBuilder); err != nil {
		return err
	}

	logger.LogSystem("Game core ready",
		slog.String("version", a.Version),
		slog.String("commit", a.Commit))
	return nil
}

func (a *App) Close() {
	if a.DB != nil {
		a.DB.Close()
	}
}
