// Package testdb spins up an in-memory SQLite database with the full
// schema for engine tests.
package testdb

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/fallencrown/gamecore/gamecore/database"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

var dbSeq atomic.Int64

// New returns a bun.DB over a fresh in-memory SQLite database with every
// table created. The database is closed when the test finishes.
func New(t *testing.T) *bun.DB {
	t.Helper()

	// A named in-memory database keeps tests isolated from each other
	// while staying visible across pooled connections.
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", dbSeq.Add(1))
	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	for _, model := range database.SchemaModels() {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			t.Fatalf("create table for %T: %v", model, err)
		}
	}

	return db
}
