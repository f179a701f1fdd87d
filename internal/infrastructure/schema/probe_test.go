package schema

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"wanderlite.backend/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init("development")
	os.Exit(m.Run())
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	return db
}

func TestColumns(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Exec(`CREATE TABLE widgets (id TEXT PRIMARY KEY, Display_Name TEXT, qty INTEGER)`).Error)

	cols, err := Columns(context.Background(), db, "widgets")
	require.NoError(t, err)
	require.True(t, cols["id"])
	require.True(t, cols["display_name"], "column names are lowercased")
	require.True(t, cols["qty"])
	require.False(t, cols["missing"])
}

func TestColumnsMissingTableIsEmpty(t *testing.T) {
	db := newTestDB(t)

	cols, err := Columns(context.Background(), db, "no_such_table")
	require.NoError(t, err)
	require.Empty(t, cols)
}

func TestExistingFiltersCandidates(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Exec(`CREATE TABLE widgets (id TEXT, qty INTEGER)`).Error)

	existing := Existing(context.Background(), db, "widgets", "id", "qty", "color")
	require.True(t, existing["id"])
	require.True(t, existing["qty"])
	require.False(t, existing["color"])
}

func TestHasAll(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Exec(`CREATE TABLE widgets (id TEXT, qty INTEGER)`).Error)

	ctx := context.Background()
	require.True(t, HasAll(ctx, db, "widgets", "id", "qty"))
	require.False(t, HasAll(ctx, db, "widgets", "id", "color"))
	require.False(t, HasAll(ctx, db, "no_such_table", "id"))
}

func TestHasTable(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Exec(`CREATE TABLE widgets (id TEXT)`).Error)

	ctx := context.Background()
	require.True(t, HasTable(ctx, db, "widgets"))
	require.False(t, HasTable(ctx, db, "gadgets"))
}

func TestProbeSeesUncommittedTransactionState(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		require.NoError(t, tx.Exec(`CREATE TABLE tx_local (id TEXT)`).Error)
		require.True(t, HasTable(context.Background(), tx, "tx_local"),
			"a transaction-scoped handle must observe its own DDL")
		return nil
	}))
}
