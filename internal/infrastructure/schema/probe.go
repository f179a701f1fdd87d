package schema

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"wanderlite.backend/pkg/logger"
)

// Package schema answers which columns and tables physically exist in the
// connected database. Every call queries the catalog fresh: deployments
// differ in schema and correctness is worth the round trip. Callers pass
// their own (possibly transaction-scoped) handle so probe and statement
// observe the same connection. Introspection failure yields the narrowest
// possible answer (nothing exists) so a write path can always fall back
// instead of crashing.

// Columns returns the set of column names present on a table.
func Columns(ctx context.Context, db *gorm.DB, table string) (map[string]bool, error) {
	var names []string
	var err error
	switch db.Dialector.Name() {
	case "sqlite", "sqlite3":
		err = db.WithContext(ctx).
			Raw(`SELECT name FROM pragma_table_info(?)`, table).
			Scan(&names).Error
	default:
		err = db.WithContext(ctx).
			Raw(`SELECT column_name FROM information_schema.columns WHERE table_schema = current_schema() AND table_name = ?`, table).
			Scan(&names).Error
	}
	if err != nil {
		return nil, err
	}
	cols := make(map[string]bool, len(names))
	for _, n := range names {
		cols[strings.ToLower(n)] = true
	}
	return cols, nil
}

// Existing filters candidates down to the columns that physically exist on
// the table. It never fails: a broken catalog query returns the empty set
// and the caller's minimal-write path takes over.
func Existing(ctx context.Context, db *gorm.DB, table string, candidates ...string) map[string]bool {
	cols, err := Columns(ctx, db, table)
	if err != nil {
		logger.Warn(ctx, "schema introspection failed, assuming narrowest shape",
			zap.String("table", table), zap.Error(err))
		return map[string]bool{}
	}
	existing := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		if cols[strings.ToLower(c)] {
			existing[c] = true
		}
	}
	return existing
}

// HasAll reports whether the table has every one of the given columns.
func HasAll(ctx context.Context, db *gorm.DB, table string, columns ...string) bool {
	existing := Existing(ctx, db, table, columns...)
	for _, c := range columns {
		if !existing[c] {
			return false
		}
	}
	return true
}

// HasTable reports whether the table exists at all.
func HasTable(ctx context.Context, db *gorm.DB, table string) bool {
	var count int64
	var err error
	switch db.Dialector.Name() {
	case "sqlite", "sqlite3":
		err = db.WithContext(ctx).
			Raw(`SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, table).
			Scan(&count).Error
	default:
		err = db.WithContext(ctx).
			Raw(`SELECT count(*) FROM information_schema.tables WHERE table_schema = current_schema() AND table_name = ?`, table).
			Scan(&count).Error
	}
	if err != nil {
		logger.Warn(ctx, "schema introspection failed, assuming table absent",
			zap.String("table", table), zap.Error(err))
		return false
	}
	return count > 0
}
