// Package dbtest provides an in-memory SQLite store with the production schema
// for tests.
package dbtest

import (
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/justsurfingit/talentflow/internal/database"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ErrInjected is returned by statements failed through FailOn.
var ErrInjected = errors.New("injected storage failure")

type Op string

const (
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpQuery  Op = "query"
)

// New returns a migrated in-memory database. A single connection keeps the
// memory database alive for the whole test.
func New(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

// FailOn makes every op statement against table fail with ErrInjected.
func FailOn(t testing.TB, db *gorm.DB, op Op, table string) {
	t.Helper()
	name := "dbtest:fail_" + string(op) + "_" + table
	fn := func(tx *gorm.DB) {
		if tx.Statement.Schema != nil && tx.Statement.Schema.Table == table {
			_ = tx.AddError(ErrInjected)
		}
	}

	var err error
	switch op {
	case OpCreate:
		err = db.Callback().Create().Before("gorm:create").Register(name, fn)
	case OpUpdate:
		err = db.Callback().Update().Before("gorm:update").Register(name, fn)
	case OpQuery:
		err = db.Callback().Query().Before("gorm:query").Register(name, fn)
	default:
		t.Fatalf("unknown op %q", op)
	}
	require.NoError(t, err)
}
