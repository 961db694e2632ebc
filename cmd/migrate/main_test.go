package main

import (
	"testing"

	pkgconfig "golang-stock-ledger/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationTarget(t *testing.T) {
	path, dsn, err := migrationTarget(pkgconfig.Database{Host: "db", Port: 5432, User: "ledger", Password: "p@ss", DBName: "stocks"})
	require.NoError(t, err)
	assert.Equal(t, "file://migrations/postgres", path)
	assert.Equal(t, "postgres://ledger:p%40ss@db:5432/stocks?sslmode=disable", dsn)

	path, dsn, err = migrationTarget(pkgconfig.Database{Driver: "sqlite", Path: "data/ledger.db"})
	require.NoError(t, err)
	assert.Equal(t, "file://migrations/sqlite3", path)
	assert.Equal(t, "sqlite3://data/ledger.db", dsn)

	_, _, err = migrationTarget(pkgconfig.Database{Driver: "oracle"})
	assert.Error(t, err)
}
