package database

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDBSQLite(t *testing.T) {
	db, err := NewDB(Config{
		Driver:          DriverSQLite,
		Path:            filepath.Join(t.TempDir(), "ledger.db"),
		MaxOpenConns:    1,
		ConnMaxLifetime: "1m",
	})
	require.NoError(t, err)
	defer db.Close()

	var one int
	require.NoError(t, db.DB.Raw("SELECT 1").Scan(&one).Error)
	assert.Equal(t, 1, one)
}

func TestNewDBSQLiteSerializesWriters(t *testing.T) {
	db, err := NewDB(Config{Driver: DriverSQLite, Path: filepath.Join(t.TempDir(), "ledger.db")})
	require.NoError(t, err)
	defer db.Close()

	sqlDB, err := db.DB.DB()
	require.NoError(t, err)
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)

	require.NoError(t, db.DB.Exec("CREATE TABLE counters (id INTEGER PRIMARY KEY, n INTEGER NOT NULL)").Error)
	require.NoError(t, db.DB.Exec("INSERT INTO counters (id, n) VALUES (1, 0)").Error)

	const writers = 20
	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- db.DB.WithContext(context.Background()).Exec("UPDATE counters SET n = n + 1 WHERE id = 1").Error
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		assert.NoError(t, err)
	}

	var n int
	require.NoError(t, db.DB.Raw("SELECT n FROM counters WHERE id = 1").Scan(&n).Error)
	assert.Equal(t, writers, n)
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, "ledger.db?_foreign_keys=on&_busy_timeout=5000&_txlock=immediate", SQLiteDSN(""))
	assert.Equal(t, "/data/x.db?_foreign_keys=on&_busy_timeout=5000&_txlock=immediate", SQLiteDSN("/data/x.db"))
	assert.Equal(t, "file:x.db?mode=ro", SQLiteDSN("file:x.db?mode=ro"))
}

func TestNewDBErrors(t *testing.T) {
	_, err := NewDB(Config{Driver: "oracle"})
	assert.ErrorContains(t, err, "unsupported database driver")

	_, err = NewDB(Config{Driver: DriverSQLite, Path: filepath.Join(t.TempDir(), "x.db"), ConnMaxLifetime: "soon"})
	assert.ErrorContains(t, err, "invalid conn_max_lifetime")
}

func TestPostgresDSN(t *testing.T) {
	dsn := PostgresDSN(Config{Host: "db", Port: 5432, User: "u", Password: "p", DBName: "ledger", TimeZone: "Asia/Ho_Chi_Minh"})
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=ledger sslmode=disable TimeZone=Asia/Ho_Chi_Minh", dsn)
}
