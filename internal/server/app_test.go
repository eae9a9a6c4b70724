package server

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/profilekeeper/internal/server/assets"
	"github.com/dmitrijs2005/profilekeeper/internal/server/config"
	"github.com/dmitrijs2005/profilekeeper/internal/server/repositories/repomanager"
)

func testConfig() *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	return c
}

func stubOpen(t *testing.T, db *sql.DB, err error) {
	t.Helper()
	orig := sqlOpen
	t.Cleanup(func() { sqlOpen = orig })
	sqlOpen = func(driver, dsn string) (*sql.DB, error) {
		assert.Equal(t, "pgx", driver)
		return db, err
	}
}

func TestOpenDB_PingsPool(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	stubOpen(t, db, nil)

	mock.ExpectPing()

	got, err := openDB(context.Background(), testConfig())
	require.NoError(t, err)
	assert.Same(t, db, got)
	assert.Equal(t, 10, got.Stats().MaxOpenConnections)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOpenDB_PingFails(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	stubOpen(t, db, nil)

	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	mock.ExpectClose()

	_, err = openDB(context.Background(), testConfig())
	require.ErrorContains(t, err, "connection refused")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNewApp_OpenFails(t *testing.T) {
	stubOpen(t, nil, errors.New("bad dsn"))

	_, err := NewApp(context.Background(), testConfig())
	require.ErrorContains(t, err, "db init error")
}

func TestNewStore(t *testing.T) {
	rm := repomanager.NewPostgresRepositoryManager()

	t.Run("local", func(t *testing.T) {
		c := testConfig()
		c.UploadsDir = filepath.Join(t.TempDir(), "uploads")

		st, err := newStore(context.Background(), c, rm, nil)
		require.NoError(t, err)
		require.IsType(t, &assets.LocalStore{}, st)
		assert.DirExists(t, c.UploadsDir)
	})

	t.Run("unknown", func(t *testing.T) {
		c := testConfig()
		c.AssetBackend = "ftp"

		_, err := newStore(context.Background(), c, rm, nil)
		require.ErrorContains(t, err, "unknown asset backend")
	})
}
