package database

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"testing/fstest"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pageza/recipe-catalog/backend/config"
)

func migrationFS() fstest.MapFS {
	return fstest.MapFS{
		"0002_indexes.sql": {Data: []byte("CREATE INDEX idx_b ON t (b)")},
		"0001_init.sql":    {Data: []byte("CREATE TABLE t (a INT)")},
		"README.md":        {Data: []byte("not a migration")},
	}
}

func TestApplySQLMigrations(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS schema_migrations")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT name FROM schema_migrations")).
		WillReturnRows(sqlmock.NewRows([]string{"name"}))

	for _, m := range []struct{ name, sql string }{
		{"0001_init.sql", "CREATE TABLE t (a INT)"},
		{"0002_indexes.sql", "CREATE INDEX idx_b ON t (b)"},
	} {
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(m.sql)).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO schema_migrations (name) VALUES ($1)")).
			WithArgs(m.name).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()
	}

	applied, err := ApplySQLMigrations(context.Background(), db, migrationFS(), zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, []string{"0001_init.sql", "0002_indexes.sql"}, applied)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplySQLMigrationsSkipsApplied(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS schema_migrations")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT name FROM schema_migrations")).
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("0001_init.sql"))
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("CREATE INDEX idx_b ON t (b)")).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO schema_migrations")).
		WithArgs("0002_indexes.sql").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	applied, err := ApplySQLMigrations(context.Background(), db, migrationFS(), zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, []string{"0002_indexes.sql"}, applied)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplySQLMigrationsRollsBackFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	boom := errors.New("syntax error")
	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS schema_migrations")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT name FROM schema_migrations")).
		WillReturnRows(sqlmock.NewRows([]string{"name"}))
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE t (a INT)")).WillReturnError(boom)
	mock.ExpectRollback()

	applied, err := ApplySQLMigrations(context.Background(), db, migrationFS(), zap.NewNop())
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "0001_init.sql")
	assert.Empty(t, applied)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunMigrationsSQLite(t *testing.T) {
	db, err := Open(config.DBConfig{Driver: "sqlite", Name: ":memory:"}, zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, RunMigrations(context.Background(), db, "unused", zap.NewNop()))
	for _, m := range CatalogModels() {
		assert.True(t, db.Migrator().HasTable(m))
	}
}
