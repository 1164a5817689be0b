package migration

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureMigrated(t *testing.T) {
	ctx := context.Background()
	sentinel := `SELECT to_regclass\('public.process_logs'\) IS NOT NULL`

	t.Run("skips when table exists", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		var buf bytes.Buffer
		mock.ExpectQuery(sentinel).WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		require.NoError(t, EnsureMigrated(ctx, db, zerolog.New(&buf), "db"))
		assert.Contains(t, buf.String(), "db_migration_skip")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("applies every step", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		var buf bytes.Buffer
		mock.ExpectQuery(sentinel).WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectExec("CREATE TABLE IF NOT EXISTS process_logs").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("CREATE INDEX IF NOT EXISTS idx_process_logs_processed_at").WillReturnResult(sqlmock.NewResult(0, 0))

		require.NoError(t, EnsureMigrated(ctx, db, zerolog.New(&buf), "db"))
		assert.Contains(t, buf.String(), "db_migration_success")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("step failure stops migration", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(sentinel).WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectExec("CREATE TABLE").WillReturnError(errors.New("permission denied"))

		err = EnsureMigrated(ctx, db, zerolog.Nop(), "db")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "create_table_process_logs")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("sentinel failure", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(sentinel).WillReturnError(errors.New("conn refused"))

		err = EnsureMigrated(ctx, db, zerolog.Nop(), "db")
		assert.ErrorContains(t, err, "sentinel")
	})
}
