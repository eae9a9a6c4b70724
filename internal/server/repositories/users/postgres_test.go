package users

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/profilekeeper/internal/common"
	"github.com/dmitrijs2005/profilekeeper/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	insertQuery = `(?s)^INSERT\s+INTO\s+users\s*\(full_name,\s*email,\s*password_hash,\s*phone\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4\)\s*RETURNING\s+id,\s*created_at\s*$`
	byIDQuery   = `(?s)^SELECT\s+id,\s*full_name,\s*email,\s*password_hash,\s*phone,\s*created_at\s+FROM\s+users\s+WHERE\s+id\s*=\s*\$1\s*$`
	byUniqQuery = `(?s)^SELECT\s+id,.*FROM\s+users\s+WHERE\s+email\s*=\s*\$1\s+OR\s+phone\s*=\s*\$2\s+LIMIT\s+1\s*$`
	deleteQuery = `^DELETE FROM users WHERE id = \$1$`
)

var userColumns = []string{"id", "full_name", "email", "password_hash", "phone", "created_at"}

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return NewPostgresRepository(db), mock, db
}

func anaUser() *models.User {
	return &models.User{FullName: "Ana", Email: "ana@x.com", PasswordHash: "hash", Phone: "555"}
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(insertQuery).
		WithArgs("Ana", "ana@x.com", "hash", "555").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(1), now))

	got, err := repo.Create(context.Background(), anaUser())
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.ID)
	assert.Equal(t, now, got.CreatedAt)
	assert.Equal(t, "Ana", got.FullName)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_UniqueViolation(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(insertQuery).
		WithArgs("Ana", "ana@x.com", "hash", "555").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	_, err := repo.Create(context.Background(), anaUser())
	require.ErrorIs(t, err, common.ErrorDuplicateKey)
	assert.Contains(t, err.Error(), "users_email_key")
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(insertQuery).
		WithArgs("Ana", "ana@x.com", "hash", "555").
		WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), anaUser())
	require.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrorDuplicateKey)
	assert.Regexp(t, regexp.MustCompile(`db error: .*db down`), err.Error())
}

func TestGetByID_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(byIDQuery).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow(int64(7), "Ana", "ana@x.com", "hash", "555", now))

	got, err := repo.GetByID(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, &models.User{ID: 7, FullName: "Ana", Email: "ana@x.com", PasswordHash: "hash", Phone: "555", CreatedAt: now}, got)
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(byIDQuery).WithArgs(int64(404)).WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 404)
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestGetByID_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(byIDQuery).WithArgs(int64(1)).WillReturnError(errors.New("db err"))

	_, err := repo.GetByID(context.Background(), 1)
	require.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrorNotFound)
	assert.Regexp(t, `db error: .*db err`, err.Error())
}

func TestFindByEmailOrPhone(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		repo, mock, db := newRepoWithMock(t)
		defer db.Close()

		mock.ExpectQuery(byUniqQuery).
			WithArgs("ana@x.com", "555").
			WillReturnRows(sqlmock.NewRows(userColumns).AddRow(int64(1), "Ana", "ana@x.com", "hash", "555", time.Now()))

		got, err := repo.FindByEmailOrPhone(context.Background(), "ana@x.com", "555")
		require.NoError(t, err)
		assert.Equal(t, int64(1), got.ID)
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock, db := newRepoWithMock(t)
		defer db.Close()

		mock.ExpectQuery(byUniqQuery).
			WithArgs("bob@x.com", "777").
			WillReturnRows(sqlmock.NewRows(userColumns))

		_, err := repo.FindByEmailOrPhone(context.Background(), "bob@x.com", "777")
		require.ErrorIs(t, err, common.ErrorNotFound)
	})
}

func TestDelete(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(m sqlmock.Sqlmock)
		wantErr error
		wantMsg string
	}{
		{
			name: "deleted",
			setup: func(m sqlmock.Sqlmock) {
				m.ExpectExec(deleteQuery).WithArgs(int64(1)).WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "missing",
			setup: func(m sqlmock.Sqlmock) {
				m.ExpectExec(deleteQuery).WithArgs(int64(1)).WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantErr: common.ErrorNotFound,
		},
		{
			name: "db error",
			setup: func(m sqlmock.Sqlmock) {
				m.ExpectExec(deleteQuery).WithArgs(int64(1)).WillReturnError(errors.New("db down"))
			},
			wantMsg: "db error: db down",
		},
		{
			name: "rows affected error",
			setup: func(m sqlmock.Sqlmock) {
				m.ExpectExec(deleteQuery).WithArgs(int64(1)).WillReturnResult(sqlmock.NewErrorResult(errors.New("rows-err")))
			},
			wantMsg: "rows affected error: rows-err",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, db := newRepoWithMock(t)
			defer db.Close()
			tt.setup(mock)

			err := repo.Delete(context.Background(), 1)
			switch {
			case tt.wantErr != nil:
				require.ErrorIs(t, err, tt.wantErr)
			case tt.wantMsg != "":
				require.EqualError(t, err, tt.wantMsg)
			default:
				require.NoError(t, err)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
