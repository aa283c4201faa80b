package repository

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "postgres")
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		sqlxDB.Close()
	})

	return sqlxDB, mock
}

var articleRowColumns = []string{
	"id", "title", "content", "created_at", "created_by", "modified_at", "modified_by",
	"user_account.user_id", "user_account.email", "user_account.nickname", "user_account.memo",
	"user_account.created_at", "user_account.created_by", "user_account.modified_at", "user_account.modified_by",
}

func articleRow(rows *sqlmock.Rows, id int64, title, userID string) *sqlmock.Rows {
	return rows.AddRow(
		id, title, "content of "+title, testTime, userID, testTime, userID,
		userID, userID+"@mail.com", "nick-"+userID, "", testTime, userID, testTime, userID,
	)
}
