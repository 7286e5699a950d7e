// AngelaMos | 2026
// service_test.go

package customer

import (
	"context"
	"database/sql"
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weclaim/weclaim-api/internal/core"
	"github.com/weclaim/weclaim-api/internal/middleware"
)

func newMockService(t *testing.T) (*Service, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })

	db := sqlx.NewDb(mockDB, "pgx")
	return NewService(db, NewRepository(db)), mock
}

func TestSearchShortQuerySkipsDatabase(t *testing.T) {
	svc, mock := newMockService(t)

	for _, q := range []string{"", "  ", "ab", " ab ", "ñé"} {
		matches, err := svc.Search(context.Background(), q)
		require.NoError(t, err)
		assert.NotNil(t, matches)
		assert.Empty(t, matches)
	}

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchEscapesWildcards(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectQuery(`SELECT id, full_name, mobile\s+FROM users`).
		WithArgs(`%50\%\_off%`, searchLimit).
		WillReturnRows(sqlmock.NewRows([]string{"id", "full_name", "mobile"}))

	matches, err := svc.Search(context.Background(), "  50%_off ")
	require.NoError(t, err)
	assert.Empty(t, matches)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchReturnsMatches(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectQuery(`FROM users\s+WHERE full_name ILIKE \$1 OR mobile LIKE \$1`).
		WithArgs("%ram%", 10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "full_name", "mobile"}).
			AddRow(4, "Ram Kumar", "9876543210").
			AddRow(9, "Sriram", "9123456780"))

	matches, err := svc.Search(context.Background(), "ram")
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, Match{ID: 4, FullName: "Ram Kumar", Mobile: "9876543210"}, matches[0])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteForbiddenForAgents(t *testing.T) {
	svc, mock := newMockService(t)

	err := svc.Delete(context.Background(), middleware.RoleAgent, 5)

	appErr, ok := core.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, appErr.StatusCode)
	assert.Equal(t, "Agents cannot delete users", appErr.Message)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteCascades(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM nominees\s+WHERE insurance_id IN \(SELECT id FROM insurances WHERE user_id = \$1\)`).
		WithArgs(5).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(`DELETE FROM insurances WHERE user_id = \$1`).
		WithArgs(5).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`DELETE FROM users WHERE id = \$1`).
		WithArgs(5).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, svc.Delete(context.Background(), middleware.RoleAdmin, 5))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteMissingCustomerRollsBack(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM nominees`).WithArgs(77).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE FROM insurances`).WithArgs(77).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE FROM users`).WithArgs(77).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := svc.Delete(context.Background(), middleware.RoleSuperAdmin, 77)
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetOwner(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectQuery(`FROM users\s+WHERE id = \$1`).
		WithArgs(3).
		WillReturnError(sql.ErrNoRows)

	_, err := svc.GetOwner(context.Background(), 3)
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
