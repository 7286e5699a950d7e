// AngelaMos | 2026
// handler_test.go

package customer

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weclaim/weclaim-api/internal/middleware"
)

func newTestRouter(svc *Service, role string) http.Handler {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := middleware.WithClaims(req.Context(), &middleware.SessionClaims{UserID: 12, Role: role})
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
	NewHandler(svc).RegisterRoutes(r, nil)
	return r
}

func send(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestCreateValidation(t *testing.T) {
	svc, mock := newMockService(t)
	router := newTestRouter(svc, middleware.RoleAgent)

	tests := []struct {
		name    string
		body    string
		message string
	}{
		{
			name:    "unknown proof type",
			body:    `{"fullName":"Ram","mobile":"9876543210","proofType":"PASSPORT","proofNumber":"X1"}`,
			message: "Invalid proofType. Allowed: AADHAR, PAN",
		},
		{
			name:    "bad mobile",
			body:    `{"fullName":"Ram","mobile":"1234567890","proofType":"PAN","proofNumber":"X1"}`,
			message: "mobile must be a valid 10 digit mobile number",
		},
		{
			name:    "missing name",
			body:    `{"fullName":"  ","mobile":"9876543210","proofType":"PAN","proofNumber":"X1"}`,
			message: "fullName is required",
		},
		{
			name:    "bad email",
			body:    `{"fullName":"Ram","mobile":"9876543210","email":"nope","proofType":"PAN","proofNumber":"X1"}`,
			message: "email must be a valid email address",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := send(router, http.MethodPost, "/users/", tt.body)
			require.Equal(t, http.StatusBadRequest, w.Code)

			var body map[string]any
			require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
			assert.Equal(t, false, body["success"])
			assert.Contains(t, body["message"], tt.message)
		})
	}

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateCustomer(t *testing.T) {
	svc, mock := newMockService(t)
	router := newTestRouter(svc, middleware.RoleAgent)

	now := time.Now()
	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("Ram Kumar", "9876543210", "ram@weclaim.in", "AADHAR", "1234-5678", 12).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow(31, now, now))

	w := send(router, http.MethodPost, "/users/",
		`{"fullName":" Ram Kumar ","mobile":"9876543210","email":"Ram@WeClaim.in","proofType":"aadhar","proofNumber":"1234-5678"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var env CustomerEnvelope
	require.NoError(t, json.NewDecoder(w.Body).Decode(&env))
	assert.Equal(t, int64(31), env.User.ID)
	assert.Equal(t, "Ram Kumar", env.User.FullName)
	assert.Equal(t, ProofAadhar, env.User.ProofType)
	assert.Equal(t, int64(12), env.User.CreatedByID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteCustomerAsAgent(t *testing.T) {
	svc, mock := newMockService(t)
	router := newTestRouter(svc, middleware.RoleAgent)

	w := send(router, http.MethodDelete, "/users/5", "")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteCustomerNotFound(t *testing.T) {
	svc, mock := newMockService(t)
	router := newTestRouter(svc, middleware.RoleAdmin)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM nominees`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE FROM insurances`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE FROM users`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	w := send(router, http.MethodDelete, "/users/5", "")
	require.Equal(t, http.StatusNotFound, w.Code)

	var body map[string]any
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "User not found", body["message"])
}

func TestSearchHandler(t *testing.T) {
	svc, mock := newMockService(t)
	router := newTestRouter(svc, middleware.RoleAgent)

	w := send(router, http.MethodGet, "/users/search?q=ab", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"users":[]}`, w.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}
