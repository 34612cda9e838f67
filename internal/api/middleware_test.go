package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"RecliqOps/internal/constants"
	"RecliqOps/internal/models"
	"RecliqOps/internal/utils"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestAuthMiddlewareRejectsMissingHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
	rec := httptest.NewRecorder()

	AuthMiddleware(okHandler).ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareRejectsMalformedHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
	req.Header.Set("X-Ops-Auth", "no-separator-here")
	rec := httptest.NewRecorder()

	AuthMiddleware(okHandler).ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareRejectsBadSignature(t *testing.T) {
	t.Setenv("OPS_AUTH_SECRET", "test-secret")
	require.NoError(t, utils.InitAuthSecret())

	req := httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
	req.Header.Set("X-Ops-Auth", "OPS001:deadbeef")
	rec := httptest.NewRecorder()

	AuthMiddleware(okHandler).ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func withStaff(req *http.Request, role string) *http.Request {
	user := models.User{ID: "OPS001", Role: role}
	return req.WithContext(context.WithValue(req.Context(), UserContextKey, user))
}

func TestRoleMiddleware(t *testing.T) {
	mw := RoleMiddleware(constants.ROLE_OPERATOR)

	// Роли ниже требуемой отклоняются.
	rec := httptest.NewRecorder()
	mw(okHandler).ServeHTTP(rec, withStaff(httptest.NewRequest(http.MethodGet, "/", nil), constants.ROLE_VIEWER))
	require.Equal(t, http.StatusForbidden, rec.Code)

	// Требуемая роль и выше проходят.
	for _, role := range []string{constants.ROLE_OPERATOR, constants.ROLE_ADMIN, constants.ROLE_OWNER} {
		rec = httptest.NewRecorder()
		mw(okHandler).ServeHTTP(rec, withStaff(httptest.NewRequest(http.MethodGet, "/", nil), role))
		require.Equal(t, http.StatusOK, rec.Code, "роль %s", role)
	}

	// Без сотрудника в контексте - отказ.
	rec = httptest.NewRecorder()
	mw(okHandler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestDecodeBodyValidation(t *testing.T) {
	newReq := func(body string) (*httptest.ResponseRecorder, *http.Request) {
		return httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	}

	var req ActionRequest
	rec, r := newReq(`{"action":"approve"}`)
	require.True(t, decodeBody(rec, r, &req))
	require.Equal(t, "approve", req.Action)

	// Действие обязательно.
	req = ActionRequest{}
	rec, r = newReq(`{"reason":"x"}`)
	require.False(t, decodeBody(rec, r, &req))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// Отрицательный вес отклоняется до доменного слоя.
	req = ActionRequest{}
	rec, r = newReq(`{"action":"adjust","newWeightKg":-3}`)
	require.False(t, decodeBody(rec, r, &req))

	// Недопустимая серьезность пометки.
	req = ActionRequest{}
	rec, r = newReq(`{"action":"flag_abuse","severity":"catastrophic"}`)
	require.False(t, decodeBody(rec, r, &req))

	// Срез событий симуляции проходит без структурных тегов.
	var events []models.RuleEvent
	rec, r = newReq(`[{"actor_type":"user","weight_kg":5}]`)
	require.True(t, decodeBody(rec, r, &events))
	require.Len(t, events, 1)

	// Битый JSON.
	req = ActionRequest{}
	rec, r = newReq(`{"action":`)
	require.False(t, decodeBody(rec, r, &req))
}
