package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/SscSPs/access_governance_app/internal/core/services"
	"github.com/SscSPs/access_governance_app/internal/dto"
	"github.com/SscSPs/access_governance_app/internal/handlers"
	"github.com/SscSPs/access_governance_app/internal/repositories/memory"
	"github.com/SscSPs/access_governance_app/internal/seed"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type apiClient struct {
	t      *testing.T
	router *gin.Engine
}

func newSeededAPI(t *testing.T) *apiClient {
	t.Helper()
	gin.SetMode(gin.TestMode)

	fixtures, err := seed.Load()
	require.NoError(t, err)
	repos := memory.NewRepositoryProvider(memory.NewStore(fixtures), memory.NewSessionRepository(""))

	r := gin.New()
	require.NoError(t, handlers.RegisterRoutes(r, testConfig(), services.NewServiceContainer(testConfig(), repos)))
	return &apiClient{t: t, router: r}
}

func (a *apiClient) call(method, path, token string, body any) *httptest.ResponseRecorder {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func (a *apiClient) login(email, password string) string {
	a.t.Helper()
	rec := a.call(http.MethodPost, "/api/v1/session", "", dto.LoginRequest{Email: email, Password: password})
	require.Equal(a.t, http.StatusOK, rec.Code, rec.Body.String())

	var res dto.LoginResponse
	require.NoError(a.t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.NotEmpty(a.t, res.Token)
	return res.Token
}

func TestAPI_ApproveAccessRequestFlow(t *testing.T) {
	api := newSeededAPI(t)
	admin := api.login("admin@example.com", "admin123")

	rec := api.call(http.MethodGet, "/api/v1/access-requests?status=pending", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var pending dto.ListAccessRequestsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pending))
	require.NotEmpty(t, pending.Requests)

	decision := dto.DecideAccessRequest{Outcome: "approved"}
	rec = api.call(http.MethodPost, "/api/v1/access-requests/req1/decision", admin, decision)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var decided dto.AccessRequestResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decided))
	assert.Equal(t, "approved", string(decided.Status))
	assert.Equal(t, "Admin User", *decided.DecidedBy)

	rec = api.call(http.MethodPost, "/api/v1/access-requests/req1/decision", admin, decision)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = api.call(http.MethodGet, "/api/v1/employees/3", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var detail dto.EmployeeDetailResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
	var slackRole string
	for _, g := range detail.Applications {
		if g.ApplicationID == "app1" {
			slackRole = g.Role
		}
	}
	assert.Equal(t, "Admin", slackRole)

	rec = api.call(http.MethodGet, "/api/v1/audit-log?limit=1", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var page dto.ListAuditLogResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	require.Len(t, page.Entries, 1)
	assert.Equal(t, "Approved request for Admin access to Slack", page.Entries[0].Details)
	assert.NotNil(t, page.NextToken)
}

func TestAPI_RoleGates(t *testing.T) {
	api := newSeededAPI(t)
	user := api.login("user@example.com", "user123")

	assert.Equal(t, http.StatusUnauthorized, api.call(http.MethodGet, "/api/v1/me/applications", "", nil).Code)
	assert.Equal(t, http.StatusForbidden, api.call(http.MethodGet, "/api/v1/employees", user, nil).Code)
	assert.Equal(t, http.StatusOK, api.call(http.MethodGet, "/api/v1/me/applications", user, nil).Code)

	rec := api.call(http.MethodPost, "/api/v1/access-requests", user, dto.SubmitAccessRequest{ApplicationID: "app7", RequestedRole: "Viewer"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = api.call(http.MethodGet, "/api/v1/me/access-requests", user, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Salesforce")
}

func TestAPI_LogoutInvalidatesToken(t *testing.T) {
	api := newSeededAPI(t)
	token := api.login("admin@example.com", "admin123")

	assert.Equal(t, http.StatusOK, api.call(http.MethodGet, "/api/v1/session", token, nil).Code)
	assert.Equal(t, http.StatusNoContent, api.call(http.MethodDelete, "/api/v1/session", token, nil).Code)
	assert.Equal(t, http.StatusUnauthorized, api.call(http.MethodGet, "/api/v1/session", token, nil).Code)
}

func TestAPI_NavigationGate(t *testing.T) {
	api := newSeededAPI(t)

	rec := api.call(http.MethodGet, "/api/v1/navigation?target=/employees", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"loading"`)
}

func TestAPI_ComplianceCSV(t *testing.T) {
	api := newSeededAPI(t)
	admin := api.login("admin@example.com", "admin123")

	rec := api.call(http.MethodGet, "/api/v1/compliance/reports?type=access_audit&date=2025-05-14&format=csv", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, `attachment; filename="access_audit-2025-05-14.csv"`, rec.Header().Get("Content-Disposition"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "Timestamp,Action,Performed By,Target User,Target App,Details\n"))

	rec = api.call(http.MethodGet, "/api/v1/compliance/reports?type=quarterly", admin, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
