package api_test

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/99minutos/marketplace-roles/internal/api"
	"github.com/99minutos/marketplace-roles/internal/core/service"
	"github.com/99minutos/marketplace-roles/internal/infrastructure/directory"
)

func newTestRouter(t *testing.T, signingSecret string) *echo.Echo {
	t.Helper()
	tokens := service.NewTokenService(directory.Default(), signingSecret)
	return api.NewRouter(api.Deps{
		Tokens:   tokens,
		Log:      zerolog.Nop(),
		Registry: prometheus.NewRegistry(),
	})
}

func do(e *echo.Echo, method, path, body, token string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func login(t *testing.T, e *echo.Echo, username, password string) string {
	t.Helper()
	rec := do(e, http.MethodPost, "/", `{"username":"`+username+`","password":"`+password+`"}`, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func forge(claims string) string {
	enc := base64.RawURLEncoding.EncodeToString
	return enc([]byte(`{"alg":"none","typ":"JWT"}`)) + "." + enc([]byte(claims)) + "."
}

func TestRouter_BuyerScenario(t *testing.T) {
	e := newTestRouter(t, "")
	token := login(t, e, "buyer1", "buyerpass")

	rec := do(e, http.MethodGet, "/buyer/data", "", token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"buyer-only data"}`, rec.Body.String())

	rec = do(e, http.MethodGet, "/seller/data", "", token)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"error":"role mismatch"}`, rec.Body.String())

	rec = do(e, http.MethodGet, "/public/data", "", token)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_SellerScenario(t *testing.T) {
	e := newTestRouter(t, "")
	token := login(t, e, "seller1", "sellerpass")

	assert.Equal(t, http.StatusOK, do(e, http.MethodGet, "/seller/data", "", token).Code)
	assert.Equal(t, http.StatusForbidden, do(e, http.MethodGet, "/buyer/data", "", token).Code)
}

func TestRouter_WrongPassword(t *testing.T) {
	e := newTestRouter(t, "")

	rec := do(e, http.MethodPost, "/", `{"username":"seller1","password":"wrongpass"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"invalid credentials"}`, rec.Body.String())
}

func TestRouter_PublicDataAcceptsAnyWellFormedToken(t *testing.T) {
	e := newTestRouter(t, "")

	for _, claims := range []string{
		`{"sub":"x","role":"seller"}`,
		`{"sub":"y","role":"buyer"}`,
		`{"sub":"z","role":"auditor"}`,
	} {
		rec := do(e, http.MethodGet, "/public/data", "", forge(claims))
		assert.Equal(t, http.StatusOK, rec.Code, claims)
		assert.JSONEq(t, `{"message":"data accessible to both roles"}`, rec.Body.String())
	}
}

// Without a signing secret the role gate trusts a hand-crafted claim set.
func TestRouter_ForgedRoleIsTrustedWhenUnsigned(t *testing.T) {
	e := newTestRouter(t, "")

	rec := do(e, http.MethodGet, "/seller/data", "", forge(`{"sub":"x","role":"seller"}`))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_HeaderAlgIsIgnoredWhenUnsigned(t *testing.T) {
	e := newTestRouter(t, "")
	enc := base64.RawURLEncoding.EncodeToString
	payload := enc([]byte(`{"sub":"x","role":"buyer"}`))

	for _, header := range []string{`{}`, `{"typ":"JWT"}`, `{"alg":"foo"}`} {
		rec := do(e, http.MethodGet, "/buyer/data", "", enc([]byte(header))+"."+payload+".")
		assert.Equal(t, http.StatusOK, rec.Code, header)
		assert.JSONEq(t, `{"message":"buyer-only data"}`, rec.Body.String())
	}
}

func TestRouter_ForgedRoleIsRejectedWhenSigned(t *testing.T) {
	e := newTestRouter(t, "secret")

	rec := do(e, http.MethodGet, "/seller/data", "", forge(`{"sub":"x","role":"seller"}`))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"error":"invalid token"}`, rec.Body.String())

	token := login(t, e, "seller1", "sellerpass")
	assert.Equal(t, http.StatusOK, do(e, http.MethodGet, "/seller/data", "", token).Code)
}

func TestRouter_MalformedOrMissingToken(t *testing.T) {
	e := newTestRouter(t, "")

	for _, path := range []string{"/public/data", "/buyer/data", "/seller/data"} {
		rec := do(e, http.MethodGet, path, "", "not.a.token")
		assert.Equal(t, http.StatusForbidden, rec.Code, path)
		assert.JSONEq(t, `{"error":"invalid token"}`, rec.Body.String())

		rec = do(e, http.MethodGet, path, "", "")
		assert.Equal(t, http.StatusForbidden, rec.Code, path)
		assert.JSONEq(t, `{"error":"not authenticated"}`, rec.Body.String())
	}
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	e := newTestRouter(t, "")

	rec := do(e, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = do(e, http.MethodGet, "/metrics", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "marketplace_requests_total")
}
