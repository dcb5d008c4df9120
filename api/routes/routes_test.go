package routes

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/ArowuTest/bridgetunes-spin-wheel/internal/config"
	"github.com/ArowuTest/bridgetunes-spin-wheel/internal/handlers"
	"github.com/ArowuTest/bridgetunes-spin-wheel/internal/handlers/testutils"
	"github.com/ArowuTest/bridgetunes-spin-wheel/internal/models"
	"github.com/ArowuTest/bridgetunes-spin-wheel/internal/repositories/memory"
	"github.com/ArowuTest/bridgetunes-spin-wheel/internal/services"
	"github.com/ArowuTest/bridgetunes-spin-wheel/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	require.NoError(t, err)
	return setupRouterWithConfig(t, &config.Config{
		Server: config.ServerConfig{AllowedOrigins: []string{"*"}},
		JWT:    config.JWTConfig{Secret: "route-secret-0123456789", ExpiresIn: 60},
		Admin:  config.AdminConfig{Email: "admin@spin.local", PasswordHash: string(hash)},
	})
}

func setupRouterWithConfig(t *testing.T, cfg *config.Config) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	table, err := services.NewPrizeTable(models.DefaultPrizes())
	require.NoError(t, err)
	repo := memory.NewSpinRepository()
	spinService := services.NewSpinService(repo, table)

	return SetupRouter(cfg, HandlerDependencies{
		SpinHandler:  handlers.NewSpinHandler(spinService),
		AuthHandler:  handlers.NewAuthHandler(services.NewAuthService(cfg.Admin, cfg.JWT)),
		AdminHandler: handlers.NewAdminHandler(services.NewReportService(repo, table), spinService.Today),
	})
}

func TestHealth(t *testing.T) {
	router := setupTestRouter(t)

	res := testutils.PerformRequest(router, http.MethodGet, "/api/v1/health", nil, nil)
	assert.Equal(t, http.StatusOK, res.Code)
	assert.JSONEq(t, `{"status":"ok"}`, res.Body.String())
	assert.NotEmpty(t, res.Header().Get("X-Request-ID"))
}

func TestSpinThenAdminFlow(t *testing.T) {
	router := setupTestRouter(t)

	entrant := map[string]string{"name": "Ada", "email": "a@x.com", "phone": "555"}
	first := testutils.PerformRequest(router, http.MethodPost, "/api/spin", entrant, nil)
	require.Equal(t, http.StatusOK, first.Code)
	second := testutils.PerformRequest(router, http.MethodPost, "/api/spin", entrant, nil)
	assert.JSONEq(t, `{"message":"Already spun today","prize":null}`, second.Body.String())

	t.Run("admin routes require a token", func(t *testing.T) {
		res := testutils.PerformRequest(router, http.MethodGet, "/api/v1/admin/spins", nil, nil)
		assert.Equal(t, http.StatusUnauthorized, res.Code)
	})

	login := testutils.PerformRequest(router, http.MethodPost, "/api/v1/auth/login",
		models.LoginRequest{Email: "admin@spin.local", Password: "hunter2"}, nil)
	require.Equal(t, http.StatusOK, login.Code)
	var token models.LoginResponse
	require.NoError(t, json.Unmarshal(login.Body.Bytes(), &token))
	auth := map[string]string{"Authorization": "Bearer " + token.Token}

	t.Run("today's spins", func(t *testing.T) {
		res := testutils.PerformRequest(router, http.MethodGet, "/api/v1/admin/spins", nil, auth)
		require.Equal(t, http.StatusOK, res.Code)
		assert.Contains(t, res.Body.String(), `"count":1`)
		assert.Contains(t, res.Body.String(), `"email":"a@x.com"`)
	})

	t.Run("stats", func(t *testing.T) {
		res := testutils.PerformRequest(router, http.MethodGet, "/api/v1/admin/spins/stats", nil, auth)
		require.Equal(t, http.StatusOK, res.Code)
		assert.Contains(t, res.Body.String(), `"total":1`)
	})

	t.Run("export", func(t *testing.T) {
		res := testutils.PerformRequest(router, http.MethodGet, "/api/v1/admin/spins/export", nil, auth)
		require.Equal(t, http.StatusOK, res.Code)
		assert.Contains(t, res.Body.String(), "a@x.com")
	})

	t.Run("prizes", func(t *testing.T) {
		res := testutils.PerformRequest(router, http.MethodGet, "/api/v1/admin/prizes", nil, auth)
		require.Equal(t, http.StatusOK, res.Code)
		assert.Contains(t, res.Body.String(), "FREE TUNA PIZZA")
	})
}

func TestAdminRoutes_ForgedTokens(t *testing.T) {
	entrant := map[string]string{"name": "Vic", "email": "victim@x.com", "phone": "555"}

	forged := func(t *testing.T, secret string) map[string]string {
		t.Helper()
		token, err := utils.GenerateJWT("attacker", secret, time.Hour, time.Now())
		require.NoError(t, err)
		return map[string]string{"Authorization": "Bearer " + token}
	}

	t.Run("default config disables the admin API", func(t *testing.T) {
		cfg, err := config.Load(t.TempDir())
		require.NoError(t, err)
		router := setupRouterWithConfig(t, cfg)

		spin := testutils.PerformRequest(router, http.MethodPost, "/api/spin", entrant, nil)
		require.Equal(t, http.StatusOK, spin.Code)

		for _, path := range []string{"/api/v1/admin/spins", "/api/v1/admin/spins/export", "/api/v1/admin/spins/stats"} {
			res := testutils.PerformRequest(router, http.MethodGet, path, nil, forged(t, "change-me"))
			assert.Equal(t, http.StatusNotFound, res.Code, path)
			assert.NotContains(t, res.Body.String(), "victim@x.com", path)
		}
	})

	t.Run("configured admin rejects tokens signed with another secret", func(t *testing.T) {
		router := setupTestRouter(t)

		spin := testutils.PerformRequest(router, http.MethodPost, "/api/spin", entrant, nil)
		require.Equal(t, http.StatusOK, spin.Code)

		res := testutils.PerformRequest(router, http.MethodGet, "/api/v1/admin/spins", nil, forged(t, "change-me"))
		assert.Equal(t, http.StatusUnauthorized, res.Code)
		assert.NotContains(t, res.Body.String(), "victim@x.com")
	})
}
