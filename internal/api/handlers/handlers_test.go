// Package handlers_test provides behavior tests for the API handlers package.
package handlers_test

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dnsveil/internal/api/handlers"
	"dnsveil/internal/api/models"
	"dnsveil/internal/config"
	"dnsveil/internal/database"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig() *config.Config {
	cfg := config.Default()
	if err := cfg.Validate(); err != nil {
		panic(err)
	}
	return cfg
}

func testHandler(_ *testing.T) *handlers.Handler {
	return handlers.New(testConfig(), nil, nil)
}

func testHandlerWithDB(t *testing.T) (*handlers.Handler, *database.DB) {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return handlers.New(testConfig(), nil, db), db
}

func performRequest(r http.Handler, method, path string, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth_ReturnsOK(t *testing.T) {
	h := testHandler(t)
	router := gin.New()
	router.GET("/health", h.Health)

	w := performRequest(router, "GET", "/health", "")

	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.StatusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestStats_ReturnsRuntimeFigures(t *testing.T) {
	h := testHandler(t)
	router := gin.New()
	router.GET("/stats", h.Stats)

	w := performRequest(router, "GET", "/stats", "")

	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.ServerStatsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Positive(t, resp.GoRoutines)
	assert.Positive(t, resp.NumCPU)
	assert.NotEmpty(t, resp.Uptime)
}

func TestCapacity(t *testing.T) {
	h := testHandler(t)
	router := gin.New()
	router.GET("/capacity", h.Capacity)

	w := performRequest(router, "GET", "/capacity", "")

	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.CapacityResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "multi-record", resp.Strategy)
	assert.Equal(t, 10, resp.MaxFragments)
	assert.Equal(t, 3*(4+16+200), resp.TotalBytes)
	assert.Equal(t, 40, resp.PerTypeBytes["A"])
	assert.Equal(t, 160, resp.PerTypeBytes["AAAA"])
	assert.Equal(t, 2000, resp.PerTypeBytes["TXT"])
}

func TestEncodePreview(t *testing.T) {
	h := testHandler(t)
	router := gin.New()
	router.POST("/encode/preview", h.EncodePreview)

	payload := base64.StdEncoding.EncodeToString([]byte("preview me"))
	w := performRequest(router, "POST", "/encode/preview", `{"payload_base64":"`+payload+`"}`)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.EncodePreviewResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "multi-record", resp.Strategy)
	assert.Positive(t, resp.FragmentCount)
	assert.False(t, resp.Truncated)
	assert.Len(t, resp.Fragments, resp.FragmentCount+resp.NoiseCount)
	for _, frag := range resp.Fragments {
		assert.True(t, strings.HasSuffix(frag.Domain, "example.com"), frag.Domain)
	}
}

func TestEncodePreview_MissingPayload(t *testing.T) {
	h := testHandler(t)
	router := gin.New()
	router.POST("/encode/preview", h.EncodePreview)

	w := performRequest(router, "POST", "/encode/preview", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEncodePreview_InvalidBase64(t *testing.T) {
	h := testHandler(t)
	router := gin.New()
	router.POST("/encode/preview", h.EncodePreview)

	w := performRequest(router, "POST", "/encode/preview", `{"payload_base64":"!!!"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEncodePreview_InvalidBaseDomain(t *testing.T) {
	h := testHandler(t)
	router := gin.New()
	router.POST("/encode/preview", h.EncodePreview)

	payload := base64.StdEncoding.EncodeToString([]byte("x"))
	body := `{"payload_base64":"` + payload + `","base_domain":"bad domain!"}`
	w := performRequest(router, "POST", "/encode/preview", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEncodePreview_UnknownProfile(t *testing.T) {
	h, _ := testHandlerWithDB(t)
	router := gin.New()
	router.POST("/encode/preview", h.EncodePreview)

	payload := base64.StdEncoding.EncodeToString([]byte("x"))
	body := `{"payload_base64":"` + payload + `","profile":"ghost"}`
	w := performRequest(router, "POST", "/encode/preview", body)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEncodePreview_WithStoredProfile(t *testing.T) {
	h, db := testHandlerWithDB(t)
	require.NoError(t, db.SaveProfile(database.Profile{
		Name: "txt", Strategy: "txt-only", MaxTXTLength: 100, MaxFragments: 50,
	}))

	router := gin.New()
	router.POST("/encode/preview", h.EncodePreview)

	payload := base64.StdEncoding.EncodeToString([]byte("profile driven"))
	body := `{"payload_base64":"` + payload + `","profile":"txt"}`
	w := performRequest(router, "POST", "/encode/preview", body)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.EncodePreviewResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "txt-only", resp.Strategy)
	for _, frag := range resp.Fragments {
		assert.Equal(t, "TXT", frag.RecordType)
	}
}

func TestProfiles_RequireDatabase(t *testing.T) {
	h := testHandler(t)
	router := gin.New()
	router.GET("/profiles", h.ListProfiles)
	router.GET("/journal", h.Journal)

	assert.Equal(t, http.StatusServiceUnavailable, performRequest(router, "GET", "/profiles", "").Code)
	assert.Equal(t, http.StatusServiceUnavailable, performRequest(router, "GET", "/journal", "").Code)
}

func TestProfiles_CRUD(t *testing.T) {
	h, _ := testHandlerWithDB(t)
	router := gin.New()
	router.GET("/profiles", h.ListProfiles)
	router.POST("/profiles", h.SaveProfile)
	router.GET("/profiles/:name", h.GetProfile)
	router.DELETE("/profiles/:name", h.DeleteProfile)

	body := `{"name":"stealth","strategy":"distributed","max_txt_length":120,"max_fragments":30,"noise_ratio":0.4}`
	assert.Equal(t, http.StatusOK, performRequest(router, "POST", "/profiles", body).Code)

	w := performRequest(router, "GET", "/profiles/stealth", "")
	assert.Equal(t, http.StatusOK, w.Code)
	var profile database.Profile
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profile))
	assert.Equal(t, "distributed", profile.Strategy)
	assert.Equal(t, 0.4, profile.NoiseRatio)

	w = performRequest(router, "GET", "/profiles", "")
	assert.Equal(t, http.StatusOK, w.Code)
	var all []database.Profile
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &all))
	assert.Len(t, all, 1)

	assert.Equal(t, http.StatusOK, performRequest(router, "DELETE", "/profiles/stealth", "").Code)
	assert.Equal(t, http.StatusNotFound, performRequest(router, "GET", "/profiles/stealth", "").Code)
	assert.Equal(t, http.StatusNotFound, performRequest(router, "DELETE", "/profiles/stealth", "").Code)
}

func TestSaveProfile_Validation(t *testing.T) {
	h, _ := testHandlerWithDB(t)
	router := gin.New()
	router.POST("/profiles", h.SaveProfile)

	// Strategy is required.
	w := performRequest(router, "POST", "/profiles", `{"name":"x"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Unknown strategy.
	w = performRequest(router, "POST", "/profiles", `{"name":"x","strategy":"bogus"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// TXT budget out of range.
	w = performRequest(router, "POST", "/profiles", `{"name":"x","strategy":"txt-only","max_txt_length":999}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestJournal(t *testing.T) {
	h, db := testHandlerWithDB(t)
	require.NoError(t, db.RecordTransfer(database.TransferRecord{
		Direction: "encode", Strategy: "txt-only", PayloadBytes: 42, FragmentCount: 3,
	}))

	router := gin.New()
	router.GET("/journal", h.Journal)

	w := performRequest(router, "GET", "/journal", "")
	assert.Equal(t, http.StatusOK, w.Code)

	var records []database.TransferRecord
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &records))
	require.Len(t, records, 1)
	assert.Equal(t, 42, records[0].PayloadBytes)
}

func TestDiagnostics(t *testing.T) {
	h := testHandler(t)
	router := gin.New()
	router.GET("/diagnostics", h.Diagnostics)

	w := performRequest(router, "GET", "/diagnostics", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEqual(t, "null", strings.TrimSpace(w.Body.String()))
}
