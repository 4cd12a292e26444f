package router

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rishidar/freelance-connector/internal/catalog"
	"github.com/rishidar/freelance-connector/internal/config"
	"github.com/rishidar/freelance-connector/internal/export"
	"github.com/rishidar/freelance-connector/internal/http/handlers"
	"github.com/rishidar/freelance-connector/internal/http/middleware"
	"github.com/rishidar/freelance-connector/internal/service"
	"github.com/rishidar/freelance-connector/internal/source"
	"github.com/rishidar/freelance-connector/internal/storage"
	"github.com/rishidar/freelance-connector/internal/store"
	"github.com/rishidar/freelance-connector/internal/ws"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Env:               "test",
		UploadStoragePath: t.TempDir(),
		AllowedOrigins:    []string{"http://localhost:5173"},
		RateLimitLimit:    100,
		RateLimitPeriod:   time.Minute,
	}

	registry, err := catalog.Load("")
	require.NoError(t, err)
	attachmentStorage, err := storage.NewAttachmentStorage(cfg.UploadStoragePath, 1)
	require.NoError(t, err)

	links := service.NewLinkBuilder("6381865341")
	tokens := service.NewTokenManager("router-test-secret-router-test-secret", time.Hour)
	hub := ws.NewHub()

	galleries := service.NewGalleryService(registry, source.NewFileFetcher(t.TempDir()))
	freelancers := service.NewFreelancerService(service.DefaultFreelancers())
	carts := service.NewCartService(store.NewCarts(), freelancers)
	exports := service.NewExportService(freelancers, carts, export.Contact{Name: "Rishidar"})
	counters := service.NewCounterService(store.NewMemoryCounters(nil), service.DefaultLeadCategories())
	attachments := service.NewAttachmentService(attachmentStorage, "http://localhost:8080")

	return SetupRouter(cfg, Handlers{
		Gallery:      handlers.NewGalleryHandler(galleries),
		Live:         handlers.NewWSHandler(galleries, hub, middleware.OriginAllowed(cfg.AllowedOrigins)),
		Freelancer:   handlers.NewFreelancerHandler(freelancers, exports),
		Cart:         handlers.NewCartHandler(carts, exports),
		Lead:         handlers.NewLeadHandler(service.NewLeadService(counters, attachments, links, "Rishidar"), counters),
		Attachment:   handlers.NewAttachmentHandler(attachments, attachmentStorage.MaxBytes()),
		Contact:      handlers.NewContactHandler(service.NewContactService(links, "Rishidar")),
		Counter:      handlers.NewCounterHandler(counters),
		Auth:         handlers.NewAuthHandler(service.NewAdminAuthService("", tokens)),
		Health:       handlers.NewHealthHandler(nil, counters, hub),
		TokenManager: tokens,
	})
}

func serve(r *gin.Engine, method, path string, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSetupRouter_PublicRoutes(t *testing.T) {
	r := newTestRouter(t)

	for _, path := range []string{"/health", "/api/works", "/api/freelancers", "/api/counters", "/api/leads/categories", "/api/contact/chat"} {
		w := serve(r, http.MethodGet, path, "")
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}

func TestSetupRouter_SessionIssuedForCart(t *testing.T) {
	r := newTestRouter(t)

	w := serve(r, http.MethodGet, "/api/cart", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(middleware.SessionHeader))
	assert.Contains(t, w.Header().Get("Set-Cookie"), middleware.SessionCookie+"=")
}

func TestSetupRouter_AdminRoutesRequireToken(t *testing.T) {
	r := newTestRouter(t)

	w := serve(r, http.MethodPut, "/api/admin/counters/video_editors", `{"count":3}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Без хэша пароля вход всегда отклоняется.
	w = serve(r, http.MethodPost, "/api/admin/login", `{"password":"Adm1nPassword"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSetupRouter_LiveGalleryUnknownSlug(t *testing.T) {
	r := newTestRouter(t)

	w := serve(r, http.MethodGet, "/api/live/galleries/murals", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSetupRouter_CORSPreflight(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/leads", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestSetupRouter_UploadsNotListed(t *testing.T) {
	r := newTestRouter(t)
	session := uuid.NewString()

	png := append([]byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0x00, 0x00, 0x00, 0x0D, 0x49, 0x48, 0x44, 0x52}, bytes.Repeat([]byte{1}, 32)...)
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "ref.png")
	require.NoError(t, err)
	_, _ = part.Write(png)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/leads/attachments", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set(middleware.SessionHeader, session)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var att struct {
		URL string `json:"url"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &att))
	assert.NotContains(t, att.URL, session)

	u, err := url.Parse(att.URL)
	require.NoError(t, err)
	w = serve(r, http.MethodGet, u.Path, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, png, w.Body.Bytes())

	dir := u.Path[:strings.LastIndex(u.Path, "/")+1]
	for _, path := range []string{"/uploads/", dir} {
		w = serve(r, http.MethodGet, path, "")
		assert.NotEqual(t, http.StatusOK, w.Code, path)
		assert.NotContains(t, w.Body.String(), session, path)
		assert.NotContains(t, w.Body.String(), "ref.png", path)
		assert.NotContains(t, w.Body.String(), "<a href", path)
	}
}
