package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/rishidar/freelance-connector/internal/catalog"
	"github.com/rishidar/freelance-connector/internal/export"
	"github.com/rishidar/freelance-connector/internal/gallery"
	"github.com/rishidar/freelance-connector/internal/http/middleware"
	"github.com/rishidar/freelance-connector/internal/service"
	"github.com/rishidar/freelance-connector/internal/sheet/sheettest"
	"github.com/rishidar/freelance-connector/internal/source"
	"github.com/rishidar/freelance-connector/internal/storage"
	"github.com/rishidar/freelance-connector/internal/store"
	"github.com/rishidar/freelance-connector/internal/ws"
)

const testAdminPassword = "Adm1nPassword"

var pngBytes = append([]byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0x00, 0x00, 0x00, 0x0D, 0x49, 0x48, 0x44, 0x52},
	bytes.Repeat([]byte{1}, 64)...)

type testEnv struct {
	engine  *gin.Engine
	dataDir string
	tokens  *service.TokenManager
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dataDir := t.TempDir()
	registry, err := catalog.Load("")
	require.NoError(t, err)

	attachmentStorage, err := storage.NewAttachmentStorage(t.TempDir(), 1)
	require.NoError(t, err)

	hash, err := bcrypt.GenerateFromPassword([]byte(testAdminPassword), bcrypt.MinCost)
	require.NoError(t, err)

	contact := export.Contact{Name: "Rishidar", Email: "contact@example.com", Phone: "+1 (123) 456-7890"}
	links := service.NewLinkBuilder("6381865341")
	tokens := service.NewTokenManager("test-secret-test-secret-test-secret", time.Hour)

	galleries := service.NewGalleryService(registry, source.NewFileFetcher(dataDir))
	freelancers := service.NewFreelancerService(service.DefaultFreelancers())
	carts := service.NewCartService(store.NewCarts(), freelancers)
	exports := service.NewExportService(freelancers, carts, contact)
	counters := service.NewCounterService(store.NewMemoryCounters(nil), service.DefaultLeadCategories())
	attachments := service.NewAttachmentService(attachmentStorage, "http://localhost:8080")
	leads := service.NewLeadService(counters, attachments, links, contact.Name)

	galleryHandler := NewGalleryHandler(galleries)
	freelancerHandler := NewFreelancerHandler(freelancers, exports)
	cartHandler := NewCartHandler(carts, exports)
	leadHandler := NewLeadHandler(leads, counters)
	attachmentHandler := NewAttachmentHandler(attachments, attachmentStorage.MaxBytes())
	contactHandler := NewContactHandler(service.NewContactService(links, contact.Name))
	counterHandler := NewCounterHandler(counters)
	authHandler := NewAuthHandler(service.NewAdminAuthService(string(hash), tokens))
	healthHandler := NewHealthHandler(nil, counters, ws.NewHub())

	r := gin.New()
	r.Use(middleware.ErrorHandler())
	r.GET("/health", healthHandler.Health)

	api := r.Group("/api")
	api.GET("/works", galleryHandler.Works)
	api.GET("/galleries/:slug", galleryHandler.Gallery)
	api.GET("/freelancers", freelancerHandler.List)
	api.GET("/freelancers/:id", freelancerHandler.Get)
	api.GET("/freelancers/:id/profile.pdf", freelancerHandler.ProfilePDF)
	api.GET("/counters", counterHandler.List)
	api.GET("/leads/categories", leadHandler.Categories)
	api.POST("/contact/message", contactHandler.Message)
	api.POST("/contact/meeting", contactHandler.Meeting)
	api.GET("/contact/join", contactHandler.Join)
	api.GET("/contact/chat", contactHandler.Chat)
	api.POST("/admin/login", authHandler.Login)
	api.PUT("/admin/counters/:key", middleware.AdminAuth(tokens), counterHandler.Update)

	session := api.Group("/", middleware.Session(false))
	session.GET("/cart", cartHandler.Get)
	session.POST("/cart", cartHandler.Add)
	session.DELETE("/cart", cartHandler.Clear)
	session.DELETE("/cart/:id", cartHandler.Remove)
	session.GET("/cart/profile.pdf", cartHandler.TeamPDF)
	session.POST("/leads", leadHandler.Create)
	session.POST("/leads/attachments", attachmentHandler.Upload)
	session.GET("/leads/attachments", attachmentHandler.List)
	session.DELETE("/leads/attachments/:id", middleware.UUIDValidator("id"), attachmentHandler.Delete)

	return &testEnv{engine: r, dataDir: dataDir, tokens: tokens}
}

func (e *testEnv) writeSheet(t *testing.T, name string, raw []byte) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(e.dataDir, name), raw, 0o644))
}

func (e *testEnv) do(method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

func sessionHeader(id uuid.UUID) map[string]string {
	return map[string]string{middleware.SessionHeader: id.String()}
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v))
}

func TestGalleryHandler_Works(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/api/works", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Items []service.WorkSummary `json:"items"`
		Total int                   `json:"total"`
	}
	decode(t, w, &resp)
	assert.Equal(t, 8, resp.Total)
	assert.Equal(t, "reels", resp.Items[0].Slug)
}

func TestGalleryHandler_Ready(t *testing.T) {
	env := newTestEnv(t)
	env.writeSheet(t, "reels.xlsx", sheettest.Workbook(t,
		[]string{"ID", "Creator", "Title", "VideoURL", "Thumbnail"},
		[]any{1, "Hari", "Reel one", "https://cdn/1.mp4", "https://cdn/1.jpg"},
		[]any{2, "Mira", "Reel two", "https://cdn/2.mp4", "https://cdn/2.jpg"},
	))

	w := env.do(http.MethodGet, "/api/galleries/reels", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var view gallery.View
	decode(t, w, &view)
	assert.Equal(t, gallery.StateReady, view.State)
	require.Len(t, view.Cards, 2)
	assert.Equal(t, "1", view.Cards[0].ID)
	assert.Equal(t, "Reel two", view.Cards[1].Title)
}

func TestGalleryHandler_RefetchesOnEveryVisit(t *testing.T) {
	env := newTestEnv(t)
	headers := []string{"ID", "Creator", "Title", "imageUrl"}
	env.writeSheet(t, "logos.xlsx", sheettest.Workbook(t, headers,
		[]any{1, "Hari", "Logo", "https://cdn/1.png"},
	))

	w := env.do(http.MethodGet, "/api/galleries/logos", nil, nil)
	var first gallery.View
	decode(t, w, &first)
	require.Len(t, first.Cards, 1)

	env.writeSheet(t, "logos.xlsx", sheettest.Workbook(t, headers,
		[]any{1, "Hari", "Logo", "https://cdn/1.png"},
		[]any{2, "Mira", "Mark", "https://cdn/2.png"},
	))

	w = env.do(http.MethodGet, "/api/galleries/logos", nil, nil)
	var second gallery.View
	decode(t, w, &second)
	assert.Len(t, second.Cards, 2)
}

func TestGalleryHandler_Empty(t *testing.T) {
	env := newTestEnv(t)
	env.writeSheet(t, "shorts.xlsx", sheettest.Workbook(t, []string{"ID", "Creator", "Title", "VideoURL"}))

	w := env.do(http.MethodGet, "/api/galleries/shorts", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var view gallery.View
	decode(t, w, &view)
	assert.Equal(t, gallery.StateEmpty, view.State)
	assert.Empty(t, view.Cards)
}

func TestGalleryHandler_FailedIsBadGateway(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/api/galleries/posters", nil, nil)
	require.Equal(t, http.StatusBadGateway, w.Code)

	var view gallery.View
	decode(t, w, &view)
	assert.Equal(t, gallery.StateFailed, view.State)
	assert.Equal(t, gallery.FailedMessage, view.Message)
	assert.True(t, view.Retry)
}

func TestGalleryHandler_UnknownCategory(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/api/galleries/murals", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFreelancerHandler(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/api/freelancers", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.do(http.MethodGet, "/api/freelancers/1", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.do(http.MethodGet, "/api/freelancers/999", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(http.MethodGet, "/api/freelancers/1/profile.pdf", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "_profile.pdf")
	assert.True(t, strings.HasPrefix(w.Body.String(), "%PDF-"))
}

func TestCartHandler_Flow(t *testing.T) {
	env := newTestEnv(t)
	session := sessionHeader(uuid.New())

	w := env.do(http.MethodGet, "/api/cart/profile.pdf", nil, session)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(http.MethodPost, "/api/cart", map[string]string{"freelancer_id": "1"}, session)
	require.Equal(t, http.StatusOK, w.Code)
	w = env.do(http.MethodPost, "/api/cart", map[string]string{"freelancer_id": "1"}, session)
	require.Equal(t, http.StatusOK, w.Code)
	w = env.do(http.MethodPost, "/api/cart", map[string]string{"freelancer_id": "2"}, session)
	require.Equal(t, http.StatusOK, w.Code)

	var view service.CartView
	decode(t, w, &view)
	assert.Equal(t, 2, view.Count)

	w = env.do(http.MethodGet, "/api/cart/profile.pdf", nil, session)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), export.TeamFilename)

	w = env.do(http.MethodDelete, "/api/cart/1", nil, session)
	decode(t, w, &view)
	assert.Equal(t, 1, view.Count)

	w = env.do(http.MethodDelete, "/api/cart", nil, session)
	decode(t, w, &view)
	assert.Equal(t, 0, view.Count)
}

func TestCartHandler_SessionsAreIsolated(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/api/cart", map[string]string{"freelancer_id": "1"}, sessionHeader(uuid.New()))
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(http.MethodGet, "/api/cart", nil, sessionHeader(uuid.New()))
	var view service.CartView
	decode(t, w, &view)
	assert.Equal(t, 0, view.Count)
}

func TestCartHandler_UnknownFreelancer(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/api/cart", map[string]string{"freelancer_id": "404"}, sessionHeader(uuid.New()))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(http.MethodPost, "/api/cart", map[string]string{}, sessionHeader(uuid.New()))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func validLead() map[string]any {
	return map[string]any{
		"category_ids": []string{"1", "3"},
		"min_budget":   5000,
		"max_budget":   20000,
		"start_date":   "2024-05-01",
		"end_date":     "2024-06-01",
		"requirements": "Need a promo video and a landing page",
	}
}

func TestLeadHandler_Create(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/api/leads", validLead(), sessionHeader(uuid.New()))
	require.Equal(t, http.StatusOK, w.Code)

	var link struct {
		Message string `json:"message"`
		URL     string `json:"url"`
	}
	decode(t, w, &link)
	assert.True(t, strings.HasPrefix(link.URL, "https://wa.me/6381865341?text="))
	assert.Contains(t, link.Message, "Video Editor\nWeb Developer")
	assert.Contains(t, link.Message, "Budget Range: ₹5000 - ₹20000")
}

func TestLeadHandler_Validation(t *testing.T) {
	env := newTestEnv(t)
	session := sessionHeader(uuid.New())

	noCategories := validLead()
	noCategories["category_ids"] = []string{}
	w := env.do(http.MethodPost, "/api/leads", noCategories, session)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	badAttachment := validLead()
	badAttachment["attachment_ids"] = []string{"not-a-uuid"}
	w = env.do(http.MethodPost, "/api/leads", badAttachment, session)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	foreign := validLead()
	foreign["attachment_ids"] = []string{uuid.NewString()}
	w = env.do(http.MethodPost, "/api/leads", foreign, session)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLeadHandler_Categories(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/api/leads/categories", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Total int `json:"total"`
	}
	decode(t, w, &resp)
	assert.Equal(t, 5, resp.Total)
}

func upload(env *testEnv, session map[string]string, name string, content []byte) *httptest.ResponseRecorder {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, _ := mw.CreateFormFile("file", name)
	_, _ = part.Write(content)
	_ = mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/leads/attachments", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	for k, v := range session {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	env.engine.ServeHTTP(w, req)
	return w
}

func TestAttachmentHandler_Flow(t *testing.T) {
	env := newTestEnv(t)
	session := sessionHeader(uuid.New())

	w := upload(env, session, "ref.png", pngBytes)
	require.Equal(t, http.StatusCreated, w.Code)

	var att struct {
		ID          string `json:"id"`
		ContentType string `json:"content_type"`
		URL         string `json:"url"`
	}
	decode(t, w, &att)
	assert.Equal(t, "image/png", att.ContentType)
	assert.True(t, strings.HasPrefix(att.URL, "http://localhost:8080/uploads/"))

	lead := validLead()
	lead["attachment_ids"] = []string{att.ID}
	w = env.do(http.MethodPost, "/api/leads", lead, session)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "attached_file=ref.png")

	w = env.do(http.MethodGet, "/api/leads/attachments", nil, session)
	assert.Contains(t, w.Body.String(), att.ID)

	w = env.do(http.MethodDelete, "/api/leads/attachments/"+att.ID, nil, sessionHeader(uuid.New()))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(http.MethodDelete, "/api/leads/attachments/"+att.ID, nil, session)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestAttachmentHandler_RejectsUnsupported(t *testing.T) {
	env := newTestEnv(t)
	session := sessionHeader(uuid.New())

	w := upload(env, session, "notes.txt", []byte("plain text is not a reference"))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = upload(env, session, "ref.jpg", pngBytes)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = upload(env, session, "big.png", append(append([]byte{}, pngBytes...), make([]byte, 1<<20+512<<10)...))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestContactHandler(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/api/contact/message", map[string]string{"message": "A brochure for my cafe"}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Project Details")

	w = env.do(http.MethodPost, "/api/contact/meeting", map[string]string{"date": "2024-05-01"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(http.MethodPost, "/api/contact/meeting", map[string]string{"date": "2024-05-01", "time": "10:30"}, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.do(http.MethodGet, "/api/contact/chat", nil, nil)
	var link struct {
		URL string `json:"url"`
	}
	decode(t, w, &link)
	assert.Equal(t, "https://wa.me/6381865341", link.URL)

	w = env.do(http.MethodGet, "/api/contact/join", nil, nil)
	assert.Contains(t, w.Body.String(), "join as a freelancer")
}

func TestAuthAndCounterHandlers(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPut, "/api/admin/counters/video_editors", map[string]int{"count": 4}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(http.MethodPost, "/api/admin/login", map[string]string{"password": "wrong-password"}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(http.MethodPost, "/api/admin/login", map[string]string{"password": testAdminPassword}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var login struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	decode(t, w, &login)
	assert.Equal(t, "Bearer", login.TokenType)

	auth := map[string]string{"Authorization": "Bearer " + login.AccessToken}

	w = env.do(http.MethodPut, "/api/admin/counters/video_editors", map[string]int{"count": -1}, auth)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(http.MethodPut, "/api/admin/counters/painters", map[string]int{"count": 1}, auth)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(http.MethodPut, "/api/admin/counters/video_editors", map[string]int{"count": 4}, auth)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(http.MethodGet, "/api/counters", nil, nil)
	var counters struct {
		Counters map[string]int `json:"counters"`
	}
	decode(t, w, &counters)
	assert.Equal(t, 4, counters.Counters["video_editors"])
	assert.Equal(t, 0, counters.Counters["hr_managers"])
}

func TestHealthHandler(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/health", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"storage":"memory"`)
}
