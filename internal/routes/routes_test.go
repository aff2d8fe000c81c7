package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ahmetcoskunkizilkaya/bhasbi-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/bhasbi-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/bhasbi-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/bhasbi-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/bhasbi-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/bhasbi-backend/internal/storage"
	"github.com/ahmetcoskunkizilkaya/bhasbi-backend/internal/testutil"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testServer struct {
	app   *fiber.App
	db    *gorm.DB
	users *services.UserService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	cfg := testutil.Config(t)
	db := testutil.SetupDB(t)

	uploader, err := storage.NewDiskUploader(cfg.UploadDir, cfg.PublicBaseURL)
	require.NoError(t, err)

	users := services.NewUserService(db)
	reports := services.NewReportService(db, services.ReportWorkflow{Override: cfg.ReportStatusOverride})

	app := NewApp(cfg, prometheus.NewRegistry())
	Setup(app, cfg, Handlers{
		Auth:    handlers.NewAuthHandler(services.NewAuthService(users, cfg), users),
		User:    handlers.NewUserHandler(users, uploader),
		Fish:    handlers.NewFishHandler(services.NewFishService(db), uploader),
		Article: handlers.NewArticleHandler(services.NewArticleService(db), uploader),
		Report:  handlers.NewReportHandler(reports, uploader),
		Admin:   handlers.NewAdminHandler(services.NewAdminService(db, reports)),
		Health:  handlers.NewHealthHandler(db),
	}, users)

	return &testServer{app: app, db: db, users: users}
}

type response struct {
	status int
	body   []byte
}

func (r response) decode(t *testing.T, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(r.body, out), string(r.body))
}

func (s *testServer) do(t *testing.T, req *http.Request, token string) response {
	t.Helper()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return response{status: resp.StatusCode, body: body}
}

func (s *testServer) json(t *testing.T, method, path, token string, payload interface{}) response {
	t.Helper()
	var body io.Reader
	if payload != nil {
		switch p := payload.(type) {
		case string:
			body = strings.NewReader(p)
		default:
			b, err := json.Marshal(p)
			require.NoError(t, err)
			body = bytes.NewReader(b)
		}
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	return s.do(t, req, token)
}

func (s *testServer) login(t *testing.T, email, password string) string {
	t.Helper()
	resp := s.json(t, "POST", "/api/auth/login", "", map[string]string{"email": email, "password": password})
	require.Equal(t, fiber.StatusOK, resp.status, string(resp.body))
	var auth dto.AuthResponse
	resp.decode(t, &auth)
	require.Equal(t, "Bearer", auth.TokenType)
	return auth.AccessToken
}

func (s *testServer) createAdmin(t *testing.T) string {
	t.Helper()
	_, err := s.users.Create(context.Background(), &dto.CreateUserRequest{
		Email: "admin@bhasbi.com", Password: "admin-pass", Name: "Admin", Role: models.RoleAdmin,
	})
	require.NoError(t, err)
	return s.login(t, "admin@bhasbi.com", "admin-pass")
}

func TestReportTriageFlow(t *testing.T) {
	s := newTestServer(t)

	resp := s.json(t, "POST", "/api/auth/register", "", map[string]string{"email": "a@b.com", "password": "pw123456", "name": "Ayu"})
	require.Equal(t, fiber.StatusCreated, resp.status, string(resp.body))
	require.NotContains(t, string(resp.body), "password")

	resp = s.json(t, "POST", "/api/auth/register", "", map[string]string{"email": "A@B.com ", "password": "other-pw"})
	require.Equal(t, fiber.StatusConflict, resp.status)

	userToken := s.login(t, "a@b.com", "pw123456")
	adminToken := s.createAdmin(t)

	resp = s.json(t, "POST", "/api/reports", userToken, `{
		"description": "Lionfish under the jetty",
		"photoUrl": "https://img.example.com/r1.jpg",
		"latitude": -8.7,
		"longitude": "115.2",
		"status": "APPROVED"
	}`)
	require.Equal(t, fiber.StatusCreated, resp.status, string(resp.body))
	var r1 models.Report
	resp.decode(t, &r1)
	require.Equal(t, models.StatusPending, r1.Status)

	resp = s.json(t, "GET", "/api/reports/"+r1.ID.String(), "", nil)
	require.Equal(t, fiber.StatusNotFound, resp.status)

	resp = s.json(t, "PUT", "/api/admin/reports/"+r1.ID.String()+"/status", userToken, map[string]string{"status": "APPROVED"})
	require.Equal(t, fiber.StatusForbidden, resp.status)

	resp = s.json(t, "PUT", "/api/admin/reports/"+r1.ID.String()+"/status", adminToken, map[string]string{"status": "APPROVED", "adminNote": "verified"})
	require.Equal(t, fiber.StatusOK, resp.status, string(resp.body))
	var approved models.Report
	resp.decode(t, &approved)
	require.Equal(t, models.StatusApproved, approved.Status)
	require.Equal(t, "verified", approved.AdminNote)

	resp = s.json(t, "GET", "/api/reports/approved", "", nil)
	require.Equal(t, fiber.StatusOK, resp.status)
	var feed []dto.PublicReport
	resp.decode(t, &feed)
	require.Len(t, feed, 1)
	require.Equal(t, r1.ID, feed[0].ID)
	require.Equal(t, "Ayu", feed[0].User.Name)
	require.NotContains(t, string(resp.body), "a@b.com")

	resp = s.json(t, "GET", "/api/reports/"+r1.ID.String(), "", nil)
	require.Equal(t, fiber.StatusOK, resp.status)
	require.NotContains(t, string(resp.body), "a@b.com")

	resp = s.json(t, "GET", "/api/reports?status=PENDING", adminToken, nil)
	require.Equal(t, fiber.StatusOK, resp.status)
	var pending dto.ReportListResponse
	resp.decode(t, &pending)
	require.Zero(t, pending.Total)

	resp = s.json(t, "PUT", "/api/reports/"+r1.ID.String(), adminToken, map[string]string{"status": "PENDING"})
	require.Equal(t, fiber.StatusBadRequest, resp.status)
	var errResp dto.ErrorResponse
	resp.decode(t, &errResp)
	require.True(t, errResp.Error)
	require.Contains(t, errResp.Message, "APPROVED to PENDING")

	resp = s.json(t, "GET", "/api/admin/stats", adminToken, nil)
	require.Equal(t, fiber.StatusOK, resp.status)
	var stats dto.DashboardStats
	resp.decode(t, &stats)
	require.Equal(t, dto.DashboardStats{CountUser: 1, CountReportApproved: 1}, stats)

	resp = s.json(t, "GET", "/api/reports/me", userToken, nil)
	require.Equal(t, fiber.StatusOK, resp.status)
	var mine []models.Report
	resp.decode(t, &mine)
	require.Len(t, mine, 1)
}

func TestAuthAndRoleGates(t *testing.T) {
	s := newTestServer(t)
	adminToken := s.createAdmin(t)

	resp := s.json(t, "POST", "/api/auth/login", "", map[string]string{"email": "admin@bhasbi.com", "password": "wrong"})
	require.Equal(t, fiber.StatusUnauthorized, resp.status)
	wrongPw := string(resp.body)
	resp = s.json(t, "POST", "/api/auth/login", "", map[string]string{"email": "nobody@bhasbi.com", "password": "wrong"})
	require.Equal(t, fiber.StatusUnauthorized, resp.status)
	require.Equal(t, wrongPw, string(resp.body))

	resp = s.json(t, "GET", "/api/users", "", nil)
	require.Equal(t, fiber.StatusUnauthorized, resp.status)

	resp = s.json(t, "POST", "/api/users", adminToken, map[string]string{"email": "u@b.com", "password": "pw123456", "name": "U"})
	require.Equal(t, fiber.StatusCreated, resp.status, string(resp.body))
	var u models.User
	resp.decode(t, &u)
	userToken := s.login(t, "u@b.com", "pw123456")

	resp = s.json(t, "GET", "/api/users", userToken, nil)
	require.Equal(t, fiber.StatusForbidden, resp.status)

	resp = s.json(t, "GET", "/api/auth/me", userToken, nil)
	require.Equal(t, fiber.StatusOK, resp.status)
	require.Contains(t, string(resp.body), "u@b.com")

	resp = s.json(t, "PUT", "/api/users/"+u.ID.String(), userToken, map[string]string{"role": "ADMIN"})
	require.Equal(t, fiber.StatusForbidden, resp.status)

	resp = s.json(t, "PUT", "/api/users/"+u.ID.String(), userToken, map[string]string{"name": "Renamed"})
	require.Equal(t, fiber.StatusOK, resp.status, string(resp.body))
	require.Contains(t, string(resp.body), "Renamed")

	resp = s.json(t, "GET", "/api/users/not-a-uuid", adminToken, nil)
	require.Equal(t, fiber.StatusBadRequest, resp.status)

	resp = s.json(t, "DELETE", "/api/users/"+u.ID.String(), adminToken, nil)
	require.Equal(t, fiber.StatusOK, resp.status)

	// The token outlives the account but no longer authenticates.
	resp = s.json(t, "GET", "/api/auth/me", userToken, nil)
	require.Equal(t, fiber.StatusUnauthorized, resp.status)

	resp = s.json(t, "POST", "/api/reports", userToken, map[string]interface{}{
		"description": "Orphan", "photoUrl": "https://img.example.com/o.jpg", "latitude": 1, "longitude": 1,
	})
	require.Equal(t, fiber.StatusUnauthorized, resp.status)
	var reports int64
	require.NoError(t, s.db.Model(&models.Report{}).Count(&reports).Error)
	require.Zero(t, reports)
}

func TestStoredRoleOverridesTokenClaim(t *testing.T) {
	s := newTestServer(t)
	adminToken := s.createAdmin(t)

	resp := s.json(t, "POST", "/api/users", adminToken, map[string]string{"email": "u@b.com", "password": "pw123456", "name": "U"})
	require.Equal(t, fiber.StatusCreated, resp.status, string(resp.body))
	var u models.User
	resp.decode(t, &u)

	var admin models.User
	require.NoError(t, s.db.First(&admin, "email = ?", "admin@bhasbi.com").Error)
	require.NoError(t, s.db.Model(&admin).Update("role", models.RoleUser).Error)

	// adminToken still carries role=ADMIN.
	resp = s.json(t, "GET", "/api/admin/stats", adminToken, nil)
	require.Equal(t, fiber.StatusForbidden, resp.status)

	resp = s.json(t, "PUT", "/api/users/"+admin.ID.String(), adminToken, map[string]string{"role": "ADMIN"})
	require.Equal(t, fiber.StatusForbidden, resp.status)

	resp = s.json(t, "GET", "/api/users/"+u.ID.String(), adminToken, nil)
	require.Equal(t, fiber.StatusForbidden, resp.status)

	resp = s.json(t, "PUT", "/api/users/"+u.ID.String(), adminToken, map[string]string{"name": "Hijacked"})
	require.Equal(t, fiber.StatusForbidden, resp.status)

	role, err := s.users.Role(context.Background(), admin.ID)
	require.NoError(t, err)
	require.Equal(t, models.RoleUser, role)

	// Promotion works the other way too: the stored role wins.
	userToken := s.login(t, "u@b.com", "pw123456")
	require.NoError(t, s.db.Model(&u).Update("role", models.RoleAdmin).Error)
	resp = s.json(t, "GET", "/api/admin/stats", userToken, nil)
	require.Equal(t, fiber.StatusOK, resp.status)
}

func (s *testServer) register(t *testing.T, email, name string) string {
	t.Helper()
	resp := s.json(t, "POST", "/api/auth/register", "", map[string]string{"email": email, "password": "pw123456", "name": name})
	require.Equal(t, fiber.StatusCreated, resp.status, string(resp.body))
	return s.login(t, email, "pw123456")
}

func TestReportPhotoUploadAndDelete(t *testing.T) {
	s := newTestServer(t)
	adminToken := s.createAdmin(t)
	ownerToken := s.register(t, "owner@b.com", "Owner")
	otherToken := s.register(t, "other@b.com", "Other")

	png := append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 32)...)
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	require.NoError(t, w.WriteField("description", "Stonefish in the shallows"))
	require.NoError(t, w.WriteField("latitude", "-8.65"))
	require.NoError(t, w.WriteField("longitude", "115.21"))
	require.NoError(t, w.WriteField("photoUrl", "https://ignored.example.com/x.jpg"))
	part, err := w.CreateFormFile("photo", "stonefish.png")
	require.NoError(t, err)
	_, err = part.Write(png)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/api/reports", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	resp := s.do(t, req, ownerToken)
	require.Equal(t, fiber.StatusCreated, resp.status, string(resp.body))
	var uploaded models.Report
	resp.decode(t, &uploaded)
	require.True(t, strings.HasPrefix(uploaded.PhotoURL, "http://localhost:3000/uploads/reports/"), uploaded.PhotoURL)
	require.InDelta(t, -8.65, uploaded.Latitude, 1e-9)
	require.InDelta(t, 115.21, uploaded.Longitude, 1e-9)
	require.Equal(t, models.StatusPending, uploaded.Status)

	static := s.do(t, httptest.NewRequest("GET", strings.TrimPrefix(uploaded.PhotoURL, "http://localhost:3000"), nil), "")
	require.Equal(t, fiber.StatusOK, static.status)
	require.Equal(t, png, static.body)

	resp = s.json(t, "POST", "/api/reports", ownerToken, map[string]interface{}{
		"description": "Second sighting", "photoUrl": "https://img.example.com/r2.jpg", "latitude": "-8.7", "longitude": 115.3,
	})
	require.Equal(t, fiber.StatusCreated, resp.status, string(resp.body))
	var second models.Report
	resp.decode(t, &second)

	path := "/api/reports/" + uploaded.ID.String()
	resp = s.json(t, "DELETE", path, otherToken, nil)
	require.Equal(t, fiber.StatusForbidden, resp.status)
	var errResp dto.ErrorResponse
	resp.decode(t, &errResp)
	require.Equal(t, "you can only delete your own reports", errResp.Message)

	resp = s.json(t, "DELETE", path, ownerToken, nil)
	require.Equal(t, fiber.StatusOK, resp.status, string(resp.body))
	resp = s.json(t, "GET", path, ownerToken, nil)
	require.Equal(t, fiber.StatusNotFound, resp.status)
	resp = s.json(t, "DELETE", path, ownerToken, nil)
	require.Equal(t, fiber.StatusNotFound, resp.status)

	resp = s.json(t, "DELETE", "/api/reports/"+second.ID.String(), adminToken, nil)
	require.Equal(t, fiber.StatusOK, resp.status, string(resp.body))

	resp = s.json(t, "GET", "/api/reports/me", ownerToken, nil)
	require.Equal(t, fiber.StatusOK, resp.status)
	var mine []models.Report
	resp.decode(t, &mine)
	require.Empty(t, mine)
}

func TestCatalogAndUploads(t *testing.T) {
	s := newTestServer(t)
	adminToken := s.createAdmin(t)

	png := append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 32)...)
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	require.NoError(t, w.WriteField("name", "Lionfish"))
	require.NoError(t, w.WriteField("scientificName", "Pterois volitans"))
	require.NoError(t, w.WriteField("description", "Venomous dorsal spines"))
	require.NoError(t, w.WriteField("dangerLevel", "HIGH"))
	part, err := w.CreateFormFile("image", "lionfish.png")
	require.NoError(t, err)
	_, err = part.Write(png)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/api/fish", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	resp := s.do(t, req, adminToken)
	require.Equal(t, fiber.StatusCreated, resp.status, string(resp.body))
	var fish models.FishReference
	resp.decode(t, &fish)
	require.True(t, strings.HasPrefix(fish.ImageURL, "http://localhost:3000/uploads/fish/"), fish.ImageURL)

	static := s.do(t, httptest.NewRequest("GET", strings.TrimPrefix(fish.ImageURL, "http://localhost:3000"), nil), "")
	require.Equal(t, fiber.StatusOK, static.status)
	require.Equal(t, png, static.body)

	resp = s.json(t, "GET", "/api/fish", "", nil)
	require.Equal(t, fiber.StatusOK, resp.status)
	require.Contains(t, string(resp.body), "Pterois volitans")

	resp = s.json(t, "GET", "/api/fish/not-a-uuid", "", nil)
	require.Equal(t, fiber.StatusNotFound, resp.status)

	resp = s.json(t, "POST", "/api/articles", adminToken, map[string]string{
		"title": "Treating stings", "content": "Hot water.", "thumbnailUrl": "https://img.example.com/t.jpg",
	})
	require.Equal(t, fiber.StatusCreated, resp.status, string(resp.body))

	resp = s.json(t, "GET", "/api/articles", "", nil)
	require.Equal(t, fiber.StatusOK, resp.status)
	require.Contains(t, string(resp.body), "Treating stings")

	resp = s.json(t, "GET", "/metrics", "", nil)
	require.Equal(t, fiber.StatusOK, resp.status)
	require.Contains(t, string(resp.body), `path="/api/fish/:id"`)
}

func TestInternalErrorsAreHidden(t *testing.T) {
	s := newTestServer(t)
	resp := s.json(t, "GET", "/api/health", "", nil)
	require.Equal(t, fiber.StatusOK, resp.status)

	require.NoError(t, database.Close(s.db))

	resp = s.json(t, "GET", "/api/fish", "", nil)
	require.Equal(t, fiber.StatusInternalServerError, resp.status)
	var errResp dto.ErrorResponse
	resp.decode(t, &errResp)
	require.Equal(t, "Internal server error", errResp.Message)
	require.NotContains(t, string(resp.body), "sql")

	resp = s.json(t, "GET", "/api/health", "", nil)
	require.Equal(t, fiber.StatusServiceUnavailable, resp.status)
}
