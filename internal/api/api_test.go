package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/gorm/schema"

	"storerate/internal/auth"
	"storerate/internal/config"
	"storerate/internal/entity"
	"storerate/internal/model"
	"storerate/internal/model/sql"
	"storerate/internal/storage"
)

type testServer struct {
	router  *gin.Engine
	handler *HTTPHandler
	repo    model.Repository
	db      *gorm.DB
	cfg     *config.Config
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
		NamingStrategy: schema.NamingStrategy{SingularTable: true},
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&entity.DbUser{}, &entity.DbStore{}, &entity.DbRating{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	cfg := &config.Config{
		JWTSecret:            "test-secret",
		JWTIssuer:            "storerate",
		JWTExpirationMinutes: 60,
		SessionCookieName:    "jwt",
		StoragePublicBaseURL: "/files",
	}
	manager, err := auth.NewManager(cfg.JWTSecret, cfg.JWTIssuer, time.Hour)
	if err != nil {
		t.Fatalf("jwt manager: %v", err)
	}
	photoStore, err := storage.NewLocalStorage(t.TempDir())
	if err != nil {
		t.Fatalf("storage: %v", err)
	}

	repo := sql.NewGormRepository(db)
	handler := NewHTTPHandler(cfg, repo, photoStore, manager)
	router := gin.New()
	handler.RegisterRoutes(router)

	return &testServer{router: router, handler: handler, repo: repo, db: db, cfg: cfg}
}

func (s *testServer) createUser(t *testing.T, name, email, password, role string) *entity.DbUser {
	t.Helper()
	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := &entity.DbUser{Name: name, Email: email, PasswordHash: hash, Role: role}
	if err := s.repo.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return user
}

func (s *testServer) createStore(t *testing.T, name, ownerEmail string) *entity.DbStore {
	t.Helper()
	hash, err := auth.HashPassword("owner-password")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	owner := &entity.DbUser{Name: name + " Owner", Email: ownerEmail, PasswordHash: hash}
	store := &entity.DbStore{Name: name, Address: name + " Street"}
	if err := s.repo.CreateStoreWithOwner(context.Background(), owner, store); err != nil {
		t.Fatalf("create store %s: %v", name, err)
	}
	return store
}

func (s *testServer) sessionCookie(t *testing.T, user *entity.DbUser) *http.Cookie {
	t.Helper()
	token, _, err := s.handler.AuthManager.GenerateToken(user)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return &http.Cookie{Name: s.cfg.SessionCookieName, Value: token}
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
}

func (s *testServer) rate(t *testing.T, user *entity.DbUser, storeID uint, rating int, wantStatus int) {
	t.Helper()
	w := s.do(t, http.MethodPost, fmt.Sprintf("/api/user/stores/%d/rate", storeID),
		entity.RateStoreRequest{Rating: rating}, s.sessionCookie(t, user))
	if w.Code != wantStatus {
		t.Fatalf("rate store: status = %d, want %d, body %s", w.Code, wantStatus, w.Body.String())
	}
}
