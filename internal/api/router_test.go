package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"testing"
	"vehicle_registry/internal/db"
	"vehicle_registry/internal/store"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(gormDB); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := db.Seed(store.New(gormDB)); err != nil {
		t.Fatalf("seed: %v", err)
	}
	// No Redis in tests: the cache helpers treat a nil client as a miss
	srv := httptest.NewServer(NewRouter(gormDB, nil, "test-secret", "session-secret"))
	t.Cleanup(srv.Close)
	return srv
}

func doReq(t *testing.T, method, url, token string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	return resp
}

func login(t *testing.T, srv *httptest.Server, username, password string) string {
	t.Helper()
	resp := doReq(t, http.MethodPost, srv.URL+"/login", "", map[string]string{
		"username": username,
		"password": password,
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login %s: expected 200, got %d", username, resp.StatusCode)
	}
	var out AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	return out.Token
}

func TestRoleGating(t *testing.T) {
	srv := newTestServer(t)

	// Anonymous: public pages and contact submission work
	resp := doReq(t, http.MethodGet, srv.URL+"/", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("home: expected 200, got %d", resp.StatusCode)
	}
	resp.Body.Close()
	resp = doReq(t, http.MethodPost, srv.URL+"/contact", "", map[string]string{
		"name": "Visitor", "email": "v@example.com", "subject": "Hi", "message": "Hello there",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("contact: expected 201, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// Anonymous: gated groups refuse
	for _, path := range []string{"/messages", "/admin", "/api/persons"} {
		resp = doReq(t, http.MethodGet, srv.URL+path, "", nil)
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("%s anonymous: expected 401, got %d", path, resp.StatusCode)
		}
		resp.Body.Close()
	}

	// REGISTERED: messages and API yes, admin no
	userToken := login(t, srv, "user", "user123")
	resp = doReq(t, http.MethodGet, srv.URL+"/messages", userToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("messages as user: expected 200, got %d", resp.StatusCode)
	}
	resp.Body.Close()
	resp = doReq(t, http.MethodGet, srv.URL+"/api/persons", userToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("api as user: expected 200, got %d", resp.StatusCode)
	}
	resp.Body.Close()
	resp = doReq(t, http.MethodGet, srv.URL+"/admin", userToken, nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("admin as user: expected 403, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// ADMIN: everything
	adminToken := login(t, srv, "admin", "admin123")
	resp = doReq(t, http.MethodGet, srv.URL+"/admin/users", adminToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("admin users: expected 200, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestAPINotFoundAndBadRequest(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv, "user", "user123")

	resp := doReq(t, http.MethodGet, srv.URL+"/api/persons/999999", token, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown person: expected 404, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp = doReq(t, http.MethodGet, srv.URL+"/api/vehicles/NOPE01", token, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown vehicle: expected 404, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// Validation failure reports every violated field
	resp = doReq(t, http.MethodPost, srv.URL+"/api/persons", token, map[string]any{
		"name": "", "regnumber": "AB", "height": 12,
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("invalid person: expected 400, got %d", resp.StatusCode)
	}
	var body struct {
		Fields map[string]string `json:"fields"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	resp.Body.Close()
	if len(body.Fields) != 3 {
		t.Fatalf("expected 3 violated fields, got %v", body.Fields)
	}

	// Duplicate registration code from the seed data
	resp = doReq(t, http.MethodPost, srv.URL+"/api/persons", token, map[string]any{
		"name": "Copy Cat", "regnumber": "ABC123", "height": 180,
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("duplicate code: expected 400, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestAPIOwnedVehicleDelete(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv, "user", "user123")

	// Seeded ABC123 is claimed by John Smith
	resp := doReq(t, http.MethodDelete, srv.URL+"/api/vehicles/ABC123", token, nil)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("owned delete: expected 409, got %d", resp.StatusCode)
	}
	var body struct {
		Owner string `json:"owner"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	resp.Body.Close()
	if body.Owner != "John Smith" {
		t.Fatalf("expected the error to name John Smith, got %q", body.Owner)
	}
}

func TestCSVExport(t *testing.T) {
	srv := newTestServer(t)
	adminToken := login(t, srv, "admin", "admin123")

	resp := doReq(t, http.MethodGet, srv.URL+"/admin/users/export", adminToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("export: expected 200, got %d", resp.StatusCode)
	}
	defer resp.Body.Close()
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Fatalf("expected text/csv, got %q", ct)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if lines[0] != "ID,Username,Email,Full Name,Role,Created At" {
		t.Fatalf("unexpected header: %q", lines[0])
	}
	// Seed creates two users
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d lines", len(lines))
	}
}

func TestSetRoleAdminOnly(t *testing.T) {
	srv := newTestServer(t)
	userToken := login(t, srv, "user", "user123")
	adminToken := login(t, srv, "admin", "admin123")

	// Find the non-admin user's id via the admin listing
	resp := doReq(t, http.MethodGet, srv.URL+"/admin/users", adminToken, nil)
	var listing struct {
		Users []UserAdminResponse `json:"users"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		t.Fatalf("decode: %v", err)
	}
	resp.Body.Close()
	var targetID uint
	for _, u := range listing.Users {
		if u.Username == "user" {
			targetID = u.ID
		}
	}
	if targetID == 0 {
		t.Fatal("seeded user not found in listing")
	}

	url := fmt.Sprintf("%s/admin/users/%d/role", srv.URL, targetID)
	resp = doReq(t, http.MethodPost, url, userToken, map[string]string{"role": "ADMIN"})
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("set role as user: expected 403, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp = doReq(t, http.MethodPost, url, adminToken, map[string]string{"role": "ADMIN"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("set role as admin: expected 200, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestSessionCookieAuth(t *testing.T) {
	srv := newTestServer(t)
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookie jar: %v", err)
	}
	client := &http.Client{Jar: jar}

	// Browser-style login: discard the token, keep only the Set-Cookie
	creds, _ := json.Marshal(map[string]string{"username": "user", "password": "user123"})
	resp, err := client.Post(srv.URL+"/login", "application/json", bytes.NewReader(creds))
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login: expected 200, got %d", resp.StatusCode)
	}

	// The session cookie alone must authenticate, no Authorization header
	resp, err = client.Get(srv.URL + "/messages")
	if err != nil {
		t.Fatalf("messages: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("messages with session cookie: expected 200, got %d", resp.StatusCode)
	}

	// Logout invalidates the session
	resp, err = client.Post(srv.URL+"/logout", "application/json", nil)
	if err != nil {
		t.Fatalf("logout: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("logout: expected 200, got %d", resp.StatusCode)
	}
	resp, err = client.Get(srv.URL + "/messages")
	if err != nil {
		t.Fatalf("messages after logout: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("messages after logout: expected 401, got %d", resp.StatusCode)
	}
}

func TestCacheClearAdminOnly(t *testing.T) {
	srv := newTestServer(t)
	userToken := login(t, srv, "user", "user123")
	adminToken := login(t, srv, "admin", "admin123")

	resp := doReq(t, http.MethodPost, srv.URL+"/admin/cache/clear", userToken, nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("clear as user: expected 403, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp = doReq(t, http.MethodPost, srv.URL+"/admin/cache/clear", adminToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("clear as admin: expected 200, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}
