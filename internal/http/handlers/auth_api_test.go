package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func extractCookie(resp *http.Response, name string) string {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}

func TestRegisterLoginMeLogout(t *testing.T) {
	app, _ := newTestApp(t, nil)

	// Register
	body := strings.NewReader(`{"username":"fresh","email":"fresh@example.test","password":"S3cure!pass","firstName":"F","lastName":"L"}`)
	req := httptest.NewRequest("POST", "/api/users/register", body)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register status %d", resp.StatusCode)
	}
	var created struct {
		ID           string `json:"id"`
		Role         string `json:"role"`
		PasswordHash string `json:"passwordHash"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatal(err)
	}
	if created.Role != "USER" || created.PasswordHash != "" {
		t.Fatalf("register response leaks or miscasts fields: %+v", created)
	}

	// Login sets the sid cookie
	body = strings.NewReader(`{"email":"fresh@example.test","password":"S3cure!pass"}`)
	req = httptest.NewRequest("POST", "/api/users/login", body)
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login status %d", resp.StatusCode)
	}
	sid := extractCookie(resp, "sid")
	if sid == "" {
		t.Fatal("login did not set a session cookie")
	}

	// Me resolves the session
	resp, err = app.Test(withSession(httptest.NewRequest("GET", "/api/users/me", nil), sid))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("me status %d", resp.StatusCode)
	}
	var me struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&me); err != nil {
		t.Fatal(err)
	}
	if me.ID != created.ID {
		t.Fatalf("me resolves wrong user: %q vs %q", me.ID, created.ID)
	}

	// Logout invalidates it
	resp, err = app.Test(withSession(httptest.NewRequest("POST", "/api/users/logout", nil), sid))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("logout status %d", resp.StatusCode)
	}
	resp, err = app.Test(withSession(httptest.NewRequest("GET", "/api/users/me", nil), sid))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("want 401 after logout, got %d", resp.StatusCode)
	}
}

func TestRegisterValidation(t *testing.T) {
	app, _ := newTestApp(t, nil)

	cases := []struct {
		name string
		body string
	}{
		{"bad email", `{"username":"okname","email":"not-an-email","password":"S3cure!pass"}`},
		{"short username", `{"username":"ab","email":"a@example.test","password":"S3cure!pass"}`},
		{"weak password", `{"username":"okname","email":"a@example.test","password":"weakpass"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/api/users/register", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			resp, err := app.Test(req)
			if err != nil {
				t.Fatal(err)
			}
			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("want 400, got %d", resp.StatusCode)
			}
		})
	}
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	app, _ := newTestApp(t, nil)

	body := `{"username":"another","email":"admin@resortshare.test","password":"S3cure!pass"}`
	req := httptest.NewRequest("POST", "/api/users/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("want 409 for duplicate email, got %d", resp.StatusCode)
	}
}

func TestLoginBadCreds(t *testing.T) {
	app, _ := newTestApp(t, nil)

	body := strings.NewReader(`{"email":"admin@resortshare.test","password":"wrongpass!"}`)
	req := httptest.NewRequest("POST", "/api/users/login", body)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("want 401 for bad creds, got %d", resp.StatusCode)
	}
}
