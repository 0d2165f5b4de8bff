package identity

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func newTestHandler() (*Handler, *echo.Echo) {
	h := NewHandler(newTestService())
	return h, echo.New()
}

func postJSON(e *echo.Echo, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestHandler_Register(t *testing.T) {
	h, e := newTestHandler()
	c, rec := postJSON(e, `{"username":"drA","password":"pw1","role":"doctor"}`)

	if err := h.Register(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestHandler_Register_Duplicate(t *testing.T) {
	h, e := newTestHandler()
	c, _ := postJSON(e, `{"username":"drA","password":"pw1","role":"doctor"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("first register: %v", err)
	}

	c, _ = postJSON(e, `{"username":"drA","password":"pw2","role":"doctor"}`)
	err := h.Register(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for duplicate username, got %v", err)
	}
}

func TestHandler_Register_MissingRole(t *testing.T) {
	h, e := newTestHandler()
	c, _ := postJSON(e, `{"username":"drA","password":"pw1"}`)
	err := h.Register(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestHandler_Login(t *testing.T) {
	h, e := newTestHandler()
	c, _ := postJSON(e, `{"username":"drA","password":"pw1","role":"doctor"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("register: %v", err)
	}

	c, rec := postJSON(e, `{"username":"drA","password":"pw1"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("login: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["token"] == "" {
		t.Error("expected token in response")
	}
}

func TestHandler_Login_BadCredentials(t *testing.T) {
	h, e := newTestHandler()
	c, _ := postJSON(e, `{"username":"ghost","password":"pw"}`)
	err := h.Login(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}
