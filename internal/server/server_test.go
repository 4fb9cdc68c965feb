package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

type routeHandler struct{ registered bool }

func (h *routeHandler) Register(e *echo.Echo) {
	h.registered = true
	e.GET("/probe", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
}

func TestNewRegistersHandlers(t *testing.T) {
	t.Parallel()

	h := &routeHandler{}
	srv := New(nil, ":0", h, nil)

	if !h.registered {
		t.Fatal("handler was not registered")
	}

	rec := httptest.NewRecorder()
	srv.Echo().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/probe", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d want=%d", rec.Code, http.StatusOK)
	}
}

func TestNewDefaultAddr(t *testing.T) {
	t.Parallel()

	srv := New(nil, "")
	if srv.addr != ":3000" {
		t.Fatalf("addr=%q want=%q", srv.addr, ":3000")
	}
}
