package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestSecurityHeaders(t *testing.T) {
	want := map[string]string{
		"X-Content-Type-Options":    "nosniff",
		"X-Frame-Options":           "DENY",
		"X-XSS-Protection":          "0",
		"Content-Security-Policy":   "default-src 'none'; frame-ancestors 'none'",
		"Strict-Transport-Security": "max-age=31536000; includeSubDomains",
		"Referrer-Policy":           "no-referrer",
		"Cache-Control":             "no-store",
	}

	handlers := map[string]echo.HandlerFunc{
		"success": func(c echo.Context) error { return c.JSON(http.StatusCreated, map[string]int{"id": 1}) },
		"error":   func(c echo.Context) error { return echo.NewHTTPError(http.StatusNotFound, "User not found") },
	}

	for name, handler := range handlers {
		t.Run(name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/users/1", nil), rec)

			err := SecurityHeaders()(handler)(c)
			if name == "error" {
				if he, ok := err.(*echo.HTTPError); !ok || he.Code != http.StatusNotFound {
					t.Fatalf("expected handler error to pass through, got %v", err)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			for header, v := range want {
				if got := rec.Header().Get(header); got != v {
					t.Errorf("header %s: got %q, want %q", header, got, v)
				}
			}
		})
	}
}
