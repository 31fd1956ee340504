package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func TestRequestID_HeaderIsSet(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(200, "ok") })
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != 200 {
		t.Fatalf("code=%d", w.Code)
	}
	if _, err := uuid.Parse(w.Header().Get(RequestIDHeader)); err != nil {
		t.Fatalf("request id is not a uuid: %v", err)
	}
}

func TestRequestID_Propagation(t *testing.T) {
	gin.SetMode(gin.TestMode)
	incoming := uuid.NewString()

	cases := []struct {
		name   string
		header string
		keep   bool
	}{
		{name: "valid incoming id is kept", header: incoming, keep: true},
		{name: "garbage is replaced", header: "not-a-uuid"},
		{name: "missing header", header: ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var seen string
			r := gin.New()
			r.Use(RequestID())
			r.GET("/", func(c *gin.Context) {
				seen = c.GetString(RequestIDKey)
				c.Status(http.StatusNoContent)
			})
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set(RequestIDHeader, tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			got := w.Header().Get(RequestIDHeader)
			if got != seen {
				t.Fatalf("context id %q differs from header %q", seen, got)
			}
			if tc.keep && got != tc.header {
				t.Fatalf("want %q got %q", tc.header, got)
			}
			if !tc.keep && got == tc.header {
				t.Fatalf("invalid id %q must be replaced", tc.header)
			}
		})
	}
}
