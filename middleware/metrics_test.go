package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"booking-gateway-server/services"
)

func TestMetricsBucketsUnroutedRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)
	meter := services.NewUsageMeter()

	router := gin.New()
	router.Use(MetricsMiddleware(meter))
	router.GET("/known", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	// Scanner-style probes of random paths.
	for _, path := range []string{"/admin.php", "/.env", "/wp-login", "/x/1/y/2"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", path, nil))
		if w.Code != http.StatusNotFound {
			t.Fatalf("%s: expected 404, got %d", path, w.Code)
		}
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/known", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	snap := meter.Snapshot()
	if len(snap.Endpoints) != 2 {
		t.Fatalf("expected 2 endpoints (unmatched bucket + /known), got %d", len(snap.Endpoints))
	}

	var unmatched *services.EndpointStats
	for i := range snap.Endpoints {
		if snap.Endpoints[i].Path == UnmatchedPath {
			unmatched = &snap.Endpoints[i]
		}
	}
	if unmatched == nil {
		t.Fatalf("no %s bucket in snapshot", UnmatchedPath)
	}
	if unmatched.Count != 4 {
		t.Errorf("expected 4 unrouted requests in one bucket, got %d", unmatched.Count)
	}
	if unmatched.ErrorCount != 4 {
		t.Errorf("expected 4 errors in unmatched bucket, got %d", unmatched.ErrorCount)
	}
}
