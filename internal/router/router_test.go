package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/FlorianMayr1208/present-picker/internal/auth"
	"github.com/FlorianMayr1208/present-picker/internal/browse"
	"github.com/FlorianMayr1208/present-picker/internal/catalog"
	"github.com/FlorianMayr1208/present-picker/internal/transfer"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func testRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	catalogService := catalog.NewService(catalog.NewInMemoryRepository(), 5)
	browseService := browse.NewService(catalogService)
	transferService := transfer.NewService(catalogService, logrus.New())
	authService := auth.NewService(auth.NewInMemoryUserRepository())

	return New(Handlers{
		Auth:     auth.NewHandler(authService),
		Browse:   browse.NewHandler(browseService),
		Admin:    catalog.NewAdminHandler(catalogService, nil),
		Transfer: transfer.NewHandler(transferService),
	})
}

func TestHealthCheck(t *testing.T) {
	r := testRouter()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
}

func TestAdminRequiresToken(t *testing.T) {
	r := testRouter()

	req := httptest.NewRequest(http.MethodPost, "/admin/destinations", nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", w.Code)
	}
}

func TestListDestinationsIsPublic(t *testing.T) {
	r := testRouter()

	req := httptest.NewRequest(http.MethodGet, "/destinations", nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
}
