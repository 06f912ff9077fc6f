package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ladderhq/ladder/internal/app/controllers"
	"github.com/ladderhq/ladder/internal/app/repositories"
	"github.com/ladderhq/ladder/internal/app/services"
	"github.com/ladderhq/ladder/internal/middleware"
	"github.com/ladderhq/ladder/internal/pkg/auth"
	"github.com/ladderhq/ladder/internal/pkg/email"
	"github.com/stretchr/testify/assert"
)

// newTestRouter wires the real route table with no database behind it. Good
// enough to assert which routes sit behind the auth middleware: protected
// routes answer 401 before any handler runs.
func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	repos := repositories.NewRepositories(nil)
	jwtService := auth.NewJWTService(auth.JWTConfig{SecretKey: "test-secret", AccessTokenExp: time.Hour})
	svcs := services.NewServices(repos, jwtService, email.NewSender(email.SMTPConfig{}), "http://localhost")

	ctrl := Controllers{
		Auth:        controllers.NewAuthController(svcs.AuthService),
		User:        controllers.NewUserController(svcs.UserService),
		Opportunity: controllers.NewOpportunityController(svcs.OpportunityService),
		Application: controllers.NewApplicationController(svcs.ApplicationService),
		Favorite:    controllers.NewFavoriteController(svcs.FavoriteService),
		Community:   controllers.NewCommunityController(svcs.CommunityService),
		Post:        controllers.NewPostController(svcs.PostService),
		Message:     controllers.NewMessageController(svcs.MessageService),
		Report:      controllers.NewReportController(svcs.ReportService),
		Search:      controllers.NewSearchController(svcs.SearchService),
		Admin:       controllers.NewAdminController(svcs.AdminService, svcs.ReportService),
		Health:      controllers.NewHealthController(nil),
	}

	router := gin.New()
	router.Use(middleware.ErrorHandler())
	SetupRouter(router, ctrl, jwtService)
	return router
}

func TestOpportunityReadsArePublic(t *testing.T) {
	router := newTestRouter()

	// Without a token the public reads reach the handler (which fails on
	// the missing database, not on authentication)
	for _, path := range []string{"/api/v1/opportunities", "/api/v1/opportunities/1"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		router.ServeHTTP(w, req)
		assert.NotEqual(t, http.StatusUnauthorized, w.Code, "GET %s should not require auth", path)
	}
}

func TestOpportunityWritesRequireAuth(t *testing.T) {
	router := newTestRouter()

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/v1/opportunities"},
		{http.MethodGet, "/api/v1/opportunities/my"},
		{http.MethodPatch, "/api/v1/opportunities/1"},
		{http.MethodDelete, "/api/v1/opportunities/1"},
		{http.MethodPost, "/api/v1/opportunities/1/favorite"},
		{http.MethodGet, "/api/v1/favorites"},
		{http.MethodGet, "/api/v1/conversations"},
	}

	for _, tt := range tests {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(tt.method, tt.path, nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s without token", tt.method, tt.path)
	}
}

func TestAdminRoutesRejectNonAdmins(t *testing.T) {
	router := newTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/users", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
