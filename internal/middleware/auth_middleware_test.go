package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fleetadmin/internal/models"
	"fleetadmin/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testSecret = "middleware-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func bearer(t *testing.T, role string, ttl time.Duration) string {
	t.Helper()
	tok, err := utils.GenerateAccessToken(primitive.NewObjectID(), "ops@fleet.io", role, models.RoleIDFor(role), testSecret, ttl)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	return "Bearer " + tok.AccessToken
}

func newGuardedRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	chain := append([]gin.HandlerFunc{AuthRequired(testSecret)}, handlers...)
	chain = append(chain, func(c *gin.Context) {
		id, ok := CurrentUserID(c)
		if !ok || id.IsZero() {
			c.Status(http.StatusInternalServerError)
			return
		}
		role, _ := c.Get(utils.ContextUserRole)
		c.String(http.StatusOK, string(role.(models.UserRole)))
	})
	r.GET("/protected", chain...)
	return r
}

func TestAuthRequired(t *testing.T) {
	r := newGuardedRouter()

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Token abc", http.StatusUnauthorized},
		{"empty bearer", "Bearer ", http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-jwt", http.StatusUnauthorized},
		{"expired token", bearer(t, "super admin", -time.Minute), http.StatusUnauthorized},
		{"valid token", bearer(t, "user", time.Hour), http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.status {
				t.Fatalf("status = %d, want %d (%s)", w.Code, tt.status, w.Body.String())
			}
		})
	}
}

func TestAuthRequiredNormalizesRole(t *testing.T) {
	r := newGuardedRouter()

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", bearer(t, " Super Admin ", time.Hour))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK || w.Body.String() != string(models.RoleSuperAdmin) {
		t.Fatalf("got %d %q", w.Code, w.Body.String())
	}
}

func TestSuperAdminRequired(t *testing.T) {
	r := newGuardedRouter(SuperAdminRequired())

	for role, want := range map[string]int{
		"super admin":    http.StatusOK,
		"operator":       http.StatusForbidden,
		"terminal admin": http.StatusForbidden,
		"user":           http.StatusForbidden,
	} {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", bearer(t, role, time.Hour))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != want {
			t.Errorf("role %q: status = %d, want %d", role, w.Code, want)
		}
	}
}

func TestRoleRequiredWithoutAuth(t *testing.T) {
	r := gin.New()
	r.GET("/open", RoleRequired(models.RoleOperator), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/open", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}
