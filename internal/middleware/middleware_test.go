package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pceshop_back_end/internal/cache"
	"pceshop_back_end/internal/models"
	"pceshop_back_end/internal/repository"
	"pceshop_back_end/internal/testutil"
	"pceshop_back_end/internal/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newIssuer() *utils.TokenIssuer {
	return utils.NewTokenIssuer("test-secret", time.Hour, 24*time.Hour)
}

func bearer(t *testing.T, issuer *utils.TokenIssuer, user *models.User) string {
	t.Helper()
	access, _, err := issuer.IssuePair(user)
	require.NoError(t, err)
	return "Bearer " + access
}

func serve(r *gin.Engine, method, path, auth, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func whoami(c *gin.Context) {
	id, ok := UserID(c)
	c.JSON(http.StatusOK, gin.H{"user_id": id, "authenticated": ok})
}

func TestAuthRequired(t *testing.T) {
	issuer := newIssuer()
	r := gin.New()
	r.GET("/me", AuthRequired(issuer), whoami)

	assert.Equal(t, http.StatusUnauthorized, serve(r, "GET", "/me", "", "").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(r, "GET", "/me", "Token abc", "").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(r, "GET", "/me", "Bearer garbage", "").Code)

	_, refresh, err := issuer.IssuePair(&models.User{ID: 3, Username: "u"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, serve(r, "GET", "/me", "Bearer "+refresh, "").Code)

	w := serve(r, "GET", "/me", bearer(t, issuer, &models.User{ID: 3, Username: "u"}), "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":3,"authenticated":true}`, w.Body.String())
}

func TestAuthOptional(t *testing.T) {
	issuer := newIssuer()
	r := gin.New()
	r.GET("/me", AuthOptional(issuer), whoami)

	w := serve(r, "GET", "/me", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":0,"authenticated":false}`, w.Body.String())

	w = serve(r, "GET", "/me", bearer(t, issuer, &models.User{ID: 9, Username: "u"}), "")
	assert.JSONEq(t, `{"user_id":9,"authenticated":true}`, w.Body.String())

	assert.Equal(t, http.StatusUnauthorized, serve(r, "GET", "/me", "Bearer garbage", "").Code)
}

func TestRequireEmployee(t *testing.T) {
	db := testutil.NewTestDB(t)
	users := repository.NewUserRepository(db)
	ctx := context.Background()

	customer := &models.User{Username: "customer", Password: "x", IsActive: true}
	staff := &models.User{Username: "staff", Password: "x", IsActive: true, IsStaff: true}
	clerk := &models.User{Username: "clerk", Password: "x", IsActive: true}
	inactive := &models.User{Username: "gone", Password: "x", IsStaff: true}
	for _, u := range []*models.User{customer, staff, clerk, inactive} {
		require.NoError(t, users.Create(ctx, u))
	}
	require.NoError(t, users.AddToGroup(ctx, clerk.ID, models.EmployeeGroup))

	issuer := newIssuer()
	r := gin.New()
	r.GET("/manager", AuthRequired(issuer), RequireEmployee(users), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"username": CurrentUser(c).Username})
	})

	assert.Equal(t, http.StatusUnauthorized, serve(r, "GET", "/manager", "", "").Code)
	assert.Equal(t, http.StatusForbidden, serve(r, "GET", "/manager", bearer(t, issuer, customer), "").Code)
	assert.Equal(t, http.StatusForbidden, serve(r, "GET", "/manager", bearer(t, issuer, inactive), "").Code)
	assert.Equal(t, http.StatusForbidden, serve(r, "GET", "/manager", bearer(t, issuer, &models.User{ID: 999, Username: "ghost"}), "").Code)

	w := serve(r, "GET", "/manager", bearer(t, issuer, staff), "")
	assert.Equal(t, http.StatusOK, w.Code)
	w = serve(r, "GET", "/manager", bearer(t, issuer, clerk), "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"username":"clerk"}`, w.Body.String())
}

func TestLoginRateLimit(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	store := cache.New(rdb)

	r := gin.New()
	r.POST("/token", LoginRateLimit(store), func(c *gin.Context) {
		var in struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		_ = c.ShouldBindJSON(&in)
		if in.Password != "right" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "bad credentials"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	wrong := `{"username":"alice","password":"wrong"}`
	for i := 0; i < cache.MaxLoginFailures; i++ {
		assert.Equal(t, http.StatusUnauthorized, serve(r, "POST", "/token", "", wrong).Code)
	}

	w := serve(r, "POST", "/token", "", `{"username":"alice","password":"right"}`)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "retry_after")

	// Other usernames are unaffected.
	assert.Equal(t, http.StatusOK, serve(r, "POST", "/token", "", `{"username":"bob","password":"right"}`).Code)

	mr.FastForward(cache.LoginLockout)
	assert.Equal(t, http.StatusOK, serve(r, "POST", "/token", "", `{"username":"alice","password":"right"}`).Code)
}

func TestLoginRateLimitWithoutRedis(t *testing.T) {
	r := gin.New()
	r.POST("/token", LoginRateLimit(nil), func(c *gin.Context) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "bad credentials"})
	})
	for i := 0; i < cache.MaxLoginFailures+2; i++ {
		assert.Equal(t, http.StatusUnauthorized, serve(r, "POST", "/token", "", `{"username":"a"}`).Code)
	}
}

type chanRecorder chan models.AuditLog

func (c chanRecorder) RecordAudit(_ context.Context, entry models.AuditLog) error {
	c <- entry
	return nil
}

func TestAuditAction(t *testing.T) {
	issuer := newIssuer()
	rec := make(chanRecorder, 2)

	r := gin.New()
	r.DELETE("/products/:id", AuthRequired(issuer), AuditAction(rec, models.ActionProductDelete, models.ResourceProduct),
		func(c *gin.Context) {
			if c.Param("id") == "404" {
				c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
				return
			}
			c.Status(http.StatusNoContent)
		})

	auth := bearer(t, issuer, &models.User{ID: 5, Username: "staff"})
	serve(r, "DELETE", "/products/7", auth, "")

	select {
	case entry := <-rec:
		assert.Equal(t, models.ActionProductDelete, entry.Action)
		assert.Equal(t, "7", entry.ResourceID)
		assert.Equal(t, "5", entry.UserID)
		assert.True(t, entry.Success)
	case <-time.After(2 * time.Second):
		t.Fatal("audit entry not recorded")
	}

	serve(r, "DELETE", "/products/404", auth, "")
	select {
	case entry := <-rec:
		assert.False(t, entry.Success)
		assert.Equal(t, "Not Found", entry.ErrorMsg)
	case <-time.After(2 * time.Second):
		t.Fatal("audit entry not recorded")
	}
}
