package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	cartapp "github.com/shopora/backend/internal/application/cart"
	"github.com/shopora/backend/internal/domain/cart"
	"github.com/shopora/backend/internal/domain/shared"
	"github.com/shopora/backend/internal/infrastructure/auth"
	"github.com/shopora/backend/internal/interfaces/http/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// memoryCartRepository keeps carts in a map, enough to drive the handler
// through the real service
type memoryCartRepository struct {
	carts map[uuid.UUID]*cart.Cart
}

func newMemoryCartRepository() *memoryCartRepository {
	return &memoryCartRepository{carts: make(map[uuid.UUID]*cart.Cart)}
}

func (r *memoryCartRepository) FindByID(_ context.Context, id uuid.UUID) (*cart.Cart, error) {
	if c, ok := r.carts[id]; ok {
		return c, nil
	}
	return nil, shared.ErrNotFound
}

func (r *memoryCartRepository) FindActiveByUser(_ context.Context, userID uuid.UUID) (*cart.Cart, error) {
	for _, c := range r.carts {
		if c.UserID == userID && c.Status == cart.CartStatusActive {
			return c, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memoryCartRepository) Save(_ context.Context, c *cart.Cart) error {
	r.carts[c.ID] = c
	return nil
}

func (r *memoryCartRepository) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.carts, id)
	return nil
}

func newCartTestRouter(repo cart.CartRepository) *gin.Engine {
	svc := cartapp.NewCartService(repo, nil, nil, nil, cart.DefaultPricingPolicy(), zap.NewNop())
	h := NewCartHandler(svc)

	engine := gin.New()
	api := engine.Group("/api")
	h.RegisterRoutes(api)
	return engine
}

func authenticate(userID uuid.UUID, role string) func(*gin.Context) {
	return func(c *gin.Context) {
		claims := &auth.Claims{UserID: userID.String(), Role: role}
		c.Set(middleware.JWTClaimsKey, claims)
		c.Set(middleware.JWTUserIDKey, claims.UserID)
		c.Set(middleware.JWTRoleKey, claims.Role)
	}
}

func TestCartHandler_Get(t *testing.T) {
	t.Run("unauthenticated request gets 401 envelope", func(t *testing.T) {
		engine := newCartTestRouter(newMemoryCartRepository())

		req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, false, body["success"])
		errs := body["errors"].(map[string]any)
		assert.Equal(t, "ERR_UNAUTHORIZED", errs["code"])
	})

	t.Run("creates empty cart on first request", func(t *testing.T) {
		repo := newMemoryCartRepository()
		userID := uuid.New()

		svc := cartapp.NewCartService(repo, nil, nil, nil, cart.DefaultPricingPolicy(), zap.NewNop())
		h := NewCartHandler(svc)

		engine := gin.New()
		engine.Use(authenticate(userID, "customer"))
		api := engine.Group("/api")
		h.RegisterRoutes(api)

		req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var body struct {
			Success bool         `json:"success"`
			Data    CartResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.True(t, body.Success)
		assert.Equal(t, "active", body.Data.Status)
		assert.Equal(t, "0", body.Data.Total)
		assert.Empty(t, body.Data.Items)
		assert.Len(t, repo.carts, 1)
	})
}

func TestCartHandler_AddItem_Binding(t *testing.T) {
	repo := newMemoryCartRepository()
	userID := uuid.New()

	svc := cartapp.NewCartService(repo, nil, nil, nil, cart.DefaultPricingPolicy(), zap.NewNop())
	h := NewCartHandler(svc)

	engine := gin.New()
	engine.Use(authenticate(userID, "customer"))
	api := engine.Group("/api")
	h.RegisterRoutes(api)

	cases := []struct {
		name string
		body string
	}{
		{"missing product", `{"variantId":"` + uuid.NewString() + `","quantity":1}`},
		{"malformed product ID", `{"productId":"nope","variantId":"` + uuid.NewString() + `","quantity":1}`},
		{"zero quantity", `{"productId":"` + uuid.NewString() + `","variantId":"` + uuid.NewString() + `","quantity":0}`},
		{"quantity above cap", `{"productId":"` + uuid.NewString() + `","variantId":"` + uuid.NewString() + `","quantity":100}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/cart", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)

			var body map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, false, body["success"])
		})
	}
}

type stubAdminRegistrar struct {
	called bool
}

func (s *stubAdminRegistrar) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/ping", func(c *gin.Context) {
		s.called = true
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
}

func TestAdminRouter(t *testing.T) {
	t.Run("non-admin is rejected with 403", func(t *testing.T) {
		stub := &stubAdminRegistrar{}
		engine := gin.New()
		engine.Use(authenticate(uuid.New(), "customer"))
		api := engine.Group("/api")
		NewAdminRouter(stub).RegisterRoutes(api)

		req := httptest.NewRequest(http.MethodGet, "/api/admin/ping", nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.False(t, stub.called)
	})

	t.Run("admin passes through", func(t *testing.T) {
		stub := &stubAdminRegistrar{}
		engine := gin.New()
		engine.Use(authenticate(uuid.New(), "admin"))
		api := engine.Group("/api")
		NewAdminRouter(stub).RegisterRoutes(api)

		req := httptest.NewRequest(http.MethodGet, "/api/admin/ping", nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, stub.called)
	})
}
