package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"pceshop_back_end/internal/cache"
	"pceshop_back_end/internal/handlers/admin"
	"pceshop_back_end/internal/handlers/product"
	"pceshop_back_end/internal/handlers/user"
	"pceshop_back_end/internal/middleware"
	"pceshop_back_end/internal/models"
	"pceshop_back_end/internal/repository"
	"pceshop_back_end/internal/services"
	"pceshop_back_end/internal/utils"
)

// Dependencies are the components the HTTP surface is built from.
type Dependencies struct {
	CORSOrigins []string
	Tokens      *utils.TokenIssuer
	Users       *repository.UserRepository
	Cache       *cache.Store
	Ledger      *services.Ledger

	Products *product.Handler
	Accounts *user.Handler
	Admin    *admin.Handler
}

// group registers every route with and without a trailing slash; the
// storefront calls "/api/x/".
type group struct {
	*gin.RouterGroup
}

func (g group) handle(method, path string, h ...gin.HandlerFunc) {
	g.Handle(method, path, h...)
	g.Handle(method, path+"/", h...)
}

func RegisterRoutes(r *gin.Engine, d Dependencies) {
	r.Use(corsMiddleware(d.CORSOrigins))

	api := group{r.Group("/api")}
	requireAuth := middleware.AuthRequired(d.Tokens)
	optionalAuth := middleware.AuthOptional(d.Tokens)
	loginLimit := middleware.LoginRateLimit(d.Cache)

	// Catalog
	api.handle("GET", "/categories", d.Products.ListCategories)
	api.handle("GET", "/products", d.Products.ListProducts)
	api.handle("GET", "/products/:slug", d.Products.GetProduct)
	api.handle("GET", "/filters", d.Products.Filters)

	// Account
	api.handle("POST", "/register", loginLimit, d.Accounts.Register)
	api.handle("POST", "/token", loginLimit, d.Accounts.Token)
	api.handle("POST", "/token/refresh", d.Accounts.TokenRefresh)
	api.handle("GET", "/profile", requireAuth, d.Accounts.GetProfile)
	api.handle("PUT", "/profile", requireAuth, d.Accounts.UpdateProfile)
	api.handle("PATCH", "/profile", requireAuth, d.Accounts.UpdateProfile)

	// Cart and checkout
	api.handle("GET", "/cart", requireAuth, d.Accounts.GetCart)
	api.handle("POST", "/cart", requireAuth, d.Accounts.AddToCart)
	api.handle("DELETE", "/cart", requireAuth, d.Accounts.RemoveFromCart)
	api.handle("POST", "/orders", optionalAuth, d.Accounts.CreateOrder)
	api.handle("GET", "/my-orders", requireAuth, d.Accounts.MyOrders)
	api.handle("POST", "/save-card", requireAuth, d.Accounts.SaveCard)
	api.handle("GET", "/saved-cards", requireAuth, d.Accounts.SavedCards)

	// Staff
	manager := group{api.Group("/manager", requireAuth, middleware.RequireEmployee(d.Users))}
	audit := func(action, resource string) gin.HandlerFunc {
		return middleware.AuditAction(d.Ledger, action, resource)
	}

	manager.handle("GET", "/orders", d.Admin.ListOrders)
	manager.handle("POST", "/orders/mark-paid", audit(models.ActionOrderMarkPaid, models.ResourceOrder), d.Admin.MarkPaid)
	manager.handle("GET", "/product-templates", d.Admin.ProductTemplates)
	manager.handle("GET", "/audit-logs", d.Admin.AuditLogs)

	manager.handle("POST", "/categories", audit(models.ActionCategoryCreate, models.ResourceCategory), d.Products.CreateCategory)
	manager.handle("PUT", "/categories/:id", audit(models.ActionCategoryUpdate, models.ResourceCategory), d.Products.UpdateCategory)
	manager.handle("DELETE", "/categories/:id", audit(models.ActionCategoryDelete, models.ResourceCategory), d.Products.DeleteCategory)

	manager.handle("POST", "/products", audit(models.ActionProductCreate, models.ResourceProduct), d.Products.CreateProduct)
	manager.handle("PUT", "/products/:id", audit(models.ActionProductUpdate, models.ResourceProduct), d.Products.UpdateProduct)
	manager.handle("DELETE", "/products/:id", audit(models.ActionProductDelete, models.ResourceProduct), d.Products.DeleteProduct)
	manager.handle("POST", "/products/:id/image", audit(models.ActionProductImage, models.ResourceProduct), d.Products.UploadImage)
	manager.handle("POST", "/products/:id/stock", audit(models.ActionProductStock, models.ResourceProduct), d.Products.AdjustStock)
	manager.handle("GET", "/products/:id/stock-movements", d.Products.StockMovements)
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		cfg.AllowCredentials = false
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}
