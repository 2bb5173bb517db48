package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"serial-inventory/internal/handler/api"
	"serial-inventory/internal/handler/middleware"
	"serial-inventory/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

// Handlers groups the API handlers the router mounts.
type Handlers struct {
	Serial   *api.SerialHandler
	Checkout *api.CheckoutHandler
	Variant  *api.VariantHandler
	Catalog  *api.CatalogHandler
	Export   *api.ExportHandler
	Webhook  *api.WebhookHandler
}

func NewHandlers(
	serial *api.SerialHandler,
	checkout *api.CheckoutHandler,
	variant *api.VariantHandler,
	catalog *api.CatalogHandler,
	export *api.ExportHandler,
	webhook *api.WebhookHandler,
) Handlers {
	return Handlers{
		Serial:   serial,
		Checkout: checkout,
		Variant:  variant,
		Catalog:  catalog,
		Export:   export,
		Webhook:  webhook,
	}
}

func NewRouter(engine *gin.Engine, cfg config.Config, h Handlers, authMiddleware *middleware.AuthMiddleware, webhookMiddleware *middleware.WebhookMiddleware) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, h, authMiddleware, webhookMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware, webhookMiddleware *middleware.WebhookMiddleware) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	webhooks := engine.Group("/webhooks")
	addRoutes(webhooks, []route{
		{Method: http.MethodPost, Path: "/*topic", Handler: h.Webhook.Receive, Mw: []gin.HandlerFunc{webhookMiddleware.VerifyWebhook()}},
	})

	apiGroup := engine.Group("/api")
	apiGroup.Use(authMiddleware.RequireShop())
	{
		serials := apiGroup.Group("/serials")
		addRoutes(serials, []route{
			{Method: http.MethodGet, Path: "", Handler: h.Serial.List},
			{Method: http.MethodPost, Path: "", Handler: h.Serial.Create},
			{Method: http.MethodGet, Path: "/unassigned", Handler: h.Serial.ListUnassigned},
			{Method: http.MethodGet, Path: "/validate", Handler: h.Serial.Validate},
			{Method: http.MethodGet, Path: "/export", Handler: h.Export.Export},
			{Method: http.MethodPost, Path: "/bulk", Handler: h.Serial.CreateBulk},
			{Method: http.MethodPost, Path: "/assign", Handler: h.Serial.Assign},
			{Method: http.MethodPost, Path: "/release", Handler: h.Serial.Release},
			{Method: http.MethodPatch, Path: "/:id", Handler: h.Serial.Rename},
			{Method: http.MethodDelete, Path: "/:id", Handler: h.Serial.Delete},
		})

		checkout := apiGroup.Group("/checkout")
		addRoutes(checkout, []route{
			{Method: http.MethodPost, Path: "/reserve", Handler: h.Checkout.ReserveAssigned},
			{Method: http.MethodPost, Path: "/reserve-serial", Handler: h.Checkout.ReserveBySerialNumber},
			{Method: http.MethodPost, Path: "/sell", Handler: h.Checkout.MarkSold},
			{Method: http.MethodPost, Path: "/sell-bulk", Handler: h.Checkout.BulkMarkSold},
			{Method: http.MethodPost, Path: "/release", Handler: h.Checkout.ReleaseReserved},
		})

		variants := apiGroup.Group("/variants/:variantId")
		addRoutes(variants, []route{
			{Method: http.MethodGet, Path: "/serials", Handler: h.Variant.All},
			{Method: http.MethodGet, Path: "/serials/available", Handler: h.Variant.Available},
			{Method: http.MethodGet, Path: "/serials/assigned", Handler: h.Variant.Assigned},
			{Method: http.MethodGet, Path: "/capacity", Handler: h.Variant.Capacity},
		})

		catalog := apiGroup.Group("/catalog")
		addRoutes(catalog, []route{
			{Method: http.MethodPut, Path: "/products", Handler: h.Catalog.SyncProduct},
			{Method: http.MethodPut, Path: "/:target/:id/require-serial", Handler: h.Catalog.SetRequireSerial},
		})

		addRoutes(apiGroup, []route{
			{Method: http.MethodGet, Path: "/reconciliation-tasks", Handler: h.Serial.ListReconciliationTasks},
		})
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
