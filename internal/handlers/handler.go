package handlers

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"transit_dashboard/internal/logger"
	"transit_dashboard/internal/metrics"
	"transit_dashboard/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

const defaultSessionTTL = 24 * time.Hour

// CookieConfig controls the session cookie attributes.
type CookieConfig struct {
	Secure bool
	TTL    time.Duration
}

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services       *service.Service
	log            *logger.Logger
	metrics        metrics.Recorder
	metricsHandler http.Handler
	cookie         CookieConfig
}

// Option customizes a Handler.
type Option func(*Handler)

// WithMetrics records request metrics into rec and serves gatherer output on /metrics.
func WithMetrics(rec metrics.Recorder, exposition http.Handler) Option {
	return func(h *Handler) {
		if rec != nil {
			h.metrics = rec
		}
		h.metricsHandler = exposition
	}
}

// WithCookie sets the session cookie attributes.
func WithCookie(cfg CookieConfig) Option {
	return func(h *Handler) {
		if cfg.TTL <= 0 {
			cfg.TTL = defaultSessionTTL
		}
		h.cookie = cfg
	}
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger, opts ...Option) *Handler {
	h := &Handler{
		services: services,
		log:      log,
		metrics:  metrics.Nop{},
		cookie:   CookieConfig{TTL: defaultSessionTTL},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.Recovery(), h.accessLog, h.sessionMiddleware)

	router.SetHTMLTemplate(template.Must(template.ParseFS(templateFS, "templates/*.html")))
	static, _ := fs.Sub(staticFS, "static")
	router.StaticFS("/static", http.FS(static))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", h.health)
	if h.metricsHandler != nil {
		router.GET("/metrics", gin.WrapH(h.metricsHandler))
	}

	h.registerPageRoutes(router)
	h.registerAPIRoutes(router)

	// Live departures board (HTTP upgrade) on the same port.
	router.GET("/ws/departures", h.wsDepartures)

	return router
}

func (h *Handler) registerPageRoutes(r *gin.Engine) {
	r.GET("/", h.index)
	r.POST("/register", h.register)
	r.POST("/login", h.login)
	r.GET("/logout", h.logout)
	r.GET("/dashboard", h.requirePageAuth, h.dashboard)
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api")
	{
		api.GET("/departures", h.getDepartures)
		api.GET("/stops", h.getStops)
	}

	favourites := api.Group("/favourites", h.requireAPIAuth)
	{
		favourites.GET("", h.listFavourites)
		favourites.POST("", h.addFavourite)
		favourites.DELETE("/:id", h.deleteFavourite)
	}
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": statusOK})
}

// accessLog writes one line per request and counts it by matched route.
func (h *Handler) accessLog(c *gin.Context) {
	start := time.Now()
	c.Next()

	route := c.FullPath()
	if route == "" {
		route = "unmatched"
	}
	status := c.Writer.Status()
	h.metrics.RecordHTTPRequest(c.Request.Method, route, status)

	if h.log != nil {
		h.log.Infow("http_request",
			"method", c.Request.Method,
			"route", route,
			"status", status,
			"latency", time.Since(start),
		)
	}
}

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// logAndTextError is the plain-text counterpart used by form endpoints.
func (h *Handler) logAndTextError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.String(httpCode, userMsg)
}
