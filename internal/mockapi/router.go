package mockapi

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/phersys/unifi-log-insight-sub001/filter"
	"github.com/phersys/unifi-log-insight-sub001/internal/metrics"
)

// Error codes returned in JSON error bodies.
const (
	ErrCodeInvalidRequest = "invalid_request"
	ErrCodeUnauthorized   = "unauthorized"
	ErrCodeNotFound       = "not_found"
)

const requestIDKey = "request_id"

// RouterDeps holds the dependencies for the mock backend router.
type RouterDeps struct {
	Log         *logrus.Logger
	Store       *Store
	APIKey      string // empty disables auth
	CORSOrigins []string
	Version     string
}

// NewRouter creates the Gin engine with all middleware and routes.
func NewRouter(deps *RouterDeps) http.Handler {
	r := gin.New()
	r.SetTrustedProxies(nil) //nolint:errcheck // nil always succeeds.
	r.Use(requestID())
	r.Use(ginLogger(deps.Log))
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     deps.CORSOrigins,
		AllowMethods:     []string{"GET", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		MaxAge:           1 * time.Hour,
		AllowCredentials: false,
	}))
	r.Use(prometheusMiddleware())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	h := &handler{store: deps.Store, log: deps.Log, version: deps.Version}

	api := r.Group("/api/v1")
	api.GET("/health", h.health)

	authed := api.Group("", requireKey(deps.APIKey))
	authed.GET("/logs", h.queryLogs)
	authed.GET("/logs/export", h.exportLogs)
	authed.GET("/logs/:id", h.getLog)
	authed.GET("/catalog/services", h.services)
	authed.GET("/catalog/interfaces", h.interfaces)

	return r
}

// requestID generates a fresh server-side UUID for every request and echoes
// it in the X-Request-ID response header.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.New().String()
		c.Set(requestIDKey, id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

func ginLogger(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		fields := logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
			"client":   c.ClientIP(),
		}
		if rid, exists := c.Get(requestIDKey); exists {
			fields[requestIDKey] = rid
		}
		log.WithFields(fields).Info("request")
	}
}

// prometheusMiddleware records HTTP request duration and count.
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())
		path := c.FullPath() // route pattern, not actual path (avoids cardinality explosion)
		if path == "" {
			path = "unknown"
		}
		metrics.RequestDuration.WithLabelValues(c.Request.Method, path, status).Observe(duration)
		metrics.RequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
	}
}

// requireKey enforces bearer auth when a key is configured.
func requireKey(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if key == "" {
			c.Next()
			return
		}
		auth := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(auth, "Bearer ")
		if !ok || token != key {
			respondError(c, http.StatusUnauthorized, ErrCodeUnauthorized, "missing or invalid API key")
			return
		}
		c.Next()
	}
}

// respondError writes a standardized JSON error response and aborts the request.
func respondError(c *gin.Context, status int, code, message string) {
	resp := map[string]string{
		"code":    code,
		"message": message,
	}
	if rid := c.GetString(requestIDKey); rid != "" {
		resp["request_id"] = rid
	}
	c.AbortWithStatusJSON(status, resp)
}

type handler struct {
	store   *Store
	log     *logrus.Logger
	version string
}

func (h *handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "version": h.version})
}

func (h *handler) queryLogs(c *gin.Context) {
	st, err := filter.FromValues(c.Request.URL.Query())
	if err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())
		return
	}
	c.JSON(http.StatusOK, h.store.Query(st))
}

func (h *handler) getLog(c *gin.Context) {
	id := c.Param("id")
	rec, ok := h.store.Get(id)
	if !ok {
		respondError(c, http.StatusNotFound, ErrCodeNotFound, fmt.Sprintf("log record %s not found", id))
		return
	}
	// The detail endpoint enriches the record with fields the list view
	// does not carry.
	rec.Detail = map[string]any{
		"raw":      rec.Message,
		"received": rec.Timestamp.Format(time.RFC3339Nano),
	}
	c.JSON(http.StatusOK, rec)
}

func (h *handler) exportLogs(c *gin.Context) {
	st, err := filter.FromValues(c.Request.URL.Query())
	if err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())
		return
	}
	recs := h.store.Matches(st)

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="logs.csv"`)
	w := csv.NewWriter(c.Writer)
	header := []string{"id", "timestamp", "type", "action", "direction", "vpn",
		"source_ip", "dest_ip", "src_port", "dst_port", "protocol", "rule",
		"service", "interface", "message"}
	if err := w.Write(header); err != nil {
		return
	}
	for _, r := range recs {
		row := []string{
			r.ID, r.Timestamp.Format(time.RFC3339), r.Type, r.Action, r.Direction,
			strconv.FormatBool(r.VPN), r.SourceIP, r.DestIP,
			strconv.Itoa(r.SrcPort), strconv.Itoa(r.DstPort),
			r.Protocol, r.Rule, r.Service, r.Interface, r.Message,
		}
		if err := w.Write(row); err != nil {
			return
		}
	}
	w.Flush()
}

func (h *handler) services(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"services": knownServices})
}

func (h *handler) interfaces(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"interfaces": knownInterfaces})
}
