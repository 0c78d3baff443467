package health

import (
	"context"
	"net/http"
	"time"

	"connectrpc.com/grpchealth"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// ServiceName is the name reported through the gRPC health protocol.
const ServiceName = "dispatchwatch.v1.Watcher"

type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusUnhealthy Status = "unhealthy"
)

type CheckResult struct {
	Status    Status `json:"status"`
	LatencyMs int64  `json:"latency_ms,omitempty"`
	Error     string `json:"error,omitempty"`
}

type HealthStatus struct {
	Status  Status                 `json:"status"`
	Version string                 `json:"version,omitempty"`
	Checks  map[string]CheckResult `json:"checks,omitempty"`
}

// RosterState reports whether the first roster refresh has completed.
type RosterState interface {
	RosterLoaded() bool
}

// Checker reports readiness of the watcher and its optional redis store.
type Checker struct {
	redisClient *redis.Client
	roster      RosterState
	version     string
	responder   string
	grpc        *grpchealth.StaticChecker
}

// NewChecker creates a checker. redisClient may be nil when the seen store is in memory.
func NewChecker(redisClient *redis.Client, roster RosterState, version, responder string) *Checker {
	return &Checker{
		redisClient: redisClient,
		roster:      roster,
		version:     version,
		responder:   responder,
		grpc:        grpchealth.NewStaticChecker(ServiceName),
	}
}

func (c *Checker) Check(ctx context.Context) *HealthStatus {
	checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	status := &HealthStatus{
		Status:  StatusHealthy,
		Version: c.version,
		Checks:  make(map[string]CheckResult),
	}

	if c.redisClient != nil {
		start := time.Now()
		if err := c.redisClient.Ping(checkCtx).Err(); err != nil {
			status.Status = StatusUnhealthy
			status.Checks["redis"] = CheckResult{
				Status: StatusUnhealthy,
				Error:  err.Error(),
			}
		} else {
			status.Checks["redis"] = CheckResult{
				Status:    StatusHealthy,
				LatencyMs: time.Since(start).Milliseconds(),
			}
		}
	}

	if c.roster != nil {
		if c.roster.RosterLoaded() {
			status.Checks["roster"] = CheckResult{Status: StatusHealthy}
		} else {
			status.Status = StatusUnhealthy
			status.Checks["roster"] = CheckResult{
				Status: StatusUnhealthy,
				Error:  "roster not loaded yet",
			}
		}
	}

	grpcStatus := grpchealth.StatusServing
	if status.Status != StatusHealthy {
		grpcStatus = grpchealth.StatusNotServing
	}
	c.grpc.SetStatus(ServiceName, grpcStatus)

	return status
}

// RootHandler answers the plain-text liveness check at "/".
func (c *Checker) RootHandler() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.String(http.StatusOK, "%s's fire app", c.responder)
	}
}

func (c *Checker) LiveHandler() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

func (c *Checker) ReadyHandler() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		status := c.Check(ctx.Request.Context())

		httpStatus := http.StatusOK
		if status.Status != StatusHealthy {
			httpStatus = http.StatusServiceUnavailable
		}

		ctx.JSON(httpStatus, status)
	}
}

// GRPCHandler returns the gRPC health service path and handler. The status
// it serves follows the last Check.
func (c *Checker) GRPCHandler() (string, http.Handler) {
	return grpchealth.NewHandler(c.grpc)
}

// Register mounts every health endpoint on r.
func (c *Checker) Register(r gin.IRoutes) {
	r.GET("/", c.RootHandler())
	r.GET("/health/live", c.LiveHandler())
	r.GET("/health/ready", c.ReadyHandler())
	r.GET("/health", c.ReadyHandler())

	path, handler := c.GRPCHandler()
	r.POST(path+"*method", gin.WrapH(handler))
}
