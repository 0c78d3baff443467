package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
)

type Environment string

const (
	EnvDev     Environment = "dev"
	EnvStaging Environment = "staging"
	EnvProd    Environment = "prod"
)

// Module names the component a record originates from.
type Module string

type ServiceInfo struct {
	Name     string
	Version  string
	Revision string
}

type Config struct {
	Service       ServiceInfo
	Environment   Environment
	Level         slog.Leveler
	DefaultModule Module
	GCPProjectID  string
	Writer        io.Writer
}

// NewHandler builds the process handler: text for dev, JSON otherwise.
// Every record carries the service identity and a module.
func NewHandler(cfg Config) slog.Handler {
	w := cfg.Writer
	if w == nil {
		w = os.Stdout
	}

	level := cfg.Level
	if level == nil {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: platformReplaceAttr,
	}

	var base slog.Handler
	if cfg.Environment == EnvDev {
		base = slog.NewTextHandler(w, opts)
	} else {
		base = slog.NewJSONHandler(w, opts)
	}

	attrs := []slog.Attr{
		slog.String("service.name", cfg.Service.Name),
		slog.String("service.version", cfg.Service.Version),
		slog.String("env", string(cfg.Environment)),
	}
	if cfg.Service.Revision != "" {
		attrs = append(attrs, slog.String("service.revision", cfg.Service.Revision))
	}

	return &contextHandler{
		Handler:       base.WithAttrs(attrs),
		defaultModule: cfg.DefaultModule,
		projectID:     cfg.GCPProjectID,
	}
}

func New(cfg Config) *slog.Logger {
	return slog.New(NewHandler(cfg))
}

type moduleCtxKey struct{}
type runIDCtxKey struct{}

// WithModule overrides the module attached to records logged with ctx.
func WithModule(ctx context.Context, m Module) context.Context {
	return context.WithValue(ctx, moduleCtxKey{}, m)
}

// WithRunID tags every record logged with ctx with the polling cycle id.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDCtxKey{}, runID)
}

func RunIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(runIDCtxKey{}).(string); ok {
		return v
	}
	return ""
}

type contextHandler struct {
	slog.Handler
	defaultModule Module
	projectID     string
}

func (h *contextHandler) Handle(ctx context.Context, r slog.Record) error {
	module := h.defaultModule
	if m, ok := ctx.Value(moduleCtxKey{}).(Module); ok && m != "" {
		module = m
	}
	if module != "" {
		r.AddAttrs(slog.String("module", string(module)))
	}

	if runID := RunIDFromContext(ctx); runID != "" {
		r.AddAttrs(slog.String("run_id", runID))
	}

	r.AddAttrs(gcpTraceAttrs(ctx, h.projectID)...)

	return h.Handler.Handle(ctx, r)
}

func (h *contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &contextHandler{
		Handler:       h.Handler.WithAttrs(attrs),
		defaultModule: h.defaultModule,
		projectID:     h.projectID,
	}
}

func (h *contextHandler) WithGroup(name string) slog.Handler {
	return &contextHandler{
		Handler:       h.Handler.WithGroup(name),
		defaultModule: h.defaultModule,
		projectID:     h.projectID,
	}
}
