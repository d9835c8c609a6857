package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	ginmiddleware "github.com/oapi-codegen/gin-middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"scriptureCircle/api"
	"scriptureCircle/clients/fcm"
	"scriptureCircle/clients/gcp"
	"scriptureCircle/clients/gemini"
	"scriptureCircle/clients/memory"
	"scriptureCircle/clients/scraper"
	"scriptureCircle/clients/store"
	"scriptureCircle/envvars"
	"scriptureCircle/generator"
	"scriptureCircle/logging"
	"scriptureCircle/services/membership"
	"scriptureCircle/services/notify"
	"scriptureCircle/services/posting"
	"scriptureCircle/services/prompts"
	"scriptureCircle/services/sweeper"
	"scriptureCircle/services/user"
	"scriptureCircle/validator"
)

const shutdownTimeout = 15 * time.Second

func main() {
	env := envvars.GetEnv()
	logging.Setup(envvars.IsProd(env), env.LogLevel)
	if envvars.IsProd(env) {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, closeStore := createStore(ctx, env)
	defer closeStore()

	notifier := notify.NewService(db, createSink(ctx, env))
	ai := gemini.NewClient(gemini.NewHTTPClient(""), env.GeminiAPIKey, env.GeminiModel)
	promptService, err := prompts.NewService(ctx, db, ai, createPromptSource(ctx, env))
	if err != nil {
		log.Fatalf("failed to load prompt templates: %v", err)
	}

	server := NewServer(
		membership.NewService(db, notifier, membership.Config{
			MaxJoinedGroups: env.MaxJoinedGroups,
			BatchSize:       env.SweepBatchSize,
		}),
		posting.NewService(db, notifier, generator.NewAnnouncer()),
		sweeper.NewService(db, sweeper.Config{
			InactivityWindow: env.InactivityWindow,
			GhostWindow:      env.GhostWindow,
			BatchSize:        env.SweepBatchSize,
		}),
		user.NewUserService(db),
		promptService,
		scraper.NewClient(scraper.NewHTTPClient()),
	)

	// Load OpenAPI spec file
	swagger, err := api.GetSwagger()
	if err != nil {
		slog.With("error", err.Error()).Error("failed to load swagger spec file")
		return
	}
	// Clear out the servers array in the swagger spec, that skips validating
	// that server names match. We don't know how this thing will be run.
	swagger.Servers = nil

	verifier := validator.NewFirebaseVerifier(env.ProjectID, validator.RemoteKeys(ctx, validator.FirebaseKeysURL))
	r := setupRouter(server, swagger, validator.NewAuthenticator(verifier, env.OperatorSecret))

	s := &http.Server{
		Handler:           r,
		Addr:              "0.0.0.0:" + env.Port,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		slog.Info("Starting HTTP server", "port", env.Port, "environment", env.Environment, "store", env.StoreBackend)
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.Shutdown(shutdownCtx); err != nil {
		slog.With("error", err.Error()).Warn("server shutdown failed")
	}
	notifier.Wait()
}

func setupRouter(server Server, swagger *openapi3.T, auth openapi3filter.AuthenticationFunc) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization", validator.OperatorHeader},
		MaxAge:          12 * time.Hour,
	}))

	// Routes outside the OpenAPI document are registered before the validator.
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/openapi", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/x-yaml", api.RawSpec())
	})

	r.Use(ginmiddleware.OapiRequestValidatorWithOptions(swagger, &ginmiddleware.Options{
		ErrorHandler: validationError,
		Options: openapi3filter.Options{
			AuthenticationFunc: auth,
		},
	}))
	h := api.NewStrictHandler(server, []api.StrictMiddlewareFunc{api.ResponseErrorHandler})
	api.RegisterHandlersWithOptions(r, h, api.GinServerOptions{ErrorHandler: api.RequestErrorHandler})
	return r
}

func validationError(c *gin.Context, message string, _ int) {
	switch {
	case validator.AuthFailed(c):
		c.AbortWithStatusJSON(http.StatusUnauthorized, api.Error{Error: "unauthenticated", Code: "unauthenticated"})
	case strings.Contains(message, "no matching operation was found"):
		c.AbortWithStatusJSON(http.StatusNotFound, api.Error{Error: "route not found", Code: "not_found"})
	default:
		c.AbortWithStatusJSON(http.StatusBadRequest, api.Error{Error: message, Code: "invalid_argument"})
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		status := c.Writer.Status()
		attrs := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency", time.Since(start),
		}
		if status >= http.StatusInternalServerError {
			slog.Error("request", attrs...)
			return
		}
		slog.Debug("request", attrs...)
	}
}

func createStore(ctx context.Context, env envvars.Env) (store.Store, func()) {
	if env.StoreBackend == envvars.MemoryBackend {
		slog.Warn("using the in-memory store; data is lost on restart")
		return memory.New(), func() {}
	}
	client := gcp.CreateFirestore(ctx, env.ProjectID)
	return gcp.NewFirestore(client), func() {
		if err := client.Close(); err != nil {
			slog.With("error", err.Error()).Warn("failed to close firestore client")
		}
	}
}

func createSink(ctx context.Context, env envvars.Env) notify.Sink {
	if !env.FCMEnabled {
		return notify.LogSink{}
	}
	client, err := fcm.NewHTTPClient(ctx)
	if err != nil {
		slog.With("error", err.Error()).Error("push notifications disabled")
		return notify.LogSink{}
	}
	return fcm.NewClient(client, env.ProjectID)
}

func createPromptSource(ctx context.Context, env envvars.Env) prompts.Source {
	if env.PromptBucket == "" {
		return nil
	}
	client, err := gcp.CreateStorage(ctx)
	if err != nil {
		slog.With("error", err.Error()).Warn("prompt overrides disabled")
		return nil
	}
	return gcp.NewBucket(client, env.PromptBucket)
}
