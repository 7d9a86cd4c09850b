package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/forkful/internal/auth"
	"github.com/mmynk/forkful/internal/config"
	"github.com/mmynk/forkful/internal/httpapi"
	"github.com/mmynk/forkful/internal/metrics"
	"github.com/mmynk/forkful/internal/middleware"
	"github.com/mmynk/forkful/internal/rpc"
	"github.com/mmynk/forkful/internal/service"
	"github.com/mmynk/forkful/internal/session"
	"github.com/mmynk/forkful/pkg/logging"
)

func main() {
	cfg := config.Load()
	slog.SetDefault(logging.New(cfg.LogLevel, cfg.LogFormat))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "dialect", store.Dialect())

	// Token revocation needs Redis; without it logout is client-side only.
	var revocations auth.RevocationStore
	if cfg.RedisURL != "" {
		redisStore, err := session.NewRedisStore(cfg.RedisURL)
		if err != nil {
			slog.Error("Redis connection failed", "error", err)
			os.Exit(1)
		}
		defer redisStore.Close()
		revocations = redisStore
		slog.Info("Using Redis for token revocation")
	} else {
		slog.Warn("REDIS_URL not set, logout will not revoke tokens")
	}

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)
	verifier := middleware.NewVerifier(jwtManager, revocations)

	users := service.NewUserService(auth.NewPasswordAuthenticator(store), jwtManager, revocations, store, slog.Default())
	friends := service.NewFriendService(store)
	groups := service.NewGroupService(store)
	votes := service.NewVoteService(store)

	mux := http.NewServeMux()

	httpapi.NewServer(httpapi.Services{
		Users:    users,
		Friends:  friends,
		Groups:   groups,
		Votes:    votes,
		Verifier: verifier,
		Health:   store,
	}).Register(mux)

	// Register Connect services
	groupPath, groupHandler := rpc.NewGroupServiceHandler(
		rpc.NewGroupService(groups, votes),
		connect.WithInterceptors(
			middleware.LoggingInterceptor(),
			middleware.RequireAuth(verifier),
		),
	)
	mux.Handle(groupPath, groupHandler)

	mux.Handle("GET /metrics", metrics.Handler())

	handler := middleware.Logging(middleware.CORS(cfg.CORSOrigin)(mux))

	// Wrap with h2c for HTTP/2 without TLS (required for Connect)
	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           h2c.NewHandler(handler, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go votes.RunJanitor(ctx, cfg.JanitorInterval)

	go func() {
		slog.Info("Server starting", "address", cfg.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Shutdown error", "error", err)
	}
}
