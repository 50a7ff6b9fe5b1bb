package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"chupchup_backend/internal/app/di"
	"chupchup_backend/internal/app/router"
	authadapters "chupchup_backend/internal/feature/auth/adapters"
	authhandler "chupchup_backend/internal/feature/auth/transport/handler"
	authusecase "chupchup_backend/internal/feature/auth/usecase"
	productadapters "chupchup_backend/internal/feature/product/adapters"
	producthandler "chupchup_backend/internal/feature/product/transport/handler"
	productusecase "chupchup_backend/internal/feature/product/usecase"
	"chupchup_backend/internal/platform/config"
	"chupchup_backend/internal/platform/db"
	"chupchup_backend/internal/platform/http/handler"
	"chupchup_backend/internal/platform/logger"
	"chupchup_backend/internal/platform/password"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context) error {
	// 設定
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	// ロガー
	l := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.LogPretty})
	ctx = l.WithContext(ctx)
	if cfg.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	// DB
	gdb, err := db.Open(cfg.DB, l)
	if err != nil {
		return err
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			l.Error().Err(err).Msg("failed to close db")
		}
	}()
	if cfg.DB.RunMigrations {
		if err := db.Migrate(gdb); err != nil {
			return err
		}
	}

	// 画像ストア
	store, err := di.NewMediaStore(cfg.Media)
	if err != nil {
		return err
	}

	// Repository
	userRepo := authadapters.NewUserMySQL(gdb)
	productRepo := productadapters.NewProductRepository(gdb)

	// Usecase
	authUC := authusecase.NewAuthUsecase(userRepo, password.NewBcryptHasher(bcrypt.DefaultCost), di.NewTokenIssuer(cfg.Auth))
	productUC := productusecase.NewProductUsecase(productRepo, store)

	// 管理者アカウントの初期投入
	if cfg.Auth.SeedAdmin() {
		created, err := authUC.EnsureAdmin(ctx, cfg.Auth.AdminName, cfg.Auth.AdminEmail, cfg.Auth.AdminPassword)
		if err != nil {
			return err
		}
		l.Info().Str("email", cfg.Auth.AdminEmail).Bool("created", created).Msg("admin account ensured")
	}
	if !cfg.Auth.AdminGuard {
		l.Warn().Msg("ADMIN_GUARD is disabled; product create/delete are open to anyone")
	}

	// ルータ生成
	r := router.NewRouter(router.Deps{
		Logger:           l,
		Auth:             authhandler.NewAuthHandler(authUC),
		Products:         producthandler.NewProductHandler(productUC, cfg.Media.MaxUploadBytes),
		Static:           handler.NewStaticHandler(di.NewPublicFS(cfg.Media)),
		Uploads:          store.FileSystem(),
		Ping:             sqlDB.PingContext,
		AdminGuard:       di.NewAdminGuard(cfg.Auth),
		CORSAllowOrigins: cfg.CORSAllowOrigins,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		l.Info().Str("addr", srv.Addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	l.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
