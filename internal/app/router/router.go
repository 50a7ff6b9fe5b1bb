package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	authhandler "chupchup_backend/internal/feature/auth/transport/handler"
	producthandler "chupchup_backend/internal/feature/product/transport/handler"
	"chupchup_backend/internal/platform/http/handler"
	"chupchup_backend/internal/platform/http/middleware"
)

// Deps are the handlers and settings the router mounts.
type Deps struct {
	Logger   zerolog.Logger
	Auth     *authhandler.AuthHandler
	Products *producthandler.ProductHandler
	Static   *handler.StaticHandler
	Uploads  http.FileSystem
	Ping     handler.Pinger

	// AdminGuard protects product writes; nil leaves them open.
	AdminGuard       gin.HandlerFunc
	CORSAllowOrigins []string
}

func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestID(d.Logger),
		middleware.AccessLog(),
		gin.Recovery(),
		middleware.Metrics(),
		cors.New(corsConfig(d.CORSAllowOrigins)),
	)

	// 導通確認用
	health := handler.Health(d.Ping)
	r.GET("/healthz", health)
	r.HEAD("/healthz", health)
	r.OPTIONS("/healthz", health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		// 新規ユーザー登録
		api.POST("/cadastro", d.Auth.Register)
		// ログイン
		api.POST("/login", d.Auth.Login)

		api.GET("/produtos", d.Products.List)

		// 管理者ガードが有効な場合のみトークンが必要
		writes := api.Group("/produtos")
		if d.AdminGuard != nil {
			writes.Use(d.AdminGuard)
		}
		writes.POST("", d.Products.Create)
		writes.DELETE("/:id", d.Products.Delete)
	}

	// アップロード画像
	r.StaticFS("/uploads", d.Uploads)

	// フロントエンド
	r.GET("/", d.Static.Index)
	r.NoRoute(d.Static.NoRoute)

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodHead, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", middleware.HeaderXRequestID},
		ExposeHeaders: []string{middleware.HeaderXRequestID},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
