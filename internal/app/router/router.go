// Package router はHTTPルーティングを構成します。
package router

import (
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"finbar/internal/app/di"
	jwtmw "finbar/internal/platform/jwt"
)

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Retry-After"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}

func NewRouter(app *di.App) *gin.Engine {
	r := gin.Default()
	r.Use(cors.New(corsConfig(app.CORSOrigins)))

	// 認証不要
	// 導通確認用
	r.GET("/healthz", app.Health.Health)
	r.HEAD("/healthz", app.Health.Health)
	r.OPTIONS("/healthz", app.Health.Health)

	// IPごとのレート制限付き
	public := r.Group("/")
	public.Use(app.Limiter.Middleware())
	{
		// 新規ユーザー登録
		public.POST("/signup", app.Auth.Signup)
		// ログイン（アクセストークン + リフレッシュトークン発行）
		public.POST("/login", app.Auth.Login)
		// リフレッシュトークンのローテーション
		public.POST("/refresh", app.Auth.Refresh)
	}

	// 認証必須のルート
	// jwtmw.AuthRequired() ミドルウェアを適用
	// → リクエストヘッダーに JWT が必要になる
	auth := r.Group("/")
	auth.Use(jwtmw.AuthRequired(app.JWTSecret))
	{
		auth.POST("/logout", app.Auth.Logout)
		auth.POST("/logout/all", app.Auth.LogoutAll)
		auth.GET("/me", app.Auth.Me)
		auth.PUT("/me", app.Auth.UpdateMe)

		auth.GET("/portfolios", app.Portfolio.List)
		auth.POST("/portfolios", app.Portfolio.Create)
		auth.PUT("/portfolios/:id", app.Portfolio.Update)
		auth.DELETE("/portfolios/:id", app.Portfolio.Delete)

		auth.GET("/actions", app.Action.List)
		auth.POST("/actions", app.Action.Create)

		auth.GET("/performance", app.Performance.GetPerformance)
	}

	return r
}
