package routers

import (
	"time"

	_ "github.com/haierkeys/markdown-note-service/docs"
	"github.com/haierkeys/markdown-note-service/internal/app"
	"github.com/haierkeys/markdown-note-service/internal/middleware"
	"github.com/haierkeys/markdown-note-service/internal/routers/api_router"
	"github.com/haierkeys/markdown-note-service/pkg/limiter"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// newMethodLimiters 登录与注册的限流桶
func newMethodLimiters() limiter.Face {
	return limiter.NewMethodLimiter().AddBuckets(
		limiter.BucketRule{
			Key:          "/api/user/login",
			FillInterval: time.Second,
			Capacity:     10,
			Quantum:      10,
		},
		limiter.BucketRule{
			Key:          "/api/user/register",
			FillInterval: time.Second,
			Capacity:     5,
			Quantum:      5,
		},
	)
}

// NewRouter 创建公共路由
func NewRouter(appContainer *app.App, uni *ut.UniversalTranslator) *gin.Engine {
	cfg := appContainer.Config()
	lg := appContainer.Logger()
	authToken := middleware.UserAuthTokenWithConfig(cfg.Security.AuthTokenKey)

	r := gin.New()
	r.Use(middleware.TraceMiddlewareWithConfig(cfg.Tracer.Enabled, cfg.Tracer.Header))
	r.Use(middleware.AccessLogWithLogger(lg))
	r.Use(middleware.RecoveryWithLogger(lg))
	r.Use(middleware.Metrics(appContainer.Metrics))
	r.Use(middleware.RateLimiter(newMethodLimiters()))

	r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	aiHandler := api_router.NewAIHandler(appContainer)
	assist := r.Group("/ai-assist", middleware.Cors(), middleware.OptionalUserAuthToken(cfg.Security.AuthTokenKey))
	{
		// Cors 中间件直接应答预检请求
		assist.OPTIONS("", func(c *gin.Context) {})
		assist.POST("", aiHandler.Assist)
	}

	api := r.Group("/api")
	{
		api.Use(middleware.AppInfoWithConfig(app.Name, appContainer.Version().Version))
		api.Use(middleware.ContextTimeout(time.Duration(cfg.App.DefaultContextTimeout) * time.Second))
		api.Use(middleware.Cors())
		api.Use(middleware.LangWithTranslator(uni))

		userHandler := api_router.NewUserHandler(appContainer)
		noteHandler := api_router.NewNoteHandler(appContainer)
		versionHandler := api_router.NewVersionHandler(appContainer)
		healthHandler := api_router.NewHealthHandler(appContainer)

		api.POST("/user/register", userHandler.Register)
		api.POST("/user/login", userHandler.Login)
		api.GET("/version", versionHandler.ServerVersion)
		api.GET("/health", healthHandler.Check)

		api.GET("/user/info", authToken, userHandler.UserInfo)

		api.GET("/notes", authToken, noteHandler.List)
		api.GET("/note", authToken, noteHandler.Get)
		api.POST("/note", authToken, noteHandler.Create)
		api.PUT("/note", authToken, noteHandler.Update)
		api.DELETE("/note", authToken, noteHandler.Delete)
		api.GET("/note/export", authToken, noteHandler.Export)
		api.GET("/note/preview", authToken, noteHandler.Preview)
		api.POST("/note/preview", authToken, noteHandler.Render)

		// 预检请求由 Cors 中间件应答
		api.OPTIONS("/*path", func(c *gin.Context) {})
	}

	r.NoRoute(middleware.NoFound())

	return r
}
