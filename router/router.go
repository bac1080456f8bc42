package router

import (
	"net/http"

	"caisse/api"
	"caisse/config"
	_ "caisse/docs"
	"caisse/middleware"
	"caisse/models"
	"caisse/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Deps 路由依赖，由 main 组装
type Deps struct {
	Config *config.Config
	Log    logrus.FieldLogger
	JWT    *middleware.JWT
	Gate   service.Authorizer

	Auth    *api.AuthHandler
	Users   *api.UserHandler
	Entries *api.LedgerHandler[models.Entry]
	Exits   *api.LedgerHandler[models.Exit]
	Meta    *api.MetaHandler
	Summary *api.SummaryHandler
	Export  *api.ExportHandler
	Backup  *api.BackupHandler
}

// SetupRouter 设置路由
func SetupRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestLogger(d.Log), gin.Recovery())

	// CORS 中间件
	r.Use(CORSMiddleware())

	// Swagger 文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	// 认证（限流），不解析 Authorization，过期 token 不影响重新登录
	limit := middleware.LoginRateLimit(d.Config.RateLimit.LoginAttempts, d.Config.RateLimit.Window())
	auth := r.Group("/api/auth")
	{
		auth.POST("/login", limit, d.Auth.Login)
		auth.POST("/reset-password", limit, d.Auth.ResetPassword)
	}

	apiGroup := r.Group("/api")
	apiGroup.Use(middleware.Identify(d.JWT, d.Config.Auth.TrustRequestIdentity, d.Log))
	{

		meta := apiGroup.Group("/meta")
		{
			meta.GET("/offering-types", d.Meta.OfferingTypes)
			meta.GET("/types-offrandes", d.Meta.OfferingTypes)
			meta.GET("/exit-types", d.Meta.ExitTypes)
		}

		registerLedger(apiGroup.Group("/entries"), d.Entries)
		registerLedger(apiGroup.Group("/entrees"), d.Entries)
		registerLedger(apiGroup.Group("/exits"), d.Exits)
		registerLedger(apiGroup.Group("/sorties"), d.Exits)

		admin := middleware.RequireAdmin(d.Gate)
		users := apiGroup.Group("/users")
		{
			users.GET("", d.Users.List)
			users.POST("", admin, d.Users.Create)
			users.PUT("/:id", admin, d.Users.Update)
		}

		apiGroup.GET("/reports/summary", d.Summary.Summary)
		apiGroup.GET("/export/excel", d.Export.ExportExcel)

		backup := apiGroup.Group("/backup", admin)
		{
			backup.POST("", d.Backup.Backup)
			backup.GET("", d.Backup.List)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		api.NotFound(c, "Route non trouvée.")
	})

	return r
}

// ledgerRoutes 收入与支出共用的五个操作
type ledgerRoutes interface {
	List(c *gin.Context)
	Get(c *gin.Context)
	Create(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

func registerLedger(g *gin.RouterGroup, h ledgerRoutes) {
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

// CORSMiddleware CORS 跨域中间件
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Request-ID, X-User-Id, X-Username")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "X-Request-ID, Content-Disposition")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
