package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/slinet/ehparse/internal/config"
	"github.com/slinet/ehparse/internal/middleware"
	"github.com/slinet/ehparse/pkg/parser"
	"github.com/slinet/ehparse/pkg/utils"
)

// NewRouter builds the HTTP API.
func NewRouter(cfg config.ServerConfig, log *zap.Logger, p *parser.Parser) *gin.Engine {
	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.GinZap(log))
	router.Use(middleware.Recovery(log))
	router.Use(middleware.ErrorHandler(log))
	router.Use(middleware.CORS(cfg.CORS, cfg.CORSOrigin))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, utils.GetResponse(gin.H{"hosts": p.Hosts()}, 200, "ok", nil))
	})

	parseHandler := NewParseHandler(log, p, cfg.MaxBodyBytes)
	urlHandler := NewURLHandler(p)
	categoryHandler := NewCategoryHandler()

	api := router.Group("/api")
	{
		parseHandler.Register(api)

		// URL routes
		api.GET("/url/detail", urlHandler.Detail)
		api.GET("/url/page", urlHandler.Page)

		// Category routes
		api.GET("/category/:value", categoryHandler.Get)
		api.GET("/category", categoryHandler.List)
	}

	return router
}
