package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"mpeg2-bot/pkg/middleware"
)

// Router 存活探针路由。与作业流水线完全解耦：不读取任何作业状态。
type Router struct{}

// NewRouter 创建路由配置
func NewRouter() *Router {
	return &Router{}
}

// SetupRoutes 设置路由
func (r *Router) SetupRoutes(engine *gin.Engine) {
	engine.Use(middleware.RequestContextMiddleware())

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"service":   "mpeg2-bot",
			"timestamp": time.Now().Unix(),
		})
	})

	engine.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "MP4 to MPEG-2 Converter Bot",
			"health":  "/health",
		})
	})
}
