package web

import (
	"context"
	"fmt"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	log "github.com/sirupsen/logrus"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// uploads larger than this are rejected before they reach the reader
const bodyLimit = "32M"

var server *echo.Echo

// SetupRoutes 配置服务器路由
// @title Meesho seller dashboard
// @version 1.0
// @description Reconciles seller order and claims exports against purchase costs
// @termsOfService http://swagger.io/terms/

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:7005
// @BasePath /v1
func SetupRoutes(h *Handler) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	// swagger
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// api exp:
	// curl -F orders=@orders.xlsx -F claims=@claims.csv http://localhost:{port}/v1/report
	// http://localhost:{port}/v1/report/REPORT_3f2a_20260909153131.xlsx?download=1
	v1 := e.Group("/v1")
	v1.POST("/report", h.CreateReport, middleware.BodyLimit(bodyLimit))
	v1.GET("/report/:filename", h.DownloadReport)
	v1.GET("/costs", h.ListCosts)

	server = e
	return e
}

// StartServer 启动Web服务器
func StartServer(h *Handler, port int) error {
	if server == nil {
		server = SetupRoutes(h)
	}
	if port == 0 {
		port = 7005
	}

	log.Infof("Web服务器启动在端口: %d", port)
	return server.Start(fmt.Sprintf(":%d", port))
}

// ShutdownServer 优雅关闭Web服务器
func ShutdownServer(timeout time.Duration) error {
	if server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	return server.Shutdown(ctx)
}
