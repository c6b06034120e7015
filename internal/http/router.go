package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/iyhunko/product-service/internal/http/controller"
	"github.com/iyhunko/product-service/internal/http/middleware"
)

func InitRouter(server *gin.Engine, ctr *controller.Controller, productCtr *controller.ProductController, logger *slog.Logger) *gin.Engine {
	server.Use(middleware.Recovery(logger))
	server.Use(middleware.CORS())
	server.Use(middleware.Logger(logger))

	server.GET("/ping", ctr.Ping)

	products := server.Group("/api/product")
	{
		products.POST("", productCtr.CreateProduct)
		products.GET("", productCtr.ListProducts)
		products.PUT("/:id", productCtr.UpdateProduct)
		products.DELETE("/:id", productCtr.DeleteProduct)
	}

	return server
}
