package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/quocluongg/telectric-web-sub001/internal/adapter/http/middleware"
	"github.com/quocluongg/telectric-web-sub001/internal/logging"
)

func NewRouter(cart *CartHandler, checkout *CheckoutHandler, status *OrderStatusHandler, admin *AdminOrdersHandler, th *TokenHandler, authz *middleware.Authz) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.MetricsMiddleware())

	l := logging.New("http")
	r.Use(middleware.Logging(l))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})
	// Prometheus endpoint (scraped by Prometheus)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.POST("/v1/token", th.IssueToken)

	v1 := r.Group("/v1")
	{
		v1.GET("/cart", cart.GetCart)
		v1.POST("/cart/items", cart.AddItem)
		v1.PUT("/cart/items/:variantId", cart.SetQuantity)
		v1.DELETE("/cart/items/:variantId", cart.RemoveItem)
		v1.DELETE("/cart", cart.ClearCart)

		v1.POST("/checkout", checkout.Checkout)
		v1.GET("/orders/:id/status", status.GetStatus)
	}

	adm := r.Group("/v1/admin")
	{
		adm.GET("/orders", authz.Require("orders.read"), admin.ListOrders)
		adm.GET("/orders/:id", authz.Require("orders.read"), admin.GetOrder)
		adm.PATCH("/orders/:id/status", authz.Require("orders.write"), admin.UpdateStatus)
	}

	return r
}
