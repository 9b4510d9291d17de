package routes

import (
	"net/http"

	"kedai/books"
	"kedai/cart"
	"kedai/inventory"
	"kedai/live"
	"kedai/orders"
	"kedai/ratelim"

	"github.com/julienschmidt/httprouter"
)

func AddBookRoutes(router *httprouter.Router, h *books.Handler) {
	router.GET("/api/books", h.GetBooks)
	router.GET("/api/books/:id", h.GetBook)
}

func AddCartRoutes(router *httprouter.Router, h *cart.Handler, rl *ratelim.RateLimiter) {
	router.GET("/api/cart", h.GetCart)
	router.POST("/api/cart/items", h.AddToCart)
	router.PUT("/api/cart/items/:id", h.UpdateQuantity)
	router.DELETE("/api/cart/items/:id", h.RemoveItem)
	router.DELETE("/api/cart", h.ClearCart)

	router.POST("/api/checkout", rl.Limit(h.Checkout))
}

func AddOrderRoutes(router *httprouter.Router, h *orders.Handler, rl *ratelim.RateLimiter) {
	router.GET("/api/orders", h.GetOrders)
	router.POST("/api/orders/:orderid/images", rl.Limit(h.AttachImages))
	router.DELETE("/api/orders/:orderid/images/:index", h.RemoveImage)
	router.GET("/api/orders/:orderid/receipt", h.PrintReceipt)
}

func AddAdminRoutes(router *httprouter.Router, h *inventory.Handler, hub *live.Hub) {
	router.GET("/api/admin/books", h.GetBooks)
	router.POST("/api/admin/books", h.SaveBook)
	router.PUT("/api/admin/books/:id/stock", h.UpdateStock)
	router.GET("/api/admin/orders", h.GetOrders)
	router.GET("/api/admin/orders/live", hub.ServeWS)
}

func AddStaticRoutes(router *httprouter.Router, attachDir string) {
	router.ServeFiles("/attachpic/*filepath", http.Dir(attachDir))
	router.ServeFiles("/bookpic/*filepath", http.Dir("static/bookpic"))
}
