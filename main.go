package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"kedai/bookdata"
	"kedai/books"
	"kedai/cart"
	"kedai/inventory"
	"kedai/live"
	"kedai/models"
	"kedai/orders"
	"kedai/ratelim"
	"kedai/rdx"
	"kedai/routes"
	"kedai/store"

	"github.com/joho/godotenv"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"
)

// securityHeaders applies a set of recommended HTTP security headers.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-XSS-Protection", "1; mode=block")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "frame-ancestors 'none'")
		w.Header().Set("Referrer-Policy", "no-referrer")
		w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, private")
		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware logs each request method, path, remote address, and duration.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s from %s - %v", r.Method, r.RequestURI, r.RemoteAddr, time.Since(start))
	})
}

// Index is a simple health check handler.
func Index(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	fmt.Fprint(w, "200")
}

// newStore picks the persistence backend: Mongo when MONGODB_URI is set,
// otherwise JSON files under DATA_DIR.
func newStore() (store.Store, error) {
	if uri := os.Getenv("MONGODB_URI"); uri != "" {
		return store.NewMongoStore(uri)
	}
	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "data"
	}
	return store.NewFileStore(dataDir)
}

// loadCatalog returns the shopper catalog: a YAML seed file when configured,
// the built-in defaults otherwise.
func loadCatalog() []models.Book {
	if path := os.Getenv("BOOKS_SEED"); path != "" {
		seeded, err := bookdata.LoadSeed(path)
		if err != nil {
			log.Fatalf("Failed to load catalog seed: %v", err)
		}
		return seeded
	}
	return bookdata.Defaults()
}

func main() {
	// load .env if present
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = ":8080"
	} else if port[0] != ':' {
		port = ":" + port
	}

	st, err := newStore()
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	rdx.Init()

	catalog := loadCatalog()

	invSvc := inventory.NewService(st)
	seedCtx, cancelSeed := context.WithTimeout(context.Background(), 10*time.Second)
	if err := invSvc.Seed(seedCtx, catalog); err != nil {
		cancelSeed()
		log.Fatalf("Failed to seed inventory: %v", err)
	}
	cancelSeed()

	orderSvc := orders.NewService(st)

	hub := live.NewHub()
	go hub.Run()

	delay := 1000 * time.Millisecond
	if ms := os.Getenv("CHECKOUT_DELAY_MS"); ms != "" {
		if n, err := strconv.Atoi(ms); err == nil && n >= 0 {
			delay = time.Duration(n) * time.Millisecond
		}
	}

	attachDir := os.Getenv("ATTACH_DIR")
	if attachDir == "" {
		attachDir = "static/attachpic"
	}

	rateLimiter := ratelim.NewRateLimiter()
	sessionCart := cart.New()

	router := httprouter.New()
	router.GET("/health", Index)
	routes.AddBookRoutes(router, books.NewHandler(catalog))
	routes.AddCartRoutes(router, cart.NewHandler(sessionCart, catalog, orderSvc, hub, delay), rateLimiter)
	routes.AddOrderRoutes(router, orders.NewHandler(orderSvc, attachDir), rateLimiter)
	routes.AddAdminRoutes(router, inventory.NewHandler(invSvc, orderSvc), hub)
	routes.AddStaticRoutes(router, attachDir)

	// apply middleware: CORS -> security headers -> logging -> router
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // lock down in production
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	}).Handler(router)

	handler := loggingMiddleware(securityHeaders(corsHandler))

	server := &http.Server{
		Addr:              port,
		Handler:           handler,
		ReadTimeout:       7 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
	}

	server.RegisterOnShutdown(func() {
		log.Println("Shutting down order feed and writer...")
		hub.Stop()
		orderSvc.Close()
	})

	go func() {
		log.Printf("Server listening on %s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Println("Shutdown signal received; shutting down gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Graceful shutdown failed: %v", err)
	}

	log.Println("Server stopped cleanly")
}
