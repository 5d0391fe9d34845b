package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"recipebook/auth"
	"recipebook/config"
	"recipebook/db"
	"recipebook/middleware"
	"recipebook/mq"
	"recipebook/ratelim"
	"recipebook/recipes"
	"recipebook/routes"

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
		w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains; preload")
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
		log.Printf("%s %s from %s – %v", r.Method, r.RequestURI, r.RemoteAddr, time.Since(start))
	})
}

// healthHandler reports service and database status.
func healthHandler(database *db.DB, environment string) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		dbStatus := "connected"
		if err := database.Ping(ctx); err != nil {
			dbStatus = "disconnected"
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","db":"` + dbStatus + `","environment":"` + environment + `"}`))
	}
}

func newVerifier(cfg config.Config) auth.Verifier {
	if cfg.AuthMode == "certs" {
		return auth.NewCertVerifier(cfg.CertsURL, cfg.Audience, cfg.Issuer)
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set when AUTH_MODE=hmac")
	}
	return auth.NewHMACVerifier(cfg.JWTSecret)
}

func setupRouter(cfg config.Config, database *db.DB, api *recipes.API, authmw *middleware.Auth, rateLimiter *ratelim.RateLimiter) *httprouter.Router {
	router := httprouter.New()
	router.GET("/health", healthHandler(database, cfg.Environment))

	routes.AddAuthRoutes(router, rateLimiter)
	routes.AddRecipeRoutes(router, api, authmw, rateLimiter)

	return router
}

func main() {
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	database, err := db.Connect(ctx, cfg.MongoURI, cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	emitter := mq.NewEmitter(cfg.RedisURL, cfg.RedisPassword)
	if emitter == nil {
		log.Println("REDIS_URL not set; recipe events disabled")
	}

	store := recipes.NewMongoStore(database)
	api := recipes.NewAPI(store, emitter, !cfg.Production(), cfg.ShareBaseURL)
	authmw := middleware.NewAuth(newVerifier(cfg))
	rateLimiter := ratelim.NewRateLimiter(5, 10)

	router := setupRouter(cfg, database, api, authmw, rateLimiter)

	// CORS → security headers → logging → router
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(router)

	handler := loggingMiddleware(securityHeaders(corsHandler))

	server := &http.Server{
		Addr:              cfg.Port,
		Handler:           handler,
		ReadTimeout:       7 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
	}

	go func() {
		log.Printf("🚀 Server listening on %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe error: %v", err)
		}
	}()

	// wait for interrupt, then drain
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	if err := emitter.Close(); err != nil {
		log.Printf("Redis close error: %v", err)
	}
	if err := database.Close(shutdownCtx); err != nil {
		log.Printf("MongoDB disconnect error: %v", err)
	}
	log.Println("Server stopped")
}
