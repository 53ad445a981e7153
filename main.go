package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sabor/access"
	"sabor/db"
	"sabor/identity"
	"sabor/live"
	"sabor/mailer"
	"sabor/models"
	"sabor/ratelim"
	"sabor/rdx"
	"sabor/reservations"
	"sabor/routes"
	"sabor/settings"

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
		duration := time.Since(start)
		log.Printf("%s %s from %s – %v", r.Method, r.RequestURI, r.RemoteAddr, duration)
	})
}

// Index is a simple health check handler.
func Index(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	fmt.Fprint(w, "200")
}

func main() {
	// load .env if present
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	// read port
	port := os.Getenv("PORT")
	if port == "" {
		port = ":8080"
	} else if port[0] != ':' {
		port = ":" + port
	}

	if err := db.Init(); err != nil {
		log.Fatalf("❌ MongoDB init failed: %v", err)
	}
	rdx.Init()

	// repos and services
	reservationRepo := reservations.NewMongoRepo()
	ownerRepo := identity.NewMongoOwnerRepo()
	credentialRepo := identity.NewMongoCredentialRepo()
	profileRepo := identity.NewMongoProfileRepo()
	settingsRepo := settings.NewMongoRepo()

	broker := identity.NewBroker()
	owners := identity.NewOwners(ownerRepo, broker)
	customers := identity.NewCustomers(credentialRepo, profileRepo, mailer.LogMailer{}, broker)
	reservationSvc := reservations.NewService(reservationRepo)

	gate := access.NewGate(profileRepo)

	// log session transitions; also exercises the observer contract end to end
	unobserve := broker.Observe(func(s *models.Session) {
		if s == nil {
			log.Println("session: signed out")
			return
		}
		log.Printf("session: %s %s", s.Kind, s.CredentialID)
	})
	defer unobserve()

	identityHandler := identity.NewHandler(owners, customers, profileRepo, broker)
	reservationHandler := reservations.NewHandler(reservationSvc, profileRepo)
	settingsHandler := settings.NewHandler(settingsRepo)

	rateLimiter := ratelim.NewRateLimiter()

	// live dashboard feed
	hub := live.NewHub(gate)
	listenCtx, stopListen := context.WithCancel(context.Background())
	defer stopListen()
	go hub.ListenEvents(listenCtx)

	router := httprouter.New()
	router.GET("/health", Index)
	routes.AddIdentityRoutes(router, rateLimiter, identityHandler, gate)
	routes.AddReservationRoutes(router, rateLimiter, reservationHandler, gate)
	routes.AddSettingsRoutes(router, rateLimiter, settingsHandler, gate)
	routes.AddLiveRoutes(router, hub)

	// apply middleware: CORS → security headers → logging → router
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // lock down in production
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
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

	go func() {
		log.Printf("🚀 Server listening on %s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ ListenAndServe error: %v", err)
		}
	}()

	// wait for interrupt or SIGTERM
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Println("🛑 Shutdown signal received; shutting down gracefully...")
	stopListen()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Graceful shutdown failed: %v", err)
	}
	db.Close(ctx)

	log.Println("✅ Server stopped cleanly")
}
