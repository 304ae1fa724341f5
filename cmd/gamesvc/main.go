package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/httprate"

	config "github.com/avvvet/cardgame-services/configs"
	"github.com/avvvet/cardgame-services/internal/gamesvc/broker"
	svcconfig "github.com/avvvet/cardgame-services/internal/gamesvc/config"
	"github.com/avvvet/cardgame-services/internal/gamesvc/db"
	"github.com/avvvet/cardgame-services/internal/gamesvc/service"
	"github.com/avvvet/cardgame-services/internal/gamesvc/store"
	nats "github.com/avvvet/cardgame-services/internal/nats"
	"github.com/avvvet/cardgame-services/internal/socketsvc/handlers"
	"github.com/avvvet/cardgame-services/internal/socketsvc/routes"
	"github.com/avvvet/cardgame-services/internal/socketsvc/ws"
	log "github.com/sirupsen/logrus"
)

const SERVICE_NAME = "game"

func main() {
	config.LoadEnv(SERVICE_NAME)

	cfg, err := svcconfig.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	if err := config.Logging(SERVICE_NAME+"_service", cfg.LogDir, cfg.LogLevel); err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}

	instanceId, err := config.CreateUniqueInstance(SERVICE_NAME)
	if err != nil {
		log.Fatalf("error generating instanceId: %v", err)
	}

	// pg connection
	dbpool, err := db.Connect(context.Background(), cfg.DSN(), cfg.DBMaxConns)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer dbpool.Close()
	log.Printf("pg connection established successfully (max %d connections)", cfg.DBMaxConns)

	if err := db.Migrate(cfg.DSN()); err != nil {
		log.Fatalf("Failed to migrate DB: %v", err)
	}

	userStore := store.NewUserStore(dbpool)
	sessionStore := store.NewSessionStore(dbpool)
	cardStore := store.NewCardStore(dbpool)
	playerCardStore := store.NewPlayerCardStore(dbpool)
	combatLogStore := store.NewCombatLogStore(dbpool)

	userService := service.NewUserService(userStore)
	sessionService := service.NewSessionService(userService, sessionStore)
	cardService := service.NewCardService(playerCardStore)
	stateService := service.NewStateService(sessionStore, cardStore, playerCardStore, combatLogStore)

	rooms := ws.NewWs()

	// optional event mirror on NATS
	if cfg.NatsURL != "" {
		n, err := nats.Connect(cfg.NatsURL, cfg.NatsToken, SERVICE_NAME+"-"+instanceId)
		if err != nil {
			log.Fatalf("Error: unable to connect to NATS server %v", err)
		}
		defer n.Conn.Drain()
		log.Printf("NATS connection established successfully %s", n.Url)

		rooms.OnBroadcast = broker.NewMirror(n.Conn, instanceId).Publish
	}

	b := broker.NewBroker(rooms, userService, sessionService, cardService, stateService, cfg.HandlerTimeout)

	// Setup router
	r := chi.NewRouter()
	c := config.CORS(cfg.ClientOrigins)

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(config.CustomLoggerMiddleware())
	r.Use(middleware.Recoverer)
	r.Use(c.Handler)

	// to protect the service from connection floods
	r.Use(httprate.LimitByIP(cfg.RateLimit, 1*time.Minute))

	h := handlers.NewHandler(rooms, b, cfg.ClientOrigins)
	routes.SetRoutes(r, h)

	// WriteTimeout stays unset, it would cut long lived websocket connections
	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()
	log.Infof("%s service running at port %s", SERVICE_NAME, server.Addr)

	// Wait for interrupt signal to gracefully shutdown the server
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Errorf("%s service shutdown Failed:%+v", SERVICE_NAME, err)
	}
	log.Infof("%s service gracefully stopped", SERVICE_NAME)
}
