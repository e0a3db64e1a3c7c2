package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/joho/godotenv"

	"github.com/towerclimb/server/internal/adminhttp"
	"github.com/towerclimb/server/internal/auth"
	"github.com/towerclimb/server/internal/config"
	"github.com/towerclimb/server/internal/gameconfig"
	"github.com/towerclimb/server/internal/logger"
	"github.com/towerclimb/server/internal/persistence"
	"github.com/towerclimb/server/internal/session"
	"github.com/towerclimb/server/internal/transport"
)

func main() {
	wsPort := flag.Int("wsport", 4443, "WebSocket server port")
	adminPort := flag.Int("adminport", 8080, "Admin HTTP server port")
	serverConfigFile := flag.String("config", "data/server.yaml", "Path to server config YAML file")
	loggingConfig := flag.String("logging", "data/logging.yaml", "Path to logging config YAML file")
	envFile := flag.String("env", ".env", "Path to .env file with secrets (TOWERCLIMB_TOKEN_SECRET, ...)")
	flag.Parse()

	if err := godotenv.Load(*envFile); err != nil {
		fmt.Fprintf(os.Stderr, "no .env file loaded at %s, continuing with system environment\n", *envFile)
	}

	logConfig, _ := logger.LoadConfig(*loggingConfig)
	logger.Initialize(logConfig)
	logger.Info("Starting tower climb server")

	serverCfg, err := config.LoadConfig(*serverConfigFile)
	if err != nil {
		logger.Warning("Failed to load server config, using defaults", "path", *serverConfigFile, "error", err)
		serverCfg = config.DefaultConfig()
	}
	serverCfg.Auth.TokenSecret = os.Getenv("TOWERCLIMB_TOKEN_SECRET")
	if serverCfg.Auth.TokenSecret == "" {
		log.Fatal("TOWERCLIMB_TOKEN_SECRET must be set (via environment or --env file)")
	}

	gcfg, err := gameconfig.Load(serverCfg.GameConfigPath)
	if err != nil {
		logger.Warning("Failed to load game config, using defaults", "path", serverCfg.GameConfigPath, "error", err)
		gcfg = gameconfig.Default()
	}

	dbCfg := persistence.Config{
		Driver:     serverCfg.Database.Driver,
		SQLitePath: serverCfg.Database.SQLitePath,
		Postgres: persistence.PostgresConfig{
			Host:     serverCfg.Database.PostgresHost,
			Port:     serverCfg.Database.PostgresPort,
			User:     serverCfg.Database.PostgresUser,
			Password: serverCfg.Database.PostgresPassword,
			Database: serverCfg.Database.PostgresDatabase,
			SSLMode:  serverCfg.Database.PostgresSSLMode,
		},
	}
	db, err := persistence.Open(dbCfg)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()
	logger.Info("database ready", "driver", dbCfg.Driver)

	authEngine := auth.New(db, serverCfg.Auth, serverCfg.RateLimit)
	defer authEngine.Stop()

	manager := session.NewManager(db, authEngine, gcfg, serverCfg.Session)
	defer manager.Stop()

	connLimiter := transport.NewConnLimiter(serverCfg.Connections)
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return serverCfg.WebSocket.IsOriginAllowed(r.Header.Get("Origin"), r.Host)
		},
	}

	router := mux.NewRouter()
	router.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		ip := transport.ClientIP(r)
		if !connLimiter.TryAcquire(ip) {
			http.Error(w, "too many connections", http.StatusTooManyRequests)
			return
		}
		defer connLimiter.Release(ip)

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Warning("websocket upgrade failed", "remote_addr", r.RemoteAddr, "error", err)
			return
		}
		client := transport.NewWebSocketClient(conn)
		logger.Info("client connected", "remote_addr", client.RemoteAddr())
		manager.Serve(client, ip)
	})

	wsAddr := fmt.Sprintf(":%d", *wsPort)
	wsServer := &http.Server{Addr: wsAddr, Handler: router}

	admin := adminhttp.New(fmt.Sprintf(":%d", *adminPort), db, manager)

	go func() {
		if err := wsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("websocket server error: %v", err)
		}
	}()
	go func() {
		if err := admin.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("admin server error: %v", err)
		}
	}()

	logger.Info("tower climb server running", "websocket_port", *wsPort, "admin_port", *adminPort)
	logger.Info("press Ctrl+C to shutdown")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("shutting down server")
	wsServer.Close()
	admin.Shutdown()
	logger.Info("server stopped")
}
