package main

import (
	"log"
	"net/http"
	"os"

	"go.uber.org/zap"

	"github.com/vantage-game/vantage/internal/config"
	"github.com/vantage-game/vantage/internal/server"
)

func main() {
	cfg, err := config.LoadServer(os.Args[1:])
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := newLogger(cfg.Debug)
	if err != nil {
		log.Fatalf("setting up logging: %v", err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	srv := server.NewServer(cfg, sugar)

	http.HandleFunc("/ws", srv.HandleWebSocket)

	sugar.Infow("starting server", "addr", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, nil); err != nil {
		sugar.Fatalw("server stopped", "error", err)
	}
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
