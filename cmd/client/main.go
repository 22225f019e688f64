package main

import (
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/vantage-game/vantage/internal/client/ui"
	"github.com/vantage-game/vantage/internal/config"
)

func main() {
	cfg, err := config.LoadClient(os.Args[1:])
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("setting up logging: %v", err)
	}
	defer logger.Sync()

	p := tea.NewProgram(
		ui.NewModel(cfg, logger.Sugar()),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newLogger builds a file logger, so log output never fights the TUI for
// the terminal. An empty DebugLog path disables logging entirely.
func newLogger(cfg *config.ClientConfig) (*zap.Logger, error) {
	if cfg.DebugLog == "" {
		return zap.NewNop(), nil
	}

	zcfg := zap.NewProductionConfig()
	if cfg.Debug {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.OutputPaths = []string{cfg.DebugLog}
	zcfg.ErrorOutputPaths = []string{cfg.DebugLog}
	return zcfg.Build()
}
