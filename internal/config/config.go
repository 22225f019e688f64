// Package config loads client and server configuration. Defaults are
// overridden by a .env file, then environment variables, then CLI flags.
package config

import (
	"flag"
	"fmt"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// ClientConfig configures the terminal chat client.
type ClientConfig struct {
	ServerURL   string `env:"VANTAGE_SERVER_URL"` // WebSocket endpoint of the relay server
	Username    string `env:"VANTAGE_USERNAME"`   // pre-filled on the login screen
	RoomID      string `env:"VANTAGE_ROOM"`       // room to join
	HistorySize int    `env:"VANTAGE_HISTORY_SIZE"`
	Scrollback  int    `env:"VANTAGE_SCROLLBACK"`
	Timestamps  bool   `env:"VANTAGE_TIMESTAMPS"` // prefix transcript lines with [HH:MM:SS]
	ChatLogPath string `env:"VANTAGE_CHATLOG"`    // where ctrl+o dumps the transcript
	DebugLog    string `env:"VANTAGE_DEBUG_LOG"`  // log file; empty disables logging
	Debug       bool   `env:"VANTAGE_DEBUG"`
}

// ServerConfig configures the relay server.
type ServerConfig struct {
	Addr        string `env:"VANTAGE_ADDR"`
	ReplayLines int    `env:"VANTAGE_REPLAY_LINES"` // backlog lines sent on join
	RoomBacklog int    `env:"VANTAGE_ROOM_BACKLOG"` // chat lines each room retains
	Debug       bool   `env:"VANTAGE_DEBUG"`
}

// ClientDefaults returns the client configuration before any overrides.
func ClientDefaults() *ClientConfig {
	return &ClientConfig{
		ServerURL:   "ws://localhost:8080/ws",
		Username:    "",
		RoomID:      "lobby",
		HistorySize: 20,
		Scrollback:  500,
		Timestamps:  false,
		ChatLogPath: "vantage-chat.log",
		DebugLog:    "",
		Debug:       false,
	}
}

// ServerDefaults returns the server configuration before any overrides.
func ServerDefaults() *ServerConfig {
	return &ServerConfig{
		Addr:        ":8080",
		ReplayLines: 25,
		RoomBacklog: 100,
		Debug:       false,
	}
}

// LoadClient builds the client configuration from defaults, .env,
// environment variables and the given CLI arguments, in that order.
func LoadClient(args []string) (*ClientConfig, error) {
	_ = godotenv.Load()

	cfg := ClientDefaults()
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	fs := flag.NewFlagSet("vantage", flag.ContinueOnError)
	fs.StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "WebSocket server URL")
	fs.StringVar(&cfg.Username, "name", cfg.Username, "username to pre-fill on the login screen")
	fs.StringVar(&cfg.RoomID, "room", cfg.RoomID, "room to join")
	fs.IntVar(&cfg.HistorySize, "history-size", cfg.HistorySize, "submitted lines kept for up/down recall")
	fs.IntVar(&cfg.Scrollback, "scrollback", cfg.Scrollback, "transcript lines kept in the chat window")
	fs.BoolVar(&cfg.Timestamps, "timestamps", cfg.Timestamps, "prefix chat lines with the time of arrival")
	fs.StringVar(&cfg.ChatLogPath, "chatlog", cfg.ChatLogPath, "file the transcript is exported to")
	fs.StringVar(&cfg.DebugLog, "debug-log", cfg.DebugLog, "debug log file (empty disables logging)")
	fs.BoolVar(&cfg.Debug, "debug", cfg.Debug, "verbose debug logging")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadServer builds the server configuration from defaults, .env,
// environment variables and the given CLI arguments, in that order.
func LoadServer(args []string) (*ServerConfig, error) {
	_ = godotenv.Load()

	cfg := ServerDefaults()
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	fs := flag.NewFlagSet("vantage-server", flag.ContinueOnError)
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "HTTP service address")
	fs.IntVar(&cfg.ReplayLines, "replay-lines", cfg.ReplayLines, "backlog lines sent to a client on join")
	fs.IntVar(&cfg.RoomBacklog, "room-backlog", cfg.RoomBacklog, "chat lines each room retains for replay")
	fs.BoolVar(&cfg.Debug, "debug", cfg.Debug, "verbose debug logging")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return cfg, nil
}
