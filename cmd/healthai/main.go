package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/user/healthai/internal/config"
	"github.com/user/healthai/internal/guard"
	"github.com/user/healthai/internal/session"
	"github.com/user/healthai/pkg/api"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:          "healthai",
	Short:        "Client for the HealthAI personal health-tracking service",
	SilenceUsage: true,
}

func init() {
	defaultPath := filepath.Join(os.Getenv("HOME"), ".healthai", "config.json")
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", defaultPath, "config file path")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// loadConfig loads the config file, exiting on failure. Commands call
// it at the top of their RunE.
func loadConfig() *config.Config {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// setupLogging configures the default slog logger from config.
func setupLogging(cfg *config.Config) {
	var level slog.Level
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// app is the wired object graph every command runs against: one session
// store, one API client reading tokens from it.
type app struct {
	cfg    *config.Config
	store  *session.Store
	client *api.Client
}

// newApp builds the graph and restores the session. Restore completes
// before any guard evaluation, so protected commands never observe the
// loading state.
func newApp() *app {
	cfg := loadConfig()
	setupLogging(cfg)

	store := session.New(cfg.CredentialPath())
	client := api.New(cfg.ServerURL, store)
	store.Bind(client)
	store.Restore()

	return &app{cfg: cfg, store: store, client: client}
}

// admit gates a protected command on the route guard's decision.
func (a *app) admit() error {
	switch guard.Admit(a.store) {
	case guard.Wait:
		return fmt.Errorf("session is still restoring, try again")
	case guard.RedirectLogin:
		return fmt.Errorf("not logged in: run 'healthai login' first")
	}
	return nil
}

// surface maps an operation error to what the user sees. Unauthorized
// means the credential was rejected: the session is invalidated so the
// next guard evaluation redirects to login.
func (a *app) surface(err error) error {
	if err == nil {
		return nil
	}
	if api.IsKind(err, api.Unauthorized) {
		a.store.Invalidate()
		return fmt.Errorf("session expired: run 'healthai login' again")
	}
	return err
}
