package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/ajramos/echo-tui/internal/api"
	"github.com/ajramos/echo-tui/internal/config"
	"github.com/ajramos/echo-tui/internal/db"
	"github.com/ajramos/echo-tui/internal/tui"
	"github.com/ajramos/echo-tui/internal/version"
	"github.com/ajramos/echo-tui/pkg/auth"
)

func main() {
	var (
		configPath  = flag.String("config", "", "Path to config file")
		baseURL     = flag.String("base-url", "", "Echo backend base URL")
		tokenPath   = flag.String("token", "", "Path to API token file")
		setup       = flag.Bool("setup", false, "Run interactive setup")
		showVersion = flag.Bool("version", false, "Show version information")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "%s\n\n", version.GetVersionString())
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\nOptions:\n", os.Args[0])
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Environment:
  ECHO_TUI_CONFIG    Config file path (same as --config)
  ECHO_TUI_TOKEN     Token file path (same as --token)
  ECHO_TUI_BASE_URL  Backend base URL (same as --base-url)

Config file: %s
`, config.DefaultConfigPath())
	}
	flag.Parse()

	if *showVersion {
		fmt.Println(version.GetDetailedVersionString())
		return
	}

	if *setup {
		if err := runSetup(); err != nil {
			log.Fatalf("Setup failed: %v", err)
		}
		return
	}

	// Flags win over environment, environment over config file
	cfgPath := firstNonEmpty(*configPath, os.Getenv("ECHO_TUI_CONFIG"), config.DefaultConfigPath())
	cfg, err := config.LoadConfig(expandPath(cfgPath))
	if err != nil {
		log.Printf("Warning: could not load config (%v), using defaults", err)
		cfg = config.DefaultConfig()
	}

	if v := firstNonEmpty(*baseURL, os.Getenv("ECHO_TUI_BASE_URL")); v != "" {
		cfg.BaseURL = v
	}

	tokPath := firstNonEmpty(*tokenPath, os.Getenv("ECHO_TUI_TOKEN"), cfg.Token, config.DefaultTokenPath())
	tokPath = expandPath(tokPath)

	client := api.NewClient(cfg.BaseURL, cfg.GetEnhanceTimeout(), func() string {
		token, err := auth.LoadToken(tokPath)
		if err != nil {
			log.Printf("Warning: could not read token: %v", err)
			return ""
		}
		return token
	})

	app := tui.NewApp(client, cfg)

	if cfg.Cache.Enabled {
		cachePath := cfg.Cache.Path
		if cachePath == "" {
			cachePath = filepath.Join(config.DefaultCacheDir(), "echo.db")
		}
		store, err := db.Open(context.Background(), expandPath(cachePath))
		if err != nil {
			log.Printf("Warning: local store unavailable: %v", err)
		} else {
			app.RegisterDBStore(store)
		}
	}

	if err := app.Run(); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

// runSetup writes a starter config and token file interactively
func runSetup() error {
	reader := bufio.NewReader(os.Stdin)
	cfg := config.DefaultConfig()

	fmt.Printf("Echo backend base URL [%s]: ", cfg.BaseURL)
	if line, err := reader.ReadString('\n'); err == nil {
		if v := strings.TrimSpace(line); v != "" {
			cfg.BaseURL = v
		}
	}

	fmt.Print("API token (leave empty for anonymous access): ")
	token := ""
	if line, err := reader.ReadString('\n'); err == nil {
		token = strings.TrimSpace(line)
	}

	cfgPath := config.DefaultConfigPath()
	if err := cfg.SaveConfig(cfgPath); err != nil {
		return fmt.Errorf("could not write config: %w", err)
	}
	fmt.Printf("Wrote %s\n", cfgPath)

	if token != "" {
		t := auth.Token{AccessToken: token}
		tokPath := config.DefaultTokenPath()
		if err := t.Save(tokPath); err != nil {
			return fmt.Errorf("could not write token: %w", err)
		}
		fmt.Printf("Wrote %s\n", tokPath)
	}

	fmt.Println("Setup complete. Run echo-tui to start.")
	return nil
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
