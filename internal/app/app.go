package app

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/roster/internal/config"
	"github.com/five82/roster/internal/logtail"
	"github.com/five82/roster/internal/prefs"
	"github.com/five82/roster/internal/store"
	"github.com/five82/roster/internal/ui"
	"github.com/five82/roster/internal/users"
)

// Options configure the roster application. Non-zero fields override the
// config file.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/roster/prefs.toml
	BaseURL    string
	LogFile    string
	Timeout    time.Duration
}

type deps struct {
	cfg    config.Config
	client *users.Client
	store  *store.Store
	close  func()
}

func setup(opts Options) (*deps, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}

	closeLog, err := setupLogging(cfg.LogFile)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	client, err := users.NewClient(cfg.BaseURL, users.WithTimeout(cfg.Timeout))
	if err != nil {
		closeLog()
		return nil, fmt.Errorf("init users client: %w", err)
	}

	return &deps{
		cfg:    cfg,
		client: client,
		store:  store.New(client),
		close:  closeLog,
	}, nil
}

func loadConfig(opts Options) (config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	if v := strings.TrimSpace(opts.BaseURL); v != "" {
		cfg.BaseURL = v
	}
	if v := strings.TrimSpace(opts.LogFile); v != "" {
		cfg.LogFile = config.ExpandPath(v)
	}
	if opts.Timeout > 0 {
		cfg.Timeout = opts.Timeout
	}
	return cfg, nil
}

// setupLogging routes the standard logger away from the terminal, which the
// TUI owns.
func setupLogging(path string) (func(), error) {
	if path == "" {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := tea.LogToFile(path, "roster")
	if err != nil {
		return nil, err
	}
	return func() { _ = f.Close() }, nil
}

// Run boots the roster TUI until the context is cancelled or the user quits.
func Run(ctx context.Context, opts Options) error {
	rt, err := setup(opts)
	if err != nil {
		return err
	}
	defer rt.close()

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	userPrefs := prefs.Load(prefsPath)

	log.Printf("starting against %s", rt.client.BaseURL())
	return ui.Run(ui.Options{
		Context:   ctx,
		Store:     rt.store,
		BaseURL:   rt.client.BaseURL(),
		ThemeName: userPrefs.Theme,
		Compact:   userPrefs.Compact,
		PrefsPath: prefsPath,
	})
}

// List prints one line per user without starting the TUI.
func List(ctx context.Context, opts Options, w io.Writer) error {
	rt, err := setup(opts)
	if err != nil {
		return err
	}
	defer rt.close()

	records, err := rt.store.List(ctx)
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}
	for _, rec := range records {
		if _, err := fmt.Fprintf(w, "[ID:%s] %s (%s)\t%s\t%s\n",
			rec.Text("id"), rec.Text("username"), rec.Text("name"), rec.Text("email"), rec.Text("phone")); err != nil {
			return err
		}
	}
	return nil
}

// Logs prints the last n lines of the configured log file.
func Logs(opts Options, w io.Writer, n int) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	if cfg.LogFile == "" {
		return fmt.Errorf("no log file configured (set log_file or --log-file)")
	}
	lines, err := logtail.ReadFile(cfg.LogFile, n)
	if err != nil {
		return err
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
