package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/flicks/internal/app"
	"github.com/mmcdole/flicks/internal/config"
	"github.com/mmcdole/flicks/internal/domain"
	"github.com/mmcdole/flicks/internal/log"
	"github.com/mmcdole/flicks/internal/tui"
	"golang.org/x/term"
)

// Version is set at build time via -ldflags
var Version = "dev"

const usage = `usage: flicks [flags] [command]

commands:
  (none)                   browse interactively (plain listing when not a terminal)
  search <query>           print catalog movies matching query
  favorites                print favorites, newest first
  favorites add <id>       add a catalog movie to favorites
  favorites remove <id>    remove a movie from favorites
  favorites clear          remove every favorite

flags:
`

func main() {
	var showVersion bool
	var configPath string
	var initConfig bool
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.StringVar(&configPath, "config", "", "path to config file")
	flag.BoolVar(&initConfig, "init-config", false, "write the effective config to the default location and exit")
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	if showVersion {
		fmt.Printf("flicks %s\n", Version)
		return
	}

	if initConfig {
		if err := writeConfig(configPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(configPath, flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(configPath string) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadConfigFile(configPath)
	} else {
		cfg, err = config.LoadConfig()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func writeConfig(configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if err := config.SaveConfig(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	fmt.Printf("✓ Configuration saved to %s\n", config.ConfigPath())
	return nil
}

func run(configPath string, args []string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	// Setup logger
	logger, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting flicks", "version", Version)

	a, err := app.Open(cfg, logger, app.Options{})
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			logger.Error("failed to close session", "error", err)
		}
	}()

	if len(args) == 0 && term.IsTerminal(int(os.Stdout.Fd())) {
		return runTUI(a, logger)
	}
	return runCommand(context.Background(), a, args, os.Stdout)
}

func runTUI(a *app.App, logger *slog.Logger) error {
	p := tea.NewProgram(
		tui.NewModel(a),
		tea.WithAltScreen(),
	)

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}

// runCommand executes one non-interactive command against the session.
// With no args it prints the whole catalog.
func runCommand(ctx context.Context, a *app.App, args []string, w io.Writer) error {
	a.RestoreFavorites(nil)

	if len(args) == 0 {
		if err := loadCatalog(ctx, a); err != nil {
			return err
		}
		printMovies(w, a.Search(""))
		return nil
	}

	switch args[0] {
	case "search":
		if len(args) != 2 {
			return errors.New("usage: flicks search <query>")
		}
		if err := loadCatalog(ctx, a); err != nil {
			return err
		}
		results := a.Search(args[1])
		if len(results) == 0 {
			fmt.Fprintln(w, "There is no results")
			if n := a.Config().UI.Suggestions; n > 0 {
				for _, s := range a.CatalogState().Catalog.Suggest(args[1], n) {
					fmt.Fprintf(w, "  did you mean: %s\n", s)
				}
			}
			return nil
		}
		printMovies(w, results)
		return nil

	case "favorites":
		return runFavorites(ctx, a, args[1:], w)
	}

	return fmt.Errorf("unknown command %q", args[0])
}

func runFavorites(ctx context.Context, a *app.App, args []string, w io.Writer) error {
	if len(args) == 0 {
		printMovies(w, a.Favorites().Items())
		return nil
	}
	if len(args) == 1 && args[0] == "clear" {
		n, err := a.ClearFavorites()
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "cleared %d favorites\n", n)
		return nil
	}
	if len(args) != 2 {
		return errors.New("usage: flicks favorites [add|remove] <id> | clear")
	}

	id, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid movie id %q: %w", args[1], err)
	}

	switch args[0] {
	case "add":
		if err := loadCatalog(ctx, a); err != nil {
			return err
		}
		m, err := a.AddFavorite(id)
		if errors.Is(err, domain.ErrAlreadyFavorite) {
			fmt.Fprintln(w, "The movie is on your favorites already")
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "added %d %s\n", m.ID, m.Title)
		return nil

	case "remove":
		m, err := a.RemoveFavorite(id)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "removed %d %s\n", m.ID, m.Title)
		return nil
	}

	return fmt.Errorf("unknown favorites command %q", args[0])
}

func loadCatalog(ctx context.Context, a *app.App) error {
	st := a.LoadCatalog(ctx)
	if st.Status == app.CatalogFailed {
		return st.Err
	}
	return nil
}

func printMovies(w io.Writer, movies []domain.Movie) {
	for _, m := range movies {
		fmt.Fprintf(w, "%d\t%s\t%s\n", m.ID, m.Title, m.GenreLine())
	}
}
