// Kochbuch — a recipe catalog with a shopping list and an ingredient editor.
//
// Usage:
//
//	kochbuch [--catalog file] [--locale tag] [--verbose] [--quiet]
//	kochbuch recipes [--category c]
//	kochbuch categories
//	kochbuch shop <recipe>...
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hammamikhairi/kochbuch/internal/config"
	"github.com/hammamikhairi/kochbuch/internal/engine"
	"github.com/hammamikhairi/kochbuch/internal/logger"
	"github.com/hammamikhairi/kochbuch/internal/recipe"
	"github.com/hammamikhairi/kochbuch/internal/storage"
)

func main() {
	config.LoadDotEnv()
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// app holds the dependencies shared by every command. It is filled in by
// the root command's PersistentPreRunE.
type app struct {
	v          *viper.Viper
	configFile string
	verbose    bool
	quiet      bool

	cfg     *config.Config
	log     *logger.Logger
	logFile io.Closer
	recipes *recipe.MemorySource
	store   *storage.MemoryStore
	engine  *engine.Engine
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:          "kochbuch",
		Short:        "Recipe catalog with shopping list and ingredient editor",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runShell(cmd.Context())
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "config file (default: ./kochbuch.yaml or $XDG_CONFIG_HOME/kochbuch/kochbuch.yaml)")
	flags.String("catalog", "", "YAML recipe catalog to load and save (empty: built-in recipes)")
	flags.String("locale", "", "language used to sort shopping lists (default \"de\")")
	flags.String("log-file", "", "file to write logs to (use \"stderr\" to log to console)")
	flags.BoolVar(&a.verbose, "verbose", false, "enable verbose/debug logging")
	flags.BoolVar(&a.quiet, "quiet", false, "disable all logging")

	// A bound flag wins over file and env only when it was set.
	_ = a.v.BindPFlag(config.KeyCatalog, flags.Lookup("catalog"))
	_ = a.v.BindPFlag(config.KeyLocale, flags.Lookup("locale"))
	_ = a.v.BindPFlag(config.KeyLogFile, flags.Lookup("log-file"))

	root.AddCommand(
		newRecipesCmd(a),
		newCategoriesCmd(a),
		newShopCmd(a),
	)
	return root
}

// setup resolves config, opens the log and wires the recipe source,
// session store and engine.
func (a *app) setup() error {
	cfg, err := config.Load(a.v, a.configFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	level := cfg.LogLevel()
	if a.verbose {
		level = logger.LevelVerbose
	}
	if a.quiet {
		level = logger.LevelOff
	}

	// Direct logs to a file by default so the shell stays clean.
	var logOut io.Writer = os.Stderr
	if path := cfg.Log.File; path != "" && path != "stderr" && level != logger.LevelOff {
		if dir := filepath.Dir(path); dir != "" && dir != "." {
			_ = os.MkdirAll(dir, 0o755)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not open log file %s: %v (falling back to stderr)\n", path, err)
		} else {
			logOut = f
			a.logFile = f
		}
	}
	a.log = logger.New(level, logOut)

	a.recipes, err = openCatalog(cfg.Catalog, a.log)
	if err != nil {
		return err
	}
	a.store = storage.NewMemoryStore(a.log)
	a.engine = engine.New(a.recipes, a.store, a.log,
		engine.WithCollation(cfg.Language()),
	)
	a.log.Debug("config: catalog=%q locale=%s", cfg.Catalog, cfg.Language())
	return nil
}

func (a *app) close() {
	if a.logFile != nil {
		_ = a.logFile.Close()
		a.logFile = nil
	}
}

// openCatalog loads path into a recipe source that writes saves back to
// it. A missing file starts from the built-in recipes; an empty path
// keeps everything in memory.
func openCatalog(path string, log *logger.Logger) (*recipe.MemorySource, error) {
	if path == "" {
		return recipe.NewMemorySource(log), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		log.Info("catalog %s does not exist yet, starting from built-in recipes", path)
		return recipe.NewMemorySource(log, recipe.WithCatalogFile(path)), nil
	}
	recipes, err := recipe.LoadCatalog(path)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	return recipe.NewMemorySource(log,
		recipe.WithRecipes(recipes),
		recipe.WithCatalogFile(path),
	), nil
}
