package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/chrisdamba/chefmenu/internal/catalog"
	"github.com/chrisdamba/chefmenu/internal/factories"
	"github.com/chrisdamba/chefmenu/internal/logger"
	"github.com/chrisdamba/chefmenu/internal/models"
	"github.com/chrisdamba/chefmenu/internal/output"
	"github.com/chrisdamba/chefmenu/internal/session"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// app holds what every command needs once config has been read.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     *models.Config
	log     zerolog.Logger
	stderr  io.Writer
}

// flag name -> config key
var persistentFlagKeys = map[string]string{
	"log-level":     "log_level",
	"log-format":    "log_format",
	"currency":      "currency_symbol",
	"sample-items":  "sample_items",
	"seed":          "seed",
	"menu-file":     "menu_file",
	"output-format": "output_format",
	"output-path":   "output_path",
	"output-folder": "output_folder",
}

func NewRootCmd() *cobra.Command {
	a := &app{v: viper.New(), stderr: os.Stderr}

	rootCmd := &cobra.Command{
		Use:   "chefmenu",
		Short: "Manage a restaurant menu for one session",
		Long: `chefmenu keeps a restaurant menu in memory for the length of a session.
It starts from the house menu, lets you add and remove dishes, filter by
course and see the average price of every course. Run without a
subcommand to start an interactive session.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.stderr = cmd.ErrOrStderr()
			return a.initConfig()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runShell(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is $HOME/.chefmenu.yaml)")
	flags.String("log-level", "info", "Log level (debug, info, warn, error)")
	flags.String("log-format", logger.FormatConsole, "Log format (console or json)")
	flags.String("currency", "R", "Currency symbol shown before prices")
	flags.Int("sample-items", 0, "Number of generated sample dishes added to the house menu")
	flags.Int64("seed", 42, "Random seed for generated sample dishes")
	flags.String("menu-file", "", "CSV file replacing the house menu")
	flags.String("output-format", models.OutputFormatNone, "Where change events and exports go (none, console, json, csv, parquet)")
	flags.String("output-path", ".", "Base directory for file outputs")
	flags.String("output-folder", "export", "Folder under output-path for file outputs")

	for name, key := range persistentFlagKeys {
		cobra.CheckErr(a.v.BindPFlag(key, flags.Lookup(name)))
	}

	rootCmd.AddCommand(
		newListCmd(a),
		newAveragesCmd(a),
		newFilterCmd(a),
		newAddCmd(a),
		newRemoveCmd(a),
		newExportCmd(a),
		newShellCmd(a),
	)
	return rootCmd
}

func (a *app) initConfig() error {
	cfg, err := models.LoadConfig(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	log, err := logger.New(a.stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.log = log
	if used := a.v.ConfigFileUsed(); used != "" {
		a.log.Debug().Str("file", used).Msg("using config file")
	}
	return nil
}

// newSession builds the catalog for this run and wraps it in a session
// writing events to the configured output.
func (a *app) newSession(stdout io.Writer) (*session.Session, error) {
	store, err := a.newStore()
	if err != nil {
		return nil, err
	}

	dest, err := output.NewOutputDestination(a.cfg, stdout)
	if err != nil {
		return nil, err
	}
	return session.New(store, dest, logger.Component(a.log, "session")), nil
}

func (a *app) newStore() (*catalog.Store, error) {
	var store *catalog.Store
	var err error

	if a.cfg.MenuFile != "" {
		drafts, err := models.LoadMenuDrafts(a.cfg.MenuFile)
		if err != nil {
			return nil, fmt.Errorf("error loading menu file: %w", err)
		}
		store, err = catalog.NewStore(nil)
		if err != nil {
			return nil, err
		}
		if err := addDrafts(store, drafts, "menu file row"); err != nil {
			return nil, err
		}
	} else {
		store, err = catalog.NewStore(factories.SeedMenu())
		if err != nil {
			return nil, err
		}
	}

	if a.cfg.SampleItems > 0 {
		mf := factories.NewMenuItemFactory(a.cfg.Seed)
		if err := addDrafts(store, mf.CreateDrafts(a.cfg.SampleItems), "sample item"); err != nil {
			return nil, err
		}
	}

	a.log.Debug().Int("items", store.Len()).Msg("catalog ready")
	return store, nil
}

func addDrafts(store *catalog.Store, drafts []models.Draft, what string) error {
	for i, d := range drafts {
		if _, err := store.AddItem(d); err != nil {
			return fmt.Errorf("%s %d: %w", what, i+1, err)
		}
	}
	return nil
}

func (a *app) renderer() session.Renderer {
	return session.Renderer{Currency: a.cfg.CurrencySymbol}
}

// closeSession closes the output and folds its error into err.
func closeSession(s *session.Session, err *error) {
	if cerr := s.Close(); cerr != nil && *err == nil {
		*err = fmt.Errorf("error closing output: %w", cerr)
	}
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
