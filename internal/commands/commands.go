// Package commands defines the taskdex command line.
package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hy4ri/taskdex/internal/api"
	"github.com/hy4ri/taskdex/internal/auth"
	"github.com/hy4ri/taskdex/internal/config"
	"github.com/hy4ri/taskdex/internal/store"
	"github.com/hy4ri/taskdex/internal/todo"
)

// globalOptions are flags shared by every command.
type globalOptions struct {
	ConfigPath string
}

// loadConfig reads the config file named by --config, or the default one.
func (o *globalOptions) loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if o.ConfigPath != "" {
		cfg, err = config.LoadFrom(o.ConfigPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// New creates the root command. Running it without a subcommand opens the
// TUI.
func New() *cobra.Command {
	g := &globalOptions{}
	ui := &uiOptions{}

	cmd := &cobra.Command{
		Use:   "taskdex",
		Short: "Folder-based todo lists in the terminal.",
		Long: `taskdex is a three-panel terminal todo manager.

Folders and smart views (Today, This Week, All) sit on the left, the items
of the selected scope in the middle and the selected item on the right.
Narrow terminals show one panel at a time.`,
		Example: `
taskdex
taskdex --scope today
taskdex list --scope week
`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runUI(cmd.Context(), g, ui)
		},
	}

	cmd.PersistentFlags().StringVar(&g.ConfigPath, "config", "",
		"Path to the config file (default ~/.config/taskdex/config.yaml).")
	addUIArgs(cmd, ui)

	AddCommands(cmd, g)
	return cmd
}

// AddCommands registers every subcommand on topLevel.
func AddCommands(topLevel *cobra.Command, g *globalOptions) {
	addInit(topLevel, g)
	addList(topLevel, g)
	addAdd(topLevel, g)
	addToggle(topLevel, g)
	addLogin(topLevel, g)
	addVersion(topLevel)
}

// openStore opens the backend selected in cfg. The returned func releases
// it.
func openStore(ctx context.Context, cfg *config.Config) (todo.Store, func() error, error) {
	switch cfg.Store.Backend {
	case config.BackendSQLite:
		path, err := cfg.SQLitePath()
		if err != nil {
			return nil, nil, err
		}
		db, err := store.OpenSQLite(ctx, path)
		if err != nil {
			return nil, nil, err
		}
		return db, db.Close, nil

	default:
		if !cfg.HasRemote() {
			return nil, nil, fmt.Errorf("store.url is not set. Run 'taskdex init' to create a config file")
		}
		key, err := auth.ResolveKey(cfg)
		if err != nil {
			return nil, nil, err
		}
		client := api.NewClient(cfg.Store.URL, key)
		return api.NewTodos(client, cfg.Store.Collection), func() error { return nil }, nil
	}
}
