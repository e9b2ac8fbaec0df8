package commands

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/hy4ri/taskdex/internal/config"
	"github.com/hy4ri/taskdex/internal/layout"
	"github.com/hy4ri/taskdex/internal/logging"
	"github.com/hy4ri/taskdex/internal/prefs"
	"github.com/hy4ri/taskdex/internal/todo"
	"github.com/hy4ri/taskdex/internal/tui"
	"github.com/hy4ri/taskdex/internal/tui/styles"
)

type uiOptions struct {
	Scope string
}

func addUIArgs(cmd *cobra.Command, o *uiOptions) {
	cmd.Flags().StringVar(&o.Scope, "scope", "",
		`Scope to open: "today", "week", "all", or a folder name or id.`)
}

// runUI starts the TUI and blocks until it exits.
func runUI(ctx context.Context, g *globalOptions, o *uiOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}

	logPath, err := cfg.LogPath()
	if err != nil {
		return err
	}
	logger, logFile, err := logging.Open(logPath, logging.Options{
		Level:           cfg.Log.Level,
		Prefix:          "taskdex",
		ReportTimestamp: true,
	})
	if err != nil {
		return err
	}
	defer logFile.Close()

	styles.ApplyColorProfile()

	folders := cfg.TodoFolders()
	scope := todo.NoScope()
	if o.Scope != "" {
		if scope, err = todo.ParseScope(o.Scope, folders); err != nil {
			return err
		}
	}

	st, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	var kv layout.KV = prefs.NewMem()
	if dir, err := config.PrefsDir(); err != nil {
		logger.Warn("layout preferences will not persist", "err", err)
	} else if disk, err := prefs.OpenDisk(dir); err != nil {
		logger.Warn("layout preferences will not persist", "dir", dir, "err", err)
	} else {
		kv = disk
	}

	lm := layout.New(layout.Load(kv), kv, logger)
	lm.SetWideMinWidth(cfg.UI.WideMinWidth)

	logger.Info("starting", "backend", cfg.Store.Backend, "folders", len(folders), "scope", scope)

	app := tui.NewApp(tui.Options{
		Store:         st,
		Folders:       folders,
		Layout:        lm,
		Logger:        logger,
		InitialScope:  scope,
		VimMode:       cfg.UI.VimMode,
		Notify:        cfg.UI.Notify,
		MarkdownStyle: styles.MarkdownStyle(cfg.UI.MarkdownStyle),
	})
	p := tea.NewProgram(app,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}
