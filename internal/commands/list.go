package commands

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/hy4ri/taskdex/internal/todo"
)

type listOptions struct {
	Scope    string
	OpenOnly bool
}

func addList(topLevel *cobra.Command, g *globalOptions) {
	o := &listOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Print the items of a scope.",
		Example: `
taskdex list
taskdex list --scope today
taskdex list --scope Work --open
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			folders := cfg.TodoFolders()

			scope, err := todo.ParseScope(o.Scope, folders)
			if err != nil {
				return err
			}

			st, closeStore, err := openStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer closeStore()

			items, err := st.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list items: %w", err)
			}

			now := time.Now()
			visible := todo.Filter(items, scope, now)
			if o.OpenOnly {
				open := visible[:0]
				for _, it := range visible {
					if !it.IsDone {
						open = append(open, it)
					}
				}
				visible = open
			}

			bold := color.New(color.Bold)
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, bold.Sprint(todo.LabelFor(scope, folders)))
			if len(visible) == 0 {
				fmt.Fprintln(out, "No items")
				return nil
			}

			tbl := uitable.New()
			tbl.Separator = "  "
			tbl.MaxColWidth = 60
			tbl.AddRow(bold.Sprint("ID"), "", bold.Sprint("TITLE"), bold.Sprint("DATE"), bold.Sprint("FOLDER"))
			for _, it := range visible {
				tbl.AddRow(it.ID, checkbox(it.IsDone), title(it), dateCell(it, now), todo.FolderName(folders, it.FolderID))
			}
			tbl.RightAlign(0)

			fmt.Fprintln(out, tbl)
			return nil
		},
	}

	cmd.Flags().StringVarP(&o.Scope, "scope", "s", "all",
		`Scope to print: "today", "week", "all", or a folder name or id.`)
	cmd.Flags().BoolVar(&o.OpenOnly, "open", false, "Hide done items.")

	topLevel.AddCommand(cmd)
}

func checkbox(done bool) string {
	if done {
		return color.GreenString("[x]")
	}
	return "[ ]"
}

func title(it todo.Item) string {
	if it.IsDone {
		return color.New(color.Faint).Sprint(it.Title)
	}
	return it.Title
}

// dateCell colors overdue dates red and today's date green.
func dateCell(it todo.Item, now time.Time) string {
	d, ok := it.DateIn(now.Location())
	if !ok {
		return it.Date
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch {
	case it.IsDone:
		return it.Date
	case d.Equal(today):
		return color.GreenString(it.Date)
	case d.Before(today):
		return color.RedString(it.Date)
	}
	return it.Date
}
