package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hy4ri/taskdex/internal/todo"
)

type addOptions struct {
	Date    string
	Folder  string
	Content string
}

func addAdd(topLevel *cobra.Command, g *globalOptions) {
	o := &addOptions{}

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add an item to a folder.",
		Example: `
taskdex add buy milk
taskdex add "quarterly report" --folder Work --date 2025-06-30
`,
		Args: func(_ *cobra.Command, args []string) error {
			if strings.TrimSpace(strings.Join(args, " ")) == "" {
				return errors.New("requires a title")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			folders := cfg.TodoFolders()

			n := todo.NewItem{
				Title:   strings.TrimSpace(strings.Join(args, " ")),
				Content: o.Content,
				Date:    strings.TrimSpace(o.Date),
			}
			if !todo.ValidDate(n.Date) {
				return fmt.Errorf("invalid date %q, expected %s", o.Date, todo.DateLayout)
			}

			if o.Folder == "" {
				if len(folders) == 0 {
					return errors.New("no folders configured")
				}
				n.FolderID = folders[0].ID
			} else {
				scope, err := todo.ParseScope(o.Folder, folders)
				if err != nil {
					return err
				}
				id, ok := scope.FolderID()
				if !ok {
					return fmt.Errorf("%q is not a folder", o.Folder)
				}
				n.FolderID = id
			}

			st, closeStore, err := openStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer closeStore()

			it, err := st.Create(cmd.Context(), n)
			if err != nil {
				return fmt.Errorf("failed to add item: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added %d: %s (%s)\n", it.ID, it.Title, todo.FolderName(folders, it.FolderID))
			return nil
		},
	}

	cmd.Flags().StringVarP(&o.Date, "date", "d", "", "Due date, example: --date=2025-06-30.")
	cmd.Flags().StringVarP(&o.Folder, "folder", "f", "", "Folder name or id (default the first folder).")
	cmd.Flags().StringVarP(&o.Content, "content", "c", "", "Notes for the item, rendered as markdown.")

	topLevel.AddCommand(cmd)
}
