package commands

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/hy4ri/taskdex/internal/todo"
)

func addToggle(topLevel *cobra.Command, g *globalOptions) {
	var id int64

	cmd := &cobra.Command{
		Use:     "toggle <id>",
		Aliases: []string{"done"},
		Short:   "Flip the done flag of an item.",
		Example: `
taskdex toggle 12
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("requires an item id")
			}
			v, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid item id %q", args[0])
			}
			id = v
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := g.loadConfig()
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
			_, updated, ok := todo.Toggle(items, id)
			if !ok {
				return fmt.Errorf("no item with id %d", id)
			}

			if err := st.SetDone(cmd.Context(), id, updated.IsDone); err != nil {
				return fmt.Errorf("failed to update item: %w", err)
			}

			state := "Not done"
			if updated.IsDone {
				state = "Done"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", state, updated.Title)
			return nil
		},
	}

	topLevel.AddCommand(cmd)
}
