package commands

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hy4ri/taskdex/internal/api"
	"github.com/hy4ri/taskdex/internal/auth"
	"github.com/hy4ri/taskdex/internal/config"
)

type loginOptions struct {
	Clear    bool
	NoVerify bool
}

func addLogin(topLevel *cobra.Command, g *globalOptions) {
	o := &loginOptions{}

	cmd := &cobra.Command{
		Use:   "login [api-key]",
		Short: "Store the datastore API key in the system keyring.",
		Example: `
taskdex login
echo "$KEY" | taskdex login
taskdex login --clear
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if o.Clear {
				if err := config.ClearAPIKey(); err != nil {
					return err
				}
				fmt.Fprintln(out, "API key removed.")
				return nil
			}

			var key string
			if len(args) == 1 {
				key = args[0]
			} else {
				fmt.Fprint(out, "API key: ")
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return errors.New("no API key given")
				}
				key = line
			}
			key = strings.TrimSpace(key)
			if key == "" {
				return errors.New("no API key given")
			}

			if !o.NoVerify {
				cfg, err := g.loadConfig()
				if err != nil {
					return err
				}
				if cfg.HasRemote() {
					client := api.NewClient(cfg.Store.URL, key)
					if err := auth.Verify(cmd.Context(), client, cfg.Store.Collection); err != nil {
						return err
					}
				}
			}

			if err := config.SaveAPIKey(key); err != nil {
				return err
			}
			fmt.Fprintln(out, "API key saved.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&o.Clear, "clear", false, "Remove the stored API key.")
	cmd.Flags().BoolVar(&o.NoVerify, "no-verify", false, "Save the key without checking it against the datastore.")

	topLevel.AddCommand(cmd)
}
