package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hy4ri/taskdex/internal/config"
)

const configTemplate = `# taskdex configuration

store:
  # "rest" talks to a hosted PostgREST datastore, "sqlite" keeps items in a
  # local file.
  backend: rest
  url: "https://YOUR-PROJECT.supabase.co"
  collection: todos
  # The API key is read from TASKDEX_API_KEY, then the system keyring
  # ('taskdex login'), then this field.
  # api_key: ""
  # sqlite_path: ~/.local/share/taskdex/taskdex.db

ui:
  vim_mode: true
  # Terminals narrower than this show one panel at a time.
  wide_min_width: 100
  # Send a desktop notification for items due today on startup.
  notify: true
  # glamour style for item notes: auto, dark, light, notty...
  markdown_style: auto

# folders:
#   - { id: 1, name: Personal, icon: "👤" }
#   - { id: 2, name: Work, icon: "💼" }
#   - { id: 3, name: Shopping, icon: "🛒" }
#   - { id: 4, name: Projects, icon: "📁" }

log:
  level: info
`

type initOptions struct {
	Force bool
}

func addInit(topLevel *cobra.Command, g *globalOptions) {
	o := &initOptions{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a template config file.",
		Example: `
taskdex init
taskdex init --force
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := g.ConfigPath
			if path == "" {
				p, err := config.ConfigPath()
				if err != nil {
					return fmt.Errorf("failed to get config path: %w", err)
				}
				path = p
			}

			out := cmd.OutOrStdout()

			if _, err := os.Stat(path); err == nil && !o.Force {
				fmt.Fprintf(out, "Config file already exists: %s\n", path)
				fmt.Fprint(out, "Overwrite? [y/N]: ")

				var response string
				fmt.Fscanln(cmd.InOrStdin(), &response)

				if !strings.EqualFold(strings.TrimSpace(response), "y") {
					fmt.Fprintln(out, "Aborted.")
					return nil
				}
			}

			if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
				return fmt.Errorf("failed to create config directory: %w", err)
			}
			if err := os.WriteFile(path, []byte(configTemplate), 0600); err != nil {
				return fmt.Errorf("failed to write config file: %w", err)
			}

			fmt.Fprintf(out, "Config file created: %s\n\n", path)
			fmt.Fprintln(out, "Next steps:")
			fmt.Fprintln(out, "  1. Set store.url to your project URL, or set store.backend to sqlite")
			fmt.Fprintln(out, "  2. Run 'taskdex login' to store your API key")
			fmt.Fprintln(out, "  3. Run 'taskdex' to start")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&o.Force, "force", "f", false, "Overwrite an existing config without asking.")

	topLevel.AddCommand(cmd)
}
