package cmd

import (
	"github.com/spf13/cobra"

	hostruntime "github.com/RamakrishnanGH/sqlopsstudio/app/hostd/runtime"
	"github.com/RamakrishnanGH/sqlopsstudio/app/inspect/tui"
	"github.com/RamakrishnanGH/sqlopsstudio/exthost"
	"github.com/RamakrishnanGH/sqlopsstudio/treeview"
)

func newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect [dir]",
		Short: "Browse the workspace tree through the tree-view bridge",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if len(args) == 1 {
				cfg.Workspace = args[0]
			}
			// The TUI owns the terminal; keep logs out of it.
			if cfg.LogPath == "" {
				cfg.LogPath = ".exthostd/exthostd.log"
			}
			rt, err := hostruntime.New(cfg)
			if err != nil {
				return err
			}
			defer rt.Close()

			view, err := treeview.NewTreeView(0, hostruntime.ComponentWorkspaceExplorer, treeview.Options{
				Provider: rt.Explorer,
				Logger:   rt.Logger,
			})
			if err != nil {
				return err
			}
			defer view.Dispose()
			title := exthost.ViewKey(0, hostruntime.ComponentWorkspaceExplorer) + "  " + rt.Explorer.Root()
			return tui.Run(cmd.Context(), view, title)
		},
	}
	return cmd
}
