package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	hostruntime "github.com/RamakrishnanGH/sqlopsstudio/app/hostd/runtime"
)

var (
	cfgFile   string
	workspace string
)

// Execute is the entry point for the CLI.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// NewRootCmd wires the cobra tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "exthostd",
		Short:         "Extension host for outline providers and checkable tree views",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "path to exthost.yaml")
	root.PersistentFlags().StringVar(&workspace, "workspace", "", "workspace directory (default: cwd)")

	root.AddCommand(newServeCmd())
	root.AddCommand(newSymbolsCmd())
	root.AddCommand(newInspectCmd())
	return root
}

func loadConfig() (hostruntime.Config, error) {
	cfg, err := hostruntime.LoadConfig(cfgFile)
	if err != nil {
		return cfg, err
	}
	if workspace != "" {
		cfg.Workspace = workspace
	}
	return cfg, nil
}
