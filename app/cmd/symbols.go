package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.lsp.dev/protocol"

	hostruntime "github.com/RamakrishnanGH/sqlopsstudio/app/hostd/runtime"
	"github.com/RamakrishnanGH/sqlopsstudio/exthost"
	"github.com/RamakrishnanGH/sqlopsstudio/outline"
)

func newSymbolsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "symbols <file>",
		Short: "Print the aggregated outline of a source file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			rt, err := hostruntime.New(cfg)
			if err != nil {
				return err
			}
			defer rt.Close()

			path, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}
			text, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			resource := "file://" + filepath.ToSlash(path)
			rt.Documents.Open(&outline.Document{
				URI:        protocol.DocumentURI(resource),
				LanguageID: languageIDFor(path),
				Version:    1,
				Text:       string(text),
			})

			raw, err := rt.Commands.Execute(cmd.Context(), exthost.CommandExecuteDocumentSymbols, []interface{}{resource})
			if err != nil {
				return err
			}
			result, ok := raw.(*outline.Result)
			if !ok {
				return fmt.Errorf("unexpected command result %T", raw)
			}
			for _, entry := range result.Entries {
				rng := entry.Location.Range
				container := ""
				if entry.ContainerName != "" {
					container = " (" + entry.ContainerName + ")"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%4d:%-3d %-12s %s%s\n",
					rng.Start.Line+1, rng.Start.Character+1, symbolKindLabel(entry.Kind), entry.Name, container)
			}
			return nil
		},
	}
	return cmd
}

func languageIDFor(path string) string {
	switch filepath.Ext(path) {
	case ".go":
		return "go"
	default:
		return "plaintext"
	}
}

func symbolKindLabel(kind protocol.SymbolKind) string {
	switch kind {
	case protocol.SymbolKindFunction:
		return "func"
	case protocol.SymbolKindMethod:
		return "method"
	case protocol.SymbolKindStruct:
		return "struct"
	case protocol.SymbolKindInterface:
		return "interface"
	case protocol.SymbolKindClass:
		return "type"
	case protocol.SymbolKindConstant:
		return "const"
	case protocol.SymbolKindVariable:
		return "var"
	default:
		return fmt.Sprintf("kind(%d)", int(kind))
	}
}
