package runtime

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/RamakrishnanGH/sqlopsstudio/exthost"
	"github.com/RamakrishnanGH/sqlopsstudio/outline"
	"github.com/RamakrishnanGH/sqlopsstudio/persistence"
	"github.com/RamakrishnanGH/sqlopsstudio/providers"
	"github.com/RamakrishnanGH/sqlopsstudio/server"
)

// ComponentWorkspaceExplorer is the component id the built-in filesystem
// provider registers under.
const ComponentWorkspaceExplorer = "workspaceExplorer"

// Runtime assembles the extension-host surface: provider registry,
// aggregator, document store, commands, symbol store, and the RPC server,
// all wired to one logger and config.
type Runtime struct {
	Config    Config
	Logger    *log.Logger
	Registry  *outline.Registry
	Agg       *outline.Aggregator
	Documents *exthost.DocumentStore
	Commands  *exthost.Commands
	Store     *persistence.SymbolStore
	Server    *server.Server
	Explorer  *providers.FSTreeProvider

	logFile io.Closer
}

// New builds a runtime from cfg. The symbol store directory is created on
// demand; pass an empty SymbolDBPath to run without persistence.
func New(cfg Config) (*Runtime, error) {
	if err := cfg.Normalize(); err != nil {
		return nil, err
	}

	logger := log.Default()
	var logFile io.Closer
	if cfg.LogPath != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogPath), 0o755); err != nil {
			return nil, fmt.Errorf("prepare log dir: %w", err)
		}
		file, err := os.OpenFile(cfg.LogPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log: %w", err)
		}
		logger = log.New(file, "exthostd ", log.LstdFlags)
		logFile = file
	}

	registry := outline.NewRegistry()
	registry.Register("go", providers.NewGoOutlineProvider())
	agg := outline.NewAggregator(registry, logger)

	var store *persistence.SymbolStore
	if cfg.SymbolDBPath != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.SymbolDBPath), 0o755); err != nil {
			return nil, fmt.Errorf("prepare symbol db dir: %w", err)
		}
		opened, err := persistence.NewSymbolStore(cfg.SymbolDBPath)
		if err != nil {
			return nil, fmt.Errorf("open symbol store: %w", err)
		}
		store = opened
	}

	documents := exthost.NewDocumentStore()
	commands := exthost.NewCommands(logger)
	var recorder exthost.SymbolRecorder
	if store != nil {
		recorder = store
	}
	if err := exthost.RegisterSymbolCommands(commands, agg, documents, recorder); err != nil {
		return nil, err
	}

	explorer, err := providers.NewFSTreeProvider(cfg.Workspace)
	if err != nil {
		return nil, err
	}
	srv := server.NewServer(commands, logger)
	if err := srv.RegisterComponent(ComponentWorkspaceExplorer, exthost.TreeViewOptions{Provider: explorer}); err != nil {
		return nil, err
	}

	return &Runtime{
		Config:    cfg,
		Logger:    logger,
		Registry:  registry,
		Agg:       agg,
		Documents: documents,
		Commands:  commands,
		Store:     store,
		Server:    srv,
		Explorer:  explorer,
		logFile:   logFile,
	}, nil
}

// Close releases the symbol store and the log file.
func (rt *Runtime) Close() error {
	var err error
	if rt.Store != nil {
		err = rt.Store.Close()
	}
	if rt.logFile != nil {
		if cerr := rt.logFile.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
