package exthost

import (
	"context"
	"fmt"
	"log"
	"sync"

	"go.lsp.dev/protocol"

	"github.com/RamakrishnanGH/sqlopsstudio/outline"
)

// Built-in command names, matching what editor surfaces invoke.
const (
	CommandExecuteDocumentSymbols  = "_executeDocumentSymbolProvider"
	CommandExecuteWorkspaceSymbols = "_executeWorkspaceSymbolProvider"
)

// Handler executes a named command with already-unmarshalled arguments.
type Handler func(ctx context.Context, args []interface{}) (interface{}, error)

// Commands is the command invocation surface.
type Commands struct {
	logger *log.Logger

	mu       sync.RWMutex
	handlers map[string]Handler
}

// NewCommands returns an empty command registry.
func NewCommands(logger *log.Logger) *Commands {
	if logger == nil {
		logger = log.Default()
	}
	return &Commands{logger: logger, handlers: make(map[string]Handler)}
}

// Register binds a handler to a command name. Re-registering a name is a
// programming error and fails.
func (c *Commands) Register(name string, handler Handler) error {
	if name == "" || handler == nil {
		return fmt.Errorf("%w: command registration needs a name and a handler", ErrInvalidArgument)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.handlers[name]; ok {
		return fmt.Errorf("%w: command %q already registered", ErrInvalidArgument, name)
	}
	c.handlers[name] = handler
	return nil
}

// Execute runs a registered command.
func (c *Commands) Execute(ctx context.Context, name string, args []interface{}) (interface{}, error) {
	c.mu.RLock()
	handler, ok := c.handlers[name]
	c.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: unknown command %q", ErrInvalidArgument, name)
	}
	return handler(ctx, args)
}

// SymbolRecorder persists aggregated symbols for workspace-wide recall. Both
// methods tolerate concurrent use; a nil recorder disables persistence.
type SymbolRecorder interface {
	ReplaceForResource(ctx context.Context, resource string, entries []protocol.SymbolInformation) error
	Search(ctx context.Context, query string, limit int) ([]protocol.SymbolInformation, error)
}

// RegisterSymbolCommands installs the built-in symbol commands:
// _executeDocumentSymbolProvider resolves a resource to an open document and
// returns the aggregated outline, and _executeWorkspaceSymbolProvider reads
// back previously recorded symbols by name.
func RegisterSymbolCommands(cmds *Commands, agg *outline.Aggregator, docs *DocumentStore, recorder SymbolRecorder) error {
	docSymbols := func(ctx context.Context, args []interface{}) (interface{}, error) {
		resource, err := stringArg(args, 0)
		if err != nil {
			return nil, err
		}
		doc, err := docs.Resolve(resource)
		if err != nil {
			return nil, err
		}
		result, err := agg.Aggregate(ctx, doc, "")
		if err != nil {
			return nil, err
		}
		if recorder != nil {
			if err := recorder.ReplaceForResource(ctx, resource, result.Entries); err != nil {
				cmds.logger.Printf("commands: record symbols for %s: %v", resource, err)
			}
		}
		return result, nil
	}
	if err := cmds.Register(CommandExecuteDocumentSymbols, docSymbols); err != nil {
		return err
	}

	workspaceSymbols := func(ctx context.Context, args []interface{}) (interface{}, error) {
		if recorder == nil {
			return &outline.Result{}, nil
		}
		query, err := stringArg(args, 0)
		if err != nil {
			return nil, err
		}
		entries, err := recorder.Search(ctx, query, 100)
		if err != nil {
			return nil, err
		}
		return &outline.Result{Entries: entries}, nil
	}
	return cmds.Register(CommandExecuteWorkspaceSymbols, workspaceSymbols)
}

func stringArg(args []interface{}, index int) (string, error) {
	if index >= len(args) {
		return "", fmt.Errorf("%w: argument %d missing", ErrInvalidArgument, index)
	}
	value, ok := args[index].(string)
	if !ok {
		return "", fmt.Errorf("%w: argument %d must be a string", ErrInvalidArgument, index)
	}
	return value, nil
}
