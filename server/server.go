package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"sync"

	"github.com/sourcegraph/jsonrpc2"

	"github.com/RamakrishnanGH/sqlopsstudio/exthost"
	"github.com/RamakrishnanGH/sqlopsstudio/treeview"
)

// Server exposes the extension-host surface over JSON-RPC. Component
// providers are registered in-process ahead of time; the host then binds
// them to concrete views with $createTreeView. Each connection gets its own
// view manager, so two hosts never share a cache.
type Server struct {
	logger   *log.Logger
	commands *exthost.Commands

	mu         sync.RWMutex
	components map[string]exthost.TreeViewOptions
}

// NewServer builds a server around a command surface.
func NewServer(commands *exthost.Commands, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		logger:     logger,
		commands:   commands,
		components: make(map[string]exthost.TreeViewOptions),
	}
}

// RegisterComponent makes a data provider available under a component id for
// later $createTreeView calls.
func (s *Server) RegisterComponent(componentID string, opts exthost.TreeViewOptions) error {
	if componentID == "" {
		return fmt.Errorf("%w: component id required", exthost.ErrInvalidArgument)
	}
	if opts.Provider == nil {
		return fmt.Errorf("%w: component %s requires a data provider", exthost.ErrInvalidArgument, componentID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.components[componentID] = opts
	return nil
}

func (s *Server) component(componentID string) (exthost.TreeViewOptions, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	opts, ok := s.components[componentID]
	return opts, ok
}

// Serve runs one host connection over rwc until the peer disconnects or ctx
// is cancelled. The VSCode object codec frames messages with Content-Length
// headers, same as the editor wire format.
func (s *Server) Serve(ctx context.Context, rwc io.ReadWriteCloser) error {
	proxy := NewConnProxy()
	manager := exthost.NewTreeViewManager(proxy, s.logger)
	defer manager.DisposeAll()

	stream := jsonrpc2.NewBufferedStream(rwc, jsonrpc2.VSCodeObjectCodec{})
	handler := jsonrpc2.HandlerWithError(func(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) (interface{}, error) {
		return s.dispatch(ctx, manager, req)
	})
	conn := jsonrpc2.NewConn(ctx, stream, handler)
	proxy.Bind(conn)

	select {
	case <-ctx.Done():
		_ = conn.Close()
		return ctx.Err()
	case <-conn.DisconnectNotify():
		return nil
	}
}

// ServeStdio runs the host connection over stdin/stdout.
func (s *Server) ServeStdio(ctx context.Context) error {
	return s.Serve(ctx, stdioReadWriteCloser{reader: os.Stdin, writer: os.Stdout})
}

// ListenAndServe accepts host connections on a TCP address, one session per
// connection.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	defer listener.Close()
	s.logger.Printf("extension host listening on %s", listener.Addr())

	go func() {
		<-ctx.Done()
		listener.Close()
	}()
	for {
		conn, err := listener.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}
		go func() {
			if err := s.Serve(ctx, conn); err != nil && !errors.Is(err, context.Canceled) {
				s.logger.Printf("session %s: %v", conn.RemoteAddr(), err)
			}
		}()
	}
}

func (s *Server) dispatch(ctx context.Context, manager *exthost.TreeViewManager, req *jsonrpc2.Request) (interface{}, error) {
	switch req.Method {
	case MethodCreateTreeView:
		var params CreateTreeViewParams
		if err := decodeParams(req, &params); err != nil {
			return nil, err
		}
		opts, ok := s.component(params.ComponentID)
		if !ok {
			return nil, rpcError(fmt.Errorf("%w: unknown component %q", exthost.ErrInvalidArgument, params.ComponentID))
		}
		if _, err := manager.CreateTreeView(params.Handle, params.ComponentID, opts); err != nil {
			return nil, rpcError(err)
		}
		return exthost.ViewKey(params.Handle, params.ComponentID), nil

	case MethodGetChildren:
		var params GetChildrenParams
		if err := decodeParams(req, &params); err != nil {
			return nil, err
		}
		items, err := manager.GetChildren(ctx, params.TreeViewID, params.TreeItemHandle)
		if err != nil {
			return nil, rpcError(err)
		}
		return items, nil

	case MethodOnNodeCheckedChanged:
		var params CheckedChangedParams
		if err := decodeParams(req, &params); err != nil {
			return nil, err
		}
		if err := manager.OnNodeCheckedChanged(ctx, params.TreeViewID, params.TreeItemHandle, params.Checked); err != nil {
			return nil, rpcError(err)
		}
		return true, nil

	case MethodDisposeTreeView:
		var params DisposeTreeViewParams
		if err := decodeParams(req, &params); err != nil {
			return nil, err
		}
		manager.DisposeTreeView(params.TreeViewID)
		return true, nil

	case MethodExecuteCommand:
		var params ExecuteCommandParams
		if err := decodeParams(req, &params); err != nil {
			return nil, err
		}
		result, err := s.commands.Execute(ctx, params.Command, params.Args)
		if err != nil {
			return nil, rpcError(err)
		}
		return result, nil

	default:
		return nil, &jsonrpc2.Error{Code: jsonrpc2.CodeMethodNotFound, Message: fmt.Sprintf("method %q not handled", req.Method)}
	}
}

func decodeParams(req *jsonrpc2.Request, out interface{}) error {
	if req.Params == nil {
		return &jsonrpc2.Error{Code: jsonrpc2.CodeInvalidParams, Message: "params required"}
	}
	if err := json.Unmarshal(*req.Params, out); err != nil {
		return &jsonrpc2.Error{Code: jsonrpc2.CodeInvalidParams, Message: err.Error()}
	}
	return nil
}

// rpcError maps the host error taxonomy onto JSON-RPC codes while keeping
// the human-readable message intact.
func rpcError(err error) *jsonrpc2.Error {
	code := int64(jsonrpc2.CodeInternalError)
	switch {
	case errors.Is(err, exthost.ErrInvalidArgument),
		errors.Is(err, treeview.ErrProviderRequired),
		errors.Is(err, treeview.ErrCapabilityMissing):
		code = jsonrpc2.CodeInvalidParams
	case errors.Is(err, exthost.ErrNotRegistered),
		errors.Is(err, treeview.ErrViewDisposed):
		code = jsonrpc2.CodeInvalidRequest
	}
	return &jsonrpc2.Error{Code: code, Message: err.Error()}
}

type stdioReadWriteCloser struct {
	reader io.Reader
	writer io.Writer
}

func (s stdioReadWriteCloser) Read(p []byte) (int, error)  { return s.reader.Read(p) }
func (s stdioReadWriteCloser) Write(p []byte) (int, error) { return s.writer.Write(p) }

func (s stdioReadWriteCloser) Close() error {
	var err error
	if closer, ok := s.reader.(io.Closer); ok {
		err = closer.Close()
	}
	if closer, ok := s.writer.(io.Closer); ok {
		if cerr := closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
