package server

import (
	"context"
	"encoding/json"
	"io"
	"log"

	"github.com/sourcegraph/jsonrpc2"

	"github.com/RamakrishnanGH/sqlopsstudio/treeview"
)

// RefreshFunc receives $refreshDataProvider notifications on the host side.
type RefreshFunc func(RefreshDataProviderParams)

// Client is the host-side counterpart of the extension-host surface. The
// inspector TUI and tests use it; a real editor would speak the same wire
// format natively.
type Client struct {
	conn      *jsonrpc2.Conn
	onRefresh RefreshFunc
	logger    *log.Logger
}

// NewClient attaches a host client to rwc. onRefresh may be nil when the
// caller does not care about refresh pushes.
func NewClient(ctx context.Context, rwc io.ReadWriteCloser, onRefresh RefreshFunc, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.Default()
	}
	client := &Client{onRefresh: onRefresh, logger: logger}
	stream := jsonrpc2.NewBufferedStream(rwc, jsonrpc2.VSCodeObjectCodec{})
	handler := jsonrpc2.HandlerWithError(func(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) (interface{}, error) {
		if req.Method == MethodRefreshDataProvider && req.Notif {
			var params RefreshDataProviderParams
			if req.Params != nil {
				if err := json.Unmarshal(*req.Params, &params); err != nil {
					client.logger.Printf("host client: bad refresh params: %v", err)
					return nil, nil
				}
			}
			if client.onRefresh != nil {
				client.onRefresh(params)
			}
			return nil, nil
		}
		if req.Notif {
			return nil, nil
		}
		return nil, &jsonrpc2.Error{Code: jsonrpc2.CodeMethodNotFound, Message: "method not handled"}
	})
	client.conn = jsonrpc2.NewConn(ctx, stream, handler)
	return client
}

// CreateTreeView binds a registered component to a new view and returns the
// composite view id.
func (c *Client) CreateTreeView(ctx context.Context, handle int, componentID string) (string, error) {
	var viewID string
	err := c.conn.Call(ctx, MethodCreateTreeView, CreateTreeViewParams{Handle: handle, ComponentID: componentID}, &viewID)
	return viewID, err
}

// GetChildren fetches the display items under a node (or the roots).
func (c *Client) GetChildren(ctx context.Context, viewID string, handle treeview.TreeItemHandle) ([]treeview.ComponentItem, error) {
	var items []treeview.ComponentItem
	err := c.conn.Call(ctx, MethodGetChildren, GetChildrenParams{TreeViewID: viewID, TreeItemHandle: handle}, &items)
	return items, err
}

// OnNodeCheckedChanged reports a checkbox toggle.
func (c *Client) OnNodeCheckedChanged(ctx context.Context, viewID string, handle treeview.TreeItemHandle, checked bool) error {
	var ok bool
	return c.conn.Call(ctx, MethodOnNodeCheckedChanged, CheckedChangedParams{TreeViewID: viewID, TreeItemHandle: handle, Checked: checked}, &ok)
}

// DisposeTreeView tears one view down.
func (c *Client) DisposeTreeView(ctx context.Context, viewID string) error {
	var ok bool
	return c.conn.Call(ctx, MethodDisposeTreeView, DisposeTreeViewParams{TreeViewID: viewID}, &ok)
}

// ExecuteCommand invokes a named command, decoding the reply into result
// when non-nil.
func (c *Client) ExecuteCommand(ctx context.Context, command string, args []interface{}, result interface{}) error {
	return c.conn.Call(ctx, MethodExecuteCommand, ExecuteCommandParams{Command: command, Args: args}, result)
}

// Close shuts the connection down.
func (c *Client) Close() error {
	return c.conn.Close()
}

// DisconnectNotify signals when the peer goes away.
func (c *Client) DisconnectNotify() <-chan struct{} {
	return c.conn.DisconnectNotify()
}
