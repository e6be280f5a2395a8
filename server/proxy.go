package server

import (
	"context"
	"errors"
	"sync"

	"github.com/sourcegraph/jsonrpc2"

	"github.com/RamakrishnanGH/sqlopsstudio/treeview"
)

// ConnProxy forwards refresh notifications over a JSON-RPC connection. The
// connection is bound after construction because the handler that needs the
// proxy has to exist before the connection does.
type ConnProxy struct {
	mu   sync.RWMutex
	conn *jsonrpc2.Conn
}

// NewConnProxy returns an unbound proxy.
func NewConnProxy() *ConnProxy {
	return &ConnProxy{}
}

// Bind attaches the live connection.
func (p *ConnProxy) Bind(conn *jsonrpc2.Conn) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.conn = conn
}

// RefreshDataProvider sends $refreshDataProvider to the host. Omitting the
// items map (nil) signals "redraw everything".
func (p *ConnProxy) RefreshDataProvider(ctx context.Context, handle int, componentID string, items map[treeview.TreeItemHandle]treeview.ComponentItem) error {
	p.mu.RLock()
	conn := p.conn
	p.mu.RUnlock()
	if conn == nil {
		return errors.New("refresh data provider: no host connection")
	}
	return conn.Notify(ctx, MethodRefreshDataProvider, RefreshDataProviderParams{
		Handle:         handle,
		ComponentID:    componentID,
		ItemsToRefresh: items,
	})
}
