package server

import (
	"github.com/RamakrishnanGH/sqlopsstudio/treeview"
)

// JSON-RPC method names shared between the extension host and the UI host.
const (
	MethodCreateTreeView       = "$createTreeView"
	MethodGetChildren          = "$getChildren"
	MethodOnNodeCheckedChanged = "$onNodeCheckedChanged"
	MethodDisposeTreeView      = "$disposeTreeView"
	MethodRefreshDataProvider  = "$refreshDataProvider"
	MethodExecuteCommand       = "executeCommand"
)

// CreateTreeViewParams binds a pre-registered component provider to a new
// view addressed by the handle/componentId composite.
type CreateTreeViewParams struct {
	Handle      int    `json:"handle"`
	ComponentID string `json:"componentId"`
}

// GetChildrenParams identifies the node whose children the host wants. An
// empty TreeItemHandle asks for the roots.
type GetChildrenParams struct {
	TreeViewID     string                  `json:"treeViewId"`
	TreeItemHandle treeview.TreeItemHandle `json:"treeItemHandle,omitempty"`
}

// CheckedChangedParams reports a checkbox toggle from the host UI.
type CheckedChangedParams struct {
	TreeViewID     string                  `json:"treeViewId"`
	TreeItemHandle treeview.TreeItemHandle `json:"treeItemHandle,omitempty"`
	Checked        bool                    `json:"checked"`
}

// DisposeTreeViewParams tears one view down.
type DisposeTreeViewParams struct {
	TreeViewID string `json:"treeViewId"`
}

// ExecuteCommandParams invokes a named command on the host surface.
type ExecuteCommandParams struct {
	Command string        `json:"command"`
	Args    []interface{} `json:"args,omitempty"`
}

// RefreshDataProviderParams is the outbound refresh notification. A nil
// ItemsToRefresh map tells the host to redraw the whole tree.
type RefreshDataProviderParams struct {
	Handle         int                                                `json:"handle"`
	ComponentID    string                                             `json:"componentId"`
	ItemsToRefresh map[treeview.TreeItemHandle]treeview.ComponentItem `json:"itemsToRefresh,omitempty"`
}
