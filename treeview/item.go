package treeview

// TreeItemHandle is the opaque token identifying a cached tree node across
// the host boundary. Handles are allocated by the view and never reused while
// the original element stays cached.
type TreeItemHandle string

// CollapsibleState mirrors the host's tri-state expansion flag.
type CollapsibleState int

const (
	CollapsibleStateNone CollapsibleState = iota
	CollapsibleStateCollapsed
	CollapsibleStateExpanded
)

// ComponentItem is the serializable projection of a tree node sent to the
// host for rendering. Raw nodes never cross the boundary; the host only ever
// sees these, keyed by handle. All fields are comparable so refresh diffing
// can compare items structurally.
type ComponentItem struct {
	Handle           TreeItemHandle   `json:"handle"`
	Label            string           `json:"label"`
	CollapsibleState CollapsibleState `json:"collapsibleState"`
	Icon             string           `json:"icon,omitempty"`
	Tooltip          string           `json:"tooltip,omitempty"`
	Checkable        bool             `json:"checkable,omitempty"`
	Checked          bool             `json:"checked,omitempty"`
	Enabled          bool             `json:"enabled,omitempty"`
}
