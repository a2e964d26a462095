// Package admin is the host-facing half of the document-metadata plugin:
// slot registration, the metadata card, and its guards.
package admin

import (
	"sync"

	"docmeta/admin/i18n"
)

// PluginID identifies the plugin towards the host.
const PluginID = i18n.PluginID

// View names a host screen that exposes injection slots.
type View string

const (
	EditView View = "editView"
	ListView View = "listView"
)

// Location names a slot within a view.
type Location string

const (
	// Sits at the top right of the edit view.
	LocationInformations Location = "informations"
	// Sits between "Configure the view" and "Edit" buttons.
	LocationRightLinks Location = "right-links"
)

// Component is a named renderer injected into a host slot.
type Component struct {
	Name   string
	Render func(doc Document, state CardState) []MetadataRow
}

// Plugin is the registration record the host keeps per plugin.
type Plugin struct {
	ID    string
	Name  string
	Ready bool
}

// Registry is the host-provided registration surface: plugins add named
// components to view/location slots.
type Registry struct {
	mu         sync.Mutex
	injections map[View]map[Location][]Component
	plugins    map[string]Plugin
}

func NewRegistry() *Registry {
	return &Registry{
		injections: make(map[View]map[Location][]Component),
		plugins:    make(map[string]Plugin),
	}
}

func (r *Registry) InjectComponent(view View, location Location, component Component) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.injections[view] == nil {
		r.injections[view] = make(map[Location][]Component)
	}
	r.injections[view][location] = append(r.injections[view][location], component)
}

func (r *Registry) Injections(view View, location Location) []Component {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.injections[view][location]
}

func (r *Registry) RegisterPlugin(p Plugin) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.plugins[p.ID] = p
}

func (r *Registry) Plugin(id string) (Plugin, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.plugins[id]
	return p, ok
}

// Register wires the plugin into the host: the metadata card goes into the
// edit view's right-links slot, and the plugin itself is recorded.
func Register(registry *Registry, card *Card) {
	registry.InjectComponent(EditView, LocationRightLinks, Component{
		Name:   "DocumentMetadataGuard",
		Render: card.Rows,
	})
	registry.RegisterPlugin(Plugin{
		ID:    PluginID,
		Name:  PluginID,
		Ready: true,
	})
}
