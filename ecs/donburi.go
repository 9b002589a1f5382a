package ecs

import (
	"github.com/phanxgames/starship"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"
)

// InteractionEventType is the Donburi event type for controller interaction
// events. Subscribe to it to receive pointer, drag and key events.
var InteractionEventType = events.NewEventType[starship.InteractionEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EntityStore backed by a Donburi world.
// Interaction events are published to InteractionEventType and can be
// consumed with events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) starship.EntityStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event starship.InteractionEvent) {
	InteractionEventType.Publish(s.world, event)
}

// NodeStateData is the mirrored state of one scene node.
type NodeStateData struct {
	NodeID  uint32
	Name    string
	Kind    starship.NodeKind
	Global  starship.Affine
	Bounds  starship.Rect
	Visible bool
}

// NodeState is the component holding a mirrored node.
var NodeState = donburi.NewComponentType[NodeStateData]()

// NodeChangedEventType is published with the fresh state whenever a watched
// node changes.
var NodeChangedEventType = events.NewEventType[NodeStateData]()

// nodeQuery matches every mirrored node entity.
var nodeQuery = donburi.NewQuery(filter.Contains(NodeState))

// DonburiMirror keeps one entity per watched node in sync with the scene.
// It implements starship.Listener.
type DonburiMirror struct {
	world    donburi.World
	entities map[uint32]donburi.Entity
}

// NewDonburiMirror creates a mirror writing into world.
func NewDonburiMirror(world donburi.World) *DonburiMirror {
	return &DonburiMirror{world: world, entities: make(map[uint32]donburi.Entity)}
}

// Watch subscribes to root and all of its descendants and mirrors their
// current state.
func (m *DonburiMirror) Watch(root *starship.Node) {
	root.Walk(func(n *starship.Node) {
		n.AddListener(m)
		m.sync(n)
	})
}

// Unwatch unsubscribes from root and its descendants and removes their
// entities.
func (m *DonburiMirror) Unwatch(root *starship.Node) {
	root.Walk(func(n *starship.Node) {
		n.RemoveListener(m)
		if e, ok := m.entities[n.ID]; ok {
			m.world.Remove(e)
			delete(m.entities, n.ID)
		}
	})
}

// NodeChanged refreshes n's entity and publishes a NodeChangedEventType event.
func (m *DonburiMirror) NodeChanged(n *starship.Node) {
	NodeChangedEventType.Publish(m.world, m.sync(n))
}

// Entity returns the entity mirroring the node with the given ID.
func (m *DonburiMirror) Entity(nodeID uint32) (donburi.Entity, bool) {
	e, ok := m.entities[nodeID]
	return e, ok
}

// Count returns the number of mirrored nodes in the world.
func (m *DonburiMirror) Count() int {
	return nodeQuery.Count(m.world)
}

// Each calls fn with every mirrored node state.
func (m *DonburiMirror) Each(fn func(NodeStateData)) {
	nodeQuery.Each(m.world, func(entry *donburi.Entry) {
		fn(*NodeState.Get(entry))
	})
}

func (m *DonburiMirror) sync(n *starship.Node) NodeStateData {
	data := NodeStateData{
		NodeID:  n.ID,
		Name:    n.Name,
		Kind:    n.Kind,
		Global:  n.Global(),
		Bounds:  n.Bounds(),
		Visible: n.Visible(),
	}
	e, ok := m.entities[n.ID]
	if !ok {
		e = m.world.Create(NodeState)
		m.entities[n.ID] = e
	}
	NodeState.SetValue(m.world.Entry(e), data)
	return data
}
