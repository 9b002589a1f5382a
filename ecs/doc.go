// Package ecs bridges the starship scene into a [Donburi] world.
//
// [NewDonburiStore] publishes controller interaction events (pointer, drag,
// key) as typed Donburi events. Subscribe to [InteractionEventType] in your
// ECS systems to receive them.
//
// [NewDonburiMirror] listens to scene nodes and keeps one entity per node
// with a [NodeState] component holding its latest global transform, and
// publishes a [NodeChangedEventType] event on every change.
//
// Usage:
//
//	world := donburi.NewWorld()
//	game.SetEntityStore(ecs.NewDonburiStore(world))
//	ecs.NewDonburiMirror(world).Watch(game.Model().Root())
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
