// Package starship is a small retained-mode scene graph driving a
// controllable spaceship on [Ebitengine].
//
// # Scene graph
//
// Every element is a [Node]. Nodes form a tree rooted at [Model.Root]. Each
// node holds a local [Affine] transform relative to its parent and caches
// its global transform (parent global times local). Mutating a node with
// [Node.Translate], [Node.Rotate], [Node.Scale] or [Node.TranslateGlobal]
// refreshes the cached global transforms of the whole subtree and notifies
// the node's listeners.
//
// A node's [NodeKind] fixes its bounding box, whether it takes part in hit
// testing, and how it draws:
//
//	root
//	├── star × N
//	├── spaceship
//	│   ├── head
//	│   ├── body
//	│   │   ├── handle
//	│   │   └── porthole
//	│   └── tail
//	│       └── fire
//	└── status
//
// Children draw after their parent, so later siblings appear on top.
//
// # Spaceship
//
// [NewModel] builds the tree and starts the movement loop. Flight is
// controlled with:
//
//	m.StartMovingForward()     // ramp momentum toward 1
//	m.StopMovingForward()      // decay momentum to exactly 0
//	m.StartTurningTailLeft()   // steer; the tail angle is clamped to ±π/4
//	m.RequestPowerUp()         // double the ship's size for five seconds
//
// Dragging the body moves the ship; dragging the handle stretches the body
// between its height limits. Leaving the canvas wraps the ship around to
// the opposite edge.
//
// All loops run on a [Scheduler] polled from [Model.Update], so the model is
// single-threaded and deterministic under a [ManualClock].
//
// # Running
//
// [Run] opens a window from a [Config], which [LoadConfig] reads from YAML
// or TOML:
//
//	cfg, err := starship.LoadConfig("config.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	logger, _ := starship.NewLogger(cfg.Log)
//	starship.Run(cfg, logger, nil)
//
// [Game] maps arrow keys, space and the left mouse button onto a
// [Controller]. The controller can also be driven directly with
// [Controller.HandlePointer] and [Controller.HandleKey], and scripted runs
// use [LoadTestScriptFile] with [Game.SetTestRunner].
//
// [Ebitengine]: https://ebitengine.org
package starship
