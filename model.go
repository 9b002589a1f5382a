package starship

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"go.uber.org/zap"
)

// Tuning holds the physical constants of the spaceship. Durations decode
// from strings such as "15ms" in both YAML and TOML.
type Tuning struct {
	TickInterval   time.Duration `yaml:"tick_interval" toml:"tick_interval"`
	ForwardStep    float64       `yaml:"forward_step" toml:"forward_step"`
	MomentumSeed   float64       `yaml:"momentum_seed" toml:"momentum_seed"`
	AccelStep      float64       `yaml:"accel_step" toml:"accel_step"`
	Transition     float64       `yaml:"transition" toml:"transition"`
	DecelFactor    float64       `yaml:"decel_factor" toml:"decel_factor"`
	TailLimit      float64       `yaml:"tail_limit" toml:"tail_limit"`
	TailStep       float64       `yaml:"tail_step" toml:"tail_step"`
	TailInterval   time.Duration `yaml:"tail_interval" toml:"tail_interval"`
	TailDamping    float64       `yaml:"tail_damping" toml:"tail_damping"`
	PowerUpTimeout time.Duration `yaml:"power_up_timeout" toml:"power_up_timeout"`
	PowerUpScale   float64       `yaml:"power_up_scale" toml:"power_up_scale"`
	BodyMinHeight  float64       `yaml:"body_min_height" toml:"body_min_height"`
	BodyMaxHeight  float64       `yaml:"body_max_height" toml:"body_max_height"`
}

// DefaultTuning returns the stock handling: a 15ms tick, full power after
// roughly a second of thrust and a five second power-up.
func DefaultTuning() Tuning {
	return Tuning{
		TickInterval:   15 * time.Millisecond,
		ForwardStep:    7,
		MomentumSeed:   0.001,
		AccelStep:      0.023,
		Transition:     0.05,
		DecelFactor:    0.965,
		TailLimit:      math.Pi / 4,
		TailStep:       math.Pi / 120,
		TailInterval:   15 * time.Millisecond,
		TailDamping:    0.06,
		PowerUpTimeout: 5 * time.Second,
		PowerUpScale:   2,
		BodyMinHeight:  MinBodyHeight,
		BodyMaxHeight:  MaxBodyHeight,
	}
}

// Sound receives engine and power-up cues. Implementations must not block.
type Sound interface {
	ThrusterOn()
	ThrusterOff()
	PowerUp()
}

type nopSound struct{}

func (nopSound) ThrusterOn()  {}
func (nopSound) ThrusterOff() {}
func (nopSound) PowerUp()     {}

// ModelConfig configures NewModel. Zero fields take defaults: an 800x600
// canvas, DefaultTuning, the system clock, a no-op logger and no sound.
type ModelConfig struct {
	Width, Height float64
	Stars         int
	Seed          int64
	Tuning        Tuning
	Clock         Clock
	Logger        *zap.Logger
	Sound         Sound
}

func (c ModelConfig) withDefaults() ModelConfig {
	if c.Width <= 0 {
		c.Width = 800
	}
	if c.Height <= 0 {
		c.Height = 600
	}
	if c.Tuning == (Tuning{}) {
		c.Tuning = DefaultTuning()
	}
	if c.Clock == nil {
		c.Clock = SystemClock{}
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	if c.Sound == nil {
		c.Sound = nopSound{}
	}
	return c
}

// Model owns the scene graph and the spaceship's kinetic state. All methods
// must be called from one goroutine; Update drives the scheduled loops.
type Model struct {
	tuning Tuning
	sched  *Scheduler
	log    *zap.Logger
	sound  Sound
	rng    *rand.Rand

	root      *Node
	stars     []*Node
	status    *Node
	spaceship *Node
	head      *Node
	body      *Node
	handle    *Node
	porthole  *Node
	tail      *Node
	fire      *Node
	hits      HitList

	momentum     float64
	thrusting    bool // engine on, whether or not still accelerating
	tailAngle    float64
	poweredUp    bool
	powerUpStart time.Time
	adjusting    bool
	bucket       float64

	// Active loops; each is non-nil exactly while running.
	move          *Task
	accel         *Task
	decel         *Task
	tailLeft      *Task
	tailRight     *Task
	powerUpRevert *Task
}

// NewModel builds the fixed scene graph and starts the movement loop.
func NewModel(cfg ModelConfig) *Model {
	cfg = cfg.withDefaults()
	m := &Model{
		tuning: cfg.Tuning,
		sched:  NewScheduler(cfg.Clock),
		log:    cfg.Logger,
		sound:  cfg.Sound,
		rng:    rand.New(rand.NewSource(cfg.Seed)),
	}
	m.build(cfg)
	m.move = m.sched.Every("move", m.tuning.TickInterval, m.moveTick)
	m.log.Debug("model built",
		zap.Int("nodes", m.countNodes()),
		zap.Int("stars", len(m.stars)),
		zap.Float64("width", cfg.Width),
		zap.Float64("height", cfg.Height))
	return m
}

func (m *Model) build(cfg ModelConfig) {
	m.root = NewNode(KindRoot, "scene")
	m.root.setBounds(Rect{0, 0, cfg.Width, cfg.Height})

	for i := 0; i < cfg.Stars; i++ {
		s := NewNode(KindStar, fmt.Sprintf("star%d", i))
		s.star.seed(m.rng)
		m.root.AddChild(s)
		s.Translate(m.rng.Float64()*cfg.Width, m.rng.Float64()*cfg.Height)
		m.stars = append(m.stars, s)
	}

	m.spaceship = NewNode(KindSpaceship, "spaceship")
	m.root.AddChild(m.spaceship)
	m.spaceship.Translate(400*cfg.Width/800, 360*cfg.Height/600)

	m.head = NewNode(KindHead, "head")
	m.spaceship.AddChild(m.head)
	m.head.Translate(0, -120)

	m.body = NewNode(KindBody, "body")
	m.body.SetHeightLimits(m.tuning.BodyMinHeight, m.tuning.BodyMaxHeight)
	m.spaceship.AddChild(m.body)

	m.handle = NewNode(KindHandle, "handle")
	m.body.AddChild(m.handle)
	m.handle.Translate(0, -120)

	m.porthole = NewNode(KindPorthole, "porthole")
	m.body.AddChild(m.porthole)
	m.porthole.Translate(0, -90)

	m.tail = NewNode(KindTail, "tail")
	m.spaceship.AddChild(m.tail)

	m.fire = NewNode(KindFire, "fire")
	m.tail.AddChild(m.fire)
	m.fire.Translate(0, 20)

	m.status = NewNode(KindStatus, "status")
	m.status.SetStatusSource(m)
	m.root.AddChild(m.status)
	m.status.Translate(5, 5)

	m.hits.Register(m.fire, m.tail, m.porthole, m.handle, m.body, m.head, m.spaceship, m.status)
	m.hits.Register(m.stars...)
	m.hits.Register(m.root)
}

func (m *Model) countNodes() int {
	n := 0
	m.root.Walk(func(*Node) { n++ })
	return n
}

// Update runs every scheduled loop that is due. Call once per frame.
func (m *Model) Update() int {
	return m.sched.Poll()
}

// Close stops every loop. The model must not be used afterwards.
func (m *Model) Close() {
	if m.thrusting {
		m.thrusting = false
		m.sound.ThrusterOff()
	}
	for _, t := range []*Task{m.move, m.accel, m.decel, m.tailLeft, m.tailRight, m.powerUpRevert} {
		t.Stop()
	}
	m.move, m.accel, m.decel, m.tailLeft, m.tailRight, m.powerUpRevert = nil, nil, nil, nil, nil, nil
}

// --- Accessors ---

// Root returns the scene root.
func (m *Model) Root() *Node { return m.root }

// Spaceship returns the ship container node.
func (m *Model) Spaceship() *Node { return m.spaceship }

// Part returns the ship part or HUD node of the given kind, or nil for the
// root and star kinds.
func (m *Model) Part(kind NodeKind) *Node {
	switch kind {
	case KindStatus:
		return m.status
	case KindSpaceship:
		return m.spaceship
	case KindHead:
		return m.head
	case KindBody:
		return m.body
	case KindHandle:
		return m.handle
	case KindPorthole:
		return m.porthole
	case KindTail:
		return m.tail
	case KindFire:
		return m.fire
	}
	return nil
}

// Stars returns the background star nodes.
func (m *Model) Stars() []*Node { return m.stars }

// HitList returns the ordered hit-test list.
func (m *Model) HitList() *HitList { return &m.hits }

// Tuning returns the active tuning.
func (m *Model) Tuning() Tuning { return m.tuning }

// Momentum returns forward momentum in [0, 1].
func (m *Model) Momentum() float64 { return m.momentum }

// TailAngle returns the tail angle in radians, within ±TailLimit.
func (m *Model) TailAngle() float64 { return m.tailAngle }

// Bucket returns the resize shortfall accumulated during the current drag.
func (m *Model) Bucket() float64 { return m.bucket }

// PoweredUp reports whether a power-up is active.
func (m *Model) PoweredUp() bool { return m.poweredUp }

// Thrusting reports whether the engine is on.
func (m *Model) Thrusting() bool { return m.thrusting }

// Accelerating reports whether the acceleration loop is running.
func (m *Model) Accelerating() bool { return m.accel != nil }

// Decelerating reports whether the deceleration loop is running.
func (m *Model) Decelerating() bool { return m.decel != nil }

// Adjusting reports whether a body resize drag is in progress.
func (m *Model) Adjusting() bool { return m.adjusting }

// PowerUpTimeout returns how long a power-up lasts.
func (m *Model) PowerUpTimeout() time.Duration { return m.tuning.PowerUpTimeout }

// PerformHitDetection returns the front-most registered node under the
// root-space point (x, y), or nil.
func (m *Model) PerformHitDetection(x, y float64) *Node {
	return m.hits.PerformHitDetection(x, y)
}
