package starship

import (
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// EntityStore is the interface for optional ECS integration.
// When set on a Game, interaction events are forwarded to the ECS.
type EntityStore interface {
	EmitEvent(event InteractionEvent)
}

// EventType identifies a kind of interaction event.
type EventType uint8

const (
	EventPointerDown EventType = iota // pointer pressed; Node is the hit node, if any
	EventDrag                         // pointer moved while dragging the ship or handle
	EventPointerUp                    // pointer released
	EventKeyDown                      // ship key pressed
	EventKeyUp                        // ship key released
)

// InteractionEvent carries interaction data for the ECS bridge.
type InteractionEvent struct {
	Type   EventType
	NodeID uint32 // 0 when nothing was hit
	Kind   NodeKind
	X, Y   float64
	DeltaX float64
	DeltaY float64
	Key    Key
}

// background is the canvas clear color.
var background = color.RGBA{0x05, 0x05, 0x14, 0xff}

// Game adapts a Model to ebiten.Game. It listens to every node and only
// repaints when something changed.
type Game struct {
	model   *Model
	ctrl    *Controller
	input   ebitenInput
	painter *EbitenPainter
	fonts   *FontCache
	log     *zap.Logger

	width, height int
	dirty         bool
	cursor        CursorShape
	debug         DebugConfig

	// Scripted input and capture
	injectQueue     []syntheticEvent
	testRunner      *TestRunner
	exitWhenDone    bool
	screenshotQueue []string
	// ScreenshotDir is where queued screenshots are written.
	ScreenshotDir string
}

// NewGame wires a game around m. fonts may be nil to skip text.
func NewGame(m *Model, fonts *FontCache, width, height int) *Game {
	g := &Game{
		model:         m,
		ctrl:          NewController(m),
		fonts:         fonts,
		painter:       NewEbitenPainter(nil, fonts),
		log:           m.log,
		width:         width,
		height:        height,
		dirty:         true,
		ScreenshotDir: "screenshots",
	}
	m.root.Walk(func(n *Node) { n.AddListener(g) })
	return g
}

// Model returns the game's model.
func (g *Game) Model() *Model { return g.model }

// Controller returns the input controller.
func (g *Game) Controller() *Controller { return g.ctrl }

// NodeChanged marks the frame dirty.
func (g *Game) NodeChanged(*Node) {
	g.dirty = true
}

// Dirty reports whether the next Draw will repaint.
func (g *Game) Dirty() bool { return g.dirty }

// SetEntityStore sets the optional ECS bridge.
func (g *Game) SetEntityStore(store EntityStore) {
	g.ctrl.store = store
}

// SetDebug applies debug options. When enabled, tree depth warnings and
// per-frame timing are logged.
func (g *Game) SetDebug(cfg DebugConfig) {
	g.debug = cfg
	globalDebug = cfg.Enabled
	debugLog = g.log.Named("debug")
	g.dirty = true
}

// Update processes input, then runs the model's due loops.
func (g *Game) Update() error {
	if g.testRunner != nil {
		g.testRunner.step(g)
		if g.exitWhenDone && g.testRunner.Done() && len(g.screenshotQueue) == 0 {
			return ebiten.Termination
		}
	}
	if !g.processInjectedInput() {
		g.input.poll(g.ctrl)
	}
	g.model.Update()

	if c := g.ctrl.Cursor(); c != g.cursor {
		g.cursor = c
		ebiten.SetCursorShape(ebitenCursor(c))
	}
	return nil
}

// Draw repaints the scene when dirty. The screen is not cleared between
// frames, so a clean frame keeps the previous image.
func (g *Game) Draw(screen *ebiten.Image) {
	if !g.dirty && len(g.screenshotQueue) == 0 {
		return
	}
	var t0 time.Time
	if g.debug.LogFrames {
		t0 = time.Now()
	}

	screen.Fill(background)
	g.painter.Reset(screen)
	g.model.root.RenderAll(g.painter)
	if g.debug.ShowBounds {
		drawBounds(g.model.root, g.painter, g.fonts != nil)
	}
	if g.debug.ShowFPS {
		drawFPS(screen)
	}
	g.dirty = false

	if g.debug.LogFrames {
		g.logFrame(debugStats{renderTime: time.Since(t0), nodeCount: g.model.countNodes()})
	}
	g.flushScreenshots(screen)
}

// Layout returns the fixed canvas size.
func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}

// Run opens a window for cfg and blocks until it is closed or the configured
// script finishes. sound may be nil.
func Run(cfg Config, log *zap.Logger, sound Sound) error {
	g, err := NewGameFromConfig(cfg, log, sound)
	if err != nil {
		return err
	}
	defer g.model.Close()
	return g.run(cfg.Window)
}

// NewGameFromConfig builds the model and game described by cfg.
func NewGameFromConfig(cfg Config, log *zap.Logger, sound Sound) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	var fonts *FontCache
	if cfg.Window.Text {
		f, err := NewFontCache()
		if err != nil {
			return nil, err
		}
		fonts = f
	}
	m := NewModel(ModelConfig{
		Width:  float64(cfg.Window.Width),
		Height: float64(cfg.Window.Height),
		Stars:  cfg.Scene.Stars,
		Seed:   cfg.Scene.Seed,
		Tuning: cfg.Tuning,
		Logger: log,
		Sound:  sound,
	})
	g := NewGame(m, fonts, cfg.Window.Width, cfg.Window.Height)
	g.SetDebug(cfg.Debug)
	if cfg.Scene.Script != "" {
		r, err := LoadTestScriptFile(cfg.Scene.Script)
		if err != nil {
			m.Close()
			return nil, err
		}
		g.SetTestRunner(r)
		g.exitWhenDone = true
	}
	if cfg.Scene.ScreenshotDir != "" {
		g.ScreenshotDir = cfg.Scene.ScreenshotDir
	}
	return g, nil
}

func (g *Game) run(w WindowConfig) error {
	ebiten.SetWindowSize(g.width*w.Scale, g.height*w.Scale)
	ebiten.SetWindowTitle(w.Title)
	ebiten.SetScreenClearedEveryFrame(false)
	ebiten.SetTPS(w.TPS)
	g.log.Info("starting", zap.Int("width", g.width), zap.Int("height", g.height), zap.Int("tps", w.TPS))
	err := ebiten.RunGame(g)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}
