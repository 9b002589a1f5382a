package starship

import (
	"math"
	"math/rand"
	"testing"
	"time"
)

type fakeSound struct {
	on, off, powerUps int
}

func (s *fakeSound) ThrusterOn()  { s.on++ }
func (s *fakeSound) ThrusterOff() { s.off++ }
func (s *fakeSound) PowerUp()     { s.powerUps++ }

func newTestModel(t *testing.T, stars int) *Model {
	t.Helper()
	m := NewModel(ModelConfig{
		Stars: stars,
		Seed:  42,
		Clock: NewManualClock(testEpoch),
		Sound: &fakeSound{},
	})
	t.Cleanup(m.Close)
	return m
}

func testClock(m *Model) *ManualClock {
	return m.sched.Clock().(*ManualClock)
}

func testSound(m *Model) *fakeSound {
	return m.sound.(*fakeSound)
}

// tick advances the clock by n tick intervals, polling after each.
func tick(m *Model, n int) {
	for i := 0; i < n; i++ {
		testClock(m).Advance(m.tuning.TickInterval)
		m.Update()
	}
}

// --- Construction ---

func TestNewModelTree(t *testing.T) {
	m := newTestModel(t, 16)
	root := m.Root()
	if got := len(root.Children()); got != 18 {
		t.Fatalf("root has %d children, want 16 stars + ship + status", got)
	}
	kids := root.Children()
	if kids[16] != m.Spaceship() || kids[17] != m.Part(KindStatus) {
		t.Error("ship and status should follow the stars, status last")
	}
	if m.countNodes() != 25 {
		t.Errorf("countNodes = %d, want 25", m.countNodes())
	}
	x, y := m.Spaceship().LocalToWorld(0, 0)
	assertNear(t, "ship x", x, 400)
	assertNear(t, "ship y", y, 360)
	hx, hy := m.Part(KindHandle).LocalToWorld(0, 0)
	assertNear(t, "handle x", hx, 400)
	assertNear(t, "handle y", hy, 240)
	if m.Part(KindFire).Visible() {
		t.Error("fire should start hidden")
	}
	if m.Part(KindRoot) != nil || m.Part(KindStar) != nil {
		t.Error("Part should return nil for root and star kinds")
	}
	assertGlobals(t, root)
}

func TestNewModelScalesStartPosition(t *testing.T) {
	m := NewModel(ModelConfig{Width: 1600, Height: 1200, Clock: NewManualClock(testEpoch)})
	defer m.Close()
	x, y := m.Spaceship().LocalToWorld(0, 0)
	assertNear(t, "x", x, 800)
	assertNear(t, "y", y, 720)
	if m.Root().Bounds() != (Rect{0, 0, 1600, 1200}) {
		t.Errorf("root bounds = %v", m.Root().Bounds())
	}
}

func TestIdleTickNotifiesRoot(t *testing.T) {
	m := newTestModel(t, 0)
	l := &countingListener{}
	m.Root().AddListener(l)
	before := m.Spaceship().Global()
	tick(m, 3)
	if len(l.calls) != 3 {
		t.Errorf("root notified %d times, want 3", len(l.calls))
	}
	assertMatrix(t, "ship unchanged", m.Spaceship().Global(), before)
}

// --- Forward motion ---

func TestAccelerateToFullMomentum(t *testing.T) {
	m := newTestModel(t, 0)
	m.StartMovingForward()
	m.StartMovingForward()
	if s := testSound(m); s.on != 1 {
		t.Errorf("ThrusterOn called %d times, want 1", s.on)
	}
	if !m.Part(KindFire).Visible() {
		t.Error("fire hidden while accelerating")
	}

	prev := 0.0
	for i := 0; i < 200 && m.Accelerating(); i++ {
		tick(m, 1)
		if m.Momentum() < prev || m.Momentum() > 1 {
			t.Fatalf("tick %d: momentum %v after %v", i, m.Momentum(), prev)
		}
		prev = m.Momentum()
	}
	if m.Accelerating() {
		t.Fatal("still accelerating after 200 ticks")
	}
	if m.Momentum() != 1 {
		t.Errorf("momentum = %v, want exactly 1", m.Momentum())
	}

	// Cruising: momentum holds with no loop running.
	tick(m, 10)
	if m.Momentum() != 1 || m.Accelerating() || m.Decelerating() {
		t.Errorf("cruise: momentum=%v accel=%v decel=%v", m.Momentum(), m.Accelerating(), m.Decelerating())
	}
}

func TestAccelerationRamp(t *testing.T) {
	m := newTestModel(t, 0)
	m.StartMovingForward()
	tick(m, 1)
	if m.Momentum() != m.tuning.MomentumSeed {
		t.Fatalf("first tick momentum = %v, want seed", m.Momentum())
	}
	// Below the transition the step grows with momentum.
	tick(m, 1)
	want := m.tuning.MomentumSeed * (1 + m.tuning.AccelStep/m.tuning.Transition)
	assertNear(t, "quadratic step", m.Momentum(), want)
}

func TestDecelerateToExactlyZero(t *testing.T) {
	m := newTestModel(t, 0)
	m.StartMovingForward()
	tick(m, 200)
	m.StopMovingForward()
	if !m.Decelerating() || m.Accelerating() {
		t.Fatalf("accel=%v decel=%v after stop", m.Accelerating(), m.Decelerating())
	}
	if s := testSound(m); s.off != 1 {
		t.Errorf("ThrusterOff called %d times, want 1", s.off)
	}
	if m.Part(KindFire).Visible() {
		t.Error("fire visible after stop")
	}

	prev := m.Momentum()
	for i := 0; i < 1000 && m.Decelerating(); i++ {
		tick(m, 1)
		if m.Momentum() > prev || m.Momentum() < 0 {
			t.Fatalf("tick %d: momentum %v after %v", i, m.Momentum(), prev)
		}
		prev = m.Momentum()
	}
	if m.Decelerating() {
		t.Fatal("still decelerating after 1000 ticks")
	}
	if m.Momentum() != 0 {
		t.Errorf("momentum = %v, want exactly 0", m.Momentum())
	}
}

func TestStopAtRestDoesNotDecelerate(t *testing.T) {
	m := newTestModel(t, 0)
	m.StopMovingForward()
	if m.Decelerating() {
		t.Error("decelerating from rest")
	}
	if s := testSound(m); s.off != 0 {
		t.Errorf("ThrusterOff called %d times at rest", s.off)
	}
}

func TestStartCancelsDeceleration(t *testing.T) {
	m := newTestModel(t, 0)
	m.StartMovingForward()
	tick(m, 50)
	m.StopMovingForward()
	tick(m, 5)
	m.StartMovingForward()
	if m.Decelerating() || !m.Accelerating() {
		t.Errorf("accel=%v decel=%v after restart", m.Accelerating(), m.Decelerating())
	}
}

func TestMovingStraightAhead(t *testing.T) {
	m := newTestModel(t, 0)
	m.StartMovingForward()
	tick(m, 10)
	x, y := m.Spaceship().LocalToWorld(0, 0)
	assertNear(t, "x", x, 400)
	if y >= 360 {
		t.Errorf("y = %v, want ship moved up", y)
	}
}

// --- Tail ---

func TestTailClampsAtLimit(t *testing.T) {
	m := newTestModel(t, 0)
	m.StartTurningTailLeft()
	m.StartTurningTailLeft()
	for i := 0; i < 100; i++ {
		tick(m, 1)
		if math.Abs(m.TailAngle()) > m.tuning.TailLimit+epsilon {
			t.Fatalf("tick %d: tail angle %v beyond limit", i, m.TailAngle())
		}
	}
	assertNear(t, "left limit", m.TailAngle(), math.Pi/4)
	assertMatrix(t, "tail local", m.Part(KindTail).Local(), RotateMatrix(math.Pi/4, 0, 0))

	m.StopTurningTailLeft()
	m.StopTurningTailLeft()
	m.StartTurningTailRight()
	tick(m, 200)
	assertNear(t, "right limit", m.TailAngle(), -math.Pi/4)
	assertMatrix(t, "tail local", m.Part(KindTail).Local(), RotateMatrix(-math.Pi/4, 0, 0))
}

func TestTailStepsAreIndependent(t *testing.T) {
	m := newTestModel(t, 0)
	m.StartTurningTailLeft()
	m.StartMovingForward()
	tick(m, 3)
	m.StopMovingForward()
	if !m.Decelerating() {
		t.Fatal("not decelerating")
	}
	assertNear(t, "tail", m.TailAngle(), 3*m.tuning.TailStep)
}

func TestTailTurnsShip(t *testing.T) {
	m := newTestModel(t, 0)
	m.StartTurningTailLeft()
	tick(m, 30)
	m.StopTurningTailLeft()
	m.StartMovingForward()
	tick(m, 60)
	// A left tail turns the ship counter-clockwise on screen.
	g := m.Spaceship().Global()
	if g[1] >= 0 {
		t.Errorf("heading b = %v, want negative rotation", g[1])
	}
}

// --- Power-up ---

func TestPowerUpOnce(t *testing.T) {
	m := newTestModel(t, 0)
	before := m.Spaceship().Local()

	m.RequestPowerUp()
	m.RequestPowerUp()
	if s := testSound(m); s.powerUps != 1 {
		t.Errorf("PowerUp sound played %d times, want 1", s.powerUps)
	}
	if m.sched.Len() != 2 {
		t.Errorf("scheduled tasks = %d, want move + one revert", m.sched.Len())
	}
	if got := m.PowerUpRemaining(); got != m.PowerUpTimeout() {
		t.Errorf("remaining = %v, want %v", got, m.PowerUpTimeout())
	}
	assertNear(t, "scaled a", m.Spaceship().Local()[0], 2)

	testClock(m).Advance(2 * time.Second)
	m.Update()
	if got := m.PowerUpRemaining(); got != 3*time.Second {
		t.Errorf("remaining = %v, want 3s", got)
	}

	testClock(m).Advance(3 * time.Second)
	m.Update()
	if m.PoweredUp() || m.PowerUpRemaining() != 0 {
		t.Errorf("PoweredUp=%v remaining=%v after timeout", m.PoweredUp(), m.PowerUpRemaining())
	}
	assertMatrix(t, "restored", m.Spaceship().Local(), before)

	m.RequestPowerUp()
	if !m.PoweredUp() {
		t.Error("second power-up after expiry rejected")
	}
}

// --- Wrap ---

func TestWrapLeft(t *testing.T) {
	m := newTestModel(t, 0)
	if err := m.Spaceship().TranslateGlobal(-500, 0); err != nil {
		t.Fatal(err)
	}
	m.momentum = m.tuning.MomentumSeed
	tick(m, 1)
	x, _ := m.Spaceship().LocalToWorld(0, 0)
	assertNear(t, "x", x, -100+840)
}

func TestWrapNeedsAllCorners(t *testing.T) {
	canvas := Rect{0, 0, 800, 600}
	// Straddling the left edge: no wrap.
	dx, dy := wrapDelta(canvas, TranslateMatrix(-10, 300), Rect{-20, -150, 40, 200})
	if dx != 0 || dy != 0 {
		t.Errorf("straddling: delta = (%v, %v), want 0", dx, dy)
	}
	// Off the bottom: bounds y -150..50 at ty=800 → 650..850.
	dx, dy = wrapDelta(canvas, TranslateMatrix(400, 800), Rect{-20, -150, 40, 200})
	assertNear(t, "dx", dx, 0)
	assertNear(t, "dy", dy, -800)
	// Off the top-right corner: both axes at once.
	dx, dy = wrapDelta(canvas, TranslateMatrix(900, -100), Rect{-20, -150, 40, 200})
	assertNear(t, "dx", dx, -840)
	assertNear(t, "dy", dy, 800)
}

func TestWrapUsesRotatedExtent(t *testing.T) {
	canvas := Rect{0, 0, 800, 600}
	g := TranslateMatrix(-300, 300).Concat(RotateMatrix(math.Pi/2, 0, 0))
	dx, _ := wrapDelta(canvas, g, Rect{-20, -150, 40, 200})
	// Rotated a quarter turn the ship is 200 wide.
	assertNear(t, "dx", dx, 1000)
}

// --- Resize ---

func TestResizeBucketProperty(t *testing.T) {
	m := newTestModel(t, 0)
	m.StartAdjustingBodyHeight()
	rng := rand.New(rand.NewSource(7))

	startBody := m.body.Bounds().Height
	startShip := m.spaceship.Bounds().Height
	requested := 0.0
	for i := 0; i < 500; i++ {
		dy := (rng.Float64() - 0.5) * 80
		m.AdjustBodyHeightByGlobalMouseMove(0, dy)
		requested += -dy

		h := m.body.Bounds().Height
		if h < MinBodyHeight-epsilon || h > MaxBodyHeight+epsilon {
			t.Fatalf("step %d: body height %v out of range", i, h)
		}
		applied := h - startBody
		if math.Abs(requested-applied-m.Bucket()) > 1e-6 {
			t.Fatalf("step %d: requested %v - applied %v != bucket %v", i, requested, applied, m.Bucket())
		}
		assertNear(t, "ship grows with body", m.spaceship.Bounds().Height-startShip, applied)
		_, hy := m.handle.Local().Apply(0, 0)
		assertNear(t, "handle follows top", hy, -120-applied)
	}
}

func TestResizeBucketReversal(t *testing.T) {
	m := newTestModel(t, 0)
	m.StartAdjustingBodyHeight()

	// Shrink past the minimum: 120 → 55 applied, 35 parked.
	m.AdjustBodyHeightByGlobalMouseMove(0, 100)
	assertNear(t, "height", m.body.Bounds().Height, MinBodyHeight)
	assertNear(t, "bucket", m.Bucket(), -35)

	// Further shrinking only fills the bucket.
	m.AdjustBodyHeightByGlobalMouseMove(0, 10)
	assertNear(t, "bucket", m.Bucket(), -45)

	// Growing drains the bucket first.
	m.AdjustBodyHeightByGlobalMouseMove(0, -30)
	assertNear(t, "height", m.body.Bounds().Height, MinBodyHeight)
	assertNear(t, "bucket", m.Bucket(), -15)

	m.AdjustBodyHeightByGlobalMouseMove(0, -25)
	assertNear(t, "height", m.body.Bounds().Height, MinBodyHeight+10)
	assertNear(t, "bucket", m.Bucket(), 0)
}

func TestResizeIgnoredWhenNotAdjusting(t *testing.T) {
	m := newTestModel(t, 0)
	m.AdjustBodyHeightByGlobalMouseMove(0, -30)
	assertNear(t, "height", m.body.Bounds().Height, 120)

	m.StartAdjustingBodyHeight()
	m.AdjustBodyHeightByGlobalMouseMove(0, 100)
	m.StopAdjustingBodyHeight()
	m.StartAdjustingBodyHeight()
	if m.Bucket() != 0 {
		t.Errorf("bucket = %v after restart, want 0", m.Bucket())
	}
}

func TestResizeUnderScale(t *testing.T) {
	m := newTestModel(t, 0)
	m.RequestPowerUp()
	m.StartAdjustingBodyHeight()
	// The ship is drawn twice as large, so 20 screen pixels are 10 local units.
	m.AdjustBodyHeightByGlobalMouseMove(0, -20)
	assertNear(t, "height", m.body.Bounds().Height, 130)
}

// --- Dragging ---

func TestTranslateSpaceshipByGlobalMouseMove(t *testing.T) {
	m := newTestModel(t, 0)
	m.spaceship.Rotate(1, 0, 0)
	m.TranslateSpaceshipByGlobalMouseMove(15, -5)
	x, y := m.Spaceship().LocalToWorld(0, 0)
	assertNear(t, "x", x, 415)
	assertNear(t, "y", y, 355)
}

// --- Lifecycle ---

func TestClose(t *testing.T) {
	m := NewModel(ModelConfig{Clock: NewManualClock(testEpoch), Sound: &fakeSound{}})
	m.StartMovingForward()
	m.StartTurningTailRight()
	m.RequestPowerUp()
	m.Close()
	if m.sched.Len() != 0 {
		t.Errorf("%d tasks still scheduled", m.sched.Len())
	}
	if s := testSound(m); s.off != 1 {
		t.Errorf("ThrusterOff called %d times, want 1", s.off)
	}
	if m.Accelerating() {
		t.Error("still accelerating after Close")
	}
}
