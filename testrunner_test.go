package starship

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadTestScript(t *testing.T) {
	data := []byte(`{
		"steps": [
			{"action": "screenshot", "label": "initial"},
			{"action": "click", "x": 100, "y": 200},
			{"action": "wait", "frames": 3},
			{"action": "key", "key": "forward", "frames": 10},
			{"action": "screenshot", "label": "after-click"}
		]
	}`)

	runner, err := LoadTestScript(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runner.steps) != 5 {
		t.Fatalf("expected 5 steps, got %d", len(runner.steps))
	}
	if runner.steps[1].Action != "click" || runner.steps[1].X != 100 || runner.steps[1].Y != 200 {
		t.Error("step 1 mismatch")
	}
	if runner.steps[3].Key != "forward" || runner.steps[3].Frames != 10 {
		t.Error("step 3 mismatch")
	}
}

func TestLoadTestScriptYAML(t *testing.T) {
	data := []byte(`
steps:
  - action: drag
    fromX: 1
    fromY: 2
    toX: 3
    toY: 4
    frames: 5
  - action: key
    key: power-up
`)
	runner, err := LoadTestScriptYAML(data)
	if err != nil {
		t.Fatal(err)
	}
	st := runner.steps[0]
	if st.Action != "drag" || st.FromX != 1 || st.FromY != 2 || st.ToX != 3 || st.ToY != 4 || st.Frames != 5 {
		t.Errorf("step 0 = %+v", st)
	}
	if runner.steps[1].Key != "power-up" {
		t.Errorf("step 1 = %+v", runner.steps[1])
	}
}

func TestLoadTestScript_Invalid(t *testing.T) {
	tests := map[string]string{
		"not json":      `not json`,
		"empty":         `{"steps": []}`,
		"bad action":    `{"steps": [{"action": "jump"}]}`,
		"bad key":       `{"steps": [{"action": "key", "key": "down"}]}`,
		"missing steps": `{}`,
	}
	for name, data := range tests {
		if _, err := LoadTestScript([]byte(data)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestLoadTestScriptFile(t *testing.T) {
	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "tour.yml")
	if err := os.WriteFile(yamlPath, []byte("steps:\n  - action: wait\n    frames: 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadTestScriptFile(yamlPath); err != nil {
		t.Errorf("yaml: %v", err)
	}

	jsonPath := filepath.Join(dir, "tour.json")
	if err := os.WriteFile(jsonPath, []byte(`{"steps":[{"action":"wait"}]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadTestScriptFile(jsonPath); err != nil {
		t.Errorf("json: %v", err)
	}

	if _, err := LoadTestScriptFile(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestRunnerStep_Click(t *testing.T) {
	g := newTestGame(t)
	runner, err := LoadTestScript([]byte(`{"steps": [{"action": "click", "x": 400, "y": 300}]}`))
	if err != nil {
		t.Fatal(err)
	}
	g.SetTestRunner(runner)

	// First step: click queues press+release.
	runner.step(g)
	if len(g.injectQueue) != 2 {
		t.Fatalf("expected 2 queued events, got %d", len(g.injectQueue))
	}
	if runner.Done() {
		t.Error("runner should not be done while inject queue has events")
	}

	g.processInjectedInput()
	g.processInjectedInput()

	runner.step(g)
	if !runner.Done() {
		t.Error("runner should be done after all steps executed and queue drained")
	}
}

func TestRunnerStep_Wait(t *testing.T) {
	g := newTestGame(t)
	runner, err := LoadTestScript([]byte(`{"steps": [
		{"action": "wait", "frames": 3},
		{"action": "screenshot", "label": "after"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}

	runner.step(g) // wait starts, counts as frame 1
	runner.step(g) // frame 2
	runner.step(g) // frame 3
	if len(g.screenshotQueue) != 0 {
		t.Fatal("screenshot taken before wait finished")
	}
	runner.step(g)
	if len(g.screenshotQueue) != 1 || g.screenshotQueue[0] != "after" {
		t.Errorf("screenshotQueue = %v", g.screenshotQueue)
	}
	if !runner.Done() {
		t.Error("runner should be done")
	}
}

func TestRunnerStep_Key(t *testing.T) {
	g := newTestGame(t)
	runner, err := LoadTestScript([]byte(`{"steps": [{"action": "key", "key": "left", "frames": 4}]}`))
	if err != nil {
		t.Fatal(err)
	}
	runner.step(g)
	if len(g.injectQueue) != 4 {
		t.Fatalf("queue len = %d, want 4", len(g.injectQueue))
	}
	g.processInjectedInput()
	if g.Model().tailLeft == nil {
		t.Error("left key hold did not start turning")
	}
	for g.processInjectedInput() {
	}
	if g.Model().tailLeft != nil {
		t.Error("left key release did not stop turning")
	}
	runner.step(g)
	if !runner.Done() {
		t.Error("runner should be done")
	}
}

func TestRunnerWaitsForInjectQueue(t *testing.T) {
	g := newTestGame(t)
	runner, err := LoadTestScript([]byte(`{"steps": [
		{"action": "drag", "fromX": 0, "fromY": 0, "toX": 10, "toY": 10, "frames": 3},
		{"action": "screenshot", "label": "x"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	runner.step(g)
	runner.step(g) // queue not drained: no advance
	if len(g.screenshotQueue) != 0 {
		t.Error("runner advanced while injections pending")
	}
}
