package starship

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// testStep is a single action in a test script.
type testStep struct {
	Action string  `json:"action" yaml:"action"`
	Label  string  `json:"label,omitempty" yaml:"label,omitempty"`
	X      float64 `json:"x,omitempty" yaml:"x,omitempty"`
	Y      float64 `json:"y,omitempty" yaml:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty" yaml:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty" yaml:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty" yaml:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty" yaml:"toY,omitempty"`
	Key    string  `json:"key,omitempty" yaml:"key,omitempty"`
	Frames int     `json:"frames,omitempty" yaml:"frames,omitempty"`
}

// testScript is the top-level structure of a test script.
type testScript struct {
	Steps []testStep `json:"steps" yaml:"steps"`
}

// scriptKeys maps the key names accepted by the "key" action.
var scriptKeys = map[string]Key{
	"forward":  KeyForward,
	"left":     KeyTurnLeft,
	"right":    KeyTurnRight,
	"power-up": KeyPowerUp,
}

var scriptActions = map[string]bool{
	"screenshot": true,
	"click":      true,
	"drag":       true,
	"wait":       true,
	"key":        true,
}

// TestRunner sequences injected input events and screenshots across frames
// for automated visual testing. Attach to a Game via SetTestRunner.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a JSON test script.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, errors.Wrap(err, "parse test script")
	}
	return newTestRunner(script)
}

// LoadTestScriptYAML parses a YAML test script.
func LoadTestScriptYAML(data []byte) (*TestRunner, error) {
	var script testScript
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, errors.Wrap(err, "parse test script")
	}
	return newTestRunner(script)
}

// LoadTestScriptFile reads a test script from path. Files ending in .yaml or
// .yml are parsed as YAML, everything else as JSON.
func LoadTestScriptFile(path string) (*TestRunner, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read test script %s", path)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return LoadTestScriptYAML(data)
	}
	return LoadTestScript(data)
}

func newTestRunner(script testScript) (*TestRunner, error) {
	if len(script.Steps) == 0 {
		return nil, errors.New("parse test script: no steps")
	}
	for i, st := range script.Steps {
		if !scriptActions[st.Action] {
			return nil, errors.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
		if st.Action == "key" {
			if _, ok := scriptKeys[st.Key]; !ok {
				return nil, errors.Errorf("parse test script: step %d: unknown key %q", i, st.Key)
			}
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches a TestRunner to the game. The runner's step method
// is called from Game.Update before input is processed.
func (g *Game) SetTestRunner(runner *TestRunner) {
	g.testRunner = runner
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the test runner by one frame.
func (r *TestRunner) step(g *Game) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(g.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "screenshot":
		g.Screenshot(st.Label)
	case "click":
		g.InjectClick(st.X, st.Y)
	case "drag":
		g.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "key":
		g.InjectKeyHold(scriptKeys[st.Key], st.Frames)
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(g.injectQueue) == 0 {
		r.done = true
	}
}
