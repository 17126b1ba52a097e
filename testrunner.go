package viewport

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`
	Button string  `json:"button,omitempty"`
	Key    string  `json:"key,omitempty"`
	Delta  float64 `json:"delta,omitempty"`

	button MouseButton
	key    Key
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

// TestRunner sequences injected input events and screenshots across frames
// for automated testing of viewport tools. Attach to a Viewport via
// SetTestRunner.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a JSON test script and returns a TestRunner ready
// to be attached to a Viewport via SetTestRunner.
//
// Supported actions: click, drag, press, release, move, key, wheel, leave,
// wait, and screenshot. Button names are left, right, and middle (default
// left); key names are Ebitengine key names such as "Space" or "Digit1".
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i := range script.Steps {
		if err := script.Steps[i].resolve(); err != nil {
			return nil, fmt.Errorf("parse test script: step %d: %w", i, err)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

func (st *testStep) resolve() error {
	switch st.Action {
	case "click", "drag", "move", "wheel", "leave", "wait", "screenshot":
	case "press", "release":
		b, err := parseButton(st.Button)
		if err != nil {
			return err
		}
		st.button = b
	case "key":
		k, err := parseKey(st.Key)
		if err != nil {
			return err
		}
		st.key = k
	default:
		return fmt.Errorf("unknown action %q", st.Action)
	}
	return nil
}

func parseButton(name string) (MouseButton, error) {
	switch strings.ToLower(name) {
	case "", "left":
		return MouseButtonLeft, nil
	case "right":
		return MouseButtonRight, nil
	case "middle":
		return MouseButtonMiddle, nil
	}
	return MouseButtonNone, fmt.Errorf("unknown button %q", name)
}

func parseKey(name string) (Key, error) {
	for k := Key(0); k <= ebiten.KeyMax; k++ {
		if strings.EqualFold(k.String(), name) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown key %q", name)
}

// SetTestRunner attaches a TestRunner to the viewport. The runner's step
// method is called from Viewport.Update before input is dispatched.
func (vp *Viewport) SetTestRunner(runner *TestRunner) {
	vp.testRunner = runner
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the test runner by one frame. Called from Viewport.Update.
func (r *TestRunner) step(vp *Viewport) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(vp.injectQueue) > 0 {
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
		vp.Screenshot(st.Label)
	case "click":
		vp.InjectClick(st.X, st.Y)
	case "drag":
		vp.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "press":
		vp.InjectButtonPress(st.X, st.Y, st.button)
	case "release":
		vp.InjectButtonRelease(st.X, st.Y, st.button)
	case "move":
		vp.InjectMove(st.X, st.Y)
	case "key":
		vp.InjectKey(st.key, 0)
	case "wheel":
		vp.InjectWheel(st.X, st.Y, st.Delta)
	case "leave":
		vp.InjectLeave()
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(vp.injectQueue) == 0 {
		r.done = true
	}
}
