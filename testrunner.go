package easel

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action string   `json:"action"`
	Label  string   `json:"label,omitempty"`
	X      float64  `json:"x,omitempty"`
	Y      float64  `json:"y,omitempty"`
	FromX  float64  `json:"fromX,omitempty"`
	FromY  float64  `json:"fromY,omitempty"`
	ToX    float64  `json:"toX,omitempty"`
	ToY    float64  `json:"toY,omitempty"`
	DX     float64  `json:"dx,omitempty"`
	DY     float64  `json:"dy,omitempty"`
	Frames int      `json:"frames,omitempty"`
	Key    string   `json:"key,omitempty"`
	Mods   []string `json:"mods,omitempty"`

	// Expectations, checked by "expect" steps.
	Mode     string   `json:"mode,omitempty"`
	Selected []string `json:"selected,omitempty"`

	mods KeyModifiers
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

// scriptActions lists the recognized step actions.
var scriptActions = []string{"click", "doubleclick", "drag", "hover", "key", "wheel", "wait", "screenshot", "expect"}

// TestRunner sequences injected input, expectations and screenshots across
// frames for automated testing. Attach it to a Game via SetTestRunner.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
	failures  []string
}

// LoadTestScript parses a JSON test script and returns a TestRunner ready
// to be attached to a Game.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("easel: parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("easel: parse test script: no steps")
	}
	for i := range script.Steps {
		st := &script.Steps[i]
		if !slices.Contains(scriptActions, st.Action) {
			return nil, fmt.Errorf("easel: parse test script: step %d: unknown action %q", i, st.Action)
		}
		mods, err := parseModifiers(st.Mods)
		if err != nil {
			return nil, fmt.Errorf("easel: parse test script: step %d: %w", i, err)
		}
		st.mods = mods
		if st.Action == "key" && st.Key == "" {
			return nil, fmt.Errorf("easel: parse test script: step %d: key step without key", i)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// parseModifiers converts modifier names ("shift", "ctrl", "alt", "meta")
// into a modifier set.
func parseModifiers(names []string) (KeyModifiers, error) {
	var mods KeyModifiers
	for _, n := range names {
		m := modifierForKey(NormalizeKey(n))
		if m == 0 {
			return 0, fmt.Errorf("unknown modifier %q", n)
		}
		mods |= m
	}
	return mods, nil
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// Failures returns the messages of failed expect steps.
func (r *TestRunner) Failures() []string {
	return append([]string(nil), r.failures...)
}

// step advances the runner by one frame. Called from Game.Update before
// input is processed.
func (r *TestRunner) step(in *EbitenInput, ctrl *Controller, shoot func(label string)) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if in.Pending() > 0 {
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
		if shoot != nil {
			shoot(st.Label)
		}
	case "click":
		in.InjectButton(st.X, st.Y, MouseButtonLeft, true, st.mods)
		in.InjectButton(st.X, st.Y, MouseButtonLeft, false, st.mods)
	case "doubleclick":
		in.InjectClick(st.X, st.Y)
		in.InjectClick(st.X, st.Y)
	case "hover":
		in.InjectHover(st.X, st.Y)
	case "drag":
		in.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, max(st.Frames, 2), st.mods)
	case "key":
		in.InjectKey(st.Key, st.mods)
	case "wheel":
		in.InjectWheel(st.X, st.Y, st.DX, st.DY, st.mods)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "expect":
		r.check(r.cursor-1, st, ctrl)
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && in.Pending() == 0 {
		r.done = true
	}
}

// check compares the controller state against an expect step.
func (r *TestRunner) check(i int, st testStep, ctrl *Controller) {
	if st.Mode != "" && ctrl.Mode().String() != st.Mode {
		r.failures = append(r.failures, fmt.Sprintf("step %d: mode = %s, want %s", i, ctrl.Mode(), st.Mode))
	}
	if st.Selected != nil {
		got := ctrl.Selection()
		want := append([]string(nil), st.Selected...)
		slices.Sort(got)
		slices.Sort(want)
		if !slices.Equal(got, want) {
			r.failures = append(r.failures, fmt.Sprintf("step %d: selected = [%s], want [%s]",
				i, strings.Join(got, " "), strings.Join(want, " ")))
		}
	}
}
