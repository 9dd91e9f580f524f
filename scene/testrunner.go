package scene

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Step is one action of a test script.
//
// Built-in actions are click, hover, path (a button-up move from From to To
// over Frames), wait (Frames frames) and screenshot (Label). Any other
// action is passed to the handler registered for it with TestRunner.Handle.
type Step struct {
	Action string  `yaml:"action"`
	Label  string  `yaml:"label,omitempty"`
	X      float64 `yaml:"x,omitempty"`
	Y      float64 `yaml:"y,omitempty"`
	FromX  float64 `yaml:"fromX,omitempty"`
	FromY  float64 `yaml:"fromY,omitempty"`
	ToX    float64 `yaml:"toX,omitempty"`
	ToY    float64 `yaml:"toY,omitempty"`
	Frames int     `yaml:"frames,omitempty"`
	Count  int     `yaml:"count,omitempty"`
}

type testScript struct {
	Steps []Step `yaml:"steps"`
}

// TestRunner sequences injected input, screenshots and custom actions across
// frames. Attach it with Scene.SetTestRunner.
type TestRunner struct {
	steps     []Step
	handlers  map[string]func(Step)
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a YAML (or JSON) script of the form
//
//	steps:
//	  - {action: click, x: 100, y: 80}
//	  - {action: wait, frames: 30}
//	  - {action: screenshot, label: after-click}
func LoadTestScript(data []byte) (*TestRunner, error) {
	var script testScript
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	return &TestRunner{steps: script.Steps, handlers: make(map[string]func(Step))}, nil
}

// Handle registers fn for a custom action name.
func (r *TestRunner) Handle(action string, fn func(Step)) {
	r.handlers[action] = fn
}

// SetTestRunner attaches a runner. Its step runs at the start of each
// Scene.Step.
func (s *Scene) SetTestRunner(runner *TestRunner) {
	s.testRunner = runner
}

// Done reports whether every step has run and all injected input drained.
func (r *TestRunner) Done() bool {
	return r.done
}

// step runs at most one script step per frame.
func (r *TestRunner) step(s *Scene) {
	if r.done {
		return
	}
	if len(s.injectQueue) > 0 {
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
		s.Screenshot(st.Label)
	case "click":
		s.InjectClick(st.X, st.Y)
	case "hover":
		s.InjectHover(st.X, st.Y)
	case "path":
		s.InjectPath(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	default:
		if fn, ok := r.handlers[st.Action]; ok {
			fn(st)
		} else {
			_, _ = fmt.Fprintf(stderr, "[hearts] test script: unknown action %q\n", st.Action)
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(s.injectQueue) == 0 {
		r.done = true
	}
}
