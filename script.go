package touchkit

import (
	"encoding/json"
	"fmt"
	"math"
)

// scriptStep is a single action in a gesture script.
type scriptStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	// From and To are finger distances for pinch and angles (radians) for
	// rotate. Radius is the finger distance from (X, Y) for rotate.
	From   float64 `json:"from,omitempty"`
	To     float64 `json:"to,omitempty"`
	Radius float64 `json:"radius,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

type script struct {
	Steps []scriptStep `json:"steps"`
}

// Export is one image produced by an "export" script step.
type Export struct {
	Label string
	Data  []byte
	Err   error
}

// ScriptRunner sequences injected pointer input, freeze toggles, and
// exports across frames. Attach it to a kit with SetScript; the kit runs one
// step per Update once previously injected input has drained.
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
	exports   []Export
}

// LoadScript parses a JSON gesture script.
func LoadScript(jsonData []byte) (*ScriptRunner, error) {
	var s script
	if err := json.Unmarshal(jsonData, &s); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(s.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	for i, st := range s.Steps {
		switch st.Action {
		case "tap", "press", "move", "release", "drag", "pinch", "rotate",
			"freeze", "unfreeze", "wait", "export":
		default:
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &ScriptRunner{steps: s.Steps}, nil
}

// SetScript attaches a runner. Pass nil to detach.
func (k *Kit) SetScript(r *ScriptRunner) {
	k.script = r
}

// Done reports whether every step has run and its input has drained.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// Exports returns the images produced by "export" steps, in order.
func (r *ScriptRunner) Exports() []Export {
	return r.exports
}

func (r *ScriptRunner) pendingInput(k *Kit) int {
	if k.recognizer == nil {
		return 0
	}
	return k.recognizer.Pending()
}

// step advances the runner by one frame. Called from Kit.Update.
func (r *ScriptRunner) step(k *Kit) {
	if r.done {
		return
	}
	if r.pendingInput(k) > 0 {
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

	rec := k.recognizer
	switch st.Action {
	case "freeze":
		k.Freeze(true)
	case "unfreeze":
		k.Freeze(false)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1
		}
	case "export":
		label := st.Label
		k.ExportImage(func(data []byte, err error) {
			r.exports = append(r.exports, Export{Label: label, Data: data, Err: err})
		})
	default:
		if rec == nil {
			k.logger.Warn("script step skipped: no recognizer", "action", st.Action)
			break
		}
		injectStep(rec, st)
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && r.pendingInput(k) == 0 {
		r.done = true
	}
}

const (
	scriptFinger0 = 1
	scriptFinger1 = 2
)

func injectStep(rec *Recognizer, st scriptStep) {
	frames := st.Frames
	if frames < 2 {
		frames = 2
	}
	switch st.Action {
	case "tap":
		rec.InjectClick(st.X, st.Y)
	case "press":
		rec.InjectPress(st.X, st.Y)
	case "move":
		rec.InjectMove(st.X, st.Y)
	case "release":
		rec.InjectRelease(st.X, st.Y)
	case "drag":
		rec.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, frames)
	case "pinch":
		injectTwoFinger(rec, frames, func(t float64) (float64, float64, float64, float64) {
			d := st.From + (st.To-st.From)*t
			return st.X - d/2, st.Y, st.X + d/2, st.Y
		})
	case "rotate":
		injectTwoFinger(rec, frames, func(t float64) (float64, float64, float64, float64) {
			a := st.From + (st.To-st.From)*t
			dx, dy := st.Radius*math.Cos(a), st.Radius*math.Sin(a)
			return st.X - dx, st.Y - dy, st.X + dx, st.Y + dy
		})
	}
}

// injectTwoFinger queues a two-finger gesture. at(t) returns both finger
// positions for t in [0, 1].
func injectTwoFinger(rec *Recognizer, frames int, at func(t float64) (x0, y0, x1, y1 float64)) {
	x0, y0, x1, y1 := at(0)
	rec.InjectPointer(scriptFinger0, x0, y0, true)
	rec.InjectPointer(scriptFinger1, x1, y1, true)
	steps := frames - 1
	for i := 1; i <= steps; i++ {
		x0, y0, x1, y1 = at(float64(i) / float64(steps))
		rec.InjectPointer(scriptFinger0, x0, y0, true)
		rec.InjectPointer(scriptFinger1, x1, y1, true)
	}
	rec.InjectPointer(scriptFinger0, x0, y0, false)
	rec.InjectPointer(scriptFinger1, x1, y1, false)
}
