package touchkit

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// PoseTween animates an element's pose toward a target. Every step is
// clamped by the element's bounding policy and persisted like a gesture
// update. If the element is closed or the kit is reset, the tween stops.
//
// The kit advances its own tweens in Update; Done reports completion.
type PoseTween struct {
	id     ElementID
	gen    uint64
	tweens [4]*gween.Tween
	Done   bool
}

// AnimateTo starts a tween of element id to pose over duration seconds using
// the easing function (ease.Linear when nil). Returns nil when id is unknown.
// A new tween on the same element replaces the old one. gween interpolates in
// float32, so intermediate poses on very large coordinates lose precision;
// the final step still lands on the float32 value of to.
func (k *Kit) AnimateTo(id ElementID, to Pose, duration float32, fn ease.TweenFunc) *PoseTween {
	e, err := k.reg.Get(id)
	if err != nil || k.torn {
		return nil
	}
	if fn == nil {
		fn = ease.Linear
	}
	from := e.Pose
	t := &PoseTween{id: id, gen: k.reg.Generation()}
	t.tweens[0] = gween.New(float32(from.X), float32(to.X), duration, fn)
	t.tweens[1] = gween.New(float32(from.Y), float32(to.Y), duration, fn)
	t.tweens[2] = gween.New(float32(from.Scale), float32(to.Scale), duration, fn)
	t.tweens[3] = gween.New(float32(from.Rotation), float32(to.Rotation), duration, fn)

	kept := k.tweens[:0]
	for _, old := range k.tweens {
		if old.id != id {
			kept = append(kept, old)
		}
	}
	k.tweens = append(kept, t)
	return t
}

// step advances the tween by dt seconds and applies the pose.
func (t *PoseTween) step(k *Kit, dt float32) {
	if t.Done {
		return
	}
	e, err := k.reg.Get(t.id)
	if err != nil || k.reg.Generation() != t.gen {
		t.Done = true
		return
	}
	var v [4]float64
	allDone := true
	for i, tw := range t.tweens {
		val, finished := tw.Update(dt)
		v[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	t.Done = allDone
	pose := Pose{X: v[0], Y: v[1], Scale: v[2], Rotation: v[3]}
	k.commitPose(e, Clamp(pose, e.Policy, e.Size, k.viewport))
}

func (k *Kit) updateTweens(dt float32) {
	if len(k.tweens) == 0 {
		return
	}
	kept := k.tweens[:0]
	for _, t := range k.tweens {
		t.step(k, dt)
		if !t.Done {
			kept = append(kept, t)
		}
	}
	for i := len(kept); i < len(k.tweens); i++ {
		k.tweens[i] = nil
	}
	k.tweens = kept
}
