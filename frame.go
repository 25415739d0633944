package touchkit

// Presenter receives pose updates at frame boundaries. Updates to one element
// between two frames collapse to the latest pose.
type Presenter interface {
	PresentPose(id ElementID, pose Pose, affordanceScale float64)
}

// Forgetter is implemented by presenters that keep per-element state. The kit
// calls Forget when an element is closed or discarded by Reset.
type Forgetter interface {
	Forget(id ElementID)
}

// frameQueue coalesces pose updates until the next flush. Flush order is the
// order in which elements were first queued since the previous flush.
type frameQueue struct {
	pending map[ElementID]Pose
	order   []ElementID
}

func (q *frameQueue) push(id ElementID, pose Pose) {
	if q.pending == nil {
		q.pending = make(map[ElementID]Pose)
	}
	if _, queued := q.pending[id]; !queued {
		q.order = append(q.order, id)
	}
	q.pending[id] = pose
}

// drop discards a queued update, e.g. for a removed element.
func (q *frameQueue) drop(id ElementID) {
	if _, queued := q.pending[id]; !queued {
		return
	}
	delete(q.pending, id)
	for i, v := range q.order {
		if v == id {
			q.order = append(q.order[:i], q.order[i+1:]...)
			break
		}
	}
}

func (q *frameQueue) len() int {
	return len(q.order)
}

func (q *frameQueue) flush(fn func(id ElementID, pose Pose)) {
	for _, id := range q.order {
		fn(id, q.pending[id])
	}
	q.clear()
}

func (q *frameQueue) clear() {
	clear(q.pending)
	q.order = q.order[:0]
}
