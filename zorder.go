package touchkit

// ZStack is the back-to-front stacking order of child elements. The
// background is implicitly behind everything and never appears in it.
type ZStack struct {
	ids []ElementID
}

// Insert appends id on top. Inserting an id that is already present is a no-op.
func (z *ZStack) Insert(id ElementID) {
	if z.index(id) >= 0 {
		return
	}
	z.ids = append(z.ids, id)
}

// Remove deletes id, letting the next-highest element become the top.
// No-op if id is absent.
func (z *ZStack) Remove(id ElementID) {
	i := z.index(id)
	if i < 0 {
		return
	}
	copy(z.ids[i:], z.ids[i+1:])
	z.ids = z.ids[:len(z.ids)-1]
}

// RaiseToTop moves id to the end of the order, keeping the relative order of
// the rest. No-op if id is absent.
func (z *ZStack) RaiseToTop(id ElementID) {
	i := z.index(id)
	if i < 0 || i == len(z.ids)-1 {
		return
	}
	copy(z.ids[i:], z.ids[i+1:])
	z.ids[len(z.ids)-1] = id
}

// Order returns the live back-to-front sequence. The returned slice MUST NOT
// be mutated and is invalidated by the next mutation.
func (z *ZStack) Order() []ElementID {
	return z.ids
}

// Contains reports whether id is in the stack.
func (z *ZStack) Contains(id ElementID) bool {
	return z.index(id) >= 0
}

// Len returns the number of stacked elements.
func (z *ZStack) Len() int {
	return len(z.ids)
}

// Clear empties the stack.
func (z *ZStack) Clear() {
	z.ids = z.ids[:0]
}

func (z *ZStack) index(id ElementID) int {
	for i, v := range z.ids {
		if v == id {
			return i
		}
	}
	return -1
}
