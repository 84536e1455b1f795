package gantt

// ScrollView is a horizontally scrollable viewport over the timeline
// content. Its scrollable width is the laid-out width: it only changes when
// Reflow is called, so code that grows the content and scrolls in the same
// step sees the old width.
type ScrollView struct {
	offset      int
	clientWidth int
	scrollWidth int
}

// NewScrollView returns a view of clientWidth units over contentWidth units
// of content, scrolled to the start.
func NewScrollView(clientWidth, contentWidth int) *ScrollView {
	v := &ScrollView{clientWidth: max(clientWidth, 0)}
	v.Reflow(contentWidth)
	return v
}

// Offset returns the current horizontal scroll offset.
func (v *ScrollView) Offset() int { return v.offset }

// ClientWidth returns the visible width.
func (v *ScrollView) ClientWidth() int { return v.clientWidth }

// ScrollWidth returns the laid-out scrollable width, never less than the
// client width.
func (v *ScrollView) ScrollWidth() int { return v.scrollWidth }

// MaxOffset returns the largest valid offset.
func (v *ScrollView) MaxOffset() int {
	return max(v.scrollWidth-v.clientWidth, 0)
}

// SetOffset scrolls to x, clamped to [0, MaxOffset()].
func (v *ScrollView) SetOffset(x int) {
	v.offset = min(max(x, 0), v.MaxOffset())
}

// ScrollBy scrolls by dx units.
func (v *ScrollView) ScrollBy(dx int) {
	v.SetOffset(v.offset + dx)
}

// Resize changes the visible width and re-clamps the offset.
func (v *ScrollView) Resize(clientWidth int) {
	v.clientWidth = max(clientWidth, 0)
	v.scrollWidth = max(v.scrollWidth, v.clientWidth)
	v.SetOffset(v.offset)
}

// Reflow lays the content out again with its current width.
func (v *ScrollView) Reflow(contentWidth int) {
	v.scrollWidth = max(contentWidth, v.clientWidth)
	v.SetOffset(v.offset)
}

// FrameQueue holds work that must run on the next frame, after the content
// has been reflowed. It is the equivalent of requestAnimationFrame.
type FrameQueue struct {
	pending []func()
}

// Defer schedules fn for the next Flush.
func (q *FrameQueue) Defer(fn func()) {
	q.pending = append(q.pending, fn)
}

// Len returns the number of scheduled callbacks.
func (q *FrameQueue) Len() int { return len(q.pending) }

// Flush runs the callbacks scheduled so far and returns how many ran.
// Callbacks deferred while flushing wait for the following frame.
func (q *FrameQueue) Flush() int {
	run := q.pending
	q.pending = nil
	for _, fn := range run {
		fn()
	}
	return len(run)
}
