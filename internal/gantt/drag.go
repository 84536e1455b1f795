package gantt

// DragState is the state of the drag controller.
type DragState int

const (
	Idle DragState = iota
	Dragging
)

func (s DragState) String() string {
	if s == Dragging {
		return "dragging"
	}
	return "idle"
}

// Default edge extension settings.
const (
	DefaultEdgeThreshold = 50
	DefaultExtendDays    = 5
)

// Extension controls growing the timeline when a drag nears one of its
// edges. With Enabled false the timeline keeps its computed range.
type Extension struct {
	Enabled       bool
	EdgeThreshold int
	Days          int
}

// DefaultExtension returns the infinite-timeline settings, disabled.
func DefaultExtension() Extension {
	return Extension{EdgeThreshold: DefaultEdgeThreshold, Days: DefaultExtendDays}
}

// Outcome reports what a gesture did.
type Outcome struct {
	Scrolled  bool
	Appended  int // days added after the end
	Prepended int // days added before the start
	Released  bool
	// Click is set on a release that ends a gesture whose pointer never
	// moved.
	Click bool
}

// DragController turns drag gestures into scroll offset changes on a
// ScrollView and, when extension is enabled, grows the timeline at its
// edges.
type DragController struct {
	timeline *Timeline
	view     *ScrollView
	frames   *FrameQueue
	ext      Extension

	state              DragState
	pointerOriginX     int
	scrollOriginOffset int
	downX              int
	moved              bool
	pendingPrepend     bool
}

// NewDragController wires a controller to the timeline it extends, the view
// it scrolls and the queue that runs its next-frame work.
func NewDragController(tl *Timeline, view *ScrollView, frames *FrameQueue, ext Extension) *DragController {
	if ext.Days <= 0 {
		ext.Days = DefaultExtendDays
	}
	if ext.EdgeThreshold < 0 {
		ext.EdgeThreshold = 0
	}
	return &DragController{timeline: tl, view: view, frames: frames, ext: ext}
}

// State returns the current state.
func (c *DragController) State() DragState { return c.state }

// Extension returns the edge extension settings.
func (c *DragController) Extension() Extension { return c.ext }

// Origin returns the pointer x and scroll offset the current drag is
// measured from.
func (c *DragController) Origin() (pointerX, scrollOffset int) {
	return c.pointerOriginX, c.scrollOriginOffset
}

// Handle applies one gesture. Gestures without a coordinate are ignored,
// except releases, which need none.
func (c *DragController) Handle(g Gesture) Outcome {
	switch g.Kind {
	case GestureDown:
		return c.press(g)
	case GestureMove:
		return c.move(g)
	case GestureUp, GestureLeave:
		return c.release(g)
	}
	return Outcome{}
}

func (c *DragController) press(g Gesture) Outcome {
	if !g.HasX {
		return Outcome{}
	}
	c.state = Dragging
	c.pointerOriginX = g.X
	c.scrollOriginOffset = c.view.Offset()
	c.downX = g.X
	c.moved = false
	return Outcome{}
}

func (c *DragController) move(g Gesture) Outcome {
	if c.state != Dragging || !g.HasX {
		return Outcome{}
	}
	if g.X != c.downX {
		c.moved = true
	}

	before := c.view.Offset()
	c.view.SetOffset(c.scrollOriginOffset + (c.pointerOriginX - g.X))
	out := c.CheckEdges(g.X)
	out.Scrolled = c.view.Offset() != before
	return out
}

func (c *DragController) release(g Gesture) Outcome {
	if c.state != Dragging {
		return Outcome{}
	}
	c.state = Idle
	return Outcome{
		Released: true,
		Click:    g.Kind == GestureUp && !c.moved,
	}
}

// CheckEdges extends the timeline when the view is within the edge
// threshold of either end. pointerX is where the drag origin is re-anchored
// after a prepend. It does nothing when extension is disabled.
func (c *DragController) CheckEdges(pointerX int) Outcome {
	var out Outcome
	if !c.ext.Enabled {
		return out
	}

	offset := c.view.Offset()
	if offset+c.view.ClientWidth() >= c.view.ScrollWidth()-c.ext.EdgeThreshold {
		c.timeline.Append(c.ext.Days)
		out.Appended = c.ext.Days
	}

	if offset < c.ext.EdgeThreshold && !c.pendingPrepend {
		c.timeline.Prepend(c.ext.Days)
		out.Prepended = c.ext.Days
		c.pendingPrepend = true

		// The shift has to wait until the prepended days are laid out;
		// applied now it would be clamped against the old scroll width.
		shift := c.ext.Days * c.timeline.DayWidth()
		c.frames.Defer(func() { c.compensate(shift, pointerX) })
	}
	return out
}

func (c *DragController) compensate(shift, pointerX int) {
	c.pendingPrepend = false
	c.view.SetOffset(c.view.Offset() + shift)
	if c.state == Dragging {
		c.scrollOriginOffset = c.view.Offset()
		c.pointerOriginX = pointerX
	}
}
