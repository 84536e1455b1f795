package gantt

// GestureKind is the phase of a pointer or touch gesture.
type GestureKind int

const (
	GestureDown GestureKind = iota
	GestureMove
	GestureUp
	GestureLeave
)

var gestureNames = []string{"down", "move", "up", "leave"}

func (k GestureKind) String() string {
	if k < 0 || int(k) >= len(gestureNames) {
		return "unknown"
	}
	return gestureNames[k]
}

// Gesture is one input event, independent of the device that produced it.
// X is relative to the left edge of the scroll viewport. HasX is false when
// the event carried no coordinate, such as a touch event with no active
// touch point.
type Gesture struct {
	Kind GestureKind
	X    int
	HasX bool
}

// Pointer builds a gesture from a mouse-like device.
func Pointer(kind GestureKind, x int) Gesture {
	return Gesture{Kind: kind, X: x, HasX: true}
}

// Touch builds a gesture from the x coordinates of the active touch points.
// Only the first point is tracked.
func Touch(kind GestureKind, points []int) Gesture {
	if len(points) == 0 {
		return Gesture{Kind: kind}
	}
	return Gesture{Kind: kind, X: points[0], HasX: true}
}
