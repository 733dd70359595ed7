package input

import (
	"math"
	"sync"
)

// TouchPoint is a single active touch contact in window coordinates.
type TouchPoint struct {
	X float32
	Y float32
}

// translatorImpl is the implementation of the Translator interface.
//
// Mouse and touch events are normalized into the same three gesture streams
// (drag, zoom, hover) so the rest of the viewer never needs to know which
// device produced them. Exactly one drag can be active at a time; a second
// touch contact ends the drag and hands the gesture over to pinch.
type translatorImpl struct {
	mu *sync.Mutex

	dragging bool
	lastX    float32
	lastY    float32

	pinching      bool
	lastPinchDist float32

	onDragBegin func()
	onDragBy    func(dx, dy float32)
	onDragEnd   func()
	onZoom      func(delta float32)
	onHover     func(x, y float32)
}

// Translator normalizes raw pointer, touch, and wheel events into drag, zoom,
// and hover gestures.
type Translator interface {
	// PointerDown begins a mouse drag at the given position.
	//
	// Parameters:
	//   - x, y: pointer position
	PointerDown(x, y float32)

	// PointerMove reports pointer motion. The position feeds the hover
	// stream on every move, drag or not; while a drag is active the delta
	// from the previous position additionally feeds the drag stream.
	//
	// Parameters:
	//   - x, y: pointer position
	PointerMove(x, y float32)

	// PointerUp ends a mouse drag.
	PointerUp()

	// TouchStart reports the start of touch contacts. One contact begins a
	// drag; two begin a pinch. An empty contact list is ignored.
	//
	// Parameters:
	//   - points: all active contacts
	TouchStart(points []TouchPoint)

	// TouchMove reports touch motion. A single contact drives the drag
	// stream and feeds the hover stream; two contacts drive the zoom stream
	// with the change in contact separation. A drag in progress when a
	// second contact appears is ended first. An empty contact list is
	// ignored.
	//
	// Parameters:
	//   - points: all active contacts
	TouchMove(points []TouchPoint)

	// TouchEnd reports lifted contacts, with the remaining active contacts.
	//
	// Parameters:
	//   - points: contacts still active after the lift
	TouchEnd(points []TouchPoint)

	// Wheel reports a scroll wheel step on the zoom stream.
	//
	// Parameters:
	//   - delta: signed zoom delta, positive moves the camera away
	Wheel(delta float32)

	// Dragging returns whether a drag gesture is active.
	//
	// Returns:
	//   - bool: true while dragging
	Dragging() bool
}

var _ Translator = &translatorImpl{}

// NewTranslator creates a gesture Translator. Unset callbacks are no-ops.
//
// Parameters:
//   - options: functional options to bind gesture callbacks
//
// Returns:
//   - Translator: the newly created translator
func NewTranslator(options ...TranslatorOption) Translator {
	t := &translatorImpl{
		mu:          &sync.Mutex{},
		onDragBegin: func() {},
		onDragBy:    func(dx, dy float32) {},
		onDragEnd:   func() {},
		onZoom:      func(delta float32) {},
		onHover:     func(x, y float32) {},
	}
	for _, option := range options {
		option(t)
	}
	return t
}

func (t *translatorImpl) PointerDown(x, y float32) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.beginDrag(x, y)
}

func (t *translatorImpl) PointerMove(x, y float32) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onHover(x, y)
	if t.dragging {
		t.moveDrag(x, y)
	}
}

func (t *translatorImpl) PointerUp() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.endDrag()
}

func (t *translatorImpl) TouchStart(points []TouchPoint) {
	t.mu.Lock()
	defer t.mu.Unlock()
	switch len(points) {
	case 0:
		return
	case 1:
		t.endPinch()
		t.beginDrag(points[0].X, points[0].Y)
	default:
		t.endDrag()
		t.beginPinch(points)
	}
}

func (t *translatorImpl) TouchMove(points []TouchPoint) {
	t.mu.Lock()
	defer t.mu.Unlock()
	switch len(points) {
	case 0:
		return
	case 1:
		t.endPinch()
		t.onHover(points[0].X, points[0].Y)
		if !t.dragging {
			t.beginDrag(points[0].X, points[0].Y)
			return
		}
		t.moveDrag(points[0].X, points[0].Y)
	default:
		t.endDrag()
		if !t.pinching {
			t.beginPinch(points)
			return
		}
		dist := contactDistance(points)
		// Contacts moving together shrink the separation, producing a
		// positive delta that pushes the camera away.
		t.onZoom(t.lastPinchDist - dist)
		t.lastPinchDist = dist
	}
}

func (t *translatorImpl) TouchEnd(points []TouchPoint) {
	t.mu.Lock()
	defer t.mu.Unlock()
	switch len(points) {
	case 0:
		t.endDrag()
		t.endPinch()
	case 1:
		t.endPinch()
		if t.dragging {
			t.lastX = points[0].X
			t.lastY = points[0].Y
		} else {
			t.beginDrag(points[0].X, points[0].Y)
		}
	default:
		t.endDrag()
		t.beginPinch(points)
	}
}

func (t *translatorImpl) Wheel(delta float32) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onZoom(delta)
}

func (t *translatorImpl) Dragging() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.dragging
}

// beginDrag starts a drag at the given anchor. Caller must hold the mutex.
func (t *translatorImpl) beginDrag(x, y float32) {
	if t.dragging {
		t.lastX, t.lastY = x, y
		return
	}
	t.dragging = true
	t.lastX, t.lastY = x, y
	t.onDragBegin()
}

// moveDrag emits the delta from the previous anchor. Caller must hold the
// mutex.
func (t *translatorImpl) moveDrag(x, y float32) {
	dx := x - t.lastX
	dy := y - t.lastY
	t.lastX, t.lastY = x, y
	if dx != 0 || dy != 0 {
		t.onDragBy(dx, dy)
	}
}

// endDrag finishes an active drag. Caller must hold the mutex.
func (t *translatorImpl) endDrag() {
	if !t.dragging {
		return
	}
	t.dragging = false
	t.onDragEnd()
}

// beginPinch records the initial contact separation. Caller must hold the
// mutex.
func (t *translatorImpl) beginPinch(points []TouchPoint) {
	t.pinching = true
	t.lastPinchDist = contactDistance(points)
}

// endPinch finishes an active pinch. Caller must hold the mutex.
func (t *translatorImpl) endPinch() {
	t.pinching = false
}

// contactDistance returns the separation of the first two contacts.
func contactDistance(points []TouchPoint) float32 {
	dx := float64(points[1].X - points[0].X)
	dy := float64(points[1].Y - points[0].Y)
	return float32(math.Hypot(dx, dy))
}
