package input

// TranslatorOption is a functional option for configuring a Translator.
type TranslatorOption func(*translatorImpl)

// WithDragCallbacks binds the drag gesture stream. Nil callbacks are ignored.
//
// Parameters:
//   - begin: called when a drag starts
//   - move: called with pixel deltas while dragging
//   - end: called when a drag ends
//
// Returns:
//   - TranslatorOption: option function to apply
func WithDragCallbacks(begin func(), move func(dx, dy float32), end func()) TranslatorOption {
	return func(t *translatorImpl) {
		if begin != nil {
			t.onDragBegin = begin
		}
		if move != nil {
			t.onDragBy = move
		}
		if end != nil {
			t.onDragEnd = end
		}
	}
}

// WithZoomCallback binds the zoom gesture stream.
//
// Parameters:
//   - zoom: called with signed zoom deltas
//
// Returns:
//   - TranslatorOption: option function to apply
func WithZoomCallback(zoom func(delta float32)) TranslatorOption {
	return func(t *translatorImpl) {
		if zoom != nil {
			t.onZoom = zoom
		}
	}
}

// WithHoverCallback binds the hover stream, fed by pointer motion outside of
// drags.
//
// Parameters:
//   - hover: called with the pointer position
//
// Returns:
//   - TranslatorOption: option function to apply
func WithHoverCallback(hover func(x, y float32)) TranslatorOption {
	return func(t *translatorImpl) {
		if hover != nil {
			t.onHover = hover
		}
	}
}
