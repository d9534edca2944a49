package renderer

import "github.com/richinsley/rendertask/graphics"

// HandleEvent dispatches one window event and reports whether it asked the
// window to close. Only an escape key press does that today; other events
// are accepted and ignored.
func HandleEvent(w graphics.Window, ev graphics.Event) bool {
	switch ev.Kind {
	case graphics.EventKey:
		if ev.Key == graphics.KeyEscape && ev.Action == graphics.Press {
			w.RequestClose()
			return true
		}
	}
	return false
}
