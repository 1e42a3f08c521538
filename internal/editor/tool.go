package editor

import "fmt"

// Tool is the active editing tool.
type Tool int

const (
	Pen Tool = iota
	Eraser
	Bucket
	Picker
	Line
	Rect
	Circle
	Lighten
	Darken
	Select
)

// Tools lists every tool in toolbar order.
var Tools = []Tool{Select, Pen, Eraser, Picker, Bucket, Line, Rect, Circle, Lighten, Darken}

var toolNames = map[Tool]string{
	Pen:     "pen",
	Eraser:  "eraser",
	Bucket:  "bucket",
	Picker:  "picker",
	Line:    "line",
	Rect:    "rect",
	Circle:  "circle",
	Lighten: "lighten",
	Darken:  "darken",
	Select:  "select",
}

// shortcuts maps single-key shortcuts to tools.
var shortcuts = map[rune]Tool{
	's': Select,
	'p': Pen,
	'e': Eraser,
	'i': Picker,
	'b': Bucket,
	'l': Line,
	'r': Rect,
	'c': Circle,
	'u': Lighten,
	'd': Darken,
}

func (t Tool) String() string {
	if name, ok := toolNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Tool(%d)", int(t))
}

// Shortcut returns the key that selects t.
func (t Tool) Shortcut() rune {
	for r, tool := range shortcuts {
		if tool == t {
			return r
		}
	}
	return 0
}

// Shape reports whether t draws a shape between drag start and release.
func (t Tool) Shape() bool {
	return t == Line || t == Rect || t == Circle
}

// Freehand reports whether t applies continuously along the pointer path.
func (t Tool) Freehand() bool {
	return t == Pen || t == Eraser || t == Lighten || t == Darken
}

// ParseTool looks a tool up by name.
func ParseTool(name string) (Tool, error) {
	for t, n := range toolNames {
		if n == name {
			return t, nil
		}
	}
	return Pen, fmt.Errorf("editor: unknown tool %q", name)
}

// ToolForKey returns the tool bound to a shortcut key.
func ToolForKey(r rune) (Tool, bool) {
	t, ok := shortcuts[r]
	return t, ok
}
