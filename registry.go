package easel

import (
	"errors"
	"fmt"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
)

// WidgetState carries the interaction flags a renderer may reflect.
type WidgetState struct {
	Selected bool
	Hovered  bool
	Editing  bool
}

// WidgetRenderer draws one widget type onto the screen. t converts the
// widget's canvas geometry to screen space.
type WidgetRenderer interface {
	DrawWidget(dst *ebiten.Image, w Widget, t CanvasTransform, state WidgetState)
}

// WidgetRendererFunc adapts a function to WidgetRenderer.
type WidgetRendererFunc func(dst *ebiten.Image, w Widget, t CanvasTransform, state WidgetState)

// DrawWidget calls f.
func (f WidgetRendererFunc) DrawWidget(dst *ebiten.Image, w Widget, t CanvasTransform, state WidgetState) {
	f(dst, w, t, state)
}

// ErrDuplicateType is returned when a widget type is registered twice.
var ErrDuplicateType = errors.New("easel: widget type already registered")

// Registry maps widget types to renderers. Types without a renderer use the
// fallback.
type Registry struct {
	renderers map[string]WidgetRenderer
	fallback  WidgetRenderer
}

// NewRegistry creates a registry. A nil fallback draws plain boxes.
func NewRegistry(fallback WidgetRenderer) *Registry {
	if fallback == nil {
		fallback = &BoxRenderer{Fill: Color{0.93, 0.93, 0.96, 1}, Stroke: Color{0.35, 0.35, 0.4, 1}}
	}
	return &Registry{renderers: make(map[string]WidgetRenderer), fallback: fallback}
}

// Register binds r to typ.
func (r *Registry) Register(typ string, wr WidgetRenderer) error {
	if typ == "" {
		return errors.New("easel: widget type must not be empty")
	}
	if wr == nil {
		return fmt.Errorf("easel: nil renderer for type %q", typ)
	}
	if _, dup := r.renderers[typ]; dup {
		return fmt.Errorf("%w: %q", ErrDuplicateType, typ)
	}
	r.renderers[typ] = wr
	return nil
}

// Lookup returns the renderer for typ, or the fallback.
func (r *Registry) Lookup(typ string) WidgetRenderer {
	if wr, ok := r.renderers[typ]; ok {
		return wr
	}
	return r.fallback
}

// Has reports whether typ has its own renderer.
func (r *Registry) Has(typ string) bool {
	_, ok := r.renderers[typ]
	return ok
}

// Types returns the registered types, sorted.
func (r *Registry) Types() []string {
	out := make([]string, 0, len(r.renderers))
	for t := range r.renderers {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
