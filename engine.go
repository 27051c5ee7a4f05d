package claymark

// ViewportMode distinguishes a fullscreen host viewport from an inline one
// (spec §9a). It affects nothing in the solver; it's a hint carried through
// to cmd/demo, grounded on the teacher's App.inline/NewInlineApp.
type ViewportMode uint8

const (
	Fullscreen ViewportMode = iota
	Inline
)

// LayoutEngine is the public facade implementing spec §6's operation
// table: one instance owns one arena, one text shaper, and one
// interaction probe, and is built/torn down once per frame via
// BeginLayout/EndLayout.
type LayoutEngine struct {
	viewport Dimensions
	mode     ViewportMode

	arena  *arena
	shaper *textShaper
	probe  *interactionProbe

	state builderState

	onError      ErrorCallback
	errors       errorRing
	pendingFatal *LayoutError

	pages *pageRegistry

	lastCommands []RenderCommand
	lastEvents   []Event
}

// EngineOption configures a LayoutEngine at construction. Grounded on the
// pack's constructor conventions (NewApp, NewFrame, NewBuffer all expose
// either chained setters or options); options are used here because
// New(viewport_w, viewport_h) already fixes the positional constructor
// signature in spec §6's table.
type EngineOption func(*LayoutEngine)

// WithErrorCallback installs a host error callback in addition to the
// engine's own ring-buffer recorder.
func WithErrorCallback(cb ErrorCallback) EngineOption {
	return func(e *LayoutEngine) { e.onError = cb }
}

// WithArenaBudget overrides DefaultArenaBudget for this engine.
func WithArenaBudget(budget ArenaBudget) EngineOption {
	return func(e *LayoutEngine) { e.arena = newArena(budget) }
}

// WithTextMeasureFunc overrides RuneWidthSizer as the text shaper bridge's
// measurement callback (spec §4.5/§4.12).
func WithTextMeasureFunc(fn TextMeasureFunc) EngineOption {
	return func(e *LayoutEngine) { e.shaper = newTextShaper(fn) }
}

// WithViewportMode sets Fullscreen vs Inline (spec §9a).
func WithViewportMode(mode ViewportMode) EngineOption {
	return func(e *LayoutEngine) { e.mode = mode }
}

// NewLayoutEngine constructs an engine for a viewport of the given size in
// device pixels (terminal cells).
func NewLayoutEngine(viewportW, viewportH int32, opts ...EngineOption) *LayoutEngine {
	e := &LayoutEngine{
		viewport: Dimensions{W: Pixels(viewportW), H: Pixels(viewportH)},
		arena:    newArena(DefaultArenaBudget),
		shaper:   newTextShaper(RuneWidthSizer),
		probe:    newInteractionProbe(),
		pages:    newPageRegistry(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SetViewportSize updates the viewport dimensions, e.g. on a terminal
// resize event.
func (e *LayoutEngine) SetViewportSize(w, h int32) {
	e.viewport = Dimensions{W: Pixels(w), H: Pixels(h)}
}

// ViewportSize returns the current viewport dimensions.
func (e *LayoutEngine) ViewportSize() Dimensions { return e.viewport }

// LastCommands returns the render command list from the most recently
// completed EndLayout call, if any.
func (e *LayoutEngine) LastCommands() []RenderCommand { return e.lastCommands }

// RecentErrors returns the engine's own ring-buffer error history, for
// hosts that don't install an ErrorCallback.
func (e *LayoutEngine) RecentErrors() []LayoutError { return e.errors.recent() }
