package claymark

// builderState tracks where a LayoutEngine is in the single build cycle the
// spec mandates: BeginLayout opens it, a balanced sequence of
// OpenElement/ConfigureElement/CloseElement calls populates it, EndLayout
// closes it and runs the solver (spec §4.4, §5).
type builderState uint8

const (
	stateIdle builderState = iota
	stateBuilding
	stateSolved
)

// BeginLayout starts a new element-tree build for this frame, resetting
// the arena with a single bump-pointer truncation (grounded on the
// teacher's Frame.Build calling Reset first). Calling it while already
// building reports ErrorUnbalancedElements rather than silently
// re-entering, since the spec requires builder calls not to re-enter
// (§5).
func (e *LayoutEngine) BeginLayout() {
	if e.state != stateIdle {
		e.reportError(LayoutError{Kind: ErrorUnbalancedElements, Message: "begin_layout called while already building"})
		return
	}
	e.arena.reset()
	e.shaper.reset()
	e.pendingFatal = nil
	e.state = stateBuilding
}

// OpenElement pushes a new container element onto the open stack with an
// empty, dangling configuration slot (spec §4.4) and makes it the current
// parent for subsequent builder calls. Its identity isn't known until
// ConfigureElement runs, since an explicit id() comes from the
// configuration descriptor, not from OpenElement itself.
func (e *LayoutEngine) OpenElement() {
	if e.state != stateBuilding {
		e.reportError(LayoutError{Kind: ErrorUnbalancedElements, Message: "open_element called outside begin_layout/end_layout"})
		return
	}
	idx, ok := e.arena.alloc(elementContainer, e.reportError)
	if !ok {
		return
	}
	e.arena.elements[idx].dangling = true
	e.arena.stack = append(e.arena.stack, idx)
}

// ConfigureElement attaches decl to the top-of-stack element opened by the
// most recent OpenElement, resolves its ElementID, and clears the dangling
// flag. Calling it twice for the same element, or calling it outside an
// open/close pair, reports ErrorUnbalancedElements.
func (e *LayoutEngine) ConfigureElement(decl ElementDeclaration) ElementID {
	if e.state != stateBuilding || len(e.arena.stack) == 0 {
		e.reportError(LayoutError{Kind: ErrorUnbalancedElements, Message: "configure_element called with nothing open"})
		return 0
	}
	idx := e.arena.stack[len(e.arena.stack)-1]
	n := &e.arena.elements[idx]
	if !n.dangling {
		e.reportError(LayoutError{Kind: ErrorUnbalancedElements, Message: "configure_element called twice for the same element"})
		return n.id
	}
	e.validatePercentSizing(&decl)
	n.decl = decl
	n.id = e.identify(decl, idx)
	if _, exists := e.arena.idIndex[n.id]; exists {
		e.reportError(LayoutError{Kind: ErrorDuplicateID, Message: "duplicate element id"})
	}
	if e.arena.idIndex == nil {
		e.arena.idIndex = make(map[ElementID]int32)
	}
	e.arena.idIndex[n.id] = idx
	n.dangling = false
	return n.id
}

// validatePercentSizing reports ErrorPercentageOutOfRange for any axis
// sized as a percentage outside [0,1], then clamps it in place so the
// solver always sees a usable fraction regardless of whether the host
// looks at the error callback (spec §4.3, invariant "Percent in [0,1]").
func (e *LayoutEngine) validatePercentSizing(decl *ElementDeclaration) {
	for i := range decl.Sizing {
		s := &decl.Sizing[i]
		if s.Kind != SizingPercent {
			continue
		}
		if s.Percent < 0 || s.Percent > 1 {
			e.reportError(LayoutError{Kind: ErrorPercentageOutOfRange, Message: "percent sizing out of range [0,1]"})
			if s.Percent < 0 {
				s.Percent = 0
			} else if s.Percent > 1 {
				s.Percent = 1
			}
		}
	}
}

// CloseElement pops the current parent, matching the most recent
// OpenElement. Popping an element still dangling (never configured), or
// calling it with nothing open, reports ErrorUnbalancedElements (spec
// §4.4: "closing with unconfigured open elements" is fatal).
func (e *LayoutEngine) CloseElement() {
	if e.state != stateBuilding || len(e.arena.stack) == 0 {
		e.reportError(LayoutError{Kind: ErrorUnbalancedElements, Message: "close_element with nothing open"})
		return
	}
	idx := e.arena.stack[len(e.arena.stack)-1]
	if e.arena.elements[idx].dangling {
		e.reportError(LayoutError{Kind: ErrorUnbalancedElements, Message: "close_element on an unconfigured element"})
	}
	e.arena.stack = e.arena.stack[:len(e.arena.stack)-1]
}

// TextConfig configures a text leaf (spec §4.3/§4.5): color, attributes,
// wrap mode, and the font/size/line-height knobs the markup text-config
// tags expose. font_id and font_size are opaque to the solver — they flow
// straight to the text-measurement callback — the way the spec describes
// the shaper bridge treating them.
type TextConfig struct {
	Color      Color
	Attrs      TextAttr
	Wrap       WrapMode
	FontID     int32
	FontSize   float32
	LineHeight float32
	Align      Alignment
}

// AddTextElement appends a text leaf under the current parent, measuring
// it through the engine's text shaper bridge (spec §4.5). static
// indicates the text came from a literal markup `<content>` rather than a
// dynamic `<dyn-content from="…">` binding. The markup interpreter passes
// true for every text leaf, including ones filled from `<dyn-content>`, and
// the engine itself doesn't branch on it today, but keeping the parameter matches the builder
// operation in §4.4 so a future cache-key optimization (stable IDs for
// literal content across frames) has somewhere to read it from.
func (e *LayoutEngine) AddTextElement(s string, cfg TextConfig, static bool) ElementID {
	_ = static
	if e.state != stateBuilding {
		e.reportError(LayoutError{Kind: ErrorUnbalancedElements, Message: "add_text_element called outside begin_layout/end_layout"})
		return 0
	}
	if len(e.arena.stack) > 0 && e.arena.elements[e.arena.stack[len(e.arena.stack)-1]].dangling {
		e.reportError(LayoutError{Kind: ErrorUnbalancedElements, Message: "add_text_element called while parent is dangling"})
		return 0
	}
	idx, ok := e.arena.alloc(elementText, e.reportError)
	if !ok {
		return 0
	}
	offset, length, ok := e.arena.addText(s, e.reportError)
	if !ok {
		return 0
	}
	id := hashIdentity(s, e.parentID(idx), uint32(idx))
	e.arena.elements[idx].id = id
	lineHeight := cfg.LineHeight
	if lineHeight <= 0 {
		lineHeight = 1
	}
	e.arena.elements[idx].text = textNodeRef{
		offset:     offset,
		length:     length,
		attrs:      cfg.Attrs,
		color:      cfg.Color,
		wrap:       cfg.Wrap,
		fontID:     cfg.FontID,
		fontSize:   cfg.FontSize,
		lineHeight: lineHeight,
		align:      cfg.Align,
	}
	return id
}

// AddRichText appends a text leaf whose content is a sequence of styled
// spans instead of one uniform run (spec §9a, grounded on the teacher's
// RichText/Span in serialtemplate.go). The concatenation of span.Text is
// also stored in the text arena so plain-text accessors keep working.
func (e *LayoutEngine) AddRichText(spans []Span, wrap WrapMode) ElementID {
	if e.state != stateBuilding {
		e.reportError(LayoutError{Kind: ErrorUnbalancedElements, Message: "add_rich_text called outside begin_layout/end_layout"})
		return 0
	}
	idx, ok := e.arena.alloc(elementText, e.reportError)
	if !ok {
		return 0
	}
	var plain string
	for _, s := range spans {
		plain += s.Text
	}
	offset, length, ok := e.arena.addText(plain, e.reportError)
	if !ok {
		return 0
	}
	id := hashIdentity(plain, e.parentID(idx), uint32(idx))
	e.arena.elements[idx].id = id
	e.arena.elements[idx].text = textNodeRef{offset: offset, length: length, wrap: wrap, lineHeight: 1, spans: spans}
	return id
}

func (e *LayoutEngine) parentID(idx int32) ElementID {
	p := e.arena.elements[idx].parent
	if p < 0 {
		return 0
	}
	return e.arena.elements[p].id
}

// identify resolves decl's ElementID: an explicit ID string hashes to a
// stable id independent of where it sits in the tree, so floating
// attachment targets and get-element-id lookups can address it by label
// alone; an anonymous element hashes its parent id plus its sibling
// offset instead, per spec §4.2.
func (e *LayoutEngine) identify(decl ElementDeclaration, idx int32) ElementID {
	if decl.IDSet {
		return hashIdentity(decl.ID, 0, 0)
	}
	parent := e.parentID(idx)
	var offset uint32
	if p := e.arena.elements[idx].parent; p >= 0 {
		offset = uint32(e.arena.childCount(p))
	} else {
		for i := int32(0); i <= idx; i++ {
			if e.arena.elements[i].parent < 0 {
				offset++
			}
		}
	}
	return hashIdentity("", parent, offset)
}

// EndLayout closes the build, runs the six-pass layout solver, the
// floating/z-order resolver, and the render command emitter, and returns
// the engine to the idle state. Returns a non-nil error for fatal kinds
// even if the host's ErrorCallback ignores them (spec §7).
func (e *LayoutEngine) EndLayout() ([]RenderCommand, error) {
	if e.state != stateBuilding {
		err := LayoutError{Kind: ErrorUnbalancedElements, Message: "end_layout called outside begin_layout"}
		e.reportError(err)
		return nil, err
	}
	if len(e.arena.stack) != 0 {
		err := LayoutError{Kind: ErrorElementsOpenAtEndLayout, Message: "elements still open at end_layout"}
		e.reportError(err)
		e.state = stateIdle
		return nil, err
	}
	if e.pendingFatal != nil {
		err := *e.pendingFatal
		e.pendingFatal = nil
		e.state = stateIdle
		return nil, err
	}
	e.state = stateSolved
	if len(e.arena.elements) == 0 {
		e.state = stateIdle
		return nil, nil
	}
	solve(e)
	resolveFloatingElements(e)
	cmds := emitRenderCommands(e)
	e.lastCommands = cmds
	e.probe.captureHitList(e)
	e.state = stateIdle
	return cmds, nil
}

// currentElementID returns the ElementID of the element currently open on
// the builder stack (the top of e.arena.stack), for the markup
// interpreter's `<hovered>`/`<clicked>` guard evaluation (spec §4.11),
// which must test a *specific* element rather than whatever's topmost
// under the pointer.
func (e *LayoutEngine) currentElementID() (ElementID, bool) {
	if len(e.arena.stack) == 0 {
		return 0, false
	}
	idx := e.arena.stack[len(e.arena.stack)-1]
	if e.arena.elements[idx].dangling {
		return 0, false
	}
	return e.arena.elements[idx].id, true
}

func (e *LayoutEngine) reportError(err LayoutError) {
	if e.onError != nil {
		e.onError(err)
	}
	e.errors.record(err)
	if err.Kind.fatal() && e.pendingFatal == nil {
		e.pendingFatal = &err
	}
}
