package claymark

import "strconv"

// maxFragmentDepth bounds `<use>` recursion; exceeding it is fatal (spec
// §4.11: "a fragment recursion stack (bounded; recursion depth cap is
// fatal)").
const maxFragmentDepth = 64

// RunPage replays a compiled page's opcode program once, against data,
// driving this engine's Element Tree Builder (spec §4.11). It must be
// called between BeginLayout and EndLayout.
func (e *LayoutEngine) RunPage(name string, data HostDataSource) error {
	ops, ok := e.pages.pages[name]
	if !ok {
		err := LayoutError{Kind: ErrorMarkupParseError, Message: "unknown page: " + name}
		e.reportError(err)
		return err
	}
	in := &interpreter{engine: e, data: data, pages: e.pages}
	in.exec(ops)
	e.lastEvents = in.events
	return nil
}

// LastEvents returns the events emitted by `<clicked emit="…">` guards
// during the most recent RunPage call.
func (e *LayoutEngine) LastEvents() []Event { return e.lastEvents }

// interpreter holds the per-RunPage state the markup replay needs: the
// configuration descriptor being assembled between OpenConfig/CloseConfig,
// the text leaf being assembled between OpenTextElement/CloseTextElement,
// the local binding frames pushed by `<use>`, the iteration context stack
// pushed by `<list>`, and the fragment recursion depth (spec §4.11).
type interpreter struct {
	engine *LayoutEngine
	data   HostDataSource
	pages  *pageRegistry

	curDecl     ElementDeclaration
	curTextCfg  TextConfig
	pendingText string
	pendingID   string

	frameStack []map[string]any
	iterStack  []IterationContext
	fragDepth  int

	events []Event
}

func (in *interpreter) exec(ops []Op) {
	skipDepth := 0
	i := 0
	for i < len(ops) {
		op := ops[i]

		if skipDepth > 0 {
			switch {
			case isOpenKind(op.Kind):
				skipDepth++
			case isCloseKind(op.Kind):
				skipDepth--
			}
			i++
			continue
		}

		switch op.Kind {
		case OpOpenIf:
			if !in.evalBool(op.Str) {
				skipDepth++
			}
		case OpOpenIfNot:
			if in.evalBool(op.Str) {
				skipDepth++
			}
		case OpOpenHovered:
			id, ok := in.engine.currentElementID()
			if !ok || !in.engine.ElementHovered(id) {
				skipDepth++
			}
		case OpOpenClicked:
			id, ok := in.engine.currentElementID()
			clicked := ok && in.engine.ElementClicked(id)
			if clicked {
				if op.Str != "" {
					in.events = append(in.events, Event{Name: op.Str})
				}
			} else {
				skipDepth++
			}
		case OpCloseIf, OpCloseHovered, OpCloseClicked:
			// reached only when the matching Open's condition held, so
			// there's nothing to unwind.

		case OpOpenList:
			end := matchClose(ops, i)
			body := ops[i+1 : end]
			length := in.data.GetListLength(op.Str)
			for idx := 0; idx < length; idx++ {
				in.iterStack = append(in.iterStack, IterationContext{Source: op.Str, Index: idx})
				in.exec(body)
				in.iterStack = in.iterStack[:len(in.iterStack)-1]
			}
			i = end + 1
			continue
		case OpCloseList:
			// unreachable via well-formed programs (OpOpenList always jumps past it)

		case OpOpenUse:
			end := matchClose(ops, i)
			frame := make(map[string]any)
			in.collectBindings(ops[i+1:end], frame)
			fragOps, ok := in.pages.fragments[op.Str]
			if !ok {
				// A missing fragment only skips this <use>: it is reported
				// without latching a fatal error, so the frame still completes.
				err := LayoutError{Kind: ErrorMarkupParseError, Message: "use of unknown fragment: " + op.Str}
				if in.engine.onError != nil {
					in.engine.onError(err)
				}
				in.engine.errors.record(err)
			} else if in.fragDepth+1 > maxFragmentDepth {
				in.engine.reportError(LayoutError{Kind: ErrorMarkupParseError, Message: "fragment recursion depth exceeded"})
			} else {
				in.fragDepth++
				in.frameStack = append(in.frameStack, frame)
				in.exec(fragOps)
				in.frameStack = in.frameStack[:len(in.frameStack)-1]
				in.fragDepth--
			}
			i = end + 1
			continue
		case OpCloseUse:
			// unreachable via well-formed programs

		case OpOpenElement:
			in.engine.OpenElement()
			in.pendingID = op.Str
		case OpCloseElement:
			in.engine.CloseElement()

		case OpOpenConfig:
			in.curDecl = NewElementDeclaration()
			if in.pendingID != "" {
				in.curDecl = in.curDecl.WithID(in.pendingID)
				in.pendingID = ""
			}
		case OpCloseConfig:
			in.engine.ConfigureElement(in.curDecl)

		case OpOpenTextElement:
			in.curTextCfg = TextConfig{}
			in.pendingText = ""
		case OpCloseTextElement:
			in.engine.AddTextElement(in.pendingText, in.curTextCfg, true)

		case OpOpenTextConfig, OpCloseTextConfig:
			// pure grouping markers; ops within apply directly to curTextCfg

		case OpLiteralContent:
			in.pendingText += op.Str
		case OpDynContent:
			if s, ok := in.evalText(op.Str); ok {
				in.pendingText += s
			}

		case OpSet:
			in.bindInto(in.topFrame(), op)
		case OpGet:
			in.bindInto(in.topFrame(), op)

		default:
			in.applyConfigOp(op)
		}
		i++
	}
}

func (in *interpreter) topFrame() map[string]any {
	if len(in.frameStack) == 0 {
		in.frameStack = append(in.frameStack, make(map[string]any))
	}
	return in.frameStack[len(in.frameStack)-1]
}

func (in *interpreter) iterCtx() *IterationContext {
	if len(in.iterStack) == 0 {
		return nil
	}
	return &in.iterStack[len(in.iterStack)-1]
}

// collectBindings executes a `<use>` body's Set/Get opcodes into frame,
// without touching the engine (the body of a `<use>...</use>` tag is only
// ever Set/Get, per spec §4.11).
func (in *interpreter) collectBindings(ops []Op, frame map[string]any) {
	for _, op := range ops {
		if op.Kind == OpSet || op.Kind == OpGet {
			in.bindInto(frame, op)
		}
	}
}

// bindInto resolves op (a Set or Get) into a value and stores it under
// op.Str2 in frame. Set with a literal stores the literal directly; Set
// with a source_key and Get both resolve through the host (local frame →
// host callback order applies to *reads*, not to how a binding is
// populated).
func (in *interpreter) bindInto(frame map[string]any, op Op) {
	if op.Kind == OpSet && op.Bool {
		frame[op.Str2] = literalForKind(op.Str, op.Bind)
		return
	}
	switch op.Bind {
	case BindBool:
		if v, ok := in.data.GetBool(op.Str, in.iterCtx()); ok {
			frame[op.Str2] = v
		}
	case BindNumeric:
		if v, ok := in.data.GetNumeric(op.Str, in.iterCtx()); ok {
			frame[op.Str2] = v
		}
	case BindColor:
		if v, ok := in.data.GetColor(op.Str, in.iterCtx()); ok {
			frame[op.Str2] = v
		}
	case BindImage:
		if v, ok := in.data.GetImage(op.Str, in.iterCtx()); ok {
			frame[op.Str2] = v
		}
	case BindEvent:
		if v, ok := in.data.GetEvent(op.Str, in.iterCtx()); ok {
			frame[op.Str2] = v
		}
	default:
		if v, ok := in.data.GetText(op.Str, in.iterCtx()); ok {
			frame[op.Str2] = v
		}
	}
}

func literalForKind(s string, kind BindingKind) any {
	switch kind {
	case BindBool:
		return s == "true"
	case BindNumeric:
		f, _ := strconv.ParseFloat(s, 64)
		return f
	default:
		return s
	}
}

// lookupLocal searches the frame stack innermost-first for key, giving a
// `<use>`'s own bindings precedence over whatever an enclosing fragment or
// page bound under the same name.
func (in *interpreter) lookupLocal(key string) (any, bool) {
	for i := len(in.frameStack) - 1; i >= 0; i-- {
		if v, ok := in.frameStack[i][key]; ok {
			return v, true
		}
	}
	return nil, false
}

func (in *interpreter) evalBool(key string) bool {
	if v, ok := in.lookupLocal(key); ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	v, ok := in.data.GetBool(key, in.iterCtx())
	return ok && v
}

func (in *interpreter) evalText(key string) (string, bool) {
	if v, ok := in.lookupLocal(key); ok {
		if s, ok := v.(string); ok {
			return s, true
		}
	}
	return in.data.GetText(key, in.iterCtx())
}

func (in *interpreter) evalColor(key string) (Color, bool) {
	if v, ok := in.lookupLocal(key); ok {
		if c, ok := v.(Color); ok {
			return c, true
		}
	}
	return in.data.GetColor(key, in.iterCtx())
}

func (in *interpreter) evalNumeric(key string) (float64, bool) {
	if v, ok := in.lookupLocal(key); ok {
		switch n := v.(type) {
		case float64:
			return n, true
		case float32:
			return float64(n), true
		}
	}
	return in.data.GetNumeric(key, in.iterCtx())
}

// isOpenKind/isCloseKind classify opcodes for skip-depth bookkeeping and
// for matchClose's generic bracket matching.
func isOpenKind(k OpKind) bool {
	switch k {
	case OpOpenElement, OpOpenTextElement, OpOpenConfig, OpOpenTextConfig,
		OpOpenList, OpOpenUse, OpOpenIf, OpOpenIfNot, OpOpenHovered, OpOpenClicked:
		return true
	default:
		return false
	}
}

func isCloseKind(k OpKind) bool {
	switch k {
	case OpCloseElement, OpCloseTextElement, OpCloseConfig, OpCloseTextConfig,
		OpCloseList, OpCloseUse, OpCloseIf, OpCloseHovered, OpCloseClicked:
		return true
	default:
		return false
	}
}

// matchClose returns the index of the Close opcode matching the Open
// opcode at openIdx, treating every Open/Close pair as a generic bracket
// (spec markup is always well-nested by construction from the compiler).
func matchClose(ops []Op, openIdx int) int {
	depth := 1
	for j := openIdx + 1; j < len(ops); j++ {
		switch {
		case isOpenKind(ops[j].Kind):
			depth++
		case isCloseKind(ops[j].Kind):
			depth--
			if depth == 0 {
				return j
			}
		}
	}
	return len(ops)
}
