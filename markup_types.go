package claymark

// OpKind enumerates every compiled markup instruction (spec §4.10). Op
// reuses a handful of generic fields across kinds the way the teacher's
// SerialOp (serialtemplate.go) reuses Prop1/Prop2/Prop3 by node kind,
// rather than giving every opcode its own struct type.
type OpKind uint16

const (
	OpOpenElement OpKind = iota
	OpCloseElement
	OpOpenTextElement
	OpCloseTextElement
	OpOpenConfig
	OpCloseConfig
	OpOpenTextConfig
	OpCloseTextConfig
	OpOpenList
	OpCloseList
	OpOpenUse
	OpCloseUse
	OpOpenIf
	OpOpenIfNot
	OpCloseIf
	OpOpenHovered
	OpCloseHovered
	OpOpenClicked
	OpCloseClicked

	OpSet
	OpGet

	OpID
	OpWidthFit
	OpWidthGrow
	OpWidthFixed
	OpWidthPercent
	OpHeightFit
	OpHeightGrow
	OpHeightFixed
	OpHeightPercent
	OpPaddingAll
	OpPaddingTop
	OpPaddingBottom
	OpPaddingLeft
	OpPaddingRight
	OpChildGap
	OpDirection
	OpAlignX
	OpAlignY
	OpColor
	OpDynColor
	OpRadiusAll
	OpRadiusTopLeft
	OpRadiusTopRight
	OpRadiusBottomLeft
	OpRadiusBottomRight
	OpBorderColor
	OpBorderDynColor
	OpBorderAll
	OpBorderTop
	OpBorderLeft
	OpBorderBottom
	OpBorderRight
	OpBorderBetweenChildren
	OpScroll
	OpImage

	OpFloating
	OpFloatingOffset
	OpFloatingSize
	OpFloatingZIndex
	OpFloatingAttachToParent
	OpFloatingAttachElement
	OpFloatingCapturePointer
	OpFloatingAttachToElement
	OpFloatingAttachToRoot

	OpFontID
	OpFontSize
	OpLineHeight
	OpTextAlignLeft
	OpTextAlignRight
	OpTextAlignCenter
	OpDynContent
	OpLiteralContent
)

// BindingKind tags the six host data-access lookup kinds (spec §4.12) a
// Set/Get opcode or a dyn-* attribute resolves against.
type BindingKind uint8

const (
	BindBool BindingKind = iota
	BindNumeric
	BindText
	BindColor
	BindImage
	BindEvent
)

// Op is one compiled markup instruction.
type Op struct {
	Kind OpKind

	Str  string // id label, source key, fragment/event name, dyn-* key
	Str2 string // Set/Get local binding name

	Num  float32
	Num2 float32

	Bool  bool
	Bool2 bool

	Axis   int // 0=width/x, 1=height/y, for the shared sizing/align ops
	Anchor Anchor
	Bind   BindingKind
}

// Program is a compiled markup document: one opcode vector per page, plus
// one per reusable fragment (spec §4.10 "reusable fragments are compiled
// into separately named opcode vectors").
type Program struct {
	Pages     map[string][]Op
	Fragments map[string][]Op
}

// pageRegistry holds the programs currently loaded into a LayoutEngine.
// Loading replaces whole pages/fragments atomically by name — "last
// registration wins" (Resolved Open Question #3, DESIGN.md), grounded on
// the teacher's viewTemplates[name] = tmpl map-assignment pattern (app.go).
type pageRegistry struct {
	pages     map[string][]Op
	fragments map[string][]Op
}

func newPageRegistry() *pageRegistry {
	return &pageRegistry{pages: make(map[string][]Op), fragments: make(map[string][]Op)}
}

// LoadPages merges prog's pages and fragments into the engine's registry,
// each page/fragment name replacing any prior definition of that name.
func (e *LayoutEngine) LoadPages(prog *Program) {
	for name, ops := range prog.Pages {
		e.pages.pages[name] = ops
	}
	for name, ops := range prog.Fragments {
		e.pages.fragments[name] = ops
	}
}
