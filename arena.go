package claymark

// ArenaBudget sizes the three bump-allocated regions a LayoutEngine owns:
// elements, text bytes, and emitted render commands. Grounded on the
// teacher's NewFrame(nodeCapacity, textCapacity int) constructor
// (arena.go), generalized with a third capacity for commands, which the
// teacher never needed because it rendered straight into a cell buffer
// instead of emitting a command list (spec §4.1a).
type ArenaBudget struct {
	MaxElements  int
	MaxTextBytes int
	MaxCommands  int
}

// DefaultArenaBudget is used when no override is supplied to
// NewLayoutEngine or found in an engine config file.
var DefaultArenaBudget = ArenaBudget{
	MaxElements:  4096,
	MaxTextBytes: 64 * 1024,
	MaxCommands:  4096,
}

// EstimateArenaCapacity is the size oracle referenced by spec §4.1: given
// expected upper bounds, it returns a budget with a small safety margin, so
// a host that knows roughly how big its UI gets doesn't have to hand-tune
// the three numbers independently.
func EstimateArenaCapacity(maxElements, maxTextBytes, maxCommands int) ArenaBudget {
	return ArenaBudget{
		MaxElements:  maxElements + maxElements/8,
		MaxTextBytes: maxTextBytes + maxTextBytes/8,
		MaxCommands:  maxCommands + maxCommands/8,
	}
}

// elementKind distinguishes a container from a bare text leaf. Unlike the
// teacher's NodeKind (which enumerates every widget type: VStack, HStack,
// Progress, Grid, ...), this engine has exactly one generic container shape
// configured entirely through ElementDeclaration, plus a text leaf —
// container variety is a markup/application concern, not a layout-engine
// one.
type elementKind uint8

const (
	elementContainer elementKind = iota
	elementText
)

// elementNode is the compact, index-linked tree node the arena allocates
// in bulk and resets by truncating a slice (spec §4.1, Design Note "trees
// without pointer cycles"). Parent/FirstChild/LastChild/NextSib are
// indices into the same slice rather than pointers, grounded on the
// teacher's Node struct (arena.go) — this avoids cycles by construction and
// lets Reset discard a whole generation with one bump-pointer write.
type elementNode struct {
	kind     elementKind
	id       ElementID
	dangling bool

	parent     int32
	firstChild int32
	lastChild  int32
	nextSib    int32

	decl ElementDeclaration
	text textNodeRef // valid when kind == elementText

	measured Dimensions  // content-driven minimum size from the fit pass
	box      BoundingBox // final resolved box from the position pass
}

// textNodeRef points into the arena's text byte region plus shaping
// metadata, avoiding a second allocation per text leaf the way the
// teacher's AText stores an (offset,length) pair into Frame.text instead of
// keeping a Go string per node.
type textNodeRef struct {
	offset, length int32
	attrs          TextAttr
	color          Color
	wrap           WrapMode
	fontID         int32
	fontSize       float32
	lineHeight     float32
	align          Alignment
	spans          []Span // set only for rich multi-span text (spec §9a)
}

// config rebuilds the TextConfig a text leaf was created with, so the
// measure/wrap passes (layout.go) can hand the shaper bridge the full
// (text, text_config) pair the spec's §4.5 contract calls for instead of
// just the bare attrs/wrap fields the teacher's own text nodes carried.
func (t textNodeRef) config() TextConfig {
	return TextConfig{
		Color:      t.color,
		Attrs:      t.attrs,
		Wrap:       t.wrap,
		FontID:     t.fontID,
		FontSize:   t.fontSize,
		LineHeight: t.lineHeight,
		Align:      t.align,
	}
}

// arena is the bump-allocated backing store for one LayoutEngine. It is
// reused across frames: beginLayout truncates every region back to zero
// rather than reallocating (grounded on Frame.Reset).
type arena struct {
	budget ArenaBudget

	elements []elementNode
	text     []byte
	commands []RenderCommand

	// stack is the open-element stack during tree construction, mirroring
	// the teacher's Frame.stack parent-tracking discipline.
	stack []int32

	idIndex map[ElementID]int32
}

func newArena(budget ArenaBudget) *arena {
	return &arena{
		budget:   budget,
		elements: make([]elementNode, 0, budget.MaxElements),
		text:     make([]byte, 0, budget.MaxTextBytes),
		commands: make([]RenderCommand, 0, budget.MaxCommands),
		stack:    make([]int32, 0, 32),
	}
}

func (a *arena) reset() {
	a.elements = a.elements[:0]
	a.text = a.text[:0]
	a.commands = a.commands[:0]
	a.stack = a.stack[:0]
	if a.idIndex != nil {
		clear(a.idIndex)
	}
}

// alloc appends a new element node, linking it under the current top of
// stack if any, and reports ErrorArenaCapacityExceeded through report
// instead of growing unboundedly — the spec requires a fixed arena, not an
// auto-growing one (§4.1, §7).
func (a *arena) alloc(kind elementKind, report func(LayoutError)) (int32, bool) {
	if len(a.elements) >= a.budget.MaxElements {
		report(LayoutError{Kind: ErrorArenaCapacityExceeded, Message: "element capacity exceeded"})
		return -1, false
	}
	idx := int32(len(a.elements))
	parent := int32(-1)
	if len(a.stack) > 0 {
		parent = a.stack[len(a.stack)-1]
	}
	a.elements = append(a.elements, elementNode{
		kind:       kind,
		parent:     parent,
		firstChild: -1,
		lastChild:  -1,
		nextSib:    -1,
	})
	if parent >= 0 {
		a.linkChild(parent, idx)
	}
	return idx, true
}

func (a *arena) linkChild(parent, child int32) {
	p := &a.elements[parent]
	if p.firstChild < 0 {
		p.firstChild = child
		p.lastChild = child
		return
	}
	a.elements[p.lastChild].nextSib = child
	p.lastChild = child
}

// addText copies s into the text region and reports exhaustion the same
// way alloc does for elements.
func (a *arena) addText(s string, report func(LayoutError)) (offset, length int32, ok bool) {
	if len(a.text)+len(s) > a.budget.MaxTextBytes {
		report(LayoutError{Kind: ErrorArenaCapacityExceeded, Message: "text capacity exceeded"})
		return 0, 0, false
	}
	offset = int32(len(a.text))
	a.text = append(a.text, s...)
	length = int32(len(s))
	return offset, length, true
}

func (a *arena) children(idx int32) func(yield func(int32) bool) {
	return func(yield func(int32) bool) {
		for c := a.elements[idx].firstChild; c >= 0; c = a.elements[c].nextSib {
			if !yield(c) {
				return
			}
		}
	}
}

func (a *arena) childCount(idx int32) int {
	n := 0
	for range a.children(idx) {
		n++
	}
	return n
}

func (a *arena) textOf(n *elementNode) string {
	return string(a.text[n.text.offset : n.text.offset+n.text.length])
}

// buildIDIndex rebuilds the ElementID→index lookup used by the floating
// resolver and by get_element_id-style queries (spec §4.2/§4.7). Called
// once per frame after the tree is fully built, since ids don't change
// again until the next BeginLayout.
func (a *arena) buildIDIndex() {
	if a.idIndex == nil {
		a.idIndex = make(map[ElementID]int32, len(a.elements))
	} else {
		clear(a.idIndex)
	}
	for i := range a.elements {
		a.idIndex[a.elements[i].id] = int32(i)
	}
}

func (a *arena) indexForID(id ElementID) (int32, bool) {
	idx, ok := a.idIndex[id]
	return idx, ok
}

// emit appends a render command, reporting exhaustion rather than growing
// past the configured budget (the command list shares the same fixed-arena
// discipline as elements and text, spec §4.1/§4.8).
func (a *arena) emit(cmd RenderCommand, report func(LayoutError)) bool {
	if len(a.commands) >= a.budget.MaxCommands {
		report(LayoutError{Kind: ErrorArenaCapacityExceeded, Message: "command capacity exceeded"})
		return false
	}
	a.commands = append(a.commands, cmd)
	return true
}
