package claymark

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
)

// CompileDocument parses an XML-like declarative markup document (spec §6
// tag grammar) into a Program: one opcode vector per `<page>`, one per
// `<reusable>` fragment. Grounded on the teacher's SerialTemplate compiler
// (serialtemplate.go: BuildSerial/compile* walking a Go value tree into a
// flat op array); here the input tree is markup instead of reflected Go
// values, so the walk is grounded on Go's own idiomatic use of
// encoding/xml's Decoder as a streaming tokenizer (never as a DOM) — see
// DESIGN.md's standard-library justification.
//
// A compilation failure reports the offending tag name and aborts only
// this document's compile; whatever was previously loaded into a
// LayoutEngine via LoadPages is untouched (spec §4.10).
func CompileDocument(r io.Reader) (*Program, error) {
	dec := xml.NewDecoder(r)
	prog := &Program{Pages: map[string][]Op{}, Fragments: map[string][]Op{}}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, markupErr("", err.Error())
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		switch start.Name.Local {
		case "page":
			name, ok := attr(start, "name")
			if !ok {
				return nil, markupErr("page", "missing required attribute: name")
			}
			var ops []Op
			if err := compileChildren(dec, start, &ops); err != nil {
				return nil, err
			}
			prog.Pages[name] = ops
		case "reusable":
			name, ok := attr(start, "name")
			if !ok {
				return nil, markupErr("reusable", "missing required attribute: name")
			}
			var ops []Op
			if err := compileChildren(dec, start, &ops); err != nil {
				return nil, err
			}
			prog.Fragments[name] = ops
		default:
			return nil, markupErr(start.Name.Local, "expected <page> or <reusable> at document root")
		}
	}
	return prog, nil
}

func markupErr(tag, msg string) error {
	if tag == "" {
		return LayoutError{Kind: ErrorMarkupParseError, Message: msg}
	}
	return LayoutError{Kind: ErrorMarkupParseError, Message: fmt.Sprintf("<%s>: %s", tag, msg)}
}

func attr(start xml.StartElement, name string) (string, bool) {
	for _, a := range start.Attr {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

func attrFloat(start xml.StartElement, name string) (float32, bool, error) {
	v, ok := attr(start, name)
	if !ok {
		return 0, false, nil
	}
	f, err := strconv.ParseFloat(v, 32)
	if err != nil {
		return 0, false, markupErr(start.Name.Local, fmt.Sprintf("attribute %q is not a number: %v", name, err))
	}
	return float32(f), true, nil
}

// compileChildren walks start's children, emitting ops into *ops, until
// start's matching EndElement.
func compileChildren(dec *xml.Decoder, start xml.StartElement, ops *[]Op) error {
	for {
		tok, err := dec.Token()
		if err != nil {
			return markupErr(start.Name.Local, err.Error())
		}
		switch t := tok.(type) {
		case xml.EndElement:
			return nil
		case xml.CharData:
			if start.Name.Local == "content" {
				text := string(t)
				if text != "" {
					*ops = append(*ops, Op{Kind: OpLiteralContent, Str: text})
				}
			}
		case xml.StartElement:
			if err := compileTag(dec, t, ops); err != nil {
				return err
			}
		}
	}
}

// compileTag compiles one tag, recursing into compileChildren for
// container tags and returning after emitting its opcode(s) for
// self-closing configuration tags.
func compileTag(dec *xml.Decoder, start xml.StartElement, ops *[]Op) error {
	name := start.Name.Local
	switch name {
	case "element":
		id, _ := attr(start, "id")
		ifKey, hasIf := attr(start, "if")
		ifNotKey, hasIfNot := attr(start, "if-not")
		if hasIf {
			*ops = append(*ops, Op{Kind: OpOpenIf, Str: ifKey})
		}
		if hasIfNot {
			*ops = append(*ops, Op{Kind: OpOpenIfNot, Str: ifNotKey})
		}
		*ops = append(*ops, Op{Kind: OpOpenElement, Str: id})
		if err := compileChildren(dec, start, ops); err != nil {
			return err
		}
		*ops = append(*ops, Op{Kind: OpCloseElement})
		if hasIf {
			*ops = append(*ops, Op{Kind: OpCloseIf})
		}
		if hasIfNot {
			*ops = append(*ops, Op{Kind: OpCloseIf})
		}
		return nil

	case "element-config":
		*ops = append(*ops, Op{Kind: OpOpenConfig})
		if err := compileChildren(dec, start, ops); err != nil {
			return err
		}
		*ops = append(*ops, Op{Kind: OpCloseConfig})
		return nil

	case "text-element":
		*ops = append(*ops, Op{Kind: OpOpenTextElement})
		if err := compileChildren(dec, start, ops); err != nil {
			return err
		}
		*ops = append(*ops, Op{Kind: OpCloseTextElement})
		return nil

	case "text-config":
		*ops = append(*ops, Op{Kind: OpOpenTextConfig})
		if err := compileChildren(dec, start, ops); err != nil {
			return err
		}
		*ops = append(*ops, Op{Kind: OpCloseTextConfig})
		return nil

	case "content":
		return compileChildren(dec, start, ops)

	case "hovered":
		*ops = append(*ops, Op{Kind: OpOpenHovered})
		if err := compileChildren(dec, start, ops); err != nil {
			return err
		}
		*ops = append(*ops, Op{Kind: OpCloseHovered})
		return nil

	case "clicked":
		event, _ := attr(start, "emit")
		*ops = append(*ops, Op{Kind: OpOpenClicked, Str: event})
		if err := compileChildren(dec, start, ops); err != nil {
			return err
		}
		*ops = append(*ops, Op{Kind: OpCloseClicked})
		return nil

	case "list":
		src, ok := attr(start, "src")
		if !ok {
			return markupErr(name, "missing required attribute: src")
		}
		*ops = append(*ops, Op{Kind: OpOpenList, Str: src})
		if err := compileChildren(dec, start, ops); err != nil {
			return err
		}
		*ops = append(*ops, Op{Kind: OpCloseList})
		return nil

	case "use":
		frag, ok := attr(start, "name")
		if !ok {
			return markupErr(name, "missing required attribute: name")
		}
		*ops = append(*ops, Op{Kind: OpOpenUse, Str: frag})
		if err := compileChildren(dec, start, ops); err != nil {
			return err
		}
		*ops = append(*ops, Op{Kind: OpCloseUse})
		return nil

	case "set":
		return compileBinding(dec, start, ops, OpSet)
	case "get":
		return compileBinding(dec, start, ops, OpGet)

	// Per-type set-*/get-* tags (spec §6): same OpSet/OpGet machinery as
	// the generic set/get above, just with the binding kind named in the
	// tag and the value attribute spelled "to" (set) or "from" (get)
	// instead of a generic kind=/literal=/source_key= trio.
	case "set-bool":
		return compileTypedBinding(dec, start, ops, OpSet, BindBool, "to", true)
	case "set-numeric":
		return compileTypedBinding(dec, start, ops, OpSet, BindNumeric, "to", true)
	case "set-text":
		return compileTypedBinding(dec, start, ops, OpSet, BindText, "to", true)
	case "set-color":
		return compileTypedBinding(dec, start, ops, OpSet, BindColor, "to", true)
	case "set-event":
		return compileTypedBinding(dec, start, ops, OpSet, BindEvent, "to", true)
	case "get-bool":
		return compileTypedBinding(dec, start, ops, OpGet, BindBool, "from", false)
	case "get-numeric":
		return compileTypedBinding(dec, start, ops, OpGet, BindNumeric, "from", false)
	case "get-text":
		return compileTypedBinding(dec, start, ops, OpGet, BindText, "from", false)
	case "get-image":
		return compileTypedBinding(dec, start, ops, OpGet, BindImage, "from", false)
	case "get-color":
		return compileTypedBinding(dec, start, ops, OpGet, BindColor, "from", false)
	case "get-event":
		return compileTypedBinding(dec, start, ops, OpGet, BindEvent, "from", false)
	}

	// Self-closing configuration / text-config tags.
	if err := compileEmptyTag(start, ops); err != nil {
		return err
	}
	return skipToEnd(dec, start)
}

func compileBinding(dec *xml.Decoder, start xml.StartElement, ops *[]Op, kind OpKind) error {
	local, ok := attr(start, "local")
	if !ok {
		return markupErr(start.Name.Local, "missing required attribute: local")
	}
	bindKind, err := parseBindKind(start)
	if err != nil {
		return err
	}
	op := Op{Kind: kind, Str2: local, Bind: bindKind}
	literal, hasLiteral := attr(start, "literal")
	source, hasSource := attr(start, "source_key")
	if hasLiteral && hasSource {
		return markupErr(start.Name.Local, "conflicting static+dynamic value")
	}
	if hasLiteral {
		op.Str = literal
		op.Bool = true
	} else if hasSource {
		op.Str = source
	}
	*ops = append(*ops, op)
	return skipToEnd(dec, start)
}

// compileTypedBinding handles the per-type set-*/get-* tags (spec §6,
// e.g. <set-numeric local="x" to="5"/>, <get-text local="y" from="title"/>)
// that spell their binding kind in the tag name and their value attribute
// as "to" or "from", rather than the generic <set kind="…"> form's
// kind=/literal=/source_key= attributes. Compiles to the same OpSet/OpGet
// opcodes compileBinding produces, so bindInto (markup_interpreter.go) needs no
// changes to execute them.
func compileTypedBinding(dec *xml.Decoder, start xml.StartElement, ops *[]Op, opKind OpKind, bindKind BindingKind, valueAttr string, literal bool) error {
	local, ok := attr(start, "local")
	if !ok {
		return markupErr(start.Name.Local, "missing required attribute: local")
	}
	v, ok := attr(start, valueAttr)
	if !ok {
		return markupErr(start.Name.Local, "missing required attribute: "+valueAttr)
	}
	*ops = append(*ops, Op{Kind: opKind, Str2: local, Str: v, Bool: literal, Bind: bindKind})
	return skipToEnd(dec, start)
}

func parseBindKind(start xml.StartElement) (BindingKind, error) {
	k, ok := attr(start, "kind")
	if !ok {
		return BindText, nil
	}
	switch k {
	case "bool":
		return BindBool, nil
	case "numeric":
		return BindNumeric, nil
	case "text":
		return BindText, nil
	case "color":
		return BindColor, nil
	case "image":
		return BindImage, nil
	case "event":
		return BindEvent, nil
	default:
		return 0, markupErr(start.Name.Local, "unknown binding kind: "+k)
	}
}

// skipToEnd consumes tokens up to and including start's matching
// EndElement, for tags whose grammar doesn't allow meaningful children.
func skipToEnd(dec *xml.Decoder, start xml.StartElement) error {
	depth := 0
	for {
		tok, err := dec.Token()
		if err != nil {
			return markupErr(start.Name.Local, err.Error())
		}
		switch tok.(type) {
		case xml.StartElement:
			depth++
		case xml.EndElement:
			if depth == 0 {
				return nil
			}
			depth--
		}
	}
}

// compileEmptyTag handles every self-closing configuration tag in §6's
// grammar: sizing, spacing, direction/alignment, color, radius, border,
// scroll, image, the floating family, and text-config tags.
func compileEmptyTag(start xml.StartElement, ops *[]Op) error {
	name := start.Name.Local
	num := func(attrName string) (float32, bool, error) { return attrFloat(start, attrName) }

	switch name {
	case "grow":
		*ops = append(*ops, Op{Kind: OpWidthGrow, Axis: 0}, Op{Kind: OpHeightGrow, Axis: 1})
	case "width-fit", "width-grow", "width-fixed", "width-percent",
		"height-fit", "height-grow", "height-fixed", "height-percent":
		return compileSizingTag(start, ops)
	case "padding-all":
		v, _, err := num("is")
		*ops = append(*ops, Op{Kind: OpPaddingAll, Num: v})
		return err
	case "padding-top":
		v, _, err := num("is")
		*ops = append(*ops, Op{Kind: OpPaddingTop, Num: v})
		return err
	case "padding-bottom":
		v, _, err := num("is")
		*ops = append(*ops, Op{Kind: OpPaddingBottom, Num: v})
		return err
	case "padding-left":
		v, _, err := num("is")
		*ops = append(*ops, Op{Kind: OpPaddingLeft, Num: v})
		return err
	case "padding-right":
		v, _, err := num("is")
		*ops = append(*ops, Op{Kind: OpPaddingRight, Num: v})
		return err
	case "child-gap":
		v, _, err := num("is")
		*ops = append(*ops, Op{Kind: OpChildGap, Num: v})
		return err
	case "direction":
		v, _ := attr(start, "is")
		*ops = append(*ops, Op{Kind: OpDirection, Str: v})
	case "align-children-x":
		v, _ := attr(start, "to")
		*ops = append(*ops, Op{Kind: OpAlignX, Str: v})
	case "align-children-y":
		v, _ := attr(start, "to")
		*ops = append(*ops, Op{Kind: OpAlignY, Str: v})
	case "color":
		v, _ := attr(start, "is")
		*ops = append(*ops, Op{Kind: OpColor, Str: v})
	case "dyn-color":
		v, _ := attr(start, "from")
		*ops = append(*ops, Op{Kind: OpDynColor, Str: v})
	case "radius-all":
		v, _, err := num("is")
		*ops = append(*ops, Op{Kind: OpRadiusAll, Num: v})
		return err
	case "radius-top-left":
		v, _, err := num("is")
		*ops = append(*ops, Op{Kind: OpRadiusTopLeft, Num: v})
		return err
	case "radius-top-right":
		v, _, err := num("is")
		*ops = append(*ops, Op{Kind: OpRadiusTopRight, Num: v})
		return err
	case "radius-bottom-left":
		v, _, err := num("is")
		*ops = append(*ops, Op{Kind: OpRadiusBottomLeft, Num: v})
		return err
	case "radius-bottom-right":
		v, _, err := num("is")
		*ops = append(*ops, Op{Kind: OpRadiusBottomRight, Num: v})
		return err
	case "border-color":
		v, _ := attr(start, "is")
		*ops = append(*ops, Op{Kind: OpBorderColor, Str: v})
	case "border-dynamic-color":
		v, _ := attr(start, "from")
		*ops = append(*ops, Op{Kind: OpBorderDynColor, Str: v})
	case "border-all":
		v, _, err := num("is")
		*ops = append(*ops, Op{Kind: OpBorderAll, Num: v})
		return err
	case "border-top":
		v, _, err := num("is")
		*ops = append(*ops, Op{Kind: OpBorderTop, Num: v})
		return err
	case "border-left":
		v, _, err := num("is")
		*ops = append(*ops, Op{Kind: OpBorderLeft, Num: v})
		return err
	case "border-bottom":
		v, _, err := num("is")
		*ops = append(*ops, Op{Kind: OpBorderBottom, Num: v})
		return err
	case "border-right":
		v, _, err := num("is")
		*ops = append(*ops, Op{Kind: OpBorderRight, Num: v})
		return err
	case "border-between-children":
		v, _, err := num("is")
		*ops = append(*ops, Op{Kind: OpBorderBetweenChildren, Num: v})
		return err
	case "scroll":
		_, vert := attr(start, "vertical")
		_, horiz := attr(start, "horizontal")
		*ops = append(*ops, Op{Kind: OpScroll, Bool: vert, Bool2: horiz})
	case "image":
		v, _ := attr(start, "src")
		*ops = append(*ops, Op{Kind: OpImage, Str: v})
	case "floating":
		*ops = append(*ops, Op{Kind: OpFloating})
	case "floating-offset":
		x, _, err1 := num("x")
		y, _, err2 := num("y")
		*ops = append(*ops, Op{Kind: OpFloatingOffset, Num: x, Num2: y})
		return firstErr(err1, err2)
	case "floating-size":
		w, _, err1 := num("width")
		h, _, err2 := num("height")
		*ops = append(*ops, Op{Kind: OpFloatingSize, Num: w, Num2: h})
		return firstErr(err1, err2)
	case "floating-z-index":
		z, _, err := num("z")
		*ops = append(*ops, Op{Kind: OpFloatingZIndex, Num: z})
		return err
	case "floating-attach-to-parent":
		v, _ := attr(start, "corner")
		*ops = append(*ops, Op{Kind: OpFloatingAttachToParent, Anchor: parseAnchor(v)})
	case "floating-attach-element":
		v, _ := attr(start, "corner")
		*ops = append(*ops, Op{Kind: OpFloatingAttachElement, Anchor: parseAnchor(v)})
	case "floating-capture-pointer":
		v, _ := attr(start, "state")
		*ops = append(*ops, Op{Kind: OpFloatingCapturePointer, Str: v})
	case "floating-attach-to-element":
		v, _ := attr(start, "id")
		*ops = append(*ops, Op{Kind: OpFloatingAttachToElement, Str: v})
	case "floating-attach-to-root":
		*ops = append(*ops, Op{Kind: OpFloatingAttachToRoot})
	case "font-id":
		v, _, err := num("is")
		*ops = append(*ops, Op{Kind: OpFontID, Num: v})
		return err
	case "font-size":
		v, _, err := num("is")
		*ops = append(*ops, Op{Kind: OpFontSize, Num: v})
		return err
	case "line-height":
		v, _, err := num("is")
		*ops = append(*ops, Op{Kind: OpLineHeight, Num: v})
		return err
	case "text-align-left":
		*ops = append(*ops, Op{Kind: OpTextAlignLeft})
	case "text-align-right":
		*ops = append(*ops, Op{Kind: OpTextAlignRight})
	case "text-align-center":
		*ops = append(*ops, Op{Kind: OpTextAlignCenter})
	case "dyn-content":
		v, _ := attr(start, "from")
		*ops = append(*ops, Op{Kind: OpDynContent, Str: v})
	case "id":
		isVal, hasIs := attr(start, "is")
		fromVal, hasFrom := attr(start, "from")
		if hasIs == hasFrom {
			return markupErr(name, "exactly one of is/from is required")
		}
		if hasIs {
			*ops = append(*ops, Op{Kind: OpID, Str: isVal})
		} else {
			*ops = append(*ops, Op{Kind: OpID, Str2: fromVal})
		}
	default:
		return markupErr(name, "unknown tag")
	}
	return nil
}

func compileSizingTag(start xml.StartElement, ops *[]Op) error {
	name := start.Name.Local
	axis := 0
	if name[0] == 'h' {
		axis = 1
	}
	var kind OpKind
	var n1, n2 float32
	var err error
	switch {
	case contains(name, "fit"):
		kind = pick(axis, OpWidthFit, OpHeightFit)
		n1, _, err = attrFloat(start, "min")
		if err == nil {
			n2, _, err = attrFloat(start, "max")
		}
	case contains(name, "grow"):
		kind = pick(axis, OpWidthGrow, OpHeightGrow)
		n1, _, err = attrFloat(start, "min")
		if err == nil {
			n2, _, err = attrFloat(start, "max")
		}
	case contains(name, "fixed"):
		kind = pick(axis, OpWidthFixed, OpHeightFixed)
		n1, _, err = attrFloat(start, "at")
	case contains(name, "percent"):
		kind = pick(axis, OpWidthPercent, OpHeightPercent)
		n1, _, err = attrFloat(start, "at")
	}
	if err != nil {
		return err
	}
	*ops = append(*ops, Op{Kind: kind, Axis: axis, Num: n1, Num2: n2})
	return nil
}

func pick(axis int, w, h OpKind) OpKind {
	if axis == 0 {
		return w
	}
	return h
}

func contains(s, sub string) bool {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return true
		}
	}
	return false
}

func firstErr(errs ...error) error {
	for _, e := range errs {
		if e != nil {
			return e
		}
	}
	return nil
}

func parseAnchor(corner string) Anchor {
	switch corner {
	case "top-left":
		return AnchorTopLeft
	case "top-center", "top":
		return AnchorTopCenter
	case "top-right":
		return AnchorTopRight
	case "center-left", "left":
		return AnchorCenterLeft
	case "center":
		return AnchorCenter
	case "center-right", "right":
		return AnchorCenterRight
	case "bottom-left":
		return AnchorBottomLeft
	case "bottom-center", "bottom":
		return AnchorBottomCenter
	case "bottom-right":
		return AnchorBottomRight
	default:
		return AnchorTopLeft
	}
}
