package claymark

// applyConfigOp folds one compiled configuration opcode into the
// interpreter's in-progress curDecl/curTextCfg, between OpOpenConfig/
// OpOpenTextConfig and their matching Close (spec §4.10/§4.11). Every case
// here corresponds 1:1 to a self-closing tag compileEmptyTag emits in
// markup_compiler.go.
func (in *interpreter) applyConfigOp(op Op) {
	switch op.Kind {
	case OpID:
		if op.Str2 != "" {
			if v, ok := in.evalText(op.Str2); ok {
				in.curDecl = in.curDecl.WithID(v)
			}
		} else {
			in.curDecl = in.curDecl.WithID(op.Str)
		}

	case OpWidthFit:
		in.curDecl.Sizing[0] = SizingFitAxis(Pixels(op.Num), Pixels(op.Num2))
	case OpWidthGrow:
		in.curDecl.Sizing[0] = SizingGrowAxis(Pixels(op.Num), Pixels(op.Num2))
	case OpWidthFixed:
		in.curDecl.Sizing[0] = SizingFixedAxis(Pixels(op.Num))
	case OpWidthPercent:
		in.curDecl.Sizing[0] = SizingPercentAxis(op.Num)
	case OpHeightFit:
		in.curDecl.Sizing[1] = SizingFitAxis(Pixels(op.Num), Pixels(op.Num2))
	case OpHeightGrow:
		in.curDecl.Sizing[1] = SizingGrowAxis(Pixels(op.Num), Pixels(op.Num2))
	case OpHeightFixed:
		in.curDecl.Sizing[1] = SizingFixedAxis(Pixels(op.Num))
	case OpHeightPercent:
		in.curDecl.Sizing[1] = SizingPercentAxis(op.Num)

	case OpPaddingAll:
		p := uint16(op.Num)
		in.curDecl.Padding = Padding{Top: p, Bottom: p, Left: p, Right: p}
	case OpPaddingTop:
		in.curDecl.Padding.Top = uint16(op.Num)
	case OpPaddingBottom:
		in.curDecl.Padding.Bottom = uint16(op.Num)
	case OpPaddingLeft:
		in.curDecl.Padding.Left = uint16(op.Num)
	case OpPaddingRight:
		in.curDecl.Padding.Right = uint16(op.Num)
	case OpChildGap:
		in.curDecl.ChildGap = uint16(op.Num)

	case OpDirection:
		switch op.Str {
		case "ttb", "top-to-bottom":
			in.curDecl.Direction = TopToBottom
		default:
			in.curDecl.Direction = LeftToRight
		}
	case OpAlignX:
		in.curDecl.Align.X = parseAlignment(op.Str)
	case OpAlignY:
		in.curDecl.Align.Y = parseAlignment(op.Str)

	case OpColor:
		if c, err := ParseColor(op.Str); err == nil {
			in.curDecl.BackgroundColor = c
		}
	case OpDynColor:
		if c, ok := in.evalColor(op.Str); ok {
			in.curDecl.BackgroundColor = c
		}

	case OpRadiusAll:
		r := Pixels(op.Num)
		in.curDecl.CornerRadius = CornerRadii{TopLeft: r, TopRight: r, BottomLeft: r, BottomRight: r}
	case OpRadiusTopLeft:
		in.curDecl.CornerRadius.TopLeft = Pixels(op.Num)
	case OpRadiusTopRight:
		in.curDecl.CornerRadius.TopRight = Pixels(op.Num)
	case OpRadiusBottomLeft:
		in.curDecl.CornerRadius.BottomLeft = Pixels(op.Num)
	case OpRadiusBottomRight:
		in.curDecl.CornerRadius.BottomRight = Pixels(op.Num)

	case OpBorderColor:
		if c, err := ParseColor(op.Str); err == nil {
			in.curDecl.BorderColor = c
		}
	case OpBorderDynColor:
		if c, ok := in.evalColor(op.Str); ok {
			in.curDecl.BorderColor = c
		}
	case OpBorderAll:
		w := uint16(op.Num)
		in.curDecl.Border = BorderWidths{Top: w, Bottom: w, Left: w, Right: w, BetweenChildren: in.curDecl.Border.BetweenChildren}
	case OpBorderTop:
		in.curDecl.Border.Top = uint16(op.Num)
	case OpBorderLeft:
		in.curDecl.Border.Left = uint16(op.Num)
	case OpBorderBottom:
		in.curDecl.Border.Bottom = uint16(op.Num)
	case OpBorderRight:
		in.curDecl.Border.Right = uint16(op.Num)
	case OpBorderBetweenChildren:
		in.curDecl.Border.BetweenChildren = uint16(op.Num)

	case OpScroll:
		in.curDecl.ClipVertical = op.Bool
		in.curDecl.ClipHorizontal = op.Bool2

	case OpImage:
		in.curDecl = in.curDecl.WithImage(ImageRef{Handle: op.Str})

	case OpFloating:
		if in.curDecl.Floating == nil {
			in.curDecl.Floating = &FloatingAttachment{}
		}
	case OpFloatingOffset:
		in.ensureFloating().Offset = Vector2{X: Pixels(op.Num), Y: Pixels(op.Num2)}
	case OpFloatingSize:
		// pins the floating element's own box instead of leaving it to fit
		// its content, the way an explicit width-fixed/height-fixed pair
		// would (spec §4.7: a floating element's size is independent of
		// whatever it's attached to).
		if op.Num > 0 {
			in.curDecl.Sizing[0] = SizingFixedAxis(op.Num)
		}
		if op.Num2 > 0 {
			in.curDecl.Sizing[1] = SizingFixedAxis(op.Num2)
		}
	case OpFloatingZIndex:
		in.ensureFloating().ZIndex = FloatingAttachZIndex(op.Num)
	case OpFloatingAttachToParent:
		in.ensureFloating().ParentAnchor = op.Anchor
	case OpFloatingAttachElement:
		in.ensureFloating().ElementAnchor = op.Anchor
	case OpFloatingCapturePointer:
		if op.Str == "passthrough" {
			in.ensureFloating().PointerCapture = PointerCapturePassthrough
		} else {
			in.ensureFloating().PointerCapture = PointerCaptureCapture
		}
	case OpFloatingAttachToElement:
		in.ensureFloating().AttachToID = hashIdentity(op.Str, 0, 0)
	case OpFloatingAttachToRoot:
		in.ensureFloating().AttachToID = viewportRootID

	case OpFontID:
		in.curTextCfg.FontID = int32(op.Num)
	case OpFontSize:
		in.curTextCfg.FontSize = op.Num
	case OpLineHeight:
		in.curTextCfg.LineHeight = op.Num
	case OpTextAlignLeft:
		in.curTextCfg.Align = AlignStart
	case OpTextAlignRight:
		in.curTextCfg.Align = AlignEnd
	case OpTextAlignCenter:
		in.curTextCfg.Align = AlignCenter
	}
}

func (in *interpreter) ensureFloating() *FloatingAttachment {
	if in.curDecl.Floating == nil {
		in.curDecl.Floating = &FloatingAttachment{}
	}
	return in.curDecl.Floating
}

func parseAlignment(s string) Alignment {
	switch s {
	case "center":
		return AlignCenter
	case "end", "right", "bottom":
		return AlignEnd
	default:
		return AlignStart
	}
}

// viewportRootID is the reserved ElementID `<floating-attach-to-root/>`
// resolves to: a label no markup-authored `<element id="…">` can produce,
// since hashIdentity mixes in the literal marker text below.
// resolveFloatingElements treats it as the special "attach to the viewport" target (floating.go).
var viewportRootID = hashIdentity("\x00claymark-viewport-root\x00", 0, 0)
