package claymark

import "testing"

func TestFloatingAttachToElement(t *testing.T) {
	e := NewLayoutEngine(100, 50)

	var tooltipID ElementID
	e.BeginLayout()
	e.OpenElement()
	e.ConfigureElement(NewElementDeclaration())

	e.OpenElement()
	e.ConfigureElement(NewElementDeclaration().WithID("anchor").
		WithWidth(SizingFixedAxis(10)).WithHeight(SizingFixedAxis(4)))
	e.CloseElement()

	e.OpenElement()
	tooltipID = e.ConfigureElement(NewElementDeclaration().
		WithWidth(SizingFixedAxis(6)).WithHeight(SizingFixedAxis(2)).
		WithFloating(FloatingAttachment{
			AttachToID:    ElementIDFor("anchor"),
			ParentAnchor:  AnchorBottomLeft,
			ElementAnchor: AnchorTopLeft,
		}))
	e.CloseElement()

	e.CloseElement()
	if _, err := e.EndLayout(); err != nil {
		t.Fatalf("EndLayout: %v", err)
	}

	box := boxFor(e, tooltipID)
	// anchor sits at (0,0) sized 10x4, so its bottom-left is (0,4); the
	// tooltip's own top-left anchor should land exactly there.
	if box.X != 0 || box.Y != 4 {
		t.Errorf("tooltip box = %+v, want top-left at (0,4)", box)
	}
}

func TestFloatingAttachToRoot(t *testing.T) {
	e := NewLayoutEngine(40, 20)

	var badgeID ElementID
	e.BeginLayout()
	e.OpenElement()
	e.ConfigureElement(NewElementDeclaration().WithWidth(SizingFixedAxis(40)).WithHeight(SizingFixedAxis(20)))

	e.OpenElement()
	badgeID = e.ConfigureElement(NewElementDeclaration().
		WithWidth(SizingFixedAxis(4)).WithHeight(SizingFixedAxis(2)).
		WithFloating(FloatingAttachment{
			AttachToID:    viewportRootID,
			ParentAnchor:  AnchorBottomRight,
			ElementAnchor: AnchorBottomRight,
		}))
	e.CloseElement()

	e.CloseElement()
	if _, err := e.EndLayout(); err != nil {
		t.Fatalf("EndLayout: %v", err)
	}

	box := boxFor(e, badgeID)
	if box.X != 36 || box.Y != 18 {
		t.Errorf("badge box = %+v, want bottom-right corner flush against the 40x20 viewport", box)
	}
}

func TestFloatingAttachmentMissingIsReported(t *testing.T) {
	e := NewLayoutEngine(40, 20)
	errs := collectErrors(e)

	e.BeginLayout()
	e.OpenElement()
	e.ConfigureElement(NewElementDeclaration().
		WithFloating(FloatingAttachment{AttachToID: ElementIDFor("does-not-exist")}))
	e.CloseElement()
	e.EndLayout()

	if !hasKind(*errs, ErrorFloatingAttachmentMissing) {
		t.Error("expected ErrorFloatingAttachmentMissing for an unresolved attach target")
	}
}

func TestAnchorPoint(t *testing.T) {
	box := BoundingBox{X: 10, Y: 20, W: 8, H: 4}
	cases := []struct {
		anchor Anchor
		want   Vector2
	}{
		{AnchorTopLeft, Vector2{X: 10, Y: 20}},
		{AnchorTopCenter, Vector2{X: 14, Y: 20}},
		{AnchorTopRight, Vector2{X: 18, Y: 20}},
		{AnchorCenter, Vector2{X: 14, Y: 22}},
		{AnchorBottomRight, Vector2{X: 18, Y: 24}},
	}
	for _, c := range cases {
		if got := c.anchor.point(box); got != c.want {
			t.Errorf("anchor %v point = %+v, want %+v", c.anchor, got, c.want)
		}
	}
}

func TestMergeBorderGlyphs(t *testing.T) {
	t.Run("horizontal meets vertical forms a cross", func(t *testing.T) {
		got, ok := MergeBorderGlyphs('─', '│')
		if !ok {
			t.Fatal("expected both glyphs to be mergeable")
		}
		if got != '┼' {
			t.Errorf("merged glyph = %q, want %q", got, '┼')
		}
	})
	t.Run("non-border runes are left unmerged", func(t *testing.T) {
		_, ok := MergeBorderGlyphs('a', '│')
		if ok {
			t.Error("expected a plain rune to not be mergeable")
		}
	})
}
