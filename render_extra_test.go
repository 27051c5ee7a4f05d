package claymark

import "testing"

func TestAddRichTextConcatenatesSpansAndCarriesStyling(t *testing.T) {
	e := NewLayoutEngine(40, 10)

	e.BeginLayout()
	e.OpenElement()
	e.ConfigureElement(NewElementDeclaration())
	spans := []Span{
		{Text: "bold ", Color: RGB(255, 0, 0), Attrs: AttrBold},
		{Text: "plain", Color: RGB(0, 0, 0)},
	}
	e.AddRichText(spans, WrapWords)
	e.CloseElement()
	cmds, err := e.EndLayout()
	if err != nil {
		t.Fatalf("EndLayout: %v", err)
	}

	var found bool
	for _, cmd := range cmds {
		if cmd.Kind == CommandText && len(cmd.Spans) == 2 {
			found = true
			if cmd.Text != "bold plain" {
				t.Errorf("Text = %q, want the concatenation %q", cmd.Text, "bold plain")
			}
			if !cmd.Spans[0].Attrs.Has(AttrBold) {
				t.Error("expected the first span to carry AttrBold")
			}
			if cmd.Spans[1].Attrs.Has(AttrBold) {
				t.Error("did not expect the second span to carry AttrBold")
			}
		}
	}
	if !found {
		t.Error("expected a text command carrying two spans")
	}
}

func TestImageElementEmitsImageCommand(t *testing.T) {
	e := NewLayoutEngine(20, 20)

	e.BeginLayout()
	e.OpenElement()
	id := e.ConfigureElement(NewElementDeclaration().
		WithWidth(SizingFixedAxis(8)).WithHeight(SizingFixedAxis(8)).
		WithImage(ImageRef{Handle: "logo.png", SrcW: 8, SrcH: 8}))
	e.CloseElement()
	cmds, err := e.EndLayout()
	if err != nil {
		t.Fatalf("EndLayout: %v", err)
	}

	var found bool
	for _, cmd := range cmds {
		if cmd.ID == id && cmd.Kind == CommandImage {
			found = true
			if cmd.Image.Handle != "logo.png" {
				t.Errorf("Image.Handle = %q, want %q", cmd.Image.Handle, "logo.png")
			}
		}
	}
	if !found {
		t.Error("expected an image command for an element with an Image set")
	}
}

func TestCustomElementEmitsCustomCommand(t *testing.T) {
	type widget struct{ name string }
	e := NewLayoutEngine(20, 20)

	e.BeginLayout()
	e.OpenElement()
	id := e.ConfigureElement(NewElementDeclaration().
		WithWidth(SizingFixedAxis(8)).WithHeight(SizingFixedAxis(8)).
		WithCustom(widget{name: "gauge"}))
	e.CloseElement()
	cmds, err := e.EndLayout()
	if err != nil {
		t.Fatalf("EndLayout: %v", err)
	}

	var found bool
	for _, cmd := range cmds {
		if cmd.ID == id && cmd.Kind == CommandCustom {
			found = true
			w, ok := cmd.Custom.(widget)
			if !ok || w.name != "gauge" {
				t.Errorf("Custom payload = %#v, want widget{name: \"gauge\"}", cmd.Custom)
			}
		}
	}
	if !found {
		t.Error("expected a custom command for an element with Custom set")
	}
}

func TestMarkupFloatingOffsetSizeAndZIndex(t *testing.T) {
	doc := `
<page name="home">
  <element>
    <element-config>
      <width-fixed at="20"/>
      <height-fixed at="20"/>
    </element-config>
    <element id="tooltip">
      <element-config>
        <floating-attach-to-root/>
        <floating-offset x="3" y="4"/>
        <floating-size width="6" height="2"/>
        <floating-z-index z="9"/>
        <color is="#ff0000"/>
      </element-config>
    </element>
  </element>
</page>`

	prog := compileOK(t, doc)
	e := NewLayoutEngine(40, 40)
	e.LoadPages(prog)

	e.BeginLayout()
	if err := e.RunPage("home", newFakeHostData()); err != nil {
		t.Fatalf("RunPage: %v", err)
	}
	cmds, err := e.EndLayout()
	if err != nil {
		t.Fatalf("EndLayout: %v", err)
	}

	id := ElementIDFor("tooltip")
	var found bool
	for _, cmd := range cmds {
		if cmd.ID == id {
			found = true
			if cmd.ZIndex != 9 {
				t.Errorf("ZIndex = %v, want 9", cmd.ZIndex)
			}
			if cmd.Box.W != 6 || cmd.Box.H != 2 {
				t.Errorf("Box size = %vx%v, want 6x2", cmd.Box.W, cmd.Box.H)
			}
			if cmd.Box.X != 3 || cmd.Box.Y != 4 {
				t.Errorf("Box origin = (%v,%v), want (3,4) since it's attached to the root at its offset", cmd.Box.X, cmd.Box.Y)
			}
		}
	}
	if !found {
		t.Fatal("expected a render command for the floating tooltip element")
	}
}

func TestMarkupFloatingAttachToElement(t *testing.T) {
	doc := `
<page name="home">
  <element>
    <element-config><direction is="left-to-right"/></element-config>
    <element id="anchor">
      <element-config><width-fixed at="10"/><height-fixed at="10"/></element-config>
    </element>
    <element id="badge">
      <element-config>
        <floating-attach-to-element id="anchor"/>
        <floating-size width="2" height="2"/>
        <color is="#00ff00"/>
      </element-config>
    </element>
  </element>
</page>`

	prog := compileOK(t, doc)
	e := NewLayoutEngine(40, 40)
	e.LoadPages(prog)

	e.BeginLayout()
	if err := e.RunPage("home", newFakeHostData()); err != nil {
		t.Fatalf("RunPage: %v", err)
	}
	cmds, err := e.EndLayout()
	if err != nil {
		t.Fatalf("EndLayout: %v", err)
	}

	errs := e.RecentErrors()
	if hasKind(errs, ErrorFloatingAttachmentMissing) {
		t.Fatalf("unexpected ErrorFloatingAttachmentMissing, errs=%+v", errs)
	}

	anchorBox := boxFor(e, ElementIDFor("anchor"))
	badgeID := ElementIDFor("badge")
	var found bool
	for _, cmd := range cmds {
		if cmd.ID == badgeID {
			found = true
			if cmd.Box.X != anchorBox.X || cmd.Box.Y != anchorBox.Y {
				t.Errorf("badge box = %+v, want it anchored at the anchor element's origin %+v", cmd.Box, anchorBox)
			}
		}
	}
	if !found {
		t.Fatal("expected a render command for the badge element")
	}
}

func TestMarkupTextAlignCenter(t *testing.T) {
	doc := `
<page name="home">
  <text-element>
    <text-config><text-align-center/></text-config>
    <content>hi</content>
  </text-element>
</page>`

	prog := compileOK(t, doc)
	e := NewLayoutEngine(40, 10)
	e.LoadPages(prog)

	e.BeginLayout()
	if err := e.RunPage("home", newFakeHostData()); err != nil {
		t.Fatalf("RunPage: %v", err)
	}
	if _, err := e.EndLayout(); err != nil {
		t.Fatalf("EndLayout: %v", err)
	}
}
