package claymark

import "testing"

func TestRenderCommandsOrderedByZIndex(t *testing.T) {
	e := NewLayoutEngine(50, 50)

	e.BeginLayout()
	e.OpenElement()
	e.ConfigureElement(NewElementDeclaration())

	e.OpenElement()
	lowID := e.ConfigureElement(NewElementDeclaration().
		WithBackgroundColor(RGB(1, 0, 0)).
		WithWidth(SizingFixedAxis(4)).WithHeight(SizingFixedAxis(4)).
		WithFloating(FloatingAttachment{AttachToID: viewportRootID, ZIndex: 1}))
	e.CloseElement()

	e.OpenElement()
	highID := e.ConfigureElement(NewElementDeclaration().
		WithBackgroundColor(RGB(2, 0, 0)).
		WithWidth(SizingFixedAxis(4)).WithHeight(SizingFixedAxis(4)).
		WithFloating(FloatingAttachment{AttachToID: viewportRootID, ZIndex: 5}))
	e.CloseElement()

	e.CloseElement()
	cmds, err := e.EndLayout()
	if err != nil {
		t.Fatalf("EndLayout: %v", err)
	}

	lowPos, highPos := -1, -1
	for i, cmd := range cmds {
		if cmd.ID == lowID {
			lowPos = i
		}
		if cmd.ID == highID {
			highPos = i
		}
	}
	if lowPos < 0 || highPos < 0 {
		t.Fatal("expected both floating rectangles to emit a command")
	}
	if lowPos >= highPos {
		t.Errorf("low z-index command at %d, high z-index command at %d: expected low-z to paint first", lowPos, highPos)
	}
}

func TestBackgroundOnlyEmittedWhenOpaque(t *testing.T) {
	e := NewLayoutEngine(20, 20)

	e.BeginLayout()
	e.OpenElement()
	id := e.ConfigureElement(NewElementDeclaration()) // no background set: A=0
	e.CloseElement()
	cmds, err := e.EndLayout()
	if err != nil {
		t.Fatalf("EndLayout: %v", err)
	}

	for _, cmd := range cmds {
		if cmd.ID == id && cmd.Kind == CommandRectangle {
			t.Error("did not expect a rectangle command for a transparent background")
		}
	}
}

func TestBorderCommandCarriesWidths(t *testing.T) {
	e := NewLayoutEngine(20, 20)

	e.BeginLayout()
	e.OpenElement()
	id := e.ConfigureElement(NewElementDeclaration().WithBorder(BorderWidths{Top: 1, Bottom: 1, Left: 1, Right: 1}, RGB(255, 255, 255)))
	e.CloseElement()
	cmds, err := e.EndLayout()
	if err != nil {
		t.Fatalf("EndLayout: %v", err)
	}

	var found bool
	for _, cmd := range cmds {
		if cmd.ID == id && cmd.Kind == CommandBorder {
			found = true
			if cmd.Border.Top != 1 || cmd.Border.Left != 1 {
				t.Errorf("border widths = %+v, want all edges 1", cmd.Border)
			}
		}
	}
	if !found {
		t.Error("expected a border command for an element with non-zero border widths")
	}
}

func TestTextCommandCarriesContent(t *testing.T) {
	e := NewLayoutEngine(20, 20)

	e.BeginLayout()
	e.OpenElement()
	e.ConfigureElement(NewElementDeclaration())
	e.AddTextElement("hello", TextConfig{Color: RGB(9, 9, 9)}, true)
	e.CloseElement()
	cmds, err := e.EndLayout()
	if err != nil {
		t.Fatalf("EndLayout: %v", err)
	}

	var found bool
	for _, cmd := range cmds {
		if cmd.Kind == CommandText {
			found = true
			if cmd.Text != "hello" {
				t.Errorf("Text = %q, want %q", cmd.Text, "hello")
			}
			if cmd.TextColor != (RGB(9, 9, 9)) {
				t.Errorf("TextColor = %+v, want RGB(9,9,9)", cmd.TextColor)
			}
		}
	}
	if !found {
		t.Error("expected a text command")
	}
}
