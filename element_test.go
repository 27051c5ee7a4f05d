package claymark

import "testing"

func collectErrors(e *LayoutEngine) *[]LayoutError {
	var errs []LayoutError
	e.onError = func(err LayoutError) { errs = append(errs, err) }
	return &errs
}

func hasKind(errs []LayoutError, kind ErrorKind) bool {
	for _, e := range errs {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

func TestBuilderLifecycleBalanced(t *testing.T) {
	e := NewLayoutEngine(80, 24)
	errs := collectErrors(e)

	e.BeginLayout()
	e.OpenElement()
	e.ConfigureElement(NewElementDeclaration())
	e.AddTextElement("hello", TextConfig{}, true)
	e.CloseElement()
	if _, err := e.EndLayout(); err != nil {
		t.Fatalf("EndLayout: %v", err)
	}
	if len(*errs) != 0 {
		t.Errorf("unexpected errors from a balanced build: %v", *errs)
	}
}

func TestBuilderReentrantBeginLayout(t *testing.T) {
	e := NewLayoutEngine(80, 24)
	errs := collectErrors(e)

	e.BeginLayout()
	e.BeginLayout()
	if !hasKind(*errs, ErrorUnbalancedElements) {
		t.Error("expected ErrorUnbalancedElements when BeginLayout re-enters")
	}
}

func TestBuilderCloseWithNothingOpen(t *testing.T) {
	e := NewLayoutEngine(80, 24)
	errs := collectErrors(e)

	e.BeginLayout()
	e.CloseElement()
	if !hasKind(*errs, ErrorUnbalancedElements) {
		t.Error("expected ErrorUnbalancedElements closing with nothing open")
	}
}

func TestBuilderCloseUnconfiguredElement(t *testing.T) {
	e := NewLayoutEngine(80, 24)
	errs := collectErrors(e)

	e.BeginLayout()
	e.OpenElement()
	e.CloseElement() // never configured
	if !hasKind(*errs, ErrorUnbalancedElements) {
		t.Error("expected ErrorUnbalancedElements closing a dangling element")
	}
}

func TestBuilderConfigureTwice(t *testing.T) {
	e := NewLayoutEngine(80, 24)
	errs := collectErrors(e)

	e.BeginLayout()
	e.OpenElement()
	e.ConfigureElement(NewElementDeclaration())
	e.ConfigureElement(NewElementDeclaration())
	if !hasKind(*errs, ErrorUnbalancedElements) {
		t.Error("expected ErrorUnbalancedElements configuring the same element twice")
	}
}

func TestEndLayoutWithElementsStillOpen(t *testing.T) {
	e := NewLayoutEngine(80, 24)

	e.BeginLayout()
	e.OpenElement()
	e.ConfigureElement(NewElementDeclaration())
	_, err := e.EndLayout()
	if err == nil {
		t.Fatal("expected an error from EndLayout with an element still open")
	}
	le, ok := err.(LayoutError)
	if !ok || le.Kind != ErrorElementsOpenAtEndLayout {
		t.Errorf("got %v, want ErrorElementsOpenAtEndLayout", err)
	}
}

func TestDuplicateExplicitID(t *testing.T) {
	e := NewLayoutEngine(80, 24)
	errs := collectErrors(e)

	e.BeginLayout()
	e.OpenElement()
	e.ConfigureElement(NewElementDeclaration().WithID("sidebar"))
	e.OpenElement()
	e.ConfigureElement(NewElementDeclaration().WithID("sidebar"))
	e.CloseElement()
	e.CloseElement()
	e.EndLayout()

	if !hasKind(*errs, ErrorDuplicateID) {
		t.Error("expected ErrorDuplicateID for two elements sharing the same explicit id")
	}
}

func TestExplicitIDIsStableAcrossTreePosition(t *testing.T) {
	e := NewLayoutEngine(80, 24)

	runOnce := func(nestUnderExtraWrapper bool) ElementID {
		e.BeginLayout()
		var id ElementID
		if nestUnderExtraWrapper {
			e.OpenElement()
			e.ConfigureElement(NewElementDeclaration())
		}
		e.OpenElement()
		id = e.ConfigureElement(NewElementDeclaration().WithID("panel"))
		e.CloseElement()
		if nestUnderExtraWrapper {
			e.CloseElement()
		}
		e.EndLayout()
		return id
	}

	flat := runOnce(false)
	nested := runOnce(true)
	if flat != nested {
		t.Errorf("explicit id %q resolved to different ElementIDs depending on tree position: %v vs %v", "panel", flat, nested)
	}
	if flat != ElementIDFor("panel") {
		t.Errorf("ElementIDFor(%q) = %v, does not match the id resolved for <element id=%q>", "panel", ElementIDFor("panel"), "panel")
	}
}

func TestAnonymousSiblingsDisambiguateByOffset(t *testing.T) {
	e := NewLayoutEngine(80, 24)

	var ids []ElementID
	e.BeginLayout()
	e.OpenElement()
	e.ConfigureElement(NewElementDeclaration())
	for i := 0; i < 3; i++ {
		e.OpenElement()
		ids = append(ids, e.ConfigureElement(NewElementDeclaration()))
		e.CloseElement()
	}
	e.CloseElement()
	e.EndLayout()

	seen := make(map[ElementID]bool)
	for _, id := range ids {
		if seen[id] {
			t.Errorf("anonymous siblings collided on id %v", id)
		}
		seen[id] = true
	}
}

func TestPercentSizingOutOfRangeIsClampedAndReported(t *testing.T) {
	e := NewLayoutEngine(80, 24)
	errs := collectErrors(e)

	e.BeginLayout()
	e.OpenElement()
	e.ConfigureElement(NewElementDeclaration().WithWidth(SizingPercentAxis(1.5)))
	e.CloseElement()
	e.EndLayout()

	if !hasKind(*errs, ErrorPercentageOutOfRange) {
		t.Error("expected ErrorPercentageOutOfRange for a percent sizing of 1.5")
	}
}

func TestPercentSizingWithinRangeIsNotReported(t *testing.T) {
	e := NewLayoutEngine(80, 24)
	errs := collectErrors(e)

	e.BeginLayout()
	e.OpenElement()
	e.ConfigureElement(NewElementDeclaration().WithWidth(SizingPercentAxis(0.5)))
	e.CloseElement()
	e.EndLayout()

	if hasKind(*errs, ErrorPercentageOutOfRange) {
		t.Error("did not expect ErrorPercentageOutOfRange for a percent sizing of 0.5")
	}
}
