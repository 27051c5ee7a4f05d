package claymark

import "testing"

func TestArenaResetClearsIDIndex(t *testing.T) {
	e := NewLayoutEngine(80, 24)

	e.BeginLayout()
	e.OpenElement()
	e.ConfigureElement(NewElementDeclaration().WithID("panel"))
	e.CloseElement()
	if _, err := e.EndLayout(); err != nil {
		t.Fatalf("EndLayout: %v", err)
	}

	var reported []LayoutError
	e.onError = func(err LayoutError) { reported = append(reported, err) }

	// Reusing the same id on the next frame must not look like a duplicate:
	// reset() has to clear idIndex along with the element slice.
	e.BeginLayout()
	e.OpenElement()
	e.ConfigureElement(NewElementDeclaration().WithID("panel"))
	e.CloseElement()
	if _, err := e.EndLayout(); err != nil {
		t.Fatalf("EndLayout: %v", err)
	}

	for _, err := range reported {
		if err.Kind == ErrorDuplicateID {
			t.Errorf("got stale ErrorDuplicateID across frames: %v", err)
		}
	}
}

func TestArenaCapacityExceeded(t *testing.T) {
	e := NewLayoutEngine(80, 24, WithArenaBudget(ArenaBudget{MaxElements: 2, MaxTextBytes: 1024, MaxCommands: 16}))

	var reported []LayoutError
	e.onError = func(err LayoutError) { reported = append(reported, err) }

	e.BeginLayout()
	e.OpenElement()
	e.ConfigureElement(NewElementDeclaration())
	e.OpenElement()
	e.ConfigureElement(NewElementDeclaration())
	e.OpenElement() // third element exceeds the budget of 2
	e.ConfigureElement(NewElementDeclaration())
	e.CloseElement()
	e.CloseElement()
	e.CloseElement()
	e.EndLayout()

	found := false
	for _, err := range reported {
		if err.Kind == ErrorArenaCapacityExceeded {
			found = true
		}
	}
	if !found {
		t.Error("expected ErrorArenaCapacityExceeded when allocating past MaxElements")
	}
}

func TestEndLayoutReturnsFatalErrorFromDuringBuild(t *testing.T) {
	e := NewLayoutEngine(80, 24, WithArenaBudget(ArenaBudget{MaxElements: 1, MaxTextBytes: 1024, MaxCommands: 16}))

	e.BeginLayout()
	e.OpenElement()
	e.ConfigureElement(NewElementDeclaration())
	e.OpenElement() // second element exceeds the budget of 1, reported as fatal and never pushed
	e.ConfigureElement(NewElementDeclaration())
	e.CloseElement()

	_, err := e.EndLayout()
	le, ok := err.(LayoutError)
	if !ok || le.Kind != ErrorArenaCapacityExceeded {
		t.Fatalf("EndLayout err = %v, want a returned ErrorArenaCapacityExceeded", err)
	}

	// the fatal latch must not leak into the next frame.
	e.BeginLayout()
	e.OpenElement()
	e.ConfigureElement(NewElementDeclaration())
	e.CloseElement()
	if _, err := e.EndLayout(); err != nil {
		t.Errorf("EndLayout on the following frame returned %v, want nil", err)
	}
}

func TestEstimateArenaCapacity(t *testing.T) {
	b := EstimateArenaCapacity(800, 8000, 800)
	if b.MaxElements != 900 {
		t.Errorf("MaxElements = %d, want 900 (800 + 1/8 margin)", b.MaxElements)
	}
	if b.MaxTextBytes != 9000 {
		t.Errorf("MaxTextBytes = %d, want 9000", b.MaxTextBytes)
	}
	if b.MaxCommands != 900 {
		t.Errorf("MaxCommands = %d, want 900", b.MaxCommands)
	}
}
