package claymark

import "testing"

func TestBoundingBoxContains(t *testing.T) {
	box := BoundingBox{X: 10, Y: 10, W: 5, H: 5}

	t.Run("inside", func(t *testing.T) {
		if !box.Contains(Vector2{X: 12, Y: 12}) {
			t.Error("expected point inside box to be contained")
		}
	})
	t.Run("top-left corner is inclusive", func(t *testing.T) {
		if !box.Contains(Vector2{X: 10, Y: 10}) {
			t.Error("expected top-left corner to be contained")
		}
	})
	t.Run("bottom-right edge is exclusive", func(t *testing.T) {
		if box.Contains(Vector2{X: 15, Y: 12}) {
			t.Error("expected right edge to be excluded")
		}
		if box.Contains(Vector2{X: 12, Y: 15}) {
			t.Error("expected bottom edge to be excluded")
		}
	})
	t.Run("outside", func(t *testing.T) {
		if box.Contains(Vector2{X: 0, Y: 0}) {
			t.Error("expected origin to be outside box")
		}
	})
}

func TestSizingAxisClamp(t *testing.T) {
	t.Run("fit clamps to max when max is set", func(t *testing.T) {
		s := SizingFitAxis(2, 10)
		if got := s.clamp(20); got != 10 {
			t.Errorf("clamp(20) = %v, want 10", got)
		}
	})
	t.Run("fit with max=0 is unbounded above", func(t *testing.T) {
		s := SizingFitAxis(2, 0)
		if got := s.clamp(1000); got != 1000 {
			t.Errorf("clamp(1000) = %v, want 1000 (unbounded)", got)
		}
	})
	t.Run("min floors the value", func(t *testing.T) {
		s := SizingFitAxis(5, 0)
		if got := s.clamp(1); got != 5 {
			t.Errorf("clamp(1) = %v, want 5", got)
		}
	})
	t.Run("fixed pins min and max to size", func(t *testing.T) {
		s := SizingFixedAxis(42)
		if s.Min != 42 || s.Max != 42 {
			t.Errorf("fixed axis = %+v, want Min=Max=42", s)
		}
	})
	t.Run("percent stores raw value unclamped at construction", func(t *testing.T) {
		s := SizingPercentAxis(1.5)
		if s.Percent != 1.5 {
			t.Errorf("Percent = %v, want 1.5 (clamping deferred to ConfigureElement)", s.Percent)
		}
	})
}
