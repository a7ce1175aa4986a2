package model

import "testing"

// TestSeriesHelpers tests color, label and value lookups on Series.
func TestSeriesHelpers(t *testing.T) {
	t.Parallel()

	s := Series{
		Points: []Point{{X: 10, Y: 0}, {X: 500, Y: 25.52}, {X: 1000, Y: 39.27}},
		Colors: []string{"#FF0000"},
		Labels: []string{"0.0%", "25.52%"},
	}

	t.Run("single color applies to every point", func(t *testing.T) {
		t.Parallel()
		if s.ColorAt(2) != "#FF0000" {
			t.Errorf("expected #FF0000, got %s", s.ColorAt(2))
		}
	})

	t.Run("missing label is empty", func(t *testing.T) {
		t.Parallel()
		if s.LabelAt(2) != "" {
			t.Errorf("expected empty label, got %q", s.LabelAt(2))
		}
		if s.LabelAt(1) != "25.52%" {
			t.Errorf("expected 25.52%%, got %q", s.LabelAt(1))
		}
	})

	t.Run("max y", func(t *testing.T) {
		t.Parallel()
		if s.MaxY() != 39.27 {
			t.Errorf("expected 39.27, got %v", s.MaxY())
		}
	})

	t.Run("y at x", func(t *testing.T) {
		t.Parallel()
		y, ok := s.YAt(500)
		if !ok || y != 25.52 {
			t.Errorf("expected (500, 25.52), got %v %v", y, ok)
		}
		if _, ok := s.YAt(7); ok {
			t.Error("expected no point at x=7")
		}
	})

	t.Run("no colors defaults to black", func(t *testing.T) {
		t.Parallel()
		if (Series{}).ColorAt(0) != "#000000" {
			t.Error("expected black default")
		}
	})
}

// TestFigurePanelAt tests grid lookups.
func TestFigurePanelAt(t *testing.T) {
	t.Parallel()

	f := Figure{
		Name: "01-test",
		Rows: 2,
		Cols: 2,
		Panels: []Panel{
			{Title: "a"}, {Title: "b"}, {Title: "c"},
		},
	}

	if f.FileName() != "01-test.png" {
		t.Errorf("unexpected file name %q", f.FileName())
	}

	p, ok := f.PanelAt(1, 0)
	if !ok || p.Title != "c" {
		t.Errorf("expected panel c at (1,0), got %q %v", p.Title, ok)
	}
	if _, ok := f.PanelAt(1, 1); ok {
		t.Error("expected empty cell at (1,1)")
	}
	if _, ok := f.PanelAt(0, 2); ok {
		t.Error("expected out-of-range column to fail")
	}
}

// TestPanelHasSecondaryAxis tests secondary axis detection.
func TestPanelHasSecondaryAxis(t *testing.T) {
	t.Parallel()

	p := Panel{Series: []Series{{Axis: AxisPrimary}}}
	if p.HasSecondaryAxis() {
		t.Error("expected no secondary axis")
	}
	p.Series = append(p.Series, Series{Name: "Erro (%)", Axis: AxisSecondary})
	if !p.HasSecondaryAxis() {
		t.Error("expected secondary axis")
	}
	if _, ok := p.SeriesByName("Erro (%)"); !ok {
		t.Error("expected series lookup by name")
	}
}
