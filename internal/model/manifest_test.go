package model

import (
	"os"
	"path/filepath"
	"testing"
)

// TestDigestFigures verifies the metadata digest is deterministic and
// sensitive to changes.
func TestDigestFigures(t *testing.T) {
	t.Parallel()

	figs := []Figure{{
		Name: "02-escalabilidade",
		Rows: 1,
		Cols: 2,
		Panels: []Panel{{
			Kind:   PanelLine,
			Series: []Series{{Points: []Point{{X: 500, Y: 25.52}}}},
		}},
	}}

	a, err := DigestFigures(figs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := DigestFigures(figs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a != b {
		t.Errorf("expected identical digests, got %s and %s", a, b)
	}
	if len(a) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(a))
	}

	figs[0].Panels[0].Series[0].Points[0].Y = 25.53
	c, err := DigestFigures(figs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c == a {
		t.Error("expected digest to change with the data")
	}
}

// TestGeneration tests artifact bookkeeping.
func TestGeneration(t *testing.T) {
	t.Parallel()

	g := NewGeneration("graficos")
	if len(g.Runs) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(g.Runs))
	}
	if g.Manifest.OutputDir != "graficos" {
		t.Errorf("unexpected output dir %q", g.Manifest.OutputDir)
	}

	g.AddFigure(Figure{Name: "01-comparativo-geral"}, Artifact{Name: "01-comparativo-geral", Size: 10})
	g.AddExtra(Artifact{Name: "markdown"})

	if len(g.Figures) != 1 || len(g.Manifest.Figures) != 1 {
		t.Fatal("expected one figure recorded")
	}
	a, ok := g.Manifest.Figure("01-comparativo-geral")
	if !ok || a.Size != 10 {
		t.Errorf("unexpected artifact %+v", a)
	}
	if _, ok := g.Manifest.Figure("missing"); ok {
		t.Error("expected missing figure lookup to fail")
	}
	if len(g.Manifest.Extras) != 1 {
		t.Error("expected one extra artifact")
	}
}

// TestDigestBytes tests the byte digest helper.
func TestDigestBytes(t *testing.T) {
	t.Parallel()

	// SHA-256 of the empty string.
	const empty = "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	if got := DigestBytes(nil); got != empty {
		t.Errorf("expected %s, got %s", empty, got)
	}
}

func TestArtifactFromFile(t *testing.T) {
	t.Parallel()

	t.Run("describes the file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "relatorio.md")
		if err := os.WriteFile(path, []byte("# ok\n"), 0600); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}

		a, err := ArtifactFromFile("markdown", path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if a.Name != "markdown" || a.Path != path {
			t.Errorf("unexpected artifact %+v", a)
		}
		if a.Size != 5 {
			t.Errorf("expected size 5, got %d", a.Size)
		}
		if a.SHA256 != DigestBytes([]byte("# ok\n")) {
			t.Error("unexpected digest")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		if _, err := ArtifactFromFile("x", filepath.Join(t.TempDir(), "missing")); err == nil {
			t.Error("expected an error")
		}
	})
}
