package model

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Artifact describes one file written by a generation.
type Artifact struct {
	// Name is the logical name, e.g. "01-comparativo-geral" or "markdown".
	Name string `json:"name"`

	// Path is the file path as written.
	Path string `json:"path"`

	// Size is the file size in bytes.
	Size int64 `json:"size"`

	// SHA256 is the hex-encoded digest of the file contents.
	SHA256 string `json:"sha256"`
}

// Manifest records what one generation produced.
type Manifest struct {
	// GeneratedAt is when the generation finished.
	GeneratedAt time.Time `json:"generated_at"`

	// Version is the loadgraph version that produced the files.
	Version string `json:"version,omitempty"`

	// OutputDir is the directory the files were written to.
	OutputDir string `json:"output_dir"`

	// MetadataDigest is the digest of the figure metadata. It depends only on
	// the embedded dataset, so it is identical across runs of one build.
	MetadataDigest string `json:"metadata_digest"`

	// Figures are the chart images in generation order.
	Figures []Artifact `json:"figures"`

	// Extras are the optional outputs (markdown report, metrics textfile).
	Extras []Artifact `json:"extras,omitempty"`
}

// Figure returns the artifact of the named figure.
func (m *Manifest) Figure(name string) (Artifact, bool) {
	for _, a := range m.Figures {
		if a.Name == name {
			return a, true
		}
	}
	return Artifact{}, false
}

// Generation is the state carried through the generation pipeline.
type Generation struct {
	// Runs is the dataset the generation reads from.
	Runs []TestRun `json:"runs"`

	// Figures holds the figure metadata built so far, in generation order.
	Figures []Figure `json:"figures"`

	// Manifest accumulates the artifacts written so far.
	Manifest *Manifest `json:"manifest"`

	// PerformedSteps lists the pipeline steps that ran.
	PerformedSteps []string `json:"performed_steps"`

	// Cancelled is set when the context was cancelled between steps.
	Cancelled bool `json:"cancelled"`

	// Error is the step error that stopped the generation, if any.
	Error error `json:"-"`

	// ErrorMessage is the string form of Error for serialization.
	ErrorMessage string `json:"error,omitempty"`
}

// NewGeneration creates a generation over the embedded dataset writing to outputDir.
func NewGeneration(outputDir string) *Generation {
	return &Generation{
		Runs: Runs(),
		Manifest: &Manifest{
			OutputDir: outputDir,
		},
	}
}

// AddFigure records built figure metadata and its written image.
func (g *Generation) AddFigure(fig Figure, artifact Artifact) {
	g.Figures = append(g.Figures, fig)
	g.Manifest.Figures = append(g.Manifest.Figures, artifact)
}

// AddExtra records an optional output file.
func (g *Generation) AddExtra(artifact Artifact) {
	g.Manifest.Extras = append(g.Manifest.Extras, artifact)
}

// DigestFigures returns the hex SHA-256 of the JSON encoding of figs.
// encoding/json writes struct fields in declaration order, so the encoding
// is stable for identical input.
func DigestFigures(figs []Figure) (string, error) {
	data, err := json.Marshal(figs)
	if err != nil {
		return "", fmt.Errorf("failed to encode figure metadata: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// DigestBytes returns the hex SHA-256 of data.
func DigestBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// ArtifactFromFile reads the file at path and describes it as an artifact
// named name.
func ArtifactFromFile(name, path string) (Artifact, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is one of our own outputs
	if err != nil {
		return Artifact{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Artifact{
		Name:   name,
		Path:   path,
		Size:   int64(len(data)),
		SHA256: DigestBytes(data),
	}, nil
}
