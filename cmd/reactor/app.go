package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/chazu/reactor/pkg/command"
	"github.com/chazu/reactor/pkg/engine"
	"github.com/chazu/reactor/pkg/kernel"
	"github.com/chazu/reactor/pkg/kernel/sdfx"
	"github.com/chazu/reactor/pkg/region"
	"github.com/chazu/reactor/pkg/tessellate"
)

// colorPalette is a default palette used to assign distinct colors to parts.
var colorPalette = []string{
	"#4A90D9", "#E67E22", "#2ECC71", "#9B59B6",
	"#E74C3C", "#1ABC9C", "#F39C12", "#3498DB",
}

// config holds the command-line knobs.
type config struct {
	Script    bool   // input is a Lisp script rather than text commands
	InitLimit int64  // half-width of the initialization region
	STL       string // write the final region here when set
	STLInit   bool   // clip the STL to the initialization region
	Mesh      bool   // report per-cuboid meshes
	MeshCells int    // marching cubes resolution
	Verify    bool   // cross-check the region against a CSG replay
	Samples   int    // lattice samples per axis for Verify
	LogLevel  string
	JSON      bool
}

// App runs the reboot pipeline: source to commands, commands to a region,
// region to volumes and optionally geometry.
type App struct {
	engine *engine.Engine
	kernel kernel.Kernel
	log    logrus.FieldLogger
}

// PartData summarizes the mesh of one disjoint cuboid.
type PartData struct {
	PartName  string `json:"partName"`
	Color     string `json:"color"`
	Vertices  int    `json:"vertices"`
	Triangles int    `json:"triangles"`
}

// ErrorData is a serializable error or warning.
type ErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// Result is the full outcome of a run.
type Result struct {
	Commands    int         `json:"commands"`
	InitVolume  uint64      `json:"initVolume"`
	TotalVolume uint64      `json:"totalVolume"`
	Cuboids     int         `json:"cuboids"`
	Bounds      string      `json:"bounds,omitempty"`
	Parts       []PartData  `json:"parts,omitempty"`
	Combined    *PartData   `json:"combined,omitempty"`
	Verified    int         `json:"verified,omitempty"`
	Errors      []ErrorData `json:"errors"`
	Warnings    []ErrorData `json:"warnings"`
}

// NewApp creates a new App with an engine and the sdfx kernel.
func NewApp(log logrus.FieldLogger, meshCells int) *App {
	return &App{
		engine: engine.NewEngine(),
		kernel: sdfx.NewWithCells(meshCells),
		log:    log,
	}
}

// Load turns source into a command sequence. Failures come back as
// ErrorData with a nil sequence.
func (a *App) Load(source string, script bool) (*command.Sequence, []ErrorData) {
	if !script {
		seq, err := command.ParseString(source)
		if err != nil {
			var pe *command.ParseError
			if errors.As(err, &pe) {
				return nil, []ErrorData{{Line: pe.Line, Message: fmt.Sprintf("%v: %q", pe.Err, pe.Text)}}
			}
			return nil, []ErrorData{{Message: err.Error()}}
		}
		return seq, nil
	}

	seq, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		// Fatal error (panic, timeout, etc.)
		a.log.Errorf("Evaluate fatal error: %v", err)
		return nil, []ErrorData{{Message: err.Error()}}
	}
	if len(evalErrs) > 0 {
		errs := make([]ErrorData, 0, len(evalErrs))
		for _, e := range evalErrs {
			errs = append(errs, ErrorData{Line: e.Line, Col: e.Col, Message: e.Message})
		}
		return nil, errs
	}
	return seq, nil
}

// Run loads source and replays it, reporting the initialization and full
// volumes. Blocking validation errors stop the run before any replay.
func (a *App) Run(ctx context.Context, source string, cfg config) Result {
	result := Result{
		Errors:   []ErrorData{},
		Warnings: []ErrorData{},
	}

	// Step 1: Source into commands.
	seq, errs := a.Load(source, cfg.Script)
	if len(errs) > 0 {
		result.Errors = append(result.Errors, errs...)
		return result
	}
	result.Commands = seq.Len()
	a.log.WithField("commands", seq.Len()).Debug("loaded")

	// Step 2: Validate.
	vr := command.ValidateAll(seq)
	for _, w := range vr.Warnings {
		a.log.WithField("command", w.Index).Warn(w.Message)
		result.Warnings = append(result.Warnings, ErrorData{Line: w.Line, Message: w.Message})
	}
	if !vr.OK() {
		for _, e := range vr.Errors {
			result.Errors = append(result.Errors, ErrorData{Line: e.Line, Message: e.Message})
		}
		return result
	}

	// Step 3: Replay. The initialization region is a pre-filter over the
	// same sequence.
	result.InitVolume = seq.Within(cfg.InitLimit).Run().TotalVolume()
	set := seq.Run()
	result.TotalVolume = set.TotalVolume()
	result.Cuboids = set.Len()
	if b, ok := set.Bounds(); ok {
		result.Bounds = b.String()
	}
	a.log.WithFields(logrus.Fields{
		"init":    result.InitVolume,
		"total":   result.TotalVolume,
		"cuboids": result.Cuboids,
	}).Info("reboot complete")

	// Step 4: Geometry.
	if cfg.Verify {
		checked, err := a.verify(seq, set, cfg.Samples)
		if err != nil {
			a.log.Errorf("Verify error: %v", err)
			result.Errors = append(result.Errors, ErrorData{Message: err.Error()})
			return result
		}
		result.Verified = checked
		a.log.WithField("points", checked).Info("verified against CSG replay")
	}
	if cfg.Mesh {
		parts, combined, err := a.parts(ctx, set)
		if err != nil {
			a.log.Errorf("Tessellate error: %v", err)
			result.Errors = append(result.Errors, ErrorData{Message: "tessellation failed: " + err.Error()})
			return result
		}
		result.Parts = parts
		result.Combined = combined
	}
	if cfg.STL != "" {
		if err := a.exportSTL(set, cfg); err != nil {
			a.log.Errorf("STL export error: %v", err)
			result.Errors = append(result.Errors, ErrorData{Message: err.Error()})
			return result
		}
		a.log.WithField("path", cfg.STL).Info("wrote STL")
	}

	return result
}

// verify replays seq with kernel booleans and compares the solid with set
// at lattice points across every command's cuboid.
func (a *App) verify(seq *command.Sequence, set *region.Set, samples int) (int, error) {
	bound, ok := seq.Bounds()
	if !ok {
		return 0, nil
	}
	solid, _ := tessellate.Replay(seq, a.kernel)
	checked, mismatches := tessellate.Compare(solid, set, bound, samples)
	if len(mismatches) > 0 {
		m := mismatches[0]
		return checked, fmt.Errorf("verify: %d of %d lattice points disagree with the CSG replay, first at (%d,%d,%d) where the region has it %s",
			len(mismatches), checked, m.X, m.Y, m.Z, onOff(m.InRegion))
	}
	return checked, nil
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}

// exportSTL writes the union of set, clipped to the initialization region
// when cfg.STLInit is set.
func (a *App) exportSTL(set *region.Set, cfg config) error {
	if !cfg.STLInit {
		return tessellate.ExportSTL(set, a.kernel, cfg.STL)
	}
	s, ok := tessellate.Solid(set, a.kernel)
	if !ok {
		return fmt.Errorf("nothing to export to %s: region is empty", cfg.STL)
	}
	l := cfg.InitLimit
	return a.kernel.WriteSTL(tessellate.Clip(s, region.New(-l, l, -l, l, -l, l), a.kernel), cfg.STL)
}

// parts meshes every member of set and assigns palette colors in order. It
// also returns a summary of all meshes merged into one.
func (a *App) parts(ctx context.Context, set *region.Set) ([]PartData, *PartData, error) {
	meshes, err := tessellate.Tessellate(ctx, set, a.kernel)
	if err != nil {
		return nil, nil, err
	}
	parts := make([]PartData, 0, len(meshes))
	for i, m := range meshes {
		parts = append(parts, PartData{
			PartName:  m.PartName,
			Color:     colorPalette[i%len(colorPalette)],
			Vertices:  m.VertexCount(),
			Triangles: m.TriangleCount(),
		})
	}
	merged := kernel.Merge(meshes...)
	combined := &PartData{
		PartName:  "combined",
		Vertices:  merged.VertexCount(),
		Triangles: merged.TriangleCount(),
	}
	return parts, combined, nil
}

// Summary formats the two headline volumes.
func (r Result) Summary() string {
	return fmt.Sprintf("initialization: %d\nreboot: %d\n", r.InitVolume, r.TotalVolume)
}
