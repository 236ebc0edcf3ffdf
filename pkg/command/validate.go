package command

import (
	"fmt"
	"math/bits"

	"github.com/chazu/reactor/pkg/region"
)

// Severity indicates whether a validation finding blocks evaluation or is
// merely informational.
type Severity int

const (
	SeverityError   Severity = iota // blocks evaluation
	SeverityWarning                 // informational
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// ValidationError describes a single validation finding about one command.
type ValidationError struct {
	Index    int    // position in the sequence, -1 if sequence-level
	Line     int    // source line, 0 if unknown
	Message  string // human-readable description
	Severity Severity
}

func (e ValidationError) Error() string {
	switch {
	case e.Index < 0:
		return fmt.Sprintf("[%s] %s", e.Severity, e.Message)
	case e.Line > 0:
		return fmt.Sprintf("[%s] command %d (line %d): %s", e.Severity, e.Index, e.Line, e.Message)
	default:
		return fmt.Sprintf("[%s] command %d: %s", e.Severity, e.Index, e.Message)
	}
}

// ValidationWarning describes a non-blocking advisory finding.
type ValidationWarning struct {
	Index   int
	Line    int
	Message string
}

// ValidationResult bundles errors (blocking) and warnings (advisory).
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationWarning
}

// OK reports whether no blocking errors were found.
func (r ValidationResult) OK() bool {
	return len(r.Errors) == 0
}

// Validate runs the blocking checks and returns one error per offending
// command. An empty slice means the sequence can be replayed safely.
func Validate(seq *Sequence) []ValidationError {
	var errs []ValidationError
	for i, c := range seq.Commands {
		if _, ok := volume(c.Cuboid); !ok {
			errs = append(errs, ValidationError{
				Index:    i,
				Line:     c.Line,
				Message:  fmt.Sprintf("cuboid %s has more points than fit in 64 bits", c.Cuboid),
				Severity: SeverityError,
			})
		}
	}
	return errs
}

// ValidateAll runs the blocking checks plus advisory ones.
func ValidateAll(seq *Sequence) ValidationResult {
	result := ValidationResult{Errors: Validate(seq)}
	result.Warnings = append(result.Warnings, warnNoEffect(seq)...)
	result.Warnings = append(result.Warnings, warnRepeated(seq)...)
	if result.OK() {
		result.Warnings = append(result.Warnings, warnTotalOverflow(seq)...)
	}
	return result
}

// volume is Cuboid.Volume with overflow detection.
func volume(c region.Cuboid) (uint64, bool) {
	v := uint64(1)
	for _, a := range region.Axes {
		n := c[a].Len()
		if n == 0 {
			// Only the full int64 range wraps to zero.
			return 0, false
		}
		hi, lo := bits.Mul64(v, n)
		if hi != 0 {
			return 0, false
		}
		v = lo
	}
	return v, true
}

// warnNoEffect flags off commands issued before anything was switched on.
func warnNoEffect(seq *Sequence) []ValidationWarning {
	var warnings []ValidationWarning
	for i, c := range seq.Commands {
		if c.On {
			break
		}
		warnings = append(warnings, ValidationWarning{
			Index:   i,
			Line:    c.Line,
			Message: "off command before any on command has no effect",
		})
	}
	return warnings
}

// warnRepeated flags a command identical to the one before it; applying
// the same command twice in a row never changes the outcome.
func warnRepeated(seq *Sequence) []ValidationWarning {
	var warnings []ValidationWarning
	for i := 1; i < len(seq.Commands); i++ {
		prev, c := seq.Commands[i-1], seq.Commands[i]
		if prev.On == c.On && prev.Cuboid == c.Cuboid {
			warnings = append(warnings, ValidationWarning{
				Index:   i,
				Line:    c.Line,
				Message: fmt.Sprintf("repeats command %d", i-1),
			})
		}
	}
	return warnings
}

// warnTotalOverflow flags sequences whose lit points could exceed 64 bits.
// The total never exceeds the volume of the box bounding every on cuboid.
func warnTotalOverflow(seq *Sequence) []ValidationWarning {
	var (
		bounds region.Cuboid
		seen   bool
	)
	for _, c := range seq.Commands {
		if !c.On {
			continue
		}
		if !seen {
			bounds, seen = c.Cuboid, true
			continue
		}
		bounds = bounds.Hull(c.Cuboid)
	}
	if !seen {
		return nil
	}
	if _, ok := volume(bounds); ok {
		return nil
	}
	return []ValidationWarning{{
		Index:   -1,
		Message: fmt.Sprintf("on commands span %s; the total may overflow 64 bits", bounds),
	}}
}
