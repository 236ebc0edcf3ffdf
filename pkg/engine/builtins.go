package engine

import (
	"fmt"
	"math"
	"strings"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/reactor/pkg/command"
	"github.com/chazu/reactor/pkg/region"
)

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpSpan wraps a region.Span returned by (span a b).
type sexpSpan struct {
	span region.Span
}

func (s *sexpSpan) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(span %d %d)", s.span.Lo, s.span.Hi)
}
func (s *sexpSpan) Type() *zygo.RegisteredType { return nil }

// sexpCuboid wraps a region.Cuboid so it can flow from (cuboid ...) into
// (on ...) and (off ...), or be bound with def and reused.
type sexpCuboid struct {
	cuboid region.Cuboid
}

func (c *sexpCuboid) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(cuboid %q)", c.cuboid.String())
}
func (c *sexpCuboid) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	for i := 0; i < len(args); i++ {
		name, ok := isKW(args[i])
		if !ok {
			result.positional = append(result.positional, args[i])
			continue
		}
		if i+1 < len(args) {
			result.kw[name] = args[i+1]
			i++
		} else {
			result.kw[name] = zygo.SexpNull
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toInt64 extracts an integer coordinate. Floats are accepted only when
// they hold a whole number, so (/ 10 2) style arithmetic still works.
func toInt64(s zygo.Sexp) (int64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return v.Val, nil
	case *zygo.SexpFloat:
		if v.Val == math.Trunc(v.Val) && v.Val >= math.MinInt64 && v.Val < math.MaxInt64 {
			return int64(v.Val), nil
		}
		return 0, fmt.Errorf("expected integer, got %v", v.Val)
	}
	return 0, fmt.Errorf("expected integer, got %T (%s)", s, s.SexpString(nil))
}

// toSpan accepts a (span a b) value.
func toSpan(s zygo.Sexp) (region.Span, error) {
	if v, ok := s.(*sexpSpan); ok {
		return v.span, nil
	}
	return region.Span{}, fmt.Errorf("expected span, got %T (%s)", s, s.SexpString(nil))
}

// toCuboid accepts a (cuboid ...) value or a string in command syntax,
// "x=a..b,y=c..d,z=e..f".
func toCuboid(s zygo.Sexp) (region.Cuboid, error) {
	switch v := s.(type) {
	case *sexpCuboid:
		return v.cuboid, nil
	case *zygo.SexpStr:
		c, err := command.ParseLine("on " + v.S)
		if err != nil {
			return region.Cuboid{}, err
		}
		return c.Cuboid, nil
	}
	return region.Cuboid{}, fmt.Errorf("expected cuboid, got %T (%s)", s, s.SexpString(nil))
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the reactor builtins into a zygomys environment.
// (on ...) and (off ...) append to seq in evaluation order.
//
// Source code must be preprocessed with preprocessSource() before evaluation so
// that :keyword tokens are converted to recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, seq *command.Sequence) {

	// (span 10 12)
	env.AddFunction("span", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("span requires exactly 2 arguments, got %d", len(args))
		}
		a, err := toInt64(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("span: %w", err)
		}
		b, err := toInt64(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("span: %w", err)
		}
		return &sexpSpan{span: region.NewSpan(a, b)}, nil
	})

	// (cuboid :x (span 10 12) :y (span 10 12) :z (span 10 12))
	// (cuboid 10 12 10 12 10 12)
	env.AddFunction("cuboid", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)

		if len(pa.positional) > 0 {
			if len(pa.kw) > 0 || len(pa.positional) != 6 {
				return zygo.SexpNull, fmt.Errorf("cuboid takes :x :y :z spans or 6 coordinates")
			}
			var coords [6]int64
			for i, arg := range pa.positional {
				v, err := toInt64(arg)
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("cuboid: coordinate %d: %w", i+1, err)
				}
				coords[i] = v
			}
			c := region.New(coords[0], coords[1], coords[2], coords[3], coords[4], coords[5])
			return &sexpCuboid{cuboid: c}, nil
		}

		var c region.Cuboid
		for _, a := range region.Axes {
			v, ok := pa.kw[a.String()]
			if !ok {
				return zygo.SexpNull, fmt.Errorf("cuboid: missing :%s", a)
			}
			s, err := toSpan(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("cuboid: %s: %w", a, err)
			}
			c[a] = s
		}
		return &sexpCuboid{cuboid: c}, nil
	})

	// (on (cuboid ...)) / (off "x=9..11,y=9..11,z=9..11")
	toggle := func(on bool) func(*zygo.Zlisp, string, []zygo.Sexp) (zygo.Sexp, error) {
		return func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			if len(args) != 1 {
				return zygo.SexpNull, fmt.Errorf("%s requires exactly 1 cuboid, got %d arguments", name, len(args))
			}
			c, err := toCuboid(args[0])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %w", name, err)
			}
			seq.Add(command.Command{On: on, Cuboid: c})
			return &sexpCuboid{cuboid: c}, nil
		}
	}
	env.AddFunction("on", toggle(true))
	env.AddFunction("off", toggle(false))

	// (volume (cuboid ...))
	env.AddFunction("volume", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("volume requires exactly 1 cuboid, got %d arguments", len(args))
		}
		c, err := toCuboid(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("volume: %w", err)
		}
		v := c.Volume()
		if v > math.MaxInt64 {
			return zygo.SexpNull, fmt.Errorf("volume: %d does not fit a script integer", v)
		}
		return &zygo.SexpInt{Val: int64(v)}, nil
	})
}
