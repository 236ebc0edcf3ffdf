package command

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/chazu/reactor/pkg/region"
)

// ErrMalformed is wrapped by every error reporting unparseable input.
var ErrMalformed = errors.New("malformed command")

// ParseError locates a malformed command in its input.
type ParseError struct {
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v: %q", e.Line, e.Err, e.Text)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// commandPattern matches "on x=-20..26,y=-36..17,z=-47..7".
var commandPattern = regexp.MustCompile(
	`^(on|off)\s+x=(-?\d+)\.\.(-?\d+),\s*y=(-?\d+)\.\.(-?\d+),\s*z=(-?\d+)\.\.(-?\d+)$`)

// ParseLine parses one command. Range endpoints may come in either order.
func ParseLine(line string) (Command, error) {
	m := commandPattern.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return Command{}, fmt.Errorf("%w: expected \"on|off x=a..b,y=c..d,z=e..f\"", ErrMalformed)
	}

	var coords [6]int64
	for i := range coords {
		v, err := strconv.ParseInt(m[i+2], 10, 64)
		if err != nil {
			return Command{}, fmt.Errorf("%w: coordinate %q: %v", ErrMalformed, m[i+2], err)
		}
		coords[i] = v
	}

	return Command{
		On:     m[1] == "on",
		Cuboid: region.New(coords[0], coords[1], coords[2], coords[3], coords[4], coords[5]),
	}, nil
}

// Parse reads one command per line. Blank lines and lines starting with #
// are skipped. The first malformed line stops parsing with a *ParseError.
func Parse(r io.Reader) (*Sequence, error) {
	seq := NewSequence()
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		c, err := ParseLine(text)
		if err != nil {
			return nil, &ParseError{Line: lineNo, Text: text, Err: err}
		}
		c.Line = lineNo
		seq.Add(c)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading commands: %w", err)
	}
	return seq, nil
}

// ParseString is Parse over a string.
func ParseString(s string) (*Sequence, error) {
	return Parse(strings.NewReader(s))
}
