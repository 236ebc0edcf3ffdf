// Package command holds the on/off command streams fed to a region.Set:
// parsing them from text, validating them, and replaying them in order.
package command

import (
	"github.com/samber/lo"

	"github.com/chazu/reactor/pkg/region"
)

// DefaultInitLimit bounds the initialization region [-50,50] on every axis.
const DefaultInitLimit = 50

// Command switches every point of a cuboid on or off.
type Command struct {
	On     bool          `json:"on"`
	Cuboid region.Cuboid `json:"cuboid"`
	Line   int           `json:"line,omitempty"` // source line, 0 if unknown
}

// State returns "on" or "off".
func (c Command) State() string {
	if c.On {
		return "on"
	}
	return "off"
}

// String formats the command in the text input syntax.
func (c Command) String() string {
	return c.State() + " " + c.Cuboid.String()
}

// Within reports whether every coordinate of the command's cuboid lies in
// [-limit, limit]. A negative limit describes no region and holds nothing.
func (c Command) Within(limit int64) bool {
	if limit < 0 {
		return false
	}
	for _, a := range region.Axes {
		s := c.Cuboid[a]
		if s.Lo < -limit || s.Hi > limit {
			return false
		}
	}
	return true
}

// Sequence is an ordered list of commands. Order is significant.
type Sequence struct {
	Commands []Command `json:"commands"`
}

// NewSequence returns an empty sequence.
func NewSequence() *Sequence {
	return &Sequence{}
}

// Add appends a command.
func (s *Sequence) Add(c Command) {
	s.Commands = append(s.Commands, c)
}

// Len returns the number of commands.
func (s *Sequence) Len() int {
	return len(s.Commands)
}

// Within returns a new sequence holding only the commands whose cuboids lie
// entirely inside [-limit, limit] on every axis, in their original order.
func (s *Sequence) Within(limit int64) *Sequence {
	return &Sequence{Commands: lo.Filter(s.Commands, func(c Command, _ int) bool {
		return c.Within(limit)
	})}
}

// Bounds returns the smallest cuboid enclosing every command's cuboid, on
// or off. It returns false for an empty sequence.
func (s *Sequence) Bounds() (region.Cuboid, bool) {
	if len(s.Commands) == 0 {
		return region.Cuboid{}, false
	}
	return lo.Reduce(s.Commands[1:], func(b region.Cuboid, c Command, _ int) region.Cuboid {
		return b.Hull(c.Cuboid)
	}, s.Commands[0].Cuboid), true
}

// Replay applies every command to set in order.
func (s *Sequence) Replay(set *region.Set) {
	for _, c := range s.Commands {
		set.Apply(c.On, c.Cuboid)
	}
}

// Run replays the sequence into a fresh set and returns it.
func (s *Sequence) Run() *region.Set {
	set := region.NewSet()
	s.Replay(set)
	return set
}
