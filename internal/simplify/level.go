package simplify

import (
	"errors"
	"fmt"
	"strings"
)

// Level selects how aggressively text is simplified. Levels are ordered:
// Basic < Intermediate < Advanced.
type Level int

const (
	Basic Level = iota + 1
	Intermediate
	Advanced
)

// ErrUnknownLevel is returned by ParseLevel for unrecognized names.
var ErrUnknownLevel = errors.New("unknown simplification level")

func (l Level) String() string {
	switch l {
	case Basic:
		return "Basic"
	case Intermediate:
		return "Intermediate"
	case Advanced:
		return "Advanced"
	default:
		return fmt.Sprintf("Level(%d)", int(l))
	}
}

// Valid reports whether l is one of the defined levels.
func (l Level) Valid() bool { return l >= Basic && l <= Advanced }

// Levels returns all levels in increasing order.
func Levels() []Level { return []Level{Basic, Intermediate, Advanced} }

// ParseLevel maps a level name to its Level, ignoring case and surrounding
// whitespace.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "basic", "beginner":
		return Basic, nil
	case "intermediate":
		return Intermediate, nil
	case "advanced":
		return Advanced, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownLevel, s)
}

func (l Level) MarshalText() ([]byte, error) {
	if !l.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownLevel, int(l))
	}
	return []byte(l.String()), nil
}

func (l *Level) UnmarshalText(b []byte) error {
	v, err := ParseLevel(string(b))
	if err != nil {
		return err
	}
	*l = v
	return nil
}
