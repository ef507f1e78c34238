package mess

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidVote is returned when a vote classification cannot be parsed.
var ErrInvalidVote = errors.New("mess: invalid vote")

// Vote is a meal rating submitted by a student.
type Vote int

const (
	// Good is counted in slot 0.
	Good Vote = iota
	// Average is counted in slot 1.
	Average
	// Poor is counted in slot 2.
	Poor
)

// Votes lists every vote in slot order.
var Votes = []Vote{Good, Average, Poor}

// Index returns the counter slot for the vote.
func (v Vote) Index() int {
	return int(v)
}

// Valid reports whether v is one of Good, Average or Poor.
func (v Vote) Valid() bool {
	return v >= Good && v <= Poor
}

func (v Vote) String() string {
	switch v {
	case Good:
		return "good"
	case Average:
		return "average"
	case Poor:
		return "poor"
	default:
		return fmt.Sprintf("Vote(%d)", int(v))
	}
}

// ParseVote parses a vote from its slot number ("0", "1", "2") or its name
// ("good", "average", "avg", "poor"), ignoring case and surrounding space.
func ParseVote(s string) (Vote, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "0", "good":
		return Good, nil
	case "1", "average", "avg":
		return Average, nil
	case "2", "poor":
		return Poor, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidVote, s)
}
