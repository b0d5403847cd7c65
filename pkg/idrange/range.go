package idrange

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidRange is returned for ranges whose lower bound is above their
// upper bound.
var ErrInvalidRange = errors.New("invalid range")

// Range is an inclusive range of IDs [From, To].
type Range struct {
	From int64
	To   int64
}

func New(from, to int64) Range {
	return Range{From: from, To: to}
}

// Parse parses a range of the form "<from>-<to>". A leading minus sign on
// from is allowed.
func Parse(s string) (Range, error) {
	var r Range
	s = strings.TrimSpace(s)
	if s == "" {
		return r, fmt.Errorf("empty range")
	}
	h := strings.IndexByte(s[1:], '-')
	if h == -1 {
		return r, fmt.Errorf("no hyphen in range %q", s)
	}
	h++
	from, to := s[:h], s[h+1:]
	fromID, err := strconv.ParseInt(strings.TrimSpace(from), 10, 64)
	if err != nil {
		return r, fmt.Errorf("invalid from id %q in range %q: %w", from, s, err)
	}
	toID, err := strconv.ParseInt(strings.TrimSpace(to), 10, 64)
	if err != nil {
		return r, fmt.Errorf("invalid to id %q in range %q: %w", to, s, err)
	}
	r = New(fromID, toID)
	if !r.IsValid() {
		return Range{}, fmt.Errorf("%w %q: from %d is bigger then to %d", ErrInvalidRange, s, fromID, toID)
	}
	return r, nil
}

func (r Range) String() string {
	return fmt.Sprintf("%d-%d", r.From, r.To)
}

func (r Range) IsValid() bool {
	return r.From <= r.To
}

// Size returns the number of IDs in r, capped at math.MaxInt64.
func (r Range) Size() int64 {
	if r.From <= 0 && r.To >= math.MaxInt64+r.From {
		return math.MaxInt64
	}
	return r.To - r.From + 1
}

func (r Range) Contains(id int64) bool {
	return r.From <= id && id <= r.To
}

// Less orders ranges by From, then by To.
func (r Range) Less(other Range) bool {
	if r.From != other.From {
		return r.From < other.From
	}
	return r.To < other.To
}

// Touches returns whether other starts inside r or right after it, assuming
// r.From <= other.From.
func (r Range) Touches(other Range) bool {
	return r.To == math.MaxInt64 || other.From <= r.To+1
}

// CoveredBy returns whether r is entirely contained within other.
func (r Range) CoveredBy(other Range) bool {
	return other.From <= r.From && r.To <= other.To
}
