package idset

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/henderiw/freshness/pkg/idrange"
)

// Build returns the canonical IDSet covering every ID in rr. It fails if any
// range in rr is invalid. rr is not modified.
func Build(rr []idrange.Range) (*IDSet, error) {
	var b Builder
	for _, r := range rr {
		b.AddRange(r)
	}
	return b.IDSet()
}

// Builder accumulates ranges. The zero value is ready to use.
type Builder struct {
	in   []idrange.Range
	errs error
}

func (s *Builder) Add(id int64) {
	s.AddRange(idrange.New(id, id))
}

func (s *Builder) AddRange(r idrange.Range) {
	if !r.IsValid() {
		s.errs = errors.Join(s.errs, fmt.Errorf("addRange(%s): %w", r, idrange.ErrInvalidRange))
		return
	}
	s.in = append(s.in, r)
}

// AddSet adds all IDs in b to s.
func (s *Builder) AddSet(b *IDSet) {
	if b == nil {
		return
	}
	s.in = append(s.in, b.rr...)
}

// IDSet returns the canonical set built so far. If any invalid range was
// added, no set is returned and the error holds every offending range.
func (s *Builder) IDSet() (*IDSet, error) {
	if s.errs != nil {
		errs := s.errs
		s.errs = nil
		return nil, errs
	}
	s.in = mergeRanges(s.in)
	return &IDSet{
		rr: append([]idrange.Range{}, s.in...),
	}, nil
}

// mergeRanges returns the minimum and sorted set of ranges that
// cover rr. Touching ranges are merged.
func mergeRanges(rr []idrange.Range) []idrange.Range {
	switch len(rr) {
	case 0:
		return nil
	case 1:
		return []idrange.Range{rr[0]}
	}

	sort.Slice(rr, func(i, j int) bool { return rr[i].Less(rr[j]) })
	out := make([]idrange.Range, 1, len(rr))
	out[0] = rr[0]
	for _, r := range rr[1:] {
		prev := &out[len(out)-1]
		switch {
		case !prev.Touches(r):
			// No overlap and not adjacent, no merging possible.
			//
			//   prev       r
			// f------t  f-----t
			out = append(out, r)
		case prev.To < r.To:
			// Partial overlap or adjacent, extend prev.
			//
			//   prev
			// f------t
			//     f-----t
			//        r
			prev.To = r.To
		default:
			// r entirely contained in prev, nothing to do.
		}
	}
	return out
}

// IDSet is an immutable set of IDs.
type IDSet struct {
	// rr is the set of IDs that belong to this IDSet. The ranges are
	// normalized by mergeRanges, meaning they are a sorted, minimal
	// representation (no overlapping ranges, no contiguous ranges).
	// The implementation of various methods rely on this property.
	rr []idrange.Range
}

// Ranges returns the minimum and sorted set of ranges that covers s.
func (s *IDSet) Ranges() []idrange.Range {
	return append([]idrange.Range{}, s.rr...)
}

// Len returns the number of disjoint ranges in s.
func (s *IDSet) Len() int {
	return len(s.rr)
}

// Contains reports whether id is in s.
func (s *IDSet) Contains(id int64) bool {
	i := sort.Search(len(s.rr), func(i int) bool { return s.rr[i].To >= id })
	return i < len(s.rr) && s.rr[i].From <= id
}

// ContainsRange reports whether every ID in r is in s.
func (s *IDSet) ContainsRange(r idrange.Range) bool {
	if !r.IsValid() {
		return false
	}
	i := sort.Search(len(s.rr), func(i int) bool { return s.rr[i].To >= r.From })
	return i < len(s.rr) && r.CoveredBy(s.rr[i])
}

// TotalCovered returns the number of IDs in s. Counts that do not fit in an
// int64 are reported as math.MaxInt64.
func (s *IDSet) TotalCovered() int64 {
	var total int64
	for _, r := range s.rr {
		size := r.Size()
		if total > math.MaxInt64-size {
			return math.MaxInt64
		}
		total += size
	}
	return total
}

func (s *IDSet) Equal(other *IDSet) bool {
	if len(s.rr) != len(other.rr) {
		return false
	}
	for i := range s.rr {
		if s.rr[i] != other.rr[i] {
			return false
		}
	}
	return true
}

func (s *IDSet) String() string {
	parts := make([]string, 0, len(s.rr))
	for _, r := range s.rr {
		parts = append(parts, r.String())
	}
	return strings.Join(parts, ",")
}
