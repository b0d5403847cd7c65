package freshness

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/henderiw/freshness/pkg/idrange"
	"github.com/henderiw/freshness/pkg/idset"
	"github.com/henderiw/freshness/pkg/inventory"
	"github.com/rs/zerolog"
	"k8s.io/apimachinery/pkg/labels"
)

const (
	LabelStatus = "status"

	StatusFresh   = "fresh"
	StatusSpoiled = "spoiled"
)

// Ingredient is an available ingredient ID. Count is the number of times the
// ID was listed.
type Ingredient struct {
	ID     int64
	Count  int
	Labels labels.Set
}

func (r Ingredient) IsFresh() bool {
	return r.Labels[LabelStatus] == StatusFresh
}

func (r Ingredient) String() string {
	status := StatusSpoiled
	if r.IsFresh() {
		status = StatusFresh
	}
	return fmt.Sprintf("Ingredient ID %d is %s", r.ID, status)
}

type Option func(*Database)

func WithLogger(l zerolog.Logger) Option {
	return func(r *Database) {
		r.log = l
	}
}

// Database holds the fresh ID ranges and the available ingredients.
type Database struct {
	log       zerolog.Logger
	fresh     *idset.IDSet
	available inventory.Table[Ingredient]
}

func New(ranges []idrange.Range, ids []int64, opts ...Option) (*Database, error) {
	r := &Database{
		log: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}

	fresh, err := idset.Build(ranges)
	if err != nil {
		return nil, fmt.Errorf("cannot build fresh ranges: %w", err)
	}
	r.fresh = fresh
	r.log.Debug().
		Int("ranges", len(ranges)).
		Int("merged", fresh.Len()).
		Str("fresh", fresh.String()).
		Msg("fresh ranges merged")

	r.available = inventory.NewTable[Ingredient]()
	for _, id := range ids {
		r.available.Upsert(id, r.classify(id))
	}
	r.log.Debug().
		Int("ids", len(ids)).
		Int("unique", r.available.Count()).
		Msg("available ingredients loaded")
	return r, nil
}

func (r *Database) classify(id int64) inventory.UpsertFn[Ingredient] {
	return func(d Ingredient, exists bool) Ingredient {
		if exists {
			d.Count++
			return d
		}
		status := StatusSpoiled
		if r.fresh.Contains(id) {
			status = StatusFresh
		}
		return Ingredient{
			ID:     id,
			Count:  1,
			Labels: labels.Set{LabelStatus: status},
		}
	}
}

// Parse reads a database: one "<from>-<to>" range per line, a blank line,
// then one ingredient ID per line.
func Parse(rd io.Reader, opts ...Option) (*Database, error) {
	var (
		ranges        []idrange.Range
		ids           []int64
		parsingRanges = true
		lineNr        int
	)

	scanner := bufio.NewScanner(rd)
	for scanner.Scan() {
		lineNr++
		line := strings.TrimSpace(scanner.Text())

		if line == "" {
			// the first blank line after a range separates ranges from ids
			if len(ranges) > 0 {
				parsingRanges = false
			}
			continue
		}

		if parsingRanges {
			rng, err := idrange.Parse(line)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNr, err)
			}
			ranges = append(ranges, rng)
			continue
		}
		id, err := strconv.ParseInt(line, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid ingredient id %q: %w", lineNr, line, err)
		}
		ids = append(ids, id)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read database: %w", err)
	}
	return New(ranges, ids, opts...)
}

func (r *Database) IsFresh(id int64) bool {
	return r.fresh.Contains(id)
}

// CountFresh returns how many listed ingredient IDs are fresh, counting
// repeated IDs each time they are listed.
func (r *Database) CountFresh() int {
	count := 0
	iter := r.available.Iterate()
	for iter.Next() {
		if iter.Value().IsFresh() {
			count += iter.Value().Count
		}
	}
	return count
}

// TotalFresh returns how many distinct IDs the fresh ranges cover, capped at
// math.MaxInt64.
func (r *Database) TotalFresh() int64 {
	return r.fresh.TotalCovered()
}

func (r *Database) FreshRanges() []idrange.Range {
	return r.fresh.Ranges()
}

// Ingredients returns the available ingredients in ascending ID order.
func (r *Database) Ingredients() []Ingredient {
	ingredients := make([]Ingredient, 0, r.available.Count())
	iter := r.available.Iterate()
	for iter.Next() {
		ingredients = append(ingredients, iter.Value())
	}
	return ingredients
}

func (r *Database) GetByLabel(selector labels.Selector) []Ingredient {
	var ingredients []Ingredient

	iter := r.available.Iterate()
	for iter.Next() {
		if selector.Matches(iter.Value().Labels) {
			ingredients = append(ingredients, iter.Value())
		}
	}
	return ingredients
}
