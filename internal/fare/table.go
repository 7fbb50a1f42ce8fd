package fare

import (
	"fmt"
	"sort"

	"github.com/nitesh-shaw-098/m-indicator-app/internal/models"
)

type zonePair struct {
	lo, hi int
}

func pairOf(a, b int) zonePair {
	if a > b {
		a, b = b, a
	}
	return zonePair{lo: a, hi: b}
}

// Table is the zone fare chart. Fares are symmetric in the zone pair.
type Table struct {
	fares map[zonePair]models.FareRule
}

func NewTable(rules []models.FareRule) *Table {
	t := &Table{fares: make(map[zonePair]models.FareRule, len(rules))}
	for _, r := range rules {
		t.fares[pairOf(r.FromZone, r.ToZone)] = r
	}
	return t
}

// CalculateFare returns the fare in INR between two zones. A zone pair
// missing from the chart costs 0.
func (t *Table) CalculateFare(fromZone, toZone int, class models.TicketClass) (int, error) {
	if !class.Valid() {
		return 0, fmt.Errorf("%w: %q", models.ErrInvalidTicketClass, class)
	}
	rule, ok := t.fares[pairOf(fromZone, toZone)]
	if !ok {
		return 0, nil
	}
	if class == models.ClassFirst {
		return rule.First, nil
	}
	return rule.Second, nil
}

// Rules returns the chart rows ordered by zone pair
func (t *Table) Rules() []models.FareRule {
	pairs := make([]zonePair, 0, len(t.fares))
	for p := range t.fares {
		pairs = append(pairs, p)
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].lo != pairs[j].lo {
			return pairs[i].lo < pairs[j].lo
		}
		return pairs[i].hi < pairs[j].hi
	})

	out := make([]models.FareRule, 0, len(pairs))
	for _, p := range pairs {
		r := t.fares[p]
		r.FromZone, r.ToZone = p.lo, p.hi
		out = append(out, r)
	}
	return out
}
