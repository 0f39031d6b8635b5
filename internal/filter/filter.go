// Package filter derives the visible subset of countries from the two live
// inputs: a search term and a region. Nothing is cached between calls.
package filter

import (
	"strings"

	"github.com/Makepad-fr/atlas/internal/countries"
	"github.com/Makepad-fr/atlas/internal/model"
)

// Query is the pair of user inputs.
type Query struct {
	Term   string
	Region string
}

// Outcome says which affordance a view should render.
type Outcome int

const (
	Loading Outcome = iota
	Results
	NoResults
)

func (o Outcome) String() string {
	switch o {
	case Loading:
		return "loading"
	case Results:
		return "results"
	case NoResults:
		return "no-results"
	}
	return "unknown"
}

// View is what a renderer needs. Failure is set when the load failed; the
// outcome is still NoResults.
type View struct {
	Outcome   Outcome
	Countries []model.Country
	Total     int
	Failure   error
}

// Filter returns the records whose name contains term case-insensitively and
// whose region equals region, unless region is model.RegionAll. Order is kept.
func Filter(records []model.Country, term, region string) []model.Country {
	needle := strings.ToLower(term)
	out := make([]model.Country, 0, len(records))
	for _, c := range records {
		if !strings.Contains(strings.ToLower(c.Name), needle) {
			continue
		}
		if region != model.RegionAll && region != c.Region {
			continue
		}
		out = append(out, c)
	}
	return out
}

// Evaluate maps a load result and a query to a View.
func Evaluate(res countries.Result, q Query) View {
	if res.State == countries.StateLoading {
		return View{Outcome: Loading, Countries: []model.Country{}}
	}
	records := res.Records()
	v := View{
		Countries: Filter(records, q.Term, q.Region),
		Total:     len(records),
		Failure:   res.Err,
	}
	if len(v.Countries) == 0 {
		v.Outcome = NoResults
	} else {
		v.Outcome = Results
	}
	return v
}
