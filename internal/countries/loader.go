package countries

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Makepad-fr/atlas/internal/model"
)

// State tags a load Result.
type State int

const (
	StateLoading State = iota
	StateLoaded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateFailed:
		return "failed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// ErrUnavailable is wrapped by every failed load.
var ErrUnavailable = errors.New("data unavailable")

// Result is the outcome of one load. Loaded results may hold zero countries;
// that is distinct from StateFailed.
type Result struct {
	State     State
	Countries []model.Country
	Err       error
}

// Loading is the result before the fetch resolves.
func Loading() Result { return Result{State: StateLoading} }

// Records returns the loaded countries, or an empty slice otherwise.
func (r Result) Records() []model.Country {
	if r.State != StateLoaded || r.Countries == nil {
		return []model.Country{}
	}
	return r.Countries
}

// Loader runs the single startup fetch.
type Loader struct {
	source Source
	log    *zap.Logger
}

// NewLoader returns a loader reading from src. A nil logger is replaced by a no-op one.
func NewLoader(src Source, log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{source: src, log: log}
}

// Load fetches and normalizes. It never returns an error or panics; every
// failure becomes a StateFailed result wrapping ErrUnavailable.
func (l *Loader) Load(ctx context.Context) (res Result) {
	defer func() {
		if p := recover(); p != nil {
			l.log.Error("country load panicked", zap.Any("panic", p))
			res = Result{State: StateFailed, Err: fmt.Errorf("%w: %v", ErrUnavailable, p)}
		}
	}()

	raw, err := l.source.Fetch(ctx)
	if err != nil {
		l.log.Warn("fetching countries failed", zap.Error(err))
		return Result{State: StateFailed, Err: fmt.Errorf("%w: %w", ErrUnavailable, err)}
	}

	list := dedupe(Normalize(raw), l.log)
	l.log.Debug("countries loaded",
		zap.Int("raw", len(raw)),
		zap.Int("records", len(list)),
	)
	return Result{State: StateLoaded, Countries: list}
}

// dedupe keeps the first record for each non-empty code.
func dedupe(in []model.Country, log *zap.Logger) []model.Country {
	seen := make(map[string]bool, len(in))
	out := in[:0]
	for _, c := range in {
		if c.Code != "" {
			if seen[c.Code] {
				log.Warn("dropping duplicate country code",
					zap.String("code", c.Code),
					zap.String("name", c.Name),
				)
				continue
			}
			seen[c.Code] = true
		}
		out = append(out, c)
	}
	return out
}
