package onboard

import (
	"fmt"
	"sort"
	"strings"

	"github.com/glorpus-work/kiara-onboarding/pkg/errors"
)

// Registry holds the registered strategies. It is populated once at process
// start and read-only afterwards, so lookups are safe for concurrent use.
type Registry struct {
	strategies map[string]Strategy
	order      []string // registration order, used for deterministic scans
}

// NewRegistry builds a registry from the given strategies. Identifiers must
// be unique.
func NewRegistry(strategies ...Strategy) (*Registry, error) {
	r := &Registry{strategies: make(map[string]Strategy, len(strategies))}
	for _, s := range strategies {
		id := s.ID()
		if _, exists := r.strategies[id]; exists {
			return nil, fmt.Errorf("duplicate strategy identifier %q", id)
		}
		r.strategies[id] = s
		r.order = append(r.order, id)
	}
	return r, nil
}

// DefaultRegistry builds the standard registry: local file, URL and Zenodo.
func DefaultRegistry(deps Dependencies) (*Registry, error) {
	return NewRegistry(
		NewLocalFileStrategy(),
		NewHTTPStrategy(deps.Downloader, deps.Archive, deps.ScratchRoot),
		NewZenodoStrategy(deps.Records, deps.Downloader, deps.Archive, deps.ScratchRoot),
	)
}

// Get looks up a strategy by its full identifier.
func (r *Registry) Get(id string) (Strategy, bool) {
	s, ok := r.strategies[id]
	return s, ok
}

// IDs returns the sorted identifiers of all registered strategies.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.strategies))
	for id := range r.strategies {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// CanonicalID expands a bare strategy suffix (e.g. "url") to its full
// identifier; full identifiers pass through unchanged.
func CanonicalID(name string) string {
	if strings.HasPrefix(name, IDPrefix) {
		return name
	}
	return IDPrefix + name
}

// Select resolves a source URI to a strategy. With an explicit strategy name
// the registry looks it up and re-validates the accept predicate, so an
// explicit choice can never process a URI the strategy considers invalid.
// Without one, all strategies are scanned and exactly one acceptance is
// required: zero matches and ties both fail.
func (r *Registry) Select(uri, explicit string, bundle bool) (Strategy, error) {
	accepts := func(s Strategy) (bool, string) {
		if bundle {
			return s.AcceptsBundleURI(uri)
		}
		return s.AcceptsURI(uri)
	}

	if explicit != "" {
		id := CanonicalID(explicit)
		s, ok := r.strategies[id]
		if !ok {
			return nil, errors.Wrapf(errors.ErrUnknownStrategy,
				"%q (known strategies: %s)", id, strings.Join(r.IDs(), ", "))
		}
		if ok, reason := accepts(s); !ok {
			return nil, errors.Wrapf(errors.ErrStrategyRejected,
				"can't onboard from %q using %q: %s", uri, id, reason)
		}
		return s, nil
	}

	var matches []Strategy
	for _, id := range r.order {
		if ok, _ := accepts(r.strategies[id]); ok {
			matches = append(matches, r.strategies[id])
		}
	}

	switch len(matches) {
	case 0:
		return nil, errors.Wrapf(errors.ErrNoStrategyFound, "can't onboard from %q", uri)
	case 1:
		return matches[0], nil
	default:
		ids := make([]string, len(matches))
		for i, s := range matches {
			ids[i] = s.ID()
		}
		return nil, errors.Wrapf(errors.ErrAmbiguousSource,
			"can't onboard from %q: %s all accept this source, specify the onboard type", uri, strings.Join(ids, ", "))
	}
}
