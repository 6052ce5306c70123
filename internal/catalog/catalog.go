// Package catalog is the read-only fixture provider.  The booking core only
// consumes it through the Catalog interface.
package catalog

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/iliyamo/fixture-tickets/internal/model"
)

var ErrFixtureNotFound = errors.New("fixture not found")

// Catalog lists and resolves fixtures.
type Catalog interface {
	List(ctx context.Context) ([]model.Fixture, error)
	Get(ctx context.Context, id string) (model.Fixture, error)
	Search(ctx context.Context, q Query) ([]model.Fixture, error)
}

// Query filters fixtures.  Team matches either side case-insensitively by
// substring; Venue must match exactly (case-insensitive).  Empty fields
// do not filter.
type Query struct {
	Team  string
	Venue string
}

// Static serves a fixed fixture list kept in schedule order.
type Static struct {
	fixtures []model.Fixture
	byID     map[string]int
}

// NewStatic copies fixtures into a catalog ordered by date and time.
func NewStatic(fixtures []model.Fixture) *Static {
	fs := append([]model.Fixture(nil), fixtures...)
	sort.SliceStable(fs, func(i, j int) bool {
		if fs[i].Date != fs[j].Date {
			return fs[i].Date < fs[j].Date
		}
		return fs[i].Time < fs[j].Time
	})
	idx := make(map[string]int, len(fs))
	for i, f := range fs {
		idx[f.ID] = i
	}
	return &Static{fixtures: fs, byID: idx}
}

func (s *Static) List(ctx context.Context) ([]model.Fixture, error) {
	return append([]model.Fixture(nil), s.fixtures...), nil
}

func (s *Static) Get(ctx context.Context, id string) (model.Fixture, error) {
	i, ok := s.byID[strings.TrimSpace(id)]
	if !ok {
		return model.Fixture{}, ErrFixtureNotFound
	}
	return s.fixtures[i], nil
}

func (s *Static) Search(ctx context.Context, q Query) ([]model.Fixture, error) {
	team := strings.ToLower(strings.TrimSpace(q.Team))
	venue := strings.ToLower(strings.TrimSpace(q.Venue))

	out := make([]model.Fixture, 0, len(s.fixtures))
	for _, f := range s.fixtures {
		if team != "" &&
			!strings.Contains(strings.ToLower(f.HomeTeam), team) &&
			!strings.Contains(strings.ToLower(f.AwayTeam), team) {
			continue
		}
		if venue != "" && strings.ToLower(f.Venue) != venue {
			continue
		}
		out = append(out, f)
	}
	return out, nil
}

// Teams returns the known team names containing prefix (case-insensitive
// substring), used for search suggestions.
func Teams(prefix string) []string {
	p := strings.ToLower(strings.TrimSpace(prefix))
	out := make([]string, 0, len(teams))
	for _, t := range teams {
		if p == "" || strings.Contains(strings.ToLower(t), p) {
			out = append(out, t)
		}
	}
	return out
}

// Venues returns all known venue names.
func Venues() []string {
	return append([]string(nil), venues...)
}
