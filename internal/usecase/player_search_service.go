package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/player-scout/internal/domain/player"
	"github.com/riskibarqy/player-scout/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

// SearchCriteria narrows the roster. Nil or blank fields do not filter.
type SearchCriteria struct {
	Name     string
	Position string
	Serie    string
	Club     string
	AgeMin   *int
	AgeMax   *int
}

// ListQuery is everything the listing page can ask for.
type ListQuery struct {
	Criteria       SearchCriteria
	ContractMonths *int
	SortBy         string
	Descending     bool
	Page           int
}

type PlayerListing struct {
	Page    GroupedPage
	Series  []SeriesInfo
	Clubs   []ClubInfo
	Matched int
}

// SearchObserver receives the number of players matched per listing.
type SearchObserver interface {
	ObserveSearch(matched int)
}

type PlayerSearchOption func(*PlayerSearchService)

func WithClock(now func() time.Time) PlayerSearchOption {
	return func(s *PlayerSearchService) {
		if now != nil {
			s.now = now
		}
	}
}

func WithSearchObserver(observer SearchObserver) PlayerSearchOption {
	return func(s *PlayerSearchService) {
		s.observer = observer
	}
}

type PlayerSearchService struct {
	source   player.Source
	logger   *logging.Logger
	now      func() time.Time
	observer SearchObserver
}

func NewPlayerSearchService(source player.Source, logger *logging.Logger, opts ...PlayerSearchOption) *PlayerSearchService {
	if logger == nil {
		logger = logging.Default()
	}
	s := &PlayerSearchService{
		source: source,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Search returns the snapshot players matching every criterion, in snapshot
// order.
func (s *PlayerSearchService) Search(ctx context.Context, criteria SearchCriteria) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerSearchService.Search")
	defer span.End()

	players, err := s.loadAll(ctx)
	if err != nil {
		return nil, err
	}
	return FilterPlayers(players, criteria), nil
}

// ListPlayers runs the full listing pipeline: filter, contract window, rank,
// cap per tier and paginate. The summaries feeding the page filters are
// computed from the same snapshot.
func (s *PlayerSearchService) ListPlayers(ctx context.Context, query ListQuery) (PlayerListing, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerSearchService.ListPlayers")
	defer span.End()

	all, err := s.loadAll(ctx)
	if err != nil {
		return PlayerListing{}, err
	}

	now := s.now()
	matched := FilterPlayers(all, query.Criteria)
	if query.ContractMonths != nil {
		before := len(matched)
		matched = FilterByContractWindow(matched, *query.ContractMonths, now)
		s.logger.DebugContext(ctx, "contract window applied",
			"months", *query.ContractMonths,
			"cutoff", contractCutoff(now, *query.ContractMonths).Format("02/01/2006"),
			"before", before,
			"after", len(matched),
		)
	}

	ranked := Rank(matched, query.SortBy, query.Descending, now)
	page := GroupAndPaginate(ranked, query.Page)

	span.SetAttributes(
		attribute.Int("players.snapshot", len(all)),
		attribute.Int("players.matched", len(matched)),
		attribute.Int("page", query.Page),
	)
	if s.observer != nil {
		s.observer.ObserveSearch(len(matched))
	}

	return PlayerListing{
		Page:    page,
		Series:  summarizeSeries(all),
		Clubs:   summarizeClubs(all, ""),
		Matched: len(matched),
	}, nil
}

func (s *PlayerSearchService) loadAll(ctx context.Context) ([]player.Player, error) {
	players, err := s.source.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: load players: %v", ErrDependencyUnavailable, err)
	}
	return players, nil
}

// FilterPlayers applies name, position, serie, club, minimum age and maximum
// age in that order. Age bounds read the raw age attribute only.
func FilterPlayers(players []player.Player, criteria SearchCriteria) []player.Player {
	name := strings.ToLower(strings.TrimSpace(criteria.Name))
	position := strings.TrimSpace(criteria.Position)
	serie := strings.TrimSpace(criteria.Serie)
	club := strings.TrimSpace(criteria.Club)

	out := make([]player.Player, 0, len(players))
	for _, p := range players {
		if name != "" && !strings.Contains(strings.ToLower(p.Name), name) {
			continue
		}
		if position != "" && !equalsOptional(p.Position, position) {
			continue
		}
		if serie != "" && !equalsOptional(p.Serie, serie) {
			continue
		}
		if club != "" && !equalsOptional(p.ClubName, club) {
			continue
		}
		if criteria.AgeMin != nil && (p.Age == nil || *p.Age < *criteria.AgeMin) {
			continue
		}
		if criteria.AgeMax != nil && (p.Age == nil || *p.Age > *criteria.AgeMax) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// FilterByContractWindow keeps players whose contract ends no later than
// months*30 days from now. Players without a resolvable end date are dropped.
func FilterByContractWindow(players []player.Player, months int, now time.Time) []player.Player {
	cutoff := contractCutoff(now, months)
	out := make([]player.Player, 0, len(players))
	for _, p := range players {
		end, ok := p.ContractEnd()
		if !ok || end.After(cutoff) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// contractCutoff compares in wall-clock terms because upstream dates carry no
// zone and parse as UTC midnight.
func contractCutoff(now time.Time, months int) time.Time {
	wall := time.Date(now.Year(), now.Month(), now.Day(), now.Hour(), now.Minute(), now.Second(), now.Nanosecond(), time.UTC)
	return wall.Add(time.Duration(months) * 30 * 24 * time.Hour)
}

func equalsOptional(v *string, want string) bool {
	return v != nil && *v == want
}
