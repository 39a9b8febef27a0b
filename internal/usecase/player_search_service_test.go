package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/riskibarqy/player-scout/internal/domain/player"
	playermock "github.com/riskibarqy/player-scout/internal/mocks/domain/player"
	"github.com/riskibarqy/player-scout/internal/platform/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var referenceNow = time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)

func newPlayer(attrs map[string]any) player.Player {
	return player.FromMap(attrs)
}

func intPtr(v int) *int { return &v }

func sampleRoster() []player.Player {
	return []player.Player{
		newPlayer(map[string]any{"id": "1", "name": "Gabriel Barbosa", "position": "Centre-Forward", "serie": "Série A", "club_name": "Flamengo", "age": float64(28)}),
		newPlayer(map[string]any{"id": "2", "name": "Pedro", "position": "Centre-Forward", "serie": "Série A", "club_name": "Flamengo", "age": float64(27)}),
		newPlayer(map[string]any{"id": "3", "name": "Raphael Veiga", "position": "Attacking Midfield", "serie": "Série A", "club_name": "Palmeiras", "age": float64(29)}),
		newPlayer(map[string]any{"id": "4", "name": "Gabriel Menino", "position": "Central Midfield", "serie": "Série A", "club_name": "Atlético Mineiro"}),
		newPlayer(map[string]any{"id": "5", "name": "Rafael Elias", "position": "Centre-Forward", "serie": "Série B", "club_name": "Goiás", "age": float64(25)}),
		newPlayer(map[string]any{"id": "6", "name": "Kesley", "position": "Left-Back", "club_name": "Maringá", "age": float64(25)}),
		newPlayer(map[string]any{"id": "7", "name": "Edu", "position": "Centre-Forward", "serie": "Série B", "age": float64(31)}),
	}
}

func ids(players []player.Player) []string {
	out := make([]string, 0, len(players))
	for _, p := range players {
		out = append(out, p.ID)
	}
	return out
}

func TestFilterPlayers_AppliesEveryCriterion(t *testing.T) {
	t.Parallel()

	roster := sampleRoster()
	cases := []struct {
		name     string
		criteria SearchCriteria
		want     []string
	}{
		{name: "no filters", criteria: SearchCriteria{}, want: []string{"1", "2", "3", "4", "5", "6", "7"}},
		{name: "name substring is case-insensitive and trimmed", criteria: SearchCriteria{Name: "  gabriel "}, want: []string{"1", "4"}},
		{name: "position exact", criteria: SearchCriteria{Position: "Centre-Forward"}, want: []string{"1", "2", "5", "7"}},
		{name: "position is case-sensitive", criteria: SearchCriteria{Position: "centre-forward"}, want: []string{}},
		{name: "serie excludes missing tier", criteria: SearchCriteria{Serie: "Série B"}, want: []string{"5", "7"}},
		{name: "club excludes missing club", criteria: SearchCriteria{Club: "Flamengo"}, want: []string{"1", "2"}},
		{name: "age bounds are inclusive", criteria: SearchCriteria{AgeMin: intPtr(27), AgeMax: intPtr(28)}, want: []string{"1", "2"}},
		{name: "age bound drops players without raw age", criteria: SearchCriteria{AgeMax: intPtr(99)}, want: []string{"1", "2", "3", "5", "6", "7"}},
		{name: "criteria combine with and", criteria: SearchCriteria{Position: "Centre-Forward", Serie: "Série B", AgeMin: intPtr(30)}, want: []string{"7"}},
		{name: "blank criteria are ignored", criteria: SearchCriteria{Name: "   ", Club: " "}, want: []string{"1", "2", "3", "4", "5", "6", "7"}},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, ids(FilterPlayers(roster, tc.criteria)))
		})
	}
}

func TestFilterPlayers_AgeUsesRawAgeNotBirthDate(t *testing.T) {
	t.Parallel()

	// Raw age and birth date disagree; the filter trusts the raw value.
	p := newPlayer(map[string]any{"id": "1", "name": "Veteran", "age": float64(40), "dateOfBirth": "2000-01-01"})
	got := FilterPlayers([]player.Player{p}, SearchCriteria{AgeMax: intPtr(30)})
	assert.Empty(t, got)
}

func TestFilterPlayers_SubsetAndIdempotent(t *testing.T) {
	t.Parallel()

	roster := sampleRoster()
	names := []string{"", "a", "gabriel", "zzz"}
	series := []string{"", "Série A", "Série B", "Série Z"}
	ages := []*int{nil, intPtr(25), intPtr(29)}

	for _, name := range names {
		for _, serie := range series {
			for _, age := range ages {
				criteria := SearchCriteria{Name: name, Serie: serie, AgeMin: age}
				first := FilterPlayers(roster, criteria)
				second := FilterPlayers(roster, criteria)
				require.Equal(t, ids(first), ids(second), "criteria %+v", criteria)

				pos := 0
				for _, p := range first {
					for pos < len(roster) && roster[pos].ID != p.ID {
						pos++
					}
					require.Less(t, pos, len(roster), "criteria %+v produced a player outside the roster order", criteria)
					pos++
				}
			}
		}
	}
}

func TestFilterByContractWindow(t *testing.T) {
	t.Parallel()

	roster := []player.Player{
		newPlayer(map[string]any{"id": "nested", "contract": map[string]any{"until": "2025-03-01"}}),
		newPlayer(map[string]any{"id": "flat-br", "contract": "15/02/2025"}),
		newPlayer(map[string]any{"id": "camel", "contractUntil": "2025-04-10"}),
		newPlayer(map[string]any{"id": "snake", "contract_until": "2025-04-09"}),
		newPlayer(map[string]any{"id": "late", "contract": "2026-06-30"}),
		newPlayer(map[string]any{"id": "unknown", "contract": "soon"}),
		newPlayer(map[string]any{"id": "none"}),
	}

	// 3 months is 90 days: 2025-04-10 12:00.
	got := FilterByContractWindow(roster, 3, referenceNow)
	assert.Equal(t, []string{"nested", "flat-br", "camel", "snake"}, ids(got))

	assert.Empty(t, FilterByContractWindow(roster, 0, referenceNow))
}

func TestPlayerSearchService_ListPlayers(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	source := playermock.NewSource(t)
	source.
		On("LoadAll", mock.MatchedBy(func(v context.Context) bool { return v == ctx })).
		Return(sampleRoster(), nil).
		Once()

	service := NewPlayerSearchService(source, logging.NewNop(), WithClock(func() time.Time { return referenceNow }))
	listing, err := service.ListPlayers(ctx, ListQuery{
		Criteria: SearchCriteria{Position: "Centre-Forward"},
		SortBy:   "name",
		Page:     1,
	})
	require.NoError(t, err)

	assert.Equal(t, 4, listing.Matched)
	require.Len(t, listing.Page.Groups, 4)
	assert.Equal(t, []string{"1", "2"}, ids(listing.Page.Groups[0].Players))
	assert.Equal(t, []string{"7", "5"}, ids(listing.Page.Groups[1].Players))
	assert.Equal(t, Pagination{Page: 1, TotalPages: 1, TotalPlayers: 4, PerPage: PlayersPerPage}, listing.Page.Pagination)

	assert.Equal(t, []SeriesInfo{
		{Name: "Sem Série", PlayersCount: 1},
		{Name: "Série A", PlayersCount: 4},
		{Name: "Série B", PlayersCount: 2},
	}, listing.Series)
	require.NotEmpty(t, listing.Clubs)
	assert.Equal(t, "Atlético Mineiro", listing.Clubs[0].Name)
}

func TestPlayerSearchService_ListPlayersWithContractWindow(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	source := playermock.NewSource(t)
	source.On("LoadAll", mock.Anything).Return([]player.Player{
		newPlayer(map[string]any{"id": "a", "name": "A", "serie": "Série A", "contract": "2025-02-01"}),
		newPlayer(map[string]any{"id": "b", "name": "B", "serie": "Série A", "contract": "2027-02-01"}),
	}, nil).Once()

	service := NewPlayerSearchService(source, logging.NewNop(), WithClock(func() time.Time { return referenceNow }))
	listing, err := service.ListPlayers(ctx, ListQuery{ContractMonths: intPtr(6), Page: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, ids(listing.Page.Groups[0].Players))
}

func TestPlayerSearchService_ListPlayersSourceFailure(t *testing.T) {
	t.Parallel()

	source := playermock.NewSource(t)
	source.On("LoadAll", mock.Anything).Return(nil, errors.New("boom")).Once()

	service := NewPlayerSearchService(source, logging.NewNop())
	_, err := service.ListPlayers(context.Background(), ListQuery{Page: 1})
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}

type searchCounter struct{ matched []int }

func (c *searchCounter) ObserveSearch(matched int) { c.matched = append(c.matched, matched) }

func TestPlayerSearchService_SearchAndObserver(t *testing.T) {
	t.Parallel()

	source := playermock.NewSource(t)
	source.On("LoadAll", mock.Anything).Return(sampleRoster(), nil).Twice()

	counter := &searchCounter{}
	service := NewPlayerSearchService(source, logging.NewNop(), WithSearchObserver(counter))

	got, err := service.Search(context.Background(), SearchCriteria{Club: "Flamengo"})
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, ids(got))

	_, err = service.ListPlayers(context.Background(), ListQuery{Criteria: SearchCriteria{Serie: "Série B"}, Page: 1})
	require.NoError(t, err)
	assert.Equal(t, []int{2}, counter.matched)
}

func TestPlayerSearchService_Summaries(t *testing.T) {
	t.Parallel()

	source := playermock.NewSource(t)
	source.On("LoadAll", mock.Anything).Return(sampleRoster(), nil).Times(3)
	service := NewPlayerSearchService(source, logging.NewNop())

	series, err := service.SeriesSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Sem Série", series[0].Name)

	clubs, err := service.ClubSummary(context.Background(), "Série B")
	require.NoError(t, err)
	assert.Equal(t, []ClubInfo{
		{Name: "Goiás", Serie: "Série B", PlayersCount: 1},
		{Name: "Sem Clube", Serie: "Série B", PlayersCount: 1},
	}, clubs)

	names, err := service.ClubNames(context.Background(), "Série A")
	require.NoError(t, err)
	assert.Equal(t, []string{"Atlético Mineiro", "Flamengo", "Palmeiras"}, names)
}

func TestSummarizeClubs_TierFromFirstPlayerSeen(t *testing.T) {
	t.Parallel()

	roster := []player.Player{
		newPlayer(map[string]any{"id": "1", "club_name": "Sport Recife"}),
		newPlayer(map[string]any{"id": "2", "club_name": "Sport Recife", "serie": "Série B"}),
	}
	clubs := summarizeClubs(roster, "")
	require.Len(t, clubs, 1)
	assert.Equal(t, ClubInfo{Name: "Sport Recife", Serie: "", PlayersCount: 2}, clubs[0])
}

func TestPlayerSearchService_GetProfile(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	source := playermock.NewSource(t)
	source.On("GetProfile", mock.Anything, "42").
		Return(newPlayer(map[string]any{"id": "42", "name": "Hulk", "dateOfBirth": "1986-07-25"}), true, nil).
		Once()
	source.On("GetStats", mock.Anything, "42").
		Return(player.Stats{"goals": float64(19)}, true, nil).
		Once()

	service := NewPlayerSearchService(source, logging.NewNop(), WithClock(func() time.Time { return referenceNow }))
	profile, err := service.GetProfile(ctx, " 42 ")
	require.NoError(t, err)
	assert.Equal(t, "Hulk", profile.Player.Name)
	require.NotNil(t, profile.CalculatedAge)
	assert.Equal(t, 38, *profile.CalculatedAge)
	assert.True(t, profile.HasStats())
}

func TestPlayerSearchService_GetProfileMissingStats(t *testing.T) {
	t.Parallel()

	source := playermock.NewSource(t)
	source.On("GetProfile", mock.Anything, "9").Return(newPlayer(map[string]any{"id": "9", "name": "Edu"}), true, nil).Once()
	source.On("GetStats", mock.Anything, "9").Return(nil, false, errors.New("timeout")).Once()

	service := NewPlayerSearchService(source, logging.NewNop())
	profile, err := service.GetProfile(context.Background(), "9")
	require.NoError(t, err)
	assert.False(t, profile.HasStats())
	assert.Nil(t, profile.CalculatedAge)
}

func TestPlayerSearchService_GetProfileNotFound(t *testing.T) {
	t.Parallel()

	source := playermock.NewSource(t)
	source.On("GetProfile", mock.Anything, "404").Return(player.Player{}, false, nil).Once()
	source.On("GetStats", mock.Anything, "404").Return(nil, false, nil).Once()

	service := NewPlayerSearchService(source, logging.NewNop())
	_, err := service.GetProfile(context.Background(), "404")
	if !IsNotFound(err) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPlayerSearchService_GetProfileRequiresID(t *testing.T) {
	t.Parallel()

	service := NewPlayerSearchService(playermock.NewSource(t), logging.NewNop())
	_, err := service.GetProfile(context.Background(), "  ")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func rosterOf(counts map[string]int, order []string) []player.Player {
	out := make([]player.Player, 0, 64)
	for _, tier := range order {
		for i := 0; i < counts[tier]; i++ {
			attrs := map[string]any{
				"id":   fmt.Sprintf("%s-%02d", tier, i),
				"name": fmt.Sprintf("%s player %02d", tier, i),
			}
			if tier != "" {
				attrs["serie"] = tier
			}
			out = append(out, newPlayer(attrs))
		}
	}
	return out
}
