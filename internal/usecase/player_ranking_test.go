package usecase

import (
	"testing"

	"github.com/riskibarqy/player-scout/internal/domain/player"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRank_NameAscendingAndDescendingAreReversed(t *testing.T) {
	t.Parallel()

	roster := []player.Player{
		newPlayer(map[string]any{"id": "1", "name": "pedro"}),
		newPlayer(map[string]any{"id": "2", "name": "Arrascaeta"}),
		newPlayer(map[string]any{"id": "3", "name": "Hulk"}),
		newPlayer(map[string]any{"id": "4", "name": "Everton"}),
	}

	asc := ids(Rank(roster, SortByName, false, referenceNow))
	desc := ids(Rank(roster, SortByName, true, referenceNow))
	assert.Equal(t, []string{"2", "4", "3", "1"}, asc)

	reversed := make([]string, len(asc))
	for i := range asc {
		reversed[len(asc)-1-i] = asc[i]
	}
	assert.Equal(t, reversed, desc)
	assert.Equal(t, []string{"1", "2", "3", "4"}, ids(roster), "input must not be reordered")
}

func TestRank_DescendingKeepsTiesInInputOrder(t *testing.T) {
	t.Parallel()

	roster := []player.Player{
		newPlayer(map[string]any{"id": "1", "name": "x", "serie": "Série B"}),
		newPlayer(map[string]any{"id": "2", "name": "y", "serie": "Série A"}),
		newPlayer(map[string]any{"id": "3", "name": "z", "serie": "Série B"}),
	}
	assert.Equal(t, []string{"1", "3", "2"}, ids(Rank(roster, SortBySerie, true, referenceNow)))
	assert.Equal(t, []string{"2", "1", "3"}, ids(Rank(roster, SortBySerie, false, referenceNow)))
}

func TestRank_Age(t *testing.T) {
	t.Parallel()

	roster := []player.Player{
		newPlayer(map[string]any{"id": "unknown", "name": "a"}),
		newPlayer(map[string]any{"id": "raw", "name": "b", "age": float64(30), "dateOfBirth": "2004-01-01"}),
		newPlayer(map[string]any{"id": "birth", "name": "c", "dateOfBirth": "2004-01-01"}),
		newPlayer(map[string]any{"id": "zero", "name": "d", "age": float64(0), "dateOfBirth": "1990-01-01"}),
	}
	// birth=21, raw=30, zero falls through to 35, unknown ranks as 999.
	assert.Equal(t, []string{"birth", "raw", "zero", "unknown"}, ids(Rank(roster, SortByAge, false, referenceNow)))
}

func TestRank_MarketValue(t *testing.T) {
	t.Parallel()

	roster := []player.Player{
		newPlayer(map[string]any{"id": "text", "name": "a", "marketValue": "€ 7,5 M"}),
		newPlayer(map[string]any{"id": "number", "name": "b", "marketValue": float64(1500000)}),
		newPlayer(map[string]any{"id": "garbage", "name": "c", "marketValue": "1.500.000"}),
		newPlayer(map[string]any{"id": "absent", "name": "d"}),
		newPlayer(map[string]any{"id": "small", "name": "e", "marketValue": float64(20)}),
	}
	assert.Equal(t, []string{"number", "small", "text", "garbage", "absent"}, ids(Rank(roster, "marketValue", true, referenceNow)))
}

func TestRank_ContractEndUsesFlatStringOnly(t *testing.T) {
	t.Parallel()

	roster := []player.Player{
		newPlayer(map[string]any{"id": "nested", "name": "a", "contract": map[string]any{"until": "2025-01-01"}}),
		newPlayer(map[string]any{"id": "late", "name": "b", "contract": "2027-12-31"}),
		newPlayer(map[string]any{"id": "early", "name": "c", "contract": "2025-06-30"}),
		newPlayer(map[string]any{"id": "br", "name": "d", "contract": "30/06/2025"}),
	}
	assert.Equal(t, []string{"early", "late", "nested", "br"}, ids(Rank(roster, "contract", false, referenceNow)))
}

func TestRank_TextKeysAndFallback(t *testing.T) {
	t.Parallel()

	roster := []player.Player{
		newPlayer(map[string]any{"id": "1", "name": "B", "club_name": "vasco"}),
		newPlayer(map[string]any{"id": "2", "name": "a", "club_name": "Bahia"}),
		newPlayer(map[string]any{"id": "3", "name": "c"}),
	}
	assert.Equal(t, []string{"3", "2", "1"}, ids(Rank(roster, "club_name", false, referenceNow)))
	assert.Equal(t, []string{"2", "1", "3"}, ids(Rank(roster, "shoe_size", false, referenceNow)))
	assert.Equal(t, SortByName, NormalizeSortKey(""))
}

func TestGroupAndPaginate_CapsEachTier(t *testing.T) {
	t.Parallel()

	roster := rosterOf(map[string]int{player.TierSerieA: 30, player.TierSerieB: 5}, []string{player.TierSerieA, player.TierSerieB})
	ranked := Rank(roster, SortByName, false, referenceNow)

	page := GroupAndPaginate(ranked, 1)
	require.Len(t, page.Groups, 4)
	assert.Equal(t, player.TierSerieA, page.Groups[0].Label)
	assert.Len(t, page.Groups[0].Players, 25)
	assert.Equal(t, player.TierSerieB, page.Groups[1].Label)
	assert.Len(t, page.Groups[1].Players, 5)
	assert.Empty(t, page.Groups[2].Players)
	assert.Empty(t, page.Groups[3].Players)
	assert.Equal(t, Pagination{Page: 1, TotalPages: 1, TotalPlayers: 30, PerPage: 100}, page.Pagination)

	assert.True(t, GroupAndPaginate(ranked, 2).IsEmpty())
}

func TestGroupAndPaginate_CapsByRawLabelBeforeMergingVariants(t *testing.T) {
	t.Parallel()

	roster := rosterOf(map[string]int{player.TierSerieA: 30, "a": 30}, []string{player.TierSerieA, "a"})
	ranked := Rank(roster, SortByName, false, referenceNow)

	capped := CapTiers(ranked)
	assert.Len(t, capped, 50)

	page := GroupAndPaginate(ranked, 1)
	assert.Equal(t, player.TierSerieA, page.Groups[0].Label)
	assert.Len(t, page.Groups[0].Players, 50)
	assert.Equal(t, 50, page.Pagination.TotalPlayers)
}

func TestGroupAndPaginate_CanonicalTiersFirstThenEncounterOrder(t *testing.T) {
	t.Parallel()

	roster := []player.Player{
		newPlayer(map[string]any{"id": "nordeste", "name": "a", "serie": "Copa do Nordeste"}),
		newPlayer(map[string]any{"id": "d", "name": "b", "serie": player.TierSerieD}),
		newPlayer(map[string]any{"id": "none", "name": "c"}),
		newPlayer(map[string]any{"id": "a", "name": "d", "serie": player.TierSerieA}),
		newPlayer(map[string]any{"id": "lower-b", "name": "e", "serie": "b"}),
	}

	assert.Equal(t, []string{"a", "d", "nordeste", "none", "lower-b"}, ids(CapTiers(roster)))

	page := GroupAndPaginate(roster, 1)
	labels := make([]string, 0, len(page.Groups))
	for _, group := range page.Groups {
		labels = append(labels, group.Label)
	}
	assert.Equal(t, []string{player.TierSerieA, player.TierSerieB, player.TierSerieC, player.TierSerieD, "Copa do Nordeste", player.TierOther}, labels)
	assert.Equal(t, []string{"lower-b"}, ids(page.Groups[1].Players))
	assert.Equal(t, []string{"none"}, ids(page.Groups[5].Players))
}

func TestGroupAndPaginate_PagesConcatenateToCappedSequence(t *testing.T) {
	t.Parallel()

	tiers := []string{player.TierSerieA, player.TierSerieB, player.TierSerieC, player.TierSerieD, "Copa Verde", "Estadual", ""}
	counts := map[string]int{
		player.TierSerieA: 40,
		player.TierSerieB: 25,
		player.TierSerieC: 12,
		player.TierSerieD: 30,
		"Copa Verde":      26,
		"Estadual":        3,
		"":                28,
	}
	ranked := Rank(rosterOf(counts, tiers), SortByName, false, referenceNow)
	capped := CapTiers(ranked)
	require.Len(t, capped, 25+25+12+25+25+3+25)

	first := GroupAndPaginate(ranked, 1)
	require.Equal(t, 2, first.Pagination.TotalPages)

	var flattened []string
	for page := 1; page <= first.Pagination.TotalPages; page++ {
		grouped := GroupAndPaginate(ranked, page)
		for _, group := range grouped.Groups {
			assert.LessOrEqual(t, len(group.Players), MaxPlayersPerTier, "tier %s", group.Label)
			flattened = append(flattened, ids(group.Players)...)
		}
	}
	assert.Equal(t, ids(capped), flattened)

	assert.True(t, GroupAndPaginate(ranked, 3).IsEmpty())
	assert.True(t, GroupAndPaginate(ranked, 0).IsEmpty())
}

func TestPagination_Navigation(t *testing.T) {
	t.Parallel()

	p := Pagination{Page: 2, TotalPages: 3}
	assert.True(t, p.HasPrev())
	assert.True(t, p.HasNext())
	assert.Equal(t, 1, p.Prev())
	assert.Equal(t, 3, p.Next())
	assert.False(t, Pagination{Page: 1, TotalPages: 1}.HasNext())
}
