package usecase

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/player-scout/internal/domain/player"
)

const (
	MaxPlayersPerTier = 25
	PlayersPerPage    = 100

	SortByName        = "name"
	SortByAge         = "age"
	SortByMarketValue = "market_value"
	SortByContractEnd = "contract_end"
	SortByPosition    = "position"
	SortByClub        = "club"
	SortBySerie       = "serie"

	unknownAgeRank = 999
)

var nonNumericRegex = regexp.MustCompile(`[^\d.,]`)

// maxRankDate sorts after every parseable contract date.
var maxRankDate = time.Date(9999, 12, 31, 23, 59, 59, 999999999, time.UTC)

type TierGroup struct {
	Label   string
	Players []player.Player
}

type Pagination struct {
	Page         int
	TotalPages   int
	TotalPlayers int
	PerPage      int
}

func (p Pagination) HasPrev() bool { return p.Page > 1 }
func (p Pagination) HasNext() bool { return p.Page < p.TotalPages }
func (p Pagination) Prev() int     { return p.Page - 1 }
func (p Pagination) Next() int     { return p.Page + 1 }

type GroupedPage struct {
	Groups     []TierGroup
	Pagination Pagination
}

// IsEmpty reports whether no group on the page holds a player.
func (g GroupedPage) IsEmpty() bool {
	for _, group := range g.Groups {
		if len(group.Players) > 0 {
			return false
		}
	}
	return true
}

type rankKind int

const (
	rankText rankKind = iota
	rankNumber
	rankDate
)

type rankKey struct {
	text   string
	number float64
	date   time.Time
}

type rankedPlayer struct {
	player player.Player
	key    rankKey
}

// NormalizeSortKey maps accepted aliases onto the canonical sort keys.
// Unknown keys fall back to name.
func NormalizeSortKey(sortBy string) string {
	switch strings.TrimSpace(sortBy) {
	case SortByAge:
		return SortByAge
	case SortByMarketValue, "marketValue":
		return SortByMarketValue
	case SortByContractEnd, "contract":
		return SortByContractEnd
	case SortByPosition:
		return SortByPosition
	case SortByClub, "club_name":
		return SortByClub
	case SortBySerie:
		return SortBySerie
	default:
		return SortByName
	}
}

// Rank returns a stably sorted copy of players. Descending inverts the
// comparison, so players with equal keys keep their input order either way.
func Rank(players []player.Player, sortBy string, descending bool, now time.Time) []player.Player {
	sortBy = NormalizeSortKey(sortBy)
	kind := kindOf(sortBy)

	items := make([]rankedPlayer, 0, len(players))
	for _, p := range players {
		items = append(items, rankedPlayer{player: p, key: keyOf(p, sortBy, now)})
	}

	sort.SliceStable(items, func(i, j int) bool {
		if descending {
			return lessKey(kind, items[j].key, items[i].key)
		}
		return lessKey(kind, items[i].key, items[j].key)
	})

	out := make([]player.Player, 0, len(items))
	for _, item := range items {
		out = append(out, item.player)
	}
	return out
}

func kindOf(sortBy string) rankKind {
	switch sortBy {
	case SortByAge, SortByMarketValue:
		return rankNumber
	case SortByContractEnd:
		return rankDate
	default:
		return rankText
	}
}

func lessKey(kind rankKind, a, b rankKey) bool {
	switch kind {
	case rankNumber:
		return a.number < b.number
	case rankDate:
		return a.date.Before(b.date)
	default:
		return a.text < b.text
	}
}

func keyOf(p player.Player, sortBy string, now time.Time) rankKey {
	switch sortBy {
	case SortByAge:
		return rankKey{number: float64(ageRank(p, now))}
	case SortByMarketValue:
		return rankKey{number: marketValueRank(p.MarketValue)}
	case SortByContractEnd:
		if end, ok := p.FlatContractDate(); ok {
			return rankKey{date: end}
		}
		return rankKey{date: maxRankDate}
	case SortByPosition:
		return rankKey{text: strings.ToLower(p.PositionOrEmpty())}
	case SortByClub:
		return rankKey{text: strings.ToLower(p.ClubOrEmpty())}
	case SortBySerie:
		return rankKey{text: strings.ToLower(p.SerieOrEmpty())}
	default:
		return rankKey{text: strings.ToLower(p.Name)}
	}
}

// ageRank prefers the raw age, then the birth-date age. Zero counts as absent.
func ageRank(p player.Player, now time.Time) int {
	if p.Age != nil && *p.Age != 0 {
		return *p.Age
	}
	if age, ok := p.CalculatedAge(now); ok && age != 0 {
		return age
	}
	return unknownAgeRank
}

func marketValueRank(v player.MarketValue) float64 {
	switch {
	case v.Number != nil:
		if math.IsNaN(*v.Number) {
			return 0
		}
		return *v.Number
	case v.Text != nil:
		text := strings.ReplaceAll(*v.Text, ",", ".")
		text = nonNumericRegex.ReplaceAllString(text, "")
		parsed, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return 0
		}
		return parsed
	default:
		return 0
	}
}

// GroupAndPaginate caps every tier at MaxPlayersPerTier, lays the capped tiers
// out with the four national divisions first, slices one page of
// PlayersPerPage and regroups that page by normalized tier label.
func GroupAndPaginate(ranked []player.Player, page int) GroupedPage {
	limited := CapTiers(ranked)

	total := len(limited)
	pagination := Pagination{
		Page:         page,
		TotalPages:   (total + PlayersPerPage - 1) / PlayersPerPage,
		TotalPlayers: total,
		PerPage:      PlayersPerPage,
	}

	var pagePlayers []player.Player
	if page >= 1 {
		start := (page - 1) * PlayersPerPage
		if start < total {
			end := start + PlayersPerPage
			if end > total {
				end = total
			}
			pagePlayers = limited[start:end]
		}
	}

	return GroupedPage{
		Groups:     regroupPage(pagePlayers),
		Pagination: pagination,
	}
}

// CapTiers keeps at most MaxPlayersPerTier players of every raw tier label,
// national divisions first and other labels in order of first appearance.
func CapTiers(ranked []player.Player) []player.Player {
	order := make([]string, 0, 8)
	byTier := make(map[string][]player.Player, 8)
	for _, p := range ranked {
		label := player.TierUngrouped
		if p.Serie != nil {
			label = *p.Serie
		}
		if _, seen := byTier[label]; !seen {
			order = append(order, label)
		}
		byTier[label] = append(byTier[label], p)
	}

	limited := make([]player.Player, 0, len(ranked))
	for _, tier := range player.CanonicalTiers {
		limited = append(limited, capTier(byTier[tier])...)
	}
	for _, label := range order {
		if player.IsCanonicalTier(label) {
			continue
		}
		limited = append(limited, capTier(byTier[label])...)
	}
	return limited
}

func capTier(players []player.Player) []player.Player {
	if len(players) > MaxPlayersPerTier {
		return players[:MaxPlayersPerTier]
	}
	return players
}

func regroupPage(players []player.Player) []TierGroup {
	groups := make([]TierGroup, 0, len(player.CanonicalTiers)+2)
	index := make(map[string]int, len(player.CanonicalTiers)+2)
	for _, tier := range player.CanonicalTiers {
		index[tier] = len(groups)
		groups = append(groups, TierGroup{Label: tier, Players: []player.Player{}})
	}

	for _, p := range players {
		label := player.TierOther
		if p.Serie != nil {
			label = player.NormalizeTier(*p.Serie)
		}
		pos, ok := index[label]
		if !ok {
			pos = len(groups)
			index[label] = pos
			groups = append(groups, TierGroup{Label: label})
		}
		groups[pos].Players = append(groups[pos].Players, p)
	}
	return groups
}
