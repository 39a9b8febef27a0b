package web

import (
	"net/url"
	"strconv"

	"github.com/riskibarqy/player-scout/internal/domain/player"
	"github.com/riskibarqy/player-scout/internal/usecase"
)

type pageMeta struct {
	Title    string
	Username string
	Flash    *flashMessage
}

type loginView struct {
	pageMeta
	FormUsername string
	Error        string
}

type listingView struct {
	pageMeta
	Params     listingParams
	Groups     []usecase.TierGroup
	Pagination usecase.Pagination
	Series     []usecase.SeriesInfo
	Clubs      []usecase.ClubInfo
	Matched    int
	Empty      bool
	SortKeys   []sortOption
}

type sortOption struct {
	Value string
	Label string
}

var sortOptions = []sortOption{
	{Value: usecase.SortByName, Label: "Nome"},
	{Value: usecase.SortByAge, Label: "Idade"},
	{Value: usecase.SortByMarketValue, Label: "Valor de mercado"},
	{Value: usecase.SortByContractEnd, Label: "Fim do contrato"},
	{Value: usecase.SortByPosition, Label: "Posição"},
	{Value: usecase.SortByClub, Label: "Clube"},
	{Value: usecase.SortBySerie, Label: "Série"},
}

// PageURL keeps every active filter while switching pages.
func (v listingView) PageURL(page int) string {
	values := v.Params.values()
	values.Set("page", strconv.Itoa(page))
	return "/?" + values.Encode()
}

type profileView struct {
	pageMeta
	Player        player.Player
	CalculatedAge *int
	Stats         player.Stats
	HasStats      bool
}

type errorView struct {
	pageMeta
	Status  int
	Message string
}

// listingParams echoes the raw query back into the search form.
type listingParams struct {
	SearchName  string
	Serie       string
	Club        string
	Position    string
	AgeMin      string
	AgeMax      string
	SortBy      string
	Order       string
	ContractEnd string
}

func (p listingParams) values() url.Values {
	values := url.Values{}
	set := func(key, value string) {
		if value != "" {
			values.Set(key, value)
		}
	}
	set("search_name", p.SearchName)
	set("serie", p.Serie)
	set("club", p.Club)
	set("position", p.Position)
	set("age_min", p.AgeMin)
	set("age_max", p.AgeMax)
	set("sort_by", p.SortBy)
	set("order", p.Order)
	set("contract_end", p.ContractEnd)
	return values
}
