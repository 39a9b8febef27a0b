package web

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/player-scout/internal/usecase"
)

type listingQueryForm struct {
	SearchName string `validate:"max=100"`
	Serie      string `validate:"max=64"`
	Club       string `validate:"max=128"`
	Position   string `validate:"max=64"`
	AgeMin     *int   `validate:"omitempty,min=0,max=150"`
	AgeMax     *int   `validate:"omitempty,min=0,max=150"`
}

type loginForm struct {
	Username string `validate:"required,max=64"`
	Password string `validate:"required,max=256"`
}

// parseListingQuery is lenient like the page always was: unparseable numbers
// are ignored, unknown sort keys fall back to name and a bad page means 1.
// Only oversized text and out-of-range ages are rejected.
func parseListingQuery(values url.Values, validate *validator.Validate) (usecase.ListQuery, listingParams, []string, error) {
	params := listingParams{
		SearchName:  values.Get("search_name"),
		Serie:       values.Get("serie"),
		Club:        values.Get("club"),
		Position:    values.Get("position"),
		AgeMin:      strings.TrimSpace(values.Get("age_min")),
		AgeMax:      strings.TrimSpace(values.Get("age_max")),
		SortBy:      strings.TrimSpace(values.Get("sort_by")),
		Order:       strings.TrimSpace(values.Get("order")),
		ContractEnd: strings.TrimSpace(values.Get("contract_end")),
	}

	form := listingQueryForm{
		SearchName: params.SearchName,
		Serie:      params.Serie,
		Club:       params.Club,
		Position:   params.Position,
		AgeMin:     optionalInt(params.AgeMin),
		AgeMax:     optionalInt(params.AgeMax),
	}
	if err := validate.Struct(form); err != nil {
		return usecase.ListQuery{}, params, nil, fmt.Errorf("%w: %s", usecase.ErrInvalidInput, err.Error())
	}

	var ignored []string
	if params.AgeMin != "" && form.AgeMin == nil {
		ignored = append(ignored, "age_min")
	}
	if params.AgeMax != "" && form.AgeMax == nil {
		ignored = append(ignored, "age_max")
	}
	contractMonths := optionalInt(params.ContractEnd)
	if params.ContractEnd != "" && contractMonths == nil {
		ignored = append(ignored, "contract_end")
	}

	page := 1
	if raw := strings.TrimSpace(values.Get("page")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			page = parsed
		} else {
			ignored = append(ignored, "page")
		}
	}

	if params.SortBy == "" {
		params.SortBy = usecase.SortByName
	}

	return usecase.ListQuery{
		Criteria: usecase.SearchCriteria{
			Name:     params.SearchName,
			Position: params.Position,
			Serie:    params.Serie,
			Club:     params.Club,
			AgeMin:   form.AgeMin,
			AgeMax:   form.AgeMax,
		},
		ContractMonths: contractMonths,
		SortBy:         params.SortBy,
		Descending:     params.Order == "desc",
		Page:           page,
	}, params, ignored, nil
}

func optionalInt(raw string) *int {
	if raw == "" {
		return nil
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &parsed
}
