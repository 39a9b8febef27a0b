package player

import (
	"math"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
)

// Player is one roster entry as served by the upstream data API. Apart from
// Name, every attribute may be absent or malformed upstream, so optional
// fields are pointers and callers branch on presence.
type Player struct {
	ID                 string
	Name               string
	Position           *string
	Serie              *string
	ClubName           *string
	DateOfBirth        *string
	Age                *int
	MarketValue        MarketValue
	Contract           Contract
	ContractUntil      *string
	ContractUntilSnake *string

	// Extra keeps every upstream attribute, including the ones mapped above.
	Extra map[string]any
}

// MarketValue is either a number or free text such as "€ 1,5 M".
type MarketValue struct {
	Number *float64
	Text   *string
}

func (v MarketValue) IsZero() bool {
	return v.Number == nil && v.Text == nil
}

// Display renders the raw value for the currency formatter. A zero number
// renders empty, like a missing value.
func (v MarketValue) Display() string {
	switch {
	case v.Number != nil && *v.Number == 0:
		return ""
	case v.Number != nil:
		return strconv.FormatFloat(*v.Number, 'f', -1, 64)
	case v.Text != nil:
		return *v.Text
	default:
		return ""
	}
}

// Contract is either a nested {"until": "..."} object or a flat date string.
type Contract struct {
	Until  *string
	Flat   *string
	Nested bool
}

func (p *Player) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := sonic.Unmarshal(data, &raw); err != nil {
		return err
	}
	*p = FromMap(raw)
	return nil
}

// FromMap maps a loosely typed upstream object onto a Player.
func FromMap(raw map[string]any) Player {
	p := Player{
		ID:                 idString(raw["id"]),
		Name:               stringValue(raw["name"]),
		Position:           optionalString(raw["position"]),
		Serie:              optionalString(raw["serie"]),
		ClubName:           optionalString(raw["club_name"]),
		DateOfBirth:        optionalString(raw["dateOfBirth"]),
		Age:                optionalInt(raw["age"]),
		MarketValue:        marketValue(raw["marketValue"]),
		Contract:           contract(raw["contract"]),
		ContractUntil:      optionalString(raw["contractUntil"]),
		ContractUntilSnake: optionalString(raw["contract_until"]),
		Extra:              raw,
	}
	if p.Extra == nil {
		p.Extra = map[string]any{}
	}
	return p
}

func deref(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func (p Player) PositionOrEmpty() string { return deref(p.Position) }
func (p Player) SerieOrEmpty() string    { return deref(p.Serie) }
func (p Player) ClubOrEmpty() string     { return deref(p.ClubName) }

func idString(v any) string {
	switch typed := v.(type) {
	case string:
		return strings.TrimSpace(typed)
	case float64:
		if typed == math.Trunc(typed) {
			return strconv.FormatInt(int64(typed), 10)
		}
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(typed, 10)
	case int:
		return strconv.Itoa(typed)
	default:
		return ""
	}
}

func stringValue(v any) string {
	s, _ := v.(string)
	return s
}

func optionalString(v any) *string {
	s, ok := v.(string)
	if !ok {
		return nil
	}
	return &s
}

func optionalInt(v any) *int {
	var out int
	switch typed := v.(type) {
	case float64:
		if math.IsNaN(typed) || math.IsInf(typed, 0) {
			return nil
		}
		out = int(typed)
	case int:
		out = typed
	case int64:
		out = int(typed)
	default:
		return nil
	}
	return &out
}

func marketValue(v any) MarketValue {
	switch typed := v.(type) {
	case float64:
		return MarketValue{Number: &typed}
	case int:
		f := float64(typed)
		return MarketValue{Number: &f}
	case int64:
		f := float64(typed)
		return MarketValue{Number: &f}
	case string:
		return MarketValue{Text: &typed}
	default:
		return MarketValue{}
	}
}

func contract(v any) Contract {
	switch typed := v.(type) {
	case map[string]any:
		return Contract{Nested: true, Until: optionalString(typed["until"])}
	case string:
		return Contract{Flat: &typed}
	default:
		return Contract{}
	}
}
