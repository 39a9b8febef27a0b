package player

import (
	"time"

	"github.com/riskibarqy/player-scout/internal/platform/format"
)

// ContractEnd resolves the contract expiry from, in order: the nested
// contract.until value, the flat contract string, contractUntil and
// contract_until. The first candidate that parses wins.
func (p Player) ContractEnd() (time.Time, bool) {
	if p.Contract.Nested {
		if end, ok := parseOptionalDate(p.Contract.Until); ok {
			return end, true
		}
	} else if end, ok := parseOptionalDate(p.Contract.Flat); ok {
		return end, true
	}

	fallback := p.ContractUntil
	if fallback == nil || *fallback == "" {
		fallback = p.ContractUntilSnake
	}
	return parseOptionalDate(fallback)
}

// FlatContractDate parses only the flat contract string as YYYY-MM-DD.
func (p Player) FlatContractDate() (time.Time, bool) {
	if p.Contract.Flat == nil {
		return time.Time{}, false
	}
	parsed, err := time.Parse("2006-1-2", *p.Contract.Flat)
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}

// CalculatedAge is the age derived from DateOfBirth, independent of Age.
func (p Player) CalculatedAge(now time.Time) (int, bool) {
	if p.DateOfBirth == nil {
		return 0, false
	}
	return format.CalculateAge(*p.DateOfBirth, now)
}

func parseOptionalDate(v *string) (time.Time, bool) {
	if v == nil {
		return time.Time{}, false
	}
	return format.ParseDate(*v)
}
