package web

import (
	"testing"

	"github.com/riskibarqy/player-scout/internal/domain/player"
	"github.com/riskibarqy/player-scout/internal/platform/format"
)

func TestFormatCurrencyValue_MarketValue(t *testing.T) {
	zero := 0.0
	amount := 1500000.0
	text := "€ 12.50 M"

	cases := []struct {
		name  string
		value player.MarketValue
		want  string
	}{
		{name: "missing", value: player.MarketValue{}, want: format.NotAvailable},
		{name: "zero number", value: player.MarketValue{Number: &zero}, want: format.NotAvailable},
		{name: "number", value: player.MarketValue{Number: &amount}, want: "1.5M"},
		{name: "abbreviated text", value: player.MarketValue{Text: &text}, want: text},
	}
	for _, tc := range cases {
		if got := formatCurrencyValue(tc.value); got != tc.want {
			t.Fatalf("%s: got %q want %q", tc.name, got, tc.want)
		}
	}
}
