package memory

import "github.com/riskibarqy/player-scout/internal/domain/player"

// SeedPlayers mirrors the loose shapes the upstream API serves: mixed contract
// layouts, numeric and textual market values and the odd missing field.
func SeedPlayers() []player.Player {
	raw := []map[string]any{
		{"id": float64(1), "name": "Gabriel Barbosa", "position": "Centre-Forward", "serie": "Série A", "club_name": "Flamengo", "dateOfBirth": "1996-08-30", "age": float64(28), "marketValue": "€ 7,5 M", "contract": map[string]any{"until": "2025-12-31"}},
		{"id": float64(2), "name": "Pedro", "position": "Centre-Forward", "serie": "Série A", "club_name": "Flamengo", "dateOfBirth": "1997-06-20", "age": float64(27), "marketValue": float64(15000000), "contract": "2027-12-31"},
		{"id": float64(3), "name": "Raphael Veiga", "position": "Attacking Midfield", "serie": "Série A", "club_name": "Palmeiras", "dateOfBirth": "1995-06-19", "age": float64(29), "marketValue": float64(12000000), "contractUntil": "2026-12-31"},
		{"id": float64(4), "name": "Weverton", "position": "Goalkeeper", "serie": "Série A", "club_name": "Palmeiras", "dateOfBirth": "1987-12-13", "age": float64(36), "marketValue": "€1.2M", "contract": "31/12/2025"},
		{"id": float64(5), "name": "Hulk", "position": "Centre-Forward", "serie": "Série A", "club_name": "Atlético Mineiro", "dateOfBirth": "1986-07-25", "age": float64(38), "marketValue": float64(2000000), "contract_until": "2025-12-31"},
		{"id": float64(6), "name": "Germán Cano", "position": "Centre-Forward", "serie": "Série A", "club_name": "Fluminense", "dateOfBirth": "1988-01-02", "age": float64(36), "marketValue": "€ 1,5 M", "contract": map[string]any{"until": "2025-12-31"}},
		{"id": float64(7), "name": "Lucas Moura", "position": "Right Winger", "serie": "Série A", "club_name": "São Paulo", "dateOfBirth": "1992-08-13", "age": float64(32), "marketValue": float64(3500000), "contract": "2026-12-31"},
		{"id": float64(8), "name": "Yuri Alberto", "position": "Centre-Forward", "serie": "Série A", "club_name": "Corinthians", "dateOfBirth": "2001-03-18", "age": float64(23), "marketValue": float64(18000000), "contract": "2027-12-31"},
		{"id": float64(9), "name": "Rafael Elias", "position": "Centre-Forward", "serie": "Série B", "club_name": "Goiás", "dateOfBirth": "1999-04-14", "marketValue": float64(900000), "contract": "2025-06-30"},
		{"id": float64(10), "name": "Alef Manga", "position": "Left Winger", "serie": "Série B", "club_name": "Coritiba", "dateOfBirth": "1994-12-04", "age": float64(29), "marketValue": "€700k", "contract": "30/06/2026"},
		{"id": float64(11), "name": "Edu", "position": "Centre-Forward", "serie": "Série B", "club_name": "Novorizontino", "age": float64(31), "marketValue": float64(450000)},
		{"id": float64(12), "name": "Renato Kayzer", "position": "Centre-Forward", "serie": "Série B", "club_name": "Sport Recife", "dateOfBirth": "1996-02-17", "age": float64(28), "marketValue": float64(1200000), "contract": map[string]any{"until": "2026-05-31"}},
		{"id": float64(13), "name": "Neto Pessoa", "position": "Centre-Forward", "serie": "Série C", "club_name": "Náutico", "dateOfBirth": "1994-05-11", "age": float64(30), "marketValue": float64(350000), "contract": "2025-11-30"},
		{"id": float64(14), "name": "Pablo Dyego", "position": "Right Winger", "serie": "Série C", "club_name": "Remo", "dateOfBirth": "1993-12-06", "age": float64(30), "marketValue": "R$ 2400", "contract": "2025-12-01"},
		{"id": float64(15), "name": "Jean Carlos", "position": "Central Midfield", "serie": "Série C", "dateOfBirth": "1992-11-04", "age": float64(31), "contract": "2026-02-28"},
		{"id": float64(16), "name": "Daniel Amorim", "position": "Centre-Forward", "serie": "Série D", "club_name": "Anápolis", "dateOfBirth": "1996-05-27", "age": float64(28), "marketValue": float64(150000), "contract": "2025-09-30"},
		{"id": float64(17), "name": "Kesley", "position": "Left-Back", "serie": "Série D", "club_name": "Maringá", "age": float64(25)},
		{"id": float64(18), "name": "Thiago Galhardo", "position": "Second Striker", "serie": "Copa do Nordeste", "club_name": "Fortaleza", "dateOfBirth": "1989-07-20", "age": float64(35), "marketValue": float64(600000), "contract": "2025-12-31"},
		{"id": float64(19), "name": "Vinícius Popó", "position": "Centre-Forward", "club_name": "Atlético Goianiense", "dateOfBirth": "1998-01-13", "age": float64(26), "marketValue": float64(800000)},
		{"id": float64(20), "name": "Matheus Pereira", "position": "Attacking Midfield", "serie": "Série A", "club_name": "Cruzeiro", "dateOfBirth": "1996-05-05", "age": float64(28), "marketValue": float64(9000000), "contract": "2028-12-31"},
	}

	out := make([]player.Player, 0, len(raw))
	for _, item := range raw {
		out = append(out, player.FromMap(item))
	}
	return out
}

func SeedStats() map[string]player.Stats {
	return map[string]player.Stats{
		"1":  {"appearances": float64(34), "goals": float64(11), "assists": float64(4), "minutes": float64(2410)},
		"2":  {"appearances": float64(38), "goals": float64(23), "assists": float64(6), "minutes": float64(3020)},
		"5":  {"appearances": float64(36), "goals": float64(19), "assists": float64(7), "minutes": float64(3105)},
		"8":  {"appearances": float64(33), "goals": float64(15), "assists": float64(3), "minutes": float64(2650)},
		"12": {"appearances": float64(30), "goals": float64(12), "assists": float64(2), "minutes": float64(2380)},
	}
}
