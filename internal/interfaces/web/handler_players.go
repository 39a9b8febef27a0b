package web

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/player-scout/internal/usecase"
)

func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "web.Handler.ListPlayers")
	defer span.End()

	query, params, ignored, err := parseListingQuery(r.URL.Query(), h.validator)
	if err != nil {
		h.logger.WarnContext(ctx, "invalid listing query", "query", r.URL.RawQuery, "error", err)
		h.renderError(w, r, err)
		return
	}
	if len(ignored) > 0 {
		h.logger.DebugContext(ctx, "ignored malformed listing parameters", "params", ignored)
	}

	listing, err := h.players.ListPlayers(ctx, query)
	if err != nil {
		h.logger.ErrorContext(ctx, "list players failed", "error", err)
		h.renderError(w, r, err)
		return
	}

	clubs := listing.Clubs
	if params.Serie != "" {
		clubs = clubsInSerie(clubs, params.Serie)
	}

	h.render(ctx, w, http.StatusOK, pageIndex, listingView{
		pageMeta:   h.meta(w, r, "Jogadores"),
		Params:     params,
		Groups:     listing.Page.Groups,
		Pagination: listing.Page.Pagination,
		Series:     listing.Series,
		Clubs:      clubs,
		Matched:    listing.Matched,
		Empty:      listing.Page.IsEmpty(),
		SortKeys:   sortOptions,
	})
}

func (h *Handler) PlayerProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "web.Handler.PlayerProfile")
	defer span.End()

	playerID := strings.TrimSpace(r.PathValue("playerID"))
	profile, err := h.players.GetProfile(ctx, playerID)
	if err != nil {
		if usecase.IsNotFound(err) {
			h.logger.InfoContext(ctx, "player not found", "player_id", playerID)
		} else {
			h.logger.ErrorContext(ctx, "get player profile failed", "player_id", playerID, "error", err)
		}
		h.renderError(w, r, err)
		return
	}

	h.render(ctx, w, http.StatusOK, pageProfile, profileView{
		pageMeta:      h.meta(w, r, profile.Player.Name),
		Player:        profile.Player,
		CalculatedAge: profile.CalculatedAge,
		Stats:         profile.Stats,
		HasStats:      profile.HasStats(),
	})
}

// ListClubNames serves the club names for a tier, or for every tier when the
// path value is empty, as a bare JSON array.
func (h *Handler) ListClubNames(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "web.Handler.ListClubNames")
	defer span.End()

	serie := strings.TrimSpace(r.PathValue("serie"))
	names, err := h.players.ClubNames(ctx, serie)
	if err != nil {
		h.logger.ErrorContext(ctx, "list club names failed", "serie", serie, "error", err)
		writeError(ctx, w, err)
		return
	}
	if names == nil {
		names = []string{}
	}

	writeJSON(ctx, w, http.StatusOK, names)
}

// ListSeries returns the tier summary inside the standard envelope.
func (h *Handler) ListSeries(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "web.Handler.ListSeries")
	defer span.End()

	series, err := h.players.SeriesSummary(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "series summary failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, series)
}

func clubsInSerie(clubs []usecase.ClubInfo, serie string) []usecase.ClubInfo {
	out := make([]usecase.ClubInfo, 0, len(clubs))
	for _, club := range clubs {
		if club.Serie == serie {
			out = append(out, club)
		}
	}
	return out
}
