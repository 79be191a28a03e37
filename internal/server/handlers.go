package server

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"leaguelens/internal/analytics"
	"leaguelens/internal/api/sleeper"
)

type errResponse struct {
	Error string `json:"error"`
}

func respondErr(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, analytics.ErrDraftUnavailable):
		status = http.StatusNotFound
	case errors.Is(err, sleeper.ErrNotFound):
		status = http.StatusNotFound
	}
	if status == http.StatusInternalServerError {
		slog.Error("request failed", "path", r.URL.Path, "error", err)
	}
	render.Status(r, status)
	render.JSON(w, r, errResponse{Error: err.Error()})
}

func rosterIDParam(r *http.Request) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, "rosterID"))
	if err != nil {
		return 0, errors.New("roster id must be an integer")
	}
	return id, nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{"status": "ok"})
}

func (s *Server) handleStandings(w http.ResponseWriter, r *http.Request) {
	standings, err := s.svc.Standings(r.Context())
	if err != nil {
		respondErr(w, r, err)
		return
	}
	render.JSON(w, r, standings)
}

func (s *Server) handleAwards(w http.ResponseWriter, r *http.Request) {
	awards, err := s.svc.SeasonAwards(r.Context())
	if err != nil {
		respondErr(w, r, err)
		return
	}
	render.JSON(w, r, awards)
}

func (s *Server) handleCloseGames(w http.ResponseWriter, r *http.Request) {
	threshold := analytics.DefaultCloseGameThreshold
	if raw := r.URL.Query().Get("threshold"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed < 0 {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, errResponse{Error: "threshold must be a non-negative number"})
			return
		}
		threshold = parsed
	}
	games, err := s.svc.CloseGames(r.Context(), threshold)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	render.JSON(w, r, games)
}

func (s *Server) handleEfficiencyRankings(w http.ResponseWriter, r *http.Request) {
	rankings, err := s.svc.EfficiencyRankings(r.Context())
	if err != nil {
		respondErr(w, r, err)
		return
	}
	render.JSON(w, r, rankings)
}

func (s *Server) handleTeamEfficiency(w http.ResponseWriter, r *http.Request) {
	rosterID, err := rosterIDParam(r)
	if err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, errResponse{Error: err.Error()})
		return
	}
	report, err := s.svc.TeamEfficiency(r.Context(), rosterID)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	render.JSON(w, r, report)
}

func (s *Server) handleWeeklyEfficiency(w http.ResponseWriter, r *http.Request) {
	rosterID, err := rosterIDParam(r)
	if err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, errResponse{Error: err.Error()})
		return
	}
	week, err := strconv.Atoi(chi.URLParam(r, "week"))
	if err != nil || week < 1 {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, errResponse{Error: "week must be a positive integer"})
		return
	}
	report, err := s.svc.WeeklyEfficiency(r.Context(), rosterID, week)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	render.JSON(w, r, report)
}

func (s *Server) handleLeagueLuck(w http.ResponseWriter, r *http.Request) {
	report, err := s.svc.LeagueLuck(r.Context())
	if err != nil {
		respondErr(w, r, err)
		return
	}
	render.JSON(w, r, report)
}

func (s *Server) handleTeamLuck(w http.ResponseWriter, r *http.Request) {
	rosterID, err := rosterIDParam(r)
	if err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, errResponse{Error: err.Error()})
		return
	}
	report, err := s.svc.TeamLuck(r.Context(), rosterID)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	render.JSON(w, r, report)
}

func (s *Server) handleLeagueFAAB(w http.ResponseWriter, r *http.Request) {
	report, err := s.svc.LeagueFAAB(r.Context())
	if err != nil {
		respondErr(w, r, err)
		return
	}
	render.JSON(w, r, report)
}

func (s *Server) handleOwnerFAAB(w http.ResponseWriter, r *http.Request) {
	rosterID, err := rosterIDParam(r)
	if err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, errResponse{Error: err.Error()})
		return
	}
	report, err := s.svc.OwnerFAAB(r.Context(), rosterID)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	render.JSON(w, r, report)
}

func (s *Server) handleRosterConstruction(w http.ResponseWriter, r *http.Request) {
	report, err := s.svc.RosterConstruction(r.Context())
	if err != nil {
		respondErr(w, r, err)
		return
	}
	render.JSON(w, r, report)
}

func (s *Server) handleTeamConstruction(w http.ResponseWriter, r *http.Request) {
	rosterID, err := rosterIDParam(r)
	if err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, errResponse{Error: err.Error()})
		return
	}
	report, err := s.svc.TeamConstruction(r.Context(), rosterID)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	render.JSON(w, r, report)
}

func (s *Server) handleDraft(w http.ResponseWriter, r *http.Request) {
	report, err := s.svc.DraftReport(r.Context())
	if err != nil {
		respondErr(w, r, err)
		return
	}
	render.JSON(w, r, report)
}

func (s *Server) handleBenchwarmers(w http.ResponseWriter, r *http.Request) {
	report, err := s.svc.Benchwarmers(r.Context())
	if err != nil {
		respondErr(w, r, err)
		return
	}
	render.JSON(w, r, report)
}

func (s *Server) handlePlayerLifecycle(w http.ResponseWriter, r *http.Request) {
	playerID := chi.URLParam(r, "playerID")
	lifecycle, err := s.svc.PlayerLifecycle(r.Context(), playerID)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	render.JSON(w, r, lifecycle)
}

func (s *Server) handleWhoHas(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, errResponse{Error: "name query parameter is required"})
		return
	}
	result, err := s.svc.WhoHas(r.Context(), name)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	if !result.Found {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, errResponse{Error: "no player matched '" + name + "'"})
		return
	}
	render.JSON(w, r, result.Lifecycle)
}
