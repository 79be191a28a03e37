package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"leaguelens/internal/analytics"
	"leaguelens/internal/api/sleeper"
	"leaguelens/internal/config"
	"leaguelens/internal/league"
	"leaguelens/internal/models"
	"leaguelens/internal/repository/memory"
)

const seasonCacheTTL = 5 * time.Minute

// AnalyticsService assembles a season snapshot from the Sleeper feeds and
// runs the analysis suite over it. All analysis is pure and in-memory; only
// the fetch suspends, and cancelling the request context aborts it without
// touching the cached snapshot.
type AnalyticsService struct {
	client *sleeper.Client
	cfg    config.League
	repo   *memory.Repository
}

func NewAnalyticsService(client *sleeper.Client, cfg config.League, repo *memory.Repository) *AnalyticsService {
	return &AnalyticsService{client: client, cfg: cfg, repo: repo}
}

// Season returns the cached season snapshot, fetching a fresh one when the
// cache has gone stale.
func (s *AnalyticsService) Season(ctx context.Context) (*analytics.Season, error) {
	if season := s.repo.GetSeason(seasonCacheTTL); season != nil {
		return season, nil
	}

	season, err := s.loadSeason(ctx)
	if err != nil {
		return nil, err
	}
	s.repo.SaveSeason(season)
	return season, nil
}

func (s *AnalyticsService) loadSeason(ctx context.Context) (*analytics.Season, error) {
	start := time.Now()

	lctx, err := league.Load(ctx, s.client, s.cfg.LeagueID)
	if err != nil {
		return nil, fmt.Errorf("loading league %s: %w", s.cfg.LeagueID, err)
	}

	var (
		matchups     map[int][]models.Matchup
		transactions []models.Transaction
		drafts       []models.Draft
		picks        []models.DraftSelection
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		matchups, err = s.client.GetMatchupsRange(gctx, s.cfg.LeagueID, 1, s.cfg.Weeks)
		return err
	})
	g.Go(func() error {
		var err error
		transactions, err = s.client.GetAllTransactions(gctx, s.cfg.LeagueID, s.cfg.Weeks)
		return err
	})
	g.Go(func() error {
		var err error
		drafts, err = s.client.GetDrafts(gctx, s.cfg.LeagueID)
		if err != nil || len(drafts) == 0 {
			return err
		}
		picks, err = s.client.GetDraftPicks(gctx, drafts[0].DraftID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("fetching season data: %w", err)
	}

	season := analytics.NewSeason(lctx, s.cfg.Weeks, matchups, transactions)
	season.Drafts = drafts
	season.DraftPicks = picks

	slog.Info("Season snapshot assembled",
		"league", lctx.LeagueName(),
		"weeks", s.cfg.Weeks,
		"transactions", len(transactions),
		"elapsed", time.Since(start))
	return season, nil
}

func (s *AnalyticsService) Standings(ctx context.Context) ([]models.Standing, error) {
	season, err := s.Season(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.Standings(season), nil
}

func (s *AnalyticsService) EfficiencyRankings(ctx context.Context) ([]models.EfficiencyRanking, error) {
	season, err := s.Season(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.LeagueEfficiencyRankings(season), nil
}

func (s *AnalyticsService) TeamEfficiency(ctx context.Context, rosterID int) (models.SeasonEfficiency, error) {
	season, err := s.Season(ctx)
	if err != nil {
		return models.SeasonEfficiency{}, err
	}
	return analytics.SeasonEfficiency(season, rosterID), nil
}

func (s *AnalyticsService) WeeklyEfficiency(ctx context.Context, rosterID, week int) (models.EfficiencyReport, error) {
	season, err := s.Season(ctx)
	if err != nil {
		return models.EfficiencyReport{}, err
	}
	return analytics.WeeklyEfficiency(season, rosterID, week), nil
}

func (s *AnalyticsService) LeagueLuck(ctx context.Context) (models.LeagueLuckReport, error) {
	season, err := s.Season(ctx)
	if err != nil {
		return models.LeagueLuckReport{}, err
	}
	return analytics.LeagueLuck(season), nil
}

func (s *AnalyticsService) TeamLuck(ctx context.Context, rosterID int) (models.LuckReport, error) {
	season, err := s.Season(ctx)
	if err != nil {
		return models.LuckReport{}, err
	}
	return analytics.TeamLuck(season, rosterID), nil
}

func (s *AnalyticsService) LeagueFAAB(ctx context.Context) (models.LeagueFAABReport, error) {
	season, err := s.Season(ctx)
	if err != nil {
		return models.LeagueFAABReport{}, err
	}
	return analytics.LeagueFAAB(season), nil
}

func (s *AnalyticsService) OwnerFAAB(ctx context.Context, rosterID int) (models.OwnerFAABPerformance, error) {
	season, err := s.Season(ctx)
	if err != nil {
		return models.OwnerFAABPerformance{}, err
	}
	return analytics.OwnerFAABPerformance(season, rosterID), nil
}

func (s *AnalyticsService) PlayerLifecycle(ctx context.Context, playerID string) (models.PlayerLifecycle, error) {
	season, err := s.Season(ctx)
	if err != nil {
		return models.PlayerLifecycle{}, err
	}
	return analytics.PlayerLifecycle(season, playerID), nil
}

func (s *AnalyticsService) RosterConstruction(ctx context.Context) (models.LeagueRosterConstruction, error) {
	season, err := s.Season(ctx)
	if err != nil {
		return models.LeagueRosterConstruction{}, err
	}
	return analytics.LeagueRosterConstruction(season), nil
}

func (s *AnalyticsService) TeamConstruction(ctx context.Context, rosterID int) (models.TeamRosterConstruction, error) {
	season, err := s.Season(ctx)
	if err != nil {
		return models.TeamRosterConstruction{}, err
	}
	return analytics.TeamRosterConstruction(season, rosterID), nil
}

func (s *AnalyticsService) DraftReport(ctx context.Context) (models.DraftReport, error) {
	season, err := s.Season(ctx)
	if err != nil {
		return models.DraftReport{}, err
	}
	return analytics.AnalyzeDraft(season)
}

func (s *AnalyticsService) Benchwarmers(ctx context.Context) (models.LeagueBenchwarmerReport, error) {
	season, err := s.Season(ctx)
	if err != nil {
		return models.LeagueBenchwarmerReport{}, err
	}
	return analytics.LeagueBenchwarmers(season), nil
}

func (s *AnalyticsService) CloseGames(ctx context.Context, threshold float64) ([]models.CloseGame, error) {
	season, err := s.Season(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.CloseGames(season, threshold), nil
}

func (s *AnalyticsService) SeasonAwards(ctx context.Context) (models.SeasonAwards, error) {
	season, err := s.Season(ctx)
	if err != nil {
		return models.SeasonAwards{}, err
	}
	return analytics.SeasonAwards(season), nil
}

// WhoHasResult resolves a fuzzy player name to its current owner and season
// journey.
type WhoHasResult struct {
	Found      bool
	PlayerName string
	Position   string
	TeamName   string
	Lifecycle  models.PlayerLifecycle
}

func (s *AnalyticsService) WhoHas(ctx context.Context, name string) (WhoHasResult, error) {
	season, err := s.Season(ctx)
	if err != nil {
		return WhoHasResult{}, err
	}

	player, rosterID, ok := season.Ctx.FindPlayer(name)
	if !ok {
		return WhoHasResult{Found: false, PlayerName: name}, nil
	}

	return WhoHasResult{
		Found:      true,
		PlayerName: player.DisplayName(),
		Position:   player.Position,
		TeamName:   season.Ctx.TeamName(rosterID),
		Lifecycle:  analytics.PlayerLifecycle(season, player.PlayerID),
	}, nil
}

// FindRoster resolves a fuzzy team name against the cached season.
func (s *AnalyticsService) FindRoster(ctx context.Context, name string) (int, bool, error) {
	season, err := s.Season(ctx)
	if err != nil {
		return 0, false, err
	}
	rosterID, ok := season.Ctx.FindRoster(name)
	return rosterID, ok, nil
}
