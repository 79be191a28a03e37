package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	"leaguelens/internal/service"
)

type Scheduler struct {
	s           gocron.Scheduler
	svc         *service.AnalyticsService
	sendMessage func(string) error
}

func NewScheduler(svc *service.AnalyticsService, sendMessage func(string) error) (*Scheduler, error) {
	location, err := time.LoadLocation("America/Chicago") // CDT
	if err != nil {
		slog.Error("Failed to load location", "error", err)
	}

	s, err := gocron.NewScheduler(
		gocron.WithLocation(location),
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	return &Scheduler{
		s:           s,
		svc:         svc,
		sendMessage: sendMessage,
	}, nil
}

func (s *Scheduler) Start() error {
	var err error

	// Standings - Wednesday 7:30 CDT, after Tuesday waivers clear
	_, err = s.s.NewJob(
		gocron.WeeklyJob(1, gocron.NewWeekdays(time.Wednesday), gocron.NewAtTimes(gocron.NewAtTime(7, 30, 0))),
		gocron.NewTask(s.sendStandings),
	)
	if err != nil {
		return fmt.Errorf("failed to create standings job: %w", err)
	}

	// Luck recap - Tuesday 7:30 CDT, once Monday night scores are final
	_, err = s.s.NewJob(
		gocron.WeeklyJob(1, gocron.NewWeekdays(time.Tuesday), gocron.NewAtTimes(gocron.NewAtTime(7, 30, 0))),
		gocron.NewTask(s.sendLuckRecap),
	)
	if err != nil {
		return fmt.Errorf("failed to create luck recap job: %w", err)
	}

	// Efficiency rankings - Tuesday 8:00 CDT
	_, err = s.s.NewJob(
		gocron.WeeklyJob(1, gocron.NewWeekdays(time.Tuesday), gocron.NewAtTimes(gocron.NewAtTime(8, 0, 0))),
		gocron.NewTask(s.sendEfficiency),
	)
	if err != nil {
		return fmt.Errorf("failed to create efficiency job: %w", err)
	}

	// FAAB report - Wednesday 8:00 CDT
	_, err = s.s.NewJob(
		gocron.WeeklyJob(1, gocron.NewWeekdays(time.Wednesday), gocron.NewAtTimes(gocron.NewAtTime(8, 0, 0))),
		gocron.NewTask(s.sendFAAB),
	)
	if err != nil {
		return fmt.Errorf("failed to create FAAB job: %w", err)
	}

	s.s.Start()
	return nil
}

func (s *Scheduler) Stop() error {
	return s.s.Shutdown()
}

func (s *Scheduler) sendStandings() {
	standings, err := s.svc.Standings(context.Background())
	if err != nil {
		slog.Error("Failed to get standings", "error", err)
		return
	}
	s.sendMessage(service.FormatStandings(standings))
}

func (s *Scheduler) sendLuckRecap() {
	report, err := s.svc.LeagueLuck(context.Background())
	if err != nil {
		slog.Error("Failed to get luck report", "error", err)
		return
	}
	s.sendMessage(service.FormatLeagueLuck(report))
}

func (s *Scheduler) sendEfficiency() {
	rankings, err := s.svc.EfficiencyRankings(context.Background())
	if err != nil {
		slog.Error("Failed to get efficiency rankings", "error", err)
		return
	}
	s.sendMessage(service.FormatEfficiencyRankings(rankings))
}

func (s *Scheduler) sendFAAB() {
	report, err := s.svc.LeagueFAAB(context.Background())
	if err != nil {
		slog.Error("Failed to get FAAB report", "error", err)
		return
	}
	s.sendMessage(service.FormatLeagueFAAB(report))
}
