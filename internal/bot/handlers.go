package bot

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"leaguelens/internal/analytics"
	"leaguelens/internal/service"
)

type Handler struct {
	svc *service.AnalyticsService
}

func NewHandler(svc *service.AnalyticsService) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) HandleCommand(ctx context.Context, update tgbotapi.Update) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(update.Message.Chat.ID, "")
	command := strings.ToLower(update.Message.Command())
	args := update.Message.CommandArguments()
	msg.ParseMode = "Markdown"

	switch command {
	case "start":
		msg.Text = "Welcome to LeagueLens! Use /help to see available commands."
	case "help":
		msg.Text = "Available commands:\n/standings - League standings\n/efficiency - Lineup efficiency rankings\n/luck - Luck and schedule report\n/closegames - Nail-biters of the season\n/faab - FAAB spending report\n/construction - Roster construction breakdown\n/draft - Draft report card\n/benchwarmers - Best benched performances\n/whohas <player> - Player ownership history"
	case "standings":
		h.handleStandings(ctx, &msg)
	case "efficiency":
		h.handleEfficiency(ctx, &msg)
	case "luck":
		h.handleLuck(ctx, &msg)
	case "closegames":
		h.handleCloseGames(ctx, &msg)
	case "faab":
		h.handleFAAB(ctx, &msg)
	case "construction":
		h.handleConstruction(ctx, &msg)
	case "draft":
		h.handleDraft(ctx, &msg)
	case "benchwarmers":
		h.handleBenchwarmers(ctx, &msg)
	case "whohas":
		h.handleWhoHas(ctx, &msg, args)
	default:
		msg.Text = "Unknown command. Use /help to see available commands."
	}

	return msg
}

func (h *Handler) handleStandings(ctx context.Context, msg *tgbotapi.MessageConfig) {
	standings, err := h.svc.Standings(ctx)
	if err != nil {
		msg.Text = fmt.Sprintf("Error fetching standings: %v", err)
		return
	}
	msg.Text = service.FormatStandings(standings)
}

func (h *Handler) handleEfficiency(ctx context.Context, msg *tgbotapi.MessageConfig) {
	rankings, err := h.svc.EfficiencyRankings(ctx)
	if err != nil {
		msg.Text = fmt.Sprintf("Error fetching efficiency rankings: %v", err)
		return
	}
	msg.Text = service.FormatEfficiencyRankings(rankings)
}

func (h *Handler) handleLuck(ctx context.Context, msg *tgbotapi.MessageConfig) {
	report, err := h.svc.LeagueLuck(ctx)
	if err != nil {
		msg.Text = fmt.Sprintf("Error generating luck report: %v", err)
		return
	}
	msg.Text = service.FormatLeagueLuck(report)
}

func (h *Handler) handleCloseGames(ctx context.Context, msg *tgbotapi.MessageConfig) {
	games, err := h.svc.CloseGames(ctx, analytics.DefaultCloseGameThreshold)
	if err != nil {
		msg.Text = fmt.Sprintf("Error fetching close games: %v", err)
		return
	}
	msg.Text = service.FormatCloseGames(games, analytics.DefaultCloseGameThreshold)
}

func (h *Handler) handleFAAB(ctx context.Context, msg *tgbotapi.MessageConfig) {
	report, err := h.svc.LeagueFAAB(ctx)
	if err != nil {
		msg.Text = fmt.Sprintf("Error generating FAAB report: %v", err)
		return
	}
	msg.Text = service.FormatLeagueFAAB(report)
}

func (h *Handler) handleConstruction(ctx context.Context, msg *tgbotapi.MessageConfig) {
	report, err := h.svc.RosterConstruction(ctx)
	if err != nil {
		msg.Text = fmt.Sprintf("Error generating roster construction report: %v", err)
		return
	}
	msg.Text = service.FormatRosterConstruction(report)
}

func (h *Handler) handleDraft(ctx context.Context, msg *tgbotapi.MessageConfig) {
	report, err := h.svc.DraftReport(ctx)
	if err != nil {
		msg.Text = fmt.Sprintf("Error generating draft report: %v", err)
		return
	}
	msg.Text = service.FormatDraftReport(report)
}

func (h *Handler) handleBenchwarmers(ctx context.Context, msg *tgbotapi.MessageConfig) {
	report, err := h.svc.Benchwarmers(ctx)
	if err != nil {
		msg.Text = fmt.Sprintf("Error generating benchwarmer report: %v", err)
		return
	}
	msg.Text = service.FormatBenchwarmers(report)
}

func (h *Handler) handleWhoHas(ctx context.Context, msg *tgbotapi.MessageConfig, args string) {
	if args == "" {
		msg.Text = "Please provide a player name. Usage: /whohas <player name>"
		return
	}
	result, err := h.svc.WhoHas(ctx, args)
	if err != nil {
		msg.Text = fmt.Sprintf("Error checking who has player: %v", err)
		return
	}
	msg.Text = service.FormatWhoHas(result)
}
