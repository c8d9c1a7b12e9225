// Package notifier sends Telegram alerts for top-tier picks, with a Redis
// dedup window and a shared rate limit so repeat pipeline runs don't spam
// the chat.
package notifier

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/beaubranton4/d1-picks/internal/logger"
	"github.com/beaubranton4/d1-picks/pkg/models"
	"github.com/beaubranton4/d1-picks/pkg/oddsmath"
)

// Notifier sends pick alerts through a Telegram bot
type Notifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	dedup  *Deduplicator
	bucket *TokenBucket
}

// New creates a Notifier. dedup and bucket may be nil, which disables the
// respective guard (useful in tests and minimal deployments).
func New(botToken, chatID string, dedup *Deduplicator, bucket *TokenBucket) (*Notifier, error) {
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("notifier: creating bot: %w", err)
	}

	chatIDInt, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("notifier: invalid chat id: %w", err)
	}

	return &Notifier{
		bot:    bot,
		chatID: chatIDInt,
		dedup:  dedup,
		bucket: bucket,
	}, nil
}

// NotifySheet alerts every top-tier pick on a sheet, then posts a run
// summary. Send failures are logged and skipped; a dead Telegram never
// fails the pipeline.
func (n *Notifier) NotifySheet(ctx context.Context, sheet *models.PickSheet) {
	alerted := 0

	for _, gp := range sheet.Games {
		for _, edge := range gp.Edges {
			if edge.PickLabel != oddsmath.LabelTopPick {
				continue
			}

			if n.dedup != nil {
				ok, err := n.dedup.ShouldAlert(ctx, gp.Game.ID, edge.Team, edge.Sportsbook)
				if err != nil {
					logger.Warn("dedup check failed: %v", err)
				} else if !ok {
					continue
				}
			}

			if n.bucket != nil {
				ok, err := n.bucket.Allow(ctx)
				if err != nil {
					logger.Warn("rate limit check failed: %v", err)
				} else if !ok {
					logger.Warn("alert rate limit reached, skipping remaining picks")
					return
				}
			}

			if err := n.send(formatPick(gp.Game, edge)); err != nil {
				logger.Warn("telegram alert failed: %v", err)
				continue
			}
			alerted++
		}
	}

	if alerted > 0 {
		if err := n.send(formatSummary(sheet, alerted)); err != nil {
			logger.Warn("telegram summary failed: %v", err)
		}
	}
}

func (n *Notifier) send(text string) error {
	msg := tgbotapi.NewMessage(n.chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	_, err := n.bot.Send(msg)
	return err
}

func formatPick(game models.Game, edge models.BetEdge) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("💰 *TOP PICK* | %s\n\n", strings.ToUpper(edge.Team)))
	sb.WriteString(fmt.Sprintf("*Matchup:* %s @ %s\n", game.TeamA, game.TeamB))
	sb.WriteString(fmt.Sprintf("*Line:* %s %s\n", edge.Sportsbook, formatOdds(edge.Moneyline)))
	sb.WriteString(fmt.Sprintf("*Model:* %.1f%% vs implied %.1f%%\n", edge.ModelProb*100, edge.ImpliedProb*100))
	sb.WriteString(fmt.Sprintf("*Edge:* %+.2f%%", edge.AdjustedEdge*100))
	if edge.ModifierReason != nil {
		sb.WriteString(fmt.Sprintf(" (%s)", *edge.ModifierReason))
	}
	sb.WriteString(fmt.Sprintf("\n*AI Score:* %.1f / 10\n", edge.AIScore))

	if game.StartTime != "" {
		sb.WriteString(fmt.Sprintf("\n_First pitch: %s_", game.StartTime))
	}

	return sb.String()
}

func formatSummary(sheet *models.PickSheet, alerted int) string {
	return fmt.Sprintf(
		"📊 *Run Summary %s*\n\n"+
			"Games: %d | With odds: %d | Edges: %d\n"+
			"Strong: %d | Bets: %d | Leans: %d\n"+
			"Alerted: %d",
		sheet.Date,
		sheet.Summary.Games, sheet.Summary.GamesWithOdds, sheet.Summary.Edges,
		sheet.Summary.StrongBets, sheet.Summary.Bets, sheet.Summary.Leans,
		alerted,
	)
}

func formatOdds(moneyline int) string {
	if moneyline > 0 {
		return fmt.Sprintf("+%d", moneyline)
	}
	return fmt.Sprintf("%d", moneyline)
}
