package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/pitchside/internal/metrics"
	"github.com/mauv0809/pitchside/internal/notifier"
	"github.com/mauv0809/pitchside/internal/pubsub"
	"github.com/mauv0809/pitchside/internal/reservation"
	"github.com/mauv0809/pitchside/internal/stats"
	"github.com/slack-go/slack"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	api := slack.New(token)
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

func (s *Notifier) sendMessage(message slack.Message, dryRun bool) (string, string, error) {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-channel", "dry-run-ts", nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)
	if err != nil {
		s.metrics.IncSlackNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", s.channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncSlackNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

func (s *Notifier) SendStatusChange(event pubsub.StatusChangedEvent, dryRun bool) error {
	_, _, err := s.sendMessage(s.formatStatusChange(event), dryRun)
	return err
}

func (s *Notifier) SendSlotOpened(event pubsub.SlotOpenedEvent, dryRun bool) error {
	_, _, err := s.sendMessage(s.formatSlotOpened(event), dryRun)
	return err
}

func (s *Notifier) SendGameDetails(r reservation.Reservation, dryRun bool) error {
	_, _, err := s.sendMessage(s.formatGameDetails(r), dryRun)
	return err
}

func (s *Notifier) SendLeaderboard(board []stats.UserStats, dryRun bool) error {
	_, _, err := s.sendMessage(s.formatLeaderboard(board), dryRun)
	return err
}

func plain(text string) *slack.TextBlockObject {
	return slack.NewTextBlockObject("plain_text", text, true, false)
}

func section(text string) *slack.SectionBlock {
	return slack.NewSectionBlock(plain(text), nil, nil)
}

func when(date, start string) string {
	if start == "" {
		return date
	}
	return fmt.Sprintf("%s at %s", date, start)
}

// formatStatusChange creates the message for a reservation that completed or was cancelled.
func (s *Notifier) formatStatusChange(event pubsub.StatusChangedEvent) slack.Message {
	var header string
	switch reservation.Status(event.To) {
	case reservation.StatusCompleted:
		header = "⚽ Game finished! ⚽"
	case reservation.StatusCancelled:
		header = "❌ Game cancelled"
	default:
		header = "Game updated"
	}
	details := fmt.Sprintf("%s\n%s\nStatus: %s → %s", event.Title, when(event.Date, event.StartTime), event.From, event.To)
	return slack.NewBlockMessage(slack.NewHeaderBlock(plain(header)), section(details))
}

// formatSlotOpened tells the waiting list a spot is free.
func (s *Notifier) formatSlotOpened(event pubsub.SlotOpenedEvent) slack.Message {
	blocks := []slack.Block{
		slack.NewHeaderBlock(plain("🟢 A spot opened up!")),
		section(fmt.Sprintf("%s\n%s\nOpen slots: %d", event.Title, when(event.Date, event.StartTime), event.OpenSlots)),
	}
	if len(event.WaitList) > 0 {
		mentions := make([]string, 0, len(event.WaitList))
		for _, userID := range event.WaitList {
			mentions = append(mentions, "• "+userID)
		}
		blocks = append(blocks, slack.NewContextBlock("", plain("Waiting:\n"+strings.Join(mentions, "\n"))))
	}
	return slack.NewBlockMessage(blocks...)
}

// formatGameDetails creates the message for a single reservation.
func (s *Notifier) formatGameDetails(r reservation.Reservation) slack.Message {
	blocks := []slack.Block{
		slack.NewHeaderBlock(plain("⚽ " + r.Title)),
		section(fmt.Sprintf("Pitch: %s\nTime: %s (%d min)\nPlayers: %d/%d\nPrice: %.2f",
			r.Pitch.Name, when(r.Date, r.StartTime), r.Duration, r.PlayersJoined, r.MaxPlayers, r.Price)),
	}

	var names []string
	for _, p := range r.Lineup {
		if p.Name != "" {
			names = append(names, "• "+p.Name)
		}
	}
	if len(names) > 0 {
		blocks = append(blocks, section("Lineup:\n"+strings.Join(names, "\n")))
	}

	if r.Summary != nil && r.Summary.Score != nil {
		blocks = append(blocks, section(fmt.Sprintf("Result: %d - %d", r.Summary.Score.Home, r.Summary.Score.Away)))
	} else if r.Summary != nil && r.Summary.Text != "" {
		blocks = append(blocks, section(r.Summary.Text))
	}

	if len(r.WaitList) > 0 {
		blocks = append(blocks, slack.NewContextBlock("", plain(fmt.Sprintf("%d on the waiting list", len(r.WaitList)))))
	}
	return slack.NewBlockMessage(blocks...)
}

// formatLeaderboard creates a Slack message to display the player leaderboard.
func (s *Notifier) formatLeaderboard(board []stats.UserStats) slack.Message {
	blocks := []slack.Block{slack.NewHeaderBlock(plain("🏆 Leaderboard 🏆"))}

	if len(board) == 0 {
		blocks = append(blocks, section("No stats available yet. Go play some games!"))
		return slack.NewBlockMessage(blocks...)
	}

	for i, stat := range board {
		rank := i + 1
		var medal string
		switch rank {
		case 1:
			medal = "🥇"
		case 2:
			medal = "🥈"
		case 3:
			medal = "🥉"
		}
		name := stat.PlayerName
		if name == "" {
			name = reservation.FallbackName(stat.UserID)
		}
		text := fmt.Sprintf("%d. %s %s\n> Win %%: %.2f%% (%d/%d) | Goals: %d | Assists: %d | MVPs: %d",
			rank,
			medal,
			name,
			stat.WinPercentage,
			stat.Wins,
			stat.Matches,
			stat.Goals,
			stat.Assists,
			stat.MVPs,
		)
		blocks = append(blocks, section(text))
	}
	return slack.NewBlockMessage(blocks...)
}
