package alerts

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/playmaker-live/playmaker/internal/cache"
	"github.com/playmaker-live/playmaker/internal/log"
	"github.com/playmaker-live/playmaker/internal/notify"
	"github.com/playmaker-live/playmaker/pkg/apperr"
	"github.com/playmaker-live/playmaker/pkg/models"
)

// Subscription is a phone number watching live games. An empty GameID
// means every game. Subscriptions are in-memory and best-effort; they
// do not survive a restart.
type Subscription struct {
	Phone  string `json:"phone"`
	GameID string `json:"game_id,omitempty"`
}

// Manager turns broadcast diffs into SMS alerts, deduplicating by
// game-state transition so one transition alerts each subscriber once.
type Manager struct {
	sender notify.MessageSender
	dedup  *cache.Deduplicator

	mu   sync.RWMutex
	subs []Subscription
}

// NewManager creates an alert manager
func NewManager(sender notify.MessageSender, dedup *cache.Deduplicator) *Manager {
	return &Manager{
		sender: sender,
		dedup:  dedup,
	}
}

// Subscribe registers a phone number for alerts
func (m *Manager) Subscribe(phone, gameID string) error {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return fmt.Errorf("phone number required: %w", apperr.ErrValidation)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, s := range m.subs {
		if s.Phone == phone && s.GameID == gameID {
			return nil
		}
	}
	m.subs = append(m.subs, Subscription{Phone: phone, GameID: gameID})
	return nil
}

// SubscriberCount returns the number of active subscriptions
func (m *Manager) SubscriberCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.subs)
}

// Run consumes stream events until the subscriber channel closes or
// the context is cancelled.
func (m *Manager) Run(ctx context.Context, events <-chan models.StreamEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			if ev.Type == models.EventUpdate {
				m.handleUpdate(ctx, ev)
			}
		}
	}
}

// handleUpdate sends one SMS per subscriber per meaningful change
func (m *Manager) handleUpdate(ctx context.Context, ev models.StreamEvent) {
	m.mu.RLock()
	subs := make([]Subscription, len(m.subs))
	copy(subs, m.subs)
	m.mu.RUnlock()

	if len(subs) == 0 {
		return
	}

	gamesByID := make(map[string]models.GameSnapshot, len(ev.Games))
	for _, g := range ev.Games {
		gamesByID[g.GameID] = g
	}

	for _, d := range ev.Changes {
		if !d.ScoreChanged && !d.StatusChanged {
			continue
		}

		game, ok := gamesByID[d.GameID]
		if !ok {
			continue
		}

		body := formatAlert(game, d)

		for _, sub := range subs {
			if sub.GameID != "" && sub.GameID != d.GameID {
				continue
			}

			fresh, err := m.dedup.FirstSeen(ctx, sub.Phone, d.GameID, transitionKey(game))
			if err != nil {
				log.Warn("alert dedup check failed", zap.Error(err))
			}
			if !fresh {
				continue
			}

			if err := m.sender.SendSMS(ctx, sub.Phone, body); err != nil {
				log.Warn("alert send failed",
					zap.String("game_id", d.GameID),
					zap.Error(err))
			}
		}
	}
}

// transitionKey identifies one observable game state for dedup
func transitionKey(g models.GameSnapshot) string {
	return fmt.Sprintf("%s|%d-%d|%d", g.Status, g.HomeTeam.Score, g.AwayTeam.Score, g.Period)
}

// formatAlert renders a short SMS body for a game change
func formatAlert(g models.GameSnapshot, d models.GameDiff) string {
	line := fmt.Sprintf("%s %d - %s %d", g.AwayTeam.Abbr, g.AwayTeam.Score, g.HomeTeam.Abbr, g.HomeTeam.Score)

	switch {
	case d.StatusChanged && g.Status == models.StatusFinal:
		return fmt.Sprintf("Final: %s", line)
	case d.StatusChanged && g.Status == models.StatusHalftime:
		return fmt.Sprintf("Halftime: %s", line)
	case d.StatusChanged && g.Status == models.StatusLive:
		return fmt.Sprintf("Tip-off: %s", line)
	default:
		if g.PeriodLabel != "" {
			return fmt.Sprintf("%s (%s %s)", line, g.PeriodLabel, g.Clock)
		}
		return line
	}
}
