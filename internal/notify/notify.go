// Package notify delivers match events to the front-end out of band.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oggyb/campus-match/internal/domain"
)

// Notifier delivers one MatchFormed event to one of its parties.
type Notifier interface {
	NotifyMatch(ctx context.Context, recipient domain.Member, evt domain.MatchFormed) error
}

// ReportSink receives moderation reports.
type ReportSink interface {
	Report(ctx context.Context, r domain.Report) error
}

// Partner is the profile summary sent with a match.
type Partner struct {
	ExternalID string   `json:"external_id"`
	Name       string   `json:"name"`
	Age        int      `json:"age"`
	Faculty    string   `json:"faculty"`
	Course     string   `json:"course"`
	PhotoRef   string   `json:"photo_ref,omitempty"`
	Interests  []string `json:"interests"`
}

// MatchMessage is the wire payload published per recipient.
type MatchMessage struct {
	Type        string    `json:"type"`
	Recipient   string    `json:"recipient"`
	Partner     Partner   `json:"partner"`
	ContactHint string    `json:"contact_hint"`
	FormedAt    time.Time `json:"formed_at"`
}

const TypeMatchFormed = "match_formed"

// RedisPublisher publishes match messages on a per-recipient channel
// ("<prefix><external id>"). A publish nobody receives counts as failed
// delivery: pub/sub does not keep messages.
type RedisPublisher struct {
	client *redis.Client
	prefix string
	labels func(domain.InterestSet) []string
}

func NewRedisPublisher(client *redis.Client, vocab *domain.Vocabulary) *RedisPublisher {
	return &RedisPublisher{client: client, prefix: "notify:", labels: vocab.LabelsOf}
}

// Channel returns the channel a member's front-end subscribes to.
func (p *RedisPublisher) Channel(externalID string) string {
	return p.prefix + externalID
}

func (p *RedisPublisher) NotifyMatch(ctx context.Context, recipient domain.Member, evt domain.MatchFormed) error {
	partner, hint := evt.Partner(recipient.ID)
	msg := MatchMessage{
		Type:      TypeMatchFormed,
		Recipient: recipient.ExternalID,
		Partner: Partner{
			ExternalID: partner.ExternalID,
			Name:       partner.Name,
			Age:        partner.Age,
			Faculty:    partner.Faculty,
			Course:     partner.Course,
			PhotoRef:   partner.PhotoRef,
			Interests:  p.labels(partner.Interests),
		},
		ContactHint: hint,
		FormedAt:    evt.FormedAt,
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("%w: encode: %v", domain.ErrDeliveryFailed, err)
	}

	receivers, err := p.client.Publish(ctx, p.Channel(recipient.ExternalID), payload).Result()
	if err != nil {
		return fmt.Errorf("%w: publish: %v", domain.ErrDeliveryFailed, err)
	}
	if receivers == 0 {
		return fmt.Errorf("%w: no subscriber for %s", domain.ErrDeliveryFailed, recipient.ExternalID)
	}
	return nil
}

// LogReports acknowledges reports by logging them. There is no moderation
// backend yet.
type LogReports struct {
	Logger *slog.Logger
}

func (l LogReports) Report(ctx context.Context, r domain.Report) error {
	l.Logger.InfoContext(ctx, "member reported",
		"reporter", r.Reporter.ExternalID,
		"target", r.Target.ExternalID,
		"at", r.At,
	)
	return nil
}
