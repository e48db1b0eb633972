package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"

	"github.com/reserve-se/reserve-se/internal/config"
	"github.com/reserve-se/reserve-se/internal/models"
)

// Publisher emits booking lifecycle events to NATS. Channel managers and
// notification workers subscribe to booking.<tenant-slug>.*.
type Publisher struct {
	conn *nats.Conn
}

// NewPublisher connects to NATS
func NewPublisher(cfg *config.NATSConfig) (*Publisher, error) {
	opts := []nats.Option{
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectInterval),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			log.Warn().Err(err).Msg("NATS disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info().Str("url", nc.ConnectedUrl()).Msg("NATS reconnected")
		}),
	}
	if cfg.Username != "" {
		opts = append(opts, nats.UserInfo(cfg.Username, cfg.Password))
	}

	conn, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}

	log.Info().Str("url", cfg.URL).Msg("Connected to NATS")
	return &Publisher{conn: conn}, nil
}

// BookingEvent is the wire payload of booking lifecycle events.
type BookingEvent struct {
	BookingID  string    `json:"booking_id"`
	TenantID   string    `json:"tenant_id"`
	Locator    string    `json:"locator"`
	Status     string    `json:"status"`
	Checkin    string    `json:"checkin"`
	Checkout   string    `json:"checkout"`
	Guests     int       `json:"guests"`
	TotalCents int       `json:"total_cents"`
	Currency   string    `json:"currency"`
	OccurredAt time.Time `json:"occurred_at"`
}

// BookingConfirmed publishes a booking.<slug>.confirmed event
func (p *Publisher) BookingConfirmed(tenantSlug string, booking *models.Booking) {
	p.publish(fmt.Sprintf("booking.%s.confirmed", tenantSlug), booking)
}

// BookingCancelled publishes a booking.<slug>.cancelled event
func (p *Publisher) BookingCancelled(tenantSlug string, booking *models.Booking) {
	p.publish(fmt.Sprintf("booking.%s.cancelled", tenantSlug), booking)
}

func (p *Publisher) publish(subject string, booking *models.Booking) {
	event := BookingEvent{
		BookingID:  booking.ID.String(),
		TenantID:   booking.TenantID.String(),
		Locator:    booking.Locator,
		Status:     string(booking.Status),
		Checkin:    booking.Checkin.Format(models.DateOnly),
		Checkout:   booking.Checkout.Format(models.DateOnly),
		Guests:     booking.Guests,
		TotalCents: booking.TotalCents,
		Currency:   booking.Currency,
		OccurredAt: time.Now().UTC(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Str("subject", subject).Msg("Failed to marshal booking event")
		return
	}

	if err := p.conn.Publish(subject, data); err != nil {
		log.Error().Err(err).Str("subject", subject).Msg("Failed to publish booking event")
		return
	}

	log.Debug().Str("subject", subject).Str("locator", booking.Locator).Msg("Published booking event")
}

// Close drains and closes the NATS connection
func (p *Publisher) Close() {
	if p.conn != nil {
		p.conn.Drain()
		p.conn.Close()
	}
}
