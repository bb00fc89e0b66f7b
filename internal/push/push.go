package push

import (
	"github.com/google/uuid"
	expo "github.com/oliveroneill/exponent-server-sdk-golang/sdk"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/ruimfonseca/nightowl/internal/models"
)

// expo rejects batches above this size.
const chunkSize = 100

// Message is one push notification addressed to a single device.
type Message struct {
	ID          uuid.UUID
	EventID     uuid.UUID
	EventName   string
	SenderID    uuid.UUID
	ReceiverID  uuid.UUID
	Title       string
	Body        string
	DeviceToken string
}

// Dispatcher is what handlers depend on; delivery failures never reach
// the triggering request.
type Dispatcher interface {
	Notify(msg Message)
}

// Sender is the slice of the expo client the notifier uses.
type Sender interface {
	PublishMultiple(messages []expo.PushMessage) ([]expo.PushResponse, error)
}

type Notifier struct {
	db     *gorm.DB
	sender Sender
	log    zerolog.Logger
}

func NewNotifier(db *gorm.DB, sender Sender, log zerolog.Logger) *Notifier {
	if sender == nil {
		sender = expo.NewPushClient(nil)
	}
	return &Notifier{db: db, sender: sender, log: log}
}

// Notify validates the device token, persists the notification record and
// dispatches the push in the background. An invalid token aborts the whole
// operation; a delivery or persistence failure on one path never blocks
// the other.
func (n *Notifier) Notify(msg Message) {
	token, err := expo.NewExponentPushToken(msg.DeviceToken)
	if err != nil {
		n.log.Warn().Str("token", msg.DeviceToken).Msg("invalid expo push token, skipping notification")
		return
	}

	record := models.Notification{
		ID:         msg.ID,
		EventID:    msg.EventID,
		SenderID:   msg.SenderID,
		ReceiverID: msg.ReceiverID,
		EventName:  msg.EventName,
		Title:      msg.Title,
		Message:    msg.Body,
	}
	if err := n.db.Create(&record).Error; err != nil {
		n.log.Error().Err(err).Str("notification_id", msg.ID.String()).Msg("failed to persist notification")
	}

	go n.send(token, msg)
}

func (n *Notifier) send(token expo.ExponentPushToken, msg Message) {
	messages := []expo.PushMessage{{
		To:       []expo.ExponentPushToken{token},
		Title:    msg.Title,
		Body:     msg.Body,
		Sound:    "default",
		Priority: expo.DefaultPriority,
		Data: map[string]string{
			"id":         msg.ID.String(),
			"eventid":    msg.EventID.String(),
			"eventname":  msg.EventName,
			"senderid":   msg.SenderID.String(),
			"receiverid": msg.ReceiverID.String(),
		},
	}}

	var tickets []expo.PushResponse
	for start := 0; start < len(messages); start += chunkSize {
		end := start + chunkSize
		if end > len(messages) {
			end = len(messages)
		}
		responses, err := n.sender.PublishMultiple(messages[start:end])
		if err != nil {
			n.log.Error().Err(err).Msg("failed to send push notification chunk")
			continue
		}
		tickets = append(tickets, responses...)
	}

	for _, ticket := range tickets {
		if err := ticket.ValidateResponse(); err != nil {
			n.log.Error().Err(err).Msg("push notification rejected by provider")
		}
	}
	n.log.Info().Int("tickets", len(tickets)).Str("notification_id", msg.ID.String()).Msg("push notification dispatched")
}
