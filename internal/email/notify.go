package email

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	dbgen "github.com/codr1/Fixturely/internal/db/generated"
)

const notificationEmailTimeout = 5 * time.Second

// SendAsync delivers message in the background and stops when ctx is done.
// Handlers pass context.WithoutCancel(r.Context()) so the send outlives the
// request.
func SendAsync(ctx context.Context, sender EmailSender, recipient string, message Message, from string, logger *zerolog.Logger) {
	recipient = strings.TrimSpace(recipient)
	if sender == nil || recipient == "" {
		return
	}
	if message.Empty() {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}

	go func() {
		sendCtx, cancel := context.WithTimeout(ctx, notificationEmailTimeout)
		defer cancel()
		if err := sender.SendFrom(sendCtx, recipient, message.Subject, message.Body, from); err != nil && logger != nil {
			logger.Error().Err(err).Str("recipient", recipient).Msg("Failed to send notification email")
		}
	}()
}

// NotifyUser looks up userID and emails them when they are active.
func NotifyUser(ctx context.Context, q *dbgen.Queries, sender EmailSender, userID int64, message Message, logger *zerolog.Logger) {
	if sender == nil || q == nil {
		return
	}

	user, err := q.GetUserByID(ctx, userID)
	if err != nil {
		if logger != nil {
			logger.Error().Err(err).Int64("user_id", userID).Msg("Failed to load user for notification email")
		}
		return
	}
	if user.Status != "active" {
		return
	}

	SendAsync(ctx, sender, user.Email, message, "", logger)
}
