package services

import (
	"context"

	"github.com/taskmaster/backend/domain"
	"github.com/taskmaster/backend/internal/infrastructure/outbox"
	"github.com/taskmaster/backend/usecase"
)

// OutboxNotifier satisfies the use-case Notifier port by enqueueing into the
// durable outbox. Enqueue is the only synchronous step; delivery happens in
// the mail processor.
type OutboxNotifier struct {
	store *outbox.Store
}

func NewOutboxNotifier(store *outbox.Store) *OutboxNotifier {
	return &OutboxNotifier{store: store}
}

func (n *OutboxNotifier) WelcomeUser(_ context.Context, user *domain.User) error {
	if n.store == nil || user == nil {
		return domain.ErrInvalidPayload
	}
	if user.Email == "" {
		// Nothing to deliver; registration proceeds regardless.
		return nil
	}
	return n.store.Enqueue(outbox.Message{
		Kind:      outbox.KindWelcome,
		Recipient: user.Email,
		Username:  user.Username,
	})
}

var _ usecase.Notifier = (*OutboxNotifier)(nil)
