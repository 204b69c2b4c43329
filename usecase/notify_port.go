package usecase

import (
	"context"

	"github.com/taskmaster/backend/domain"
)

// Notifier abstracts the outbound notification channel so use cases stay
// transport-agnostic. Implementations must not block on delivery; enqueueing
// is the only synchronous part.
type Notifier interface {
	WelcomeUser(ctx context.Context, user *domain.User) error
}
