package memory

import (
	"context"

	"github.com/scms-platform/identity-service/internal/application/identity"
)

// NoopPublisher drops events. Installed when no message broker is configured.
type NoopPublisher struct{}

func NewNoopPublisher() *NoopPublisher { return &NoopPublisher{} }

func (NoopPublisher) PublishUserRegistered(ctx context.Context, evt identity.UserRegisteredEvent) error {
	return nil
}
