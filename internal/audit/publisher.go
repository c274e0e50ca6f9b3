package audit

import (
	"context"
	"errors"
	"time"

	gcppubsub "cloud.google.com/go/pubsub/v2"
	"github.com/angelmondragon/ooh-agent-backend/pkg/db/models"
)

const defaultPublishTimeout = 5 * time.Second

// Publisher fans recorded entries out to downstream consumers.
type Publisher interface {
	Publish(ctx context.Context, entry models.AuditLog) error
}

type topicPublisher interface {
	Publish(context.Context, *gcppubsub.Message) publishResult
}

type publishResult interface {
	Get(context.Context) (string, error)
}

// NewPubSubPublisher wraps a Pub/Sub topic publisher. A nil publisher yields nil.
func NewPubSubPublisher(p *gcppubsub.Publisher) Publisher {
	if p == nil {
		return nil
	}
	return &pubsubPublisher{topic: &gcpPublisher{Publisher: p}}
}

type pubsubPublisher struct {
	topic topicPublisher
}

func (p *pubsubPublisher) Publish(ctx context.Context, entry models.AuditLog) error {
	data, err := envelopeFor(entry)
	if err != nil {
		return err
	}
	msg := &gcppubsub.Message{
		Data: data,
		Attributes: map[string]string{
			"event_id":    entry.ID.String(),
			"event_type":  string(entry.EventType),
			"occurred_at": entry.OccurredAt.UTC().Format(time.RFC3339Nano),
		},
	}

	publishCtx, cancel := context.WithTimeout(ctx, defaultPublishTimeout)
	defer cancel()
	result := p.topic.Publish(publishCtx, msg)
	if result == nil {
		return errors.New("publisher returned nil result")
	}
	_, err = result.Get(publishCtx)
	return err
}

type gcpPublisher struct {
	*gcppubsub.Publisher
}

func (p *gcpPublisher) Publish(ctx context.Context, msg *gcppubsub.Message) publishResult {
	if p == nil || p.Publisher == nil {
		return nil
	}
	return &gcpPublishResult{PublishResult: p.Publisher.Publish(ctx, msg)}
}

type gcpPublishResult struct {
	*gcppubsub.PublishResult
}

func (r *gcpPublishResult) Get(ctx context.Context) (string, error) {
	if r == nil || r.PublishResult == nil {
		return "", errors.New("publish result is nil")
	}
	return r.PublishResult.Get(ctx)
}
