// Package pubsub owns the Google Pub/Sub connection used to fan audit
// entries out to reporting consumers.
package pubsub

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	pubsub "cloud.google.com/go/pubsub/v2"
	"cloud.google.com/go/pubsub/v2/apiv1/pubsubpb"
	"github.com/angelmondragon/ooh-agent-backend/pkg/config"
	"github.com/angelmondragon/ooh-agent-backend/pkg/logger"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var (
	errProjectIDRequired = errors.New("gcp project id is required")
	errNoTopic           = errors.New("pubsub audit topic is required")
	errNotInitialized    = errors.New("pubsub client not initialized")
)

// Audit events arrive one at a time and the caller waits for the server ack,
// so batching only adds latency.
const (
	auditDelayThreshold = 10 * time.Millisecond
	auditCountThreshold = 1
)

type Client struct {
	client     *pubsub.Client
	auditTopic string
	audit      *pubsub.Publisher
}

// TopicName expands a short topic id into its resource name. Full
// "projects/<p>/topics/<t>" names pass through untouched.
func TopicName(projectID, topic string) string {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return ""
	}
	if strings.HasPrefix(topic, "projects/") && strings.Contains(topic, "/topics/") {
		return topic
	}
	projectID = strings.TrimSpace(projectID)
	if projectID == "" {
		return ""
	}
	return fmt.Sprintf("projects/%s/topics/%s", projectID, topic)
}

// NewClient connects to Pub/Sub and fails unless the audit topic exists; the
// service never creates topics itself.
func NewClient(ctx context.Context, gcp config.GCPConfig, cfg config.PubSubConfig, logg *logger.Logger) (*Client, error) {
	if strings.TrimSpace(gcp.ProjectID) == "" {
		return nil, errProjectIDRequired
	}
	topic := TopicName(gcp.ProjectID, cfg.AuditTopic)
	if topic == "" {
		return nil, errNoTopic
	}

	psClient, err := pubsub.NewClient(ctx, gcp.ProjectID, clientOptions(gcp)...)
	if err != nil {
		return nil, fmt.Errorf("creating pubsub client: %w", err)
	}

	c := &Client{client: psClient, auditTopic: topic}
	if err := c.checkTopic(ctx); err != nil {
		_ = psClient.Close()
		return nil, err
	}

	c.audit = psClient.Publisher(topic)
	c.audit.PublishSettings.DelayThreshold = auditDelayThreshold
	c.audit.PublishSettings.CountThreshold = auditCountThreshold

	if logg != nil {
		logg.Info(logg.WithField(ctx, "topic", topic), "pubsub audit publisher ready")
	}
	return c, nil
}

func clientOptions(gcp config.GCPConfig) []option.ClientOption {
	if strings.TrimSpace(gcp.ApplicationCredentials) == "" {
		return nil
	}
	return []option.ClientOption{option.WithCredentialsFile(gcp.ApplicationCredentials)}
}

func (c *Client) checkTopic(ctx context.Context) error {
	_, err := c.client.TopicAdminClient.GetTopic(ctx, &pubsubpb.GetTopicRequest{Topic: c.auditTopic})
	switch {
	case err == nil:
		return nil
	case status.Code(err) == codes.NotFound:
		return fmt.Errorf("audit topic %q does not exist", c.auditTopic)
	default:
		return fmt.Errorf("checking audit topic %q: %w", c.auditTopic, err)
	}
}

// AuditPublisher is shared by every request; it is stopped by Close.
func (c *Client) AuditPublisher() *pubsub.Publisher {
	if c == nil {
		return nil
	}
	return c.audit
}

// Ping backs the readiness probe.
func (c *Client) Ping(ctx context.Context) error {
	if c == nil || c.client == nil {
		return errNotInitialized
	}
	return c.checkTopic(ctx)
}

// Close flushes pending audit messages and releases the connection.
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	if c.audit != nil {
		c.audit.Stop()
	}
	return c.client.Close()
}
