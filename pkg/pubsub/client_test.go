package pubsub

import (
	"context"
	"testing"

	"github.com/angelmondragon/ooh-agent-backend/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopicName(t *testing.T) {
	assert.Equal(t, "projects/ooh-project/topics/audit-events", TopicName("ooh-project", "audit-events"))
	assert.Equal(t, "projects/other/topics/x", TopicName("ooh-project", "projects/other/topics/x"))
	assert.Equal(t, "projects/other/topics/x", TopicName("", " projects/other/topics/x "))
	assert.Empty(t, TopicName("ooh-project", "  "))
	assert.Empty(t, TopicName("", "audit-events"))
}

func TestNewClientValidatesConfig(t *testing.T) {
	_, err := NewClient(context.Background(), config.GCPConfig{}, config.PubSubConfig{AuditTopic: "audit"}, nil)
	require.ErrorIs(t, err, errProjectIDRequired)

	_, err = NewClient(context.Background(), config.GCPConfig{ProjectID: "ooh-project"}, config.PubSubConfig{}, nil)
	require.ErrorIs(t, err, errNoTopic)
}

func TestNilClientHandles(t *testing.T) {
	var c *Client
	assert.Nil(t, c.AuditPublisher())
	assert.ErrorIs(t, c.Ping(context.Background()), errNotInitialized)
	assert.NoError(t, c.Close())
}

func TestClientOptions(t *testing.T) {
	assert.Empty(t, clientOptions(config.GCPConfig{}))
	assert.Len(t, clientOptions(config.GCPConfig{ApplicationCredentials: "/secrets/sa.json"}), 1)
}
