package line

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWebhook_TextMessage(t *testing.T) {
	body := []byte(`{
		"destination": "xxx",
		"events": [
			{
				"type": "message",
				"replyToken": "reply-token-1",
				"source": {"type": "user", "userId": "U1234567890"},
				"message": {"id": "m1", "type": "text", "text": "你好"},
				"timestamp": 1700000000000
			}
		]
	}`)

	events, err := ParseWebhook(body)
	require.NoError(t, err)
	require.Len(t, events, 1)

	msg, ok := events[0].(TextMessageEvent)
	require.True(t, ok)
	assert.Equal(t, "U1234567890", msg.UserID)
	assert.Equal(t, "reply-token-1", msg.ReplyToken)
	assert.Equal(t, "你好", msg.Text)
}

func TestParseWebhook_Follow(t *testing.T) {
	body := []byte(`{
		"destination": "xxx",
		"events": [
			{
				"type": "follow",
				"replyToken": "reply-token-2",
				"source": {"type": "user", "userId": "U-new-user"}
			}
		]
	}`)

	events, err := ParseWebhook(body)
	require.NoError(t, err)
	require.Len(t, events, 1)

	follow, ok := events[0].(FollowEvent)
	require.True(t, ok)
	assert.Equal(t, "U-new-user", follow.UserID)
}

func TestParseWebhook_IgnoresOtherKinds(t *testing.T) {
	body := []byte(`{
		"destination": "xxx",
		"events": [
			{"type": "unfollow", "source": {"type": "user", "userId": "U1"}},
			{
				"type": "message",
				"replyToken": "rt",
				"source": {"type": "user", "userId": "U1"},
				"message": {"id": "m2", "type": "sticker"}
			},
			{
				"type": "message",
				"replyToken": "rt2",
				"source": {"type": "group", "userId": ""},
				"message": {"id": "m3", "type": "text", "text": "hi"}
			}
		]
	}`)

	events, err := ParseWebhook(body)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestParseWebhook_MalformedBody(t *testing.T) {
	_, err := ParseWebhook([]byte(`{not json`))
	assert.Error(t, err)

	_, err = ParseWebhook(nil)
	assert.Error(t, err)
}
