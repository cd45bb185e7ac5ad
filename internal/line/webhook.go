package line

import (
	"encoding/json"
	"fmt"
)

// ParseWebhook unmarshals a webhook body into the tagged event union.
// Follow and text-message events from user sources are kept; every other
// event or message kind is silently dropped.
func ParseWebhook(body []byte) ([]Event, error) {
	if len(body) == 0 {
		return nil, fmt.Errorf("empty webhook body")
	}

	var payload webhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal webhook body: %w", err)
	}

	events := make([]Event, 0, len(payload.Events))
	for _, we := range payload.Events {
		if we.Source.Type != "user" || we.Source.UserID == "" {
			continue
		}

		switch we.Type {
		case "follow":
			events = append(events, FollowEvent{UserID: we.Source.UserID})
		case "message":
			if we.Message == nil || we.Message.Type != "text" {
				continue
			}
			events = append(events, TextMessageEvent{
				UserID:     we.Source.UserID,
				ReplyToken: we.ReplyToken,
				Text:       we.Message.Text,
			})
		}
	}

	return events, nil
}
