package line

// Event is the tagged union of webhook event kinds this service consumes.
// The parser drops every other kind at the boundary, so downstream code
// only ever dispatches on these two variants.
type Event interface {
	isEvent()
}

// FollowEvent is emitted when a user adds the bot as a friend
type FollowEvent struct {
	UserID string
}

func (FollowEvent) isEvent() {}

// TextMessageEvent is emitted when a user sends a text message
type TextMessageEvent struct {
	UserID     string
	ReplyToken string
	Text       string
}

func (TextMessageEvent) isEvent() {}

// Wire types for the webhook payload

type webhookPayload struct {
	Destination string         `json:"destination"`
	Events      []webhookEvent `json:"events"`
}

type webhookEvent struct {
	Type       string          `json:"type"`
	ReplyToken string          `json:"replyToken"`
	Source     webhookSource   `json:"source"`
	Message    *webhookMessage `json:"message"`
	Timestamp  int64           `json:"timestamp"`
}

type webhookSource struct {
	Type   string `json:"type"`
	UserID string `json:"userId"`
}

type webhookMessage struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Text string `json:"text"`
}

// Wire types for outbound sends

type textMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type pushRequest struct {
	To       string        `json:"to"`
	Messages []textMessage `json:"messages"`
}

type replyRequest struct {
	ReplyToken string        `json:"replyToken"`
	Messages   []textMessage `json:"messages"`
}

type apiErrorResponse struct {
	Message string `json:"message"`
}
