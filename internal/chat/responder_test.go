package chat

import (
	"context"
	"errors"
	"testing"
	"time"

	"lume-api/internal/common"
	"lume-api/internal/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// fakeLLMProvider records the prompts it receives and returns a canned reply
type fakeLLMProvider struct {
	reply        string
	err          error
	systemPrompt string
	userPrompt   string
	calls        int
}

func (f *fakeLLMProvider) Complete(_ context.Context, systemPrompt, userPrompt string) (string, error) {
	f.calls++
	f.systemPrompt = systemPrompt
	f.userPrompt = userPrompt
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func TestResponderBuildsPromptFromHistoryAndProfile(t *testing.T) {
	repo := user.NewMockRepository()
	provider := &fakeLLMProvider{reply: "今天也辛苦了。"}
	clock := common.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	r := newResponder(repo, provider, clock, 10, zaptest.NewLogger(t))

	userID := common.UserID("U1234")
	require.NoError(t, repo.EnsureUser(userID))
	require.NoError(t, repo.AppendMessage(userID, common.SenderUser, "我最近睡不好", common.EmotionNegative))
	require.NoError(t, repo.AppendMessage(userID, common.SenderBot, "聽起來很辛苦，想多聊聊嗎？", ""))

	name := "Alice"
	birth := time.Date(1990, 3, 15, 0, 0, 0, 0, time.UTC)
	interests := "reading"
	mood := "tired"
	require.NoError(t, repo.UpsertProfile(userID, user.ProfileUpdate{
		Name:      &name,
		BirthDate: &birth,
		Interests: &interests,
		Mood:      &mood,
	}))

	reply := r.respond(context.Background(), userID, "有什麼建議嗎？")

	assert.Equal(t, "今天也辛苦了。", reply)
	assert.Equal(t, personaPrompt, provider.systemPrompt)
	assert.Contains(t, provider.userPrompt, "User: 我最近睡不好")
	assert.Contains(t, provider.userPrompt, "Lume: 聽起來很辛苦，想多聊聊嗎？")
	assert.Contains(t, provider.userPrompt, "【用戶資訊】")
	assert.Contains(t, provider.userPrompt, "姓名: Alice")
	assert.Contains(t, provider.userPrompt, "年齡: 35")
	assert.Contains(t, provider.userPrompt, "興趣: reading")
	assert.Contains(t, provider.userPrompt, "【用戶問題】有什麼建議嗎？")
	assert.NotContains(t, provider.userPrompt, emptyHistoryText)
}

func TestResponderWithEmptyHistoryAndNoProfile(t *testing.T) {
	repo := user.NewMockRepository()
	provider := &fakeLLMProvider{reply: "你好，我是路梅。"}
	r := newResponder(repo, provider, common.NewRealClock(), 10, zaptest.NewLogger(t))

	userID := common.UserID("U1234")
	require.NoError(t, repo.EnsureUser(userID))

	reply := r.respond(context.Background(), userID, "你好")

	assert.Equal(t, "你好，我是路梅。", reply)
	assert.Contains(t, provider.userPrompt, emptyHistoryText)
	assert.Contains(t, provider.userPrompt, placeholderNoProfile)
}

func TestResponderOmitsAgeWithoutBirthDate(t *testing.T) {
	repo := user.NewMockRepository()
	provider := &fakeLLMProvider{reply: "好的。"}
	r := newResponder(repo, provider, common.NewRealClock(), 10, zaptest.NewLogger(t))

	userID := common.UserID("U1234")
	name := "Alice"
	require.NoError(t, repo.UpsertProfile(userID, user.ProfileUpdate{Name: &name}))

	r.respond(context.Background(), userID, "你好")

	assert.Contains(t, provider.userPrompt, "姓名: Alice")
	assert.NotContains(t, provider.userPrompt, "年齡")
	assert.Contains(t, provider.userPrompt, "興趣: "+placeholderUnfilled)
}

func TestResponderRepliesWithApologyOnProviderFailure(t *testing.T) {
	repo := user.NewMockRepository()
	provider := &fakeLLMProvider{err: errors.New("completion failed")}
	r := newResponder(repo, provider, common.NewRealClock(), 10, zaptest.NewLogger(t))

	userID := common.UserID("U1234")
	require.NoError(t, repo.EnsureUser(userID))

	reply := r.respond(context.Background(), userID, "你好")

	assert.Equal(t, apologyText, reply)
	assert.Equal(t, 1, provider.calls)
}
