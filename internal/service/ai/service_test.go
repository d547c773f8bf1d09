package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flaminghawk1207/mindmirror/backend/internal/config"
	"github.com/flaminghawk1207/mindmirror/backend/internal/logging"
	"github.com/flaminghawk1207/mindmirror/backend/internal/model/chat"
)

type stubModel struct {
	reply *schema.Message
	err   error
	calls int
	input []*schema.Message
}

func (m *stubModel) Generate(_ context.Context, input []*schema.Message, _ ...model.Option) (*schema.Message, error) {
	m.calls++
	m.input = input
	return m.reply, m.err
}

func (m *stubModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	msg, err := m.Generate(ctx, input, opts...)
	if err != nil {
		return nil, err
	}
	return schema.StreamReaderFromArray([]*schema.Message{msg}), nil
}

func newStubService(t *testing.T, stub *stubModel) *Service {
	t.Helper()
	svc, err := NewServiceWithModel(context.Background(), "stub", stub, logging.Discard())
	require.NoError(t, err)
	return svc
}

func TestChatParsesReply(t *testing.T) {
	stub := &stubModel{reply: schema.AssistantMessage("{\"mood\":\"Sad\",\"intensity\":7}\nHello, tell me more.", nil)}
	svc := newStubService(t, stub)

	reply, err := svc.Chat(context.Background(), ChatRequest{Message: "Hi"})
	require.NoError(t, err)

	assert.Equal(t, "Hello, tell me more.", reply.Text)
	require.NotNil(t, reply.Mood)
	assert.Equal(t, "Sad", *reply.Mood)
	require.NotNil(t, reply.Intensity)
	assert.Equal(t, 7.0, *reply.Intensity)

	assert.Equal(t, 1, stub.calls)
	require.Len(t, stub.input, 2)
	assert.Equal(t, "Hi", stub.input[1].Content)
}

func TestChatForwardsHistory(t *testing.T) {
	stub := &stubModel{reply: schema.AssistantMessage("ok", nil)}
	svc := newStubService(t, stub)

	_, err := svc.Chat(context.Background(), ChatRequest{
		Message: "A",
		History: []chat.Turn{{Role: "ai", Text: "Welcome"}, {Role: "user", Text: "A"}},
	})
	require.NoError(t, err)

	require.Len(t, stub.input, 3)
	assert.Equal(t, schema.Assistant, stub.input[1].Role)
	assert.Equal(t, schema.User, stub.input[2].Role)
}

func TestChatRequiresMessage(t *testing.T) {
	stub := &stubModel{}
	svc := newStubService(t, stub)

	_, err := svc.Chat(context.Background(), ChatRequest{})
	assert.ErrorIs(t, err, ErrMessageRequired)
	assert.Zero(t, stub.calls)
}

func TestChatWrapsUpstreamFailure(t *testing.T) {
	cause := errors.New("connection reset")
	svc := newStubService(t, &stubModel{err: cause})

	_, err := svc.Chat(context.Background(), ChatRequest{Message: "Hi"})
	assert.ErrorIs(t, err, ErrUpstream)
	assert.Contains(t, err.Error(), cause.Error())
}

func TestChatEmptyModelOutput(t *testing.T) {
	svc := newStubService(t, &stubModel{reply: schema.AssistantMessage("", nil)})

	reply, err := svc.Chat(context.Background(), ChatRequest{Message: "Hi"})
	require.NoError(t, err)
	assert.Equal(t, chat.Reply{}, reply)
}

func TestNewServiceWithoutCredential(t *testing.T) {
	svc, err := NewService(context.Background(), config.AIConfig{Provider: config.ProviderGemini}, logging.Discard())
	require.NoError(t, err)
	assert.False(t, svc.Configured())

	_, err = svc.Chat(context.Background(), ChatRequest{Message: "hi"})
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "Gemini API key not set.", cfgErr.Message)
}

func TestNewServiceValidatesMessageBeforeCredential(t *testing.T) {
	svc, err := NewService(context.Background(), config.AIConfig{Provider: config.ProviderGemini}, logging.Discard())
	require.NoError(t, err)

	_, err = svc.Chat(context.Background(), ChatRequest{})
	assert.ErrorIs(t, err, ErrMessageRequired)
}

func TestPreviewMatchesAssemble(t *testing.T) {
	svc := newStubService(t, &stubModel{})
	req := ChatRequest{Message: "Hi"}

	assert.Equal(t, Assemble("Hi", nil, chat.MoodSignal{}), svc.Preview(req))
}
