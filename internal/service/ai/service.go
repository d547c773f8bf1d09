package ai

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
	"github.com/sirupsen/logrus"

	"github.com/flaminghawk1207/mindmirror/backend/internal/config"
	"github.com/flaminghawk1207/mindmirror/backend/internal/model/chat"
)

// ChatRequest carries everything needed for one coaching exchange. The
// service keeps no conversation state between calls.
type ChatRequest struct {
	Message string
	History []chat.Turn
	Prior   chat.MoodSignal
}

// Service runs the coaching prompt against the configured chat model.
type Service struct {
	provider  string
	chain     compose.Runnable[[]*schema.Message, *schema.Message]
	configErr *ConfigError
	log       *logrus.Entry
}

// NewService builds the service from configuration. Missing credentials do
// not fail construction; Chat reports them per request instead.
func NewService(ctx context.Context, cfg config.AIConfig, log *logrus.Entry) (*Service, error) {
	if msg := cfg.MissingCredential(); msg != "" {
		log.WithField("provider", cfg.Provider).Warn(msg)
		return &Service{
			provider:  cfg.Provider,
			configErr: &ConfigError{Message: msg},
			log:       log,
		}, nil
	}

	chatModel, err := cfg.NewChatModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}
	return NewServiceWithModel(ctx, cfg.Provider, chatModel, log)
}

// NewServiceWithModel wires an already constructed chat model.
func NewServiceWithModel(ctx context.Context, provider string, chatModel model.BaseChatModel, log *logrus.Entry) (*Service, error) {
	chain := compose.NewChain[[]*schema.Message, *schema.Message]()
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile chat chain: %w", err)
	}

	return &Service{
		provider: provider,
		chain:    runnable,
		log:      log,
	}, nil
}

// Provider names the backing model provider.
func (s *Service) Provider() string {
	return s.provider
}

// Configured reports whether the service holds usable credentials.
func (s *Service) Configured() bool {
	return s.chain != nil
}

// Chat validates the request, calls the model once and interprets the reply.
// Errors are ErrMessageRequired, *ConfigError, or wrap ErrUpstream.
func (s *Service) Chat(ctx context.Context, req ChatRequest) (chat.Reply, error) {
	if req.Message == "" {
		return chat.Reply{}, ErrMessageRequired
	}
	if s.chain == nil {
		return chat.Reply{}, s.configErr
	}

	if !endsWithMessage(req.History, req.Message) {
		s.log.WithField("history_len", len(req.History)).
			Warn("history does not end with the current message; the model will not see it")
	}

	contents := Assemble(req.Message, req.History, req.Prior)

	response, err := s.chain.Invoke(ctx, contents)
	if err != nil {
		return chat.Reply{}, fmt.Errorf("%w: %w", ErrUpstream, err)
	}

	var raw string
	if response != nil {
		raw = response.Content
	}

	reply := ParseReply(raw)
	s.log.WithFields(logrus.Fields{
		"provider":    s.provider,
		"instruction": InstructionVersion,
		"turns":       len(contents),
		"has_mood":    reply.HasMood(),
		"reply_len":   len(reply.Text),
	}).Debug("generated coaching reply")

	return reply, nil
}

// Preview returns the conversation that Chat would submit, without calling
// the model.
func (s *Service) Preview(req ChatRequest) []*schema.Message {
	return Assemble(req.Message, req.History, req.Prior)
}
