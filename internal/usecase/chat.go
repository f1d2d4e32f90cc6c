package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"agency-chatbot/internal/domain"
	"agency-chatbot/internal/knowledge"
	"agency-chatbot/internal/pacing"
	"agency-chatbot/internal/repository"
	"agency-chatbot/internal/triage"
)

const (
	defaultMaxHistory    = 50
	defaultMaxMessageLen = 500
	defaultMaxTurns      = 25

	knowledgeBaseParam  = "/knowledge_base"
	whatsAppNumberParam = "/contact/whatsapp_number"
	emailParam          = "/contact/email"
)

type ParamGetter interface {
	GetParameter(ctx context.Context, name string) (string, error)
	GetParameters(ctx context.Context, names ...string) (map[string]string, []string, error)
}

type StateReadWriter interface {
	GetConversationTurnCount(ctx context.Context, conversationID string) (int, error)
	GetHistory(ctx context.Context, conversationID string, limit int) ([]domain.Message, error)
	SaveExchange(ctx context.Context, user, bot domain.Message, turns int) error
}

// ChatService answers visitor messages with the triage engine and keeps
// the conversation log.
type ChatService struct {
	params        ParamGetter
	state         StateReadWriter
	paramPrefix   string
	maxHistory    int
	maxMessageLen int
	maxTurns      int

	cacheMu     sync.RWMutex
	cacheLoaded bool
	engine      *triage.Engine
}

type SendInput struct {
	Message        string
	ConversationID string
}

type SendOutput struct {
	ConversationID string
	Message        domain.Message
	TypingDelay    time.Duration
}

func NewChatService(p ParamGetter, s StateReadWriter, paramPrefix string, maxHistory, maxMessageLen, maxTurns int) (*ChatService, error) {
	if p == nil {
		return nil, errors.New("usecase: param getter must not be nil")
	}
	if s == nil {
		return nil, errors.New("usecase: state store must not be nil")
	}
	paramPrefix = strings.TrimRight(strings.TrimSpace(paramPrefix), "/")
	if paramPrefix == "" {
		return nil, errors.New("usecase: parameter prefix must not be empty")
	}
	if maxHistory <= 0 {
		maxHistory = defaultMaxHistory
	}
	if maxMessageLen <= 0 {
		maxMessageLen = defaultMaxMessageLen
	}
	if maxTurns <= 0 {
		maxTurns = defaultMaxTurns
	}
	return &ChatService{
		params:        p,
		state:         s,
		paramPrefix:   paramPrefix,
		maxHistory:    maxHistory,
		maxMessageLen: maxMessageLen,
		maxTurns:      maxTurns,
	}, nil
}

// Send classifies one visitor message, persists it together with the bot
// reply and returns the reply.
func (s *ChatService) Send(ctx context.Context, in SendInput) (SendOutput, error) {
	text := strings.TrimSpace(in.Message)
	if text == "" {
		return SendOutput{}, newError(ErrorInvalidInput, "empty_message", nil)
	}
	if utf8.RuneCountInString(text) > s.maxMessageLen {
		return SendOutput{}, newError(ErrorInvalidInput, "message_too_long", nil)
	}

	convID := strings.TrimSpace(in.ConversationID)
	existingTurns := 0
	if convID != "" {
		if err := validateConversationID(convID); err != nil {
			return SendOutput{}, err
		}
		turns, err := s.state.GetConversationTurnCount(ctx, convID)
		if err != nil {
			return SendOutput{}, newError(ErrorInternal, "dynamodb_turn_count_error", err)
		}
		if turns >= s.maxTurns {
			return SendOutput{}, newError(ErrorInvalidInput, "conversation_turn_limit", nil)
		}
		existingTurns = turns
	} else {
		convID = newUUID()
	}

	engine, err := s.ensureKnowledge(ctx)
	if err != nil {
		return SendOutput{}, newError(ErrorInternal, "ssm_load_error", err)
	}

	intent, resp := engine.Reply(text)
	ts := now().UTC()
	user := domain.Message{
		ID:             newUUID(),
		ConversationID: convID,
		Text:           text,
		Sender:         domain.SenderUser,
		Timestamp:      ts,
	}
	bot := domain.Message{
		ID:             newUUID(),
		ConversationID: convID,
		Text:           resp.Text,
		Sender:         domain.SenderBot,
		Intent:         intent.String(),
		Timestamp:      ts,
		Action:         resp.Action,
	}

	if err := s.state.SaveExchange(ctx, user, bot, existingTurns+1); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return SendOutput{}, newError(ErrorInternal, "conversation_conflict", err)
		}
		return SendOutput{}, newError(ErrorInternal, "dynamodb_write_error", err)
	}

	return SendOutput{
		ConversationID: convID,
		Message:        bot,
		TypingDelay:    pacing.Delay(bot.Text),
	}, nil
}

// History returns the most recent messages of a conversation in order.
func (s *ChatService) History(ctx context.Context, conversationID string) ([]domain.Message, error) {
	convID := strings.TrimSpace(conversationID)
	if convID == "" {
		return nil, newError(ErrorInvalidInput, "missing_conversation_id", nil)
	}
	if err := validateConversationID(convID); err != nil {
		return nil, err
	}
	msgs, err := s.state.GetHistory(ctx, convID, s.maxHistory)
	if err != nil {
		return nil, newError(ErrorInternal, "dynamodb_history_error", err)
	}
	if len(msgs) == 0 {
		return nil, newError(ErrorNotFound, "conversation_not_found", nil)
	}
	return msgs, nil
}

func (s *ChatService) ensureKnowledge(ctx context.Context) (*triage.Engine, error) {
	s.cacheMu.RLock()
	if s.cacheLoaded {
		e := s.engine
		s.cacheMu.RUnlock()
		return e, nil
	}
	s.cacheMu.RUnlock()

	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	if s.cacheLoaded {
		return s.engine, nil
	}

	kb, err := s.loadKnowledge(ctx)
	if err != nil {
		return nil, err
	}
	s.engine = triage.NewEngine(kb)
	s.cacheLoaded = true
	return s.engine, nil
}

func (s *ChatService) loadKnowledge(ctx context.Context) (*domain.KnowledgeBase, error) {
	kb, err := knowledge.Load(ctx, s.params, s.paramPrefix+knowledgeBaseParam)
	if err != nil {
		return nil, fmt.Errorf("usecase: load knowledge base: %w", err)
	}

	// Contact overrides are optional; missing names come back as invalid.
	waName := s.paramPrefix + whatsAppNumberParam
	emailName := s.paramPrefix + emailParam
	vals, _, err := s.params.GetParameters(ctx, waName, emailName)
	if err != nil {
		return nil, fmt.Errorf("usecase: load contact overrides: %w", err)
	}
	return knowledge.WithContact(kb, domain.Contact{
		WhatsAppNumber: vals[waName],
		Email:          vals[emailName],
	}), nil
}

func validateConversationID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return newError(ErrorInvalidInput, "invalid_conversation_id", err)
	}
	return nil
}

var newUUID = func() string {
	return uuid.NewString()
}

var now = time.Now
