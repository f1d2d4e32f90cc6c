package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"agency-chatbot/internal/domain"
)

const (
	skPrefixMsg = "MSG#"
	skMeta      = "META#"
	ttlDuration = 7 * 24 * time.Hour

	// Fixed-width so sort keys order lexically by time. RFC3339Nano drops
	// trailing zeros, which would sort "05Z" after "05.1Z".
	sortableNano = "2006-01-02T15:04:05.000000000Z07:00"
)

// ErrConflict is returned by SaveTurn when another writer advanced the
// conversation first.
var ErrConflict = errors.New("repository: conversation was modified concurrently")

// dynamodbAPI is the minimal DynamoDB interface required by Client.
type dynamodbAPI interface {
	GetItem(ctx context.Context, in *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	Query(ctx context.Context, in *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	TransactWriteItems(ctx context.Context, in *dynamodb.TransactWriteItemsInput, optFns ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error)
}

// ReadWriter defines the conversation log operations consumed by the chat use case.
type ReadWriter interface {
	GetConversationTurnCount(ctx context.Context, conversationID string) (int, error)
	GetHistory(ctx context.Context, conversationID string, limit int) ([]domain.Message, error)
	SaveTurn(ctx context.Context, user, bot domain.MessageRecord, meta domain.ConversationMeta) error
	SaveExchange(ctx context.Context, user, bot domain.Message, turns int) error
}

// Client wraps a DynamoDB table holding conversation logs.
type Client struct {
	api       dynamodbAPI
	tableName string
}

// New creates a new repository Client.
func New(api dynamodbAPI, tableName string) (*Client, error) {
	if api == nil {
		return nil, errors.New("repository: api must not be nil")
	}
	if strings.TrimSpace(tableName) == "" {
		return nil, errors.New("repository: table name must not be empty")
	}
	return &Client{api: api, tableName: tableName}, nil
}

func convPK(conversationID string) string {
	return "CONV#" + conversationID
}

// msgSK orders messages by timestamp, then by seq for messages written in
// the same instant.
func msgSK(ts time.Time, seq int) string {
	return fmt.Sprintf("%s%s#%02d", skPrefixMsg, ts.UTC().Format(sortableNano), seq)
}

func ttlValue(now time.Time) int64 {
	return now.Add(ttlDuration).Unix()
}

// GetHistory returns up to limit of the most recent messages of a
// conversation in chronological order. limit <= 0 means no limit.
func (c *Client) GetHistory(ctx context.Context, conversationID string, limit int) ([]domain.Message, error) {
	in := &dynamodb.QueryInput{
		TableName:              aws.String(c.tableName),
		KeyConditionExpression: aws.String("PK = :pk AND begins_with(SK, :prefix)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk":     &types.AttributeValueMemberS{Value: convPK(conversationID)},
			":prefix": &types.AttributeValueMemberS{Value: skPrefixMsg},
		},
		// Newest first so the limit keeps the latest messages.
		ScanIndexForward: aws.Bool(false),
	}
	if limit > 0 {
		in.Limit = aws.Int32(int32(limit))
	}

	out, err := c.api.Query(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("repository: GetHistory query: %w", err)
	}
	if out == nil {
		return nil, nil
	}

	msgs := make([]domain.Message, 0, len(out.Items))
	for _, item := range out.Items {
		msg, err := itemToMessage(item)
		if err != nil {
			return nil, fmt.Errorf("repository: GetHistory unmarshal: %w", err)
		}
		msgs = append(msgs, msg)
	}
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
	return msgs, nil
}

// GetConversationTurnCount returns the persisted turn count for a conversation.
func (c *Client) GetConversationTurnCount(ctx context.Context, conversationID string) (int, error) {
	out, err := c.api.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(c.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: convPK(conversationID)},
			"SK": &types.AttributeValueMemberS{Value: skMeta},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return 0, fmt.Errorf("repository: GetConversationTurnCount get item: %w", err)
	}
	if out == nil || len(out.Item) == 0 {
		return 0, nil
	}

	turns, err := intAttr(out.Item, "turns")
	if err != nil {
		return 0, fmt.Errorf("repository: GetConversationTurnCount decode turns: %w", err)
	}
	return turns, nil
}

// SaveTurn writes the user message, the bot reply and the updated metadata
// in one transaction. The meta put only succeeds if it advances the turn
// count, so two concurrent writers cannot both record the same turn.
func (c *Client) SaveTurn(ctx context.Context, user, bot domain.MessageRecord, meta domain.ConversationMeta) error {
	if user.PK == "" || user.SK == "" {
		return errors.New("repository: SaveTurn: user message PK and SK are required")
	}
	if bot.PK == "" || bot.SK == "" {
		return errors.New("repository: SaveTurn: bot message PK and SK are required")
	}
	if meta.PK == "" || meta.SK == "" {
		return errors.New("repository: SaveTurn: meta PK and SK are required")
	}

	_, err := c.api.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Put: c.newMessagePut(user)},
			{Put: c.newMessagePut(bot)},
			{
				Put: &types.Put{
					TableName:           aws.String(c.tableName),
					Item:                metaItem(meta),
					ConditionExpression: aws.String("attribute_not_exists(PK) OR turns < :turns"),
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":turns": &types.AttributeValueMemberN{Value: strconv.Itoa(meta.Turns)},
					},
				},
			},
		},
	})
	if err != nil {
		var canceled *types.TransactionCanceledException
		if errors.As(err, &canceled) {
			return fmt.Errorf("repository: SaveTurn: %w: %v", ErrConflict, err)
		}
		return fmt.Errorf("repository: SaveTurn: %w", err)
	}
	return nil
}

// SaveExchange persists a user message and the bot reply to it as turn
// number turns.
func (c *Client) SaveExchange(ctx context.Context, user, bot domain.Message, turns int) error {
	meta := NewConversationMeta(user.ConversationID, turns, bot.Timestamp)
	if err := c.SaveTurn(ctx, NewMessageRecord(user, 0), NewMessageRecord(bot, 1), meta); err != nil {
		return fmt.Errorf("repository: SaveExchange: %w", err)
	}
	return nil
}

func (c *Client) newMessagePut(rec domain.MessageRecord) *types.Put {
	return &types.Put{
		TableName:           aws.String(c.tableName),
		Item:                messageItem(rec),
		ConditionExpression: aws.String("attribute_not_exists(PK) AND attribute_not_exists(SK)"),
	}
}

// NewMessageRecord keys msg under its conversation. seq breaks ties between
// messages sharing a timestamp.
func NewMessageRecord(msg domain.Message, seq int) domain.MessageRecord {
	return domain.MessageRecord{
		PK:      convPK(msg.ConversationID),
		SK:      msgSK(msg.Timestamp, seq),
		Message: msg,
		TTL:     ttlValue(msg.Timestamp),
	}
}

// NewConversationMeta constructs a ConversationMeta record.
func NewConversationMeta(conversationID string, turns int, now time.Time) domain.ConversationMeta {
	return domain.ConversationMeta{
		PK:             convPK(conversationID),
		SK:             skMeta,
		ConversationID: conversationID,
		LastActivity:   now.UTC().Format(time.RFC3339),
		Turns:          turns,
		TTL:            ttlValue(now),
	}
}

func itemToMessage(item map[string]types.AttributeValue) (domain.Message, error) {
	id, err := strAttr(item, "id")
	if err != nil {
		return domain.Message{}, err
	}
	text, err := strAttr(item, "text")
	if err != nil {
		return domain.Message{}, err
	}
	sender, err := strAttr(item, "sender")
	if err != nil {
		return domain.Message{}, err
	}
	rawTS, err := strAttr(item, "timestamp")
	if err != nil {
		return domain.Message{}, err
	}
	ts, err := time.Parse(time.RFC3339Nano, rawTS)
	if err != nil {
		return domain.Message{}, fmt.Errorf("repository: parse timestamp: %w", err)
	}
	conversationID, _ := strAttr(item, "conversationId")
	intent, _ := strAttr(item, "intent") // user messages carry none

	msg := domain.Message{
		ID:             id,
		ConversationID: conversationID,
		Text:           text,
		Sender:         domain.Sender(sender),
		Intent:         intent,
		Timestamp:      ts,
	}
	if av, ok := item["action"].(*types.AttributeValueMemberM); ok {
		kind, _ := strAttr(av.Value, "kind")
		label, _ := strAttr(av.Value, "label")
		url, _ := strAttr(av.Value, "url")
		msg.Action = &domain.Action{Kind: domain.ActionKind(kind), Label: label, URL: url}
	}
	return msg, nil
}

func messageItem(rec domain.MessageRecord) map[string]types.AttributeValue {
	m := rec.Message
	item := map[string]types.AttributeValue{
		"PK":             &types.AttributeValueMemberS{Value: rec.PK},
		"SK":             &types.AttributeValueMemberS{Value: rec.SK},
		"id":             &types.AttributeValueMemberS{Value: m.ID},
		"conversationId": &types.AttributeValueMemberS{Value: m.ConversationID},
		"text":           &types.AttributeValueMemberS{Value: m.Text},
		"sender":         &types.AttributeValueMemberS{Value: string(m.Sender)},
		"timestamp":      &types.AttributeValueMemberS{Value: m.Timestamp.UTC().Format(time.RFC3339Nano)},
		"ttl":            &types.AttributeValueMemberN{Value: strconv.FormatInt(rec.TTL, 10)},
	}
	if m.Intent != "" {
		item["intent"] = &types.AttributeValueMemberS{Value: m.Intent}
	}
	if m.Action != nil {
		item["action"] = &types.AttributeValueMemberM{Value: map[string]types.AttributeValue{
			"kind":  &types.AttributeValueMemberS{Value: string(m.Action.Kind)},
			"label": &types.AttributeValueMemberS{Value: m.Action.Label},
			"url":   &types.AttributeValueMemberS{Value: m.Action.URL},
		}}
	}
	return item
}

func metaItem(meta domain.ConversationMeta) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK":             &types.AttributeValueMemberS{Value: meta.PK},
		"SK":             &types.AttributeValueMemberS{Value: meta.SK},
		"conversationId": &types.AttributeValueMemberS{Value: meta.ConversationID},
		"lastActivity":   &types.AttributeValueMemberS{Value: meta.LastActivity},
		"turns":          &types.AttributeValueMemberN{Value: strconv.Itoa(meta.Turns)},
		"ttl":            &types.AttributeValueMemberN{Value: strconv.FormatInt(meta.TTL, 10)},
	}
}

func strAttr(item map[string]types.AttributeValue, key string) (string, error) {
	v, ok := item[key]
	if !ok {
		return "", fmt.Errorf("repository: missing attribute %q", key)
	}
	s, ok := v.(*types.AttributeValueMemberS)
	if !ok {
		return "", fmt.Errorf("repository: attribute %q is not a string", key)
	}
	return s.Value, nil
}

func intAttr(item map[string]types.AttributeValue, key string) (int, error) {
	v, ok := item[key]
	if !ok {
		return 0, fmt.Errorf("repository: missing attribute %q", key)
	}
	n, ok := v.(*types.AttributeValueMemberN)
	if !ok {
		return 0, fmt.Errorf("repository: attribute %q is not a number", key)
	}
	parsed, err := strconv.Atoi(n.Value)
	if err != nil {
		return 0, fmt.Errorf("repository: parse attribute %q: %w", key, err)
	}
	return parsed, nil
}
