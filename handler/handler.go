package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"

	"agency-chatbot/internal/domain"
	"agency-chatbot/internal/usecase"
)

const (
	correlationHeader = "X-Correlation-Id"
	chatResource      = "chat"
	conversationParam = "conversationId"
)

type ChatUseCase interface {
	Send(ctx context.Context, in usecase.SendInput) (usecase.SendOutput, error)
	History(ctx context.Context, conversationID string) ([]domain.Message, error)
}

type Handler struct {
	uc     ChatUseCase
	logger *slog.Logger
}

type chatRequest struct {
	Message        string `json:"message"`
	ConversationID string `json:"conversationId"`
}

type chatResponse struct {
	ConversationID string         `json:"conversationId"`
	Message        domain.Message `json:"message"`
	TypingDelayMs  int64          `json:"typingDelayMs"`
}

type historyResponse struct {
	ConversationID string           `json:"conversationId"`
	Messages       []domain.Message `json:"messages"`
}

type errorResponse struct {
	Error  string `json:"error"`
	Reason string `json:"reason,omitempty"`
}

func NewHandler(uc ChatUseCase) (*Handler, error) {
	if uc == nil {
		return nil, errors.New("handler: use case must not be nil")
	}
	return &Handler{uc: uc, logger: slog.Default()}, nil
}

// Handle serves POST /chat and GET /chat/{conversationId} behind API Gateway.
func (h *Handler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	cid := correlationID(req.Headers)
	log := h.logger.With("correlationId", cid, "method", req.HTTPMethod, "path", req.Path)

	segments := strings.Split(strings.Trim(req.Path, "/"), "/")
	switch {
	case len(segments) == 1 && segments[0] == chatResource:
		if req.HTTPMethod != http.MethodPost {
			return methodNotAllowed(cid, http.MethodPost), nil
		}
		return h.send(ctx, log, cid, req), nil
	case len(segments) == 2 && segments[0] == chatResource:
		if req.HTTPMethod != http.MethodGet {
			return methodNotAllowed(cid, http.MethodGet), nil
		}
		id := req.PathParameters[conversationParam]
		if id == "" {
			id = segments[1]
		}
		return h.history(ctx, log, cid, id), nil
	default:
		return jsonResponse(http.StatusNotFound, cid, errorResponse{Error: "NOT_FOUND", Reason: "unknown_route"}), nil
	}
}

func (h *Handler) send(ctx context.Context, log *slog.Logger, cid string, req events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	body, err := requestBody(req)
	if err != nil {
		log.Warn("undecodable request body", "err", err)
		return jsonResponse(http.StatusBadRequest, cid, errorResponse{Error: string(usecase.ErrorInvalidInput), Reason: "invalid_body"})
	}
	var in chatRequest
	if err := json.Unmarshal(body, &in); err != nil {
		log.Warn("invalid request body", "err", err)
		return jsonResponse(http.StatusBadRequest, cid, errorResponse{Error: string(usecase.ErrorInvalidInput), Reason: "invalid_json"})
	}

	out, err := h.uc.Send(ctx, usecase.SendInput{Message: in.Message, ConversationID: in.ConversationID})
	if err != nil {
		return errorToResponse(log, cid, err)
	}
	log.Info("chat reply", "conversationId", out.ConversationID, "intent", out.Message.Intent)
	return jsonResponse(http.StatusOK, cid, chatResponse{
		ConversationID: out.ConversationID,
		Message:        out.Message,
		TypingDelayMs:  out.TypingDelay.Milliseconds(),
	})
}

func (h *Handler) history(ctx context.Context, log *slog.Logger, cid, conversationID string) events.APIGatewayProxyResponse {
	msgs, err := h.uc.History(ctx, conversationID)
	if err != nil {
		return errorToResponse(log, cid, err)
	}
	return jsonResponse(http.StatusOK, cid, historyResponse{ConversationID: conversationID, Messages: msgs})
}

func requestBody(req events.APIGatewayProxyRequest) ([]byte, error) {
	if !req.IsBase64Encoded {
		return []byte(req.Body), nil
	}
	return base64.StdEncoding.DecodeString(req.Body)
}

func errorToResponse(log *slog.Logger, cid string, err error) events.APIGatewayProxyResponse {
	var ucErr *usecase.Error
	if !errors.As(err, &ucErr) {
		log.Error("unexpected error", "err", err)
		return jsonResponse(http.StatusInternalServerError, cid, errorResponse{Error: string(usecase.ErrorInternal)})
	}

	status := http.StatusInternalServerError
	switch ucErr.Code {
	case usecase.ErrorInvalidInput:
		status = http.StatusBadRequest
	case usecase.ErrorNotFound:
		status = http.StatusNotFound
	}
	if status >= http.StatusInternalServerError {
		log.Error("request failed", "code", ucErr.Code, "reason", ucErr.Reason, "err", ucErr.Err)
	} else {
		log.Info("request rejected", "code", ucErr.Code, "reason", ucErr.Reason)
	}
	return jsonResponse(status, cid, errorResponse{Error: string(ucErr.Code), Reason: ucErr.Reason})
}

func methodNotAllowed(cid, allow string) events.APIGatewayProxyResponse {
	resp := jsonResponse(http.StatusMethodNotAllowed, cid, errorResponse{Error: "METHOD_NOT_ALLOWED"})
	resp.Headers["Allow"] = allow
	return resp
}

func jsonResponse(status int, cid string, v any) events.APIGatewayProxyResponse {
	body, err := json.Marshal(v)
	if err != nil {
		status = http.StatusInternalServerError
		body = []byte(`{"error":"INTERNAL_ERROR"}`)
	}
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers: map[string]string{
			"Content-Type":    "application/json",
			correlationHeader: cid,
		},
		Body: string(body),
	}
}

// correlationID returns the caller's X-Correlation-Id, matched
// case-insensitively, or a fresh one.
func correlationID(headers map[string]string) string {
	for k, v := range headers {
		if strings.EqualFold(k, correlationHeader) && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return uuid.NewString()
}
