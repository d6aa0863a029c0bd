package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/fleece-labs/fleece-api/models"
)

// ============================================================================
// CHAT SERVICE - Conversational assistant for card questions
// The model provider is an external collaborator: we send a prompt plus
// conversation history, it returns text. The caller supplies the API
// key on every request; it is never stored anywhere.
// ============================================================================

const (
	openAIEndpoint  = "https://api.openai.com/v1/chat/completions"
	sessionLifetime = 24 * time.Hour
	// Conversation memory is trimmed to the most recent turns so long
	// sessions do not grow the upstream prompt without bound.
	maxMemoryTurns = 20
)

var (
	ErrMissingAPIKey    = errors.New("api key is required")
	ErrUnsupportedModel = errors.New("unsupported model")
)

var allowedChatModels = map[string]bool{
	"gpt-3.5-turbo": true,
	"gpt-4":         true,
	"gpt-4-turbo":   true,
	"gpt-4o":        true,
}

const chatSystemPrompt = `You are Fleece, a friendly assistant that helps people pick and manage credit cards.
Answer questions about rewards, annual fees, welcome bonuses and responsible card usage.
Keep answers short and practical. Never ask for or repeat full card numbers.`

type ChatService struct {
	endpoint     string
	defaultModel string
	maxTokens    int
	secret       []byte
	httpClient   *http.Client

	mu       sync.Mutex
	sessions map[string][]models.ChatTurn
}

func NewChatService(secret []byte, defaultModel string) *ChatService {
	if defaultModel == "" || !allowedChatModels[defaultModel] {
		defaultModel = "gpt-3.5-turbo"
	}
	return &ChatService{
		endpoint:     openAIEndpoint,
		defaultModel: defaultModel,
		maxTokens:    1000,
		secret:       secret,
		httpClient:   &http.Client{Timeout: 60 * time.Second},
		sessions:     make(map[string][]models.ChatTurn),
	}
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIRequest struct {
	Model     string          `json:"model"`
	MaxTokens int             `json:"max_tokens,omitempty"`
	Messages  []openAIMessage `json:"messages"`
}

type openAIResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Message      openAIMessage `json:"message"`
		FinishReason string        `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// Converse runs one turn of the conversation: history + new message go
// upstream, the reply is recorded in session memory, and the caller
// gets the reply plus a session token for the follow-up.
func (s *ChatService) Converse(ctx context.Context, req models.ChatRequest) (models.ChatResponse, error) {
	if req.APIKey == "" {
		return models.ChatResponse{}, ErrMissingAPIKey
	}

	model := req.Model
	if model == "" {
		model = s.defaultModel
	}
	if !allowedChatModels[model] {
		return models.ChatResponse{}, fmt.Errorf("%w: %q", ErrUnsupportedModel, model)
	}

	conversationID, token, err := s.resolveSession(req.SessionToken)
	if err != nil {
		return models.ChatResponse{}, err
	}

	messages := []openAIMessage{{Role: "system", Content: chatSystemPrompt}}
	for _, turn := range s.history(conversationID) {
		messages = append(messages,
			openAIMessage{Role: "user", Content: turn.User},
			openAIMessage{Role: "assistant", Content: turn.Bot},
		)
	}
	messages = append(messages, openAIMessage{Role: "user", Content: req.Message})

	reply, err := s.executeRequest(ctx, req.APIKey, openAIRequest{
		Model:     model,
		MaxTokens: s.maxTokens,
		Messages:  messages,
	})
	if err != nil {
		return models.ChatResponse{}, err
	}

	s.remember(conversationID, models.ChatTurn{User: req.Message, Bot: reply})

	return models.ChatResponse{
		Reply:        reply,
		SessionToken: token,
		Model:        model,
	}, nil
}

// NewConversation drops the memory behind a session token and returns
// the archived turns, mirroring the "New Chat" action in the UI.
func (s *ChatService) NewConversation(sessionToken string) []models.ChatTurn {
	conversationID, err := s.parseToken(sessionToken)
	if err != nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	archived := s.sessions[conversationID]
	delete(s.sessions, conversationID)
	return archived
}

// History returns the remembered turns for a session token.
func (s *ChatService) History(sessionToken string) []models.ChatTurn {
	conversationID, err := s.parseToken(sessionToken)
	if err != nil {
		return nil
	}
	return s.history(conversationID)
}

func (s *ChatService) resolveSession(sessionToken string) (conversationID, token string, err error) {
	if sessionToken != "" {
		id, parseErr := s.parseToken(sessionToken)
		if parseErr == nil {
			return id, sessionToken, nil
		}
		// Expired or tampered tokens start a fresh conversation rather
		// than failing the turn.
		log.Printf("Rejecting chat session token: %v", parseErr)
	}

	id := uuid.New().String()
	signed, err := s.signToken(id)
	if err != nil {
		return "", "", fmt.Errorf("failed to create session token: %w", err)
	}
	return id, signed, nil
}

func (s *ChatService) signToken(conversationID string) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   conversationID,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(sessionLifetime)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *ChatService) parseToken(sessionToken string) (string, error) {
	token, err := jwt.ParseWithClaims(sessionToken, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", fmt.Errorf("invalid session claims")
	}
	return claims.Subject, nil
}

func (s *ChatService) history(conversationID string) []models.ChatTurn {
	s.mu.Lock()
	defer s.mu.Unlock()
	turns := s.sessions[conversationID]
	out := make([]models.ChatTurn, len(turns))
	copy(out, turns)
	return out
}

func (s *ChatService) remember(conversationID string, turn models.ChatTurn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	turns := append(s.sessions[conversationID], turn)
	if len(turns) > maxMemoryTurns {
		turns = turns[len(turns)-maxMemoryTurns:]
	}
	s.sessions[conversationID] = turns
}

func (s *ChatService) executeRequest(ctx context.Context, apiKey string, requestBody openAIRequest) (string, error) {
	jsonData, err := json.Marshal(requestBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}

	var chatResp openAIResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("empty response from model")
	}

	log.Printf("[Chat] Model: %s | Tokens: In %d / Out %d",
		chatResp.Model,
		chatResp.Usage.PromptTokens,
		chatResp.Usage.CompletionTokens,
	)

	return chatResp.Choices[0].Message.Content, nil
}
