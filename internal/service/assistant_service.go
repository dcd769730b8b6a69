package service

import (
	"context"

	"pharmachain-portal/pkg/backend"
)

// IAssistantService proxies the AI agent and pharma-chat endpoint groups.
type IAssistantService interface {
	RunAgent(ctx context.Context, data map[string]any) (map[string]any, error)
	AgenticAnalyze(ctx context.Context, data map[string]any) (map[string]any, error)
	VerifyScan(ctx context.Context, data map[string]any) (map[string]any, error)
	Scan(ctx context.Context, data map[string]any) (map[string]any, error)
	AutonomousVerify(ctx context.Context, data map[string]any) (map[string]any, error)
	SupplyChainAnalysis(ctx context.Context, data map[string]any) (map[string]any, error)
	BatchVerify(ctx context.Context, data map[string]any) (map[string]any, error)
	AgentStatus(ctx context.Context) (map[string]any, error)

	Chat(ctx context.Context, data map[string]any) (map[string]any, error)
	ChatSession(ctx context.Context, sessionID string) (map[string]any, error)
	DeleteChatSession(ctx context.Context, sessionID string) error
	ChatSessions(ctx context.Context) (map[string]any, error)
	ProcessingStatus(ctx context.Context, processingID string) (map[string]any, error)
	ChatTemplates(ctx context.Context) (map[string]any, error)
}

type assistantService struct {
	client *backend.Client
}

func NewAssistantService(client *backend.Client) IAssistantService {
	return &assistantService{client: client}
}

func (s *assistantService) RunAgent(ctx context.Context, data map[string]any) (map[string]any, error) {
	return s.client.AI.RunAgent(ctx, data)
}

func (s *assistantService) AgenticAnalyze(ctx context.Context, data map[string]any) (map[string]any, error) {
	return s.client.AI.AgenticAnalyze(ctx, data)
}

func (s *assistantService) VerifyScan(ctx context.Context, data map[string]any) (map[string]any, error) {
	return s.client.AI.VerifyScan(ctx, data)
}

func (s *assistantService) Scan(ctx context.Context, data map[string]any) (map[string]any, error) {
	return s.client.AI.Scan(ctx, data)
}

func (s *assistantService) AutonomousVerify(ctx context.Context, data map[string]any) (map[string]any, error) {
	return s.client.AI.AutonomousVerify(ctx, data)
}

func (s *assistantService) SupplyChainAnalysis(ctx context.Context, data map[string]any) (map[string]any, error) {
	return s.client.AI.SupplyChainAnalysis(ctx, data)
}

func (s *assistantService) BatchVerify(ctx context.Context, data map[string]any) (map[string]any, error) {
	return s.client.AI.BatchVerify(ctx, data)
}

func (s *assistantService) AgentStatus(ctx context.Context) (map[string]any, error) {
	return s.client.AI.AgentStatus(ctx)
}

func (s *assistantService) Chat(ctx context.Context, data map[string]any) (map[string]any, error) {
	return s.client.Chat.PharmaChat(ctx, data)
}

func (s *assistantService) ChatSession(ctx context.Context, sessionID string) (map[string]any, error) {
	return s.client.Chat.Session(ctx, sessionID)
}

func (s *assistantService) DeleteChatSession(ctx context.Context, sessionID string) error {
	return s.client.Chat.DeleteSession(ctx, sessionID)
}

func (s *assistantService) ChatSessions(ctx context.Context) (map[string]any, error) {
	return s.client.Chat.Sessions(ctx)
}

func (s *assistantService) ProcessingStatus(ctx context.Context, processingID string) (map[string]any, error) {
	return s.client.Chat.ProcessingStatus(ctx, processingID)
}

func (s *assistantService) ChatTemplates(ctx context.Context) (map[string]any, error) {
	return s.client.Chat.Templates(ctx)
}
