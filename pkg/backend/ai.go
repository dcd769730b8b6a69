package backend

import "context"

// AIAPI covers the /ai endpoint group. All inference runs server-side; the
// portal renders these results as-is.
type AIAPI struct {
	c *Client
}

func (a *AIAPI) RunAgent(ctx context.Context, data map[string]any) (map[string]any, error) {
	return a.post(ctx, "/ai/agent", data)
}

func (a *AIAPI) AgenticAnalyze(ctx context.Context, data map[string]any) (map[string]any, error) {
	return a.post(ctx, "/ai/agentic-analyze", data)
}

func (a *AIAPI) VerifyScan(ctx context.Context, data map[string]any) (map[string]any, error) {
	return a.post(ctx, "/ai/verify-scan", data)
}

func (a *AIAPI) Scan(ctx context.Context, data map[string]any) (map[string]any, error) {
	return a.post(ctx, "/ai/scan", data)
}

func (a *AIAPI) AutonomousVerify(ctx context.Context, data map[string]any) (map[string]any, error) {
	return a.post(ctx, "/ai/autonomous-verify", data)
}

func (a *AIAPI) SupplyChainAnalysis(ctx context.Context, data map[string]any) (map[string]any, error) {
	return a.post(ctx, "/ai/supply-chain-analysis", data)
}

func (a *AIAPI) BatchVerify(ctx context.Context, data map[string]any) (map[string]any, error) {
	return a.post(ctx, "/ai/batch-verify", data)
}

func (a *AIAPI) AgentStatus(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	if err := a.c.getJSON(ctx, "/ai/agent-status", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *AIAPI) post(ctx context.Context, path string, data map[string]any) (map[string]any, error) {
	var out map[string]any
	if err := a.c.postJSON(ctx, path, data, &out); err != nil {
		return nil, err
	}
	return out, nil
}
