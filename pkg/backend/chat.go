package backend

import (
	"context"
	"net/url"
)

// ChatAPI covers the /chat endpoint group (the backend's pharma assistant).
type ChatAPI struct {
	c *Client
}

func (a *ChatAPI) PharmaChat(ctx context.Context, data map[string]any) (map[string]any, error) {
	var out map[string]any
	if err := a.c.postJSON(ctx, "/chat/pharma-chat", data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *ChatAPI) Session(ctx context.Context, sessionID string) (map[string]any, error) {
	var out map[string]any
	if err := a.c.getJSON(ctx, "/chat/session/"+url.PathEscape(sessionID), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *ChatAPI) DeleteSession(ctx context.Context, sessionID string) error {
	return a.c.deleteJSON(ctx, "/chat/session/"+url.PathEscape(sessionID), nil)
}

func (a *ChatAPI) Sessions(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	if err := a.c.getJSON(ctx, "/chat/sessions", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *ChatAPI) ProcessingStatus(ctx context.Context, processingID string) (map[string]any, error) {
	var out map[string]any
	if err := a.c.getJSON(ctx, "/chat/processing-status/"+url.PathEscape(processingID), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *ChatAPI) Templates(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	if err := a.c.getJSON(ctx, "/chat/templates", &out); err != nil {
		return nil, err
	}
	return out, nil
}
