package gateway

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
)

// DriveGateway talks to the drive tool server over MCP. A fresh client is
// opened and closed per call; the server resolves the user's stored OAuth
// credentials itself from the shared database.
type DriveGateway struct {
	serverURL string
}

func NewDriveGateway(serverURL string) *DriveGateway {
	return &DriveGateway{serverURL: serverURL}
}

type DriveFileRef struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	MimeType    string `json:"mime_type"`
	WebViewLink string `json:"web_view_link"`
}

type DriveSearchResult struct {
	Files         []DriveFileRef `json:"files"`
	NextPageToken string         `json:"next_page_token"`
	Error         string         `json:"error,omitempty"`
}

type DriveFileContent struct {
	Metadata struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		MimeType    string `json:"mimeType"`
		WebViewLink string `json:"webViewLink"`
	} `json:"metadata"`
	Content string `json:"content"`
	Error   string `json:"error,omitempty"`
}

func (g *DriveGateway) Search(ctx context.Context, userID uuid.UUID, query string, pageSize int) (*DriveSearchResult, error) {
	if pageSize <= 0 {
		pageSize = 10
	}

	var result DriveSearchResult
	err := g.callTool(ctx, "gdrive_search", map[string]any{
		"query":     query,
		"user_id":   userID.String(),
		"page_size": pageSize,
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (g *DriveGateway) ReadFile(ctx context.Context, userID uuid.UUID, fileID string) (*DriveFileContent, error) {
	var result DriveFileContent
	err := g.callTool(ctx, "gdrive_read_file", map[string]any{
		"file_id": fileID,
		"user_id": userID.String(),
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// callTool opens a short-lived MCP connection, invokes one tool and decodes
// its JSON text payload into out.
func (g *DriveGateway) callTool(ctx context.Context, name string, args map[string]any, out any) error {
	c, err := client.NewStreamableHttpClient(g.serverURL)
	if err != nil {
		return fmt.Errorf("create mcp client: %w", err)
	}
	defer c.Close()

	if err := c.Start(ctx); err != nil {
		return fmt.Errorf("start mcp client: %w", err)
	}

	initReq := mcp.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = mcp.Implementation{Name: "ai-tutor-api", Version: "0.1.0"}
	if _, err := c.Initialize(ctx, initReq); err != nil {
		return fmt.Errorf("initialize mcp session: %w", err)
	}

	callReq := mcp.CallToolRequest{}
	callReq.Params.Name = name
	callReq.Params.Arguments = args
	result, err := c.CallTool(ctx, callReq)
	if err != nil {
		return fmt.Errorf("call %s: %w", name, err)
	}
	if len(result.Content) == 0 {
		return fmt.Errorf("call %s: empty result", name)
	}

	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		return fmt.Errorf("call %s: unexpected content type", name)
	}
	if err := json.Unmarshal([]byte(text.Text), out); err != nil {
		return fmt.Errorf("decode %s result: %w", name, err)
	}
	return nil
}
