package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/innervoice/pkg/analytics"
)

func registerResources(srv *server.MCPServer, svc *Service) {
	registerRangesResource(srv)
	registerAnalyticsTemplate(srv, svc)
}

func registerRangesResource(srv *server.MCPServer) {
	resource := mcp.NewResource(
		"innervoice://ranges",
		"Ranges",
		mcp.WithResourceDescription("Time ranges accepted by the analytics tools."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		ranges := make([]map[string]any, 0, len(analytics.Ranges()))
		for _, r := range analytics.Ranges() {
			ranges = append(ranges, map[string]any{
				"key":   r.Key(),
				"label": r.Label(),
				"days":  r.Days(),
			})
		}
		return encodeResourceJSON(request.Params.URI, map[string]any{"ranges": ranges})
	})
}

func registerAnalyticsTemplate(srv *server.MCPServer, svc *Service) {
	template := mcp.NewResourceTemplate(
		"innervoice://analytics/{range}",
		"Emotion Analytics",
		mcp.WithTemplateDescription("Trend, distribution and summary for a time range (7d, 30d, 90d or all)."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		key := templateArg(request.Params.Arguments["range"])
		report, err := svc.Report(ctx, key)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, report)
	})
}

// templateArg reads a URI template variable, which may arrive as a string or
// a list of strings.
func templateArg(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []string:
		if len(t) > 0 {
			return t[0]
		}
	case []any:
		if len(t) > 0 {
			if s, ok := t[0].(string); ok {
				return s
			}
		}
	}
	return ""
}

func encodeResourceJSON(uri string, payload any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
