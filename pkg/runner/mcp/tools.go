package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/innervoice/pkg/analytics"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerSummaryTool(srv, svc)
	registerDistributionTool(srv, svc)
	registerTrendTool(srv, svc)
	registerExportTool(srv, svc)
	registerListEntriesTool(srv, svc)
	registerAddEntryTool(srv, svc)
	registerSetFeedbackTool(srv, svc)
}

func withRange() mcp.ToolOption {
	return mcp.WithString("range",
		mcp.Description("Time range to analyze. Defaults to the configured range."),
		mcp.Enum(analytics.RangeKeys()...),
	)
}

// reportTool registers a tool that analyzes a range and returns part of the report.
func reportTool(srv *server.MCPServer, svc *Service, name, description string, project func(analytics.Report) any) {
	tool := mcp.NewTool(name, mcp.WithDescription(description), withRange())

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		report, err := svc.Report(ctx, request.GetString("range", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"range":      report.Range.Key(),
			"rangeLabel": report.RangeLabel,
			name:         project(report),
		})
	})
}

func registerSummaryTool(srv *server.MCPServer, svc *Service) {
	reportTool(srv, svc, "emotion_summary",
		"Most common emotion, number of classified entries and feedback accuracy for a range. The summary is null when the range has no classified entries.",
		func(r analytics.Report) any { return r.Summary })
}

func registerDistributionTool(srv *server.MCPServer, svc *Service) {
	reportTool(srv, svc, "emotion_distribution",
		"How many classified entries carry each emotion in a range.",
		func(r analytics.Report) any { return r.Distribution })
}

func registerTrendTool(srv *server.MCPServer, svc *Service) {
	reportTool(srv, svc, "emotion_trend",
		"Per-day mean confidence of each emotion in a range, oldest day first.",
		func(r analytics.Report) any { return r.Trend })
}

func registerExportTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"export_csv",
		mcp.WithDescription("Export the entries of a range as CSV (Date, Content, Emotion, Confidence, Feedback)."),
		withRange(),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		filename, csv, err := svc.ExportCSV(ctx, request.GetString("range", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"filename": filename,
			"csv":      csv,
		})
	})
}

func registerListEntriesTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_entries",
		mcp.WithDescription("List journal entries of a range, newest first."),
		withRange(),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of entries to return (default 20)."),
			mcp.Min(1),
			mcp.Max(100),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		limit := request.GetInt("limit", 20)
		entries, err := svc.ListEntries(ctx, request.GetString("range", ""), limit)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"entries": entries,
			"count":   len(entries),
		})
	})
}

func registerAddEntryTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"add_entry",
		mcp.WithDescription("Write a journal entry. It is classified when a classifier is configured."),
		mcp.WithString("content",
			mcp.Required(),
			mcp.Description("Text of the journal entry."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		content, err := request.RequireString("content")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.AddEntry(ctx, content)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerSetFeedbackTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"set_feedback",
		mcp.WithDescription("Record whether the detected emotion of an entry was accurate."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Entry identifier."),
		),
		mcp.WithString("feedback",
			mcp.Required(),
			mcp.Description("accurate, inaccurate, or clear to remove the rating."),
			mcp.Enum("accurate", "inaccurate", "clear"),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			ID       string `json:"id"`
			Feedback string `json:"feedback"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		dto, err := svc.SetFeedback(ctx, args.ID, args.Feedback)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}
