package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"paperbot-go/internal/config"
	"paperbot-go/internal/service"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

// AnalyzerServer exposes the analysis engine as MCP tools
type AnalyzerServer struct {
	server   *mcp.Server
	analyzer *service.Analyzer
	config   *config.Config
	logger   *zap.Logger
	handler  *mcp.StreamableHTTPHandler
}

// AnalyzeSourceParams are the arguments of the analyzeSource tool
type AnalyzeSourceParams struct {
	Source   string `json:"source" jsonschema:"the normalized source text to analyze"`
	Language string `json:"language,omitempty" jsonschema:"source language, defaults to python"`
}

// ListLanguagesParams are the arguments of the listLanguages tool
type ListLanguagesParams struct{}

// NewAnalyzerServer creates the MCP server and registers its tools
func NewAnalyzerServer(analyzer *service.Analyzer, cfg *config.Config, logger *zap.Logger) *AnalyzerServer {
	server := &AnalyzerServer{
		analyzer: analyzer,
		config:   cfg,
		logger:   logger,
	}

	mcpServer := mcp.NewServer(&mcp.Implementation{
		Name:    "PaperBotAnalyzer",
		Version: "1.0.0",
	}, nil)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "analyzeSource",
		Description: "Analyze one source file and return its full analysis report: entity inventory metrics, complexity scores, dependency graph, algorithmic pattern flags, data flow summary and quality metrics as JSON",
	}, server.handleAnalyzeSource)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "listLanguages",
		Description: "List the source languages the analyzer supports",
	}, server.handleListLanguages)

	server.handler = mcp.NewStreamableHTTPHandler(func(req *http.Request) *mcp.Server {
		return mcpServer
	}, nil)

	server.server = mcpServer
	return server
}

func (s *AnalyzerServer) handleAnalyzeSource(ctx context.Context, req *mcp.CallToolRequest, args AnalyzeSourceParams) (*mcp.CallToolResult, any, error) {
	language := args.Language
	if language == "" {
		language = "python"
	}

	s.logger.Info("Handling analyzeSource request",
		zap.String("language", language),
		zap.Int("bytes", len(args.Source)))

	rep, err := s.analyzer.Analyze(ctx, []byte(args.Source), language)
	if err != nil {
		s.logger.Error("Analysis failed", zap.Error(err))
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("Analysis failed: %v", err)}},
		}, nil, nil
	}

	payload, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to serialize report: %w", err)
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(payload)}},
	}, nil, nil
}

func (s *AnalyzerServer) handleListLanguages(ctx context.Context, req *mcp.CallToolRequest, args ListLanguagesParams) (*mcp.CallToolResult, any, error) {
	payload, err := json.Marshal(s.analyzer.Languages())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to serialize languages: %w", err)
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(payload)}},
	}, nil, nil
}

// Serve starts the MCP HTTP listener on its configured address. A zero
// port disables the listener.
func (s *AnalyzerServer) Serve() {
	if s.config.Mcp.Port == 0 {
		s.logger.Info("MCP server disabled (no port configured)")
		return
	}
	go func() {
		address := s.config.Mcp.GetAddress()
		log.Printf("MCP Server going to listen on %s", address)
		if err := http.ListenAndServe(address, s.handler); err != nil {
			log.Fatalf("MCP Server failed: %v", err)
		}
	}()
}
