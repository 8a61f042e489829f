// Package tool exposes ClauseEase operations as MCP tools.
package tool

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hyperifyio/clauseease/internal/workflow"
)

// Tools holds the dependencies shared by the tool handlers.
type Tools struct {
	Engine *workflow.Engine
}

// NewServer returns an MCP server with every tool registered.
func NewServer(engine *workflow.Engine, version string) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: "clauseease", Version: version}, nil)
	Register(server, &Tools{Engine: engine})
	return server
}

// Register adds the tools to server.
func Register(server *mcp.Server, t *Tools) {
	mcp.AddTool(server, MetadataSimplifyText, t.SimplifyText)
	mcp.AddTool(server, MetadataSummarizeText, t.SummarizeText)
	mcp.AddTool(server, MetadataAnalyzeReadability, t.AnalyzeReadability)
}

func (t *Tools) engine() *workflow.Engine {
	if t.Engine == nil {
		return &workflow.Engine{}
	}
	return t.Engine
}
