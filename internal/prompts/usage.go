// Package prompts implements MCP prompt handlers for graphmem.
//
// MCP prompts are user-triggered workflows (like slash commands) that
// instruct the AI to execute a specific sequence. Unlike tools (which
// the AI calls), prompts are initiated by the user.
package prompts

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// UsagePrompt handles the memory_usage MCP prompt.
// It teaches the AI to fold the knowledge graph into a conversation:
// recall before answering, capture new facts as they appear.
type UsagePrompt struct{}

// NewUsagePrompt creates a UsagePrompt.
func NewUsagePrompt() *UsagePrompt {
	return &UsagePrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *UsagePrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("memory_usage",
		mcp.WithPromptDescription(
			"Teach the assistant to use the knowledge graph as long-term memory. "+
				"Covers when to search for prior context and when to record "+
				"new entities, relations, and observations.",
		),
		mcp.WithArgument("user_name",
			mcp.ArgumentDescription(
				"Entity name the assistant should file facts about the current user under. Default: default_user",
			),
		),
	)
}

// Handle processes the memory_usage prompt request.
func (p *UsagePrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	userName := "default_user"
	if args := req.Params.Arguments; args != nil {
		if name, ok := args["user_name"]; ok && name != "" {
			userName = name
		}
	}

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Use the knowledge graph as memory for %s", userName),
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(fmt.Sprintf(
					"Use the knowledge graph as your long-term memory for our conversations. "+
						"Refer to it as your \"memory\".\n\n"+
						"1. Begin by running `search_nodes` with '%s' and any topics I bring up, to recall what you already know\n"+
						"2. While we talk, watch for new facts worth remembering: people, organizations, projects, events, preferences\n"+
						"3. Record new things with `create_entities`, connect them with `create_relations` (use active voice, e.g. 'works_at'), and attach facts to entities you already have with `add_observations`\n"+
						"4. File anything about me under the '%s' entity\n"+
						"5. Reach for `read_graph` only when you need the complete picture — prefer `search_nodes` for targeted recall",
					userName, userName,
				)),
			},
		},
	}, nil
}
