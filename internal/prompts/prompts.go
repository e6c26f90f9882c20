// Package prompts provides the static prompt templates exposed to MCP
// clients. Each template is pure string interpolation around the caller's
// content.
package prompts

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"mcptoolkit/internal/registry"
)

// Register adds every prompt template to the registry.
func Register(reg *registry.Registry) error {
	definitions := []struct {
		prompt *mcp.Prompt
		render func(args map[string]string) string
	}{
		{
			prompt: &mcp.Prompt{
				Name:        "code_review",
				Description: "Generate a structured code review request",
				Arguments: []*mcp.PromptArgument{
					{Name: "file_path", Description: "File to review", Required: true},
					{Name: "focus_areas", Description: "Areas to focus on, defaults to all"},
				},
			},
			render: func(args map[string]string) string {
				return CodeReview(args["file_path"], args["focus_areas"])
			},
		},
		{
			prompt: &mcp.Prompt{
				Name:        "documentation",
				Description: "Generate a documentation-writing request",
				Arguments: []*mcp.PromptArgument{
					{Name: "code_content", Description: "Code to document", Required: true},
					{Name: "doc_type", Description: "Kind of documentation, defaults to function"},
				},
			},
			render: func(args map[string]string) string {
				return Documentation(args["code_content"], args["doc_type"])
			},
		},
		{
			prompt: &mcp.Prompt{
				Name:        "debugging",
				Description: "Generate a debugging-assistance request",
				Arguments: []*mcp.PromptArgument{
					{Name: "error_message", Description: "Error being investigated", Required: true},
					{Name: "code_context", Description: "Surrounding code, optional"},
				},
			},
			render: func(args map[string]string) string {
				return Debugging(args["error_message"], args["code_context"])
			},
		},
		{
			prompt: &mcp.Prompt{
				Name:        "optimization",
				Description: "Generate an optimization-analysis request",
				Arguments: []*mcp.PromptArgument{
					{Name: "code_content", Description: "Code to analyze", Required: true},
					{Name: "optimization_goal", Description: "Optimization target, defaults to performance"},
				},
			},
			render: func(args map[string]string) string {
				return Optimization(args["code_content"], args["optimization_goal"])
			},
		},
	}

	for _, def := range definitions {
		render := def.render
		handler := func(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
			return &mcp.GetPromptResult{
				Messages: []*mcp.PromptMessage{
					{Role: "user", Content: &mcp.TextContent{Text: render(req.Params.Arguments)}},
				},
			}, nil
		}
		if err := reg.AddPrompt(def.prompt, handler); err != nil {
			return err
		}
	}
	return nil
}

// CodeReview renders the code-review template.
func CodeReview(filePath, focusAreas string) string {
	if focusAreas == "" {
		focusAreas = "all"
	}
	return fmt.Sprintf(`Please review the code in %s. Focus on the following areas: %s.

Please provide:
1. Code quality assessment
2. Potential bugs or issues
3. Performance improvements
4. Security considerations
5. Best practices recommendations
6. Specific suggestions for improvement

Be thorough but constructive in your feedback.`, filePath, focusAreas)
}

// Documentation renders the documentation template.
func Documentation(codeContent, docType string) string {
	if docType == "" {
		docType = "function"
	}
	return fmt.Sprintf(`Please create %s documentation for the following code:

%s

Please provide:
1. Clear and concise documentation
2. Parameter descriptions
3. Return value descriptions
4. Usage examples
5. Any important notes or warnings

Make the documentation comprehensive and easy to understand.`, docType, codeContent)
}

// Debugging renders the debugging template.
func Debugging(errorMessage, codeContext string) string {
	return fmt.Sprintf(`I'm encountering this error:

%s

Code context:
%s

Please help me:
1. Identify the root cause of the error
2. Suggest specific fixes
3. Explain why this error occurred
4. Provide best practices to prevent similar issues
5. If possible, provide corrected code

Be detailed in your analysis and solutions.`, errorMessage, codeContext)
}

// Optimization renders the optimization template.
func Optimization(codeContent, optimizationGoal string) string {
	if optimizationGoal == "" {
		optimizationGoal = "performance"
	}
	return fmt.Sprintf(`Please analyze this code for %s optimization:

%s

Please provide:
1. Current performance analysis
2. Specific optimization opportunities
3. Code improvements with explanations
4. Alternative approaches
5. Trade-offs to consider
6. Benchmarking suggestions

Focus on practical, actionable improvements.`, optimizationGoal, codeContent)
}
