package ai

import (
	"context"
	_ "embed"
	"fmt"
	"slices"
	"strings"
	"sync"

	einoprompt "github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"
)

//go:embed prompts/describe_system.txt
var describeSystem string

//go:embed prompts/describe_user.txt
var describeUser string

var describeTemplate = sync.OnceValue(func() einoprompt.ChatTemplate {
	return einoprompt.FromMessages(
		schema.FString,
		schema.SystemMessage(strings.TrimSpace(describeSystem)),
		schema.UserMessage(strings.TrimRight(describeUser, "\n")),
	)
})

// DescribeInput carries the project fields that shape the prompt.
type DescribeInput struct {
	ProjectName string
	ProjectType string
	TechStack   string
	Libraries   []string
	Hint        string
}

// FormatLibraries renders libraries as a sorted, de-duplicated comma list,
// or "none" when empty.
func FormatLibraries(libraries []string) string {
	libs := make([]string, 0, len(libraries))
	for _, lib := range libraries {
		if lib = strings.TrimSpace(lib); lib != "" {
			libs = append(libs, lib)
		}
	}
	slices.Sort(libs)
	libs = slices.Compact(libs)
	if len(libs) == 0 {
		return "none"
	}
	return strings.Join(libs, ", ")
}

func promptVars(in DescribeInput) map[string]any {
	hintSection := ""
	if hint := strings.TrimSpace(in.Hint); hint != "" {
		hintSection = "\nAdditional guidance: " + hint
	}
	return map[string]any{
		"project_name": in.ProjectName,
		"project_type": in.ProjectType,
		"tech_stack":   in.TechStack,
		"libraries":    FormatLibraries(in.Libraries),
		"hint_section": hintSection,
	}
}

// BuildMessages renders the describe prompt. Identical input always yields
// identical messages.
func BuildMessages(ctx context.Context, in DescribeInput) ([]*schema.Message, error) {
	msgs, err := describeTemplate().Format(ctx, promptVars(in))
	if err != nil {
		return nil, fmt.Errorf("ai: format prompt: %w", err)
	}
	return msgs, nil
}
