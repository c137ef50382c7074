// Package assistant builds the instructions a model session starts with.
package assistant

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/elee1766/pocketllm/src/agent"
	"github.com/shirou/gopsutil/v3/host"
	jsonschema "github.com/swaggest/jsonschema-go"
)

const (
	mainPromptTemplate = `You are a personal assistant running entirely on this device.

You help the user plan their day: you answer questions, and when the user asks you to remember or schedule something you use the tools available to you to create calendar events, notes, and reminders.`

	toolUsageSection = `# Tool usage
- Only call a tool when the user asks for something to be created. Never create items the user did not ask for.
- Dates and times passed to tools use the format yyyy-MM-ddTHH:mm:ss in the user's local time, with no time zone suffix and no fractional seconds.
- Resolve relative dates ("tomorrow", "next Friday") against today's date below.
- A tool answers with a sentence. If it says something failed, tell the user what went wrong or ask for the missing detail. Do not claim success unless the tool reported it.`

	toneSection = `# Tone
Keep answers short and friendly. After creating something, confirm what was created and when.`
)

// Environment is the machine and time context embedded in the instructions.
type Environment struct {
	Now       time.Time
	Platform  string
	OSVersion string
}

// DetectEnvironment collects the current environment.
func DetectEnvironment(ctx context.Context, now time.Time) Environment {
	return Environment{
		Now:       now,
		Platform:  runtime.GOOS,
		OSVersion: getOSVersion(ctx),
	}
}

// getOSVersion returns detailed OS version information
func getOSVersion(ctx context.Context) string {
	info, err := host.InfoWithContext(ctx)
	if err == nil {
		if info.PlatformVersion != "" {
			return fmt.Sprintf("%s %s", info.Platform, info.PlatformVersion)
		}
		if info.Platform != "" {
			return info.Platform
		}
	}
	return runtime.GOOS
}

func formatEnvironment(env Environment) string {
	zone, _ := env.Now.Zone()
	return fmt.Sprintf(`Here is useful information about the environment you are running in:
<env>
Platform: %s
OS Version: %s
Today's date: %s
Current time: %s
Time zone: %s
</env>`, env.Platform, env.OSVersion, env.Now.Format("Monday, 2006-01-02"), env.Now.Format("15:04"), zone)
}

func schemaType(s *jsonschema.Schema) string {
	if s.Type != nil {
		if s.Type.SimpleTypes != nil {
			return string(*s.Type.SimpleTypes)
		}
		if len(s.Type.SliceOfSimpleTypeValues) > 0 {
			return string(s.Type.SliceOfSimpleTypeValues[0])
		}
	}
	return "object"
}

func formatEnum(values []interface{}) string {
	enumStrs := make([]string, 0, len(values))
	for _, e := range values {
		enumStrs = append(enumStrs, fmt.Sprintf(`"%v"`, e))
	}
	return fmt.Sprintf("(enum: %s)", strings.Join(enumStrs, " | "))
}

// formatSchemaForPrompt formats a JSON schema for display in the prompt
func formatSchemaForPrompt(schema *jsonschema.Schema, indentLevel int) string {
	if schema == nil {
		return "unknown"
	}

	indent := strings.Repeat("  ", indentLevel)
	parts := []string{}

	if schema.Description != nil && *schema.Description != "" {
		parts = append(parts, fmt.Sprintf("%s# %s", indent, *schema.Description))
	}

	detailParts := []string{}
	if len(schema.Enum) > 0 {
		detailParts = append(detailParts, formatEnum(schema.Enum))
	}
	if schema.Items == nil && len(schema.Properties) > 0 && len(schema.Required) > 0 {
		detailParts = append(detailParts, fmt.Sprintf("(required: %s)", strings.Join(schema.Required, ", ")))
	}

	if len(detailParts) > 0 {
		parts = append(parts, fmt.Sprintf("%s%s %s", indent, schemaType(schema), strings.Join(detailParts, " ")))
	} else {
		parts = append(parts, fmt.Sprintf("%s%s", indent, schemaType(schema)))
	}

	propNames := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		propNames = append(propNames, name)
	}
	sort.Strings(propNames)

	for _, propName := range propNames {
		propSchema := schema.Properties[propName].TypeObject
		if propSchema == nil {
			continue
		}
		propType := schemaType(propSchema)
		if len(propSchema.Enum) > 0 {
			propType += " " + formatEnum(propSchema.Enum)
		}
		line := fmt.Sprintf("%s  %s: %s", indent, propName, propType)
		if propSchema.Description != nil && *propSchema.Description != "" {
			line += fmt.Sprintf(" # %s", *propSchema.Description)
		}
		parts = append(parts, line)
	}

	if schema.Items != nil && schema.Items.SchemaOrBool != nil && schema.Items.SchemaOrBool.TypeObject != nil {
		itemSchemaString := formatSchemaForPrompt(schema.Items.SchemaOrBool.TypeObject, indentLevel+1)
		parts = append(parts, fmt.Sprintf("%s  items: %s", indent, strings.TrimSpace(itemSchemaString)))
	}

	return strings.Join(parts, "\n")
}

// FormatTools renders every tool with its description and input schema.
// Descriptions are evaluated now.
func FormatTools(toolbox *agent.DefaultToolbox) string {
	if toolbox == nil {
		return "No tools available."
	}

	tools := toolbox.Tools()
	if len(tools) == 0 {
		return "No tools available."
	}

	toolStrings := make([]string, 0, len(tools))
	for _, tool := range tools {
		parts := []string{
			fmt.Sprintf("Tool: %s", tool.GetName()),
			fmt.Sprintf("Description: %s", tool.GetDescription()),
			"Input Schema:",
		}

		if tool.GetParameters() != nil {
			parts = append(parts, formatSchemaForPrompt(tool.GetParameters(), 1))
		} else {
			parts = append(parts, "  # No schema defined")
		}

		toolStrings = append(toolStrings, strings.Join(parts, "\n"))
	}

	return fmt.Sprintf("You have access to the following tools:\n\n%s", strings.Join(toolStrings, "\n\n---\n\n"))
}

// GenerateInstructions assembles the session instructions. They are built
// fresh for each new session so the embedded date is never stale.
func GenerateInstructions(toolbox *agent.DefaultToolbox, env Environment) string {
	sections := []string{
		mainPromptTemplate,
		toolUsageSection,
		toneSection,
		formatEnvironment(env),
		FormatTools(toolbox),
	}
	return strings.Join(sections, "\n\n")
}
