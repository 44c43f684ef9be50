// Package llm - extractor.go provides generic LLM-based structured extraction.
package llm

import (
	"fmt"
	"strings"
)

// ExtractionSchema defines the structure for LLM-based content extraction.
// It provides a reusable way to define what information to extract from text.
type ExtractionSchema struct {
	Name        string        // Schema name (e.g., "IssueAnalysis")
	Description string        // System prompt preamble describing the extraction task
	Fields      []SchemaField // Expected output fields
}

// SchemaField defines a single field in the extraction output.
type SchemaField struct {
	Name        string // JSON field name
	Type        string // Type hint: "string", "[]string", "map[string]string"
	Description string // Description for the LLM
	Required    bool   // Whether this field is required
}

// BuildExtractionPrompt constructs the LLM prompt from schema and input text.
func BuildExtractionPrompt(schema ExtractionSchema, inputText string) string {
	var sb strings.Builder

	// System description
	sb.WriteString(schema.Description)
	sb.WriteString("\n\n")

	// Output schema
	sb.WriteString("Return ONLY valid JSON matching this exact structure:\n{\n")
	for i, field := range schema.Fields {
		typeHint := field.Type
		if typeHint == "" {
			typeHint = "string"
		}
		requiredHint := ""
		if field.Required {
			requiredHint = " (required)"
		}
		sb.WriteString(fmt.Sprintf("  \"%s\": %s%s", field.Name, typeHint, requiredHint))
		if field.Description != "" {
			sb.WriteString(fmt.Sprintf(" // %s", field.Description))
		}
		if i < len(schema.Fields)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}\n\n")

	// Instructions
	sb.WriteString("IMPORTANT:\n")
	sb.WriteString("- Base every field on the issue text itself, do not invent details.\n")
	sb.WriteString("- Return ONLY the JSON object, no markdown, no explanation, no code blocks.\n\n")

	// Input text
	sb.WriteString("Input text:\n\"\"\"\n")
	sb.WriteString(inputText)
	sb.WriteString("\n\"\"\"\n")

	return sb.String()
}

// --- Predefined Schemas ---

// IssueAnalysisSchema returns the extraction schema for GitHub issue analysis.
// The model reads an issue (title, body, labels, comments) and estimates how
// approachable it is for an outside contributor.
func IssueAnalysisSchema() ExtractionSchema {
	return ExtractionSchema{
		Name: "IssueAnalysis",
		Description: `You are an experienced open-source maintainer assessing whether a GitHub issue is a good entry point for an outside contributor.
Judge only from the issue content provided. Be conservative: an issue that lacks reproduction steps or acceptance criteria is NOT clear, no matter how politely it is written.
Goal: Estimate difficulty, time investment, clarity, and the technical background a contributor would need.`,
		Fields: []SchemaField{
			{
				Name:        "difficulty",
				Type:        "\"string\"",
				Description: "One of: beginner, intermediate, advanced",
				Required:    true,
			},
			{
				Name:        "estimated_hours",
				Type:        "{\"min\": number, \"max\": number}",
				Description: "Honest range of hours for a contributor new to the codebase",
				Required:    true,
			},
			{
				Name:        "clarity_score",
				Type:        "number",
				Description: "0.0-1.0; how well-specified the issue is (reproduction steps, acceptance criteria, maintainer guidance)",
				Required:    true,
			},
			{
				Name:        "technical_requirements",
				Type:        "[\"string\"]",
				Description: "Languages, frameworks, and domain knowledge needed; empty if the issue gives no signal",
				Required:    true,
			},
			{
				Name:        "summary",
				Type:        "\"string\"",
				Description: "Two or three sentences describing what the work actually involves",
				Required:    true,
			},
			{
				Name:        "recommendation",
				Type:        "\"string\"",
				Description: "One sentence: who should pick this up and why",
				Required:    true,
			},
		},
	}
}
