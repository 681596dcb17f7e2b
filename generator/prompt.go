package generator

import (
	"fmt"
	"strings"
)

const fileSeparator = "\n\n---\n\n"

const stylistInstructions = `
You are a witty, stylish, and highly skilled open-source senior developer acting as a "beauty filter" for technical documentation.

# YOUR TASK
Rewrite the draft, applying these enhancements:
- **Tagline:** Add a bold, one-liner tagline under the main project title.
- **Emojis:** Sparsely add emojis to headers and key points for flair.
- **Formatting:** Ensure clean, readable Markdown.
- **Quote:** Add an inspirational or funny quote for developers at the end.
`

// requiredSections is the outline the architect stage must follow.
var requiredSections = []string{
	"**# Project Title**",
	"**Badges** (use the markdown provided below).",
	"**## Tech Stack**",
	"**## Features**",
	"**## Installation**",
	"**## Usage**",
	"**## How It Works** (include a mermaid.js diagram).",
	"**## Contributing**",
	"**## License**",
}

// BuildArchitectPrompt builds the factual first-pass prompt.
func BuildArchitectPrompt(files []ProjectFile, meta ProjectMetadata) string {
	var sb strings.Builder
	sb.WriteString("\nYou are an expert technical writer. Your task is to generate a factually accurate and well-structured README.md file based on the provided project context.\n\n")
	sb.WriteString("# EXPECTED SECTIONS\n")
	for i, s := range requiredSections {
		sb.WriteString(fmt.Sprintf("%d.  %s\n", i+1, s))
	}
	sb.WriteString("\n---\n# PROJECT CONTEXT\n")
	sb.WriteString(fmt.Sprintf("**Project Name:** %s\n", meta.Name))
	sb.WriteString(fmt.Sprintf("**Description:** %s\n", meta.Description))
	sb.WriteString("**Badges:**\n")
	sb.WriteString(BadgeBlock(meta))
	sb.WriteString("\n\n**Project Files:**\n")

	entries := make([]string, len(files))
	for i, f := range files {
		entries[i] = fmt.Sprintf("// File: %s\n%s", f.Path, f.Content)
	}
	sb.WriteString(strings.Join(entries, fileSeparator))
	sb.WriteString("\n")
	return sb.String()
}

// BuildStylistPrompt builds the rewrite prompt.
func BuildStylistPrompt(p Personality, draft string) string {
	var sb strings.Builder
	sb.WriteString(stylistInstructions)
	sb.WriteString("\n---\n")
	sb.WriteString(p.Prompt)
	sb.WriteString("\n---\n# RAW DRAFT:\n\n")
	sb.WriteString(draft)
	return sb.String()
}

// BadgeBlock renders the badge markdown for the project's ecosystem.
func BadgeBlock(meta ProjectMetadata) string {
	license := "[![License: MIT](https://img.shields.io/badge/License-MIT-blue.svg)](LICENSE)"
	switch meta.Ecosystem {
	case "npm":
		return fmt.Sprintf("[![npm version](https://img.shields.io/npm/v/%[1]s.svg)](https://www.npmjs.com/package/%[1]s)\n%s", meta.Name, license)
	case "go":
		return fmt.Sprintf("[![Go Reference](https://pkg.go.dev/badge/%[1]s.svg)](https://pkg.go.dev/%[1]s)\n%s", meta.Name, license)
	default:
		return license
	}
}
