package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPostProcess(t *testing.T) {
	assert.Equal(t, "# Title\n\nbody", PostProcess("\n  # Title\n\nbody \n"))
	assert.Equal(t, "# Title\n\n```go\nx := 1\n```", PostProcess("```markdown\n# Title\n\n```go\nx := 1\n```\n```"))
	// A leading plain code block is content, not a wrapper.
	assert.Equal(t, "```\ncode\n```", PostProcess("```\ncode\n```"))
}

func TestExtractTitle(t *testing.T) {
	assert.Equal(t, "Widget", ExtractTitle("intro\n# Widget\n## Usage"))
	assert.Equal(t, "", ExtractTitle("## Only second level"))
}
