package review

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestSplit(t *testing.T) {
	draft := "# Widget\n\nMakes widgets.\n\n## Usage\n\n```sh\n# not a heading\nwidget run\n```\n\n## License\n\nMIT\n"
	got := Split(draft)
	want := []Section{
		{Header: "# Widget", Body: "# Widget\n\nMakes widgets.", Index: 0},
		{Header: "## Usage", Body: "## Usage\n\n```sh\n# not a heading\nwidget run\n```", Index: 1},
		{Header: "## License", Body: "## License\n\nMIT", Index: 2},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Split mismatch (-want +got):\n%s", diff)
	}
}

func TestSplitPreambleAndNestedHeadings(t *testing.T) {
	draft := "[![badge](x.svg)](x)\n\n# Title\n\n> # quoted\n\n- item\n\n### Deep\ntext"
	got := Split(draft)
	headers := make([]string, len(got))
	for i, s := range got {
		headers[i] = s.Header
	}
	assert.Equal(t, []string{"", "# Title", "### Deep"}, headers)
	assert.Equal(t, "[![badge](x.svg)](x)", got[0].Body)
	assert.Equal(t, "# Title\n\n> # quoted\n\n- item", got[1].Body)
}

func TestSplitPreambleIsNeverBoilerplate(t *testing.T) {
	got := Split("License: MIT, see below.\n\n# Widget\n\nMakes widgets.")
	if assert.Len(t, got, 2) {
		assert.Empty(t, got[0].Header)
		assert.False(t, got[0].IsBoilerplate())
		assert.Equal(t, "# Widget", got[1].Header)
	}

	s := NewSession("License: MIT, see below.\n\n# Widget")
	assert.Equal(t, []string{"(intro) License: MIT, see below.", "# Widget"}, s.Headers())
}

func TestSplitSetextHeading(t *testing.T) {
	got := Split("Intro\n=====\n\nhello\n\nLicense\n-------\nMIT")
	if assert.Len(t, got, 2) {
		assert.Equal(t, "License", got[1].Header)
		assert.True(t, got[1].IsBoilerplate())
	}
}

func TestSplitEmpty(t *testing.T) {
	assert.Empty(t, Split("  \n\n "))
}

func TestIsBoilerplate(t *testing.T) {
	assert.True(t, Section{Header: "## License"}.IsBoilerplate())
	assert.True(t, Section{Header: "# LICENSE 📜"}.IsBoilerplate())
	assert.True(t, Section{Header: "## Licensing"}.IsBoilerplate())
	assert.False(t, Section{Header: "## 📜 License"}.IsBoilerplate())
	assert.False(t, Section{Header: "## Features"}.IsBoilerplate())
}
