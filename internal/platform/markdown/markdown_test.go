package markdown_test

import (
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"lockedin/internal/platform/markdown"
)

// splitFrontmatter decodes the YAML header of a rendered note and returns it
// with the body that follows.
func splitFrontmatter(t *testing.T, content string) (map[string]any, string) {
	t.Helper()
	const separator = "---\n"
	if !strings.HasPrefix(content, separator) {
		t.Fatalf("expected frontmatter, got %q", content)
	}
	rest := strings.TrimPrefix(content, separator)
	idx := strings.Index(rest, "\n"+separator)
	if idx < 0 {
		t.Fatalf("missing closing separator in %q", content)
	}
	meta := map[string]any{}
	if err := yaml.Unmarshal([]byte(rest[:idx]), &meta); err != nil {
		t.Fatalf("unmarshal frontmatter: %v", err)
	}
	return meta, rest[idx+len("\n"+separator):]
}

func TestRenderFrontmatterKeepsFieldOrderAndSplitsBack(t *testing.T) {
	t.Parallel()
	rendered, err := markdown.RenderFrontmatter([]markdown.Field{
		{Key: "zeta", Value: 1},
		{Key: "alpha", Value: "two"},
	}, "# Body\n")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Index(rendered, "zeta") > strings.Index(rendered, "alpha") {
		t.Fatalf("expected declaration order, got %s", rendered)
	}
	meta, body := splitFrontmatter(t, rendered)
	if meta["alpha"] != "two" || meta["zeta"] != 1 {
		t.Fatalf("unexpected meta: %#v", meta)
	}
	if strings.TrimSpace(body) != "# Body" {
		t.Fatalf("unexpected body: %q", body)
	}
}

func TestReplaceManagedBlockPreservesSurroundingText(t *testing.T) {
	t.Parallel()
	const start, end = "<!-- a -->", "<!-- /a -->"
	first := markdown.ReplaceManagedBlock("my notes\n", start, end, "v1")
	if !strings.HasPrefix(first, "my notes\n") || !strings.Contains(first, "v1") {
		t.Fatalf("unexpected first render: %q", first)
	}
	second := markdown.ReplaceManagedBlock(first+"footer\n", start, end, "v2")
	if strings.Contains(second, "v1") || !strings.Contains(second, "v2") {
		t.Fatalf("expected block replaced, got %q", second)
	}
	if !strings.HasSuffix(second, "footer\n") {
		t.Fatalf("expected trailing text kept, got %q", second)
	}
}

func TestTableEscapesPipes(t *testing.T) {
	t.Parallel()
	out := markdown.Table([]string{"Subject", "Zone"}, [][]string{{"A|B", "safe"}})
	if !strings.Contains(out, `A\|B`) {
		t.Fatalf("expected escaped pipe, got %s", out)
	}
	if strings.Count(out, "\n") != 3 {
		t.Fatalf("expected header, rule and one row, got %q", out)
	}
}
