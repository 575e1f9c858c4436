package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const separator = "---\n"

// Field is one frontmatter entry. Notes keep fields in declaration order so
// diffs between regenerated files stay small.
type Field struct {
	Key   string
	Value any
}

func RenderFrontmatter(fields []Field, body string) (string, error) {
	mapping := &yaml.Node{Kind: yaml.MappingNode}
	for _, f := range fields {
		value := &yaml.Node{}
		if err := value.Encode(f.Value); err != nil {
			return "", fmt.Errorf("encode frontmatter %s: %w", f.Key, err)
		}
		mapping.Content = append(mapping.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: f.Key}, value)
	}
	raw, err := yaml.Marshal(mapping)
	if err != nil {
		return "", fmt.Errorf("marshal frontmatter: %w", err)
	}
	buf := bytes.Buffer{}
	buf.WriteString(separator)
	buf.Write(raw)
	buf.WriteString(separator)
	if !strings.HasPrefix(body, "\n") {
		buf.WriteString("\n")
	}
	buf.WriteString(body)
	return buf.String(), nil
}
