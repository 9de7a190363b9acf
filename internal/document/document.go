package document

import (
	"strings"

	"gopkg.in/yaml.v3"

	"qbank/internal/question"
)

// Document is one parsed question file: the batch metadata that is copied
// onto every record, plus the raw entries in file order.
type Document struct {
	Type      string
	Year      string
	Questions []Entry
}

// Entry is one raw question entry as it appeared in the document. Nothing
// here is validated yet - the ingest validator decides whether an entry
// becomes a record.
type Entry struct {
	Index    int    // 1-based position in the document, for diagnostics
	Text     string // surrounding whitespace already trimmed
	ImageRef string

	// Options holds only the option keys that were present in the YAML
	// mapping. A key mapped to null is present with an empty Option;
	// an absent key is simply not in the map. The distinction matters:
	// missing keys are reported by name.
	Options map[string]question.Option

	Answer    string
	HasAnswer bool // whether the answer key appeared at all

	Tags []string
}

// UnmarshalYAML decodes an entry from its mapping node. Decoding never
// fails: unexpected shapes produce empty fields and are rejected later by
// the validator, so one odd entry cannot abort the whole document.
func (e *Entry) UnmarshalYAML(node *yaml.Node) error {
	node = resolved(node)
	if node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		val := resolved(node.Content[i+1])
		switch key {
		case "question":
			e.Text = strings.TrimSpace(scalarValue(val))
		case "image_url":
			e.ImageRef = scalarValue(val)
		case "A", "B", "C", "D":
			if e.Options == nil {
				e.Options = make(map[string]question.Option, len(question.OptionLabels))
			}
			e.Options[key] = decodeOption(val)
		case "answer":
			e.Answer = scalarValue(val)
			e.HasAnswer = true
		case "tags":
			e.Tags = decodeTags(val)
		}
	}
	return nil
}

// decodeOption accepts the two option forms from the document contract:
// a bare scalar ("Paris") or a {text, image_url} mapping. An image-only
// option is valid, so both fields may independently be empty here.
func decodeOption(node *yaml.Node) question.Option {
	switch node.Kind {
	case yaml.MappingNode:
		var opt question.Option
		for i := 0; i+1 < len(node.Content); i += 2 {
			val := resolved(node.Content[i+1])
			switch node.Content[i].Value {
			case "text":
				opt.Text = scalarValue(val)
			case "image_url":
				opt.ImageRef = scalarValue(val)
			}
		}
		return opt
	case yaml.ScalarNode:
		return question.Option{Text: scalarValue(node)}
	default:
		return question.Option{}
	}
}

func decodeTags(node *yaml.Node) []string {
	switch node.Kind {
	case yaml.SequenceNode:
		tags := make([]string, 0, len(node.Content))
		for _, item := range node.Content {
			if s := scalarValue(resolved(item)); s != "" {
				tags = append(tags, s)
			}
		}
		if len(tags) == 0 {
			return nil
		}
		return tags
	case yaml.ScalarNode:
		if s := scalarValue(node); s != "" {
			return []string{s}
		}
	}
	return nil
}

// scalarValue returns the literal text of a scalar node. Null and
// non-scalar nodes yield "", so year: 2024 reads as "2024" and a bare
// `A:` reads as an empty option rather than a decode error.
func scalarValue(node *yaml.Node) string {
	if node.Kind != yaml.ScalarNode || node.Tag == "!!null" {
		return ""
	}
	return node.Value
}

// resolved follows alias nodes so anchored values (&x / *x) decode like
// their targets.
func resolved(node *yaml.Node) *yaml.Node {
	if node.Kind == yaml.AliasNode && node.Alias != nil {
		return node.Alias
	}
	return node
}
