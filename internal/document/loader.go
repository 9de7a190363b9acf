package document

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueyaml "cuelang.org/go/encoding/yaml"
	"gopkg.in/yaml.v3"
)

//go:embed schema.cue
var schemaCUE string

type rawDocument struct {
	Type      string     `yaml:"type"`
	Year      yamlScalar `yaml:"year"`
	Questions []Entry    `yaml:"questions"`
}

// yamlScalar decodes any YAML scalar to its literal text, so documents
// may write year: 2024 without quoting.
type yamlScalar string

func (s *yamlScalar) UnmarshalYAML(node *yaml.Node) error {
	*s = yamlScalar(scalarValue(resolved(node)))
	return nil
}

// Load reads and parses the question document at path.
//
// A missing file wraps ErrNotFound. Unparseable YAML and batch-level
// contract violations (missing type, absent or empty question list) wrap
// ErrSchema. On success the entries come back in file order with their
// 1-based Index set.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("read document: %w", err)
	}

	if err := validateBatch(path, data); err != nil {
		return nil, err
	}

	var raw rawDocument
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchema, err)
	}

	// The schema gate already requires a non-empty list; this guards the
	// decode step drifting from it.
	if len(raw.Questions) == 0 {
		return nil, fmt.Errorf("%w: no questions in document", ErrSchema)
	}

	doc := &Document{
		Type:      raw.Type,
		Year:      string(raw.Year),
		Questions: raw.Questions,
	}
	for i := range doc.Questions {
		doc.Questions[i].Index = i + 1
	}
	return doc, nil
}

// validateBatch unifies the raw document with the embedded CUE schema.
// Only the batch-level shape is enforced here; entries stay open so that
// per-record faults reach the validator as countable record outcomes.
func validateBatch(path string, data []byte) error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile document schema: %w", err)
	}

	file, err := cueyaml.Extract(path, data)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSchema, err)
	}
	val := ctx.BuildFile(file)
	if err := val.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrSchema, err)
	}

	if err := schema.Unify(val).Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("%w: %v", ErrSchema, err)
	}
	return nil
}
