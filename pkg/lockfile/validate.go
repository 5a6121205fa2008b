package lockfile

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

//go:embed schema/lock.schema.json
var schemaBytes []byte

var (
	compiledSchema *jsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
	printer        = message.NewPrinter(language.English)
)

// validationResult is the outcome of checking raw lock bytes against
// the embedded schema.
type validationResult struct {
	Valid  bool
	Issues []validationIssue
}

// validationIssue is a single schema violation.
type validationIssue struct {
	Path    string // instance location, e.g. "/flavors/<uri>/groups"
	Message string
}

// IssueStrings renders the issues for error details.
func (r *validationResult) IssueStrings() []string {
	out := make([]string, len(r.Issues))
	for i, issue := range r.Issues {
		if issue.Path == "" {
			out[i] = issue.Message
			continue
		}
		out[i] = issue.Path + ": " + issue.Message
	}
	return out
}

// getSchema compiles the embedded JSON schema once and returns it.
func getSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
		if err != nil {
			compileErr = fmt.Errorf("unmarshaling schema JSON: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource("lock.schema.json", doc); err != nil {
			compileErr = fmt.Errorf("adding schema resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile("lock.schema.json")
		if compileErr != nil {
			compileErr = fmt.Errorf("compiling schema: %w", compileErr)
		}
	})
	return compiledSchema, compileErr
}

// validate checks raw YAML lock bytes against the schema. The error
// return is for schema compilation or conversion failures; violations
// land in the result.
func validate(data []byte) (*validationResult, error) {
	schema, err := getSchema()
	if err != nil {
		return nil, fmt.Errorf("loading schema: %w", err)
	}

	var raw interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return &validationResult{
			Valid:  false,
			Issues: []validationIssue{{Message: err.Error()}},
		}, nil
	}
	if raw == nil {
		return &validationResult{
			Valid:  false,
			Issues: []validationIssue{{Message: "empty document, want a flavors mapping"}},
		}, nil
	}

	// Round-trip through JSON so the validator sees JSON-compatible
	// types rather than YAML's native ones.
	jsonData, err := json.Marshal(normalizeYAML(raw))
	if err != nil {
		return nil, fmt.Errorf("converting to JSON: %w", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("preparing JSON for validation: %w", err)
	}

	err = schema.Validate(inst)
	if err == nil {
		return &validationResult{Valid: true}, nil
	}

	validationErr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return nil, fmt.Errorf("unexpected validation error type: %w", err)
	}

	var issues []validationIssue
	collectIssues(validationErr, &issues)
	if len(issues) == 0 {
		issues = []validationIssue{{Message: validationErr.Error()}}
	}
	return &validationResult{Valid: false, Issues: issues}, nil
}

// collectIssues walks the error tree and keeps the leaf-level
// violations that name a concrete location.
func collectIssues(ve *jsonschema.ValidationError, issues *[]validationIssue) {
	if len(ve.Causes) == 0 {
		keyword := ""
		if ve.ErrorKind != nil {
			kwPath := ve.ErrorKind.KeywordPath()
			if len(kwPath) > 0 {
				keyword = kwPath[len(kwPath)-1]
			}
		}
		// Container keywords restate what their causes already say.
		if keyword == "" || keyword == "$ref" || keyword == "allOf" {
			return
		}

		path := ""
		if len(ve.InstanceLocation) > 0 {
			path = "/" + strings.Join(ve.InstanceLocation, "/")
		}
		msg := ve.ErrorKind.LocalizedString(printer)

		*issues = append(*issues, validationIssue{Path: path, Message: msg})
		return
	}
	for _, cause := range ve.Causes {
		collectIssues(cause, issues)
	}
}

// normalizeYAML recursively converts YAML-decoded values into
// JSON-compatible ones. yaml.v3 already yields map[string]interface{}
// for string-keyed maps, but nested non-string keys would break
// json.Marshal, so those are stringified here.
func normalizeYAML(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		m := make(map[string]interface{}, len(val))
		for k, inner := range val {
			m[k] = normalizeYAML(inner)
		}
		return m
	case map[interface{}]interface{}:
		m := make(map[string]interface{}, len(val))
		for k, inner := range val {
			m[fmt.Sprint(k)] = normalizeYAML(inner)
		}
		return m
	case []interface{}:
		a := make([]interface{}, len(val))
		for i, inner := range val {
			a[i] = normalizeYAML(inner)
		}
		return a
	default:
		return val
	}
}
