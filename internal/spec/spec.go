// Package spec parses OpenAPI and Swagger documents into a reduced
// specification model used for coverage matching. Parsing is tolerant: a
// document that is not a valid specification yields nil, never an error.
package spec

import (
	"encoding/json"
	"regexp"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"
)

// Format is a parse hint for the raw document text.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Kind identifies the specification flavor.
type Kind string

const (
	KindOpenAPI Kind = "openapi"
	KindSwagger Kind = "swagger"
)

// Endpoint is one operation declared by a specification. Path is the
// template verbatim from the document and may contain {param} placeholders.
type Endpoint struct {
	Method      string `json:"method"`
	Path        string `json:"path"`
	OperationID string `json:"operation_id,omitempty"`
	Summary     string `json:"summary,omitempty"`
}

// Specification is a parsed and validated document reduced to its endpoints.
type Specification struct {
	SourcePath string     `json:"source_path"`
	Kind       Kind       `json:"kind"`
	Version    string     `json:"version"`
	Endpoints  []Endpoint `json:"endpoints"`
}

// openapiVersionRe accepts 3.x.x version strings only.
var openapiVersionRe = regexp.MustCompile(`^3\.\d+\.\d+$`)

// specVerbs are the path-item keys that declare operations, in the order
// endpoints are emitted for a path.
var specVerbs = []string{"get", "post", "put", "patch", "delete", "head", "options"}

// Parse parses raw document text into a Specification. It returns nil when
// the text does not parse or does not look like an OpenAPI 3.x.x or Swagger
// 2.0 document; that is a normal non-match, not an error condition.
func Parse(sourcePath string, raw []byte, format Format) *Specification {
	doc := decode(raw, format)
	if doc == nil {
		return nil
	}

	info, ok := doc["info"].(map[string]interface{})
	if !ok || info == nil {
		return nil
	}
	paths, ok := doc["paths"].(map[string]interface{})
	if !ok {
		return nil
	}

	s := &Specification{SourcePath: sourcePath}
	switch {
	case doc["openapi"] != nil:
		version, ok := doc["openapi"].(string)
		if !ok || !openapiVersionRe.MatchString(version) {
			return nil
		}
		s.Kind = KindOpenAPI
		s.Version = version
	case doc["swagger"] != nil:
		version, ok := doc["swagger"].(string)
		if !ok || version != "2.0" {
			return nil
		}
		s.Kind = KindSwagger
		s.Version = version
	default:
		return nil
	}

	if s.Kind == KindOpenAPI {
		if endpoints := loadOpenAPI3(raw); endpoints != nil {
			s.Endpoints = endpoints
			return s
		}
		// The tolerant gate accepted a document the strict loader rejects;
		// fall back to the generic walk.
	}
	s.Endpoints = walkPaths(paths)
	return s
}

// decode unmarshals the raw text into a generic document per the format hint.
func decode(raw []byte, format Format) map[string]interface{} {
	var doc map[string]interface{}
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil
		}
	default:
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return nil
		}
	}
	return doc
}

// loadOpenAPI3 extracts endpoints through the kin-openapi loader. Returns nil
// when the loader cannot make sense of the document.
func loadOpenAPI3(raw []byte) []Endpoint {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(raw)
	if err != nil || doc.Paths == nil {
		return nil
	}

	pathMap := doc.Paths.Map()
	pathKeys := make([]string, 0, len(pathMap))
	for k := range pathMap {
		pathKeys = append(pathKeys, k)
	}
	sort.Strings(pathKeys)

	endpoints := make([]Endpoint, 0)
	for _, path := range pathKeys {
		item := pathMap[path]
		if item == nil {
			continue
		}
		ops := item.Operations()
		for _, verb := range specVerbs {
			op, ok := ops[strings.ToUpper(verb)]
			if !ok || op == nil {
				continue
			}
			endpoints = append(endpoints, Endpoint{
				Method:      strings.ToUpper(verb),
				Path:        path,
				OperationID: op.OperationID,
				Summary:     op.Summary,
			})
		}
	}
	return endpoints
}

// walkPaths emits endpoints from a generic decoded paths object. Used for
// Swagger 2.0 documents and as the fallback for OpenAPI documents.
func walkPaths(paths map[string]interface{}) []Endpoint {
	pathKeys := make([]string, 0, len(paths))
	for k := range paths {
		pathKeys = append(pathKeys, k)
	}
	sort.Strings(pathKeys)

	endpoints := make([]Endpoint, 0)
	for _, path := range pathKeys {
		item, ok := paths[path].(map[string]interface{})
		if !ok {
			continue
		}
		for _, verb := range specVerbs {
			op, ok := item[verb].(map[string]interface{})
			if !ok {
				continue
			}
			ep := Endpoint{
				Method: strings.ToUpper(verb),
				Path:   path,
			}
			if id, ok := op["operationId"].(string); ok {
				ep.OperationID = id
			}
			if summary, ok := op["summary"].(string); ok {
				ep.Summary = summary
			}
			endpoints = append(endpoints, ep)
		}
	}
	return endpoints
}
