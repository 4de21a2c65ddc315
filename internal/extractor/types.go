package extractor

import (
	"strconv"
	"strings"
)

// Method is an HTTP method extracted from source.
type Method string

// Methods that count as implementation endpoints. Verbs such as HEAD or
// OPTIONS found in annotations are not extraction targets.
const (
	MethodGet    Method = "GET"
	MethodPost   Method = "POST"
	MethodPut    Method = "PUT"
	MethodPatch  Method = "PATCH"
	MethodDelete Method = "DELETE"
)

// ParseMethod maps a verb token to a Method. ok is false for verbs that are
// not valid extraction targets.
func ParseMethod(token string) (Method, bool) {
	switch Method(strings.ToUpper(strings.TrimSpace(token))) {
	case MethodGet:
		return MethodGet, true
	case MethodPost:
		return MethodPost, true
	case MethodPut:
		return MethodPut, true
	case MethodPatch:
		return MethodPatch, true
	case MethodDelete:
		return MethodDelete, true
	default:
		return "", false
	}
}

// Endpoint is a single extracted route declaration. It is immutable once
// emitted; Path always starts with "/".
type Endpoint struct {
	Method     Method `json:"method"`
	Path       string `json:"path"`
	SourceFile string `json:"source_file"`
	Line       int    `json:"line"`
	ClassName  string `json:"class_name,omitempty"`
	MemberName string `json:"member_name,omitempty"`
}

// Key returns the full identity of a declaration. The line number is part of
// it, so repeated declarations of the same method and path within one file
// (overloaded handlers, duplicated routes) stay distinct.
func (e Endpoint) Key() string {
	var b strings.Builder
	b.WriteString(string(e.Method))
	b.WriteByte(' ')
	b.WriteString(e.Path)
	b.WriteByte(' ')
	b.WriteString(e.SourceFile)
	b.WriteByte(':')
	b.WriteString(strconv.Itoa(e.Line))
	return b.String()
}

// DiffKey returns a line-independent identity for run-to-run diffing. Edits
// that only move a declaration within its file do not change it.
func (e Endpoint) DiffKey() string {
	var b strings.Builder
	b.WriteString(string(e.Method))
	b.WriteByte(' ')
	b.WriteString(e.Path)
	b.WriteByte(' ')
	b.WriteString(e.SourceFile)
	return b.String()
}
