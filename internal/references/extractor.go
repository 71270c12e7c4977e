package references

import (
	"fmt"
	"os"
	"regexp"

	"github.com/jenian/chartgrd/internal/scanner"
	"github.com/sirupsen/logrus"
)

// DefaultNamespace prefixes the chart's named templates, as in
// {{ include "dify.fullname" . }}.
const DefaultNamespace = "dify"

// valuesPattern matches direct accesses such as .Values.image.api.tag
var valuesPattern = regexp.MustCompile(`\.Values\.([a-zA-Z0-9_.]+)`)

// Document is one template's path and raw text.
type Document struct {
	Path    string
	Content string
}

// Extractor collects the dotted paths templates reference, either directly
// through .Values or indirectly through named includes.
type Extractor struct {
	includePattern *regexp.Regexp
	log            logrus.FieldLogger
}

// NewExtractor creates an extractor for named templates under namespace.
func NewExtractor(namespace string, log logrus.FieldLogger) *Extractor {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &Extractor{
		includePattern: regexp.MustCompile(`include\s+["']` + regexp.QuoteMeta(namespace) + `\.([a-zA-Z0-9_.]+)["']`),
		log:            log,
	}
}

// Extract returns the references found in a single template text.
// Captures are kept verbatim even when they later turn out to be a prefix or
// suffix of a real key.
func (e *Extractor) Extract(content string) Set {
	refs := NewSet()
	for _, m := range valuesPattern.FindAllStringSubmatch(content, -1) {
		refs.Add(m[1])
	}
	for _, m := range e.includePattern.FindAllStringSubmatch(content, -1) {
		refs.Add(m[1])
	}
	return refs
}

// ExtractAll returns the union of references over docs.
func (e *Extractor) ExtractAll(docs []Document) Set {
	refs := NewSet()
	for _, doc := range docs {
		refs.Union(e.Extract(doc.Content))
	}
	return refs
}

// ExtractFiles reads and extracts each template file. Unreadable files are
// logged, skipped and returned as errors; extraction carries on with the rest.
func (e *Extractor) ExtractFiles(files []scanner.FileInfo) (Set, []error) {
	var (
		docs []Document
		errs []error
	)
	for _, f := range files {
		data, err := os.ReadFile(f.Path)
		if err != nil {
			err = fmt.Errorf("could not read %s: %w", f.Path, err)
			e.log.Warn(err)
			errs = append(errs, err)
			continue
		}
		docs = append(docs, Document{Path: f.Path, Content: string(data)})
	}
	return e.ExtractAll(docs), errs
}
