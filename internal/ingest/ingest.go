// Package ingest validates and encodes source documents for the
// generation pipeline. Only allow-listed document types are accepted;
// anything else is rejected before a model session is opened.
package ingest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
)

const (
	MIMEPDF  = "application/pdf"
	MIMEDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// allowedTypes is the document MIME allow-list: PDF and Word.
var allowedTypes = map[string]bool{
	MIMEPDF:  true,
	MIMEDocx: true,
}

// ErrUnsupportedType reports a document outside the allow-list.
type ErrUnsupportedType struct {
	Name     string
	Detected string
}

func (e *ErrUnsupportedType) Error() string {
	return fmt.Sprintf("unsupported document type %q for %s: upload a PDF or Word document", e.Detected, e.Name)
}

// Document is an encoded source document ready for the pipeline.
type Document struct {
	Name     string
	MIMEType string
	Data     []byte
}

// EncodeFile reads and validates the document at path. The MIME type is
// detected from the file content, not the extension.
func EncodeFile(path string) (*Document, error) {
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return nil, fmt.Errorf("detect document type: %w", err)
	}

	name := filepath.Base(path)
	resolved := resolveMIME(mtype)
	if !allowedTypes[resolved] {
		return nil, &ErrUnsupportedType{Name: name, Detected: mtype.String()}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}

	return &Document{
		Name:     name,
		MIMEType: resolved,
		Data:     data,
	}, nil
}

// EncodeBytes validates a document already held in memory.
func EncodeBytes(name string, data []byte) (*Document, error) {
	mtype := mimetype.Detect(data)

	resolved := resolveMIME(mtype)
	if !allowedTypes[resolved] {
		return nil, &ErrUnsupportedType{Name: name, Detected: mtype.String()}
	}

	return &Document{
		Name:     name,
		MIMEType: resolved,
		Data:     data,
	}, nil
}

// resolveMIME normalizes a detection result to an allow-list entry.
// mimetype reports .docx through its zip-container lineage, so walk the
// parents looking for a known type.
func resolveMIME(mtype *mimetype.MIME) string {
	for m := mtype; m != nil; m = m.Parent() {
		if allowedTypes[m.String()] {
			return m.String()
		}
	}
	return mtype.String()
}
