// Package docx decodes Office Open XML word-processing packages.
package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/custodia-labs/ragchat/internal/core/domain"
	"github.com/custodia-labs/ragchat/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

const documentPart = "word/document.xml"

// WordprocessingML namespaces, transitional and strict.
const (
	nsTransitional = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsStrict       = "http://purl.oclc.org/ooxml/wordprocessingml/main"
)

var errNoDocumentPart = errors.New("missing " + documentPart)

// Extractor handles DOCX documents.
type Extractor struct{}

// New creates a new DOCX extractor.
func New() *Extractor {
	return &Extractor{}
}

// Format returns the format this extractor decodes.
func (e *Extractor) Format() domain.Format {
	return domain.FormatWordProcessor
}

// Extract returns the concatenated run text of the main document part.
func (e *Extractor) Extract(ctx context.Context, file *domain.File) (string, error) {
	if file == nil {
		return "", domain.ErrInvalidInput
	}

	reader, err := zip.NewReader(bytes.NewReader(file.Content), int64(len(file.Content)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrParseFailure, err)
	}

	for _, f := range reader.File {
		if f.Name != documentPart {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return "", fmt.Errorf("%w: %v", domain.ErrParseFailure, err)
		}
		defer rc.Close()

		text, err := extractDocumentText(ctx, rc)
		if err != nil {
			return "", fmt.Errorf("%w: %v", domain.ErrParseFailure, err)
		}
		return text, nil
	}

	return "", fmt.Errorf("%w: %v", domain.ErrParseFailure, errNoDocumentPart)
}

// extractDocumentText streams document.xml and writes run text in document order.
// Paragraphs are separated by a newline, tabs and breaks inside runs are kept.
func extractDocumentText(ctx context.Context, r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)

	var (
		b          strings.Builder
		paragraphs int
		runDepth   int
		inText     bool
	)

	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if !isWordElement(t.Name) {
				continue
			}
			switch t.Name.Local {
			case "p":
				if paragraphs > 0 {
					b.WriteByte('\n')
				}
				paragraphs++
			case "r":
				runDepth++
			case "t":
				inText = runDepth > 0
			case "tab":
				if runDepth > 0 {
					b.WriteByte('\t')
				}
			case "br", "cr":
				if runDepth > 0 {
					b.WriteByte('\n')
				}
			}
		case xml.EndElement:
			if !isWordElement(t.Name) {
				continue
			}
			switch t.Name.Local {
			case "r":
				if runDepth > 0 {
					runDepth--
				}
			case "t":
				inText = false
			}
		case xml.CharData:
			if inText {
				b.Write(t)
			}
		}
	}

	return b.String(), nil
}

func isWordElement(name xml.Name) bool {
	return name.Space == nsTransitional || name.Space == nsStrict
}
