package generator

import (
	"encoding/json"
	"fmt"

	"docsmith/models"
)

// RenderStoredPDF re-renders a saved history row into the same PDF the
// original download produced.
func RenderStoredPDF(doc models.Document) ([]byte, error) {
	switch doc.Type {
	case TypeEmail:
		var form EmailForm
		if err := json.Unmarshal([]byte(doc.FormJSON), &form); err != nil {
			return nil, fmt.Errorf("decode stored email form: %w", err)
		}
		return renderEmailPDF(form, DocRef(doc.ID))
	case TypeApplication:
		var form ApplicationForm
		if err := json.Unmarshal([]byte(doc.FormJSON), &form); err != nil {
			return nil, fmt.Errorf("decode stored application form: %w", err)
		}
		return renderApplicationPDF(form, DocRef(doc.ID))
	default:
		return nil, fmt.Errorf("unknown document type %q", doc.Type)
	}
}

// DownloadFilename names the attachment for a document type.
func DownloadFilename(docType string, unixMilli int64) string {
	prefix := "Email"
	if docType == TypeApplication {
		prefix = "Application"
	}
	return fmt.Sprintf("%s_%d.pdf", prefix, unixMilli)
}
