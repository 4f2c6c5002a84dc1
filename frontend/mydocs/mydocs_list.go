package mydocs

import (
	"docsmith/frontend/admin/listview"
	"docsmith/models"
)

// DocRow adapts a history row to the table pipeline.
type DocRow struct {
	models.Document
}

func (r DocRow) RecordID() string { return r.ID }

// DocListConfig searches title and preview, filters by document type and
// defaults to newest first.
func DocListConfig() listview.Config[DocRow] {
	return listview.Config[DocRow]{
		SearchFields: func(r DocRow) []string {
			return []string{r.Title, r.ContentPreview}
		},
		Filters: map[string]func(DocRow) string{
			"type": func(r DocRow) string { return r.Type },
		},
		Comparators: map[string]func(a, b DocRow) int{
			"title": func(a, b DocRow) int { return listview.CompareFold(a.Title, b.Title) },
			"type":  func(a, b DocRow) int { return listview.CompareFold(a.Type, b.Type) },
			"createdAt": func(a, b DocRow) int {
				return listview.CompareTimes(a.CreatedAt, b.CreatedAt)
			},
		},
		Default: func(a, b DocRow) int {
			return -listview.CompareTimes(a.CreatedAt, b.CreatedAt)
		},
	}
}

func toDocRows(docs []models.Document) []DocRow {
	rows := make([]DocRow, 0, len(docs))
	for _, d := range docs {
		rows = append(rows, DocRow{Document: d})
	}
	return rows
}
