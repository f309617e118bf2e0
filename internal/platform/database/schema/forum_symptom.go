// Copyright (c) 2026 Demarthology. All rights reserved.
// Author: htilssu

package schema

// ForumSymptomTable represents the 'symptoms' table
type ForumSymptomTable struct {
	Table       string
	ID          string
	Name        string
	Slug        string
	Description string
	CreatedAt   string
	UpdatedAt   string
}

// ForumSymptom is the schema definition for symptoms
var ForumSymptom = ForumSymptomTable{
	Table:       "symptoms",
	ID:          "id",
	Name:        "name",
	Slug:        "slug",
	Description: "description",
	CreatedAt:   "created_at",
	UpdatedAt:   "updated_at",
}

// Columns returns all standard column names in scan order
func (t ForumSymptomTable) Columns() []string {
	return []string{t.ID, t.Name, t.Slug, t.Description, t.CreatedAt, t.UpdatedAt}
}
