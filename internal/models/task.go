package models

import (
	"fmt"
	"time"
)

// Category groups tasks. Only the values in Categories are accepted.
type Category string

const (
	CategoryWork     Category = "Work"
	CategoryPersonal Category = "Personal"
	CategoryStudy    Category = "Study"
	CategoryOther    Category = "Other"
)

// Categories lists every accepted category in display order.
var Categories = []Category{CategoryWork, CategoryPersonal, CategoryStudy, CategoryOther}

// Valid reports whether c is one of the fixed categories. Matching is case-sensitive.
func (c Category) Valid() bool {
	switch c {
	case CategoryWork, CategoryPersonal, CategoryStudy, CategoryOther:
		return true
	}
	return false
}

// ParseCategory converts s into a Category, rejecting anything outside the fixed set.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", fmt.Errorf("must be one of %v, got %q", Categories, s)
	}
	return c, nil
}

// Task is a to-do item owned by a single user.
type Task struct {
	ID          string    `json:"id" bson:"_id"`
	OwnerID     string    `json:"ownerId" bson:"owner_id"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description" bson:"description"`
	Category    Category  `json:"category" bson:"category"`
	Completed   bool      `json:"completed" bson:"completed"`
	CreatedAt   time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updated_at"`
}

// TaskPatch carries a partial update. Nil fields are left unchanged.
type TaskPatch struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Category    *Category `json:"category,omitempty"`
	Completed   *bool     `json:"completed,omitempty"`
}

// Empty reports whether the patch would change nothing.
func (p TaskPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Category == nil && p.Completed == nil
}

// TaskFilter narrows a task listing. Zero values mean "no filter".
type TaskFilter struct {
	Category  *Category
	Completed *bool
}
