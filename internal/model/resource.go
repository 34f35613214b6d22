package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type ResourceType string

const (
	ResourceTypeDocument ResourceType = "document"
	ResourceTypeVideo    ResourceType = "video"
	ResourceTypeLink     ResourceType = "link"
	ResourceTypeTemplate ResourceType = "template"
	ResourceTypeArticle  ResourceType = "article"
)

// ResourceTypeAll is the filter value that disables the type predicate.
const ResourceTypeAll = "all"

// ResourceTypes lists every concrete type, in chip display order.
var ResourceTypes = []ResourceType{
	ResourceTypeArticle,
	ResourceTypeDocument,
	ResourceTypeVideo,
	ResourceTypeLink,
	ResourceTypeTemplate,
}

func (t ResourceType) IsValid() bool {
	for _, rt := range ResourceTypes {
		if rt == t {
			return true
		}
	}
	return false
}

// ParseResourceType returns the type and false for "all" or unknown values.
func ParseResourceType(s string) (ResourceType, bool) {
	t := ResourceType(strings.ToLower(strings.TrimSpace(s)))
	if t.IsValid() {
		return t, true
	}
	return "", false
}

type Resource struct {
	ID           uuid.UUID    `json:"id" db:"id"`
	Title        string       `json:"title" db:"title"`
	Description  *string      `json:"description" db:"description"`
	URL          *string      `json:"url" db:"url"`
	FilePath     *string      `json:"file_path" db:"file_path"`
	ResourceType ResourceType `json:"resource_type" db:"resource_type"`
	EventID      *uuid.UUID   `json:"event_id,omitempty" db:"event_id"`
	EventTitle   *string      `json:"event_title,omitempty" db:"-"`
	CreatedBy    uuid.UUID    `json:"created_by" db:"created_by"`
	CreatedAt    time.Time    `json:"created_at" db:"created_at"`
}

type ResourceInput struct {
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	URL          string       `json:"url"`
	FilePath     string       `json:"file_path"`
	ResourceType ResourceType `json:"resource_type"`
	EventID      *uuid.UUID   `json:"event_id"`
}

type ResourceFilter struct {
	Term   string
	Type   *ResourceType
	Limit  int // 0 表示全部
	Offset int
}

// ResourceTypeCounts maps each type plus "all" to its count.
type ResourceTypeCounts map[string]int
