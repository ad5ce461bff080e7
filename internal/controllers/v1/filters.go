package v1

import (
	"fmt"

	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// nameFilter filters resources that carry a "name" column. An empty
// name query parameter explicitly filters for unnamed resources.
func nameFilter(query *gorm.DB, setFields []string, name string) *gorm.DB {
	if name != "" {
		query = query.Where("name LIKE ?", fmt.Sprintf("%%%s%%", name))
	} else if slices.Contains(setFields, "Name") {
		query = query.Where("name = ''")
	}

	return query
}

// noteFilter filters resources that carry a "note" column.
func noteFilter(query *gorm.DB, setFields []string, note string) *gorm.DB {
	if note != "" {
		query = query.Where("note LIKE ?", fmt.Sprintf("%%%s%%", note))
	} else if slices.Contains(setFields, "Note") {
		query = query.Where("note = ''")
	}

	return query
}
