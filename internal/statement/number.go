package statement

import (
	"fmt"
	"strings"

	"github.com/dchoinie/church-membership-app-sub000/internal/types"
	"github.com/google/uuid"
)

// Number derives the statement number for a household and year, e.g.
// "GS-2024-6BA7B810".
//
// The household segment is taken from the household ID, so regenerating
// a statement yields the same number and the unique index on household
// and year guarantees there is at most one statement per number.
func Number(year types.Year, householdID uuid.UUID) string {
	return fmt.Sprintf("GS-%s-%s", year, strings.ToUpper(householdID.String()[:8]))
}
