// Package importer turns uploaded giving CSV files into giving records.
package importer

import (
	"github.com/dchoinie/church-membership-app-sub000/internal/models"
)

// GivingPreview is one parsed CSV line before member and category
// attribution. Attribution happens in Create, so that parsing stays free
// of database access.
type GivingPreview struct {
	Record models.GivingRecord `json:"record"`

	// EnvelopeNumber attributes the gift to the household member carrying
	// this envelope number.
	EnvelopeNumber int `json:"envelopeNumber" example:"143"`

	// CategoryName is matched against the giving categories of the
	// church. It may contain * wildcards, e.g. "Mission*". An empty name
	// leaves the item uncategorized.
	CategoryName string `json:"categoryName" example:"Building Fund"`
}
