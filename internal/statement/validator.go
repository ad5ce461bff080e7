// Package statement implements the year-end giving statement pipeline:
// tax compliance validation, per-household aggregation of giving records,
// statement numbering, PDF rendering and idempotent persistence.
package statement

import (
	"os"

	"github.com/dchoinie/church-membership-app-sub000/internal/models"
)

// Policy decides how incomplete church tax information is handled.
type Policy string

const (
	// PolicyStrict refuses generation until the tax information is
	// complete.
	PolicyStrict Policy = "strict"

	// PolicyConfirm asks the caller for explicit confirmation and then
	// proceeds with incomplete tax information.
	PolicyConfirm Policy = "confirm"
)

// PolicyFromEnv reads the validation policy from
// STATEMENT_VALIDATION_POLICY. The default is PolicyConfirm.
func PolicyFromEnv() Policy {
	if os.Getenv("STATEMENT_VALIDATION_POLICY") == string(PolicyStrict) {
		return PolicyStrict
	}

	return PolicyConfirm
}

// Compliance is the result of checking a church against the fields the
// IRS expects on a charitable contribution acknowledgment.
type Compliance struct {
	Valid   bool
	Missing []string
}

// Validate checks the IRS required fields of a church.
//
// The check is pure except for decrypting the tax identifier. The
// goods-and-services statement may be omitted when the church holds
// 501(c)(3) status and reports that no goods were provided, since the
// default quid pro quo language covers that case.
func Validate(church models.Church) (Compliance, error) {
	var missing []string

	if church.Name == "" {
		missing = append(missing, "name")
	}
	if church.Address == "" {
		missing = append(missing, "address")
	}
	if church.City == "" {
		missing = append(missing, "city")
	}
	if church.State == "" {
		missing = append(missing, "state")
	}
	if church.Zip == "" {
		missing = append(missing, "zip")
	}

	taxID, err := church.TaxID()
	if err != nil {
		return Compliance{}, err
	}
	if taxID == "" {
		missing = append(missing, "taxId")
	}

	if church.GoodsStatement == "" && !(church.NonProfit501c3 && !church.GoodsProvided) {
		missing = append(missing, "goodsStatement")
	}

	return Compliance{
		Valid:   len(missing) == 0,
		Missing: missing,
	}, nil
}
