package models

import (
	"errors"
	"strings"

	"github.com/dchoinie/church-membership-app-sub000/internal/secrets"
	"gorm.io/gorm"
)

// Church is the tenant root. Every other resource belongs to exactly one
// church, and every tenant has exactly one Church row.
//
// The tax fields are what the IRS expects on a charitable contribution
// acknowledgment. They are read-only during statement generation and
// mutated through the settings endpoint.
type Church struct {
	DefaultModel
	Name     string
	Address  string
	Address2 string
	City     string
	State    string
	Zip      string
	Phone    string
	Email    string

	// TaxIDEncrypted holds the federal tax identifier (EIN), encrypted
	// at rest. Use TaxID and SetTaxID instead of accessing it directly.
	TaxIDEncrypted string `json:"-"`

	NonProfit501c3 bool   // Does the church hold 501(c)(3) status?
	TaxDisclaimer  string // Custom disclaimer text printed on statements
	GoodsProvided  bool   // Were goods or services provided in exchange for contributions?
	GoodsStatement string // Custom goods-and-services statement text
}

var ErrChurchTaxInfoIncomplete = errors.New("the church tax information is incomplete")

// BeforeSave trims whitespace from all strings.
func (c *Church) BeforeSave(_ *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)
	c.Address = strings.TrimSpace(c.Address)
	c.Address2 = strings.TrimSpace(c.Address2)
	c.City = strings.TrimSpace(c.City)
	c.State = strings.TrimSpace(c.State)
	c.Zip = strings.TrimSpace(c.Zip)
	c.Phone = strings.TrimSpace(c.Phone)
	c.Email = strings.TrimSpace(c.Email)
	c.TaxDisclaimer = strings.TrimSpace(c.TaxDisclaimer)
	c.GoodsStatement = strings.TrimSpace(c.GoodsStatement)

	return nil
}

// SetTaxID encrypts and stores the tax identifier.
func (c *Church) SetTaxID(taxID string) error {
	encrypted, err := secrets.Encrypt(strings.TrimSpace(taxID))
	if err != nil {
		return err
	}

	c.TaxIDEncrypted = encrypted
	return nil
}

// TaxID decrypts and returns the tax identifier.
func (c Church) TaxID() (string, error) {
	return secrets.Decrypt(c.TaxIDEncrypted)
}
