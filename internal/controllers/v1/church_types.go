package v1

import (
	"github.com/dchoinie/church-membership-app-sub000/internal/models"
	"github.com/dchoinie/church-membership-app-sub000/internal/statement"
)

// ChurchEditable represents all user configurable parameters
type ChurchEditable struct {
	Name     string `json:"name" example:"Zion Lutheran Church" default:""`
	Address  string `json:"address" example:"100 Church St" default:""`
	Address2 string `json:"address2" example:"" default:""`
	City     string `json:"city" example:"Mankato" default:""`
	State    string `json:"state" example:"MN" default:""`
	Zip      string `json:"zip" example:"56001" default:""`
	Phone    string `json:"phone" example:"(507) 555-0143" default:""`
	Email    string `json:"email" example:"office@zionlutheran.org" default:""`

	// TaxID is the EIN. It is sent in plain text over the API and stored
	// encrypted.
	TaxID          string `json:"taxId" example:"41-0000000" default:""`
	NonProfit501c3 bool   `json:"nonProfit501c3" example:"true" default:"false"`
	TaxDisclaimer  string `json:"taxDisclaimer" example:"" default:""`
	GoodsProvided  bool   `json:"goodsProvided" example:"false" default:"false"`
	GoodsStatement string `json:"goodsStatement" example:"" default:""`
}

func (editable ChurchEditable) model() (models.Church, error) {
	church := models.Church{
		Name:           editable.Name,
		Address:        editable.Address,
		Address2:       editable.Address2,
		City:           editable.City,
		State:          editable.State,
		Zip:            editable.Zip,
		Phone:          editable.Phone,
		Email:          editable.Email,
		NonProfit501c3: editable.NonProfit501c3,
		TaxDisclaimer:  editable.TaxDisclaimer,
		GoodsProvided:  editable.GoodsProvided,
		GoodsStatement: editable.GoodsStatement,
	}

	err := church.SetTaxID(editable.TaxID)
	if err != nil {
		return models.Church{}, err
	}

	return church, nil
}

// ChurchCompliance reports whether the church profile carries everything
// a giving statement needs.
type ChurchCompliance struct {
	Valid   bool     `json:"valid" example:"false"`
	Missing []string `json:"missing" example:"taxId"`
}

type Church struct {
	models.DefaultModel
	ChurchEditable

	// Compliance is computed from the stored profile
	Compliance ChurchCompliance `json:"compliance"`
}

func newChurch(model models.Church) (Church, error) {
	taxID, err := model.TaxID()
	if err != nil {
		return Church{}, err
	}

	compliance, err := statement.Validate(model)
	if err != nil {
		return Church{}, err
	}

	return Church{
		DefaultModel: model.DefaultModel,
		ChurchEditable: ChurchEditable{
			Name:           model.Name,
			Address:        model.Address,
			Address2:       model.Address2,
			City:           model.City,
			State:          model.State,
			Zip:            model.Zip,
			Phone:          model.Phone,
			Email:          model.Email,
			TaxID:          taxID,
			NonProfit501c3: model.NonProfit501c3,
			TaxDisclaimer:  model.TaxDisclaimer,
			GoodsProvided:  model.GoodsProvided,
			GoodsStatement: model.GoodsStatement,
		},
		Compliance: ChurchCompliance{
			Valid:   compliance.Valid,
			Missing: compliance.Missing,
		},
	}, nil
}

type ChurchResponse struct {
	Data  *Church `json:"data"`                                                          // Data for the church
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}
