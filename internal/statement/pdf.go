package statement

import (
	"fmt"

	"github.com/dchoinie/church-membership-app-sub000/internal/models"
	"github.com/dchoinie/church-membership-app-sub000/internal/types"
	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
)

// ChurchInfo is the letterhead and tax data rendered on a statement. The
// tax ID is already decrypted here, the struct must not be persisted.
type ChurchInfo struct {
	Name           string
	Address        string
	Address2       string
	City           string
	State          string
	Zip            string
	Phone          string
	Email          string
	TaxID          string
	NonProfit501c3 bool
	TaxDisclaimer  string
	GoodsProvided  bool
	GoodsStatement string
}

// HouseholdInfo is the addressee block of a statement.
type HouseholdInfo struct {
	Name     string
	Address  string
	Address2 string
	City     string
	State    string
	Zip      string
}

// NewChurchInfo decrypts the tax ID and copies the letterhead fields.
func NewChurchInfo(church models.Church) (ChurchInfo, error) {
	taxID, err := church.TaxID()
	if err != nil {
		return ChurchInfo{}, err
	}

	return ChurchInfo{
		Name:           church.Name,
		Address:        church.Address,
		Address2:       church.Address2,
		City:           church.City,
		State:          church.State,
		Zip:            church.Zip,
		Phone:          church.Phone,
		Email:          church.Email,
		TaxID:          taxID,
		NonProfit501c3: church.NonProfit501c3,
		TaxDisclaimer:  church.TaxDisclaimer,
		GoodsProvided:  church.GoodsProvided,
		GoodsStatement: church.GoodsStatement,
	}, nil
}

// defaultGoodsStatement is the IRS quid pro quo language used when the
// church did not configure its own wording.
const defaultGoodsStatement = "No goods or services were provided in exchange for these contributions, other than intangible religious benefits."

// tableRow is one rendered line of the itemization table.
type tableRow struct {
	Date     string
	Category string
	Amount   string
}

// buildRows formats statement lines for the itemization table.
func buildRows(lines []Line) []tableRow {
	rows := make([]tableRow, 0, len(lines))
	for _, l := range lines {
		rows = append(rows, tableRow{
			Date:     l.Date.Format("Jan 02, 2006"),
			Category: l.Category,
			Amount:   formatAmount(l.Amount),
		})
	}

	return rows
}

func formatAmount(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(2)
}

// goodsStatement returns the goods and services wording for a church.
func goodsStatement(church ChurchInfo) string {
	if church.GoodsStatement != "" {
		return church.GoodsStatement
	}

	return defaultGoodsStatement
}

// disclaimer returns the deductibility wording for a church.
func disclaimer(church ChurchInfo) string {
	if church.TaxDisclaimer != "" {
		return church.TaxDisclaimer
	}

	if church.NonProfit501c3 {
		return fmt.Sprintf("%s is a tax-exempt organization described in Section 501(c)(3) of the Internal Revenue Code. Contributions are deductible to the extent allowed by law.", church.Name)
	}

	return ""
}

func cityLine(city, state, zip string) string {
	out := city
	if state != "" {
		if out != "" {
			out += ", "
		}
		out += state
	}
	if zip != "" {
		if out != "" {
			out += " "
		}
		out += zip
	}

	return out
}

// Render produces the statement PDF.
//
// The layout is a single column letter page: church letterhead, addressee
// block, the itemized contribution table, the total and the IRS
// acknowledgment wording. Long itemizations flow onto additional pages.
func Render(church ChurchInfo, household HouseholdInfo, year types.Year, lines []Line, total decimal.Decimal, number string) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.Letter).
		WithLeftMargin(15).
		WithRightMargin(15).
		WithTopMargin(15).
		Build()

	m := maroto.New(cfg)

	// Letterhead
	m.AddRow(8, text.NewCol(12, church.Name, props.Text{Size: 16, Style: fontstyle.Bold, Align: align.Center}))
	for _, l := range []string{church.Address, church.Address2, cityLine(church.City, church.State, church.Zip)} {
		if l == "" {
			continue
		}
		m.AddRow(4, text.NewCol(12, l, props.Text{Size: 9, Align: align.Center}))
	}
	contact := church.Phone
	if church.Email != "" {
		if contact != "" {
			contact += "  "
		}
		contact += church.Email
	}
	if contact != "" {
		m.AddRow(4, text.NewCol(12, contact, props.Text{Size: 9, Align: align.Center}))
	}
	m.AddRows(line.NewRow(6))

	// Title
	m.AddRow(8, text.NewCol(12, fmt.Sprintf("Statement of Contributions for %s", year), props.Text{Size: 13, Style: fontstyle.Bold, Align: align.Center}))
	m.AddRow(5, text.NewCol(12, fmt.Sprintf("Statement No. %s", number), props.Text{Size: 9, Align: align.Center}))
	m.AddRow(6, text.NewCol(12, fmt.Sprintf("January 1, %s through December 31, %s", year, year), props.Text{Size: 9, Align: align.Center}))

	// Addressee
	m.AddRow(6, text.NewCol(12, household.Name, props.Text{Size: 10, Style: fontstyle.Bold, Top: 2}))
	for _, l := range []string{household.Address, household.Address2, cityLine(household.City, household.State, household.Zip)} {
		if l == "" {
			continue
		}
		m.AddRow(4, text.NewCol(12, l, props.Text{Size: 9}))
	}

	// Itemization
	m.AddRow(8, text.NewCol(3, "Date", props.Text{Size: 9, Style: fontstyle.Bold, Top: 3}),
		text.NewCol(6, "Category", props.Text{Size: 9, Style: fontstyle.Bold, Top: 3}),
		text.NewCol(3, "Amount", props.Text{Size: 9, Style: fontstyle.Bold, Top: 3, Align: align.Right}))
	m.AddRows(line.NewRow(2))

	for _, r := range buildRows(lines) {
		m.AddRow(5, text.NewCol(3, r.Date, props.Text{Size: 9}),
			text.NewCol(6, r.Category, props.Text{Size: 9}),
			text.NewCol(3, r.Amount, props.Text{Size: 9, Align: align.Right}))
	}

	m.AddRows(line.NewRow(2))
	m.AddRow(7, text.NewCol(9, "Total Contributions", props.Text{Size: 10, Style: fontstyle.Bold, Top: 1}),
		text.NewCol(3, formatAmount(total), props.Text{Size: 10, Style: fontstyle.Bold, Top: 1, Align: align.Right}))

	// IRS acknowledgment wording
	m.AddRow(12, text.NewCol(12, goodsStatement(church), props.Text{Size: 8, Top: 4}))
	if d := disclaimer(church); d != "" {
		m.AddRow(10, text.NewCol(12, d, props.Text{Size: 8}))
	}
	if church.TaxID != "" {
		m.AddRow(5, text.NewCol(12, fmt.Sprintf("Tax ID (EIN): %s", church.TaxID), props.Text{Size: 8}))
	}
	m.AddRow(5, text.NewCol(12, "Please retain this statement for your tax records.", props.Text{Size: 8}))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("rendering the statement PDF failed: %w", err)
	}

	return doc.GetBytes(), nil
}
