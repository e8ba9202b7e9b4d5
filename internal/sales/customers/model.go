package customers

import (
	"time"

	"github.com/shopspring/decimal"
)

// CustomerType distinguishes private buyers from companies.
type CustomerType string

const (
	CustomerTypeIndividual CustomerType = "individual"
	CustomerTypeCorporate  CustomerType = "corporate"
)

// Customer is a buyer account. A negative balance means the customer owes us.
type Customer struct {
	ID            int64           `json:"id"`
	Type          CustomerType    `json:"type"`
	Name          string          `json:"name"`
	ContactPerson string          `json:"contactPerson"`
	Phone         string          `json:"phone"`
	Email         string          `json:"email"`
	City          string          `json:"city"`
	District      string          `json:"district"`
	Address       string          `json:"address"`
	TaxOffice     string          `json:"taxOffice"`
	TaxNumber     string          `json:"taxNumber"`
	NationalID    string          `json:"nationalId"`
	Balance       decimal.Decimal `json:"balance"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}
