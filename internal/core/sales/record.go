package sales

import "github.com/shopspring/decimal"

// Dataset column names. Matching is case-insensitive at load time.
const (
	ColumnYear                   = "Year"
	ColumnMonth                  = "Month"
	ColumnVehicleType            = "Vehicle_Type"
	ColumnAutomobileSales        = "Automobile_Sales"
	ColumnAdvertisingExpenditure = "Advertising_Expenditure"
	ColumnRecession              = "Recession"
	ColumnUnemploymentRate       = "unemployment_rate"
)

// RequiredColumns lists every column a dataset must carry.
var RequiredColumns = []string{
	ColumnYear,
	ColumnMonth,
	ColumnVehicleType,
	ColumnAutomobileSales,
	ColumnAdvertisingExpenditure,
	ColumnRecession,
	ColumnUnemploymentRate,
}

// Record is one monthly observation for a vehicle type.
type Record struct {
	Year                   int             `json:"year"`
	Month                  Month           `json:"month"`
	VehicleType            string          `json:"vehicle_type"`
	AutomobileSales        decimal.Decimal `json:"automobile_sales"`
	AdvertisingExpenditure decimal.Decimal `json:"advertising_expenditure"`
	Recession              bool            `json:"recession"`
	UnemploymentRate       float64         `json:"unemployment_rate"`
}
