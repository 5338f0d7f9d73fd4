package services

import "github.com/shopspring/decimal"

// Product is a fixed-term investment plan. The catalog is static; tiers
// and prices only change with a release.
type Product struct {
	Tier        int             `json:"tier"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	DailyIncome decimal.Decimal `json:"daily_income"`
	TotalIncome decimal.Decimal `json:"total_income"`
	TermDays    int             `json:"term_days"`
}

var productCatalog = []Product{
	{Tier: 1, Name: "VIP 1", Price: decimal.NewFromInt(60), DailyIncome: decimal.NewFromInt(9), TotalIncome: decimal.NewFromInt(270), TermDays: 30},
	{Tier: 2, Name: "VIP 2", Price: decimal.NewFromInt(100), DailyIncome: decimal.NewFromInt(25), TotalIncome: decimal.NewFromInt(750), TermDays: 30},
	{Tier: 3, Name: "VIP 3", Price: decimal.NewFromInt(150), DailyIncome: decimal.NewFromInt(30), TotalIncome: decimal.NewFromInt(900), TermDays: 30},
	{Tier: 4, Name: "VIP 4", Price: decimal.NewFromInt(200), DailyIncome: decimal.NewFromInt(40), TotalIncome: decimal.NewFromInt(1200), TermDays: 30},
	{Tier: 5, Name: "VIP 5", Price: decimal.NewFromInt(400), DailyIncome: decimal.NewFromInt(45), TotalIncome: decimal.NewFromInt(1350), TermDays: 30},
}

// Products returns the full product catalog
func Products() []Product {
	out := make([]Product, len(productCatalog))
	copy(out, productCatalog)
	return out
}

// ProductByTier returns the product for a tier, or ErrUnknownTier
func ProductByTier(tier int) (Product, error) {
	for _, p := range productCatalog {
		if p.Tier == tier {
			return p, nil
		}
	}
	return Product{}, ErrUnknownTier
}
