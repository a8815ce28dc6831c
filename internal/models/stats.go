package models

type AdminStats struct {
	UserCount    int64   `json:"userCount"`
	ProductCount int64   `json:"productCount"`
	OrderCount   int64   `json:"orderCount"`
	Revenue      float64 `json:"revenue"`
}

// CategoryStat is one row of the per-category order rollup.
type CategoryStat struct {
	Category string  `bson:"category" json:"category"`
	Quantity int     `bson:"quantity" json:"quantity"`
	Revenue  float64 `bson:"revenue" json:"revenue"`
}
