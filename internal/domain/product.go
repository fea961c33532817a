package domain

// Product is a read snapshot of a marketplace listing. Product CRUD lives
// outside this service; the booking core only needs the flags and rates.
type Product struct {
	ID               int32  `json:"id"`
	OwnerID          int32  `json:"owner_id"`
	Title            string `json:"title"`
	IsAvailable      bool   `json:"is_available"`
	IsForSale        bool   `json:"is_for_sale"`
	PricePerDayCents int32  `json:"price_per_day_cents"`
	SalePriceCents   int32  `json:"sale_price_cents"`
}
