package models

// Category classifies an expense or a budget.
type Category string

const (
	CategoryFood          Category = "food"
	CategoryTransport     Category = "transport"
	CategoryEntertainment Category = "entertainment"
	CategoryShopping      Category = "shopping"
	CategoryBills         Category = "bills"
	CategoryHealthcare    Category = "healthcare"
	CategoryEducation     Category = "education"
	CategoryOther         Category = "other"
)

// Categories lists every accepted category in display order.
var Categories = []Category{
	CategoryFood,
	CategoryTransport,
	CategoryEntertainment,
	CategoryShopping,
	CategoryBills,
	CategoryHealthcare,
	CategoryEducation,
	CategoryOther,
}

// Valid reports whether c is one of Categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}
