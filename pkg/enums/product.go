package enums

import "fmt"

// ProductCategory classifies a storefront listing.
type ProductCategory string

const (
	ProductCategoryTea         ProductCategory = "tea"
	ProductCategorySpices      ProductCategory = "spices"
	ProductCategoryHandloom    ProductCategory = "handloom"
	ProductCategoryAyurveda    ProductCategory = "ayurveda"
	ProductCategoryHomeware    ProductCategory = "homeware"
	ProductCategoryAccessories ProductCategory = "accessories"
)

var validProductCategories = []ProductCategory{
	ProductCategoryTea,
	ProductCategorySpices,
	ProductCategoryHandloom,
	ProductCategoryAyurveda,
	ProductCategoryHomeware,
	ProductCategoryAccessories,
}

// String implements fmt.Stringer.
func (p ProductCategory) String() string {
	return string(p)
}

// IsValid reports whether the value is a known ProductCategory.
func (p ProductCategory) IsValid() bool {
	for _, candidate := range validProductCategories {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParseProductCategory converts raw input into a ProductCategory.
func ParseProductCategory(value string) (ProductCategory, error) {
	for _, candidate := range validProductCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product category %q", value)
}
