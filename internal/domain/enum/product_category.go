package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// ProductCategory groups sellable products for shift aggregate counters
type ProductCategory int

const (
	ProductCategoryCoffee ProductCategory = 0
	ProductCategoryFood   ProductCategory = 1
	ProductCategoryOther  ProductCategory = 2
)

func (c ProductCategory) String() string {
	return [...]string{"coffee", "food", "other"}[c]
}

func (c ProductCategory) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *ProductCategory) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*c = ProductCategory(i)
		return nil
	}
	*c = ParseProductCategory(str)
	return nil
}

// ParseProductCategory maps a category name to its enum value; unknown
// names fall back to "other".
func ParseProductCategory(s string) ProductCategory {
	switch s {
	case "coffee":
		return ProductCategoryCoffee
	case "food":
		return ProductCategoryFood
	default:
		return ProductCategoryOther
	}
}

func (c ProductCategory) Value() (driver.Value, error) {
	return int64(c), nil
}

func (c *ProductCategory) Scan(value interface{}) error {
	if value == nil {
		*c = ProductCategoryOther
		return nil
	}
	switch v := value.(type) {
	case int64:
		*c = ProductCategory(v)
	case int:
		*c = ProductCategory(v)
	}
	return nil
}
