package models

import "fmt"

// FoodCategory is where a food sits in the introduction lifecycle.
type FoodCategory string

const (
	FoodCategoryNew       FoodCategory = "new"
	FoodCategorySafe      FoodCategory = "safe"
	FoodCategorySometimes FoodCategory = "sometimes"
	FoodCategoryNotYet    FoodCategory = "notYet"
)

// FoodCategories lists every category in board order.
var FoodCategories = []FoodCategory{
	FoodCategoryNew,
	FoodCategorySafe,
	FoodCategorySometimes,
	FoodCategoryNotYet,
}

func (c FoodCategory) Valid() bool {
	switch c {
	case FoodCategoryNew, FoodCategorySafe, FoodCategorySometimes, FoodCategoryNotYet:
		return true
	}
	return false
}

// ParseFoodCategory accepts the stored spelling of a category.
func ParseFoodCategory(s string) (FoodCategory, error) {
	c := FoodCategory(s)
	if !c.Valid() {
		return "", fmt.Errorf("unknown food category %q", s)
	}
	return c, nil
}

// FoodItem tracks exposure to a single food. ImageFile, when set, is a
// BlobStore path.
type FoodItem struct {
	ID        string       `json:"id"`
	ChildName string       `json:"childName"`
	Name      string       `json:"name"`
	Category  FoodCategory `json:"category"`
	ImageFile string       `json:"imageFile,omitempty"`
	ImageURL  string       `json:"imageUrl,omitempty"`
	Notes     string       `json:"notes"`
	Timestamp int64        `json:"timestamp"`
	Synced    bool         `json:"synced"`
}
