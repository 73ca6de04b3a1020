package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrUnknownCondition = errors.New("unknown condition")
	ErrUnknownCategory  = errors.New("unknown category")
)

// Condition is the wear grade of a second-hand item
type Condition string

const (
	ConditionLikeNew   Condition = "Like New"
	ConditionExcellent Condition = "Excellent"
	ConditionVeryGood  Condition = "Very Good"
	ConditionGood      Condition = "Good"
	ConditionFair      Condition = "Fair"
)

var conditionOrder = []Condition{
	ConditionLikeNew,
	ConditionExcellent,
	ConditionVeryGood,
	ConditionGood,
	ConditionFair,
}

// Conditions returns every condition, best first
func Conditions() []Condition {
	out := make([]Condition, len(conditionOrder))
	copy(out, conditionOrder)
	return out
}

// ParseCondition returns the condition named by s
func ParseCondition(s string) (Condition, error) {
	for _, c := range conditionOrder {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCondition, s)
}

// Rank is the position of c in the condition order, 0 being the best.
// Unknown conditions rank last.
func (c Condition) Rank() int {
	for i, known := range conditionOrder {
		if known == c {
			return i
		}
	}
	return len(conditionOrder)
}

// Category groups listings for browsing
type Category string

// CategoryAll is the browse sentinel that disables the category predicate
const CategoryAll Category = "All"

const (
	CategoryClothing    Category = "Clothing"
	CategoryElectronics Category = "Electronics"
	CategoryFurniture   Category = "Furniture"
	CategoryBooks       Category = "Books"
	CategoryInstruments Category = "Musical Instruments"
	CategoryAccessories Category = "Accessories"
	CategorySports      Category = "Sports"
	CategoryMusic       Category = "Music"
	CategoryHomeGarden  Category = "Home & Garden"
)

var listingCategories = []Category{
	CategoryClothing,
	CategoryElectronics,
	CategoryFurniture,
	CategoryBooks,
	CategoryInstruments,
	CategoryAccessories,
	CategorySports,
	CategoryMusic,
	CategoryHomeGarden,
}

// ListingCategories returns the categories a product can be listed under
func ListingCategories() []Category {
	out := make([]Category, len(listingCategories))
	copy(out, listingCategories)
	return out
}

// BrowseCategories returns the sentinel followed by every listing category
func BrowseCategories() []Category {
	return append([]Category{CategoryAll}, listingCategories...)
}

// ParseCategory accepts any listing category or the browse sentinel
func ParseCategory(s string) (Category, error) {
	for _, c := range BrowseCategories() {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

// IsListable reports whether a product may be listed under c
func (c Category) IsListable() bool {
	for _, known := range listingCategories {
		if known == c {
			return true
		}
	}
	return false
}

// ListingStatus tracks whether a listed item is still for sale
type ListingStatus string

const (
	ListingActive ListingStatus = "Active"
	ListingSold   ListingStatus = "Sold"
)

// Product represents a listed item in the catalog
type Product struct {
	ID          int64           `json:"id" db:"id"`
	Title       string          `json:"title" db:"title"`
	Description string          `json:"description" db:"description"`
	Price       decimal.Decimal `json:"price" db:"price"`
	Category    Category        `json:"category" db:"category"`
	Condition   Condition       `json:"condition" db:"condition"`
	Image       string          `json:"image" db:"image_url"`
	Images      []string        `json:"images" db:"images"`
	Seller      string          `json:"seller" db:"seller"`
	PostedDate  time.Time       `json:"posted_date" db:"posted_at"`
	Location    string          `json:"location" db:"location"`
	Tags        []string        `json:"tags" db:"tags"`
	Status      ListingStatus   `json:"status" db:"status"`
	Views       int             `json:"views" db:"views"`
	Likes       int             `json:"likes" db:"likes"`
}

// ProductDraft carries the seller-supplied fields of a new listing
type ProductDraft struct {
	Title       string
	Description string
	Price       decimal.Decimal
	Category    Category
	Condition   Condition
	Images      []string
	Seller      string
	Location    string
	Tags        []string
	PostedDate  time.Time
}

// NewProduct validates a draft and builds an active, unsaved product from it
func NewProduct(d ProductDraft) (*Product, error) {
	var errs ValidationErrors

	title := strings.TrimSpace(d.Title)
	if title == "" {
		errs = append(errs, FieldError{Field: "title", Message: "is required"})
	}
	description := strings.TrimSpace(d.Description)
	if description == "" {
		errs = append(errs, FieldError{Field: "description", Message: "is required"})
	}
	if d.Price.IsNegative() {
		errs = append(errs, FieldError{Field: "price", Message: "must not be negative"})
	} else if !d.Price.Equal(d.Price.Round(2)) {
		errs = append(errs, FieldError{Field: "price", Message: "must have at most two decimal places"})
	}
	if !d.Category.IsListable() {
		errs = append(errs, FieldError{Field: "category", Message: "must be a listing category"})
	}
	if d.Condition.Rank() == len(conditionOrder) {
		errs = append(errs, FieldError{Field: "condition", Message: "must be a known condition"})
	}
	seller := strings.TrimSpace(d.Seller)
	if seller == "" {
		errs = append(errs, FieldError{Field: "seller", Message: "is required"})
	}

	images := make([]string, 0, len(d.Images))
	for _, img := range d.Images {
		if img = strings.TrimSpace(img); img != "" {
			images = append(images, img)
		}
	}
	if len(images) == 0 {
		errs = append(errs, FieldError{Field: "images", Message: "at least one image is required"})
	}

	if len(errs) > 0 {
		return nil, errs
	}

	tags := make([]string, 0, len(d.Tags))
	for _, tag := range d.Tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}

	posted := d.PostedDate
	if posted.IsZero() {
		posted = time.Now()
	}

	return &Product{
		Title:       title,
		Description: description,
		Price:       d.Price,
		Category:    d.Category,
		Condition:   d.Condition,
		Image:       images[0],
		Images:      images,
		Seller:      seller,
		PostedDate:  DateOf(posted),
		Location:    strings.TrimSpace(d.Location),
		Tags:        tags,
		Status:      ListingActive,
	}, nil
}

// DateOf truncates t to its calendar date in UTC
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
