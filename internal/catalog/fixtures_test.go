package catalog

import (
	"time"

	"ecofinds/internal/domain"

	"github.com/shopspring/decimal"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func fixtureCatalog() []domain.Product {
	mk := func(id int64, title, desc, price string, cat domain.Category, cond domain.Condition, posted string, tags ...string) domain.Product {
		return domain.Product{
			ID:          id,
			Title:       title,
			Description: desc,
			Price:       decimal.RequireFromString(price),
			Category:    cat,
			Condition:   cond,
			PostedDate:  day(posted),
			Tags:        tags,
			Status:      domain.ListingActive,
		}
	}
	return []domain.Product{
		mk(1, "Vintage Leather Jacket", "Classic brown leather jacket in excellent condition", "89.99", "Clothing", domain.ConditionExcellent, "2024-01-20", "vintage", "leather", "jacket", "brown"),
		mk(2, "Retro Coffee Table", "Mid-century modern coffee table with hairpin legs", "150.00", "Furniture", domain.ConditionGood, "2024-01-18", "retro", "coffee table", "mid-century", "furniture"),
		mk(3, "iPhone 12 Pro", "Unlocked iPhone 12 Pro, 128GB, minor scratches", "450.00", "Electronics", domain.ConditionGood, "2024-01-22", "iphone", "smartphone", "apple", "unlocked"),
		mk(4, "Hardcover Book Collection", "Set of 15 classic literature books in great condition", "35.00", "Books", domain.ConditionVeryGood, "2024-01-15", "books", "literature", "classic", "collection"),
		mk(5, "Acoustic Guitar", "Yamaha acoustic guitar, perfect for beginners", "120.00", "Musical Instruments", domain.ConditionGood, "2024-01-19", "guitar", "acoustic", "yamaha", "music"),
		mk(6, "Designer Handbag", "Authentic Coach handbag, gently used", "180.00", "Accessories", domain.ConditionVeryGood, "2024-01-21", "handbag", "coach", "designer", "luxury"),
		mk(7, "Vintage Vinyl Records", "Collection of 20 classic rock vinyl records from the 70s", "75.00", "Music", domain.ConditionGood, "2024-01-17", "vinyl", "records", "music", "classic rock"),
		mk(8, "Exercise Bike", "Stationary exercise bike, barely used, great for home workouts", "200.00", "Sports", domain.ConditionLikeNew, "2024-01-16", "exercise", "bike", "fitness", "workout"),
	}
}

func ids(products []domain.Product) []int64 {
	out := make([]int64, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}
