package models

// CatalogCategory is a static browsing category.
type CatalogCategory struct {
	ID          string
	Name        string
	Description string
}

// CatalogItem is one product inside a static catalog category.
type CatalogItem struct {
	ID          string
	Category    string
	Name        string
	Description string
	Price       float64
	Image       string
}
