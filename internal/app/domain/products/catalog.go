package products

import (
	"math/rand"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/FACorreiaa/go-shopfront/internal/app/models"
)

// Catalog is the static browsing catalog: a fixed set of categories and
// items compiled into the binary. Lookups never touch the database.
type Catalog struct {
	categories []models.CatalogCategory
	items      map[string][]models.CatalogItem
}

var titler = cases.Title(language.AmericanEnglish)

func category(id, description string) models.CatalogCategory {
	return models.CatalogCategory{
		ID:          id,
		Name:        titler.String(id),
		Description: description,
	}
}

// NewCatalog builds the built-in catalog.
func NewCatalog() *Catalog {
	c := &Catalog{
		categories: []models.CatalogCategory{
			category("audio", "Headphones, speakers and everything in between."),
			category("lighting", "Lamps and fixtures for desks and dark corners."),
			category("desk", "Keyboards, stands and the rest of the workspace."),
		},
		items: map[string][]models.CatalogItem{
			"audio": {
				{ID: "studio-headphones", Category: "audio", Name: "Studio Headphones", Description: "Closed-back over-ear headphones with a flat response.", Price: 129.00, Image: "/assets/static/studio-headphones.jpg"},
				{ID: "shelf-speakers", Category: "audio", Name: "Shelf Speakers", Description: "Compact powered speakers for small rooms.", Price: 199.00, Image: "/assets/static/shelf-speakers.jpg"},
				{ID: "usb-microphone", Category: "audio", Name: "USB Microphone", Description: "Cardioid condenser microphone with a desk stand.", Price: 89.00, Image: "/assets/static/usb-microphone.jpg"},
			},
			"lighting": {
				{ID: "desk-lamp", Category: "lighting", Name: "Desk Lamp", Description: "Adjustable arm lamp with warm and cool modes.", Price: 45.00, Image: "/assets/static/desk-lamp.jpg"},
				{ID: "monitor-bar", Category: "lighting", Name: "Monitor Light Bar", Description: "Clip-on bar that lights the desk, not the screen.", Price: 59.00, Image: "/assets/static/monitor-bar.jpg"},
			},
			"desk": {
				{ID: "mechanical-keyboard", Category: "desk", Name: "Mechanical Keyboard", Description: "Tenkeyless board with hot-swappable switches.", Price: 115.00, Image: "/assets/static/mechanical-keyboard.jpg"},
				{ID: "laptop-stand", Category: "desk", Name: "Laptop Stand", Description: "Aluminium stand with adjustable height.", Price: 39.00, Image: "/assets/static/laptop-stand.jpg"},
				{ID: "cable-tray", Category: "desk", Name: "Cable Tray", Description: "Under-desk tray that swallows power strips.", Price: 25.00, Image: "/assets/static/cable-tray.jpg"},
			},
		},
	}
	return c
}

// Categories returns the browsing categories in display order.
func (c *Catalog) Categories() []models.CatalogCategory {
	return c.categories
}

// Category looks up one category by id.
func (c *Catalog) Category(id string) (models.CatalogCategory, bool) {
	for _, cat := range c.categories {
		if cat.ID == id {
			return cat, true
		}
	}
	return models.CatalogCategory{}, false
}

// Items returns the items of a category, nil when the category is unknown.
func (c *Catalog) Items(categoryID string) []models.CatalogItem {
	return c.items[categoryID]
}

// Item looks up one item inside a category.
func (c *Catalog) Item(categoryID, itemID string) (models.CatalogItem, bool) {
	for _, item := range c.items[categoryID] {
		if item.ID == itemID {
			return item, true
		}
	}
	return models.CatalogItem{}, false
}

// RandomItem picks a uniformly random item across all categories.
func (c *Catalog) RandomItem() models.CatalogItem {
	var all []models.CatalogItem
	for _, cat := range c.categories {
		all = append(all, c.items[cat.ID]...)
	}
	return all[rand.Intn(len(all))]
}
