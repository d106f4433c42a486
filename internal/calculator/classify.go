package calculator

import (
	"strings"

	"github.com/mmynk/tripplanner/internal/models"
)

// CategoryRule assigns Category when any keyword occurs in the text.
type CategoryRule struct {
	Category models.ExpenseCategory
	Keywords []string
}

// DefaultCategoryRules is evaluated top to bottom; the first match wins.
// Transport is checked before lodging, so "Hotel transfer" is transport.
var DefaultCategoryRules = []CategoryRule{
	{
		Category: models.CategoryTransport,
		Keywords: []string{"vuelo", "avión", "avion", "aeropuerto", "traslado", "transfer", "transporte", "bus", "taxi", "lancha", "ferry"},
	},
	{
		Category: models.CategoryLodging,
		Keywords: []string{"hotel", "hospedaje", "alojamiento", "posada", "hostal", "reserva", "check-in", "checkout"},
	},
	{
		Category: models.CategoryFood,
		Keywords: []string{"desayuno", "almuerzo", "cena", "comida", "restaurante", "brunch", "cóctel", "coctel"},
	},
	{
		Category: models.CategoryShopping,
		Keywords: []string{"souvenir", "compras", "tienda", "mercado", "artesanía", "artesania"},
	},
}

// Classifier maps free text to an expense category with an ordered rule table.
type Classifier struct {
	rules    []CategoryRule
	fallback models.ExpenseCategory
}

// NewClassifier builds a classifier. Keywords are matched case-insensitively.
func NewClassifier(rules []CategoryRule, fallback models.ExpenseCategory) *Classifier {
	lowered := make([]CategoryRule, len(rules))
	for i, rule := range rules {
		keywords := make([]string, len(rule.Keywords))
		for j, kw := range rule.Keywords {
			keywords[j] = strings.ToLower(kw)
		}
		lowered[i] = CategoryRule{Category: rule.Category, Keywords: keywords}
	}
	return &Classifier{rules: lowered, fallback: fallback}
}

// DefaultClassifier uses DefaultCategoryRules and falls back to activities.
func DefaultClassifier() *Classifier {
	return NewClassifier(DefaultCategoryRules, models.CategoryActivities)
}

// Classify matches title and description together against the rules.
func (c *Classifier) Classify(title, description string) models.ExpenseCategory {
	text := strings.ToLower(title + " " + description)
	for _, rule := range c.rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(text, kw) {
				return rule.Category
			}
		}
	}
	return c.fallback
}
