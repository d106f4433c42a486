package models

import (
	"fmt"
	"strings"
)

// PackingCategories are the accepted values of PackingItem.Category.
var PackingCategories = []string{"ropa", "playa", "higiene", "electronica", "documentos", "medicinas", "accesorios", "otro"}

// PackingItem is one entry of the packing checklist.
type PackingItem struct {
	ID       string
	Name     string
	Category string

	// Packed is the shared packed flag. It is only meaningful when the
	// packing domain uses shared tracking.
	Packed bool

	CreatedAt int64
}

// Validate checks name and category.
func (i *PackingItem) Validate() error {
	if strings.TrimSpace(i.Name) == "" {
		return ErrEmptyName
	}
	if !contains(PackingCategories, i.Category) {
		return fmt.Errorf("invalid packing category %q", i.Category)
	}
	return nil
}

// IsPackingCategory reports whether c is one of PackingCategories.
func IsPackingCategory(c string) bool {
	return contains(PackingCategories, c)
}

// PackingSuggestion groups ready-made checklist entries by category.
type PackingSuggestion struct {
	Category string
	Items    []string
}

// PackingSuggestions is the fixed suggestion table offered to admins.
var PackingSuggestions = []PackingSuggestion{
	{Category: "ropa", Items: []string{"Trajes de baño", "Camisetas", "Shorts", "Vestido playero", "Sandalias", "Gorra/Sombrero"}},
	{Category: "playa", Items: []string{"Toalla de playa", "Bloqueador solar", "Snorkel y visor", "Bolsa impermeable", "Chanclas acuáticas"}},
	{Category: "higiene", Items: []string{"Cepillo de dientes", "Pasta dental", "Champú", "Jabón", "Desodorante", "Cepillo para cabello"}},
	{Category: "electronica", Items: []string{"Cargador de celular", "Cámara", "Audífonos", "Power bank", "Adaptador de corriente"}},
	{Category: "documentos", Items: []string{"Cédula", "Tarjetas de crédito", "Seguro de viaje", "Reservas impresas", "Pasaporte (si aplica)"}},
	{Category: "medicinas", Items: []string{"Analgésicos", "Antiácidos", "Antialérgicos", "Band-aids", "Repelente de insectos"}},
	{Category: "accesorios", Items: []string{"Lentes de sol", "Reloj", "Mochila pequeña", "Riñonera", "Bolsas plásticas"}},
}

// IsSuggested reports whether name is listed under category in PackingSuggestions.
func IsSuggested(category, name string) bool {
	for _, s := range PackingSuggestions {
		if s.Category == category {
			return contains(s.Items, name)
		}
	}
	return false
}
