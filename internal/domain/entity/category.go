// Package entity defines the core business entities for the domain layer.
package entity

// CategoryID identifies one of the closed set of expense categories.
type CategoryID string

// The full set of expense categories. The catalog is fixed at deploy time
// and is not user-extensible.
const (
	CategoryAlimentacao CategoryID = "alimentacao"
	CategoryTransporte  CategoryID = "transporte"
	CategoryLazer       CategoryID = "lazer"
	CategoryMoradia     CategoryID = "moradia"
	CategorySaude       CategoryID = "saude"
	CategoryEducacao    CategoryID = "educacao"
	CategoryOutros      CategoryID = "outros"
)

// Category is a static catalog entry describing one expense category.
type Category struct {
	ID          CategoryID
	Label       string
	Description string
	Icon        string
}

// Catalog is an immutable, ordered set of expense categories. It is built
// once at startup and shared by reference; it must never be mutated after
// construction, which makes unsynchronized concurrent reads safe.
type Catalog struct {
	entries []Category
	byID    map[CategoryID]Category
}

// DefaultCatalog returns the catalog of the seven expense categories in
// their canonical order.
func DefaultCatalog() *Catalog {
	entries := []Category{
		{
			ID:          CategoryAlimentacao,
			Label:       "Alimentação",
			Description: "Despesas com refeições, mercado, delivery, etc.",
			Icon:        "restaurant",
		},
		{
			ID:          CategoryTransporte,
			Label:       "Transporte",
			Description: "Despesas com combustível, passagens, táxi, aplicativos de transporte, etc.",
			Icon:        "directions_car",
		},
		{
			ID:          CategoryLazer,
			Label:       "Lazer",
			Description: "Despesas com cinema, teatro, parques, viagens, etc.",
			Icon:        "sports_esports",
		},
		{
			ID:          CategoryMoradia,
			Label:       "Moradia",
			Description: "Despesas com aluguel, condomínio, água, luz, internet, etc.",
			Icon:        "home",
		},
		{
			ID:          CategorySaude,
			Label:       "Saúde",
			Description: "Despesas com plano de saúde, medicamentos, consultas, etc.",
			Icon:        "local_hospital",
		},
		{
			ID:          CategoryEducacao,
			Label:       "Educação",
			Description: "Despesas com mensalidades, cursos, livros, etc.",
			Icon:        "school",
		},
		{
			ID:          CategoryOutros,
			Label:       "Outros",
			Description: "Outras despesas que não se encaixam nas categorias anteriores.",
			Icon:        "more_horiz",
		},
	}

	byID := make(map[CategoryID]Category, len(entries))
	for _, e := range entries {
		byID[e.ID] = e
	}

	return &Catalog{entries: entries, byID: byID}
}

// Entries returns the catalog entries in canonical order. Callers must not
// modify the returned slice.
func (c *Catalog) Entries() []Category {
	return c.entries
}

// IDs returns the category identifiers in canonical order.
func (c *Catalog) IDs() []CategoryID {
	ids := make([]CategoryID, len(c.entries))
	for i, e := range c.entries {
		ids[i] = e.ID
	}
	return ids
}

// Get returns the entry for the given id and whether it exists.
func (c *Catalog) Get(id CategoryID) (Category, bool) {
	entry, ok := c.byID[id]
	return entry, ok
}

// Contains reports whether id is part of the catalog.
func (c *Catalog) Contains(id CategoryID) bool {
	_, ok := c.byID[id]
	return ok
}

// Len returns the number of catalog entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Label returns the display label for id, falling back to the raw id when
// it is unknown.
func (c *Catalog) Label(id CategoryID) string {
	if entry, ok := c.byID[id]; ok {
		return entry.Label
	}
	return string(id)
}

// Icon returns the icon for id, falling back to "help" when it is unknown.
func (c *Catalog) Icon(id CategoryID) string {
	if entry, ok := c.byID[id]; ok {
		return entry.Icon
	}
	return "help"
}
