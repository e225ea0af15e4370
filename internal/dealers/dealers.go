package dealers

// Dealer is the public record handed back to callers. Records are sourced
// verbatim from the seeded directory; the model never constructs them.
type Dealer struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

type entry struct {
	Dealer
	products []string
}

// Directory is a static, read-only agro-dealer lookup keyed by the product
// categories each dealer stocks. Loaded once at process start.
type Directory struct {
	entries []entry
}

// Default seeds the directory with the stock dealer records.
// TODO: externalize this as configuration once a real dealer feed exists.
func Default() *Directory {
	return &Directory{entries: []entry{
		{Dealer{Name: "Kisan Kendra", Address: "123, Market Road, Pune", Phone: "9876543210"}, []string{"fungicide", "bio-pesticide", "fertilizer"}},
		{Dealer{Name: "Farm Essentials", Address: "45, Agri Chowk, Nashik", Phone: "9876543211"}, []string{"pesticide", "fungicide", "nematicide"}},
		{Dealer{Name: "Green Growth Agro", Address: "78, Village Main St, Baramati", Phone: "9876543212"}, []string{"bio-pesticide", "organic_fertilizer", "fungicide"}},
		{Dealer{Name: "Crop Care India", Address: "99, Highway Junction, Satara", Phone: "9876543213"}, []string{"pesticide", "fertilizer", "growth_promoter"}},
	}}
}

// New builds a directory from explicit records; used by tests and by callers
// that inject their own seed data.
func New(records ...Record) *Directory {
	d := &Directory{}
	for _, r := range records {
		d.entries = append(d.entries, entry{Dealer{r.Name, r.Address, r.Phone}, r.Products})
	}
	return d
}

// Record is the seed shape for New.
type Record struct {
	Name     string
	Address  string
	Phone    string
	Products []string
}

// FindByCategory returns every dealer stocking the given product category,
// by exact string match. The category "none" and unknown categories yield an
// empty slice, never an error.
func (d *Directory) FindByCategory(category string) []Dealer {
	out := []Dealer{}
	if category == "" || category == "none" {
		return out
	}
	for _, e := range d.entries {
		for _, p := range e.products {
			if p == category {
				out = append(out, e.Dealer)
				break
			}
		}
	}
	return out
}
