package constants

import "strings"

// Category is the closed set of expense categories.
type Category string

const (
	Fuel           Category = "Fuel"
	OfficeSupplies Category = "OfficeSupplies"
	Telecom        Category = "Telecom"
	Software       Category = "Software"
	Transport      Category = "Transport"
	Accounting     Category = "Accounting"
	Energy         Category = "Energy"
	Rent           Category = "Rent"
	Other          Category = "Other"
)

var allCategories = []Category{
	Fuel,
	OfficeSupplies,
	Telecom,
	Software,
	Transport,
	Accounting,
	Energy,
	Rent,
	Other,
}

// AsStringSlice returns all categories as strings, in declaration order.
func AsStringSlice() []string {
	result := make([]string, len(allCategories))
	for i, cat := range allCategories {
		result[i] = string(cat)
	}
	return result
}

// CategoryRule pairs a category with the document keywords that imply it.
// Rules form an ordered table: the first category with any keyword hit wins,
// so more specific vendors/terms must come before generic ones.
type CategoryRule struct {
	Category Category
	Keywords []string
}

// CategoryRules is the keyword table used for expense category inference.
// Keywords are matched case-insensitively against the whole document text.
var CategoryRules = []CategoryRule{
	{Fuel, []string{"stacja paliw", "paliwo", "benzyna", "diesel", "orlen", "lotos", "circle k", "shell", "bp "}},
	{Telecom, []string{"orange polska", "t-mobile", "play ", "plus gsm", "abonament telefon", "telefon komórkowy"}},
	{Software, []string{"licencja", "subskrypcja", "oprogramowanie", "microsoft", "adobe", "google workspace", "saas"}},
	{Transport, []string{"bilet", "pkp intercity", "uber", "bolt", "taxi", "parking", "autostrada"}},
	{Accounting, []string{"biuro rachunkowe", "księgow", "usługi księgowe"}},
	{Energy, []string{"energia elektryczna", "prąd", "pge ", "tauron", "enea", "gaz ziemny", "pgnig"}},
	{Rent, []string{"czynsz", "najem", "wynajem lokalu", "dzierżawa"}},
	{OfficeSupplies, []string{"artykuły biurowe", "papier ksero", "toner", "tusz do drukarki", "materiały biurowe"}},
}

// InferCategory matches text against CategoryRules and returns the first
// category with a keyword hit. The second return is false when nothing hit.
func InferCategory(text string) (Category, bool) {
	lower := strings.ToLower(text)
	for _, rule := range CategoryRules {
		for _, kw := range rule.Keywords {
			if strings.Contains(lower, kw) {
				return rule.Category, true
			}
		}
	}
	return "", false
}
