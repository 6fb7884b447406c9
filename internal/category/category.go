// Package category holds the closed category set and the keyword classifier
// that maps free-text descriptions onto it.
package category

import "strings"

// Kind is the direction of money for a category or transaction.
type Kind int8

const (
	KindIncome Kind = iota
	KindExpense
)

func (k Kind) String() string {
	switch k {
	case KindIncome:
		return "Income"
	case KindExpense:
		return "Expense"
	default:
		return "Unknown"
	}
}

// ParseKind parses "Income" or "Expense" case-insensitively.
func ParseKind(s string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "income":
		return KindIncome, true
	case "expense":
		return KindExpense, true
	default:
		return KindExpense, false
	}
}

const (
	FoodAndDrinks = "Food and Drinks"
	Groceries     = "Groceries"
	Shopping      = "Shopping"
	Travel        = "Travel"
	Services      = "Services"
	Entertainment = "Entertainment"
	Health        = "Health"
	Transport     = "Transport"

	Rent        = "Rent"
	Salary      = "Salary"
	Investments = "Investments"
	Freelance   = "Freelance"

	// Fallback is returned when no keyword matches.
	Fallback = Services

	// Uncategorized is the placeholder used when a caller supplies no category.
	Uncategorized = "Uncategorized"
)

type keywordEntry struct {
	name     string
	keywords []string
}

// keywordTable is walked in order; the first entry with a matching keyword wins.
var keywordTable = []keywordEntry{
	{FoodAndDrinks, []string{"restaurant", "food", "meal", "dine", "cafe", "breakfast", "lunch", "dinner", "pizza", "burger", "taco", "snack", "eatery", "bar", "pub", "drink", "coffee", "tea", "juice", "wine", "beer", "cocktail", "brew"}},
	{Groceries, []string{"grocer", "supermarket", "grocery", "market", "store", "mart"}},
	{Shopping, []string{"shop", "store", "mall", "retail", "clothes", "apparel", "fashion", "electronics", "purchase", "buy"}},
	{Travel, []string{"flight", "airline", "hotel", "taxi", "uber", "lyft", "bus", "train", "travel", "trip", "journey", "booking", "expedia", "airbnb"}},
	{Services, []string{"service", "repair", "clean", "maintenance", "subscription", "consult", "fee", "support", "utility", "internet", "phone", "cell", "insurance"}},
	{Entertainment, []string{"movie", "cinema", "theater", "concert", "music", "game", "netflix", "spotify", "show", "event", "ticket", "amusement", "park"}},
	{Health, []string{"pharmacy", "doctor", "hospital", "clinic", "health", "medicine", "drug", "dentist", "optician", "fitness", "gym", "workout", "yoga"}},
	{Transport, []string{"transport", "bus", "train", "taxi", "uber", "lyft", "metro", "subway", "cab", "ride", "commute", "fare"}},
}

// Classify returns the category for a description. It never returns a name
// outside Required().
func Classify(description string) string {
	desc := strings.ToLower(description)
	if strings.TrimSpace(desc) == "" {
		return Fallback
	}
	for _, entry := range keywordTable {
		for _, keyword := range entry.keywords {
			if strings.Contains(desc, keyword) {
				return entry.name
			}
		}
	}
	return Fallback
}

// Required returns the closed category set in table order.
func Required() []string {
	names := make([]string, len(keywordTable))
	for i, entry := range keywordTable {
		names[i] = entry.name
	}
	return names
}

// IsRequired reports whether name is one of the required categories.
// The comparison is exact.
func IsRequired(name string) bool {
	for _, entry := range keywordTable {
		if entry.name == name {
			return true
		}
	}
	return false
}

// Resolve keeps hint when it is a required category and otherwise falls back
// to classifying the description.
func Resolve(hint, description string) string {
	if strings.TrimSpace(hint) == "" || !IsRequired(hint) {
		return Classify(description)
	}
	return hint
}

// Seeded is a category inserted into an empty store on startup.
type Seeded struct {
	Name string
	Kind Kind
}

// Seed returns the categories every fresh store starts with.
func Seed() []Seeded {
	seeds := make([]Seeded, 0, len(keywordTable)+4)
	for _, name := range Required() {
		seeds = append(seeds, Seeded{Name: name, Kind: KindExpense})
	}
	return append(seeds,
		Seeded{Name: Rent, Kind: KindExpense},
		Seeded{Name: Salary, Kind: KindIncome},
		Seeded{Name: Investments, Kind: KindIncome},
		Seeded{Name: Freelance, Kind: KindIncome},
	)
}
