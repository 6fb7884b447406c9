package category

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify_KeywordMatches(t *testing.T) {
	tests := []struct {
		description string
		expected    string
	}{
		{"Morning coffee", FoodAndDrinks},
		{"taco bell", FoodAndDrinks},
		{"Weekly SUPERMARKET run", Groceries},
		{"new clothes", Shopping},
		{"flight to Tokyo", Travel},
		{"car repair", Services},
		{"Netflix", Entertainment},
		{"dentist appointment", Health},
		{"metro card", Transport},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			assert.Equal(t, tt.expected, Classify(tt.description))
		})
	}
}

func TestClassify_Fallback(t *testing.T) {
	for _, description := range []string{"", "   ", "xyzzy", "quarterly widget"} {
		assert.Equal(t, Services, Classify(description), "description %q", description)
	}
}

func TestClassify_TableOrderBreaksTies(t *testing.T) {
	// "store" is a Groceries and a Shopping keyword.
	assert.Equal(t, Groceries, Classify("corner store"))
	// "bus" is a Travel and a Transport keyword.
	assert.Equal(t, Travel, Classify("bus"))
	// coffee (Food and Drinks) beats ticket (Entertainment).
	assert.Equal(t, FoodAndDrinks, Classify("coffee before the concert ticket"))
}

func TestClassify_NeverLeavesRequiredSet(t *testing.T) {
	for _, description := range []string{"coffee", "rent", "salary", "freelance gig", "invest"} {
		assert.True(t, IsRequired(Classify(description)), "description %q", description)
	}
}

func TestRequired_Order(t *testing.T) {
	assert.Equal(t, []string{
		FoodAndDrinks, Groceries, Shopping, Travel, Services, Entertainment, Health, Transport,
	}, Required())
}

func TestIsRequired(t *testing.T) {
	assert.True(t, IsRequired(Travel))
	assert.False(t, IsRequired(Rent))
	assert.False(t, IsRequired(Uncategorized))
	assert.False(t, IsRequired("travel"))
	assert.False(t, IsRequired(""))
}

func TestResolve(t *testing.T) {
	assert.Equal(t, Travel, Resolve(Travel, "taco bell"))
	assert.Equal(t, FoodAndDrinks, Resolve("Bogus", "taco bell"))
	assert.Equal(t, FoodAndDrinks, Resolve("", "taco bell"))
	assert.Equal(t, Services, Resolve(Uncategorized, ""))
}

func TestSeed(t *testing.T) {
	seeds := Seed()
	assert.Len(t, seeds, 12)
	assert.Equal(t, Seeded{Name: FoodAndDrinks, Kind: KindExpense}, seeds[0])
	assert.Contains(t, seeds, Seeded{Name: Rent, Kind: KindExpense})
	assert.Contains(t, seeds, Seeded{Name: Salary, Kind: KindIncome})
	assert.Contains(t, seeds, Seeded{Name: Freelance, Kind: KindIncome})
}

func TestParseKind(t *testing.T) {
	kind, ok := ParseKind(" income ")
	assert.True(t, ok)
	assert.Equal(t, KindIncome, kind)

	kind, ok = ParseKind("Expense")
	assert.True(t, ok)
	assert.Equal(t, KindExpense, kind)

	_, ok = ParseKind("transfer")
	assert.False(t, ok)
	assert.Equal(t, "Expense", KindExpense.String())
}
