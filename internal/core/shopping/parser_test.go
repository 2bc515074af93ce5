package shopping

import "testing"

func TestParseIngredient(t *testing.T) {
	tests := []struct {
		raw  string
		want ParsedIngredient
	}{
		{"2 oz Tequila Blanco", ParsedIngredient{Name: "Tequila Blanco", Size: "2 oz"}},
		{"1 1/2 oz London Dry Gin", ParsedIngredient{Name: "London Dry Gin", Size: "1 1/2 oz"}},
		{"2 oz Hendrick's Gin", ParsedIngredient{Name: "Gin", Brand: "Hendrick's", Size: "2 oz"}},
		{"Tito's Vodka", ParsedIngredient{Name: "Vodka", Brand: "Tito's"}},
		{"1.5 oz Bacardi White Rum", ParsedIngredient{Name: "White Rum", Brand: "Bacardi", Size: "1.5 oz"}},
		{"3/4 oz fresh lime juice", ParsedIngredient{Name: "Lime Juice", Size: "3/4 oz"}},
		{"2 dashes Angostura bitters", ParsedIngredient{Name: "Angostura Bitters", Size: "2 dashes"}},
		{"1/2 oz simple syrup (1:1)", ParsedIngredient{Name: "Simple Syrup", Size: "1/2 oz", Notes: "1:1"}},
		{"Lime wedge, for garnish", ParsedIngredient{Name: "Lime Wedge", Notes: "for garnish"}},
		{"1 egg white", ParsedIngredient{Name: "Egg White", Size: "1"}},
		{"Ginger beer", ParsedIngredient{Name: "Ginger Beer"}},
		{"1½ oz gin", ParsedIngredient{Name: "Gin", Size: "1½ oz"}},
		{"1 ½ oz gin", ParsedIngredient{Name: "Gin", Size: "1 ½ oz"}},
		{".75 oz lime juice", ParsedIngredient{Name: "Lime Juice", Size: ".75 oz"}},
		{"1½ oz Beefeater Gin", ParsedIngredient{Name: "Gin", Brand: "Beefeater", Size: "1½ oz"}},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got := ParseIngredient(tt.raw)
			if got != tt.want {
				t.Fatalf("ParseIngredient(%q) = %+v, want %+v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestBrandPrefixIgnoresNumbers(t *testing.T) {
	tests := []struct {
		words []string
		want  int
	}{
		{[]string{"1½", "Gin"}, 0},
		{[]string{"12", "Year", "Rum"}, 0},
		{[]string{"Plantation", "Rum"}, 1},
	}
	for _, tt := range tests {
		if got := brandPrefix(tt.words); got != tt.want {
			t.Errorf("brandPrefix(%q) = %d, want %d", tt.words, got, tt.want)
		}
	}
}

func TestCategorize(t *testing.T) {
	tests := []struct {
		name     string
		category Category
		sub      string
	}{
		{"Angostura Bitters", CategoryBitters, "aromatic"},
		{"Orange Bitters", CategoryBitters, "orange"},
		{"Simple Syrup", CategorySyrup, "simple"},
		{"Grenadine", CategorySyrup, "grenadine"},
		{"Sweet Vermouth", CategorySpirits, "sweet vermouth"},
		{"Orange Liqueur", CategorySpirits, "orange liqueur"},
		{"Campari", CategorySpirits, "liqueur"},
		{"London Dry Gin", CategorySpirits, "gin"},
		{"Tequila Blanco", CategorySpirits, "tequila"},
		{"Bourbon", CategorySpirits, "whiskey"},
		{"Lime Juice", CategoryMixers, "juice"},
		{"Ginger Beer", CategoryMixers, "soft drink"},
		{"Tonic Water", CategoryMixers, "tonic"},
		{"Club Soda", CategoryMixers, "soda"},
		{"Lime Wedge", CategoryGarnish, "citrus"},
		{"Mint Leaves", CategoryGarnish, "herb"},
		{"Luxardo Maraschino", CategorySpirits, "liqueur"},
		{"Cocktail Cherry", CategoryGarnish, "garnish"},
		{"Ice", CategoryOther, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, sub := Categorize(tt.name)
			if c != tt.category || sub != tt.sub {
				t.Fatalf("Categorize(%q) = %s/%s, want %s/%s", tt.name, c, sub, tt.category, tt.sub)
			}
		})
	}
}

func TestCategorizeWithCustomRules(t *testing.T) {
	rules := []Rule{rule(`ice`, CategoryOther, "ice")}
	c, sub := CategorizeWith(rules, "Crushed Ice")
	if c != CategoryOther || sub != "ice" {
		t.Fatalf("got %s/%s", c, sub)
	}
	if c, _ := CategorizeWith(rules, "Gin"); c != CategoryOther {
		t.Fatalf("got %s", c)
	}
}

func TestPriceEstimators(t *testing.T) {
	a := NewRandomPriceEstimator(42)
	b := NewRandomPriceEstimator(42)
	for i := 0; i < 10; i++ {
		pa := a.Estimate(CategorySpirits, "gin", "Gin")
		pb := b.Estimate(CategorySpirits, "gin", "Gin")
		if pa != pb {
			t.Fatalf("seeded estimators diverged: %v vs %v", pa, pb)
		}
		if pa < 25 || pa > 55 {
			t.Fatalf("spirit price %v outside range", pa)
		}
	}

	if p := a.Estimate(CategorySpirits, "sweet vermouth", "Carpano Antica Sweet Vermouth"); p != 34.99 {
		t.Fatalf("vermouth price = %v", p)
	}

	var table TablePriceEstimator
	if p := table.Estimate(CategoryGarnish, "citrus", "Lime"); p != 3 {
		t.Fatalf("garnish midpoint = %v", p)
	}
	if p := table.Estimate("unknown", "", "Thing"); p != 6.5 {
		t.Fatalf("fallback midpoint = %v", p)
	}
}
