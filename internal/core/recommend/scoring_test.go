package recommend

import (
	"reflect"
	"testing"

	"mixology-engine/internal/core/cocktail"
)

func negroni() cocktail.Recipe {
	return cocktail.Recipe{
		ID:             "negroni",
		Name:           "Negroni",
		BaseSpirit:     cocktail.SpiritGin,
		FlavorProfiles: []cocktail.Flavor{cocktail.FlavorBitter, cocktail.FlavorHerbal, cocktail.FlavorCitrusy},
		Difficulty:     cocktail.Beginner,
		Tools:          []cocktail.Tool{"jigger"},
		ABV:            24,
	}
}

func ginLover() cocktail.UserProfile {
	return cocktail.UserProfile{
		FavoriteSpirit: cocktail.SpiritGin,
		FlavorProfiles: []cocktail.Flavor{cocktail.FlavorHerbal, cocktail.FlavorBitter},
		SkillLevel:     cocktail.Intermediate,
		AvailableTools: []cocktail.Tool{"jigger", "shaker"},
	}
}

func TestScoreNegroniExample(t *testing.T) {
	got := Score(negroni(), ginLover())

	want := MatchFactors{
		SpiritMatch:   20,
		FlavorMatch:   16,
		SkillMatch:    12,
		ABVMatch:      10,
		ToolsMatch:    10,
		OccasionMatch: 3,
	}
	if got.MatchFactors != want {
		t.Fatalf("factors = %+v, want %+v", got.MatchFactors, want)
	}
	if got.Score != 71 {
		t.Fatalf("score = %d, want 71", got.Score)
	}
	if got.RecipeID != "negroni" {
		t.Fatalf("recipeId = %q", got.RecipeID)
	}
	if len(got.Reasons) == 0 {
		t.Fatal("expected reasons")
	}
	if got.Reasons[0] != "Made with your favorite spirit, Gin" {
		t.Fatalf("first reason = %q", got.Reasons[0])
	}
}

func TestScoreDeterministic(t *testing.T) {
	r, p := negroni(), ginLover()
	first := Score(r, p)
	for i := 0; i < 20; i++ {
		if got := Score(r, p); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d differs: %+v vs %+v", i, got, first)
		}
	}
}

func TestScoreBounds(t *testing.T) {
	maxed := cocktail.Recipe{
		ID:             "max",
		BaseSpirit:     cocktail.SpiritRum,
		SpiritsUsed:    []cocktail.Spirit{cocktail.SpiritRum, cocktail.SpiritGin, cocktail.SpiritVodka},
		FlavorProfiles: []cocktail.Flavor{"sweet", "sour", "fruity", "spicy"},
		Difficulty:     cocktail.Advanced,
		ABV:            12,
	}
	profile := cocktail.UserProfile{
		FavoriteSpirit:    cocktail.SpiritRum,
		SpiritPreferences: []cocktail.Spirit{cocktail.SpiritRum, cocktail.SpiritGin, cocktail.SpiritVodka},
		FlavorProfiles:    []cocktail.Flavor{"sweet", "sour", "fruity", "spicy"},
		SkillLevel:        cocktail.Advanced,
		PreferredABVRange: &cocktail.ABVRange{Min: 10, Max: 15},
		AvailableTools:    []cocktail.Tool{"shaker"},
	}

	got := Score(maxed, profile)
	if got.MatchFactors.SpiritMatch != MaxSpiritMatch {
		t.Fatalf("spirit = %d, want cap %d", got.MatchFactors.SpiritMatch, MaxSpiritMatch)
	}
	if got.MatchFactors.FlavorMatch != MaxFlavorMatch {
		t.Fatalf("flavor = %d, want cap %d", got.MatchFactors.FlavorMatch, MaxFlavorMatch)
	}
	if got.Score < 0 || got.Score > MaxScore {
		t.Fatalf("score out of range: %d", got.Score)
	}

	empty := Score(cocktail.Recipe{ID: "x"}, cocktail.UserProfile{})
	if empty.Score < 0 || empty.Score > MaxScore {
		t.Fatalf("score out of range: %d", empty.Score)
	}
	if empty.Reasons == nil {
		t.Fatal("reasons should be non-nil")
	}
}

func TestScoreSkill(t *testing.T) {
	tests := []struct {
		recipe  cocktail.Difficulty
		profile cocktail.Difficulty
		want    int
	}{
		{cocktail.Intermediate, cocktail.Intermediate, 15},
		{cocktail.Beginner, cocktail.Intermediate, 12},
		{cocktail.Advanced, cocktail.Intermediate, 10},
		{cocktail.Expert, cocktail.Intermediate, 5},
		{cocktail.Beginner, cocktail.Advanced, 5},
		{cocktail.Expert, cocktail.Beginner, 0},
		{cocktail.Beginner, cocktail.Expert, 0},
	}
	for _, tt := range tests {
		got, _ := scoreSkill(cocktail.Recipe{Difficulty: tt.recipe}, cocktail.UserProfile{SkillLevel: tt.profile}, nil)
		if got != tt.want {
			t.Errorf("skill(%s vs %s) = %d, want %d", tt.recipe, tt.profile, got, tt.want)
		}
	}
}

func TestScoreABV(t *testing.T) {
	tests := []struct {
		name    string
		abv     float64
		profile cocktail.UserProfile
		want    int
	}{
		{"no range", 30, cocktail.UserProfile{}, 10},
		{"inside", 18, cocktail.UserProfile{PreferredABVRange: &cocktail.ABVRange{Min: 15, Max: 20}}, 15},
		{"boundary", 20, cocktail.UserProfile{PreferredABVRange: &cocktail.ABVRange{Min: 15, Max: 20}}, 15},
		{"near above", 24, cocktail.UserProfile{PreferredABVRange: &cocktail.ABVRange{Min: 15, Max: 20}}, 8},
		{"near below", 10, cocktail.UserProfile{PreferredABVRange: &cocktail.ABVRange{Min: 15, Max: 20}}, 8},
		{"far", 40, cocktail.UserProfile{PreferredABVRange: &cocktail.ABVRange{Min: 15, Max: 20}}, 0},
		{"low-abv implied", 12, cocktail.UserProfile{AlcoholPreference: cocktail.AlcoholLowABV}, 15},
		{"zero-proof implied", 30, cocktail.UserProfile{AlcoholPreference: cocktail.AlcoholZeroProof}, 0},
		{"explicit wins", 30, cocktail.UserProfile{AlcoholPreference: cocktail.AlcoholZeroProof, PreferredABVRange: &cocktail.ABVRange{Min: 25, Max: 35}}, 15},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := scoreABV(cocktail.Recipe{ABV: tt.abv}, tt.profile, nil)
			if got != tt.want {
				t.Fatalf("abv = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestScoreTools(t *testing.T) {
	tests := []struct {
		name   string
		needed []cocktail.Tool
		have   []cocktail.Tool
		want   int
	}{
		{"no tools either side", nil, nil, 10},
		{"needs tools, none listed", []cocktail.Tool{"shaker"}, nil, 2},
		{"has all", []cocktail.Tool{"shaker"}, []cocktail.Tool{"Shaker", "jigger"}, 10},
		{"missing one", []cocktail.Tool{"shaker", "strainer"}, []cocktail.Tool{"shaker"}, 5},
		{"missing two", []cocktail.Tool{"shaker", "strainer", "muddler"}, []cocktail.Tool{"shaker"}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := scoreTools(cocktail.Recipe{Tools: tt.needed}, cocktail.UserProfile{AvailableTools: tt.have}, nil)
			if got != tt.want {
				t.Fatalf("tools = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestScoreToolsReasons(t *testing.T) {
	recipe := cocktail.Recipe{Tools: []cocktail.Tool{"shaker", "strainer"}}

	_, reasons := scoreTools(recipe, cocktail.UserProfile{AvailableTools: []cocktail.Tool{"shaker"}}, nil)
	if !reflect.DeepEqual(reasons, []string{"You're only missing a strainer"}) {
		t.Fatalf("reasons = %q", reasons)
	}

	_, reasons = scoreTools(recipe, cocktail.UserProfile{AvailableTools: []cocktail.Tool{"shaker", "strainer"}}, nil)
	if !reflect.DeepEqual(reasons, []string{"You have all the tools you need"}) {
		t.Fatalf("reasons = %q", reasons)
	}
}

func TestScoreSpiritOverlap(t *testing.T) {
	r := cocktail.Recipe{
		BaseSpirit:  cocktail.SpiritVodka,
		SpiritsUsed: []cocktail.Spirit{cocktail.SpiritVodka, cocktail.SpiritVodka},
	}
	p := cocktail.UserProfile{SpiritPreferences: []cocktail.Spirit{cocktail.SpiritVodka}}

	got, reasons := scoreSpirit(r, p, nil)
	// preferred base (15) + one distinct overlapping spirit (5)
	if got != 20 {
		t.Fatalf("spirit = %d, want 20", got)
	}
	if len(reasons) != 2 {
		t.Fatalf("reasons = %v", reasons)
	}
}

func TestScoreFlavorNeutral(t *testing.T) {
	got, reasons := scoreFlavor(negroni(), cocktail.UserProfile{}, nil)
	if got != 10 || len(reasons) != 0 {
		t.Fatalf("flavor = %d reasons=%v", got, reasons)
	}

	got, _ = scoreFlavor(negroni(), cocktail.UserProfile{FlavorProfiles: []cocktail.Flavor{"sweet"}}, nil)
	if got != 0 {
		t.Fatalf("flavor = %d, want 0", got)
	}
}
