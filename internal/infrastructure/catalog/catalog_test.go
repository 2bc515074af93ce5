package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"mixology-engine/internal/core/cocktail"
)

const sampleCatalog = `[
  {"id": "negroni", "name": "Negroni", "baseSpirit": "gin", "spiritsUsed": ["gin"],
   "flavorProfiles": ["bitter", "herbal"], "difficulty": "beginner", "abv": 24,
   "tools": ["jigger"], "preparationTime": 3, "saves": 40,
   "ingredients": ["1 oz gin", "1 oz Campari", "1 oz sweet vermouth"]},
  {"id": "margarita", "name": "Margarita", "baseSpirit": "tequila", "spiritsUsed": ["tequila"],
   "flavorProfiles": ["sour"], "difficulty": "beginner", "abv": 18, "tools": ["shaker"],
   "preparationTime": 5}
]`

func TestFileCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recipes.json")
	if err := os.WriteFile(path, []byte(sampleCatalog), 0o644); err != nil {
		t.Fatal(err)
	}

	recipes, err := NewFileCatalog(path).GetAll(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(recipes) != 2 {
		t.Fatalf("len = %d", len(recipes))
	}
	n := recipes[0]
	if n.BaseSpirit != cocktail.SpiritGin || n.Difficulty != cocktail.Beginner || n.Saves != 40 || len(n.Ingredients) != 3 {
		t.Fatalf("negroni = %+v", n)
	}

	if _, err := NewFileCatalog(filepath.Join(t.TempDir(), "missing.json")).GetAll(context.Background()); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestDecodeRecipes(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		want    int
		wantErr bool
	}{
		{"array", sampleCatalog, 2, false},
		{"wrapped", `{"recipes": [{"id": "a", "name": "A"}]}`, 1, false},
		{"empty", `[]`, 0, false},
		{"missing id", `[{"name": "No Id"}]`, 0, true},
		{"duplicate id", `[{"id": "a"}, {"id": "a"}]`, 0, true},
		{"garbage", `not json`, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeRecipes([]byte(tt.data))
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && len(got) != tt.want {
				t.Fatalf("len = %d, want %d", len(got), tt.want)
			}
		})
	}
}

func TestRemoteCatalog(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/recipes" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(sampleCatalog))
	}))
	defer srv.Close()

	recipes, err := NewRemoteCatalog(srv.URL, 2*time.Second).GetAll(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(recipes) != 2 || recipes[1].ID != "margarita" {
		t.Fatalf("recipes = %+v", recipes)
	}
}

func TestRemoteCatalogErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	if _, err := NewRemoteCatalog(srv.URL, time.Second).GetAll(context.Background()); err == nil {
		t.Fatal("expected error for 404")
	}
}

type countingCatalog struct {
	calls   int
	recipes []cocktail.Recipe
	err     error
}

func (c *countingCatalog) GetAll(context.Context) ([]cocktail.Recipe, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return c.recipes, nil
}

func TestCachedCatalog(t *testing.T) {
	src := &countingCatalog{recipes: []cocktail.Recipe{{ID: "a"}}}
	cached := NewCachedCatalog(src, time.Minute)
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cached.now = func() time.Time { return clock }
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := cached.GetAll(ctx); err != nil {
			t.Fatal(err)
		}
	}
	if src.calls != 1 {
		t.Fatalf("source calls = %d, want 1", src.calls)
	}
	stats := cached.Stats()
	if stats.Hits != 2 || stats.Misses != 1 || stats.Refreshes != 1 {
		t.Fatalf("stats = %+v", stats)
	}

	clock = clock.Add(2 * time.Minute)
	if _, err := cached.GetAll(ctx); err != nil {
		t.Fatal(err)
	}
	if src.calls != 2 {
		t.Fatalf("expired entry should refresh, calls = %d", src.calls)
	}

	cached.Invalidate()
	if _, err := cached.GetAll(ctx); err != nil {
		t.Fatal(err)
	}
	if src.calls != 3 {
		t.Fatalf("invalidate should force refresh, calls = %d", src.calls)
	}
}

func TestCachedCatalogServesStaleOnError(t *testing.T) {
	src := &countingCatalog{recipes: []cocktail.Recipe{{ID: "a"}}}
	cached := NewCachedCatalog(src, time.Minute)
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cached.now = func() time.Time { return clock }
	ctx := context.Background()

	if _, err := cached.GetAll(ctx); err != nil {
		t.Fatal(err)
	}

	src.err = errors.New("upstream down")
	clock = clock.Add(time.Hour)
	got, err := cached.GetAll(ctx)
	if err != nil {
		t.Fatalf("expected stale data, got %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %+v", got)
	}
	if cached.Stats().Errors != 1 {
		t.Fatalf("stats = %+v", cached.Stats())
	}

	cold := NewCachedCatalog(&countingCatalog{err: errors.New("down")}, time.Minute)
	if _, err := cold.GetAll(ctx); err == nil {
		t.Fatal("cold cache must surface the error")
	}
}
