package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"mixology-engine/internal/infrastructure/config"
)

const recipesJSON = `{"recipes":[
  {"id":"gimlet","name":"Gimlet","spiritsUsed":["gin"],"baseSpirit":"gin","difficulty":"beginner","abv":20,
   "ingredients":["2 oz gin","3/4 oz lime juice","1/2 oz simple syrup"]}
]}`

const profilesJSON = `{
  "profiles":{"u1":{"favoriteSpirit":"gin","skillLevel":"beginner"}},
  "inventories":{"u1":[{"id":"b1","name":"Tanqueray","category":"spirits_liquors","subcategory":"gin"}]}
}`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func testConfig(t *testing.T, driver string) *config.Config {
	t.Helper()
	dir := t.TempDir()

	cfg := &config.Config{}
	cfg.Catalog = config.CatalogConfig{
		Source:   "file",
		Path:     writeFile(t, dir, "recipes.json", recipesJSON),
		CacheTTL: time.Minute,
	}
	cfg.Profiles.Path = writeFile(t, dir, "profiles.json", profilesJSON)
	cfg.Store = config.StoreConfig{Driver: driver, SQLitePath: filepath.Join(dir, "shopping.db")}
	cfg.Recommend = config.RecommendConfig{
		DefaultLimit: 10, ForYouLimit: 10, TrendingLimit: 10, ChallengingLimit: 5, BarLimit: 10,
	}
	cfg.Shopping.PriceSeed = 7
	return cfg
}

func TestNewWiresServices(t *testing.T) {
	for _, driver := range []string{"memory", "sqlite"} {
		t.Run(driver, func(t *testing.T) {
			ctx := context.Background()
			a, err := New(ctx, testConfig(t, driver))
			if err != nil {
				t.Fatal(err)
			}
			defer a.Close()

			feed, err := a.Recommend.PersonalizedFeed(ctx, "u1")
			if err != nil {
				t.Fatal(err)
			}
			if len(feed.ForYou) != 1 || len(feed.FromYourBar) != 1 {
				t.Fatalf("feed = %+v", feed)
			}

			list, err := a.Shopping.CreateListFromRecipe(ctx, "gimlet")
			if err != nil {
				t.Fatal(err)
			}
			if len(list.Items) != 3 {
				t.Fatalf("items = %+v", list.Items)
			}

			for name, check := range a.Checks {
				if err := check.Ping(ctx); err != nil {
					t.Fatalf("check %s: %v", name, err)
				}
			}
		})
	}
}

func TestNewMissingProfilesFile(t *testing.T) {
	cfg := testConfig(t, "memory")
	cfg.Profiles.Path = filepath.Join(t.TempDir(), "absent.json")

	a, err := New(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	if a.Profiles.Users() != 0 {
		t.Fatalf("users = %d", a.Profiles.Users())
	}
}

func TestNewUnknownDriver(t *testing.T) {
	if _, err := New(context.Background(), testConfig(t, "postgres")); err == nil {
		t.Fatal("expected error")
	}
}

func TestCatalogCheckReportsMissingFile(t *testing.T) {
	cfg := testConfig(t, "memory")
	cfg.Catalog.Path = filepath.Join(t.TempDir(), "missing.json")

	a, err := New(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	if err := a.Checks["catalog"].Ping(context.Background()); err == nil {
		t.Fatal("expected catalog check to fail")
	}
}
