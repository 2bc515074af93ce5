package persistence

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"mixology-engine/internal/core/shopping"
)

func sampleLists() []shopping.ShoppingList {
	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return []shopping.ShoppingList{{
		ID:         "l1",
		RecipeName: "Margarita",
		Items: []shopping.GroceryItem{
			{ID: "i1", Name: "Tequila Blanco", Category: shopping.CategorySpirits, Subcategory: "tequila", Size: "2 oz", EstimatedPrice: 40},
			{ID: "i2", Name: "Lime Juice", Category: shopping.CategoryMixers, Checked: true, IsCompleted: true},
		},
		CreatedAt: created,
		UpdatedAt: created,
	}}
}

func exerciseStore(t *testing.T, store shopping.PersistenceStore) {
	t.Helper()
	ctx := context.Background()

	empty, err := store.LoadLists(ctx)
	if err != nil {
		t.Fatalf("load empty: %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", empty)
	}

	want := sampleLists()
	if err := store.SaveLists(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := store.LoadLists(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 1 || len(got[0].Items) != 2 {
		t.Fatalf("got %+v", got)
	}
	if got[0].Items[1] != want[0].Items[1] || !got[0].CreatedAt.Equal(want[0].CreatedAt) {
		t.Fatalf("round trip mismatch: %+v", got[0])
	}

	// 修改讀出的資料不影響儲存內容
	got[0].Items[0].Name = "changed"
	again, _ := store.LoadLists(ctx)
	if again[0].Items[0].Name != "Tequila Blanco" {
		t.Fatal("store shares memory with caller")
	}

	if err := store.SaveLists(ctx, nil); err != nil {
		t.Fatalf("save nil: %v", err)
	}
	cleared, err := store.LoadLists(ctx)
	if err != nil || len(cleared) != 0 {
		t.Fatalf("cleared = %+v, err %v", cleared, err)
	}
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestSQLiteStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shopping.db")
	store, err := NewSQLiteStore(path, "")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer store.Close()

	exerciseStore(t, store)

	if err := store.Ping(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}
}

func TestSQLiteStoreSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shopping.db")
	ctx := context.Background()

	store, err := NewSQLiteStore(path, "lists")
	if err != nil {
		t.Fatal(err)
	}
	if err := store.SaveLists(ctx, sampleLists()); err != nil {
		t.Fatal(err)
	}
	store.Close()

	reopened, err := NewSQLiteStore(path, "lists")
	if err != nil {
		t.Fatal(err)
	}
	defer reopened.Close()

	got, err := reopened.LoadLists(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].RecipeName != "Margarita" {
		t.Fatalf("got %+v", got)
	}

	other, err := NewSQLiteStore(path, "other")
	if err != nil {
		t.Fatal(err)
	}
	defer other.Close()
	if lists, _ := other.LoadLists(ctx); len(lists) != 0 {
		t.Fatalf("keys must be isolated, got %+v", lists)
	}
}

func TestShoppingServiceOverMemoryStore(t *testing.T) {
	ctx := context.Background()
	svc := shopping.NewService(NewMemoryStore(), shopping.WithPriceEstimator(shopping.TablePriceEstimator{}))

	list, err := svc.CreateList(ctx, "Paloma", []string{"2 oz Tequila Blanco", "Grapefruit soda"}, "")
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.DeleteItem(ctx, list.Items[0].ID); err != nil {
		t.Fatal(err)
	}
	view, err := svc.ConsolidatedView(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(view.AllItems) != 1 || view.AllItems[0].Name != "Grapefruit Soda" {
		t.Fatalf("view = %+v", view.AllItems)
	}
}
