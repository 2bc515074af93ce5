package shopping

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"mixology-engine/internal/core/cocktail"
	shoppingService "mixology-engine/internal/core/shopping"
	"mixology-engine/internal/infrastructure/persistence"
	"mixology-engine/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type staticCatalog []cocktail.Recipe

func (s staticCatalog) GetAll(context.Context) ([]cocktail.Recipe, error) {
	return s, nil
}

func newRouter(t *testing.T, opts ...shoppingService.Option) *gin.Engine {
	t.Helper()

	opts = append([]shoppingService.Option{shoppingService.WithPriceEstimator(shoppingService.TablePriceEstimator{})}, opts...)
	svc := shoppingService.NewService(persistence.NewMemoryStore(), opts...)
	h := NewHandler(svc)

	r := gin.New()
	r.POST("/shopping/lists", h.HandleCreateList)
	r.GET("/shopping/lists", h.HandleListLists)
	r.GET("/shopping/consolidated", h.HandleConsolidated)
	r.DELETE("/shopping/items/:itemId", h.HandleDeleteItem)
	r.PATCH("/shopping/items/:itemId", h.HandleSetChecked)
	r.POST("/shopping/migrate", h.HandleMigrate)
	return r
}

func serve(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createList(t *testing.T, r http.Handler, body string) shoppingService.ShoppingList {
	t.Helper()
	w := serve(r, http.MethodPost, "/shopping/lists", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d: %s", w.Code, w.Body.String())
	}
	var list shoppingService.ShoppingList
	if err := common.ParseJSONBytes(w.Body.Bytes(), &list); err != nil {
		t.Fatal(err)
	}
	return list
}

func TestShoppingFlow(t *testing.T) {
	r := newRouter(t)

	margarita := createList(t, r, `{"recipeName":"Margarita","ingredients":["2 oz Tequila Blanco","1 oz fresh lime juice"]}`)
	createList(t, r, `{"recipeName":"Paloma","ingredients":["2 oz Tequila Blanco","Grapefruit soda"]}`)

	if len(margarita.Items) != 2 || margarita.Items[0].Category != shoppingService.CategorySpirits {
		t.Fatalf("margarita = %+v", margarita)
	}

	w := serve(r, http.MethodGet, "/shopping/consolidated", "")
	if w.Code != http.StatusOK {
		t.Fatalf("consolidated status = %d", w.Code)
	}
	var view shoppingService.ConsolidatedView
	if err := common.ParseJSONBytes(w.Body.Bytes(), &view); err != nil {
		t.Fatal(err)
	}
	if len(view.AllItems) != 3 || view.AllItems[0].Quantity != 2 {
		t.Fatalf("allItems = %+v", view.AllItems)
	}

	itemID := margarita.Items[0].ID
	w = serve(r, http.MethodPatch, "/shopping/items/"+itemID, `{"checked":true}`)
	if w.Code != http.StatusOK {
		t.Fatalf("patch status = %d: %s", w.Code, w.Body.String())
	}
	var item shoppingService.GroceryItem
	if err := common.ParseJSONBytes(w.Body.Bytes(), &item); err != nil {
		t.Fatal(err)
	}
	if !item.Checked || !item.IsCompleted {
		t.Fatalf("item = %+v", item)
	}

	for _, it := range margarita.Items {
		if w := serve(r, http.MethodDelete, "/shopping/items/"+it.ID, ""); w.Code != http.StatusNoContent {
			t.Fatalf("delete status = %d", w.Code)
		}
	}

	w = serve(r, http.MethodGet, "/shopping/lists", "")
	var resp struct {
		Lists []shoppingService.ShoppingList `json:"lists"`
	}
	if err := common.ParseJSONBytes(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Lists) != 1 || resp.Lists[0].RecipeName != "Paloma" {
		t.Fatalf("lists = %+v", resp.Lists)
	}
}

func TestCreateListErrors(t *testing.T) {
	r := newRouter(t)

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"malformed", `{`, http.StatusBadRequest},
		{"no name", `{"ingredients":["gin"]}`, http.StatusBadRequest},
		{"blank ingredients", `{"recipeName":"Gimlet","ingredients":["  "]}`, http.StatusBadRequest},
		{"recipe id without catalog", `{"recipeId":"gimlet"}`, http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if w := serve(r, http.MethodPost, "/shopping/lists", tt.body); w.Code != tt.status {
				t.Fatalf("status = %d, want %d: %s", w.Code, tt.status, w.Body.String())
			}
		})
	}
}

func TestCreateListFromRecipe(t *testing.T) {
	recipes := staticCatalog{{
		ID:          "gimlet",
		Name:        "Gimlet",
		Ingredients: []string{"2 oz gin", "3/4 oz lime juice", "1/2 oz simple syrup"},
	}}
	r := newRouter(t, shoppingService.WithCatalog(recipes))

	list := createList(t, r, `{"recipeId":"gimlet"}`)
	if list.RecipeName != "Gimlet" || list.RecipeID != "gimlet" || len(list.Items) != 3 {
		t.Fatalf("list = %+v", list)
	}

	if w := serve(r, http.MethodPost, "/shopping/lists", `{"recipeId":"nope"}`); w.Code != http.StatusNotFound {
		t.Fatalf("unknown recipe status = %d", w.Code)
	}
}

func TestItemNotFound(t *testing.T) {
	r := newRouter(t)

	if w := serve(r, http.MethodDelete, "/shopping/items/missing", ""); w.Code != http.StatusNotFound {
		t.Fatalf("delete status = %d", w.Code)
	}
	if w := serve(r, http.MethodPatch, "/shopping/items/missing", `{"checked":false}`); w.Code != http.StatusNotFound {
		t.Fatalf("patch status = %d", w.Code)
	}
	if w := serve(r, http.MethodPatch, "/shopping/items/missing", `{}`); w.Code != http.StatusBadRequest {
		t.Fatalf("patch without checked status = %d", w.Code)
	}
}

func TestMigrateEmpty(t *testing.T) {
	r := newRouter(t)

	w := serve(r, http.MethodPost, "/shopping/migrate", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"migrated":0`) {
		t.Fatalf("body = %s", w.Body.String())
	}
}
