package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"mixology-engine/internal/app"
	"mixology-engine/internal/core/cocktail"
	"mixology-engine/internal/core/ingredient"
	"mixology-engine/internal/core/recommend"
	"mixology-engine/internal/infrastructure/config"
	"mixology-engine/internal/pkg/common"

	"github.com/spf13/cobra"
)

var (
	catalogPath  string
	profilesPath string
	dbPath       string
	priceSeed    int64
	asJSON       bool
	verbose      bool
)

func main() {
	home, _ := os.UserHomeDir()
	defaultDB := filepath.Join(home, ".mixology", "shopping.db")

	rootCmd := &cobra.Command{
		Use:           "mixctl",
		Short:         "Cocktail recommendations and shopping lists from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !verbose {
				return nil
			}
			return common.InitLogger("debug", "")
		},
	}

	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "data/recipes.json", "recipe catalog JSON file")
	rootCmd.PersistentFlags().StringVar(&profilesPath, "profiles", "data/profiles.json", "user profiles JSON file")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", defaultDB, "shopping list database path")
	rootCmd.PersistentFlags().Int64Var(&priceSeed, "price-seed", 0, "seed for estimated prices (0 = random)")
	rootCmd.PersistentFlags().BoolVar(&asJSON, "json", false, "print JSON instead of tables")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug output")

	rootCmd.AddCommand(recommendCmd())
	rootCmd.AddCommand(feedCmd())
	rootCmd.AddCommand(canMakeCmd())
	rootCmd.AddCommand(shoppingCmd())

	err := rootCmd.ExecuteContext(context.Background())
	common.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// openApp 以 SQLite 儲存組裝服務
func openApp(ctx context.Context) (*app.App, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	cfg := &config.Config{}
	cfg.Catalog = config.CatalogConfig{Source: "file", Path: catalogPath}
	cfg.Profiles.Path = profilesPath
	cfg.Store = config.StoreConfig{Driver: "sqlite", SQLitePath: dbPath}
	cfg.Shopping.PriceSeed = priceSeed
	defaults := recommend.DefaultFeedLimits()
	cfg.Recommend = config.RecommendConfig{
		DefaultLimit:     defaults.ForYou,
		ForYouLimit:      defaults.ForYou,
		TrendingLimit:    defaults.Trending,
		ChallengingLimit: defaults.Challenging,
		BarLimit:         defaults.FromYourBar,
	}
	return app.New(ctx, cfg)
}

func printJSON(v interface{}) error {
	out, err := common.ToJSON(v)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

func printRanked(items []recommend.RankedRecommendation) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SCORE\tID\tNAME\tDIFFICULTY\tREASONS")
	for _, r := range items {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", r.Score, r.RecipeID, r.Recipe.Name, r.Recipe.Difficulty, strings.Join(r.Reasons, "; "))
	}
	w.Flush()
}

func recommendCmd() *cobra.Command {
	var (
		limit       int
		challenging bool
		fromBar     bool
		spirits     []string
	)

	cmd := &cobra.Command{
		Use:   "recommend [user-id]",
		Short: "Rank catalog recipes for a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			var ranked []recommend.RankedRecommendation
			switch {
			case challenging:
				ranked, err = a.Recommend.ChallengingRecommendations(ctx, args[0], limit)
			case fromBar:
				ranked, err = a.Recommend.BarRecommendations(ctx, args[0], limit)
			default:
				var filters *recommend.Filters
				if len(spirits) > 0 {
					filters = &recommend.Filters{}
					for _, s := range spirits {
						filters.Spirits = append(filters.Spirits, cocktail.Spirit(strings.ToLower(s)))
					}
				}
				ranked, err = a.Recommend.TopRecommendations(ctx, args[0], limit, filters)
			}
			if err != nil {
				return err
			}

			if asJSON {
				return printJSON(ranked)
			}
			printRanked(ranked)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "maximum number of recipes")
	cmd.Flags().BoolVar(&challenging, "challenging", false, "only recipes one level above the user's skill")
	cmd.Flags().BoolVar(&fromBar, "bar", false, "only recipes makeable from the user's bar")
	cmd.Flags().StringSliceVar(&spirits, "spirit", nil, "restrict to these spirits")
	return cmd
}

func feedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "feed [user-id]",
		Short: "Show the personalized feed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			feed, err := a.Recommend.PersonalizedFeed(ctx, args[0])
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(feed)
			}

			fmt.Println("== For you")
			printRanked(feed.ForYou)
			fmt.Println("\n== Trending")
			for _, r := range feed.Trending {
				fmt.Printf("  %-20s %d saves\n", r.Name, r.Saves)
			}
			fmt.Println("\n== Challenging")
			printRanked(feed.Challenging)
			if len(feed.FromYourBar) > 0 {
				fmt.Println("\n== From your bar")
				printRanked(feed.FromYourBar)
			}
			return nil
		},
	}
}

func canMakeCmd() *cobra.Command {
	var have []string

	cmd := &cobra.Command{
		Use:   "can-make [ingredient...]",
		Short: "Check required ingredients against what you have",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result := ingredient.CheckAvailability(args, have)
			if asJSON {
				return printJSON(result)
			}
			if result.CanMake {
				fmt.Println("You have everything.")
				return nil
			}
			fmt.Println("Missing:")
			for _, m := range result.Missing {
				fmt.Printf("  - %s\n", m)
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&have, "have", nil, "ingredients on hand")
	return cmd
}

func shoppingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shopping",
		Short: "Manage shopping lists",
	}
	cmd.AddCommand(shoppingAddCmd())
	cmd.AddCommand(shoppingListCmd())
	cmd.AddCommand(shoppingViewCmd())
	cmd.AddCommand(shoppingCheckCmd())
	cmd.AddCommand(shoppingDeleteCmd())
	cmd.AddCommand(shoppingMigrateCmd())
	return cmd
}

func shoppingAddCmd() *cobra.Command {
	var recipeID string

	cmd := &cobra.Command{
		Use:   "add [recipe-name] [ingredient...]",
		Short: "Create a list from ingredients, or from a catalog recipe with --recipe",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			if recipeID != "" && len(args) == 0 {
				list, err := a.Shopping.CreateListFromRecipe(ctx, recipeID)
				if err != nil {
					return err
				}
				fmt.Printf("Created list %s for %s (%d items)\n", list.ID[:8], list.RecipeName, len(list.Items))
				return nil
			}
			if len(args) < 2 {
				return fmt.Errorf("need a recipe name and at least one ingredient")
			}

			list, err := a.Shopping.CreateList(ctx, args[0], args[1:], recipeID)
			if err != nil {
				return err
			}
			fmt.Printf("Created list %s for %s (%d items)\n", list.ID[:8], list.RecipeName, len(list.Items))
			return nil
		},
	}

	cmd.Flags().StringVar(&recipeID, "recipe", "", "catalog recipe id")
	return cmd
}

func shoppingListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List shopping lists and their items",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			lists, err := a.Shopping.ListLists(ctx)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(lists)
			}
			if len(lists) == 0 {
				fmt.Println("No shopping lists.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			for _, l := range lists {
				fmt.Fprintf(w, "%s\t(%s)\t\t\n", l.RecipeName, l.CreatedAt.Format(time.DateOnly))
				for _, it := range l.Items {
					mark := " "
					if it.Checked {
						mark = "x"
					}
					fmt.Fprintf(w, "  [%s] %s\t%s\t%s\t$%.2f\n", mark, it.ID, it.Name, it.Category, it.EstimatedPrice)
				}
			}
			return w.Flush()
		},
	}
}

func shoppingViewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view",
		Short: "Show the consolidated view across all lists",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			view, err := a.Shopping.ConsolidatedView(ctx)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(view)
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "QTY\tITEM\tCATEGORY\tRECIPES")
			for _, it := range view.AllItems {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", it.Quantity, it.Name, it.Category, strings.Join(it.RecipeNames, ", "))
			}
			return w.Flush()
		},
	}
}

func shoppingCheckCmd() *cobra.Command {
	var uncheck bool

	cmd := &cobra.Command{
		Use:   "check [item-id]",
		Short: "Mark an item as bought",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			item, err := a.Shopping.SetChecked(ctx, args[0], !uncheck)
			if err != nil {
				return err
			}
			fmt.Printf("%s checked=%v\n", item.Name, item.Checked)
			return nil
		},
	}

	cmd.Flags().BoolVar(&uncheck, "undo", false, "uncheck the item instead")
	return cmd
}

func shoppingDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [item-id]",
		Short: "Remove an item; empty lists are removed too",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.Shopping.DeleteItem(ctx, args[0]); err != nil {
				return err
			}
			fmt.Println("Deleted", args[0])
			return nil
		},
	}
}

func shoppingMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Backfill categories on stored items",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			changed, err := a.Shopping.Migrate(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("Migrated %d items\n", changed)
			return nil
		},
	}
}
