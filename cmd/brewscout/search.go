package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/brewscout/brewscout/internal/domain/entities"
	"github.com/brewscout/brewscout/internal/domain/services"
)

type searchFlags struct {
	price     int
	minRating float64
	amenity   string
	openNow   bool
	adminOnly bool
	minWifi   float64
	sort      string
	limit     int
	quick     bool
}

func newSearchCmd() *cobra.Command {
	var flags searchFlags

	cmd := &cobra.Command{
		Use:   "search [text]",
		Short: "Search and filter the cafe catalog",
		Long:  "Searches cafes by free text and structured filters. All supplied filters must match.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := ""
			if len(args) > 0 {
				text = args[0]
			}
			return runSearch(cmd, text, flags)
		},
	}

	cmd.Flags().IntVarP(&flags.price, "price", "p", 0, "Price level filter (1-3)")
	cmd.Flags().Float64VarP(&flags.minRating, "min-rating", "r", 0, "Minimum rating")
	cmd.Flags().StringVarP(&flags.amenity, "amenity", "t", "", "Required amenity slug")
	cmd.Flags().BoolVar(&flags.openNow, "open", false, "Only cafes open now")
	cmd.Flags().BoolVar(&flags.adminOnly, "admin-posted", false, "Only admin-posted cafes")
	cmd.Flags().Float64Var(&flags.minWifi, "min-wifi", 0, "Minimum wifi speed (Mbps)")
	cmd.Flags().StringVarP(&flags.sort, "sort", "s", "distance", "Sort order (distance, rating, reviews, name)")
	cmd.Flags().IntVarP(&flags.limit, "limit", "l", DefaultSearchLimit, "Maximum number of results")
	cmd.Flags().BoolVarP(&flags.quick, "quick", "q", false, "Quick search on name and address only")

	return cmd
}

func runSearch(cmd *cobra.Command, text string, flags searchFlags) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		if flags.quick {
			result, err := d.SearchHandler.HandleQuickSearch(ctx, text)
			if err != nil {
				return fmt.Errorf("quick search: %w", err)
			}
			displaySearchResults(result.Cafes)
			return nil
		}

		query := services.Query{
			Text:  text,
			Sort:  services.ParseSortKey(flags.sort),
			Limit: flags.limit,
			Filters: services.Filters{
				Price:        entities.PriceFromLevel(flags.price),
				MinRating:    flags.minRating,
				Amenity:      flags.amenity,
				OpenNow:      flags.openNow,
				AdminOnly:    flags.adminOnly,
				MinWifiSpeed: flags.minWifi,
			},
		}
		if flags.price == 0 {
			query.Filters.Price = ""
		}

		result, err := d.SearchHandler.HandleSearch(ctx, query)
		if err != nil {
			return fmt.Errorf("searching cafes: %w", err)
		}
		displaySearchResults(result.Cafes)
		return nil
	})
}

func displaySearchResults(cafes []entities.Cafe) {
	if len(cafes) == 0 {
		fmt.Println("No cafes matched.")
		return
	}
	fmt.Printf("Found %d cafes:\n\n", len(cafes))
	for _, cafe := range cafes {
		displayCafe(cafe)
	}
}

func newMoodCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mood <prompt>",
		Short: "Find cafes matching a mood",
		Long:  "Matches a natural-language prompt like \"quiet cafe to study\" against mood rules.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prompt := strings.Join(args, " ")
			return withDeps(func(d *Deps) error {
				result, err := d.SearchHandler.HandleMood(cmd.Context(), prompt)
				if err != nil {
					return fmt.Errorf("mood search: %w", err)
				}

				if result.Rule != "" {
					fmt.Printf("Matched mood: %s\n\n", result.Rule)
				} else {
					fmt.Println("No specific mood matched, showing highly rated cafes.")
					fmt.Println()
				}
				displaySearchResults(result.Cafes)
				return nil
			})
		},
	}
}
