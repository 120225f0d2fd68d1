package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/brewscout/brewscout/internal/domain/entities"
)

var (
	nameColor     = color.New(color.FgCyan, color.Bold)
	ratingColor   = color.New(color.FgYellow)
	featuredColor = color.New(color.FgGreen)
	closedColor   = color.New(color.FgRed)
)

func newCafesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cafes",
		Short: "Manage the cafe catalog",
	}

	cmd.AddCommand(
		newCafesListCmd(),
		newCafesShowCmd(),
		newCafesAddCmd(),
		newCafesDeleteCmd(),
		newCafesFeatureCmd(),
	)
	return cmd
}

func newCafesListCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all cafes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(func(d *Deps) error {
				result, err := d.CafeHandler.HandleList(cmd.Context())
				if err != nil {
					return fmt.Errorf("listing cafes: %w", err)
				}

				cafes := result.Cafes
				if limit > 0 && len(cafes) > limit {
					cafes = cafes[:limit]
				}
				if len(cafes) == 0 {
					fmt.Println("No cafes found. Use 'brewscout import' to load a dataset.")
					return nil
				}

				fmt.Printf("Showing %d of %d cafes:\n\n", len(cafes), result.Total)
				for _, cafe := range cafes {
					displayCafe(cafe)
				}
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", DefaultListLimit, "Maximum number of cafes to display")
	return cmd
}

func newCafesShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a single cafe with its reviews",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(func(d *Deps) error {
				cafe, err := d.CafeHandler.HandleGet(cmd.Context(), args[0])
				if err != nil {
					return fmt.Errorf("fetching cafe: %w", err)
				}
				displayCafe(*cafe)

				reviews, err := d.ReviewHandler.HandleListForCafe(cmd.Context(), cafe.ID)
				if err != nil {
					return fmt.Errorf("listing reviews: %w", err)
				}
				if len(reviews) == 0 {
					fmt.Println("No reviews yet.")
					return nil
				}
				fmt.Printf("Reviews (%d):\n\n", len(reviews))
				for _, review := range reviews {
					displayReview(review)
				}
				return nil
			})
		},
	}
}

func newCafesAddCmd() *cobra.Command {
	var (
		address string
		price   int
		hours   string
		tags    []string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a cafe to the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(func(d *Deps) error {
				cafe := entities.Cafe{
					Name:      args[0],
					Address:   address,
					Price:     entities.PriceFromLevel(price),
					Hours:     hours,
					Amenities: tags,
					IsOpen:    true,
				}
				created, err := d.CafeHandler.HandleCreate(cmd.Context(), cafe)
				if err != nil {
					return fmt.Errorf("creating cafe: %w", err)
				}
				fmt.Printf("Created cafe %s\n", created.ID)
				displayCafe(*created)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&address, "address", "a", "", "Street address")
	cmd.Flags().IntVarP(&price, "price", "p", 2, "Price level (1-3)")
	cmd.Flags().StringVar(&hours, "hours", "", "Opening hours")
	cmd.Flags().StringSliceVarP(&tags, "amenity", "t", nil, "Amenity slugs (repeatable)")
	return cmd
}

func newCafesDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a cafe and its reviews",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(func(d *Deps) error {
				if err := d.CafeHandler.HandleDelete(cmd.Context(), args[0]); err != nil {
					return fmt.Errorf("deleting cafe: %w", err)
				}
				fmt.Printf("Deleted cafe %s\n", args[0])
				return nil
			})
		},
	}
}

func newCafesFeatureCmd() *cobra.Command {
	var off bool

	cmd := &cobra.Command{
		Use:   "feature <id>",
		Short: "Mark a cafe as featured (admin only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(func(d *Deps) error {
				cafe, err := d.CafeHandler.HandleSetFeatured(cmd.Context(), args[0], !off)
				if err != nil {
					return fmt.Errorf("setting featured: %w", err)
				}
				if cafe.Featured {
					fmt.Printf("%s is now featured\n", cafe.Name)
				} else {
					fmt.Printf("%s is no longer featured\n", cafe.Name)
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&off, "off", false, "Remove the featured flag instead")
	return cmd
}

func displayCafe(cafe entities.Cafe) {
	fmt.Printf("%s  %s\n", nameColor.Sprint(cafe.Name), cafe.ID)
	fmt.Printf("  %s  %s", cafe.Price, ratingColor.Sprintf("%.1f", cafe.Rating))
	fmt.Printf(" (%d reviews)", cafe.ReviewCount)
	if cafe.Featured {
		fmt.Printf("  %s", featuredColor.Sprint("featured"))
	}
	if !cafe.IsOpen {
		fmt.Printf("  %s", closedColor.Sprint("closed"))
	}
	fmt.Println()
	if cafe.Address != "" {
		fmt.Printf("  %s\n", cafe.Address)
	}
	if len(cafe.Amenities) > 0 {
		fmt.Printf("  Amenities: %s\n", strings.Join(cafe.Amenities, ", "))
	}
	if cafe.Distance > 0 {
		fmt.Printf("  %.1f km away\n", cafe.Distance)
	}
	fmt.Println()
}

func displayReview(review entities.Review) {
	author := review.AuthorName
	if author == "" {
		author = review.UserID
	}
	fmt.Printf("  %s %s", ratingColor.Sprintf("%d/5", review.Rating), nameColor.Sprint(author))
	if review.Title != "" {
		fmt.Printf(" - %s", review.Title)
	}
	fmt.Println()
	fmt.Printf("    %s\n", review.Text)
	if review.HelpfulCount > 0 {
		fmt.Printf("    %d found this helpful\n", review.HelpfulCount)
	}
	if review.BusinessResponse != nil {
		fmt.Printf("    Response from %s: %s\n", review.BusinessResponse.Author, review.BusinessResponse.Text)
	}
	fmt.Println()
}
