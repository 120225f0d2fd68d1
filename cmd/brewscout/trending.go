package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brewscout/brewscout/internal/domain/ports"
	"github.com/brewscout/brewscout/internal/domain/services"
)

func newTrendingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "trending",
		Short: "Show cafes with the most reviews",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRecommend(func(recommend *services.RecommendService, _ ports.Authenticator) error {
				cafes, err := recommend.Trending(cmd.Context())
				if err != nil {
					return fmt.Errorf("fetching trending cafes: %w", err)
				}
				displaySearchResults(cafes)
				return nil
			})
		},
	}
}

func newFavoritesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "favorites",
		Short: "Manage your favorite cafes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRecommend(func(recommend *services.RecommendService, auth ports.Authenticator) error {
				session, err := auth.Current(cmd.Context())
				if err != nil {
					return fmt.Errorf("loading session: %w", err)
				}
				if session == nil {
					return fmt.Errorf("sign in first with 'brewscout auth login'")
				}

				cafeIDs, err := recommend.Favorites(cmd.Context(), session.User.ID)
				if err != nil {
					return fmt.Errorf("listing favorites: %w", err)
				}
				if len(cafeIDs) == 0 {
					fmt.Println("No favorites yet.")
					return nil
				}
				for _, id := range cafeIDs {
					fmt.Println(id)
				}
				return nil
			})
		},
	}

	cmd.AddCommand(newFavoritesToggleCmd())
	return cmd
}

func newFavoritesToggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <cafe-id>",
		Short: "Add or remove a cafe from your favorites",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRecommend(func(recommend *services.RecommendService, auth ports.Authenticator) error {
				session, err := auth.Current(cmd.Context())
				if err != nil {
					return fmt.Errorf("loading session: %w", err)
				}
				if session == nil {
					return fmt.Errorf("sign in first with 'brewscout auth login'")
				}

				favorited, err := recommend.ToggleFavorite(cmd.Context(), session.User.ID, args[0])
				if err != nil {
					return fmt.Errorf("toggling favorite: %w", err)
				}
				if favorited {
					fmt.Printf("Added %s to favorites\n", args[0])
				} else {
					fmt.Printf("Removed %s from favorites\n", args[0])
				}
				return nil
			})
		},
	}
}
