package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brewscout/brewscout/internal/domain/entities"
	"github.com/brewscout/brewscout/internal/domain/ports"
	"github.com/brewscout/brewscout/internal/domain/services"
)

func newReviewsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reviews",
		Short: "Read and write cafe reviews",
	}

	cmd.AddCommand(
		newReviewsListCmd(),
		newReviewsMineCmd(),
		newReviewsAddCmd(),
		newReviewsEditCmd(),
		newReviewsDeleteCmd(),
		newReviewsHelpfulCmd(),
		newReviewsReportCmd(),
		newReviewsApproveCmd(),
		newReviewsRespondCmd(),
	)
	return cmd
}

func newReviewsMineCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mine",
		Short: "List the reviews you have written",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(func(d *Deps, session *ports.Session) error {
				if session == nil {
					return fmt.Errorf("not signed in (run 'brewscout auth login')")
				}
				reviews, err := d.ReviewHandler.HandleListForUser(cmd.Context(), session.User.ID)
				if err != nil {
					return fmt.Errorf("listing your reviews: %w", err)
				}
				if len(reviews) == 0 {
					fmt.Println("You have not written any reviews yet.")
					return nil
				}
				fmt.Printf("Showing %d reviews:\n\n", len(reviews))
				for _, review := range reviews {
					displayReview(review)
				}
				return nil
			})
		},
	}
}

func newReviewsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <cafe-id>",
		Short: "List reviews for a cafe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(func(d *Deps) error {
				reviews, err := d.ReviewHandler.HandleListForCafe(cmd.Context(), args[0])
				if err != nil {
					return fmt.Errorf("listing reviews: %w", err)
				}
				if len(reviews) == 0 {
					fmt.Println("No reviews found.")
					return nil
				}
				fmt.Printf("Showing %d reviews:\n\n", len(reviews))
				for _, review := range reviews {
					displayReview(review)
				}
				return nil
			})
		},
	}
}

func newReviewsAddCmd() *cobra.Command {
	var (
		rating int
		title  string
		tags   []string
	)

	cmd := &cobra.Command{
		Use:   "add <cafe-id> <text>",
		Short: "Submit a review for a cafe",
		Long:  "Submits a review. The cafe's rating and review count are recomputed immediately.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(func(d *Deps) error {
				draft := entities.Review{
					Rating: rating,
					Title:  title,
					Text:   args[1],
					Tags:   tags,
				}
				review, err := d.ReviewHandler.HandleSubmit(cmd.Context(), args[0], draft)
				if err != nil {
					return fmt.Errorf("submitting review: %w", err)
				}
				fmt.Printf("Created review %s\n", review.ID)
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&rating, "rating", "r", 5, "Star rating (1-5)")
	cmd.Flags().StringVar(&title, "title", "", "Review title")
	cmd.Flags().StringSliceVarP(&tags, "tag", "t", nil, "Review tags (repeatable)")
	return cmd
}

func newReviewsEditCmd() *cobra.Command {
	var (
		rating int
		title  string
		text   string
	)

	cmd := &cobra.Command{
		Use:   "edit <review-id>",
		Short: "Edit your review",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(func(d *Deps) error {
				var update services.ReviewUpdate
				if cmd.Flags().Changed("rating") {
					update.Rating = &rating
				}
				if cmd.Flags().Changed("title") {
					update.Title = &title
				}
				if cmd.Flags().Changed("text") {
					update.Text = &text
				}

				review, err := d.ReviewHandler.HandleEdit(cmd.Context(), args[0], update)
				if err != nil {
					return fmt.Errorf("editing review: %w", err)
				}
				fmt.Printf("Updated review %s\n", review.ID)
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&rating, "rating", "r", 0, "New star rating (1-5)")
	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&text, "text", "", "New review text")
	return cmd
}

func newReviewsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <review-id>",
		Short: "Delete your review",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(func(d *Deps) error {
				if err := d.ReviewHandler.HandleDelete(cmd.Context(), args[0]); err != nil {
					return fmt.Errorf("deleting review: %w", err)
				}
				fmt.Printf("Deleted review %s\n", args[0])
				return nil
			})
		},
	}
}

func newReviewsHelpfulCmd() *cobra.Command {
	var undo bool

	cmd := &cobra.Command{
		Use:   "helpful <review-id>",
		Short: "Mark a review as helpful",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(func(d *Deps) error {
				review, err := d.ReviewHandler.HandleToggleHelpful(cmd.Context(), args[0], !undo)
				if err != nil {
					return fmt.Errorf("marking review: %w", err)
				}
				fmt.Printf("%d found this helpful\n", review.HelpfulCount)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&undo, "undo", false, "Take back a helpful vote")
	return cmd
}

func newReviewsReportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report <review-id>",
		Short: "Flag a review for moderation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(func(d *Deps) error {
				if err := d.ReviewHandler.HandleReport(cmd.Context(), args[0]); err != nil {
					return fmt.Errorf("reporting review: %w", err)
				}
				fmt.Printf("Reported review %s\n", args[0])
				return nil
			})
		},
	}
}

func newReviewsApproveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "approve <review-id>",
		Short: "Approve a reported review (admin only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(func(d *Deps) error {
				if err := d.ReviewHandler.HandleApprove(cmd.Context(), args[0]); err != nil {
					return fmt.Errorf("approving review: %w", err)
				}
				fmt.Printf("Approved review %s\n", args[0])
				return nil
			})
		},
	}
}

func newReviewsRespondCmd() *cobra.Command {
	var author string

	cmd := &cobra.Command{
		Use:   "respond <review-id> <text>",
		Short: "Post a business response to a review (admin only)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(func(d *Deps) error {
				review, err := d.ReviewHandler.HandleRespond(cmd.Context(), args[0], author, args[1])
				if err != nil {
					return fmt.Errorf("responding to review: %w", err)
				}
				fmt.Printf("Responded to review %s\n", review.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&author, "author", "Management", "Response author name")
	return cmd
}
