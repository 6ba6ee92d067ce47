package main

import (
	"fmt"
	"text/tabwriter"

	"myhair/internal/api"
	"myhair/internal/catalog"

	"github.com/spf13/cobra"
)

func init() {
	searchCmd.Flags().String("city", "", "Only stylists in this city")
	searchCmd.Flags().String("category", "all", "Homme, Femme, Déplacé or all")
	searchCmd.Flags().Float64("min-rating", 0, "Minimum rating")
	searchCmd.Flags().String("availability", catalog.AvailabilityAll, "all, available (short queue) or popular (long queue)")
	searchCmd.Flags().String("sort", catalog.SortRating, "rating, waiting or popular")
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "List stylists matching filters",
	RunE: func(cmd *cobra.Command, args []string) error {
		f := catalog.DefaultFilters()
		f.City, _ = cmd.Flags().GetString("city")
		f.Category, _ = cmd.Flags().GetString("category")
		f.MinRating, _ = cmd.Flags().GetFloat64("min-rating")
		f.Availability, _ = cmd.Flags().GetString("availability")
		f.Sort, _ = cmd.Flags().GetString("sort")

		switch f.Sort {
		case catalog.SortRating, catalog.SortWaiting, catalog.SortPopular:
		default:
			return fmt.Errorf("invalid sort %q: use rating, waiting or popular", f.Sort)
		}
		switch f.Availability {
		case catalog.AvailabilityAll, catalog.AvailabilityAvailable, catalog.AvailabilityPopular:
		default:
			return fmt.Errorf("invalid availability %q: use all, available or popular", f.Availability)
		}

		b, err := newBackend(cmd.Context())
		if err != nil {
			return err
		}
		defer b.Close()

		q := api.StylistQuery{City: f.City, SortBy: f.Sort}
		if f.Category != "all" {
			q.Category = f.Category
		}
		all, err := b.client.Stylists(cmd.Context(), q)
		if err != nil {
			return fmt.Errorf("failed to list stylists: %w", err)
		}
		found := catalog.Filter(all, f)

		out := cmd.OutOrStdout()
		if len(found) == 0 {
			fmt.Fprintln(out, "No stylist matches these filters.")
			return nil
		}
		w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tCITY\tRATING\tQUEUE")
		for _, s := range found {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%.1f\t%d/%d\n",
				s.ID, catalog.DisplayName(s.Name), s.Category, s.City, s.Rating, s.Waiting, s.Capacity)
		}
		return w.Flush()
	},
}
