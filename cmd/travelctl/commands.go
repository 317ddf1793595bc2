package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/tbourn/go-travel-backend/internal/domain"
	"github.com/tbourn/go-travel-backend/internal/services"
	"github.com/tbourn/go-travel-backend/internal/utils"
)

// searchFlags are shared by search and nearby.
type searchFlags struct {
	city     string
	source   string
	itemType string
	n        int
	pool     int
	allow    string
	deny     string
}

func (f *searchFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.city, "city", "c", "", "city name (required)")
	cmd.Flags().StringVarP(&f.source, "source", "s", "google", "data source: google or tripadvisor")
	cmd.Flags().StringVarP(&f.itemType, "type", "t", "attraction", "item type: attraction or activity")
	cmd.Flags().IntVarP(&f.n, "n", "n", 0, "result count (default from config)")
	cmd.Flags().IntVar(&f.pool, "pool", 0, "candidate pool bound (default from config)")
	cmd.Flags().StringVar(&f.allow, "allow", "", "comma-separated allow tags (tripadvisor only)")
	cmd.Flags().StringVar(&f.deny, "deny", "", "comma-separated deny tags (tripadvisor only)")
	_ = cmd.MarkFlagRequired("city")
}

func (f *searchFlags) request() services.SearchRequest {
	return services.SearchRequest{
		City:      f.city,
		Source:    domain.Source(f.source),
		ItemType:  domain.ItemType(f.itemType),
		N:         f.n,
		Pool:      f.pool,
		AllowTags: utils.SplitCSV(f.allow),
		DenyTags:  utils.SplitCSV(f.deny),
	}
}

func newSearchCmd() *cobra.Command {
	var flags searchFlags
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Top-N items for a city (computes and caches on first run)",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, db, err := newService()
			if err != nil {
				return err
			}
			defer closeDB(db)

			results, err := svc.Search(cmd.Context(), flags.request())
			if err != nil {
				return err
			}
			printResults(cmd.OutOrStdout(), results)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func newNearbyCmd() *cobra.Command {
	var flags searchFlags
	var itemID string
	cmd := &cobra.Command{
		Use:   "nearby",
		Short: "Closest two items to a start item in the city's list",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, db, err := newService()
			if err != nil {
				return err
			}
			defer closeDB(db)

			res, err := svc.Nearby(cmd.Context(), services.NearbyRequest{
				Search: flags.request(),
				ItemID: itemID,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "start: %s\n", nameOf(res.Start))
			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tDISTANCE\tID")
			for _, n := range res.Neighbors {
				fmt.Fprintf(w, "%s\t%.2f km\t%s\n", nameOf(n.Summary), n.DistanceKm, n.Summary.ItemID)
			}
			return w.Flush()
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&itemID, "item", "i", "", "start item id (required)")
	_ = cmd.MarkFlagRequired("item")
	return cmd
}

func newSnapshotsCmd() *cobra.Command {
	var page, pageSize int
	cmd := &cobra.Command{
		Use:   "snapshots",
		Short: "List cached city snapshots",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, db, err := newService()
			if err != nil {
				return err
			}
			defer closeDB(db)

			items, total, err := svc.ListCached(cmd.Context(), page, pageSize)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "CITY\tSOURCE\tTYPE\tCREATED")
			for _, s := range items {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", s.CityDisplay, s.Source, s.ItemType, s.CreatedAtUTC.Format(time.RFC3339))
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(out, "total: %d\n", total)
			return nil
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&pageSize, "page-size", 20, "items per page")
	return cmd
}

func printResults(out io.Writer, results []domain.Result) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "#\tNAME\tRATING\tREVIEWS\tCITY\tITEM\tID")
	for i, r := range results {
		rating, reviews := "-", "-"
		if r.Summary.Rating != nil {
			rating = fmt.Sprintf("%.1f", *r.Summary.Rating)
		}
		if r.Summary.ReviewCount != nil {
			reviews = fmt.Sprintf("%d", *r.Summary.ReviewCount)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			i+1, nameOf(r.Summary), rating, reviews, r.CitySource, r.ItemSource, r.Summary.ItemID)
	}
	_ = w.Flush()
}

func nameOf(s *domain.Summary) string {
	if s == nil || s.Name == nil {
		return "(unnamed)"
	}
	return *s.Name
}
