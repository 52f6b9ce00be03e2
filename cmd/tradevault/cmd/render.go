package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/Alias1177/TradeVault/internal/model"
)

func renderListings(w io.Writer, listings []model.Listing) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SYMBOL\tNAME\tCAP\tPRICE\tCHG%\tRSI\tSCORE\tSIGNALS")
	for _, l := range listings {
		a := l.Asset
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s%.2f\t%+.2f\t%s\t%d\t%s\n",
			l.Symbol, l.Name, l.Cap, l.Currency, a.LastPrice, a.DayChangePercent,
			a.Snapshot.RSI, a.Score, strings.Join(a.Labels(), ", "))
	}
	return tw.Flush()
}

func renderNotes(w io.Writer, notes []model.Note) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tCATEGORY\tSOURCE\tTITLE")
	for _, n := range notes {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", n.ID, n.Date, n.Category, n.Source, n.Title)
	}
	return tw.Flush()
}

func renderAsset(w io.Writer, closes model.PriceSeries, a model.ScoredAsset) {
	fmt.Fprintf(w, "Closes (%d):", len(closes))
	for _, c := range closes {
		fmt.Fprintf(w, " %.2f", c)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Last: %.2f  Change: %+.2f%%  RSI: %s  Score: %d\n",
		a.LastPrice, a.DayChangePercent, a.Snapshot.RSI, a.Score)
	for _, s := range a.Signals {
		fmt.Fprintf(w, "  %-8s %s\n", s.Kind, s.Label)
	}
}
