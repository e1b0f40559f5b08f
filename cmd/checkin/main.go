// Command checkin seats parties on a flight offline and prints the
// resulting chart.
//
//	checkin [flags] <seatmap> [party ...]
//
// Parties are checked in in the order given.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/iliyamo/flight-checkin/internal/chart"
	"github.com/iliyamo/flight-checkin/internal/model"
	"github.com/iliyamo/flight-checkin/internal/seatmap"
	"github.com/iliyamo/flight-checkin/internal/seating"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "checkin:", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("checkin", flag.ContinueOnError)
	fs.SetOutput(out)
	w := seating.DefaultWeights()
	fs.Float64Var(&w.WrongType, "wrong-type", w.WrongType, "penalty for a seat of the wrong type")
	fs.Float64Var(&w.Safety, "safety", w.Safety, "penalty for a minor in an exit row")
	fs.Float64Var(&w.OccupiedNeighbor, "occupied-neighbor", w.OccupiedNeighbor, "penalty per occupied seat bordering the party")
	quiet := fs.Bool("q", false, "print only the final chart")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return errors.New("missing seat map")
	}

	cat := model.DefaultCatalog()
	m, err := seatmap.Load(fs.Arg(0), cat)
	if err != nil {
		return err
	}
	f, err := m.Flight(w)
	if err != nil {
		return err
	}

	for _, path := range fs.Args()[1:] {
		p, err := seatmap.LoadParty(path, cat)
		if err != nil {
			return err
		}
		res := f.Checkin(p)
		if !*quiet {
			printResult(out, path, res, cat)
		}
	}
	return chart.Render(out, f.Number(), f.Charts(), cat)
}

func printResult(out io.Writer, path string, res seating.CheckinResult, cat *model.Catalog) {
	fmt.Fprintf(out, "%s: %s, %s, score %g\n", path, cat.ClassName(res.Class), res.Status, res.Score)
	for _, a := range res.Assignments {
		fmt.Fprintf(out, "  %-12s %-6s penalty %g\n", a.Traveler.Name, a.Seat.Label, a.Penalty)
	}
	for _, t := range res.Unseated {
		fmt.Fprintf(out, "  %-12s unseated\n", t.Name)
	}
}
