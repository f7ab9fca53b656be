package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/tripledger/tripledger/internal/calendar"
	"github.com/tripledger/tripledger/internal/config"
	"github.com/tripledger/tripledger/internal/export"
	"github.com/tripledger/tripledger/internal/geo"
	"github.com/tripledger/tripledger/internal/logger"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	TripFile string   `short:"c" long:"config" env:"TRIP_FILE"  description:"Path to trip file"              default:"trip.yaml"`
	Output   string   `short:"o" long:"output" env:"OUTPUT_DIR" description:"Directory for exported files"   default:"out"`
	Formats  []string `short:"f" long:"format" description:"Export format (repeatable)" choice:"json" choice:"csv" choice:"ics" choice:"geojson" choice:"html" default:"json"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	opts.Logger.Setup()

	trip, err := config.Load(opts.TripFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load trip file")
	}

	table, err := geo.LoadTable(trip.Coordinates)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load coordinate reference file")
	}

	cal, err := calendar.NewDistance(trip.StartYear, trip.EndYear, trip.Home, table)
	if err != nil {
		fatalLookup(err, "Failed to build calendar")
	}

	for _, stay := range trip.Stays {
		checkout, err := stay.CheckoutDate()
		if err != nil {
			log.Fatal().Err(err).Str("checkout", stay.Checkout).Msg("Bad checkout date")
		}

		if err := cal.SetLocation(checkout, stay.Nights, stay.Location); err != nil {
			fatalLookup(err, "Failed to record stay")
		}
	}

	if err := os.MkdirAll(opts.Output, 0755); err != nil {
		log.Fatal().Err(err).Str("dir", opts.Output).Msg("Failed to create output directory")
	}

	name := fmt.Sprintf("travel-%d-%d", trip.StartYear, trip.EndYear)
	title := fmt.Sprintf("Travel %d-%d", trip.StartYear, trip.EndYear)

	for _, format := range opts.Formats {
		path := filepath.Join(opts.Output, name+"."+format)

		err := writeExport(path, func(w io.Writer) error {
			switch format {
			case "json":
				return export.WriteJSON(w, cal)
			case "csv":
				return export.WriteCSV(w, cal)
			case "ics":
				return export.WriteICS(w, cal, title, trip.Home)
			case "geojson":
				return export.WriteGeoJSON(w, cal)
			case "html":
				return export.WriteHTML(w, cal, title, trip.Home)
			default:
				return fmt.Errorf("unknown format %q", format)
			}
		})
		if err != nil {
			log.Fatal().Err(err).Str("path", path).Msg("Export failed")
		}

		log.Info().Str("path", path).Msg("Export written")
	}

	log.Info().
		Int("days", cal.Len()).
		Int("stays", len(trip.Stays)).
		Str("home", trip.Home).
		Msg("Travel calendar complete")
}

// fatalLookup terminates with an operator-friendly message. An unresolved
// place is a configuration error: report what is missing and where to add
// it, then exit.
func fatalLookup(err error, msg string) {
	var unresolved *geo.UnresolvedError
	if errors.As(err, &unresolved) {
		log.Fatal().
			Str("location", unresolved.Place).
			Str("missing", unresolved.Segment).
			Str("coordinates_file", unresolved.Path).
			Msg("Could not find coordinates, please add the location to the reference file")
	}

	log.Fatal().Err(err).Msg(msg)
}

// writeExport creates the file and streams one export into it.
func writeExport(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	// We care about write errors on close
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			log.Error().Err(closeErr).Str("path", path).Msg("Failed to close file")
		}
	}()

	return write(f)
}
