package main

import (
	"fmt"
	"os"

	"github.com/geosurvey/fieldmap"
	"github.com/geosurvey/fieldmap/config"
	"github.com/geosurvey/fieldmap/fields"
	"github.com/geosurvey/fieldmap/logging"
	"github.com/geosurvey/fieldmap/watch"
)

var log = logging.NewLogger("")

func printCmds() {
	fmt.Fprintf(os.Stderr, "Usage: %s COMMAND [args]\n\n", os.Args[0])
	fmt.Println("Available commands:")
	fmt.Println("\trun")
	fmt.Println("\twatch")
	fmt.Println("\tversion")
}

func main() {
	if len(os.Args) <= 1 {
		printCmds()
		logging.Shutdown()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "run":
		opts := config.ParseRun(os.Args[2:])
		if opts.Quiet {
			logging.SetQuiet(true)
		}
		result, err := fields.ComputeAll(opts)
		if err != nil {
			log.Fatalf("computing fields: %v", err)
		}
		if err := fields.WriteGeoJSONFile(opts.Output, result); err != nil {
			log.Fatalf("writing %s: %v", opts.Output, err)
		}
		log.Printf("wrote %s", opts.Output)
	case "watch":
		opts := config.ParseWatch(os.Args[2:])
		if opts.Quiet {
			logging.SetQuiet(true)
		}
		if err := watch.Run(opts); err != nil {
			log.Fatalf("watch: %v", err)
		}
	case "version":
		fmt.Println(fieldmap.Version)
		os.Exit(0)
	default:
		printCmds()
		log.Fatalf("invalid command: '%s'", os.Args[1])
	}
	logging.Shutdown()
	os.Exit(0)
}
