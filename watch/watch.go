// Package watch re-runs the field pipeline whenever the boundary, team
// registry or a survey file changes.
package watch

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"

	"github.com/geosurvey/fieldmap/config"
	"github.com/geosurvey/fieldmap/fields"
	"github.com/geosurvey/fieldmap/logging"
)

var log = logging.NewLogger("watch")

// settleDelay batches bursts of write events from editors and survey
// uploads into a single run.
const settleDelay = 500 * time.Millisecond

// Run processes once, then blocks watching the input files until SIGINT or
// SIGTERM. Pipeline failures during a rerun are logged, not fatal; the
// watcher keeps running so a corrected file triggers the next attempt.
func Run(opts config.Base) error {
	if err := runOnce(opts); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "creating watcher")
	}
	defer watcher.Close()

	for _, path := range []string{opts.Boundary, opts.Teams, opts.SurveyDir} {
		if err := watcher.Add(path); err != nil {
			return errors.Wrapf(err, "watching %s", path)
		}
	}

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGTERM, syscall.SIGINT)

	var pending <-chan time.Time
	for {
		select {
		case <-sigc:
			log.Print("Exiting. (SIGTERM/SIGINT)")
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			pending = time.After(settleDelay)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Errorf("watch error: %v", err)
		case <-pending:
			pending = nil
			if err := runOnce(opts); err != nil {
				log.Errorf("rerun failed: %v", err)
			}
		}
	}
}

func runOnce(opts config.Base) error {
	result, err := fields.ComputeAll(opts)
	if err != nil {
		return err
	}
	if err := fields.WriteGeoJSONFile(opts.Output, result); err != nil {
		return err
	}
	log.Printf("wrote %s", opts.Output)
	return nil
}
