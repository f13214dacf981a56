package config

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
)

type Config struct {
	Boundary    string  `json:"boundary"`
	Teams       string  `json:"teams"`
	SurveyDir   string  `json:"surveydir"`
	Output      string  `json:"output"`
	FieldWidth  float64 `json:"field_width_ft"`
	LabelHeight float64 `json:"label_height_ft"`
	LabelScale  float64 `json:"label_scale"`
}

const defaultSurveyDir = "survey"
const defaultOutput = "site/fields.geojson"
const defaultFieldWidth = 160.0
const defaultLabelHeight = 360.0
const defaultLabelScale = 500.0

type Base struct {
	Boundary    string
	Teams       string
	SurveyDir   string
	Output      string
	FieldWidth  float64
	LabelHeight float64
	LabelScale  float64
	ConfigFile  string
	Quiet       bool
}

func (o *Base) updateFromConfig() error {
	conf := &Config{
		SurveyDir:   defaultSurveyDir,
		Output:      defaultOutput,
		FieldWidth:  defaultFieldWidth,
		LabelHeight: defaultLabelHeight,
		LabelScale:  defaultLabelScale,
	}

	if o.ConfigFile != "" {
		f, err := os.Open(o.ConfigFile)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := json.NewDecoder(f).Decode(&conf); err != nil {
			return err
		}
	}

	if o.Boundary == "" {
		o.Boundary = conf.Boundary
	}
	if o.Teams == "" {
		o.Teams = conf.Teams
	}
	if o.SurveyDir == defaultSurveyDir && conf.SurveyDir != "" {
		o.SurveyDir = conf.SurveyDir
	}
	if o.Output == defaultOutput && conf.Output != "" {
		o.Output = conf.Output
	}
	if o.FieldWidth == defaultFieldWidth && conf.FieldWidth != 0 {
		o.FieldWidth = conf.FieldWidth
	}
	if o.LabelHeight == defaultLabelHeight && conf.LabelHeight != 0 {
		o.LabelHeight = conf.LabelHeight
	}
	if o.LabelScale == defaultLabelScale && conf.LabelScale != 0 {
		o.LabelScale = conf.LabelScale
	}
	return nil
}

func (o *Base) check() []error {
	errs := []error{}
	if o.Boundary == "" {
		errs = append(errs, errors.New("missing boundary"))
	}
	if o.Teams == "" {
		errs = append(errs, errors.New("missing teams"))
	}
	if o.FieldWidth <= 0 {
		errs = append(errs, errors.New("field_width_ft must be positive"))
	}
	if o.LabelHeight <= 0 {
		errs = append(errs, errors.New("label_height_ft must be positive"))
	}
	if o.LabelScale <= 0 {
		errs = append(errs, errors.New("label_scale must be positive"))
	}
	return errs
}

var RunFlags = flag.NewFlagSet("run", flag.ExitOnError)
var WatchFlags = flag.NewFlagSet("watch", flag.ExitOnError)

var BaseOptions = Base{}

func addBaseFlags(flags *flag.FlagSet) {
	flags.StringVar(&BaseOptions.Boundary, "boundary", "", "boundary polygon file (.txt or .geojson)")
	flags.StringVar(&BaseOptions.Teams, "teams", "", "team registry (yaml)")
	flags.StringVar(&BaseOptions.SurveyDir, "surveydir", defaultSurveyDir, "directory with per-team survey KML files")
	flags.StringVar(&BaseOptions.Output, "output", defaultOutput, "output GeoJSON file")
	flags.Float64Var(&BaseOptions.FieldWidth, "fieldwidth", defaultFieldWidth, "field width in feet")
	flags.Float64Var(&BaseOptions.LabelHeight, "labelheight", defaultLabelHeight, "label height in feet")
	flags.Float64Var(&BaseOptions.LabelScale, "labelscale", defaultLabelScale, "label size factor relative to the field")
	flags.StringVar(&BaseOptions.ConfigFile, "config", "", "config (json)")
	flags.BoolVar(&BaseOptions.Quiet, "quiet", false, "quiet log output")
}

func UsageRun() {
	fmt.Fprintf(os.Stderr, "Usage: %s %s [args]\n\n", os.Args[0], os.Args[1])
	RunFlags.PrintDefaults()
	os.Exit(2)
}

func UsageWatch() {
	fmt.Fprintf(os.Stderr, "Usage: %s %s [args]\n\n", os.Args[0], os.Args[1])
	WatchFlags.PrintDefaults()
	os.Exit(2)
}

func init() {
	RunFlags.Usage = UsageRun
	WatchFlags.Usage = UsageWatch

	addBaseFlags(RunFlags)
	addBaseFlags(WatchFlags)
}

func ParseRun(args []string) Base {
	if err := RunFlags.Parse(args); err != nil {
		log.Fatal(err)
	}
	if err := BaseOptions.updateFromConfig(); err != nil {
		log.Fatal(err)
	}
	if errs := BaseOptions.check(); len(errs) != 0 {
		reportErrors(errs)
		UsageRun()
	}
	return BaseOptions
}

func ParseWatch(args []string) Base {
	if err := WatchFlags.Parse(args); err != nil {
		log.Fatal(err)
	}
	if err := BaseOptions.updateFromConfig(); err != nil {
		log.Fatal(err)
	}
	if errs := BaseOptions.check(); len(errs) != 0 {
		reportErrors(errs)
		UsageWatch()
	}
	return BaseOptions
}

func reportErrors(errs []error) {
	fmt.Println("errors in config/options:")
	for _, err := range errs {
		fmt.Printf("\t%s\n", err)
	}
	os.Exit(1)
}
