package fieldmap

var Version string

// buildVersion gets replaced while building with
// go build -ldflags "-X github.com/geosurvey/fieldmap.buildVersion 1234"
var buildVersion string

func init() {
	Version = "0.2.0"
	Version += buildVersion
}
