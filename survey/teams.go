package survey

import (
	"encoding/hex"
	"io/ioutil"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// Team identifies one survey team. Color is used by downstream rendering.
type Team struct {
	Name  string `yaml:"name"`
	Abbr  string `yaml:"abbr"`
	Color string `yaml:"color"`
}

// RGB decodes the team color "#rrggbb" into its three channels.
func (t *Team) RGB() ([3]byte, error) {
	var rgb [3]byte
	b, err := hex.DecodeString(strings.TrimPrefix(t.Color, "#"))
	if err != nil {
		return rgb, errors.Wrapf(err, "color of team %s", t.Name)
	}
	if len(b) != 3 {
		return rgb, errors.Errorf("color of team %s: %q is not #rrggbb", t.Name, t.Color)
	}
	copy(rgb[:], b)
	return rgb, nil
}

type teamsConf struct {
	Teams []Team `yaml:"teams"`
}

// TeamsFromFile loads the YAML team registry.
func TeamsFromFile(filename string) ([]Team, error) {
	b, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrap(err, "reading team registry")
	}
	return Teams(b)
}

func Teams(b []byte) ([]Team, error) {
	conf := teamsConf{}
	if err := yaml.Unmarshal(b, &conf); err != nil {
		return nil, errors.Wrap(err, "parsing team registry")
	}
	for i, team := range conf.Teams {
		if team.Name == "" {
			return nil, errors.Errorf("team %d has no name", i)
		}
		if _, err := team.RGB(); err != nil {
			return nil, err
		}
	}
	return conf.Teams, nil
}
