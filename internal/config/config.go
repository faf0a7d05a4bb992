package config

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

type Application struct {
	GitHub     GitHub    `koanf:"github"`
	Storage    Storage   `koanf:"storage"`
	Dashboard  Dashboard `koanf:"dashboard"`
	Milestones []int     `koanf:"milestones"`
}

type GitHub struct {
	User string `koanf:"user"`
	Repo string `koanf:"repo"`
	// TokenEnv names the environment variable holding the API bearer token.
	TokenEnv string `koanf:"tokenenv"`
}

type Storage struct {
	ClonesFile string `koanf:"clonesfile"`
	BadgeDir   string `koanf:"badgedir"`
}

type Dashboard struct {
	OutputFile string `koanf:"outputfile"`
	Width      int    `koanf:"width"`
	Height     int    `koanf:"height"`
}

func Load(path string) (Application, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(Application{
		GitHub: GitHub{
			TokenEnv: "TOKEN",
		},
		Storage: Storage{
			ClonesFile: "clonepulse/fetch_clones.json",
			BadgeDir:   "clonepulse",
		},
		Dashboard: Dashboard{
			OutputFile: "clonepulse/weekly_clones.png",
			Width:      1000,
			Height:     500,
		},
		Milestones: []int{500, 1000, 2500, 5000, 10000, 25000, 50000, 100000},
	}, "koanf"), nil)
	if err != nil {
		log.Errorf("error loading config from structs: %v", err)
		return Application{}, err
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if os.IsNotExist(err) {
			log.Debugf("Config file not found at %s, using defaults and environment variables", path)
		} else {
			log.Errorf("error loading config from YAML: %v", err)
			return Application{}, err
		}
	} else {
		log.Infof("Loaded configuration from file: %s", path)
	}

	err = k.Load(env.Provider(".", env.Opt{
		Prefix: "CLONEPULSE_",
		TransformFunc: func(k, v string) (string, any) {
			// CLONEPULSE_GITHUB_USER -> github.user
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, "CLONEPULSE_")), "_", ".")
			return k, v
		},
	}), nil)
	if err != nil {
		log.Errorf("error loading config from envs: %v", err)
		return Application{}, err
	}

	var app Application
	if err := k.Unmarshal("", &app); err != nil {
		return Application{}, err
	}

	return app, nil
}
