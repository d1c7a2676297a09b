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
	Host      string    `koanf:"host"`
	Frontend  Frontend  `koanf:"frontend"`
	Storage   Storage   `koanf:"storage"`
	GitHub    GitHub    `koanf:"github"`
	Classroom Classroom `koanf:"classroom"`
}

type Frontend struct {
	Enabled bool `koanf:"enabled"`
}

// Storage locates the local key-value store holding the planner data.
type Storage struct {
	Path string `koanf:"path"`
}

// GitHub addresses the remote document used for cross-device sync.
// Token is sourced from the deployment environment, never from the UI.
type GitHub struct {
	Owner  string `koanf:"owner"`
	Repo   string `koanf:"repo"`
	Branch string `koanf:"branch"`
	Path   string `koanf:"path"`
	Token  string `koanf:"token"`
}

type Classroom struct {
	Token string `koanf:"token"`
}

func Load(path string) (Application, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(Application{
		Host: "http://localhost:3000",
		Frontend: Frontend{
			Enabled: true,
		},
		Storage: Storage{
			Path: "./data/planner",
		},
		GitHub: GitHub{
			Branch: "main",
			Path:   "data/lesson-planner.json",
		},
	}, "koanf"), nil)
	if err != nil {
		log.Errorf("error loading config from structs: %v", err)
		return Application{}, err
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if os.IsNotExist(err) {
			log.Infof("Config file not found at %s, using defaults and environment variables", path)
		} else {
			log.Errorf("error loading config from YAML: %v", err)
			return Application{}, err
		}
	} else {
		log.Infof("Loaded configuration from file: %s", path)
	}

	err = k.Load(env.Provider(".", env.Opt{
		Prefix: "PLANNER_",
		TransformFunc: func(k, v string) (string, any) {
			// Transform the key.
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, "PLANNER_")), "_", ".")
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
