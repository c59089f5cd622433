package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type StructuredJSONConfig struct {
	App struct {
		LinkURL   string `json:"link_url"`
		LinkTitle string `json:"link_title"`
		Version   string `json:"version"`
	} `json:"app,omitempty"`

	Bot struct {
		Token       string   `json:"token"`
		PollTimeout Duration `json:"poll_timeout"`
	} `json:"bot,omitempty"`

	Captcha struct {
		Length     int      `json:"length"`
		Width      int      `json:"width"`
		Height     int      `json:"height"`
		NoiseLines int      `json:"noise_lines"`
		NoiseDots  int      `json:"noise_dots"`
		FontSize   float64  `json:"font_size"`
		FontPaths  []string `json:"font_paths"`
	} `json:"captcha,omitempty"`

	Access struct {
		Cooldown Duration `json:"cooldown"`
	} `json:"access,omitempty"`

	Storage struct {
		DB struct {
			Driver string `json:"driver"`
			DSN    string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress string `json:"http_address"`
	} `json:"server,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			LinkURL:   jsonCfg.App.LinkURL,
			LinkTitle: jsonCfg.App.LinkTitle,
			Version:   jsonCfg.App.Version,
		},
		Bot: Bot{
			Token:       jsonCfg.Bot.Token,
			PollTimeout: time.Duration(jsonCfg.Bot.PollTimeout),
		},
		Captcha: Captcha{
			Length:     jsonCfg.Captcha.Length,
			Width:      jsonCfg.Captcha.Width,
			Height:     jsonCfg.Captcha.Height,
			NoiseLines: jsonCfg.Captcha.NoiseLines,
			NoiseDots:  jsonCfg.Captcha.NoiseDots,
			FontSize:   jsonCfg.Captcha.FontSize,
			FontPaths:  jsonCfg.Captcha.FontPaths,
		},
		Access: Access{
			Cooldown: time.Duration(jsonCfg.Access.Cooldown),
		},
		Storage: Storage{
			DB: DB{
				Driver: jsonCfg.Storage.DB.Driver,
				DSN:    jsonCfg.Storage.DB.DSN,
			},
		},
		Server: Server{
			HTTPAddress: jsonCfg.Server.HTTPAddress,
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
