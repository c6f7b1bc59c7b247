package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"attrition/internal/encoder"
)

// YAMLConfig represents the structure of the config.yaml file.
// It replaces the compiled-in frequency table, e.g. after the model is
// retrained on a new population.
type YAMLConfig struct {
	Encoding EncodingConfig `yaml:"encoding"`
}

// EncodingConfig defines the frequency table, one ordered list per field.
type EncodingConfig struct {
	Fields   map[string][]CategoryConfig `yaml:"fields"`
	Defaults map[string]string           `yaml:"defaults,omitempty"` // Field -> default category
}

// CategoryConfig is one category and its population frequency.
type CategoryConfig struct {
	Name      string  `yaml:"name"`
	Frequency float64 `yaml:"frequency"`
}

// LoadYAMLConfig loads the YAML configuration file.
// Path is determined by CONFIG_FILE env var, defaulting to "config.yaml".
// Returns nil without error if the config file doesn't exist.
func LoadYAMLConfig() (*YAMLConfig, error) {
	path := getEnv("CONFIG_FILE", "config.yaml")

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Config file is optional
			return nil, nil
		}
		return nil, err
	}

	var cfg YAMLConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// FrequencyTable builds the encoder table. A nil config or one without an
// encoding section yields the compiled-in table.
func (c *YAMLConfig) FrequencyTable() (*encoder.Table, error) {
	if c == nil || len(c.Encoding.Fields) == 0 {
		return encoder.DefaultTable(), nil
	}

	columns := make(map[encoder.Field][]encoder.Category, len(c.Encoding.Fields))
	for field, cats := range c.Encoding.Fields {
		column := make([]encoder.Category, 0, len(cats))
		for _, cat := range cats {
			column = append(column, encoder.Category{Name: cat.Name, Frequency: cat.Frequency})
		}
		columns[encoder.Field(field)] = column
	}

	defaults := make(map[encoder.Field]string, len(c.Encoding.Defaults))
	for field, category := range c.Encoding.Defaults {
		defaults[encoder.Field(field)] = category
	}

	return encoder.NewTable(columns, defaults)
}
