package models

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type Config struct {
	LogLevel        string `mapstructure:"log_level"`
	LogFormat       string `mapstructure:"log_format"` // console or json
	CurrencySymbol  string `mapstructure:"currency_symbol"`
	DefaultCategory Course `mapstructure:"default_category"`
	SampleItems     int    `mapstructure:"sample_items"`
	Seed            int64  `mapstructure:"seed"`
	MenuFile        string `mapstructure:"menu_file"`
	OutputFormat    string `mapstructure:"output_format"`
	OutputPath      string `mapstructure:"output_path"`
	OutputFolder    string `mapstructure:"output_folder"`
	ConfirmRemovals bool   `mapstructure:"confirm_removals"`
	Progress        bool   `mapstructure:"progress"`
}

// SetDefaults registers the default value of every config key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")
	v.SetDefault("currency_symbol", "R")
	v.SetDefault("default_category", string(CourseStarter))
	v.SetDefault("sample_items", 0)
	v.SetDefault("seed", 42)
	v.SetDefault("menu_file", "")
	v.SetDefault("output_format", OutputFormatNone)
	v.SetDefault("output_path", ".")
	v.SetDefault("output_folder", "export")
	v.SetDefault("confirm_removals", true)
	v.SetDefault("progress", true)
}

// LoadConfig reads cfgFile (if any) plus CHEFMENU_* environment variables
// into a Config. A missing default config file is not an error.
func LoadConfig(v *viper.Viper, cfgFile string) (*Config, error) {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".chefmenu")
	}

	v.SetEnvPrefix("chefmenu")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	decoderConfigOption := viper.DecoderConfigOption(func(config *mapstructure.DecoderConfig) {
		config.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			config.DecodeHook,
			StringToCourseHookFunc(),
		)
	})
	if err := v.Unmarshal(&config, decoderConfigOption); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// StringToCourseHookFunc decodes config strings such as "main meal" into a Course.
func StringToCourseHookFunc() mapstructure.DecodeHookFuncType {
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if f.Kind() != reflect.String || t != reflect.TypeOf(Course("")) {
			return data, nil
		}
		return ParseCourse(data.(string))
	}
}

func (cfg *Config) Validate() error {
	switch cfg.OutputFormat {
	case OutputFormatNone, OutputFormatConsole, OutputFormatJSON, OutputFormatCSV, OutputFormatParquet:
	default:
		return fmt.Errorf("unsupported output format %q", cfg.OutputFormat)
	}
	if cfg.SampleItems < 0 {
		return fmt.Errorf("sample_items must not be negative, got %d", cfg.SampleItems)
	}
	if !cfg.DefaultCategory.Valid() {
		return fmt.Errorf("invalid default_category %q", cfg.DefaultCategory)
	}
	return nil
}

// LoadMenuDrafts reads a seed menu CSV. The first row is a header; the
// columns are itemName, description, category, price, image and
// ingredients, with ingredients separated by semicolons.
func LoadMenuDrafts(filePath string) ([]Draft, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return ReadMenuDrafts(file)
}

func ReadMenuDrafts(r io.Reader) ([]Draft, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 6
	reader.TrimLeadingSpace = true
	if _, err := reader.Read(); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("read menu header: %w", err)
	}

	var drafts []Draft
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		drafts = append(drafts, Draft{
			ItemName:    fields[0],
			Description: fields[1],
			Category:    fields[2],
			Price:       fields[3],
			Image:       fields[4],
			Ingredients: strings.ReplaceAll(fields[5], ";", ","),
		})
	}

	return drafts, nil
}
