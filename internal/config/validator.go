package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

func newValidator() (*validator.Validate, ut.Translator, error) {
	validate := validator.New()

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	if err := enTranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, nil, fmt.Errorf("failed to register default translations: %w", err)
	}

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return validate, trans, nil
}

// Validate checks configuration constraints that viper defaults cannot express.
func (c *Config) Validate() error {
	validate, trans, err := newValidator()
	if err != nil {
		return err
	}

	checks := struct {
		EventWindowSize   int `mapstructure:"analytics.event_window_size" validate:"gt=0,lte=500"`
		SnapshotTTL       int `mapstructure:"analytics.snapshot_ttl_minutes" validate:"gt=0"`
		RecommendationTTL int `mapstructure:"analytics.recommendation_ttl_minutes" validate:"gt=0"`
		DatabasePort      int `mapstructure:"database.port" validate:"gt=0,lte=65535"`
	}{
		EventWindowSize:   c.Analytics.EventWindowSize,
		SnapshotTTL:       c.Analytics.SnapshotTTLMinutes,
		RecommendationTTL: c.Analytics.RecommendationTTLMinutes,
		DatabasePort:      c.Database.Port,
	}

	if err := validate.Struct(checks); err != nil {
		validationErrors, ok := err.(validator.ValidationErrors)
		if !ok {
			return fmt.Errorf("failed to validate configuration: %w", err)
		}
		messages := make([]string, 0, len(validationErrors))
		for _, fieldError := range validationErrors {
			messages = append(messages, fieldError.Translate(trans))
		}
		return fmt.Errorf("invalid configuration: %s", strings.Join(messages, "; "))
	}
	return nil
}
