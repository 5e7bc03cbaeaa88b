package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var durationType = reflect.TypeOf(time.Duration(0))

// GetEnv loads .env (when present) and fills Config from the environment.
// A variable that is unset falls back to its envDefault tag; a field with
// neither is an error.
func GetEnv() (config *Config, er error) {
	err := godotenv.Load()
	if err != nil {
		_ = godotenv.Load("../../.env")
	}

	config = &Config{}
	if er = fill(config); er != nil {
		return nil, er
	}

	if er = config.validate(); er != nil {
		return nil, er
	}

	return config, nil
}

func fill(config *Config) error {
	v := reflect.ValueOf(config).Elem()
	t := v.Type()

	for i := range make([]struct{}, v.NumField()) {
		field := t.Field(i)
		envTag := field.Tag.Get("env")
		if envTag == "" {
			continue
		}

		value, exists := os.LookupEnv(envTag)
		if !exists {
			def, hasDefault := field.Tag.Lookup("envDefault")
			if !hasDefault {
				return fmt.Errorf("environment variable %s not set", envTag)
			}
			value = def
		}

		if err := setField(v.Field(i), value); err != nil {
			return fmt.Errorf("invalid value for %s: %w", envTag, err)
		}
	}

	return nil
}

func setField(f reflect.Value, value string) error {
	if f.Type() == durationType {
		if value == "" {
			f.SetInt(0)
			return nil
		}
		d, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		f.SetInt(int64(d))
		return nil
	}

	switch f.Kind() {
	case reflect.String:
		f.SetString(value)
	case reflect.Int, reflect.Int64:
		if value == "" {
			f.SetInt(0)
			return nil
		}
		intValue, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return err
		}
		f.SetInt(intValue)
	case reflect.Float64:
		if value == "" {
			f.SetFloat(0)
			return nil
		}
		floatValue, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return err
		}
		f.SetFloat(floatValue)
	case reflect.Bool:
		if value == "" {
			f.SetBool(false)
			return nil
		}
		boolValue, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		f.SetBool(boolValue)
	case reflect.Slice:
		if f.Type().Elem().Kind() != reflect.String {
			return fmt.Errorf("unsupported slice type %s", f.Type())
		}
		var parts []string
		for _, p := range strings.Split(value, ",") {
			if p = strings.TrimSpace(p); p != "" {
				parts = append(parts, p)
			}
		}
		f.Set(reflect.ValueOf(parts).Convert(f.Type()))
	default:
		return fmt.Errorf("unsupported kind %s", f.Kind())
	}

	return nil
}

func (c *Config) validate() error {
	if !c.AppEnv.IsValid() {
		return fmt.Errorf("APP_ENV %q is not one of local, development, staging, production", c.AppEnv)
	}
	if !c.BackendKind.IsValid() {
		return fmt.Errorf("BACKEND_KIND %q is not one of sheet, document", c.BackendKind)
	}
	if !c.EventBroker.IsValid() {
		return fmt.Errorf("EVENT_BROKER %q is not one of rabbitmq, kafka, none", c.EventBroker)
	}
	if !c.StorageDriver.IsValid() {
		return fmt.Errorf("STORAGE_DRIVER %q is not one of s3, redis", c.StorageDriver)
	}
	if !c.P2PFeePolicy.IsValid() {
		return fmt.Errorf("P2P_FEE_POLICY %q is not one of deducted, added", c.P2PFeePolicy)
	}
	if c.SlipMaxDimension <= 0 {
		return fmt.Errorf("SLIP_MAX_DIMENSION must be positive")
	}
	if c.SlipQuality < 1 || c.SlipQuality > 100 {
		return fmt.Errorf("SLIP_QUALITY must be between 1 and 100")
	}
	if c.P2PFeePercent < 0 || c.P2PMinFee < 0 {
		return fmt.Errorf("P2P fee settings must not be negative")
	}
	return nil
}

// Location resolves APP_TIMEZONE, falling back to UTC.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.AppTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
