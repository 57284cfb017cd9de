package lint

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
)

// OptionTag is the struct tag naming a rule option key.
const OptionTag = "option"

// DecodeOptions decodes rule options into out, a pointer to a struct whose
// fields carry `option:"key"` tags. Unknown keys are an error. Strings are
// accepted for list fields and split on commas, so options can come from
// environment variables as well as YAML lists.
func DecodeOptions(opts map[string]any, out any) error {
	if len(opts) == 0 {
		return nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          OptionTag,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.StringToSliceHookFunc(","),
		Result:           out,
	})
	if err != nil {
		return fmt.Errorf("failed to create option decoder: %w", err)
	}
	if err := dec.Decode(opts); err != nil {
		return err
	}
	return nil
}

// OrDefault returns v unless it is empty, in which case it returns def.
func OrDefault[T any](v, def []T) []T {
	if len(v) == 0 {
		return def
	}
	return v
}

// StringOrDefault returns s unless it is empty, in which case it returns def.
func StringOrDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
