package mcputils

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
)

// ArgumentGetter is an interface for getting arguments from a request
type ArgumentGetter interface {
	GetArguments() map[string]interface{}
}

// BindArguments decodes MCP request arguments into target using its json tags.
// Some MCP clients send every parameter as a string, so booleans encoded as
// strings are coerced to bool fields.
func BindArguments[T any](request ArgumentGetter, target *T) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.ComposeDecodeHookFunc(stringBoolHook),
		ErrorUnused:      false,
		Result:           target,
		TagName:          "json",
	})
	if err != nil {
		return fmt.Errorf("failed to create argument decoder: %w", err)
	}

	if err := decoder.Decode(request.GetArguments()); err != nil {
		return fmt.Errorf("failed to decode arguments: %w", err)
	}
	return nil
}

func stringBoolHook(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	if from.Kind() != reflect.String || to.Kind() != reflect.Bool {
		return data, nil
	}
	raw := strings.TrimSpace(data.(string))
	if raw == "" {
		return false, nil
	}

	var b bool
	if err := json.Unmarshal([]byte(raw), &b); err != nil {
		return nil, fmt.Errorf("cannot parse %q as a boolean", raw)
	}
	return b, nil
}
