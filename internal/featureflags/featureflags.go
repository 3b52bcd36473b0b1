// Package featureflags tracks opt-in roblocks behaviour that is not on by default.
package featureflags

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
)

// Stage indicates the lifecycle of a feature flag.
type Stage string

const StageExperimental Stage = "experimental"

// Name is the canonical identifier for a feature flag (kebab-case).
type Name string

const (
	// FeatureVerifyInvariants re-checks the whole table after every applied move.
	FeatureVerifyInvariants Name = "verify-invariants"
)

const envPrefix = "ROBLOCKS_FEATURE_"

// Definition tracks the metadata for a feature flag.
type Definition struct {
	Name        Name
	Description string
	Stage       Stage
	Default     bool
}

var registry = map[Name]Definition{
	FeatureVerifyInvariants: {
		Name:        FeatureVerifyInvariants,
		Description: "Verify block placement and the lookup index after every move.",
		Stage:       StageExperimental,
	},
}

// ErrUnknownFeature is returned when a caller references a flag that has not been registered.
var ErrUnknownFeature = errors.New("unknown feature flag")

// Definitions returns every registered flag sorted by name.
func Definitions() []Definition {
	defs := make([]Definition, 0, len(registry))
	for _, def := range registry {
		defs = append(defs, def)
	}
	slices.SortFunc(defs, func(a, b Definition) int { return strings.Compare(string(a.Name), string(b.Name)) })
	return defs
}

// EnvVar returns the variable that switches the flag on, e.g. ROBLOCKS_FEATURE_VERIFY_INVARIANTS.
func (d Definition) EnvVar() string {
	return envPrefix + strings.ToUpper(strings.ReplaceAll(string(d.Name), "-", "_"))
}

// Flags is the resolved flag set for one invocation.
type Flags struct {
	values map[Name]bool
}

func (f Flags) Enabled(name Name) bool {
	return f.values[name]
}

// EnabledNames lists the enabled flags in alphabetical order.
func (f Flags) EnabledNames() []Name {
	var names []Name
	for name, on := range f.values {
		if on {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}

// Resolve applies registry defaults, then every comma-separated name from sources.
func Resolve(sources ...[]string) (Flags, error) {
	values := make(map[Name]bool, len(registry))
	for _, def := range registry {
		if def.Default {
			values[def.Name] = true
		}
	}
	for _, source := range sources {
		for _, value := range source {
			for _, token := range strings.Split(value, ",") {
				token = strings.TrimSpace(token)
				if token == "" {
					continue
				}
				name := Name(strings.ReplaceAll(strings.ToLower(token), "_", "-"))
				if _, ok := registry[name]; !ok {
					return Flags{}, fmt.Errorf("%w: %s", ErrUnknownFeature, token)
				}
				values[name] = true
			}
		}
	}
	return Flags{values: values}, nil
}

// EnabledFromEnv returns the flag names switched on through ROBLOCKS_FEATURE_* variables.
// A nil environ reads the process environment.
func EnabledFromEnv(environ []string) []string {
	if environ == nil {
		environ = os.Environ()
	}
	var enabled []string
	for _, entry := range environ {
		key, val, ok := strings.Cut(entry, "=")
		if !ok || !strings.HasPrefix(key, envPrefix) || !isTruthy(val) {
			continue
		}
		name := strings.TrimPrefix(key, envPrefix)
		enabled = append(enabled, strings.ToLower(strings.ReplaceAll(name, "_", "-")))
	}
	return enabled
}

type ctxKey struct{}

// ContextWithFlags stores the resolved flags on ctx.
func ContextWithFlags(ctx context.Context, flags Flags) context.Context {
	return context.WithValue(ctx, ctxKey{}, flags)
}

// FromContext returns the flags stored on ctx, or an empty set.
func FromContext(ctx context.Context) Flags {
	if ctx == nil {
		return Flags{}
	}
	flags, _ := ctx.Value(ctxKey{}).(Flags)
	return flags
}

func isTruthy(val string) bool {
	switch strings.TrimSpace(strings.ToLower(val)) {
	case "1", "t", "true", "y", "yes", "on":
		return true
	default:
		return false
	}
}
