// File: internal/featureflags/featureflags_test.go
// Brief: Internal featureflags package implementation for 'featureflags'.

package featureflags

import (
	"context"
	"errors"
	"testing"
)

func TestResolve(t *testing.T) {
	flags, err := Resolve([]string{" Verify_Invariants "})
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if !flags.Enabled(FeatureVerifyInvariants) {
		t.Fatalf("expected feature %s to be enabled", FeatureVerifyInvariants)
	}
	if names := flags.EnabledNames(); len(names) != 1 || names[0] != FeatureVerifyInvariants {
		t.Fatalf("unexpected enabled names: %v", names)
	}
}

func TestResolveUnknown(t *testing.T) {
	_, err := Resolve([]string{"verify-invariants,teleport"})
	if !errors.Is(err, ErrUnknownFeature) {
		t.Fatalf("expected ErrUnknownFeature, got %v", err)
	}
}

func TestEnabledFromEnv(t *testing.T) {
	env := []string{
		"ROBLOCKS_FEATURE_VERIFY_INVARIANTS=yes",
		"SOME_OTHER=value",
		"ROBLOCKS_FEATURE_BOGUS=0",
	}
	list := EnabledFromEnv(env)
	if len(list) != 1 || list[0] != "verify-invariants" {
		t.Fatalf("unexpected env flags: %v", list)
	}
	flags, err := Resolve(list)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if !flags.Enabled(FeatureVerifyInvariants) {
		t.Fatalf("expected env to enable %s", FeatureVerifyInvariants)
	}
}

func TestDefinitionEnvVar(t *testing.T) {
	defs := Definitions()
	if len(defs) == 0 {
		t.Fatalf("expected registered definitions")
	}
	if got := defs[0].EnvVar(); got != "ROBLOCKS_FEATURE_VERIFY_INVARIANTS" {
		t.Fatalf("unexpected env var %q", got)
	}
}

func TestContextHelpers(t *testing.T) {
	flags, err := Resolve([]string{"verify-invariants"})
	if err != nil {
		t.Fatal(err)
	}
	ctx := ContextWithFlags(context.Background(), flags)
	if !FromContext(ctx).Enabled(FeatureVerifyInvariants) {
		t.Fatalf("expected flag to survive context round-trip")
	}
	if FromContext(context.Background()).Enabled(FeatureVerifyInvariants) {
		t.Fatalf("zero context should not report feature enabled")
	}
}
