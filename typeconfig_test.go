package typeconfig_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-typeconfig"
	"github.com/goliatone/go-typeconfig/pkg/abstracttype"
	"github.com/goliatone/go-typeconfig/pkg/abstracttype/duration"
	"github.com/goliatone/go-typeconfig/pkg/testsupport"
)

func TestNewRegistry_Builtins(t *testing.T) {
	reg := typeconfig.MustNewRegistry()

	if diff := cmp.Diff([]abstracttype.Type{abstracttype.Duration}, reg.List()); diff != "" {
		t.Fatalf("registered types mismatch (-want +got):\n%s", diff)
	}

	testsupport.AssertContract(t, reg, map[abstracttype.Type][]abstracttype.DisplayOptions{
		abstracttype.Duration: {{"max": "h"}, {"min": "ms", "show_units": true}},
	})
}

func TestNewRegistry_DurationDefaults(t *testing.T) {
	reg := typeconfig.MustNewRegistry(typeconfig.WithDurationDefaults(duration.UnitHours, duration.UnitMinutes))

	display, err := reg.DisplayConfig(abstracttype.Duration)
	if err != nil {
		t.Fatalf("display config: %v", err)
	}
	got := display.RoundTrip(nil)
	want := abstracttype.DisplayOptions{"max": "h", "min": "m", "show_units": false}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestNewRegistry_ExtraTypeConflicts(t *testing.T) {
	_, err := typeconfig.NewRegistry(typeconfig.WithType(abstracttype.Duration, duration.New()))
	if !errors.Is(err, abstracttype.ErrDuplicateType) {
		t.Fatalf("expected ErrDuplicateType, got %v", err)
	}
}
