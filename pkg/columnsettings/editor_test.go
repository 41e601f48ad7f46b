package columnsettings_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-typeconfig/pkg/abstracttype"
	"github.com/goliatone/go-typeconfig/pkg/abstracttype/duration"
	"github.com/goliatone/go-typeconfig/pkg/columnsettings"
	"github.com/goliatone/go-typeconfig/pkg/form"
	"github.com/goliatone/go-typeconfig/pkg/validation"
)

type countingType struct {
	abstracttype.Configuration
	determined *int
}

func (c countingType) DisplayConfig() abstracttype.DisplayConfig {
	display := c.Configuration.DisplayConfig()
	inner := display.DetermineDisplayOptions
	display.DetermineDisplayOptions = func(values form.Values) abstracttype.DisplayOptions {
		*c.determined++
		return inner(values)
	}
	return display
}

func newRegistry(t *testing.T, determined *int) *abstracttype.Registry {
	t.Helper()
	reg := abstracttype.NewRegistry()
	var cfg abstracttype.Configuration = duration.New()
	if determined != nil {
		cfg = countingType{Configuration: cfg, determined: determined}
	}
	if err := reg.Register(abstracttype.Duration, cfg); err != nil {
		t.Fatalf("register duration: %v", err)
	}
	return reg
}

func TestEdit_SubmitDeterminesOptions(t *testing.T) {
	var seen form.Values
	renderer := columnsettings.FormRendererFunc(func(_ context.Context, schema form.Schema, seed form.Values) (form.Values, error) {
		seen = seed
		if _, ok := schema.Variables[duration.VariableName]; !ok {
			t.Fatalf("renderer received schema without %q", duration.VariableName)
		}
		return form.Values{duration.VariableName: map[string]any{"max": "d", "min": "h"}}, nil
	})

	editor := columnsettings.New(newRegistry(t, nil), columnsettings.WithRenderer(renderer))
	current := abstracttype.DisplayOptions{"max": "h"}

	got, err := editor.Edit(context.Background(), abstracttype.Duration, current)
	if err != nil {
		t.Fatalf("edit: %v", err)
	}

	want := abstracttype.DisplayOptions{"max": "d", "min": "h", "show_units": false}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}

	wantSeed := form.Values{duration.VariableName: map[string]any{"max": "h", "min": "s"}}
	if diff := cmp.Diff(wantSeed, seen); diff != "" {
		t.Fatalf("seed mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(abstracttype.DisplayOptions{"max": "h"}, current); diff != "" {
		t.Fatalf("current options mutated (-want +got):\n%s", diff)
	}
}

func TestEdit_AbortSkipsDetermine(t *testing.T) {
	determined := 0
	aborted := errors.New("aborted")
	renderer := columnsettings.FormRendererFunc(func(context.Context, form.Schema, form.Values) (form.Values, error) {
		return nil, aborted
	})

	editor := columnsettings.New(newRegistry(t, &determined), columnsettings.WithRenderer(renderer))
	got, err := editor.Edit(context.Background(), abstracttype.Duration, nil)
	if !errors.Is(err, aborted) {
		t.Fatalf("expected renderer error, got %v", err)
	}
	if got != nil {
		t.Fatalf("abandoned session produced options: %#v", got)
	}
	if determined != 0 {
		t.Fatalf("determine transform ran %d times after abort", determined)
	}
}

func TestEdit_Errors(t *testing.T) {
	renderer := columnsettings.FormRendererFunc(func(_ context.Context, _ form.Schema, seed form.Values) (form.Values, error) {
		return seed, nil
	})

	t.Run("unknown type", func(t *testing.T) {
		editor := columnsettings.New(newRegistry(t, nil), columnsettings.WithRenderer(renderer))
		_, err := editor.Edit(context.Background(), abstracttype.Type("money"), nil)
		if !errors.Is(err, abstracttype.ErrUnknownType) {
			t.Fatalf("expected ErrUnknownType, got %v", err)
		}
	})

	t.Run("missing renderer", func(t *testing.T) {
		editor := columnsettings.New(newRegistry(t, nil))
		_, err := editor.Edit(context.Background(), abstracttype.Duration, nil)
		if !errors.Is(err, columnsettings.ErrNoRenderer) {
			t.Fatalf("expected ErrNoRenderer, got %v", err)
		}
	})
}

func TestPreview(t *testing.T) {
	editor := columnsettings.New(newRegistry(t, nil))

	got, err := editor.Preview(abstracttype.Duration, abstracttype.DisplayOptions{"min": "ms"})
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	want := form.Values{duration.VariableName: map[string]any{"max": "m", "min": "ms"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("preview mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalize(t *testing.T) {
	determined := 0
	editor := columnsettings.New(newRegistry(t, &determined))

	got, err := editor.Normalize(abstracttype.Duration, abstracttype.DisplayOptions{"max": "d", "legacy": 1})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	want := abstracttype.DisplayOptions{"max": "d", "min": "s", "show_units": false}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("normalize mismatch (-want +got):\n%s", diff)
	}
	if determined != 1 {
		t.Fatalf("expected a single determine call, got %d", determined)
	}
}

func TestEdit_RejectsNonConformingSubmission(t *testing.T) {
	determined := 0
	renderer := columnsettings.FormRendererFunc(func(context.Context, form.Schema, form.Values) (form.Values, error) {
		return form.Values{"unexpected": 1}, nil
	})

	editor := columnsettings.New(newRegistry(t, &determined), columnsettings.WithRenderer(renderer))
	_, err := editor.Edit(context.Background(), abstracttype.Duration, nil)
	var verr *validation.Error
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if determined != 0 {
		t.Fatalf("determine transform ran on a rejected submission")
	}
}
