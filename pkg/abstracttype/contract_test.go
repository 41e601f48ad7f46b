package abstracttype_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-typeconfig/pkg/abstracttype"
	"github.com/goliatone/go-typeconfig/pkg/form"
)

func mutate(base abstracttype.Descriptor, fn func(*abstracttype.DisplayConfig)) abstracttype.Descriptor {
	inner := base.Factory
	base.Factory = func() abstracttype.DisplayConfig {
		display := inner()
		fn(&display)
		return display
	}
	return base
}

func TestCheckContract_Violations(t *testing.T) {
	counter := 0

	cases := []struct {
		name    string
		cfg     abstracttype.Configuration
		samples []abstracttype.DisplayOptions
		want    string
	}{
		{
			name: "undeclared layout variable",
			cfg: mutate(flagConfig("?"), func(d *abstracttype.DisplayConfig) {
				d.Form.Layout = form.Vertical(form.Input("label"), form.Input("ghost"))
			}),
			want: `variable "ghost" is not declared`,
		},
		{
			name: "seed misses declared variable",
			cfg: mutate(flagConfig("?"), func(d *abstracttype.DisplayConfig) {
				d.ConstructFormValues = func(abstracttype.DisplayOptions) form.Values { return form.Values{} }
			}),
			want: "do not match declared variables",
		},
		{
			name: "round trip not idempotent",
			cfg: mutate(flagConfig("?"), func(d *abstracttype.DisplayConfig) {
				d.DetermineDisplayOptions = func(form.Values) abstracttype.DisplayOptions {
					counter++
					return abstracttype.DisplayOptions{"n": counter}
				}
			}),
			want: "not idempotent",
		},
		{
			name: "transform panics",
			cfg: mutate(flagConfig("?"), func(d *abstracttype.DisplayConfig) {
				d.ConstructFormValues = func(options abstracttype.DisplayOptions) form.Values {
					return form.Values{"label": options["true_label"].(string)}
				}
			}),
			want: "ConstructFormValues panicked",
		},
		{
			name: "sample mutated",
			cfg: mutate(flagConfig("?"), func(d *abstracttype.DisplayConfig) {
				d.ConstructFormValues = func(options abstracttype.DisplayOptions) form.Values {
					if options != nil {
						options["touched"] = true
					}
					return form.Values{"label": "yes"}
				}
			}),
			samples: []abstracttype.DisplayOptions{{"true_label": "on"}},
			want:    "was mutated",
		},
		{
			name: "missing transform",
			cfg: mutate(flagConfig("?"), func(d *abstracttype.DisplayConfig) {
				d.DetermineDisplayOptions = nil
			}),
			want: "missing a transform",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := abstracttype.CheckContract(tc.cfg, tc.samples...)
			if err == nil {
				t.Fatalf("expected contract violation containing %q", tc.want)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not mention %q", err.Error(), tc.want)
			}
		})
	}
}

func TestCheckContract_UndeclaredIsDetectable(t *testing.T) {
	cfg := mutate(flagConfig("?"), func(d *abstracttype.DisplayConfig) {
		d.Form.Layout = form.Vertical(form.Input("ghost"))
	})
	if err := abstracttype.CheckContract(cfg); !errors.Is(err, form.ErrUndeclaredVariable) {
		t.Fatalf("expected ErrUndeclaredVariable, got %v", err)
	}
}

func TestCheckContract_NilConfiguration(t *testing.T) {
	if err := abstracttype.CheckContract(nil); err == nil {
		t.Fatalf("expected error for nil configuration")
	}
}
