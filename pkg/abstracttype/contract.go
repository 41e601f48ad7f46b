package abstracttype

import (
	"errors"
	"fmt"
	"sort"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-typeconfig/pkg/form"
)

// CheckContract verifies the obligations every Configuration must meet:
//
//   - the display form schema is well formed;
//   - DisplayConfig is deterministic across calls;
//   - ConstructFormValues(nil) yields a value for exactly the declared variables;
//   - the round trip Determine(Construct(o)) is idempotent for nil and every
//     sample, and leaves the sample untouched;
//   - neither transform panics on the values it is handed.
//
// Every violation is reported; the result is nil when the contract holds.
func CheckContract(cfg Configuration, samples ...DisplayOptions) error {
	if cfg == nil {
		return errors.New("abstracttype: configuration is nil")
	}

	display := cfg.DisplayConfig()
	if display.DetermineDisplayOptions == nil || display.ConstructFormValues == nil {
		return errors.New("abstracttype: display config is missing a transform")
	}

	var errs []error
	if err := display.Form.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("abstracttype: display form: %w", err))
	}

	if diff := cmp.Diff(display.Form, cfg.DisplayConfig().Form); diff != "" {
		errs = append(errs, fmt.Errorf("abstracttype: display form differs between calls (-first +second):\n%s", diff))
	}

	seeded, err := construct(display, nil)
	if err != nil {
		errs = append(errs, err)
	} else if diff := cmp.Diff(sortedKeys(display.Form.Variables), sortedKeys(seeded)); diff != "" {
		errs = append(errs, fmt.Errorf("abstracttype: values seeded from absent options do not match declared variables (-declared +seeded):\n%s", diff))
	}

	inputs := append([]DisplayOptions{nil}, samples...)
	for idx, sample := range inputs {
		label := "absent options"
		if idx > 0 {
			label = fmt.Sprintf("sample %d", idx-1)
		}
		before := cloneOptions(sample)

		once, err := roundTrip(display, sample)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", label, err))
			continue
		}
		if diff := cmp.Diff(before, sample); diff != "" {
			errs = append(errs, fmt.Errorf("abstracttype: %s was mutated by the round trip (-before +after):\n%s", label, diff))
		}
		twice, err := roundTrip(display, once)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s (second pass): %w", label, err))
			continue
		}
		if diff := cmp.Diff(once, twice); diff != "" {
			errs = append(errs, fmt.Errorf("abstracttype: round trip of %s is not idempotent (-once +twice):\n%s", label, diff))
		}
	}

	return errors.Join(errs...)
}

func construct(display DisplayConfig, options DisplayOptions) (values form.Values, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("abstracttype: ConstructFormValues panicked: %v", rec)
		}
	}()
	return display.ConstructFormValues(options), nil
}

func determine(display DisplayConfig, values form.Values) (options DisplayOptions, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("abstracttype: DetermineDisplayOptions panicked: %v", rec)
		}
	}()
	return display.DetermineDisplayOptions(values), nil
}

func roundTrip(display DisplayConfig, options DisplayOptions) (DisplayOptions, error) {
	values, err := construct(display, options)
	if err != nil {
		return nil, err
	}
	return determine(display, values)
}

func cloneOptions(options DisplayOptions) DisplayOptions {
	return DisplayOptions(form.Values(options).Clone())
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
