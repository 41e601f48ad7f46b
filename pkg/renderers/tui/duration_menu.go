package tui

import (
	"context"
	"fmt"

	"github.com/goliatone/go-typeconfig/pkg/abstracttype/duration"
	"github.com/goliatone/go-typeconfig/pkg/form"
)

// DurationMenu edits a duration unit range: the largest unit first, then the
// smallest unit chosen among units no larger than it, so min <= max always
// holds in the returned payload.
func DurationMenu(ctx context.Context, driver PromptDriver, name string, variable form.Variable, current any) (any, error) {
	seed := seedRange(current, variable.Default)

	maxOptions := duration.Units()
	max, err := selectUnit(ctx, driver, "Largest unit to display", "Values are broken down starting from this unit.", maxOptions, seed.Max)
	if err != nil {
		return nil, err
	}

	minOptions := duration.MinCandidates(max)
	minDefault := seed.Min
	if minDefault.Compare(max) > 0 || !minDefault.Valid() {
		minDefault = max
	}
	min, err := selectUnit(ctx, driver, "Smallest unit to display", "Only units no larger than the largest unit are offered.", minOptions, minDefault)
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"max": string(max),
		"min": string(min),
	}, nil
}

func seedRange(current, fallback any) duration.Range {
	seed, _ := duration.RangeFromValue(current)
	declared, _ := duration.RangeFromValue(fallback)
	if !seed.Max.Valid() {
		seed.Max = declared.Max
	}
	if !seed.Min.Valid() {
		seed.Min = declared.Min
	}
	if !seed.Max.Valid() {
		seed.Max = duration.DefaultMax
	}
	if !seed.Min.Valid() {
		seed.Min = duration.DefaultMin
	}
	return seed
}

func selectUnit(ctx context.Context, driver PromptDriver, message, help string, options []duration.Unit, current duration.Unit) (duration.Unit, error) {
	labels := make([]string, len(options))
	defaultIdx := -1
	for idx, unit := range options {
		labels[idx] = fmt.Sprintf("%s (%s)", unit.Label(), unit)
		if unit == current {
			defaultIdx = idx
		}
	}

	for {
		idx, err := driver.Select(ctx, SelectConfig{
			Message:      message,
			Options:      labels,
			DefaultIndex: defaultIdx,
			Help:         help,
			PageSize:     len(labels),
		})
		if err != nil {
			return "", err
		}
		if idx < 0 || idx >= len(options) {
			_ = driver.Info(ctx, "Invalid unit selection")
			continue
		}
		return options[idx], nil
	}
}
