package cli

import "github.com/charmbracelet/huh"

// dateInput returns a huh.Input for an optional date field with YYYY-MM-DD validation.
func dateInput(title, placeholder string, value *string) *huh.Input {
	if placeholder == "" {
		placeholder = "2026-03-02"
	}
	return huh.NewInput().
		Title(title).
		Placeholder(placeholder).
		Value(value).
		Validate(validateOptionalDate)
}

// startDateForm returns a single-field form for the first scheduled day.
func startDateForm(value *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			dateInput("Start date (YYYY-MM-DD, blank for today)", "", value),
		),
	).WithTheme(neuroplanHuhTheme()).WithShowHelp(false)
}

// weeksInput returns a huh.Input for the roadmap duration in weeks.
func weeksInput(value *string) *huh.Input {
	return huh.NewInput().
		Title("Duration in weeks").
		Placeholder("8").
		Value(value).
		Validate(validateWeeks)
}
