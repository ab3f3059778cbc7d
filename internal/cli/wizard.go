package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/neuroplan/internal/cli/formatter"
	"github.com/alexanderramin/neuroplan/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// neuroplanHuhTheme returns a huh theme using the Gruvbox palette.
func neuroplanHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// goalWizardValues collects the roadmap wizard answers as strings so huh
// can bind them directly.
type goalWizardValues struct {
	Skill    string
	Level    string
	Weeks    string
	Generate bool
}

// goalWizardForm asks for skill, level, duration and whether to generate
// the roadmap right away.
func goalWizardForm(v *goalWizardValues) *huh.Form {
	if v.Level == "" {
		v.Level = string(domain.LevelBeginner)
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("What do you want to learn?").
				Placeholder("React, Spanish, Calculus...").
				Value(&v.Skill).
				Validate(validateRequired("skill")),
			huh.NewSelect[string]().
				Title("Current level").
				Options(levelOptions()...).
				Value(&v.Level),
			weeksInput(&v.Weeks),
			huh.NewConfirm().
				Title("Generate the roadmap now?").
				Affirmative("Yes").
				Negative("Later").
				Value(&v.Generate),
		),
	).WithTheme(neuroplanHuhTheme()).WithShowHelp(false)
}

func levelNames() []string {
	return []string{string(domain.LevelBeginner), string(domain.LevelIntermediate), string(domain.LevelAdvanced)}
}

func levelOptions() []huh.Option[string] {
	return []huh.Option[string]{
		huh.NewOption("Beginner", string(domain.LevelBeginner)),
		huh.NewOption("Intermediate", string(domain.LevelIntermediate)),
		huh.NewOption("Advanced", string(domain.LevelAdvanced)),
	}
}

// promptWizardValues backs the vault prompt form.
type promptWizardValues struct {
	Title    string
	Content  string
	Tags     string
	Category string
}

func promptWizardForm(v *promptWizardValues) *huh.Form {
	if v.Category == "" {
		v.Category = domain.DefaultVaultCategory
	}
	categories := make([]huh.Option[string], len(domain.VaultCategories))
	for i, c := range domain.VaultCategories {
		categories[i] = huh.NewOption(strings.ToUpper(c[:1])+c[1:], c)
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&v.Title).
				Validate(validateRequired("title")),
			huh.NewText().
				Title("Prompt").
				Value(&v.Content).
				Validate(validateRequired("content")),
			huh.NewInput().
				Title("Tags (comma separated)").
				Placeholder("study, memory").
				Value(&v.Tags),
			huh.NewSelect[string]().
				Title("Category").
				Options(categories...).
				Value(&v.Category),
		),
	).WithTheme(neuroplanHuhTheme()).WithShowHelp(false)
}

// weeksFromInput parses the wizard's weeks answer. Blank means the default.
func weeksFromInput(s string, fallback int) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback, nil
	}
	if err := validateWeeks(s); err != nil {
		return 0, err
	}
	return strconv.Atoi(s)
}

func validateRequired(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

// validateWeeks accepts empty or a duration between 1 and 52 weeks.
func validateWeeks(s string) error {
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 1 || v > 52 {
		return fmt.Errorf("enter a number of weeks between 1 and 52")
	}
	return nil
}

// validateOptionalDate accepts empty or a YYYY-MM-DD date.
func validateOptionalDate(s string) error {
	if s == "" {
		return nil
	}
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return fmt.Errorf("use YYYY-MM-DD format")
	}
	return nil
}

// wizardConfirm creates a huh form for a yes/no confirmation.
func wizardConfirm(title string, result *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(result),
		),
	).WithTheme(neuroplanHuhTheme()).WithShowHelp(false)
}
