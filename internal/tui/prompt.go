package tui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
)

// LoginInput holds the values collected by the login form
type LoginInput struct {
	Email    string
	Password string
}

// RegisterInput holds the values collected by the registration form
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// ApplyInput holds the values collected by the author application form
type ApplyInput struct {
	PenName string
	Bio     string
}

// LoginForm collects credentials interactively. Prefilled fields (from
// flags) are kept as defaults.
func LoginForm(in *LoginInput) error {
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Email").
			Placeholder("you@example.com").
			Value(&in.Email).
			Validate(required("email")),
		huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(&in.Password).
			Validate(required("password")),
	))

	if err := form.Run(); err != nil {
		return fmt.Errorf("login prompt failed: %w", err)
	}
	return nil
}

// RegisterForm collects the fields for a new account
func RegisterForm(in *RegisterInput) error {
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("First name").
			Value(&in.FirstName).
			Validate(required("first name")),
		huh.NewInput().
			Title("Last name").
			Value(&in.LastName).
			Validate(required("last name")),
		huh.NewInput().
			Title("Email").
			Placeholder("you@example.com").
			Value(&in.Email).
			Validate(required("email")),
		huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(&in.Password).
			Validate(minLength("password", 8)),
	))

	if err := form.Run(); err != nil {
		return fmt.Errorf("registration prompt failed: %w", err)
	}
	return nil
}

// ApplyForm collects the author application
func ApplyForm(in *ApplyInput) error {
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Pen name").
			Description("The name readers will see on your books").
			Value(&in.PenName).
			Validate(required("pen name")),
		huh.NewText().
			Title("Bio").
			Description("Tell readers about yourself").
			Value(&in.Bio).
			Validate(required("bio")),
	))

	if err := form.Run(); err != nil {
		return fmt.Errorf("application prompt failed: %w", err)
	}
	return nil
}

// PromptForConfirmation displays a yes/no confirmation prompt
func PromptForConfirmation(message string, defaultValue bool) (bool, error) {
	confirmed := defaultValue

	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(message).
			Value(&confirmed),
	))

	if err := form.Run(); err != nil {
		return false, fmt.Errorf("prompt failed: %w", err)
	}

	return confirmed, nil
}

// PromptForSelect displays a selection prompt
func PromptForSelect(message string, options []string) (string, error) {
	if len(options) == 0 {
		return "", fmt.Errorf("no options provided")
	}

	huhOptions := make([]huh.Option[string], len(options))
	for i, opt := range options {
		huhOptions[i] = huh.NewOption(opt, opt)
	}

	var selected string
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title(message).
			Options(huhOptions...).
			Value(&selected),
	))

	if err := form.Run(); err != nil {
		return "", fmt.Errorf("prompt failed: %w", err)
	}

	return selected, nil
}

// IsInteractive returns true if stdin is a terminal (not piped)
func IsInteractive() bool {
	fileInfo, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}

func required(field string) func(string) error {
	return func(s string) error {
		if s == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func minLength(field string, n int) func(string) error {
	return func(s string) error {
		if len(s) < n {
			return fmt.Errorf("%s must be at least %d characters", field, n)
		}
		return nil
	}
}
