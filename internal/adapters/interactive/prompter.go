package interactive

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/artspark/sparkdeploy/internal/domain"
	"github.com/artspark/sparkdeploy/internal/domain/config"
	"github.com/artspark/sparkdeploy/internal/domain/models"
	"github.com/artspark/sparkdeploy/internal/usecase"
	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/sahilm/fuzzy"
)

// Prompter asks the user for confirmations and selections
type Prompter struct {
	config *config.RuntimeConfig
}

// NewPrompter creates a new prompter
func NewPrompter(cfg *config.RuntimeConfig) *Prompter {
	return &Prompter{config: cfg}
}

// Confirm asks a yes/no question. Anything but "y" declines.
func (p *Prompter) Confirm(ctx context.Context, prompt string) (bool, error) {
	if p.config.NonInteractive {
		return false, fmt.Errorf("confirmation not available in non-interactive mode")
	}

	confirm := promptui.Prompt{
		Label:     prompt,
		IsConfirm: true,
	}
	if _, err := confirm.Run(); err != nil {
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}
		if errors.Is(err, promptui.ErrInterrupt) {
			return false, domain.ErrAborted
		}
		return false, fmt.Errorf("confirmation failed: %w", err)
	}
	return true, nil
}

// SelectDeployment lets the user pick a deployment record
func (p *Prompter) SelectDeployment(ctx context.Context, deployments []*models.Deployment, prompt string) (*models.Deployment, error) {
	if p.config.NonInteractive {
		return nil, fmt.Errorf("interactive selection not available in non-interactive mode")
	}

	if len(deployments) == 0 {
		return nil, fmt.Errorf("%w: no deployments to select from", domain.ErrNotFound)
	}

	if len(deployments) == 1 {
		return deployments[0], nil
	}

	options := formatDeploymentOptions(deployments)

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "▸ {{ . | cyan }}",
		Inactive: "  {{ . | faint }}",
		Selected: "✓ {{ . | green }}",
		Help:     color.New(color.FgYellow).Sprint("Use arrow keys to navigate, Enter to select"),
	}

	promptSelect := promptui.Select{
		Label:             prompt,
		Items:             options,
		Templates:         templates,
		Size:              10,
		StartInSearchMode: true,
		Searcher:          createFuzzySearchFunc(options),
	}

	index, _, err := promptSelect.Run()
	if err != nil {
		return nil, fmt.Errorf("selection cancelled: %w", err)
	}

	return deployments[index], nil
}

// formatDeploymentOptions renders "Name (0xaddr) [proxy kind]"
func formatDeploymentOptions(deployments []*models.Deployment) []string {
	options := make([]string, len(deployments))
	for i, d := range deployments {
		name := color.New(color.FgWhite, color.Bold).Sprint(d.Name)
		address := color.New(color.FgBlue).Sprint(d.Address)
		if d.ProxyKind != "" {
			kind := color.New(color.FgYellow).Sprintf("[%s proxy]", d.ProxyKind)
			options[i] = fmt.Sprintf("%s %s (%s)", name, kind, address)
		} else {
			options[i] = fmt.Sprintf("%s (%s)", name, address)
		}
	}
	return options
}

// createFuzzySearchFunc creates a fuzzy search function for promptui
func createFuzzySearchFunc(items []string) func(input string, index int) bool {
	return func(input string, index int) bool {
		if input == "" {
			return true
		}

		input = strings.ToLower(input)
		item := strings.ToLower(items[index])

		if strings.Contains(item, input) {
			return true
		}

		return len(fuzzy.Find(input, []string{item})) > 0
	}
}

// Ensure the adapter implements the interface
var _ usecase.Confirmer = (*Prompter)(nil)
