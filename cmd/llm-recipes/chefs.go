package llmrecipes

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/temirov/llm-recipes/internal/chefs"
)

var (
	chefNameStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#D4AF37"))
	chefIDStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#8A8A8A"))
	chefLabelStyle = lipgloss.NewStyle().Bold(true).Width(20)
	chefBlockStyle = lipgloss.NewStyle().PaddingLeft(2)
)

func newChefsCommand(root *rootOptions) *cobra.Command {
	command := &cobra.Command{
		Use:   chefsCommandUse,
		Short: chefsCommandShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listChefs(cmd.OutOrStdout(), root.app.catalog)
		},
	}
	command.AddCommand(&cobra.Command{
		Use:   chefsShowCommandUse,
		Short: chefsShowCommandShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, found := root.app.catalog.Lookup(args[0])
			if !found {
				return fmt.Errorf(unknownChefErrorFormat, args[0])
			}
			return showChef(cmd.OutOrStdout(), root.app.catalog, profile)
		},
	})
	return command
}

func listChefs(output io.Writer, catalog chefs.Catalog) error {
	for _, profile := range catalog.Profiles() {
		line := fmt.Sprintf("%s %s", chefNameStyle.Render(profile.Name), chefIDStyle.Render("("+profile.ID+")"))
		if _, err := fmt.Fprintln(output, line); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(output, chefBlockStyle.Render(profile.Style)); err != nil {
			return err
		}
	}
	return nil
}

func showChef(output io.Writer, catalog chefs.Catalog, profile chefs.Profile) error {
	rows := []struct {
		label string
		value string
	}{
		{label: "ID", value: profile.ID},
		{label: "Restaurants", value: joinOrDash(profile.Restaurants)},
		{label: "Style", value: profile.Style},
		{label: "Signature", value: profile.Signature},
		{label: "Techniques", value: joinOrDash(profile.Techniques)},
		{label: "Specialty cuisines", value: joinOrDash(profile.SpecialtyCuisines)},
		{label: "Famous dishes", value: joinOrDash(profile.FamousDishes)},
		{label: "Bio", value: profile.Bio},
	}
	var sb strings.Builder
	sb.WriteString(chefNameStyle.Render(profile.Name))
	sb.WriteString("\n")
	for _, row := range rows {
		sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, chefLabelStyle.Render(row.label), row.value))
		sb.WriteString("\n")
	}
	sb.WriteString("\nInfluence:\n")
	for _, tier := range []chefs.Tier{chefs.TierHigh, chefs.TierMedium, chefs.TierLow} {
		narrative := catalog.Influence(profile.ID, tier)
		if narrative == "" {
			narrative = dashPlaceholder
		}
		sb.WriteString(chefBlockStyle.Render(fmt.Sprintf("%s: %s", tier, narrative)))
		sb.WriteString("\n")
	}
	_, err := io.WriteString(output, sb.String())
	return err
}

func joinOrDash(values []string) string {
	if len(values) == 0 {
		return dashPlaceholder
	}
	return strings.Join(values, ", ")
}
