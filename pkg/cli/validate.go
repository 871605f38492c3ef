package cli

import (
	"context"

	"reels-dash-go/pkg/cli/format"
	"reels-dash-go/pkg/utils"
)

// ValidateProfiles checks a comma or newline separated list of profile URLs.
func (a *App) ValidateProfiles(ctx context.Context, input string) error {
	apiClient, err := a.getClient()
	if err != nil {
		return err
	}

	res, err := apiClient.ValidateProfiles(ctx, utils.ParseURLList(input))
	if err != nil {
		return err
	}
	a.printf("%s", format.ValidationSummary(res.Validation, res.ValidURLs, res.InvalidURLs))
	a.printf("\nValid: %s\n", format.FormatPercentage(res.ValidFraction()))
	return nil
}
