package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"reels-dash-go/pkg/cli/client"
	"reels-dash-go/pkg/cli/format"
	"reels-dash-go/pkg/models"
)

// ListResults prints one page of per-profile results.
func (a *App) ListResults(ctx context.Context, params models.ListResultsParams) error {
	apiClient, err := a.getClient()
	if err != nil {
		return err
	}

	list, err := apiClient.GetResults(ctx, params)
	if err != nil {
		return err
	}

	a.printf("%s", format.ResultsTable(list.Results))
	a.printf("\nShowing %d of %d result(s)\n", len(list.Results), list.Pagination.Total)
	return nil
}

// ShowResult prints a result with its summary statistics and reels.
func (a *App) ShowResult(ctx context.Context, id string) error {
	apiClient, err := a.getClient()
	if err != nil {
		return err
	}

	result, err := apiClient.GetResult(ctx, id)
	if err != nil {
		return err
	}
	a.printf("%s", format.ResultDetail(result))
	return nil
}

// ExportResult writes a single result locally as JSON or as reel CSV.
func (a *App) ExportResult(ctx context.Context, id string, f client.ExportFormat, outPath string) error {
	apiClient, err := a.getClient()
	if err != nil {
		return err
	}

	result, err := apiClient.GetResult(ctx, id)
	if err != nil {
		return err
	}

	var data []byte
	switch f {
	case client.ExportCSV:
		data = []byte(format.ToCSV(result.Data))
	default:
		if data, err = json.MarshalIndent(result, "", "  "); err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
	}

	if outPath == "" {
		outPath = filepath.Join(a.cfg.Dashboard.ExportDir, fmt.Sprintf("result-%s.%s", result.ProfileID, f))
	}
	if outPath == "-" {
		_, err := a.out.Write(data)
		return err
	}
	if err := writeFile(outPath, data); err != nil {
		return err
	}
	a.printf("%s Saved %s\n", format.ClassSuccess.Sprint("✓"), outPath)
	return nil
}
