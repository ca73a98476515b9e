package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/survey-search/internal/core/domain"
)

var (
	queryMaxResults    int
	queryNoHighlight   bool
	queryUser          string
	queryOrganizations []string
	querySurveyTypes   []string
	queryCountries     []string
	queryRegions       []string
)

var queryCmd = &cobra.Command{
	Use:   "query [text]",
	Short: "Run one search and print the result as JSON",
	Long: `Runs the full pipeline in-process: hybrid retrieval, oracle scoring,
ranking, explanations and (unless disabled) highlighted copies.`,
	Args: cobra.ExactArgs(1),
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().IntVarP(&queryMaxResults, "max-results", "n", 0, "matches to keep (default from account or config)")
	queryCmd.Flags().BoolVar(&queryNoHighlight, "no-highlight", false, "skip rendering highlighted PDFs")
	queryCmd.Flags().StringVar(&queryUser, "user", "", "user id for preferences and search history")
	queryCmd.Flags().StringSliceVar(&queryOrganizations, "organization", nil, "filter by organization (repeatable)")
	queryCmd.Flags().StringSliceVar(&querySurveyTypes, "survey-type", nil, "filter by survey type (repeatable)")
	queryCmd.Flags().StringSliceVar(&queryCountries, "country", nil, "filter by country (repeatable)")
	queryCmd.Flags().StringSliceVar(&queryRegions, "region", nil, "filter by region (repeatable)")
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := context.Background()
	a, err := newApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	opts := domain.DefaultSearchOptions()
	opts.MaxResults = queryMaxResults
	opts.Highlight = !queryNoHighlight
	opts.UserID = queryUser
	opts.Filters = domain.FacetFilters{
		Organizations: queryOrganizations,
		SurveyTypes:   querySurveyTypes,
		Countries:     queryCountries,
		Regions:       queryRegions,
	}

	result, err := a.search.Search(ctx, args[0], opts)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
