// Command screen scores a job posting offline with the heuristic engine.
// It is the local/embedded contract: no statistical backend, no network,
// the same verdict the service produces when no model artifact is present.
package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/jobtegrity/detector/internal/detector"
)

var (
	title       string
	company     string
	description string
	salary      string
	location    string
	link        string
	explain     bool
)

var rootCmd = &cobra.Command{
	Use:   "screen",
	Short: "screen scores a job posting for scam indicators without a network",
}

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Score one posting and print the prediction as JSON",
	RunE: func(cmd *cobra.Command, _ []string) error {
		result := detector.Heuristic(detector.JobPosting{
			Title:       title,
			Company:     company,
			Description: description,
			Salary:      salary,
			Location:    location,
			Link:        link,
		})

		out := struct {
			detector.Result
			Method  string   `json:"method"`
			Factors []string `json:"factors,omitempty"`
		}{Result: result, Method: result.Method}
		if explain {
			out.Factors = result.Factors
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	},
}

func init() {
	predictCmd.Flags().StringVar(&title, "title", "", "job title (required)")
	predictCmd.Flags().StringVar(&company, "company", "", "company name (required)")
	predictCmd.Flags().StringVar(&description, "description", "", "job description (required)")
	predictCmd.Flags().StringVar(&salary, "salary", "", "salary text")
	predictCmd.Flags().StringVar(&location, "location", "", "job location")
	predictCmd.Flags().StringVar(&link, "link", "", "application link")
	predictCmd.Flags().BoolVar(&explain, "explain", false, "include the matched factor names")

	for _, name := range []string{"title", "company", "description"} {
		cobra.CheckErr(predictCmd.MarkFlagRequired(name))
	}

	rootCmd.AddCommand(predictCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
