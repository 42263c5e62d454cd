package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"causelist-backend/lib/scrapers/ecourts"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	searchState    *string
	searchDistrict *string
	searchCourt    *string
	searchJson     *bool
)

func init() {
	searchState = searchCmd.PersistentFlags().String("state", "", "State code hint.")
	searchDistrict = searchCmd.PersistentFlags().String("district", "", "District code hint.")
	searchCourt = searchCmd.PersistentFlags().String("court", "", "Court code hint.")
	searchJson = searchCmd.PersistentFlags().Bool("json", false, "Print the raw result as json.")

	searchCmd.AddCommand(searchCnrCmd)
	searchCmd.AddCommand(searchCaseCmd)
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Looks a case up and reports whether it is listed today or tomorrow.",
}

func printSearchResult(result ecourts.CaseSearchResult) error {
	if *searchJson {
		return json.NewEncoder(os.Stdout).Encode(result)
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendRow(table.Row{"Case", result.CaseID})
	t.AppendRow(table.Row{"Listed today", result.ListedToday})
	t.AppendRow(table.Row{"Listed tomorrow", result.ListedTomorrow})
	if result.NextHearingDate != "" {
		t.AppendRow(table.Row{"Next hearing", result.NextHearingDate})
	}
	if result.CourtName != "" {
		t.AppendRow(table.Row{"Court", result.CourtName})
	}
	if result.SerialNumber != "" {
		t.AppendRow(table.Row{"Serial no", result.SerialNumber})
	}
	if result.CaseStatus != "" {
		t.AppendRow(table.Row{"Status", result.CaseStatus})
	}
	t.SetStyle(table.StyleRounded)
	t.Render()
	return nil
}

var searchCnrCmd = &cobra.Command{
	Use:   "cnr <CNR>",
	Short: "Searches a case by its CNR number.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := createClient()

		result, err := client.SearchCaseByCNR(cmd.Context(), args[0], *searchState, *searchDistrict)
		if err != nil {
			return err
		}
		return printSearchResult(result)
	},
}

var searchCaseCmd = &cobra.Command{
	Use:   "case <type> <number> <year>",
	Short: "Searches a case by type, number and year.",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := createClient()

		result, err := client.SearchCaseByDetails(cmd.Context(),
			*searchState, *searchDistrict, *searchCourt,
			args[0], args[1], args[2])
		if err != nil {
			return err
		}
		if !result.Found {
			fmt.Println("case is not listed today or tomorrow")
		}
		return printSearchResult(result)
	},
}
