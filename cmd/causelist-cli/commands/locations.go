package commands

import (
	"context"
	"fmt"
	"os"

	"causelist-backend/lib/scrapers/ecourts"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(statesCmd)
	rootCmd.AddCommand(districtsCmd)
	rootCmd.AddCommand(complexesCmd)
	rootCmd.AddCommand(courtsCmd)
}

func renderLocations(header string, locations []ecourts.Location) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Code", header})

	for _, loc := range locations {
		t.AppendRow(table.Row{loc.Code, loc.Name})
	}

	t.SetStyle(table.StyleRounded)
	t.Render()
}

var statesCmd = &cobra.Command{
	Use:   "states",
	Short: "Prints the states known to the portal.",
	Run: func(cmd *cobra.Command, args []string) {
		client := createClient()
		renderLocations("State", client.FetchStates(cmd.Context()))
	},
}

// resolveState fetches states and resolves one by code or name.
func resolveState(ctx context.Context, client *ecourts.Client, input string) (ecourts.Location, error) {
	return resolveLocation(input, client.FetchStates(ctx))
}

func resolveDistrict(ctx context.Context, client *ecourts.Client, state ecourts.Location, input string) (ecourts.Location, error) {
	districts, err := client.FetchDistricts(ctx, state.Code)
	if err != nil {
		return ecourts.Location{}, err
	}
	return resolveLocation(input, districts)
}

func resolveComplex(ctx context.Context, client *ecourts.Client, state, district ecourts.Location, input string) (ecourts.Location, error) {
	complexes, err := client.FetchCourtComplexes(ctx, state.Code, district.Code)
	if err != nil {
		return ecourts.Location{}, err
	}
	return resolveLocation(input, complexes)
}

var districtsCmd = &cobra.Command{
	Use:   "districts <state>",
	Short: "Prints the districts of a state.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := createClient()

		state, err := resolveState(cmd.Context(), client, args[0])
		if err != nil {
			return err
		}
		districts, err := client.FetchDistricts(cmd.Context(), state.Code)
		if err != nil {
			return err
		}

		fmt.Printf("districts of %s (%s):\n", state.Name, state.Code)
		renderLocations("District", districts)
		return nil
	},
}

var complexesCmd = &cobra.Command{
	Use:   "complexes <state> <district>",
	Short: "Prints the court complexes of a district.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := createClient()

		state, err := resolveState(cmd.Context(), client, args[0])
		if err != nil {
			return err
		}
		district, err := resolveDistrict(cmd.Context(), client, state, args[1])
		if err != nil {
			return err
		}
		complexes, err := client.FetchCourtComplexes(cmd.Context(), state.Code, district.Code)
		if err != nil {
			return err
		}

		renderLocations("Court Complex", complexes)
		return nil
	},
}

var courtsCmd = &cobra.Command{
	Use:   "courts <state> <district> <complex>",
	Short: "Prints the courts of a court complex.",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := createClient()

		state, err := resolveState(cmd.Context(), client, args[0])
		if err != nil {
			return err
		}
		district, err := resolveDistrict(cmd.Context(), client, state, args[1])
		if err != nil {
			return err
		}
		complex, err := resolveComplex(cmd.Context(), client, state, district, args[2])
		if err != nil {
			return err
		}
		courts, err := client.FetchCourts(cmd.Context(), state.Code, district.Code, complex.Code)
		if err != nil {
			return err
		}

		renderLocations("Court", courts)
		return nil
	},
}
