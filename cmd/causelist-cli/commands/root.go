package commands

import (
	"context"
	"fmt"
	"os"

	"causelist-backend/lib/restyutil"
	"causelist-backend/lib/scrapers/ecourts"
	"causelist-backend/lib/serviceutil"
	"causelist-backend/lib/textutil"

	"github.com/spf13/cobra"
)

var portalBaseUrl *string

var rootCmd = &cobra.Command{
	Use:   "causelist-cli",
	Short: "causelist-cli browses the ecourts portal from the terminal.",
}

func init() {
	portalBaseUrl = rootCmd.PersistentFlags().String(
		"portal", ecourts.DefaultBaseUrl, "Base url of the ecourts portal.")
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func createClient() *ecourts.Client {
	client, err := ecourts.NewClient(ecourts.ClientOptions{
		BaseUrl: *portalBaseUrl,
	})
	if err != nil {
		serviceutil.Fatal("failed to initialize portal client", err)
	}
	ecourts.SetRestyInstrumentOutput(restyutil.NewFilesystemOutput(".dev/resty/causelist-cli"))
	return client
}

// resolveLocation accepts either an exact code or a human name and
// resolves it against a fetched location list by fuzzy match.
func resolveLocation(input string, locations []ecourts.Location) (ecourts.Location, error) {
	for _, loc := range locations {
		if loc.Code == input {
			return loc, nil
		}
	}

	names := make([]string, len(locations))
	for i, loc := range locations {
		names[i] = loc.Name
	}
	idx, confidence := textutil.ClosestMatch(input, names)
	if idx < 0 || confidence < 0.8 {
		return ecourts.Location{}, fmt.Errorf("no location matching %q", input)
	}
	return locations[idx], nil
}
