package commands

import (
	"bufio"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"causelist-backend/lib/scrapers/ecourts"
	"causelist-backend/lib/timezone"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	causelistDate *string
	causelistType *string
	causelistOut  *string
)

func init() {
	causelistDate = causelistCmd.PersistentFlags().String("date", "", "Listing date, DD-MM-YYYY. Defaults to today.")
	causelistType = causelistCmd.PersistentFlags().String("type", "civ", "Cause type, civ or cri.")
	causelistOut = causelistCmd.PersistentFlags().String("out", ".", "Directory to write captcha images, snapshots and pdfs to.")

	causelistCmd.AddCommand(causelistPdfCmd)
	rootCmd.AddCommand(causelistCmd)
}

// promptCaptcha writes the challenge image to disk and reads the
// solution from stdin.
func promptCaptcha(challenge *ecourts.CaptchaChallenge) (string, error) {
	_, data, ok := strings.Cut(challenge.Image, "base64,")
	if !ok {
		return "", fmt.Errorf("challenge image is not a data uri")
	}
	decoded, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return "", err
	}

	path := filepath.Join(*causelistOut, "captcha.png")
	if err := os.WriteFile(path, decoded, 0644); err != nil {
		return "", err
	}

	fmt.Printf("captcha saved to %s", path)
	if challenge.AudioURL != "" {
		fmt.Printf(" (audio: %s)", challenge.AudioURL)
	}
	fmt.Print("\nenter captcha: ")

	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		return "", fmt.Errorf("no captcha input: %w", scanner.Err())
	}
	return strings.TrimSpace(scanner.Text()), nil
}

func renderCauseList(result ecourts.CauseListResult) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Sr", "Case", "Parties", "Advocate", "Purpose"})

	for _, entry := range result.Cases {
		t.AppendRow(table.Row{
			entry.SerialNumber, entry.CaseNumber,
			entry.Parties, entry.Advocate, entry.Purpose,
		})
	}

	t.SetStyle(table.StyleRounded)
	t.Render()
	fmt.Printf("%d cases listed\n", result.TotalCases)
}

const maxCaptchaAttempts = 3

var causelistCmd = &cobra.Command{
	Use:   "causelist <state> <district> <complex> <court>",
	Short: "Downloads the cause list for a court, solving captchas interactively.",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := createClient()
		ctx := cmd.Context()

		state, err := resolveState(ctx, client, args[0])
		if err != nil {
			return err
		}
		district, err := resolveDistrict(ctx, client, state, args[1])
		if err != nil {
			return err
		}
		complex, err := resolveComplex(ctx, client, state, district, args[2])
		if err != nil {
			return err
		}
		courts, err := client.FetchCourts(ctx, state.Code, district.Code, complex.Code)
		if err != nil {
			return err
		}
		court, err := resolveLocation(args[3], courts)
		if err != nil {
			return err
		}

		date := *causelistDate
		if date == "" {
			date = timezone.Now().Format("02-01-2006")
		}

		challenge, err := client.FetchCaptcha(ctx)
		if err != nil {
			return err
		}

		for attempt := 0; attempt < maxCaptchaAttempts; attempt++ {
			code, err := promptCaptcha(challenge)
			if err != nil {
				return err
			}

			result := client.FetchCauseList(ctx, ecourts.CauseListRequest{
				StateCode:        state.Code,
				DistrictCode:     district.Code,
				CourtComplexCode: complex.Code,
				CourtCode:        court.Code,
				Date:             date,
				CaptchaCode:      code,
				CauseType:        *causelistType,
				CourtName:        court.Name,
			})

			if result.Error == "" {
				renderCauseList(result)

				snapshot := filepath.Join(*causelistOut,
					fmt.Sprintf("causelist_%s_%s.json", court.Code, strings.ReplaceAll(result.Metadata.Date, "-", "")))
				raw, err := json.MarshalIndent(result, "", "  ")
				if err != nil {
					return err
				}
				if err := os.WriteFile(snapshot, raw, 0644); err != nil {
					return err
				}
				fmt.Printf("snapshot saved to %s\n", snapshot)
				return nil
			}

			fmt.Fprintf(os.Stderr, "rejected: %s\n", result.Error)
			if result.NextCaptcha == nil {
				// the chain broke, the flow has to restart from scratch
				return fmt.Errorf("cause list download failed: %s", result.Error)
			}
			challenge = result.NextCaptcha
		}
		return fmt.Errorf("too many failed captcha attempts")
	},
}

var causelistPdfCmd = &cobra.Command{
	Use:   "pdf <state> <district> <complex>",
	Short: "Downloads the published cause list pdf for a court complex.",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := createClient()
		ctx := cmd.Context()

		state, err := resolveState(ctx, client, args[0])
		if err != nil {
			return err
		}
		district, err := resolveDistrict(ctx, client, state, args[1])
		if err != nil {
			return err
		}
		complex, err := resolveComplex(ctx, client, state, district, args[2])
		if err != nil {
			return err
		}

		date := *causelistDate
		if date == "" {
			date = timezone.Now().Format("02-01-2006")
		}

		data, filename, err := client.DownloadCauseListPDF(ctx, ecourts.CauseListPDFRequest{
			StateCode:        state.Code,
			DistrictCode:     district.Code,
			CourtComplexCode: complex.Code,
			Date:             date,
		})
		if err != nil {
			return err
		}

		path := filepath.Join(*causelistOut, filename)
		if err := os.WriteFile(path, data, 0644); err != nil {
			return err
		}
		fmt.Printf("pdf saved to %s\n", path)
		return nil
	},
}
