package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/ppiankov/dirspectre/internal/browse"
	"github.com/ppiankov/dirspectre/internal/graph"
	"github.com/ppiankov/dirspectre/internal/report"
)

var snapshotsFlags struct {
	apiURL       string
	tokenFile    string
	domainID     string
	domainName   string
	pageSize     int
	outputFormat string
	outputFile   string
}

var snapshotsCmd = &cobra.Command{
	Use:   "snapshots",
	Short: "List the available snapshots of a directory domain",
	Long: `Lists every snapshot the platform holds for a directory domain, so an
operator can pick one to browse with the objects command.`,
	RunE: runSnapshots,
}

func init() {
	snapshotsCmd.Flags().StringVar(&snapshotsFlags.apiURL, "api-url", "", "Graph API endpoint URL")
	snapshotsCmd.Flags().StringVar(&snapshotsFlags.tokenFile, "token-file", "", "File containing the API bearer token")
	snapshotsCmd.Flags().StringVar(&snapshotsFlags.domainID, "domain-id", "", "Directory domain ID")
	snapshotsCmd.Flags().StringVar(&snapshotsFlags.domainName, "domain-name", "", "Directory domain name for report context")
	snapshotsCmd.Flags().IntVar(&snapshotsFlags.pageSize, "page-size", 100, "Snapshots requested per API page")
	snapshotsCmd.Flags().StringVarP(&snapshotsFlags.outputFormat, "format", "f", "text", "Output format: text or json")
	snapshotsCmd.Flags().StringVarP(&snapshotsFlags.outputFile, "output", "o", "", "Output file (default: stdout)")
}

func runSnapshots(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	apiURL := snapshotsFlags.apiURL
	if apiURL == "" {
		apiURL = cfg.APIURL
	}
	if apiURL == "" {
		return fmt.Errorf("no graph API endpoint: use --api-url or set api_url in the config file")
	}

	if snapshotsFlags.domainID == "" {
		return fmt.Errorf("no domain: use --domain-id")
	}

	tokenFile := snapshotsFlags.tokenFile
	if tokenFile == "" {
		tokenFile = cfg.TokenFile
	}
	token, err := loadToken(tokenFile)
	if err != nil {
		return err
	}

	pageSize := resolveInt(snapshotsFlags.pageSize, 100, cfg.PageSize)

	printStatus("Listing snapshots of domain %s", snapshotsFlags.domainID)
	client := graph.NewClient(apiURL, token, cfg.TimeoutDuration())
	client.SetUserAgent("dirspectre/" + GetVersion())

	snapshots, err := browse.ListSnapshots(ctx, client, snapshotsFlags.domainID, pageSize)
	if err != nil {
		return enhanceError("snapshot listing", err)
	}
	printStatus("Found %d snapshots", len(snapshots))

	data := report.SnapshotsData{
		Tool:       "dirspectre",
		Version:    GetVersion(),
		RunID:      uuid.NewString(),
		Timestamp:  time.Now(),
		DomainID:   snapshotsFlags.domainID,
		DomainName: snapshotsFlags.domainName,
		Snapshots:  snapshots,
	}

	writer := os.Stdout
	if snapshotsFlags.outputFile != "" {
		f, err := os.Create(snapshotsFlags.outputFile)
		if err != nil {
			return enhanceError("output file creation", err)
		}
		defer f.Close()
		writer = f
	}

	reporter, err := selectReporter(snapshotsFlags.outputFormat, writer)
	if err != nil {
		return err
	}
	if err := reporter.GenerateSnapshots(data); err != nil {
		return enhanceError("report generation", err)
	}

	return nil
}
