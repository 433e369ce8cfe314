package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ppiankov/dirspectre/internal/baseline"
	"github.com/ppiankov/dirspectre/internal/browse"
	"github.com/ppiankov/dirspectre/internal/graph"
	"github.com/ppiankov/dirspectre/internal/report"
	"github.com/ppiankov/dirspectre/internal/summary"
)

var objectsFlags struct {
	apiURL       string
	tokenFile    string
	snapshotID   string
	domainID     string
	domainName   string
	maxDepth     int
	pageSize     int
	concurrency  int
	outputFormat string
	outputFile   string
	baselinePath string
	failOnNew    bool
	pushURL      string
	noProgress   bool
}

var objectsCmd = &cobra.Command{
	Use:   "objects",
	Short: "Browse a directory snapshot and report every object in it",
	Long: `Walks the object tree of a directory-service snapshot level by level,
discovers every organizational unit and container, enumerates the objects
inside them, and flattens the result into a report.`,
	RunE: runObjects,
}

func init() {
	objectsCmd.Flags().StringVar(&objectsFlags.apiURL, "api-url", "", "Graph API endpoint URL")
	objectsCmd.Flags().StringVar(&objectsFlags.tokenFile, "token-file", "", "File containing the API bearer token")
	objectsCmd.Flags().StringVar(&objectsFlags.snapshotID, "snapshot", "", "Snapshot ID to browse (UUID)")
	objectsCmd.Flags().StringVar(&objectsFlags.domainID, "domain-id", "", "Directory domain ID for report context")
	objectsCmd.Flags().StringVar(&objectsFlags.domainName, "domain-name", "", "Directory domain name for report context")
	objectsCmd.Flags().IntVar(&objectsFlags.maxDepth, "max-depth", browse.DefaultMaxDepth, "Depth bound for container discovery")
	objectsCmd.Flags().IntVar(&objectsFlags.pageSize, "page-size", 100, "Nodes requested per API page")
	objectsCmd.Flags().IntVar(&objectsFlags.concurrency, "concurrency", 1, "Max concurrent listing calls per tree level")
	objectsCmd.Flags().StringVarP(&objectsFlags.outputFormat, "format", "f", "text", "Output format: text or json")
	objectsCmd.Flags().StringVarP(&objectsFlags.outputFile, "output", "o", "", "Output file (default: stdout)")
	objectsCmd.Flags().StringVar(&objectsFlags.baselinePath, "baseline", "", "Previous JSON report to diff against")
	objectsCmd.Flags().BoolVar(&objectsFlags.failOnNew, "fail-on-new", false, "Exit with error if objects not in the baseline are found")
	objectsCmd.Flags().StringVar(&objectsFlags.pushURL, "push", "", "POST the JSON report to this endpoint")
	objectsCmd.Flags().BoolVar(&objectsFlags.noProgress, "no-progress", false, "Disable progress indicators")
}

func runObjects(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	apiURL := objectsFlags.apiURL
	if apiURL == "" {
		apiURL = cfg.APIURL
	}
	if apiURL == "" {
		return fmt.Errorf("no graph API endpoint: use --api-url or set api_url in the config file")
	}

	if objectsFlags.snapshotID == "" {
		return fmt.Errorf("no snapshot: use --snapshot")
	}
	if _, err := uuid.Parse(objectsFlags.snapshotID); err != nil {
		return fmt.Errorf("invalid snapshot id %q: %w", objectsFlags.snapshotID, err)
	}

	tokenFile := objectsFlags.tokenFile
	if tokenFile == "" {
		tokenFile = cfg.TokenFile
	}
	token, err := loadToken(tokenFile)
	if err != nil {
		return err
	}

	maxDepth := resolveInt(objectsFlags.maxDepth, browse.DefaultMaxDepth, cfg.MaxDepth)
	pageSize := resolveInt(objectsFlags.pageSize, 100, cfg.PageSize)
	concurrency := resolveInt(objectsFlags.concurrency, 1, cfg.Concurrency)

	// Check if we're running in a terminal
	isTTY := term.IsTerminal(int(os.Stderr.Fd()))
	showProgress := isTTY && !objectsFlags.noProgress

	printStatus("Connecting to graph API at %s", apiURL)
	client := graph.NewClient(apiURL, token, cfg.TimeoutDuration())
	client.SetUserAgent("dirspectre/" + GetVersion())

	lister := browse.NewGraphLister(client, pageSize)
	browser := browse.NewBrowser(lister)
	browser.SetMaxDepth(maxDepth)
	browser.SetConcurrency(concurrency)

	if showProgress {
		browser.SetProgressCallback(func(current, total int, message string) {
			fmt.Fprintf(os.Stderr, "\r[%d/%d] %s", current, total, message)
		})
	}

	printStatus("Browsing snapshot %s (depth bound %d)", objectsFlags.snapshotID, maxDepth)
	result, err := browser.Browse(ctx, browse.SnapshotHandle(objectsFlags.snapshotID), browse.DomainContext{
		DomainID:   objectsFlags.domainID,
		DomainName: objectsFlags.domainName,
	})
	if err != nil {
		return enhanceError("snapshot browse", err)
	}
	if showProgress {
		fmt.Fprintf(os.Stderr, "\n")
	}
	printStatus("Found %d containers, %d objects", len(result.Containers), len(result.Records))

	data := report.Data{
		Tool:      "dirspectre",
		Version:   GetVersion(),
		RunID:     uuid.NewString(),
		Timestamp: time.Now(),
		Config: report.Config{
			APIURL:     apiURL,
			SnapshotID: objectsFlags.snapshotID,
			DomainID:   objectsFlags.domainID,
			DomainName: objectsFlags.domainName,
			MaxDepth:   maxDepth,
		},
		Summary: summary.Summarize(result.Containers, result.Records),
		Objects: result.Records,
	}

	var newObjects int
	if objectsFlags.baselinePath != "" {
		base, err := baseline.Load(objectsFlags.baselinePath)
		if err != nil {
			return enhanceError("baseline load", err)
		}
		diff := baseline.Diff(baseline.Flatten(data), base)
		newObjects = len(diff.New)
		printStatus("Baseline diff: %d new, %d removed, %d unchanged",
			len(diff.New), len(diff.Removed), len(diff.Unchanged))
	}

	// Determine output writer
	writer := os.Stdout
	if objectsFlags.outputFile != "" {
		f, err := os.Create(objectsFlags.outputFile)
		if err != nil {
			return enhanceError("output file creation", err)
		}
		defer f.Close()
		writer = f
	}

	reporter, err := selectReporter(objectsFlags.outputFormat, writer)
	if err != nil {
		return err
	}
	if err := reporter.Generate(data); err != nil {
		return enhanceError("report generation", err)
	}

	if objectsFlags.pushURL != "" {
		printStatus("Pushing report to %s", objectsFlags.pushURL)
		if err := report.NewPusher(objectsFlags.pushURL, nil).Push(data); err != nil {
			return enhanceError("report push", err)
		}
	}

	if objectsFlags.failOnNew && newObjects > 0 {
		return fmt.Errorf("found %d objects not in baseline", newObjects)
	}

	return nil
}

// resolveInt prefers an explicitly set flag, then the config file, then the
// flag's default.
func resolveInt(flagValue, flagDefault, cfgValue int) int {
	if flagValue != flagDefault {
		return flagValue
	}
	if cfgValue > 0 {
		return cfgValue
	}
	return flagDefault
}
