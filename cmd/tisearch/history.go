package tisearch

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/tisearch/tisearch/internal/audit"
)

var (
	flagHistoryLimit  int
	flagHistoryJSON   bool
	flagHistoryDelete int
)

func init() {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded searches, newest first",
		Args:  cobra.NoArgs,
		RunE:  runHistory,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().IntVar(&flagHistoryLimit, "limit", 20, "show at most this many entries (0 = all)")
	cmd.Flags().BoolVar(&flagHistoryJSON, "json", false, "emit JSON")
	cmd.Flags().IntVar(&flagHistoryDelete, "delete", -1, "delete the entry with this index (0 = newest)")
}

func runHistory(cmd *cobra.Command, _ []string) error {
	dir, err := stateDir()
	if err != nil {
		return err
	}
	log := audit.NewAuditLog(dir)
	out := cmd.OutOrStdout()

	if cmd.Flags().Changed("delete") {
		if err := log.DeleteRecord(flagHistoryDelete); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Deleted history entry %d\n", flagHistoryDelete)
		return nil
	}

	records, err := log.LoadHistory()
	if err != nil {
		return err
	}
	if flagHistoryLimit > 0 && len(records) > flagHistoryLimit {
		records = records[:flagHistoryLimit]
	}
	if flagHistoryJSON {
		if records == nil {
			records = []audit.ScanRecord{}
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}
	if len(records) == 0 {
		fmt.Fprintln(out, "No searches recorded yet")
		return nil
	}

	table := tablewriter.NewWriter(out)
	table.Header("#", "WHEN", "TERM", "FOLDER", "MATCHES", "FILES", "DURATION", "STATUS", "ID")
	for i, r := range records {
		status := "done"
		if r.Cancelled {
			status = "stopped"
		}
		_ = table.Append([]string{
			strconv.Itoa(i),
			r.Timestamp.Local().Format("2006-01-02 15:04"),
			r.Term,
			r.Root,
			strconv.Itoa(r.Matches),
			strconv.Itoa(r.FilesScanned),
			r.Duration,
			status,
			shortID(r.ScanID),
		})
	}
	return table.Render()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
