// Command mailtrail rebuilds a chronological timeline from a set of
// email message files, expanding forwarded chains embedded in message
// bodies into the individual messages they quote.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mailtrail/mailtrail/config"
	"github.com/mailtrail/mailtrail/mailfile"
	"github.com/mailtrail/mailtrail/timeline"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		configPath string
		format     string
		location   string
	)

	cmd := &cobra.Command{
		Use:   "mailtrail [files...]",
		Short: "Rebuild a message timeline from email files",
		Long: "mailtrail reads .eml and .mbox files, detects forwarded chains\n" +
			"embedded in message bodies, and prints every recovered message as\n" +
			"one deduplicated, chronologically ordered timeline.",
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if configPath != "" {
				loaded, err := config.Load(configPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}
			if cmd.Flags().Changed("format") {
				cfg.Format = format
			}
			if cmd.Flags().Changed("location") {
				cfg.Location = location
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return run(cmd, cfg, args)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Path to a YAML configuration file")
	cmd.Flags().StringVar(&format, "format", "text", "Output format: text or json")
	cmd.Flags().StringVar(&location, "location", "UTC", "Time zone used when printing dates")
	return cmd
}

func run(cmd *cobra.Command, cfg config.Config, paths []string) error {
	var messages []mailfile.Message
	failed := 0
	for _, path := range paths {
		msgs, err := mailfile.Load(path)
		if err != nil {
			log.Printf("skipping %s: %v", path, err)
			failed++
			continue
		}
		if label, ok := cfg.Labels[path]; ok {
			for i := range msgs {
				msgs[i].Top.SourceLabel = label
			}
		}
		messages = append(messages, msgs...)
	}
	if len(messages) == 0 {
		return fmt.Errorf("no messages could be loaded from %d file(s)", len(paths))
	}
	if failed > 0 {
		log.Printf("%d of %d files could not be read", failed, len(paths))
	}

	records := timeline.Build(messages)

	if cfg.Format == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	loc, err := time.LoadLocation(cfg.Location)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, r := range records {
		date := "unknown date"
		if r.Date != nil {
			date = r.Date.In(loc).Format("2006-01-02 15:04")
		}
		to := r.To
		if to == "" {
			to = "-"
		}
		fmt.Fprintf(out, "[%s] %s -> %s: %s (%s)\n", date, r.From, to, r.Subject, r.SourceLabel)
		if r.Body != "" {
			fmt.Fprintln(out, indent(r.Body))
		}
		fmt.Fprintln(out)
	}
	return nil
}

func indent(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = "    " + line
	}
	return strings.Join(lines, "\n")
}
