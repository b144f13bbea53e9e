package main

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/stayforge/hotelops/pkg/opsapi"
	"github.com/stayforge/hotelops/pkg/queue"
)

var (
	apiURL string
	client *apiClient
)

var rootCmd = &cobra.Command{
	Use:   "opsctl",
	Short: "Operations CLI for the hotelops job scheduler",
	Long: `opsctl inspects and controls a running hotelops scheduler through its
operations API: list queues, submit jobs, pause or clear misbehaving queues,
browse dead letters and watch live events.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		client = newAPIClient(apiURL)
	},
}

var queuesCmd = &cobra.Command{
	Use:   "queues",
	Short: "List all queues with their counters",
	RunE: func(cmd *cobra.Command, args []string) error {
		statuses, err := client.listQueues(cmd.Context())
		if err != nil {
			return err
		}
		if len(statuses) == 0 {
			fmt.Println("No queues configured")
			return nil
		}

		fmt.Printf("%-24s %-9s %8s %8s %8s %8s %10s %8s %7s\n",
			"NAME", "PRIORITY", "WORKERS", "PENDING", "ACTIVE", "DELAYED", "COMPLETED", "FAILED", "PAUSED")
		fmt.Println(strings.Repeat("-", 100))
		for _, s := range statuses {
			fmt.Printf("%-24s %-9s %8d %8d %8d %8d %10d %8d %7t\n",
				s.Config.Name,
				s.Config.Priority,
				s.Config.MaxConcurrent,
				s.Stats.Pending,
				s.Stats.Processing,
				s.Stats.Delayed,
				s.Stats.Completed,
				s.Stats.Failed,
				s.Stats.Paused,
			)
		}
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats queue",
	Short: "Show one queue's configuration and counters",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		status, err := client.getQueue(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		fmt.Printf("Queue: %s\n", status.Config.Name)
		fmt.Println(strings.Repeat("=", 60))
		fmt.Printf("%-22s %s\n", "Priority:", status.Config.Priority)
		fmt.Printf("%-22s %d\n", "Max Workers:", status.Config.MaxConcurrent)
		fmt.Printf("%-22s %s\n", "Timeout:", status.Config.Timeout)
		fmt.Printf("%-22s %d\n", "Retry Attempts:", status.Config.RetryAttempts)
		fmt.Printf("%-22s %s\n", "Retry Base Delay:", status.Config.RetryBaseDelay)
		fmt.Println(strings.Repeat("-", 60))
		fmt.Printf("%-22s %t\n", "Paused:", status.Stats.Paused)
		fmt.Printf("%-22s %d\n", "Pending:", status.Stats.Pending)
		fmt.Printf("%-22s %d\n", "Processing:", status.Stats.Processing)
		fmt.Printf("%-22s %d\n", "Delayed:", status.Stats.Delayed)
		fmt.Printf("%-22s %d\n", "Completed:", status.Stats.Completed)
		fmt.Printf("%-22s %d\n", "Failed:", status.Stats.Failed)
		fmt.Printf("%-22s %d\n", "Retried:", status.Stats.Retried)
		fmt.Printf("%-22s %d\n", "Dead Lettered:", status.Stats.DeadLettered)
		fmt.Printf("%-22s %s\n", "Avg Processing Time:", status.Stats.AvgProcessingTime)
		if !status.Stats.LastProcessedAt.IsZero() {
			fmt.Printf("%-22s %s\n", "Last Processed At:", status.Stats.LastProcessedAt.Format(time.RFC3339))
		}
		return nil
	},
}

var submitCmd = &cobra.Command{
	Use:   "submit queue",
	Short: "Submit a job to a queue",
	Long: `Submit a job with a JSON payload to the named queue.

Examples:
  opsctl submit housekeeping --payload '{"room":"405","task":"turnover"}'
  opsctl submit payment-processing --payload '{"booking":"b-17"}' --priority critical
  opsctl submit notifications --payload '{"guest":"g-9"}' --delay 15m --max-attempts 5`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		payload, _ := cmd.Flags().GetString("payload")
		if payload == "" {
			return fmt.Errorf("--payload is required")
		}
		if !json.Valid([]byte(payload)) {
			return fmt.Errorf("--payload must be valid JSON")
		}

		priority, _ := cmd.Flags().GetString("priority")
		delay, _ := cmd.Flags().GetString("delay")
		timeout, _ := cmd.Flags().GetString("timeout")
		maxAttempts, _ := cmd.Flags().GetInt("max-attempts")
		meta, _ := cmd.Flags().GetStringArray("meta")

		metadata, err := parseMeta(meta)
		if err != nil {
			return err
		}

		resp, err := client.submitJob(cmd.Context(), args[0], opsapi.SubmitJobRequest{
			Payload:     json.RawMessage(payload),
			Priority:    priority,
			Delay:       delay,
			Timeout:     timeout,
			MaxAttempts: maxAttempts,
			Metadata:    metadata,
		})
		if err != nil {
			return err
		}

		fmt.Printf("Job accepted: %s (queue %s)\n", resp.ID, resp.Queue)
		return nil
	},
}

var pauseCmd = &cobra.Command{
	Use:   "pause queue",
	Short: "Stop a queue's consumers from taking new jobs",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		status, err := client.pauseQueue(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Queue %s paused (%d pending, %d processing)\n",
			status.Config.Name, status.Stats.Pending, status.Stats.Processing)
		return nil
	},
}

var resumeCmd = &cobra.Command{
	Use:   "resume queue",
	Short: "Resume a paused queue",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		status, err := client.resumeQueue(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Queue %s resumed (%d pending)\n", status.Config.Name, status.Stats.Pending)
		return nil
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear queue",
	Short: "Remove all pending jobs from a queue",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := client.clearQueue(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Removed %d pending jobs\n", resp.Removed)
		return nil
	},
}

var deadLettersCmd = &cobra.Command{
	Use:   "deadletters",
	Short: "List jobs that exhausted their attempts",
	RunE: func(cmd *cobra.Command, args []string) error {
		queueName, _ := cmd.Flags().GetString("queue")
		limit, _ := cmd.Flags().GetInt("limit")

		entries, err := client.deadLetters(cmd.Context(), queueName, limit)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("No dead letters")
			return nil
		}

		fmt.Printf("Dead Letters (%d)\n", len(entries))
		fmt.Printf("%-38s %-20s %-9s %-21s %s\n", "ID", "QUEUE", "ATTEMPTS", "FAILED_AT", "ERROR")
		fmt.Println(strings.Repeat("-", 120))
		for _, e := range entries {
			fmt.Printf("%-38s %-20s %-9d %-21s %s\n",
				e.Job.ID,
				e.Job.Queue,
				e.Job.Attempts,
				e.FailedAt.Format("2006-01-02T15:04:05Z"),
				truncate(e.Error, 40),
			)
		}
		return nil
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stream live scheduler events",
	Long:  `Stream job and queue lifecycle events until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		fmt.Println("Watching events (Ctrl+C to stop)...")
		return client.watchEvents(ctx, printEvent)
	},
}

func printEvent(e queue.Event) {
	ts := e.At.Format("15:04:05")
	switch {
	case e.Job != nil && e.Error != "":
		fmt.Printf("%s  %-14s %-20s job=%s attempt=%d/%d error=%q\n",
			ts, e.Type, e.Queue, e.Job.ID, e.Job.Attempts, e.Job.MaxAttempts, e.Error)
	case e.Job != nil:
		fmt.Printf("%s  %-14s %-20s job=%s priority=%s pending=%d\n",
			ts, e.Type, e.Queue, e.Job.ID, e.Job.Priority, e.Stats.Pending)
	default:
		fmt.Printf("%s  %-14s %-20s pending=%d paused=%t\n",
			ts, e.Type, e.Queue, e.Stats.Pending, e.Stats.Paused)
	}
}

func parseMeta(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	meta := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		k, v, ok := strings.Cut(pair, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid --meta %q, expected key=value", pair)
		}
		meta[k] = v
	}
	return meta, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL,
		"api", cmp.Or(os.Getenv("OPSCTL_API"), "http://localhost:8080"),
		"Base URL of the operations API (env OPSCTL_API)")

	submitCmd.Flags().String("payload", "", "Job payload as a JSON document (required)")
	submitCmd.Flags().String("priority", "", "Priority level: critical, high, medium or low")
	submitCmd.Flags().String("delay", "", "Hold the job back, e.g. 30s or 15m")
	submitCmd.Flags().String("timeout", "", "Execution timeout override, e.g. 45s")
	submitCmd.Flags().Int("max-attempts", 0, "Attempt budget override, including the first run")
	submitCmd.Flags().StringArray("meta", nil, "Metadata key=value, repeatable")

	deadLettersCmd.Flags().String("queue", "", "Only show entries from this queue")
	deadLettersCmd.Flags().Int("limit", 50, "Maximum entries to show, 0 for all")

	rootCmd.AddCommand(queuesCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(submitCmd)
	rootCmd.AddCommand(pauseCmd)
	rootCmd.AddCommand(resumeCmd)
	rootCmd.AddCommand(clearCmd)
	rootCmd.AddCommand(deadLettersCmd)
	rootCmd.AddCommand(watchCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
