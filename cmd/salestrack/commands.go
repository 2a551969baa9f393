package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/rpggio/salestrack/internal/domain/task"
	"github.com/rpggio/salestrack/internal/report"
	"github.com/rpggio/salestrack/internal/repository"
	"github.com/spf13/cobra"
)

// SetupCommands builds the root command. Each subcommand opens its own App.
func SetupCommands() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "salestrack",
		Short:         "Track sales tasks, ROI and performance grade",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// serve the MCP tool server over stdio or streamable HTTP
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			// Keep stdout clean for JSON-RPC in stdio mode.
			a, err := NewApp(os.Stderr)
			if err != nil {
				return err
			}
			defer a.Close()
			return a.Serve(ctx)
		},
	}

	var listFlags struct {
		search   string
		priority string
		status   string
	}
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks, highest priority and newest first",
		Args:  cobra.NoArgs,
		RunE: withApp(func(ctx context.Context, a *App, cmd *cobra.Command, args []string) error {
			filter, err := parseFilter(listFlags.search, listFlags.priority, listFlags.status)
			if err != nil {
				return err
			}
			view, err := a.tasks.View(ctx, filter)
			if err != nil {
				return err
			}
			printTasks(cmd.OutOrStdout(), view.Tasks)
			return nil
		}),
	}
	listCmd.Flags().StringVar(&listFlags.search, "search", "", "match title or notes")
	listCmd.Flags().StringVar(&listFlags.priority, "priority", "", "High, Medium, Low or All")
	listCmd.Flags().StringVar(&listFlags.status, "status", "", "To Do, In Progress, Done or All")

	var addFlags struct {
		revenue  float64
		hours    float64
		priority string
		status   string
		notes    string
	}
	addCmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add a task",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(ctx context.Context, a *App, cmd *cobra.Command, args []string) error {
			req := task.CreateRequest{
				Title:     args[0],
				Revenue:   addFlags.revenue,
				TimeTaken: addFlags.hours,
				Notes:     addFlags.notes,
			}
			var err error
			if req.Priority, err = task.ParsePriority(addFlags.priority); err != nil {
				return err
			}
			if req.Status, err = task.ParseStatus(addFlags.status); err != nil {
				return err
			}

			created, err := a.tasks.Create(ctx, req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s (ROI %.2f)\n", created.ID, created.ROI)
			return nil
		}),
	}
	addCmd.Flags().Float64Var(&addFlags.revenue, "revenue", 0, "revenue attributed to the task")
	addCmd.Flags().Float64Var(&addFlags.hours, "hours", 0, "hours invested")
	addCmd.Flags().StringVar(&addFlags.priority, "priority", "", "High, Medium or Low (default Medium)")
	addCmd.Flags().StringVar(&addFlags.status, "status", "", "To Do, In Progress or Done (default To Do)")
	addCmd.Flags().StringVar(&addFlags.notes, "notes", "", "free-form notes")

	deleteCmd := &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(ctx context.Context, a *App, cmd *cobra.Command, args []string) error {
			deleted, err := a.tasks.Delete(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %q\n", deleted.Title)
			return nil
		}),
	}

	summaryCmd := &cobra.Command{
		Use:   "summary",
		Short: "Show revenue, ROI, efficiency and grade",
		Args:  cobra.NoArgs,
		RunE: withApp(func(ctx context.Context, a *App, cmd *cobra.Command, args []string) error {
			s, err := a.tasks.Summary(ctx)
			if err != nil {
				return err
			}
			printSummary(cmd.OutOrStdout(), s)
			return nil
		}),
	}

	var exportFlags struct {
		format string
		output string
	}
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export the task report as JSON, CSV or PDF",
		Args:  cobra.NoArgs,
		RunE: withApp(func(ctx context.Context, a *App, cmd *cobra.Command, args []string) error {
			data, err := report.NewExporter(a.tasks).Export(ctx, exportFlags.format, task.Filter{})
			if err != nil {
				return err
			}
			if exportFlags.output == "" || exportFlags.output == "-" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(exportFlags.output, data, 0o644); err != nil {
				return fmt.Errorf("write report: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", exportFlags.output)
			return nil
		}),
	}
	exportCmd.Flags().StringVarP(&exportFlags.format, "format", "f", "json", "one of "+strings.Join(report.Formats, ", "))
	exportCmd.Flags().StringVarP(&exportFlags.output, "output", "o", "", "output file (default stdout)")
	_ = exportCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return report.Formats, cobra.ShellCompDirectiveNoFileComp
	})

	// seed discards the saved list so the starter tasks are loaded again
	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Reset the saved list to the starter tasks",
		Args:  cobra.NoArgs,
		RunE: withApp(func(ctx context.Context, a *App, cmd *cobra.Command, args []string) error {
			if err := a.slot.Clear(ctx); err != nil && !errors.Is(err, repository.ErrNotFound) {
				return err
			}
			view, err := a.tasks.View(ctx, task.Filter{})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d tasks\n", len(view.Tasks))
			return nil
		}),
	}

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(seedCmd)

	return rootCmd
}

type appRunFunc func(ctx context.Context, a *App, cmd *cobra.Command, args []string) error

// withApp opens an App for a one-shot command, logging to stderr.
func withApp(fn appRunFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := NewApp(cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer a.Close()
		return fn(cmd.Context(), a, cmd, args)
	}
}

func parseFilter(search, priority, status string) (task.Filter, error) {
	p, err := task.ParsePriority(priority)
	if err != nil {
		return task.Filter{}, err
	}
	s, err := task.ParseStatus(status)
	if err != nil {
		return task.Filter{}, err
	}
	return task.Filter{Search: search, Priority: p, Status: s}, nil
}

func printTasks(w io.Writer, tasks []task.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "No tasks.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tPRIORITY\tSTATUS\tREVENUE\tHOURS\tROI")
	for _, t := range tasks {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%.2f\t%.2f\t%.2f\n",
			t.ID, t.Title, t.Priority, t.Status, t.Revenue, t.TimeTaken, t.ROI)
	}
	tw.Flush()
}

func printSummary(w io.Writer, s task.Summary) {
	fmt.Fprintf(w, "Tasks:         %d\n", s.TaskCount)
	fmt.Fprintf(w, "Total revenue: %.2f\n", s.TotalRevenue)
	fmt.Fprintf(w, "Total hours:   %.2f\n", s.TotalHours)
	fmt.Fprintf(w, "Average ROI:   %.2f\n", s.AvgROI)
	fmt.Fprintf(w, "Efficiency:    %.2f\n", s.Efficiency)
	fmt.Fprintf(w, "Grade:         %s\n", s.Grade)
	for _, status := range task.AllStatuses() {
		fmt.Fprintf(w, "  %-12s %d\n", status+":", s.ByStatus[status])
	}
}
