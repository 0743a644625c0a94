package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/lavimachotel/Lavimac-Hotel-sub003/internal/model"
	"github.com/lavimachotel/Lavimac-Hotel-sub003/internal/report"
	"github.com/lavimachotel/Lavimac-Hotel-sub003/internal/repository"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newGenerateCmd(a *app) *cobra.Command {
	var (
		dateRange  string
		reportType string
		format     string
		preparedBy string
		outDir     string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a report and write it to a file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, err := parseFlags(dateRange, reportType, format)
			if err != nil {
				return err
			}

			res, err := a.svc.Generate(cmd.Context(), req, preparedBy)
			if err != nil {
				return err
			}
			_, data, err := report.DecodeDataURI(res.Report.FileContent)
			if err != nil {
				return err
			}

			path := filepath.Join(outDir, res.Report.Filename)
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return fmt.Errorf("write report: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Generated %s (%s)\n", res.Report.Name, res.Report.ID)
			fmt.Fprintf(out, "Wrote %s\n", path)
			if res.Warning != "" {
				fmt.Fprintf(out, "Warning: %s\n", res.Warning)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dateRange, "range", string(model.Range30Days), "Date range: 7days, 30days, 90days, 12months")
	cmd.Flags().StringVar(&reportType, "type", string(model.ReportSummary), "Report type: summary, financial, occupancy, guests, housekeeping, monthly")
	cmd.Flags().StringVar(&format, "format", string(model.FormatPDF), "Output format: pdf, excel, csv")
	cmd.Flags().StringVar(&preparedBy, "by", "", "Name printed as the report preparer")
	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "Directory to write the file to")
	return cmd
}

func parseFlags(dateRange, reportType, format string) (model.ReportRequest, error) {
	rng, err := model.ParseDateRange(dateRange)
	if err != nil {
		return model.ReportRequest{}, err
	}
	rt, err := model.ParseReportType(reportType)
	if err != nil {
		return model.ReportRequest{}, err
	}
	f, err := model.ParseFormat(format)
	if err != nil {
		return model.ReportRequest{}, err
	}
	return model.ReportRequest{DateRange: rng, ReportType: rt, Format: f}, nil
}

// listItem is the printable shape of a history entry.
type listItem struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Date        string `json:"date" yaml:"date"`
	Format      string `json:"format" yaml:"format"`
	DateRange   string `json:"date_range" yaml:"date_range"`
	GeneratedBy string `json:"generated_by" yaml:"generated_by"`
	Filename    string `json:"filename" yaml:"filename"`
	Persisted   bool   `json:"persisted" yaml:"persisted"`
}

func newListCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List generated reports, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			records := a.svc.List(cmd.Context())
			items := make([]listItem, 0, len(records))
			for _, r := range records {
				items = append(items, listItem{
					ID:          r.ID,
					Name:        r.Name,
					Date:        r.Date,
					Format:      string(r.Type),
					DateRange:   r.DateRange.Label(),
					GeneratedBy: r.GeneratedBy,
					Filename:    r.Filename,
					Persisted:   r.Persisted,
				})
			}

			out := cmd.OutOrStdout()
			switch output {
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(items)
			case "yaml":
				enc := yaml.NewEncoder(out)
				defer enc.Close()
				return enc.Encode(items)
			case "table":
				w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tNAME\tDATE\tFORMAT\tRANGE\tPREPARED BY")
				for _, it := range items {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", it.ID, it.Name, it.Date, it.Format, it.DateRange, it.GeneratedBy)
				}
				return w.Flush()
			default:
				return fmt.Errorf("unsupported output format: %q (expected table, json, or yaml)", output)
			}
		},
	}
	cmd.Flags().StringVar(&output, "output", "table", "Output format: table, json, yaml")
	return cmd
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.svc.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return nil
		},
	}
}

func newShareCmd(a *app) *cobra.Command {
	var to, message string

	cmd := &cobra.Command{
		Use:   "share <id>",
		Short: "E-mail a report as an attachment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.svc.ShareByEmail(cmd.Context(), args[0], to, message, "reportctl"); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Sent %s to %s\n", args[0], to)
			return nil
		},
	}
	cmd.Flags().StringVar(&to, "to", "", "Recipient address")
	cmd.Flags().StringVar(&message, "message", "", "Optional note included in the e-mail")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func newSeedCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert demo rooms, guests, reservations, invoices and tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data := DemoData(time.Now())
			if err := repository.Seed(cmd.Context(), data); err != nil {
				return fmt.Errorf("seed demo data: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d rooms, %d guests, %d reservations, %d invoices, %d tasks\n",
				len(data.Rooms), len(data.Guests), len(data.Reservations), len(data.Invoices), len(data.Tasks))
			return nil
		},
	}
}
