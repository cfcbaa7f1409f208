package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"burntest/adapters/api"
	"burntest/internal/dashboard"
	"burntest/ports"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	backendURL string
	timeout    time.Duration
	assumeYes  bool
)

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:          "orders-cli",
		Short:        "Command line client for the order dashboard backend",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&backendURL, "backend", envOr("BACKEND_URL", "http://localhost:8000/api"), "Backend API base URL")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "Request timeout (0 waits indefinitely)")
	rootCmd.PersistentFlags().BoolVarP(&assumeYes, "yes", "y", false, "Answer yes to confirmation prompts")

	rootCmd.AddCommand(
		newStatsCmd(),
		newOrdersCmd(),
		newOrderCmd(),
		newImportCmd(),
		newDeleteCmd(),
		newExportCmd(),
		newReportsCmd(),
		newDeleteReportCmd(),
		newClearReportsCmd(),
		newUploadCmd("upload-template", "Replace the report template (MAU.xlsx)", func(c *dashboard.Controller) func(context.Context, *ports.Upload) {
			return c.UploadTemplate
		}),
		newUploadCmd("upload-logo", "Replace the report logo", func(c *dashboard.Controller) func(context.Context, *ports.Upload) {
			return c.UploadLogo
		}),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func newClient() *api.Client {
	return api.NewClient(backendURL, timeout)
}

// newController builds a controller whose alerts stay until printed
func newController(client *api.Client, in io.Reader, out io.Writer) *dashboard.Controller {
	return dashboard.NewController(client, nil,
		dashboard.WithAfterFunc(func(time.Duration, func()) {}),
		dashboard.WithConfirmer(stdinConfirmer(in, out)),
	)
}

func stdinConfirmer(in io.Reader, out io.Writer) ports.Confirmer {
	reader := bufio.NewReader(in)
	return ports.ConfirmFunc(func(ctx context.Context, prompt string) bool {
		if assumeYes {
			return true
		}
		fmt.Fprintf(out, "%s [y/N]: ", prompt)
		answer, err := reader.ReadString('\n')
		if err != nil && answer == "" {
			return false
		}
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "y", "yes", "có", "co":
			return true
		}
		return false
	})
}

// printAlerts writes the controller's banners and fails when one of them is an error
func printAlerts(out io.Writer, c *dashboard.Controller) error {
	failed := false
	for _, alert := range c.Snapshot().Alerts {
		fmt.Fprintln(out, alert.Message)
		if alert.Level == dashboard.AlertDanger {
			failed = true
		}
	}
	if failed {
		return fmt.Errorf("operation failed")
	}
	return nil
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show the dashboard counters and top customers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			c := newController(newClient(), cmd.InOrStdin(), out)
			c.LoadDashboard(cmd.Context())

			state := c.Snapshot()
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "Tổng đơn hàng\t%d\n", state.Stats.TotalOrders)
			fmt.Fprintf(w, "Khách hàng\t%d\n", state.Stats.TotalCustomers)
			fmt.Fprintf(w, "Sản phẩm\t%d\n", state.Stats.TotalProducts)
			fmt.Fprintf(w, "Dòng dữ liệu\t%d\n", state.Stats.TotalRows)
			w.Flush()

			if state.Chart != nil {
				fmt.Fprintf(out, "\n%s\n", state.Chart.Title)
				for _, bar := range state.Chart.Bars {
					fmt.Fprintf(out, "  %-20s %d\n", bar.Label, bar.Value)
				}
			} else if state.ChartPlaceholder != "" {
				fmt.Fprintf(out, "\n%s\n", state.ChartPlaceholder)
			}
			return printAlerts(out, c)
		},
	}
}

func newOrdersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "orders",
		Short: "List order ids",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			orders, err := newClient().ListOrders(cmd.Context())
			if err != nil {
				return err
			}
			for _, id := range orders {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	}
}

func newOrderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "order [order-id]",
		Short: "Show the lines of one order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			c := newController(newClient(), cmd.InOrStdin(), out)
			c.LoadOrderDetail(cmd.Context(), args[0])

			detail := c.Snapshot().Detail
			switch {
			case detail == nil:
			case !detail.HasTable():
				fmt.Fprintln(out, detail.Message)
			default:
				w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, strings.Join(detail.Header, "\t"))
				for _, row := range detail.Rows {
					fmt.Fprintln(w, strings.Join(row, "\t"))
				}
				w.Flush()
			}
			return printAlerts(out, c)
		},
	}
}

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import [file]",
		Short: "Import an xlsx or csv spreadsheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			out := cmd.OutOrStdout()
			c := newController(newClient(), cmd.InOrStdin(), out)
			c.ImportData(cmd.Context(), &ports.Upload{Filename: filepath.Base(args[0]), Content: f})
			return printAlerts(out, c)
		},
	}
}

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [order-id]",
		Short: "Delete every line of an order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			c := newController(newClient(), cmd.InOrStdin(), out)
			if err := c.Dispatch(cmd.Context(), dashboard.Action{Kind: dashboard.ActionDeleteOrder, OrderID: args[0]}); err != nil {
				return err
			}
			return printAlerts(out, c)
		},
	}
}

func newExportCmd() *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "export [order-id]",
		Short: "Generate a report for an order and download it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			client := newClient()
			c := newController(client, cmd.InOrStdin(), out)
			c.ExportReport(cmd.Context(), args[0])
			if err := printAlerts(out, c); err != nil {
				return err
			}

			fileURL := c.TakeDownload()
			if fileURL == "" {
				return nil
			}
			return download(cmd.Context(), client, fileURL, outDir, out)
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "Directory to save the report in")

	return cmd
}

func download(ctx context.Context, client *api.Client, fileURL, dir string, out io.Writer) error {
	name := filepath.Base(fileURL)
	if unescaped, err := url.PathUnescape(name); err == nil {
		name = filepath.Base(unescaped)
	}
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	n, err := client.Download(ctx, fileURL, f)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(path)
		return err
	}
	fmt.Fprintf(out, "Đã lưu %s (%d bytes)\n", path, n)
	return nil
}

func newReportsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reports",
		Short: "List generated reports, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reports, err := newClient().ListReports(cmd.Context())
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "FILE\tORDER\tSIZE\tCREATED")
			for _, r := range reports {
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", r.Filename, r.OrderNo, r.FileSize, r.CreatedTime)
			}
			return w.Flush()
		},
	}
}

func newDeleteReportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete-report [filename]",
		Short: "Delete one generated report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			c := newController(newClient(), cmd.InOrStdin(), out)
			if err := c.Dispatch(cmd.Context(), dashboard.Action{Kind: dashboard.ActionDeleteReport, Filename: args[0]}); err != nil {
				return err
			}
			return printAlerts(out, c)
		},
	}
}

func newClearReportsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear-reports",
		Short: "Delete every generated report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			c := newController(newClient(), cmd.InOrStdin(), out)
			if err := c.Dispatch(cmd.Context(), dashboard.Action{Kind: dashboard.ActionClearReports}); err != nil {
				return err
			}
			return printAlerts(out, c)
		},
	}
}

func newUploadCmd(use, short string, pick func(*dashboard.Controller) func(context.Context, *ports.Upload)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " [file]",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			out := cmd.OutOrStdout()
			c := newController(newClient(), cmd.InOrStdin(), out)
			pick(c)(cmd.Context(), &ports.Upload{Filename: filepath.Base(args[0]), Content: f})
			return printAlerts(out, c)
		},
	}
}
