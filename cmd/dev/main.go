package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"

	"burntest/adapters/api"
	"burntest/internal/config"
	"burntest/internal/container"
	"burntest/internal/orders"
	"burntest/internal/testkit"
	"burntest/ports"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "orders-dev",
		Short: "Development tools for the order dashboard",
	}

	rootCmd.AddCommand(
		newSeedCmd(),
		newSmokeTestCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newSeedCmd() *cobra.Command {
	var (
		outFile     string
		templateDir string
		style       string
		genConfig   = testkit.DefaultOrderConfig()
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Write a sample import sheet plus the report template and logo",
		RunE: func(cmd *cobra.Command, args []string) error {
			headerStyle, err := parseHeaderStyle(style)
			if err != nil {
				return err
			}
			genConfig.HeaderStyle = headerStyle
			return generateSeedData(cmd.OutOrStdout(), genConfig, outFile, templateDir)
		},
	}

	cmd.Flags().StringVar(&outFile, "out", "sample_orders.xlsx", "Import sheet to write")
	cmd.Flags().StringVar(&templateDir, "template-dir", "templates", "Directory receiving MAU.xlsx and logo.png")
	cmd.Flags().StringVar(&style, "headers", "canonical", "Header spelling: canonical, english or ascii")
	cmd.Flags().IntVar(&genConfig.OrderCount, "orders", genConfig.OrderCount, "Number of orders")
	cmd.Flags().IntVar(&genConfig.CustomerCount, "customers", genConfig.CustomerCount, "Number of customers")
	cmd.Flags().IntVar(&genConfig.MaxLines, "max-lines", genConfig.MaxLines, "Maximum lines per order")
	cmd.Flags().Int64Var(&genConfig.Seed, "seed", genConfig.Seed, "Random seed")

	return cmd
}

func newSmokeTestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "smoke",
		Short: "Run import, export and download against an in-process backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSmokeTests(cmd.Context(), cmd.OutOrStdout())
		},
	}
	return cmd
}

func parseHeaderStyle(s string) (testkit.HeaderStyle, error) {
	switch s {
	case "canonical":
		return testkit.HeaderCanonical, nil
	case "english":
		return testkit.HeaderEnglish, nil
	case "ascii":
		return testkit.HeaderASCII, nil
	}
	return 0, fmt.Errorf("unknown header style %q", s)
}

func generateSeedData(out io.Writer, genConfig testkit.OrderGeneratorConfig, outFile, templateDir string) error {
	gen := testkit.NewOrderDataGenerator(genConfig)
	rows := gen.Rows()
	if err := testkit.WriteXLSX(outFile, gen.Headers(), rows); err != nil {
		return fmt.Errorf("failed to write %s: %w", outFile, err)
	}
	fmt.Fprintf(out, "Wrote %d lines to %s\n", len(rows), outFile)

	if err := os.MkdirAll(templateDir, 0o755); err != nil {
		return err
	}
	if err := testkit.WriteTemplate(filepath.Join(templateDir, orders.TemplateFile)); err != nil {
		return fmt.Errorf("failed to write template: %w", err)
	}
	if err := testkit.WriteLogo(filepath.Join(templateDir, orders.LogoFile)); err != nil {
		return fmt.Errorf("failed to write logo: %w", err)
	}
	fmt.Fprintf(out, "Wrote %s and %s to %s\n", orders.TemplateFile, orders.LogoFile, templateDir)
	return nil
}

func runSmokeTests(ctx context.Context, out io.Writer) error {
	dir, err := os.MkdirTemp("", "orders-smoke-")
	if err != nil {
		return err
	}
	defer os.RemoveAll(dir)

	cfg := &config.Config{
		Storage: config.StorageConfig{
			Driver:      "xlsx",
			DataFile:    filepath.Join(dir, "data.xlsx"),
			UploadDir:   filepath.Join(dir, "uploads"),
			TemplateDir: filepath.Join(dir, "templates"),
		},
		Reports: config.ReportConfig{Storage: "local", Dir: filepath.Join(dir, "exports")},
	}

	gin.SetMode(gin.ReleaseMode)
	backend, err := container.New(ctx, cfg, nil)
	if err != nil {
		return err
	}
	defer backend.Shutdown(ctx)

	srv := httptest.NewServer(backend.Router())
	defer srv.Close()
	client := api.NewClient(srv.URL+"/api", 0)

	if err := generateSeedData(io.Discard, testkit.DefaultOrderConfig(), filepath.Join(dir, "seed.xlsx"), cfg.Storage.TemplateDir); err != nil {
		return err
	}
	content, err := os.ReadFile(filepath.Join(dir, "seed.xlsx"))
	if err != nil {
		return err
	}

	imported, err := client.Import(ctx, ports.Upload{Filename: "seed.xlsx", Content: bytes.NewReader(content)})
	if err != nil {
		return err
	}
	if !imported.Success {
		return fmt.Errorf("import failed: %s", imported.Message)
	}
	fmt.Fprintf(out, "✓ import: %s\n", imported.Message)

	ids, err := client.ListOrders(ctx)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return fmt.Errorf("no orders after import")
	}
	fmt.Fprintf(out, "✓ orders: %d\n", len(ids))

	exported, err := client.Export(ctx, ids[0])
	if err != nil {
		return err
	}
	if !exported.Success {
		return fmt.Errorf("export failed: %s", exported.Message)
	}
	fmt.Fprintf(out, "✓ export: %s (%d sheets)\n", exported.Message, exported.SheetsCreated)

	n, err := client.Download(ctx, exported.FileURL, io.Discard)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "✓ download: %d bytes\n", n)
	return nil
}
