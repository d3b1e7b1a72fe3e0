package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/giygas/cmr-report/cmrparser"
	"github.com/giygas/cmr-report/config"
	"github.com/giygas/cmr-report/data"
	"github.com/giygas/cmr-report/handlers"
	"github.com/giygas/cmr-report/health"
	"github.com/giygas/cmr-report/interfaces"
	"github.com/giygas/cmr-report/logging"
	"github.com/giygas/cmr-report/normals"
	"github.com/giygas/cmr-report/renderer"
	"github.com/giygas/cmr-report/scheduler"
	"github.com/giygas/cmr-report/server"
	"github.com/giygas/cmr-report/validation"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var version = "1.0.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "cmr-report",
		Short: "Cardiac MRI report builder",
		Long: `cmr-report reads the plain-text export of a cardiac MRI
post-processing workstation, extracts the ventricular, atrial and mapping
measurements and renders the Italian narrative report with age and sex
matched reference ranges.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadEnv()
		},
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(renderCmd())
	rootCmd.AddCommand(normalsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadEnv reads .env from the working directory, then from the directory of
// the executable. A missing file is not an error.
func loadEnv() error {
	if err := godotenv.Load(); err == nil {
		return nil
	}

	ex, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to get executable path: %w", err)
	}
	envPath := filepath.Join(filepath.Dir(ex), ".env")
	if _, err := os.Stat(envPath); err != nil {
		return nil
	}
	if err := godotenv.Load(envPath); err != nil {
		return fmt.Errorf("failed to load %s: %w", envPath, err)
	}
	return nil
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the web form and the report API",
		Long: `Run the web form and the report API.

The reference ranges are read from NORMALS_DIR (default "files"), one CSV
per sex: NORMALS_MALE_FILE (default table_1.csv) and NORMALS_FEMALE_FILE
(default table_2.csv). They are the age-stratified tables of the Healthy
Hearts Consortium reference ranges exported to CSV: a discarded first
record, a header with the variable column and the six age brackets, and
section rows with empty age cells. normals/testdata holds a pair with that
layout; its values are illustrative, not clinical. The server does not
start until both files load.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return serve(cfg)
		},
	}
}

func serve(cfg *config.Config) error {
	logService := logging.InitLogger(cfg)
	defer func() {
		if err := logService.Close(); err != nil {
			fmt.Fprintln(os.Stderr, "failed to close log file:", err)
		}
	}()

	store := data.NewNormalsContainer()
	store.SetServerStartTime(time.Now())

	validator := validation.NewDataValidator()
	loader := normals.NewFileLoader(cfg.NormalsDir, cfg.NormalsMaleFile, cfg.NormalsFemaleFile)

	var cleaner interfaces.LogCleaner
	if cfg.LogDir != "" {
		cleaner = logService
	}

	sched := scheduler.NewScheduler(store, loader, validator, cleaner,
		time.Duration(cfg.NormalsReloadMinutes)*time.Minute)
	if err := sched.Start(); err != nil {
		return err
	}
	defer sched.Stop()

	handler := handlers.NewHTTPHandler(store, validator, cmrparser.NewReportParser(), health.NewHealthChecker(store))
	srv := server.NewServer(cfg, handler)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			logging.Error("Server failed to start", "error", err)
			return err
		}
	case sig := <-quit:
		logging.Info("Received signal", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

func renderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a report from an export file",
		Long: `Render a report from an export file and print it.

Example:
  cmr-report render --input export.txt --sex F --age 52 --3t
  cmr-report render --input - --sex M --json < export.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			input, _ := cmd.Flags().GetString("input")
			sexFlag, _ := cmd.Flags().GetString("sex")
			ageFlag, _ := cmd.Flags().GetInt("age")
			field3T, _ := cmd.Flags().GetBool("3t")
			includeTables, _ := cmd.Flags().GetBool("tables")
			asJSON, _ := cmd.Flags().GetBool("json")
			normalsDir, _ := cmd.Flags().GetString("normals-dir")

			if input == "" {
				return fmt.Errorf("--input flag is required")
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logging.InitConsoleLogger(cfg.LogLevel)
			if normalsDir != "" {
				cfg.NormalsDir = normalsDir
			}

			validator := validation.NewDataValidator()
			sex, err := validator.ValidateSex(sexFlag)
			if err != nil {
				return err
			}
			age, err := validator.ValidateAge(fmt.Sprint(ageFlag))
			if err != nil {
				return err
			}

			text, err := readInput(cmd, input)
			if err != nil {
				return err
			}

			tables, err := normals.LoadDir(cfg.NormalsDir, cfg.NormalsMaleFile, cfg.NormalsFemaleFile)
			if err != nil {
				logging.Warn("Rendering without reference ranges", "error", err)
				tables = normals.NewTables(nil, nil)
			}

			extraction := cmrparser.Extract(text)
			report := renderer.Render(renderer.Input{
				Sex:           sex,
				Age:           age,
				Field3T:       field3T,
				Values:        extraction.Values,
				LV:            extraction.LV,
				RV:            extraction.RV,
				IncludeTables: includeTables,
			}, tables)

			out := cmd.OutOrStdout()
			if !asJSON {
				_, err := fmt.Fprint(out, report)
				return err
			}

			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(handlers.ReportResponse{
				ID:       uuid.NewString(),
				Report:   report,
				Values:   extraction.Values,
				Sections: extraction.Sections,
			})
		},
	}

	cmd.Flags().String("input", "", "Export file to read, - for stdin (required)")
	cmd.Flags().String("sex", "", "Patient sex: M or F (required)")
	cmd.Flags().Int("age", validation.DefaultAge, "Patient age in years")
	cmd.Flags().Bool("3t", false, "Exam acquired on the 3T scanner")
	cmd.Flags().Bool("tables", true, "Append the LV and RV tables")
	cmd.Flags().Bool("json", false, "Print id, report, values and sections as JSON")
	cmd.Flags().String("normals-dir", "", "Directory of the reference tables (default NORMALS_DIR)")

	return cmd
}

func normalsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "normals",
		Short: "Print the reference ranges for a sex and age",
		RunE: func(cmd *cobra.Command, args []string) error {
			sexFlag, _ := cmd.Flags().GetString("sex")
			ageFlag, _ := cmd.Flags().GetInt("age")

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logging.InitConsoleLogger(cfg.LogLevel)

			validator := validation.NewDataValidator()
			sex, err := validator.ValidateSex(sexFlag)
			if err != nil {
				return err
			}
			age, err := validator.ValidateAge(fmt.Sprint(ageFlag))
			if err != nil {
				return err
			}

			tables, err := normals.LoadDir(cfg.NormalsDir, cfg.NormalsMaleFile, cfg.NormalsFemaleFile)
			if err != nil {
				return err
			}
			if err := validator.ValidateTables(tables); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "sex=%s age=%d bracket=%q\n", sex, age, normals.BracketFor(age))
			ranges := tables.LookupAll(sex, age)
			for _, key := range normals.Keys() {
				variable, _ := normals.VariableFor(key)
				fmt.Fprintf(out, "%-10s %-18s %s\n", key, variable, ranges[key])
			}
			return nil
		},
	}

	cmd.Flags().String("sex", "", "Patient sex: M or F (required)")
	cmd.Flags().Int("age", validation.DefaultAge, "Patient age in years")

	return cmd
}

func readInput(cmd *cobra.Command, input string) (string, error) {
	if input == "-" {
		return cmrparser.ReadText(cmd.InOrStdin())
	}

	f, err := os.Open(input)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", input, err)
	}
	defer f.Close()

	return cmrparser.ReadText(f)
}
