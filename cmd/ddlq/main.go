package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/nordql/ddlq"
	"github.com/nordql/ddlq/internal/db"
	"github.com/nordql/ddlq/internal/dialect"
	"github.com/nordql/ddlq/internal/gen"
	"github.com/nordql/ddlq/internal/parser"
)

var (
	dialectName string
	inputFile   string
	outputFile  string
	format      string
	genCode     bool
	genPackage  string
	applyURL    string
)

var rootCmd = &cobra.Command{
	Use:   "ddlq",
	Short: "Parse CREATE TABLE DDL into a typed schema",
	Long: `ddlq parses a batch of CREATE TABLE statements for a chosen SQL dialect,
validates the resulting schema (types, primary keys, foreign-key
references), and prints it, generates Go code for it, or applies it to a
live database.`,
	RunE: run,
}

func init() {
	rootCmd.Flags().StringVarP(&dialectName, "dialect", "d", "postgres", "SQL dialect: postgres, mysql, or sqlite")
	rootCmd.Flags().StringVarP(&inputFile, "file", "f", "", "DDL input file (default: stdin)")
	rootCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
	rootCmd.Flags().StringVar(&format, "format", "text", "Output format: text or markdown")
	rootCmd.Flags().BoolVar(&genCode, "gen", false, "Generate Go structs and column references instead of printing the schema")
	rootCmd.Flags().StringVar(&genPackage, "package", "models", "Package name for generated Go code")
	rootCmd.Flags().StringVar(&applyURL, "apply-url", "", "Database URL to apply the DDL to (postgres://, mysql://, or sqlite://)")
}

func run(cmd *cobra.Command, args []string) error {
	ddl, err := readInput(inputFile)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	schema, err := ddlq.Parse(ddl, &ddlq.Options{Dialect: dialectName})
	if err != nil {
		return err
	}

	if applyURL != "" {
		if err := applySchema(cmd.Context(), ddl, applyURL); err != nil {
			return err
		}
	}

	var writer io.Writer = os.Stdout
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() {
			if err := f.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to close output file: %v\n", err)
			}
		}()
		writer = f
	}

	if genCode {
		return gen.Generate(writer, schema, genPackage)
	}
	return ddlq.Format(schema, &ddlq.OutputOptions{Writer: writer, Format: format})
}

// readInput reads the DDL batch from the given file, or stdin when the
// path is empty or "-".
func readInput(path string) (string, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// applySchema executes the already-validated DDL statements against the
// target database, one statement at a time.
func applySchema(ctx context.Context, ddl, url string) error {
	rules, err := dialect.Lookup(dialectName)
	if err != nil {
		return err
	}
	stmts, err := parser.Statements(ddl, rules)
	if err != nil {
		return err
	}

	client, err := db.Open(ctx, url)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		if err := client.Close(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to close database connection: %v\n", err)
		}
	}()

	for _, stmt := range stmts {
		if err := client.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply statement: %w", err)
		}
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
