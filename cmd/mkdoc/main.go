package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"mkdoc/internal/config"
	"mkdoc/internal/doxygen"
	"mkdoc/internal/extractor"
	"mkdoc/internal/pipeline"

	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:   "mkdoc",
		Short: "Docstring generator for Python bindings of C++ code",
	}
	dbPath     string
	configPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Default DB path is local to the project
	rootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "mkdoc.db", "Path to the local snapshot cache (SQLite)")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "Path to the configuration file")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(translateCmd)
}

var scanCmd = &cobra.Command{
	Use:   "scan [path]",
	Short: "Scan the project and populate the snapshot cache",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		p := pipeline.NewFullGenerate(dbPath)
		p.ConfigPath = configPath
		if len(args) > 0 {
			p.ProjectRoot = args[0]
		}

		if err := p.Run(context.Background(), false); err != nil {
			log.Fatalf("Scan failed: %v", err)
		}
		fmt.Printf("🎉 Scan complete! Database: %s\n", dbPath)
	},
}

var generateCmd = &cobra.Command{
	Use:   "generate [path]",
	Short: "Scan the project and write the docstring header and report",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		p := pipeline.NewFullGenerate(dbPath)
		p.ConfigPath = configPath
		if len(args) > 0 {
			p.ProjectRoot = args[0]
		}

		if err := p.Run(context.Background(), true); err != nil {
			log.Fatalf("Generation failed: %v", err)
		}
		fmt.Println("✅ Docstring generation complete.")
	},
}

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Incrementally regenerate docstrings for headers changed since the last run",
	Run: func(cmd *cobra.Command, args []string) {
		u := pipeline.NewIncrementalUpdate(dbPath)
		u.ConfigPath = configPath

		if err := u.Run(context.Background()); err != nil {
			log.Fatalf("Update failed: %v", err)
		}
		fmt.Println("✅ Update complete.")
	},
}

var translateCmd = &cobra.Command{
	Use:   "translate [comment]",
	Short: "Translate one Doxygen comment and print the docstring",
	Long: "Translates a single documentation comment, passed as an argument or on stdin.\n" +
		"Comment markers (/** */, ///, //!) are stripped if present.\n" +
		"Unsupported-command warnings go to stderr.",
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		var comment string
		if len(args) > 0 {
			comment = args[0]
		} else {
			raw, err := io.ReadAll(os.Stdin)
			if err != nil {
				log.Fatalf("Failed to read stdin: %v", err)
			}
			comment = strings.TrimSuffix(string(raw), "\n")
		}

		tr := doxygen.New(cfg.TranslatorOptions(), func(d doxygen.Diagnostic) {
			fmt.Fprintf(os.Stderr, "⚠️ %s\n", d.Message)
		})

		// Output is byte-faithful to the engine, leading newline included.
		fmt.Print(tr.Translate(extractor.CleanComment(comment)))
	},
}
