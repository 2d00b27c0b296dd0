package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/viant/diffgate/analyzer"
	"github.com/viant/diffgate/config"
)

type unitsOptions struct {
	configFile string
	format     string
}

// newUnitsCmd creates the units sub command printing the code units of a file or a directory tree
func newUnitsCmd() *cobra.Command {
	options := unitsOptions{configFile: defaultConfigFile, format: config.FormatHuman}
	unitsCmd := &cobra.Command{
		Use:   "units [path]",
		Short: "Print the code units and their classification",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format := strings.ToLower(strings.TrimSpace(options.format))
			if format != config.FormatHuman && format != config.FormatJSON {
				return fmt.Errorf("unsupported format %q, allowed values: human, json", options.format)
			}
			cfg := config.Default()
			if _, err := os.Stat(options.configFile); err == nil || cmd.Flags().Changed("config") {
				if cfg, err = config.Load(cmd.Context(), options.configFile); err != nil {
					return err
				}
			}
			srv, err := analyzer.New(cfg)
			if err != nil {
				return err
			}

			location := args[0]
			stat, err := os.Stat(location)
			if err != nil {
				return err
			}
			var files []*analyzer.FileUnits
			if stat.IsDir() {
				if files, err = srv.InspectDir(cmd.Context(), location); err != nil {
					return err
				}
			} else {
				absPath, err := filepath.Abs(location)
				if err != nil {
					return err
				}
				units, err := srv.InspectFile(cmd.Context(), absPath, filepath.ToSlash(location))
				if err != nil {
					return err
				}
				files = append(files, units)
			}

			if format == config.FormatJSON {
				content, err := json.MarshalIndent(files, "", "  ")
				if err != nil {
					return fmt.Errorf("marshal json: %w", err)
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(content))
				return err
			}
			return printUnits(cmd, files)
		},
	}
	unitsCmd.Flags().StringVar(&options.configFile, "config", options.configFile, "YAML configuration file")
	unitsCmd.Flags().StringVar(&options.format, "format", options.format, "output format: human or json")
	return unitsCmd
}

func printUnits(cmd *cobra.Command, files []*analyzer.FileUnits) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	if _, err := fmt.Fprintln(tw, "FILE\tLINES\tKIND\tVISIBILITY\tUNIT\tCLASSIFICATION"); err != nil {
		return err
	}
	for _, file := range files {
		if file.Skipped != nil {
			if _, err := fmt.Fprintf(tw, "%s\t-\t-\t-\t-\t%s\n", file.Path, file.Skipped.Reason); err != nil {
				return err
			}
			continue
		}
		for i, unit := range file.Forest.Units {
			indent := strings.Repeat("  ", ancestors(file, i))
			if _, err := fmt.Fprintf(
				tw,
				"%s\t%d-%d\t%s\t%s\t%s%s\t%s\n",
				file.Path,
				unit.Span.Start,
				unit.Span.End,
				unit.Kind,
				unit.Visibility,
				indent,
				unit.QualifiedName,
				file.Classifications[i],
			); err != nil {
				return err
			}
		}
	}
	return tw.Flush()
}

func ancestors(file *analyzer.FileUnits, index int) int {
	result := 0
	for parent := file.Forest.Units[index].Parent; parent != -1; parent = file.Forest.Units[parent].Parent {
		result++
	}
	return result
}
