package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"scribe/internal/presets"
)

func newPresetsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List named presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := presets.Load(presets.DefaultPath())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			names := file.Names()
			if len(names) == 0 {
				fmt.Fprintf(out, "No presets defined; create %s to add some\n", presets.DefaultPath())
				return nil
			}

			rows := make([][]string, 0, len(names))
			for _, name := range names {
				preset := file.Presets[name]
				var parts []string
				if preset.Model != "" {
					parts = append(parts, "model="+preset.Model)
				}
				if preset.Language != "" {
					parts = append(parts, "language="+preset.Language)
				}
				if preset.Task != "" {
					parts = append(parts, "task="+preset.Task)
				}
				if len(preset.OutputFormats) > 0 {
					parts = append(parts, "formats="+strings.Join(preset.OutputFormats, ","))
				}
				rows = append(rows, []string{name, strings.Join(parts, " ")})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Preset", "Settings"},
				rows,
				[]columnAlignment{alignLeft, alignLeft},
			))
			return nil
		},
	}
}
