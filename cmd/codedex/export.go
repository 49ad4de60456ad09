package main

import (
	"github.com/NYTEMODEONLY/codedexpro/internal/codes"
	"github.com/spf13/cobra"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [files...]",
		Short: "Export a list of codes to a text or markdown file",
		Long: `Read codes (one per line) from files or stdin, drop repeats, and write
them to a .txt file (one code per line) or a .md document.`,
		Example: `  codedex export scanned.txt --out pokemon_tcg_codes.md --format comma`,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := resolveFormat(cmd)
			if err != nil {
				return err
			}
			out, _ := cmd.Flags().GetString("out")

			input, err := readCodeInputs(cmd.Context(), cmd, args)
			if err != nil {
				return err
			}
			return writeExport(cmd, cmd.OutOrStdout(), out, collect(input).All(), f)
		},
	}

	cmd.Flags().StringP("out", "o", codes.DefaultFileName(codes.ContainerText), "output file")
	cmd.Flags().String("container", "", "txt or md (default from the output extension)")
	cmd.Flags().StringP("format", "f", "", "markdown section layout (default from config)")

	return cmd
}
