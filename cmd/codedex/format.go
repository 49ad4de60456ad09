package main

import (
	"fmt"
	"strings"

	"github.com/NYTEMODEONLY/codedexpro/internal/cli"
	"github.com/NYTEMODEONLY/codedexpro/internal/codes"
	"github.com/spf13/cobra"
)

func formatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "format [files...]",
		Short: "Lay out a list of codes in blocks of ten",
		Long: `Read codes (one per line) from files or stdin, drop repeats, and print
one block or the whole list in the chosen layout.

Lines that are blank or start with '#' are skipped, so earlier exports can
be fed back in.`,
		Example: `  # Second block of ten as a comma-separated line
  codedex format codes.txt --block 2 --format comma

  # Every block with its label
  codedex format codes.txt --list-blocks`,
		RunE: runFormat,
	}

	cmd.Flags().StringP("format", "f", "", "layout: numbered, raw, space or comma (default from config)")
	cmd.Flags().IntP("block", "b", 0, "print only this block of ten (1-based)")
	cmd.Flags().Bool("list-blocks", false, "print every block with its label")
	cmd.Flags().Bool("header", false, "include the copy header in numbered output")

	return cmd
}

func runFormat(cmd *cobra.Command, args []string) error {
	f, err := resolveFormat(cmd)
	if err != nil {
		return err
	}
	blockNum, _ := cmd.Flags().GetInt("block")
	listBlocks, _ := cmd.Flags().GetBool("list-blocks")
	header, _ := cmd.Flags().GetBool("header")

	input, err := readCodeInputs(cmd.Context(), cmd, args)
	if err != nil {
		return err
	}
	all := collect(input).All()

	out := cmd.OutOrStdout()
	if len(all) == 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), cli.FormatWarning(codes.EmptyStoreMessage))
		return nil
	}

	render := codes.RenderClipboard
	if header {
		render = codes.Render
	}

	if listBlocks {
		blocks := codes.Blocks(all)
		sections := make([]string, 0, len(blocks))
		for _, b := range blocks {
			sections = append(sections, cli.FormatTitle(b.Label())+"\n"+strings.TrimSuffix(render(b, f), "\n"))
		}
		fmt.Fprintln(out, strings.Join(sections, "\n\n"))
		return nil
	}

	sel := codes.All
	if blockNum != 0 {
		sel = codes.BlockAt(blockNum - 1)
		if blockNum < 1 || codes.Select(all, sel).Empty() {
			fmt.Fprintln(cmd.ErrOrStderr(), cli.FormatWarning(codes.EmptyBlockMessage))
			return nil
		}
	}

	fmt.Fprintln(out, strings.TrimSuffix(render(codes.Select(all, sel), f), "\n"))
	return nil
}
