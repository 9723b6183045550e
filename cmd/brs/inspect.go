package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/arloliu/brs"
)

func newInspectCmd(_ *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file>",
		Short: "Print the header of a save file",
		Long:  "Print identity, catalog sizes, preview and per-block sizes without decoding bricks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			summary, err := brs.Inspect(f)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}

			return printSummary(cmd.OutOrStdout(), args[0], summary)
		},
	}
}

func printSummary(w io.Writer, name string, s *brs.Summary) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	host := s.Identity.ResolvedHost()
	fmt.Fprintf(tw, "file:\t%s\n", name)
	fmt.Fprintf(tw, "version:\t%d\n", s.Version)
	fmt.Fprintf(tw, "game version:\t%d\n", s.GameVersion)
	fmt.Fprintf(tw, "map:\t%s\n", s.Identity.Map)
	fmt.Fprintf(tw, "author:\t%s (%s)\n", s.Identity.Author.Name, s.Identity.Author.ID)
	fmt.Fprintf(tw, "host:\t%s (%s)\n", host.Name, host.ID)
	fmt.Fprintf(tw, "description:\t%s\n", s.Identity.Description)
	fmt.Fprintf(tw, "bricks:\t%d\n", s.Identity.BrickCount)
	fmt.Fprintf(tw, "mods:\t%d\n", len(s.Catalog.Mods))
	fmt.Fprintf(tw, "brick assets:\t%d\n", len(s.Catalog.BrickAssets))
	fmt.Fprintf(tw, "colors:\t%d\n", len(s.Catalog.Colors))
	fmt.Fprintf(tw, "materials:\t%d\n", len(s.Catalog.Materials))
	fmt.Fprintf(tw, "owners:\t%d\n", len(s.Catalog.BrickOwners))
	fmt.Fprintf(tw, "physical materials:\t%d\n", len(s.Catalog.PhysicalMaterials))
	fmt.Fprintf(tw, "preview:\t%s (%d bytes)\n", s.PreviewType, s.PreviewSize)
	fmt.Fprintf(tw, "size:\t%d bytes\n", s.WireSize())

	fmt.Fprintln(tw, "\nblock\tstorage\tsize\tstored\tratio\txxh64")
	for _, b := range s.Blocks {
		storage := "zlib"
		if b.Stored() {
			storage = "raw"
		}

		digest := "-"
		if b.Digest != 0 {
			digest = fmt.Sprintf("%016x", b.Digest)
		}

		stats := b.Stats()
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%.2f\t%s\n",
			b.Name, storage, stats.OriginalSize, stats.CompressedSize, stats.CompressionRatio(), digest)
	}

	return tw.Flush()
}
