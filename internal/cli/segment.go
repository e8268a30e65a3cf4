package cli

import (
	"encoding/json"
	"fmt"
	"io"

	perr "textprep/internal/platform/errors"

	"github.com/spf13/cobra"
)

func segmentCmd(f *flags) *cobra.Command {
	var (
		spans bool
		clean bool
	)
	cmd := &cobra.Command{
		Use:   "segment [file]",
		Short: "Split the whole input into sentences, one per line",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pipe, err := f.pipeline()
			if err != nil {
				return err
			}
			in, err := input(cmd, args)
			if err != nil {
				return err
			}
			defer in.Close()
			b, err := io.ReadAll(io.LimitReader(in, maxLine+1))
			if err != nil {
				return perr.Wrap(err, perr.ErrorCodeInvalidArgument, "read input")
			}
			if len(b) > maxLine {
				return perr.TooLargef("input exceeds %d bytes", maxLine)
			}

			text := string(b)
			if clean {
				text = pipe.Clean(text)
			}
			seg := pipe.Segmenter()
			w := cmd.OutOrStdout()

			if !spans {
				for _, s := range seg.Segment(text) {
					if _, err := fmt.Fprintln(w, s); err != nil {
						return err
					}
				}
				return nil
			}
			enc := json.NewEncoder(w)
			enc.SetEscapeHTML(false)
			for _, sp := range seg.Spans(text) {
				if err := enc.Encode(sp); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&spans, "spans", false, "print JSON spans with byte offsets instead of plain sentences")
	cmd.Flags().BoolVar(&clean, "clean", false, "run the cleanup stages first; offsets then refer to the clean text")
	return cmd
}
