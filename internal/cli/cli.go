// Package cli is the textprep command line: clean, segment, locales and version
package cli

import (
	"bufio"
	"context"
	"io"
	"os"

	"textprep/internal/core/locale"
	"textprep/internal/core/pipeline"
	perr "textprep/internal/platform/errors"
	"textprep/internal/platform/logger"

	"github.com/spf13/cobra"
)

// maxLine caps one input line or JSONL record
const maxLine = 16 << 20

type flags struct {
	locale     string
	localeFile string
	stripHTML  bool
	noRepair   bool
	workers    int
}

// NewRoot builds the command tree
func NewRoot() *cobra.Command {
	f := &flags{}
	root := &cobra.Command{
		Use:           "textprep",
		Short:         "Clean and segment Ukrainian text",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&f.locale, "locale", locale.DefaultCode, "embedded language pack code")
	pf.StringVar(&f.localeFile, "locale-file", "", "path to a JSON language pack; overrides --locale")
	pf.BoolVar(&f.stripHTML, "strip-html", false, "strip markup before cleaning")
	pf.BoolVar(&f.noRepair, "no-repair", false, "skip mojibake repair")
	pf.IntVar(&f.workers, "workers", 0, "concurrent documents; 0 means GOMAXPROCS")

	root.AddCommand(cleanCmd(f), segmentCmd(f), localesCmd(), versionCmd())
	return root
}

// Execute runs the root command and returns the process exit code
func Execute(ctx context.Context) int {
	root := NewRoot()
	if err := root.ExecuteContext(ctx); err != nil {
		root.PrintErrln("textprep:", err)
		return 1
	}
	return 0
}

// pipeline builds the pipeline the flags describe
func (f *flags) pipeline() (*pipeline.Pipeline, error) {
	opt := pipeline.Options{
		Locale:    f.locale,
		StripHTML: f.stripHTML,
		NoRepair:  f.noRepair,
		Logger:    logger.Named("pipeline"),
	}
	if f.localeFile != "" {
		b, err := os.ReadFile(f.localeFile)
		if err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "read locale file %s", f.localeFile)
		}
		pack, err := locale.Parse(b)
		if err != nil {
			return nil, err
		}
		opt.Pack = pack
	}
	return pipeline.New(opt)
}

// input opens args[0], or stdin when there is no argument or it is "-"
func input(cmd *cobra.Command, args []string) (io.ReadCloser, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	fh, err := os.Open(args[0])
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeNotFound, "open %s", args[0])
	}
	return fh, nil
}

// lines reads every line of r
func lines(r io.Reader) ([]string, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64<<10), maxLine)
	var out []string
	for sc.Scan() {
		out = append(out, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeInvalidArgument, "read input")
	}
	return out, nil
}
