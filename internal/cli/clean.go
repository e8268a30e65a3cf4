package cli

import (
	"context"
	"encoding/json"
	"runtime"
	"strconv"
	"strings"

	"textprep/internal/platform/config"
	perr "textprep/internal/platform/errors"
	"textprep/internal/platform/logger"
	"textprep/internal/platform/net/http/bind"
	"textprep/internal/platform/store"
	"textprep/internal/services/api/documents/domain"
	"textprep/internal/services/api/documents/repo"
	"textprep/internal/services/api/documents/service"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// record is one --jsonl input line
type record struct {
	Ref  string  `json:"id"`
	Text *string `json:"text" validate:"required"`
}

// cleaned is one output line
type cleaned struct {
	Line int    `json:"line"`
	Ref  string `json:"ref,omitempty"`
	domain.Result
}

// openStore is a seam so tests can run --persist without databases
var openStore = func(ctx context.Context) (*store.Store, error) {
	return store.Open(ctx, store.FromConfig(config.New(), "textprep", "cli"), store.WithLogger(*logger.Get()))
}

func cleanCmd(f *flags) *cobra.Command {
	var (
		jsonl   bool
		persist bool
	)
	cmd := &cobra.Command{
		Use:   "clean [file]",
		Short: "Clean and segment each input line, writing one JSON result per line",
		Long: `clean reads plain text lines (or JSONL records with a "text" field when
--jsonl is set) from the file or stdin and writes one JSON result per input line,
in input order. --persist stores every document using SERVICE_PGSQL_DBURL and
SERVICE_CLICKHOUSE_DBURL.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			pipe, err := f.pipeline()
			if err != nil {
				return err
			}
			in, err := input(cmd, args)
			if err != nil {
				return err
			}
			defer in.Close()
			raw, err := lines(in)
			if err != nil {
				return err
			}
			items, err := parseItems(raw, jsonl)
			if err != nil {
				return err
			}

			opt := service.Options{Workers: f.workers}
			if persist {
				st, err := openStore(ctx)
				if err != nil {
					return err
				}
				defer func() { _ = st.Close(context.Background()) }()
				if st.PG == nil {
					return perr.Unavailablef("--persist needs SERVICE_PGSQL_DBURL")
				}
				if err := repo.Migrate(ctx, st.PG, st.CH); err != nil {
					return err
				}
				opt.DB, opt.Sentences = st.PG, repo.NewSentences(st.CH)
			}
			svc := service.New(pipe, opt)

			out, err := process(ctx, svc, items, persist, f.workers)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetEscapeHTML(false)
			for _, o := range out {
				if err := enc.Encode(o); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonl, "jsonl", false, `input lines are JSON records with a "text" field`)
	cmd.Flags().BoolVar(&persist, "persist", false, "store documents in the configured databases")
	return cmd
}

type item struct {
	line int
	ref  string
	text string
}

func parseItems(raw []string, jsonl bool) ([]item, error) {
	out := make([]item, 0, len(raw))
	for i, l := range raw {
		it := item{line: i + 1, text: l}
		if jsonl && strings.TrimSpace(l) == "" {
			continue
		}
		if jsonl {
			var rec record
			if err := json.Unmarshal([]byte(l), &rec); err != nil {
				return nil, perr.Wrapf(err, perr.ErrorCodeJSON, "line %d", it.line)
			}
			if err := bind.Validate(rec); err != nil {
				return nil, perr.WithOp(err, "line "+strconv.Itoa(it.line))
			}
			it.ref, it.text = rec.Ref, *rec.Text
		}
		out = append(out, it)
	}
	return out, nil
}

// process runs items through svc concurrently; results keep input order
func process(ctx context.Context, svc *service.Svc, items []item, persist bool, workers int) ([]cleaned, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	out := make([]cleaned, len(items))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, it := range items {
		g.Go(func() error {
			res, err := svc.Preprocess(gctx, domain.PreprocessInput{Text: it.text, Persist: persist})
			if err != nil {
				return perr.WithOp(err, "line "+strconv.Itoa(it.line))
			}
			out[i] = cleaned{Line: it.line, Ref: it.ref, Result: res}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
