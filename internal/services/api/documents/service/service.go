// Package service runs documents through the pipeline and optionally stores them
package service

import (
	"context"
	"runtime"
	"time"

	"textprep/internal/core/langhint"
	"textprep/internal/core/pipeline"
	"textprep/internal/modkit/repokit"
	perr "textprep/internal/platform/errors"
	"textprep/internal/platform/logger"
	"textprep/internal/services/api/documents/domain"
	"textprep/internal/services/api/documents/repo"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Service is the documents service contract
type Service interface {
	domain.ServicePort
	domain.InfoPort
}

// Options tune the service; zero values are usable
type Options struct {
	// DB is the postgres seam, nil when persistence is off
	DB repokit.TxRunner

	// Binder builds the postgres repo; nil means repo.NewPG()
	Binder repokit.Binder[repo.Repo]

	// Sentences receives sentence rows; nil means a no-op store
	Sentences repo.Sentences

	// Workers bounds batch concurrency; zero means GOMAXPROCS
	Workers int

	Now   func() time.Time
	NewID func() uuid.UUID
}

// Svc implements Service
type Svc struct {
	pipe      *pipeline.Pipeline
	db        repokit.TxRunner
	binder    repokit.Binder[repo.Repo]
	sentences repo.Sentences
	workers   int
	now       func() time.Time
	newID     func() uuid.UUID
}

// New constructs the service around p
func New(p *pipeline.Pipeline, opt Options) *Svc {
	if p == nil {
		panic("documents.Service requires a non nil pipeline")
	}
	s := &Svc{
		pipe:      p,
		db:        opt.DB,
		binder:    opt.Binder,
		sentences: opt.Sentences,
		workers:   opt.Workers,
		now:       opt.Now,
		newID:     opt.NewID,
	}
	if s.binder == nil {
		s.binder = repo.NewPG()
	}
	if s.sentences == nil {
		s.sentences = repo.NewSentences(nil)
	}
	if s.workers <= 0 {
		s.workers = runtime.GOMAXPROCS(0)
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newID == nil {
		s.newID = uuid.New
	}
	return s
}

// PipelineInfo reports the locale and stage order
func (s *Svc) PipelineInfo() domain.PipelineInfo {
	return domain.PipelineInfo{
		Locale:     s.pipe.Locale(),
		Stages:     s.pipe.Stages(),
		Persistent: s.db != nil,
	}
}

// Preprocess cleans and segments one text, storing it when asked
func (s *Svc) Preprocess(ctx context.Context, in domain.PreprocessInput) (domain.Result, error) {
	if in.Persist && s.db == nil {
		return domain.Result{}, errNotPersistent()
	}
	d := s.process(in.Text)
	if in.Persist {
		d.ID = s.newID()
		if err := s.persist(ctx, []domain.Document{d}); err != nil {
			return domain.Result{}, err
		}
	}
	return domain.ResultFrom(d), nil
}

// Segment splits text as given, without the cleanup stages
func (s *Svc) Segment(_ context.Context, in domain.SegmentInput) (domain.SegmentOutput, error) {
	seg := s.pipe.Segmenter()
	return domain.SegmentOutput{
		Sentences: seg.Segment(in.Text),
		Spans:     seg.Spans(in.Text),
	}, nil
}

// Batch processes items concurrently; results keep input order
func (s *Svc) Batch(ctx context.Context, in domain.BatchInput) (domain.BatchOutput, error) {
	if len(in.Items) > domain.MaxBatch {
		return domain.BatchOutput{}, perr.InvalidArgf("batch holds %d items, limit is %d", len(in.Items), domain.MaxBatch)
	}
	if in.Persist && s.db == nil {
		return domain.BatchOutput{}, errNotPersistent()
	}

	docs := make([]domain.Document, len(in.Items))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, text := range in.Items {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			docs[i] = s.process(text)
			if in.Persist {
				docs[i].ID = s.newID()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return domain.BatchOutput{}, perr.Wrap(err, perr.ErrorCodeUnavailable, "batch cancelled")
	}

	if in.Persist {
		if err := s.persist(ctx, docs); err != nil {
			return domain.BatchOutput{}, err
		}
	}

	out := domain.BatchOutput{Count: len(docs), Results: make([]domain.Result, len(docs))}
	for i, d := range docs {
		out.Results[i] = domain.ResultFrom(d)
	}
	return out, nil
}

// Get loads a stored document
func (s *Svc) Get(ctx context.Context, in domain.LookupInput) (domain.StoredDocument, error) {
	id, err := s.lookup(in)
	if err != nil {
		return domain.StoredDocument{}, err
	}
	d, err := repokit.MustBind(s.binder, s.db).Get(ctx, id)
	if err != nil {
		return domain.StoredDocument{}, err
	}
	return domain.StoredDocument{Result: domain.ResultFrom(d), CreatedAt: d.CreatedAt}, nil
}

// Sentences lists the stored sentence rows of a document
func (s *Svc) Sentences(ctx context.Context, in domain.LookupInput) ([]domain.Sentence, error) {
	if !s.sentences.Enabled() {
		return nil, perr.Unavailablef("sentence store is not configured")
	}
	id, err := uuid.Parse(in.ID)
	if err != nil {
		return nil, perr.WithField(perr.InvalidArgf("id is not a uuid"), "id")
	}
	return s.sentences.List(ctx, id)
}

func (s *Svc) lookup(in domain.LookupInput) (uuid.UUID, error) {
	if s.db == nil {
		return uuid.Nil, errNotPersistent()
	}
	id, err := uuid.Parse(in.ID)
	if err != nil {
		return uuid.Nil, perr.WithField(perr.InvalidArgf("id is not a uuid"), "id")
	}
	return id, nil
}

// process runs the pipeline and tags the result with its script
func (s *Svc) process(text string) domain.Document {
	res := s.pipe.Preprocess(text)
	script, lang := langhint.DetectScriptAndLang(res.Clean)
	return domain.Document{
		Locale:    s.pipe.Locale(),
		Script:    script,
		Lang:      lang,
		Raw:       res.Raw,
		Clean:     res.Clean,
		Sentences: res.Sentences,
		CreatedAt: s.now().UTC().Truncate(time.Millisecond),
	}
}

// persist writes docs in one postgres transaction, retried on serialization
// conflicts, then their sentences to
// the columnar store. A failed sentence write is logged, not returned: the
// documents are already committed
func (s *Svc) persist(ctx context.Context, docs []domain.Document) error {
	insert := func(q repokit.Queryer) error {
		r := repokit.MustBind(s.binder, q)
		for _, d := range docs {
			if err := r.Insert(ctx, d); err != nil {
				return err
			}
		}
		return nil
	}
	for attempt := 1; ; attempt++ {
		err := repokit.WithTx(ctx, s.db, insert)
		if err == nil {
			break
		}
		if attempt == txAttempts || !perr.Retryable(err) {
			return err
		}
		logger.C(ctx).Warn().Err(err).Int("attempt", attempt).Msg("document insert conflicted, retrying")
	}

	var rows []domain.Sentence
	seg := s.pipe.Segmenter()
	for _, d := range docs {
		for i, sp := range seg.Spans(d.Clean) {
			rows = append(rows, domain.Sentence{
				DocumentID: d.ID,
				Ordinal:    i,
				Text:       sp.Text,
				Start:      sp.Start,
				End:        sp.End,
				Locale:     d.Locale,
				CreatedAt:  d.CreatedAt,
			})
		}
	}
	if err := s.sentences.Write(ctx, rows); err != nil {
		logger.C(ctx).Error().Err(err).Int("documents", len(docs)).Msg("sentence write failed")
	}

	for _, d := range docs {
		logger.C(logger.WithDocument(ctx, d.ID.String())).Debug().
			Int("sentences", len(d.Sentences)).Msg("document stored")
	}
	return nil
}

// txAttempts bounds retries of a document transaction that hit a transient
// Postgres conflict
const txAttempts = 3

func errNotPersistent() error {
	return perr.Unavailablef("persistence is not configured")
}
