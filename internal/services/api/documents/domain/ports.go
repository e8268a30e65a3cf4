package domain

import "context"

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	Preprocess(ctx context.Context, in PreprocessInput) (Result, error)
	Segment(ctx context.Context, in SegmentInput) (SegmentOutput, error)
	Batch(ctx context.Context, in BatchInput) (BatchOutput, error)
	Get(ctx context.Context, in LookupInput) (StoredDocument, error)
	Sentences(ctx context.Context, in LookupInput) ([]Sentence, error)
}

// InfoPort reports how documents are processed
type InfoPort interface {
	PipelineInfo() PipelineInfo
}
