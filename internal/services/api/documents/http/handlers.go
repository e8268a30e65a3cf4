// Package http provides the http transport for documents
package http

import (
	stdhttp "net/http"

	"textprep/internal/modkit/httpkit"
	"textprep/internal/services/api/documents/domain"
)

// Options tune body decoding
type Options struct {
	// MaxBody caps a single request body; zero keeps the bind default
	MaxBody int64
}

// Register mounts the documents endpoints on r
func Register(r httpkit.Router, s domain.ServicePort, opt Options) {
	h := &handlers{svc: s}
	body := httpkit.JSONOptions{MaxBytes: opt.MaxBody}

	httpkit.PostJSON(r, "/preprocess", h.preprocess, body)
	httpkit.PostJSON(r, "/segment", h.segment, body)
	httpkit.PostJSON(r, "/batch", h.batch, body)

	httpkit.Get(r, "/{id}", h.get)
	httpkit.Get(r, "/{id}/sentences", h.sentences)
}

type handlers struct{ svc domain.ServicePort }

// swagger:route POST /documents/preprocess Documents documentsPreprocess
// @Summary Clean and segment one text
// @Tags Documents
// @Accept json
// @Produce json
// @Param payload body domain.PreprocessInput true "Text"
// @Success 200 {object} domain.Result "ok"
// @Router /documents/preprocess [post]
func (h *handlers) preprocess(r *stdhttp.Request, in domain.PreprocessInput) (any, error) {
	res, err := h.svc.Preprocess(r.Context(), in)
	if err != nil {
		return nil, err
	}
	if res.ID != "" {
		return httpkit.Created(res), nil
	}
	return res, nil
}

// swagger:route POST /documents/segment Documents documentsSegment
// @Summary Split text into sentences without cleaning it
// @Tags Documents
// @Accept json
// @Produce json
// @Param payload body domain.SegmentInput true "Text"
// @Success 200 {object} domain.SegmentOutput "ok"
// @Router /documents/segment [post]
func (h *handlers) segment(r *stdhttp.Request, in domain.SegmentInput) (any, error) {
	return h.svc.Segment(r.Context(), in)
}

// swagger:route POST /documents/batch Documents documentsBatch
// @Summary Clean and segment up to 500 texts
// @Tags Documents
// @Accept json
// @Produce json
// @Param payload body domain.BatchInput true "Texts"
// @Success 200 {object} domain.BatchOutput "ok"
// @Router /documents/batch [post]
func (h *handlers) batch(r *stdhttp.Request, in domain.BatchInput) (any, error) {
	return h.svc.Batch(r.Context(), in)
}

// @Summary Fetch a stored document
// @Tags Documents
// @Produce json
// @Param id path string true "Document id"
// @Success 200 {object} domain.StoredDocument "ok"
// @Router /documents/{id} [get]
func (h *handlers) get(r *stdhttp.Request) (any, error) {
	in, err := lookup(r)
	if err != nil {
		return nil, err
	}
	return h.svc.Get(r.Context(), in)
}

// @Summary List the stored sentences of a document
// @Tags Documents
// @Produce json
// @Param id path string true "Document id"
// @Success 200 {array} domain.Sentence "ok"
// @Router /documents/{id}/sentences [get]
func (h *handlers) sentences(r *stdhttp.Request) (any, error) {
	in, err := lookup(r)
	if err != nil {
		return nil, err
	}
	return h.svc.Sentences(r.Context(), in)
}

func lookup(r *stdhttp.Request) (domain.LookupInput, error) {
	in := domain.LookupInput{ID: httpkit.Param(r, "id")}
	return in, httpkit.Validate(in)
}
