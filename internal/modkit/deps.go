// Package modkit provides module wiring and core deps
package modkit

import (
	"textprep/internal/core/pipeline"
	"textprep/internal/modkit/repokit"
	"textprep/internal/platform/config"
	"textprep/internal/platform/logger"
	"textprep/internal/platform/store"
)

// Deps holds the shared dependencies handed to every module.
// PG and CH are nil when persistence is not configured
type Deps struct {
	Log      logger.Logger
	Cfg      config.Conf
	Pipeline *pipeline.Pipeline
	PG       repokit.TxRunner
	CH       store.Clickhouse
}

// Persistent reports whether either backend is configured
func (d Deps) Persistent() bool { return d.PG != nil || d.CH != nil }

// PipelineOrDefault returns d.Pipeline, falling back to the process default
func (d Deps) PipelineOrDefault() *pipeline.Pipeline {
	if d.Pipeline != nil {
		return d.Pipeline
	}
	return pipeline.Default()
}
