package pipeline

import (
	"context"
	"log/slog"
)

// Worker processes queued generation jobs.
type Worker struct {
	gen *Generator
	log *slog.Logger
}

func NewWorker(gen *Generator, log *slog.Logger) *Worker {
	return &Worker{gen: gen, log: log}
}

// Process runs one job to completion. Failures are recorded on the job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "kind", job.Kind)

	job.SetStatus(StatusGenerating, "generating")
	gen, err := w.gen.Generate(ctx, job.Request())
	if err != nil {
		log.Error("job failed", "error", err)
		job.Fail("generating", err)
		return
	}

	job.Complete(gen)
	log.Info("job completed", "model", gen.Data.Model, "duration_ms", gen.Data.Duration.Milliseconds())
}
