package gcp

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"

	"scriptureCircle/clients/store"
)

// batch queues writes on a BulkWriter and waits for them once limit jobs are
// pending or Flush is called. Writes are independent: one failing job does not
// stop the others.
type batch struct {
	writer
	ctx   context.Context
	limit int
	bw    *firestore.BulkWriter
	jobs  []*firestore.BulkWriterJob
}

var _ store.Batch = (*batch)(nil)

func newBatch(ctx context.Context, f *Firestore, limit int) *batch {
	b := &batch{ctx: ctx, limit: limit}
	b.writer = writer{f: f, sink: b}
	return b
}

func (b *batch) enqueue(job *firestore.BulkWriterJob, err error) error {
	if err != nil {
		return err
	}
	b.jobs = append(b.jobs, job)
	if len(b.jobs) >= b.limit {
		return b.Flush()
	}
	return nil
}

func (b *batch) writerFor() *firestore.BulkWriter {
	if b.bw == nil {
		b.bw = b.f.client.BulkWriter(b.ctx)
	}
	return b.bw
}

func (b *batch) update(ref *firestore.DocumentRef, ups []firestore.Update) error {
	return b.enqueue(b.writerFor().Update(ref, ups))
}

func (b *batch) set(ref *firestore.DocumentRef, data any, opts ...firestore.SetOption) error {
	return b.enqueue(b.writerFor().Set(ref, data, opts...))
}

func (b *batch) create(ref *firestore.DocumentRef, data any) error {
	return b.enqueue(b.writerFor().Create(ref, data))
}

func (b *batch) delete(ref *firestore.DocumentRef) error {
	return b.enqueue(b.writerFor().Delete(ref))
}

func (b *batch) Flush() error {
	if b.bw == nil {
		return nil
	}
	b.bw.End()
	jobs := b.jobs
	b.bw, b.jobs = nil, nil

	var failures []error
	for _, job := range jobs {
		if _, err := job.Results(); err != nil {
			failures = append(failures, err)
		}
	}
	if len(failures) > 0 {
		return fmt.Errorf("%d of %d batched writes failed: %w", len(failures), len(jobs), errors.Join(failures...))
	}
	return nil
}
