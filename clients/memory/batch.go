package memory

import (
	"errors"

	"scriptureCircle/clients/store"
)

// batch applies operations one by one on Flush. A failing operation does not
// stop the others, matching the best-effort semantics of provider batches.
type batch struct {
	opWriter
	s       *Store
	limit   int
	pending []op
}

var _ store.Batch = (*batch)(nil)

func (b *batch) init() *batch {
	b.opWriter = opWriter{push: func(o op) error {
		b.pending = append(b.pending, o)
		if len(b.pending) >= b.limit {
			return b.Flush()
		}
		return nil
	}}
	return b
}

func (b *batch) Flush() error {
	if len(b.pending) == 0 {
		return nil
	}
	ops := b.pending
	b.pending = nil

	b.s.mu.Lock()
	defer b.s.mu.Unlock()
	b.s.batchFlushes++
	var failures []error
	for _, o := range ops {
		if err := o.apply(b.s.data); err != nil {
			failures = append(failures, err)
			continue
		}
		b.s.bump(o.keys...)
	}
	return errors.Join(failures...)
}
