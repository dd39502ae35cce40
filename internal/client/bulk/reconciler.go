package bulk

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/vidbatch/internal/client/client"
	"github.com/dmitrijs2005/vidbatch/internal/client/models"
	"github.com/dmitrijs2005/vidbatch/internal/logging"
)

var ErrEmptySelection = errors.New("nothing selected")

// ItemFunc performs the operation on one item.
type ItemFunc func(ctx context.Context, item string) error

// BatchFunc performs the operation on all items in one call.
type BatchFunc func(ctx context.Context, items []string) (client.BulkOutcome, error)

// ListFunc returns the ids of every item currently visible.
type ListFunc func(ctx context.Context) ([]string, error)

type Reconciler struct {
	// Concurrency caps in-flight item operations. Zero or less dispatches
	// every item at once.
	Concurrency int
	Logger      logging.Logger
}

func New(concurrency int, log logging.Logger) *Reconciler {
	return &Reconciler{Concurrency: concurrency, Logger: log}
}

func (r *Reconciler) logger() logging.Logger {
	if r == nil || r.Logger == nil {
		return logging.Nop()
	}
	return r.Logger
}

// Each runs op for every item and waits for all of them.
func (r *Reconciler) Each(ctx context.Context, items []string, op ItemFunc) (models.BulkResult, error) {
	if len(items) == 0 {
		return models.BulkResult{}, ErrEmptySelection
	}

	errs := make([]error, len(items))

	var g errgroup.Group
	if r != nil && r.Concurrency > 0 {
		g.SetLimit(r.Concurrency)
	}
	for i, item := range items {
		g.Go(func() error {
			errs[i] = safeCall(ctx, op, item)
			return nil
		})
	}
	_ = g.Wait()

	res := models.BulkResult{Attempted: len(items)}
	log := r.logger()
	for i, err := range errs {
		if err == nil {
			res.Succeeded++
			continue
		}
		res.Failed++
		res.FailedItems = append(res.FailedItems, items[i])
		log.Warn(ctx, "bulk item failed", "item", items[i], "error", err)
	}
	return res, nil
}

func safeCall(ctx context.Context, op ItemFunc, item string) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
		}
	}()
	return op(ctx, item)
}

// Batch runs one bulk call for all items. A failed call marks every item
// failed; otherwise the backend counts are clamped to the input size and
// reconciled with the failures it names.
func (r *Reconciler) Batch(ctx context.Context, items []string, op BatchFunc) (models.BulkResult, error) {
	if len(items) == 0 {
		return models.BulkResult{}, ErrEmptySelection
	}
	n := len(items)
	log := r.logger()

	out, err := op(ctx, items)
	if err != nil {
		log.Warn(ctx, "bulk call failed", "items", n, "error", err)
		return models.BulkResult{
			Attempted:   n,
			Failed:      n,
			FailedItems: append([]string(nil), items...),
		}, nil
	}

	listed := members(items, out.FailedItems)

	succeeded := min(max(out.Succeeded, 0), n)
	failed := n - succeeded
	if len(listed) > failed {
		failed = len(listed)
		succeeded = n - failed
	}
	if out.Succeeded != succeeded || out.Failed != failed {
		log.Debug(ctx, "bulk counts reconciled",
			"reported_ok", out.Succeeded, "reported_failed", out.Failed,
			"ok", succeeded, "failed", failed)
	}
	if failed > 0 {
		log.Warn(ctx, "bulk call partially failed", "failed", failed, "items", n)
	}

	return models.BulkResult{
		Attempted:   n,
		Succeeded:   succeeded,
		Failed:      failed,
		FailedItems: listed,
	}, nil
}

// members returns the entries of listed that appear in items, deduplicated,
// in input order.
func members(items, listed []string) []string {
	if len(listed) == 0 {
		return nil
	}
	named := make(map[string]struct{}, len(listed))
	for _, it := range listed {
		named[it] = struct{}{}
	}
	var out []string
	for _, it := range items {
		if _, ok := named[it]; ok {
			out = append(out, it)
			delete(named, it)
		}
	}
	return out
}

// Resolve turns a selection into concrete ids. All is resolved by listing
// the current items.
func Resolve(ctx context.Context, sel models.Selection, list ListFunc) ([]string, error) {
	if sel.IsEmpty() {
		return nil, ErrEmptySelection
	}
	if !sel.IsAll() {
		return sel.Resolve(nil), nil
	}
	current, err := list(ctx)
	if err != nil {
		return nil, fmt.Errorf("list current items: %w", err)
	}
	ids := sel.Resolve(current)
	if len(ids) == 0 {
		return nil, ErrEmptySelection
	}
	return ids, nil
}
