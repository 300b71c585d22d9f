// Package commands runs mutations against the upstream and decides
// the recovery path when the upstream refuses a write: succeed locally
// through the fallback store, or surface a real permission problem.
package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"roomstay-admin/internal/domain/resource"
	"roomstay-admin/internal/fallback"
	"roomstay-admin/internal/pkg/errs"
	"roomstay-admin/internal/upstream"
)

// State names the phases a mutation intent moves through. An intent is
// submitted at most once; there is no automatic retry.
type State string

const (
	StateIdle              State = "idle"
	StateSubmitting        State = "submitting"
	StateSucceeded         State = "succeeded"
	StateFailedRecoverable State = "failed-recoverable"
	StateFailedFatal       State = "failed-fatal"
)

// Result is the settled outcome of a mutation. Record is authoritative:
// what the upstream (or the fallback store) returned, never the
// caller's payload. Warning carries a non-fatal secondary failure.
type Result[T any] struct {
	Record    T
	LocalOnly bool
	Warning   error
}

// Asset is a binary attachment uploaded as a second, independent step
// after the record mutation settles.
type Asset struct {
	Filename string
	Content  io.Reader
}

// Uploader performs the resource-specific multipart call.
type Uploader[T any] func(ctx context.Context, id int64, filename string, content io.Reader) (T, error)

type Coordinator[T resource.Mutable[T]] struct {
	kind    resource.Kind
	writer  RecordWriter[T]
	store   FallbackStore
	refresh RefreshFunc
	logger  *slog.Logger

	inflight sync.Map
}

func NewCoordinator[T resource.Mutable[T]](
	kind resource.Kind,
	writer RecordWriter[T],
	store FallbackStore,
	refresh RefreshFunc,
	logger *slog.Logger,
) *Coordinator[T] {
	return &Coordinator[T]{
		kind:    kind,
		writer:  writer,
		store:   store,
		refresh: refresh,
		logger:  logger,
	}
}

func (co *Coordinator[T]) Create(ctx context.Context, payload T) (*Result[T], error) {
	release, err := co.begin("create")
	if err != nil {
		return nil, err
	}
	defer release()

	if err := payload.Validate(); err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	rec, err := co.writer.Create(ctx, payload)
	if err == nil {
		co.settle("create", StateSucceeded)
		co.refreshAfter(ctx)
		return &Result[T]{Record: rec}, nil
	}

	if !upstream.IsKind(err, upstream.KindForbidden) {
		co.settle("create", StateFailedFatal)
		return nil, err
	}

	// The upstream is write-restricted for this caller. A create has
	// no upstream owner to protect, so the write succeeds locally.
	co.settle("create", StateFailedRecoverable)
	local, err := co.synthesize(ctx, payload)
	if err != nil {
		return nil, err
	}
	co.settle("create", StateSucceeded)
	co.refreshAfter(ctx)
	return &Result[T]{Record: local, LocalOnly: true}, nil
}

func (co *Coordinator[T]) Update(ctx context.Context, id int64, payload T) (*Result[T], error) {
	release, err := co.begin(fmt.Sprintf("update:%d", id))
	if err != nil {
		return nil, err
	}
	defer release()

	if err := payload.Validate(); err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	entry, err := co.store.Get(ctx, co.kind, id)
	if err != nil {
		return nil, err
	}

	// Locally-created records do not exist upstream; the edit applies
	// straight to the store.
	if entry != nil && entry.Origin == fallback.OriginLocalCreate {
		local, err := co.overlay(ctx, id, payload, fallback.OriginLocalCreate)
		if err != nil {
			return nil, err
		}
		co.settle("update", StateSucceeded)
		co.refreshAfter(ctx)
		return &Result[T]{Record: local, LocalOnly: true}, nil
	}

	rec, err := co.writer.Update(ctx, id, payload)
	if err == nil {
		// A successful upstream write supersedes any overlay for the id.
		if entry != nil {
			if rerr := co.store.Remove(ctx, co.kind, id); rerr != nil {
				co.logger.Warn("failed to drop superseded fallback entry", slog.String("error", rerr.Error()))
			}
		}
		co.settle("update", StateSucceeded)
		co.refreshAfter(ctx)
		return &Result[T]{Record: rec}, nil
	}

	if upstream.IsKind(err, upstream.KindForbidden) {
		if entry == nil {
			// Upstream-owned record: faking success locally would hide
			// a real permission problem.
			co.settle("update", StateFailedFatal)
			return nil, errs.Mark(err, errs.ErrNotOwnedByCaller)
		}
		co.settle("update", StateFailedRecoverable)
		local, lerr := co.overlay(ctx, id, payload, fallback.OriginLocalEdit)
		if lerr != nil {
			return nil, lerr
		}
		co.settle("update", StateSucceeded)
		co.refreshAfter(ctx)
		return &Result[T]{Record: local, LocalOnly: true}, nil
	}

	co.settle("update", StateFailedFatal)
	return nil, err
}

func (co *Coordinator[T]) Delete(ctx context.Context, id int64) error {
	release, err := co.begin(fmt.Sprintf("delete:%d", id))
	if err != nil {
		return err
	}
	defer release()

	entry, err := co.store.Get(ctx, co.kind, id)
	if err != nil {
		return err
	}

	if entry != nil && entry.Origin == fallback.OriginLocalCreate {
		if err := co.store.Remove(ctx, co.kind, id); err != nil {
			return err
		}
		co.settle("delete", StateSucceeded)
		co.refreshAfter(ctx)
		return nil
	}

	err = co.writer.Delete(ctx, id)
	if err == nil {
		if entry != nil {
			if rerr := co.store.Remove(ctx, co.kind, id); rerr != nil {
				co.logger.Warn("failed to drop superseded fallback entry", slog.String("error", rerr.Error()))
			}
		}
		co.settle("delete", StateSucceeded)
		co.refreshAfter(ctx)
		return nil
	}

	if upstream.IsKind(err, upstream.KindForbidden) {
		if entry == nil {
			co.settle("delete", StateFailedFatal)
			return errs.Mark(err, errs.ErrNotOwnedByCaller)
		}
		co.settle("delete", StateFailedRecoverable)
		if rerr := co.store.Remove(ctx, co.kind, id); rerr != nil {
			return rerr
		}
		co.settle("delete", StateSucceeded)
		co.refreshAfter(ctx)
		return nil
	}

	co.settle("delete", StateFailedFatal)
	return err
}

// CreateWithAsset runs the create, then the upload as an independent
// second step. Upload failure never rolls back the settled create; it
// comes back as Result.Warning.
func (co *Coordinator[T]) CreateWithAsset(ctx context.Context, payload T, upload Uploader[T], asset *Asset) (*Result[T], error) {
	res, err := co.Create(ctx, payload)
	if err != nil || asset == nil {
		return res, err
	}
	co.attachAsset(ctx, res, upload, asset)
	return res, nil
}

func (co *Coordinator[T]) UpdateWithAsset(ctx context.Context, id int64, payload T, upload Uploader[T], asset *Asset) (*Result[T], error) {
	res, err := co.Update(ctx, id, payload)
	if err != nil || asset == nil {
		return res, err
	}
	co.attachAsset(ctx, res, upload, asset)
	return res, nil
}

// UploadAsset attaches a binary to an existing record outside any
// create/update, e.g. replacing an avatar.
func (co *Coordinator[T]) UploadAsset(ctx context.Context, id int64, upload Uploader[T], asset Asset) (T, error) {
	rec, err := upload(ctx, id, asset.Filename, asset.Content)
	if err != nil {
		var zero T
		return zero, errs.Mark(err, errs.ErrAssetUploadFailed)
	}
	co.refreshAfter(ctx)
	return rec, nil
}

func (co *Coordinator[T]) attachAsset(ctx context.Context, res *Result[T], upload Uploader[T], asset *Asset) {
	if res.LocalOnly {
		// Nothing upstream to attach to.
		res.Warning = errs.Mark(errs.New("record exists only locally, asset not uploaded"), errs.ErrAssetUploadFailed)
		return
	}
	rec, err := upload(ctx, res.Record.RecordID(), asset.Filename, asset.Content)
	if err != nil {
		res.Warning = errs.Mark(err, errs.ErrAssetUploadFailed)
		return
	}
	res.Record = rec
	co.refreshAfter(ctx)
}

// synthesize gives the payload a fresh local id and persists it as a
// locally-created record.
func (co *Coordinator[T]) synthesize(ctx context.Context, payload T) (T, error) {
	var zero T
	id, err := co.store.NextLocalID(ctx, co.kind)
	if err != nil {
		return zero, err
	}
	local := payload.WithID(id)
	raw, err := json.Marshal(local)
	if err != nil {
		return zero, errs.Wrap(err, "failed to encode fallback record")
	}
	if err := co.store.Upsert(ctx, co.kind, id, fallback.OriginLocalCreate, raw); err != nil {
		return zero, err
	}
	return local, nil
}

func (co *Coordinator[T]) overlay(ctx context.Context, id int64, payload T, origin fallback.Origin) (T, error) {
	var zero T
	local := payload.WithID(id)
	raw, err := json.Marshal(local)
	if err != nil {
		return zero, errs.Wrap(err, "failed to encode fallback record")
	}
	if err := co.store.Upsert(ctx, co.kind, id, origin, raw); err != nil {
		return zero, err
	}
	return local, nil
}

func (co *Coordinator[T]) refreshAfter(ctx context.Context) {
	if err := co.refresh(ctx); err != nil {
		// The mutation already settled; the stale window will catch up.
		co.logger.Warn("post-mutation refetch failed",
			slog.String("resource", co.kind.String()),
			slog.String("error", err.Error()))
	}
}

// begin guards against a double-submit of the same intent while it is
// in flight.
func (co *Coordinator[T]) begin(intent string) (func(), error) {
	key := co.kind.String() + ":" + intent
	if _, loaded := co.inflight.LoadOrStore(key, struct{}{}); loaded {
		return nil, errs.ErrMutationInFlight
	}
	return func() { co.inflight.Delete(key) }, nil
}

func (co *Coordinator[T]) settle(intent string, s State) {
	co.logger.Debug("mutation state",
		slog.String("resource", co.kind.String()),
		slog.String("intent", intent),
		slog.String("state", string(s)))
}
