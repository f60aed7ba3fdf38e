// internal/datastore/datastore.go
// Object metadata CRUD, blob-key derivation, and CDN presence probing (C9).

package datastore

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"trackday-server/internal/core"
	"trackday-server/internal/models"
	"trackday-server/internal/repositories"
)

const maxSearchSize = 100

// CounterAllocator mints datastore object ids
type CounterAllocator interface {
	Next(ctx context.Context, name string) (uint32, error)
}

// CDN probes object presence over HTTPS; separated from the engine so tests
// can substitute a fake
type CDN interface {
	Head(ctx context.Context, url string) (present bool, contentLength int64, err error)
}

// httpCDN is the production CDN client: an HTTPS HEAD against the
// configured bucket/domain
type httpCDN struct {
	client *http.Client
}

func NewHTTPCDN() CDN {
	return &httpCDN{client: &http.Client{Timeout: 5 * time.Second}}
}

func (c *httpCDN) Head(ctx context.Context, url string) (bool, int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return false, 0, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return false, 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, 0, nil
	}
	return true, resp.ContentLength, nil
}

// Engine implements the datastore metadata + blob surface
type Engine struct {
	repo        *repositories.DatastoreRepository
	cdn         CDN
	bucket      string
	cdnHost     string
}

func NewEngine(repo *repositories.DatastoreRepository, cdn CDN, bucket, cdnHost string) *Engine {
	return &Engine{repo: repo, cdn: cdn, bucket: bucket, cdnHost: cdnHost}
}

// Create mints an id, stamps the owner and persists a new object, returning
// its minted id; the object's fields are stored as given, without validation
func (e *Engine) Create(ctx context.Context, counters CounterAllocator, ownerPID uint32, obj *models.DataStoreObject) (uint32, error) {
	id, err := counters.Next(ctx, repositories.CounterDatastoreObjectID)
	if err != nil {
		return 0, core.Wrap(core.KindInternal, "failed to allocate datastore object id", err)
	}
	obj.DataID = id
	obj.OwnerPID = ownerPID
	if err := e.repo.Insert(ctx, obj); err != nil {
		return 0, core.Wrap(core.KindInternal, "failed to persist datastore object", err)
	}
	return id, nil
}

// ChangeMetaParam carries the full set of updatable metadata fields. Every
// field is required; numeric and string fields are pointers so a field the
// caller never set is distinguishable from one explicitly set to zero/"".
// validate() is what actually enforces the required-field rule — nothing
// upstream of ChangeMeta does.
type ChangeMetaParam struct {
	DataID         *uint32
	ModifiesFlag   *uint32
	Name           *string
	Period         *uint32
	MetaBinary     []byte
	Tags           []string
	UpdatePassword *string
	ReferredCount  *uint32
	DataType       *uint32
	Status         *uint32
}

// validate rejects a ChangeMetaParam missing any required field
func (p ChangeMetaParam) validate() error {
	if p.DataID == nil || p.ModifiesFlag == nil || p.Name == nil || p.Period == nil ||
		p.MetaBinary == nil || p.Tags == nil || p.UpdatePassword == nil ||
		p.ReferredCount == nil || p.DataType == nil || p.Status == nil {
		return core.New(core.KindInvalidArgument, "change_meta requires data_id, modifies_flag, name, period, meta_binary, tags, update_password, referred_count, data_type and status")
	}
	return nil
}

// ChangeMeta applies a structured metadata update
func (e *Engine) ChangeMeta(ctx context.Context, requester uint32, p ChangeMetaParam) error {
	if err := p.validate(); err != nil {
		return err
	}

	obj, err := e.repo.FindByID(ctx, *p.DataID)
	if err != nil {
		return core.Wrap(core.KindInternal, "failed to load datastore object", err)
	}
	if obj == nil {
		return core.ErrInvalidIndex
	}
	if obj.OwnerPID != requester {
		return core.ErrAccessDenied
	}

	obj.Name = *p.Name
	obj.Period = *p.Period
	obj.MetaBinary = p.MetaBinary
	obj.Tags = p.Tags
	obj.UpdatePassword = *p.UpdatePassword
	obj.ReferredCount = *p.ReferredCount
	obj.DataType = *p.DataType
	obj.Status = *p.Status

	return e.repo.Update(ctx, obj)
}

// ObjectInfo is one row of GetObjectInfos's batch response
type ObjectInfo struct {
	DataID        uint32
	Present       bool
	ContentLength int64
	URL           string
}

// GetObjectInfos probes presence for each id with a bounded worker
// fan-out (the original issues one HEAD per id sequentially; this
// generalizes that to concurrent probes without changing the per-id shape)
func (e *Engine) GetObjectInfos(ctx context.Context, pid uint32, persistenceIDs []uint32, objectIDs []uint32) ([]ObjectInfo, error) {
	if len(persistenceIDs) != len(objectIDs) {
		return nil, core.New(core.KindInvalidArgument, "persistence_ids and object_ids must pair up")
	}

	const maxWorkers = 8
	sem := make(chan struct{}, maxWorkers)
	results := make([]ObjectInfo, len(persistenceIDs))
	errCh := make(chan error, len(persistenceIDs))
	done := make(chan struct{}, len(persistenceIDs))

	for i := range persistenceIDs {
		i := i
		sem <- struct{}{}
		go func() {
			defer func() { <-sem; done <- struct{}{} }()

			key := models.BlobKey(persistenceIDs[i], pid, objectIDs[i])
			url := fmt.Sprintf("https://%s.%s/%s", e.bucket, e.cdnHost, key)

			present, length, err := e.cdn.Head(ctx, url)
			if err != nil {
				errCh <- err
				return
			}
			results[i] = ObjectInfo{DataID: objectIDs[i], Present: present, ContentLength: length, URL: url}
		}()
	}

	for range persistenceIDs {
		<-done
	}
	select {
	case err := <-errCh:
		return nil, core.Wrap(core.KindInternal, "object store probe failed", err)
	default:
	}

	return results, nil
}

// SearchObject lists datastore objects, filtered by owner when owner is
// nonzero, oldest first; no other field can be filtered and no search
// operators are applied
func (e *Engine) SearchObject(ctx context.Context, owner uint32, offset, size int) ([]*models.DataStoreObject, error) {
	if size <= 0 || size > maxSearchSize {
		size = maxSearchSize
	}
	filter := repositories.SearchFilter{}
	if owner != 0 {
		filter.Owner = &owner
	}
	return e.repo.Search(ctx, filter, int64(offset), int64(size))
}
