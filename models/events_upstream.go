package models

import (
	"context"
	"fmt"

	"eventdesk/utils"
)

// EventAPI is the slice of the upstream client the service needs; declared
// here so the service stays decoupled from the HTTP package.
type EventAPI interface {
	ListEvents(ctx context.Context, pageNumber, pageSize int) (*EventListResponse, error)
	CreateUpdate(ctx context.Context, e *Event) (*CreateUpdateResponse, error)
	DeleteEvent(ctx context.Context, id string) (*DeleteResponse, error)
}

type upstreamEventService struct {
	api   EventAPI
	cache *utils.QueryCache // optional; nil disables caching
}

func NewUpstreamEventService(api EventAPI, cache *utils.QueryCache) EventService {
	return &upstreamEventService{api: api, cache: cache}
}

// List fetches one page, read-through cached per (pageNumber, pageSize).
// Fetched pages get their timestamps normalized to RFC 3339 UTC before
// anything downstream sees them.
func (s *upstreamEventService) List(ctx context.Context, pageNumber, pageSize int) (*EventListResponse, error) {
	if pageNumber < 1 {
		pageNumber = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	params := fmt.Sprintf("pageNumber=%d&pageSize=%d", pageNumber, pageSize)

	if s.cache != nil {
		var hit EventListResponse
		if s.cache.Get(ctx, utils.OpEventsList, params, &hit) {
			return &hit, nil
		}
	}

	resp, err := s.api.ListEvents(ctx, pageNumber, pageSize)
	if err != nil {
		return nil, err
	}

	// Deleting the last row of the last page leaves the cursor past the
	// end. Clamp to the last valid page rather than rendering an empty one.
	if resp.Success && len(resp.Result.Data) == 0 && resp.Result.TotalRecords > 0 {
		last := int((resp.Result.TotalRecords + int64(pageSize) - 1) / int64(pageSize))
		if last >= 1 && pageNumber > last {
			return s.List(ctx, last, pageSize)
		}
	}

	for i := range resp.Result.Data {
		resp.Result.Data[i].StartTime = utils.NormalizeISO(resp.Result.Data[i].StartTime)
		resp.Result.Data[i].EndTime = utils.NormalizeISO(resp.Result.Data[i].EndTime)
	}

	if s.cache != nil && resp.Success {
		s.cache.Set(ctx, utils.OpEventsList, params, resp)
	}
	return resp, nil
}

// Save forwards to the single create-or-update endpoint; the sentinel id
// discriminates. Invalidation is the caller's side effect, not ours.
func (s *upstreamEventService) Save(ctx context.Context, e *Event) (*CreateUpdateResponse, error) {
	return s.api.CreateUpdate(ctx, e)
}

func (s *upstreamEventService) Delete(ctx context.Context, id string) (*DeleteResponse, error) {
	return s.api.DeleteEvent(ctx, id)
}
