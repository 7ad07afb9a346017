package models_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"eventdesk/models"
	"eventdesk/utils"
)

type fakeAPI struct {
	listCalls int
	pages     map[string]*models.EventListResponse // "page-size"
	listErr   error
	saved     []*models.Event
	deleted   []string
}

func (f *fakeAPI) ListEvents(ctx context.Context, page, size int) (*models.EventListResponse, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	if resp, ok := f.pages[fmt.Sprintf("%d-%d", page, size)]; ok {
		cp := *resp
		return &cp, nil
	}
	return &models.EventListResponse{
		Envelope: models.Envelope{Success: true},
		Result:   models.EventPage{PageNumber: page, PageSize: size},
	}, nil
}

func (f *fakeAPI) CreateUpdate(ctx context.Context, e *models.Event) (*models.CreateUpdateResponse, error) {
	f.saved = append(f.saved, e)
	return &models.CreateUpdateResponse{Envelope: models.Envelope{Success: true, Message: "saved"}}, nil
}

func (f *fakeAPI) DeleteEvent(ctx context.Context, id string) (*models.DeleteResponse, error) {
	f.deleted = append(f.deleted, id)
	return &models.DeleteResponse{
		Envelope: models.Envelope{Success: true, Message: "deleted"},
		Result:   models.DeleteResult{ID: id},
	}, nil
}

func newCache(t *testing.T) *utils.QueryCache {
	t.Helper()
	mr := miniredis.RunT(t)
	t.Cleanup(func() { mr.Close() })
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return utils.NewQueryCache(rdb, 30*time.Second)
}

func onePage(events ...models.Event) *models.EventListResponse {
	return &models.EventListResponse{
		Envelope: models.Envelope{Success: true},
		Result: models.EventPage{
			Data:         events,
			TotalRecords: int64(len(events)),
			PageNumber:   1,
			PageSize:     10,
		},
	}
}

// Two identical list calls hit the upstream once; after invalidation the
// next call refetches exactly once more.
func TestList_CachesAndRefetchesAfterInvalidate(t *testing.T) {
	api := &fakeAPI{pages: map[string]*models.EventListResponse{
		"1-10": onePage(models.Event{ID: "e1", Name: "Launch", StartTime: "2025-03-05T18:30:00Z", EndTime: "2025-03-05T20:00:00Z"}),
	}}
	cache := newCache(t)
	svc := models.NewUpstreamEventService(api, cache)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		resp, err := svc.List(ctx, 1, 10)
		if err != nil {
			t.Fatalf("list err: %v", err)
		}
		if len(resp.Result.Data) != 1 {
			t.Fatalf("want 1 event, got %d", len(resp.Result.Data))
		}
	}
	if api.listCalls != 1 {
		t.Fatalf("want 1 upstream call, got %d", api.listCalls)
	}

	cache.InvalidateEvents(ctx)
	if _, err := svc.List(ctx, 1, 10); err != nil {
		t.Fatalf("list err: %v", err)
	}
	if api.listCalls != 2 {
		t.Fatalf("want exactly one refetch after invalidation, got %d calls", api.listCalls)
	}
}

// Distinct (page, size) pairs cache independently.
func TestList_DistinctPagesCacheSeparately(t *testing.T) {
	api := &fakeAPI{pages: map[string]*models.EventListResponse{}}
	svc := models.NewUpstreamEventService(api, newCache(t))
	ctx := context.Background()

	_, _ = svc.List(ctx, 1, 10)
	_, _ = svc.List(ctx, 2, 10)
	_, _ = svc.List(ctx, 1, 20)
	_, _ = svc.List(ctx, 1, 10) // cached

	if api.listCalls != 3 {
		t.Fatalf("want 3 upstream calls, got %d", api.listCalls)
	}
}

// Fetched timestamps normalize to RFC 3339 UTC before anything sees them.
func TestList_NormalizesTimestamps(t *testing.T) {
	api := &fakeAPI{pages: map[string]*models.EventListResponse{
		"1-10": onePage(models.Event{ID: "e1", StartTime: "2025-03-05T18:30:00.000Z", EndTime: "2025-03-05T20:00:00+02:00"}),
	}}
	svc := models.NewUpstreamEventService(api, nil)

	resp, err := svc.List(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("list err: %v", err)
	}
	e := resp.Result.Data[0]
	if e.StartTime != "2025-03-05T18:30:00Z" {
		t.Fatalf("start not normalized: %q", e.StartTime)
	}
	if e.EndTime != "2025-03-05T18:00:00Z" {
		t.Fatalf("end not normalized: %q", e.EndTime)
	}
}

// A request past the last valid page (e.g. the last row of the last page
// was just deleted) clamps to the last valid page instead of rendering
// empty.
func TestList_ClampsPastEndPage(t *testing.T) {
	api := &fakeAPI{pages: map[string]*models.EventListResponse{
		"2-10": {
			Envelope: models.Envelope{Success: true},
			Result:   models.EventPage{TotalRecords: 3, PageNumber: 2, PageSize: 10},
		},
		"1-10": {
			Envelope: models.Envelope{Success: true},
			Result: models.EventPage{
				Data:         []models.Event{{ID: "e1"}, {ID: "e2"}, {ID: "e3"}},
				TotalRecords: 3,
				PageNumber:   1,
				PageSize:     10,
			},
		},
	}}
	svc := models.NewUpstreamEventService(api, nil)

	resp, err := svc.List(context.Background(), 2, 10)
	if err != nil {
		t.Fatalf("list err: %v", err)
	}
	if resp.Result.PageNumber != 1 || len(resp.Result.Data) != 3 {
		t.Fatalf("want clamped page 1 with 3 rows, got page %d with %d", resp.Result.PageNumber, len(resp.Result.Data))
	}
	if api.listCalls != 2 {
		t.Fatalf("want one clamping refetch, got %d calls", api.listCalls)
	}
}

// Save and Delete pass straight through; invalidation belongs to the caller.
func TestSaveAndDelete_PassThrough(t *testing.T) {
	api := &fakeAPI{}
	svc := models.NewUpstreamEventService(api, nil)
	ctx := context.Background()

	ev := &models.Event{ID: models.SentinelID, Name: "X"}
	resp, err := svc.Save(ctx, ev)
	if err != nil || !resp.Success {
		t.Fatalf("save failed: %v %+v", err, resp)
	}
	if len(api.saved) != 1 || api.saved[0].Name != "X" {
		t.Fatalf("save not forwarded: %+v", api.saved)
	}

	dresp, err := svc.Delete(ctx, "e9")
	if err != nil || dresp.Result.ID != "e9" {
		t.Fatalf("delete not forwarded: %v %+v", err, dresp)
	}
}
