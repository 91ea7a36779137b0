package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/okian/roster/internal/domain/generator"
	"github.com/okian/roster/internal/domain/model"
)

// countingGenerator yields users tagged with the call number.
type countingGenerator struct {
	calls int
}

func (g *countingGenerator) Generate(count int) []model.User {
	g.calls++
	users := make([]model.User, count)
	for i := range users {
		users[i] = model.User{
			ID:       fmt.Sprintf("user-%d", i),
			Username: fmt.Sprintf("Gen%dUser%d", g.calls, i),
			Metrics:  model.Metrics{Likes: i},
		}
	}
	return users
}

func newTestStore(t *testing.T, opts ...Option) (*SessionStore, *countingGenerator) {
	t.Helper()
	gen := &countingGenerator{}
	store, err := NewSessionStore(context.Background(), gen, opts...)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return store, gen
}

func TestSessionStore_InitialState(t *testing.T) {
	ctx := context.Background()
	store, gen := newTestStore(t)

	if gen.calls != 1 {
		t.Errorf("expected one generation at construction, got %d", gen.calls)
	}
	if count := store.Count(ctx); count != generator.DefaultCount {
		t.Errorf("expected count %d, got %d", generator.DefaultCount, count)
	}

	state := store.ViewState(ctx)
	if state.Metric != model.MetricTimeSpent || state.Sort || state.Search != "" {
		t.Errorf("unexpected initial state: %+v", state)
	}

	enabled := store.Descriptors(ctx).EnabledKeys()
	if len(enabled) != 2 || enabled[0] != model.MetricTimeSpent || enabled[1] != model.MetricRevenue {
		t.Errorf("unexpected enabled metrics: %v", enabled)
	}

	snap := store.Snapshot(ctx)
	if snap.Generation.ID == "" {
		t.Error("expected a generation id")
	}
	if snap.Generation.Records != generator.DefaultCount {
		t.Errorf("expected generation to record %d users, got %d", generator.DefaultCount, snap.Generation.Records)
	}
}

func TestSessionStore_NilGenerator(t *testing.T) {
	if _, err := NewSessionStore(context.Background(), nil); !errors.Is(err, ErrNoGenerator) {
		t.Errorf("expected ErrNoGenerator, got %v", err)
	}
}

func TestSessionStore_Options(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	store, _ := newTestStore(t,
		WithRecordCount(7),
		WithEnabledMetrics([]model.MetricKey{model.MetricLikes}),
		WithViewState(ViewState{Metric: model.MetricShares, Sort: true, Search: "gen"}),
		WithClock(func() time.Time { return at }),
	)

	if count := store.Count(ctx); count != 7 {
		t.Errorf("expected count 7, got %d", count)
	}
	if enabled := store.Descriptors(ctx).EnabledKeys(); len(enabled) != 1 || enabled[0] != model.MetricLikes {
		t.Errorf("unexpected enabled metrics: %v", enabled)
	}
	if state := store.ViewState(ctx); state != (ViewState{Metric: model.MetricShares, Sort: true, Search: "gen"}) {
		t.Errorf("unexpected state: %+v", state)
	}
	if got := store.Snapshot(ctx).Generation.At; !got.Equal(at) {
		t.Errorf("expected generation time %v, got %v", at, got)
	}

	// Invalid values fall back to defaults.
	store, _ = newTestStore(t, WithRecordCount(0), WithViewState(ViewState{Metric: "karma", Sort: true}))
	if count := store.Count(ctx); count != generator.DefaultCount {
		t.Errorf("expected default count, got %d", count)
	}
	if state := store.ViewState(ctx); state.Metric != model.MetricTimeSpent || !state.Sort {
		t.Errorf("unexpected state: %+v", state)
	}
}

func TestSessionStore_Refresh(t *testing.T) {
	ctx := context.Background()
	store, gen := newTestStore(t, WithRecordCount(3))

	before := store.Snapshot(ctx)
	g, err := store.Refresh(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	after := store.Snapshot(ctx)

	if gen.calls != 2 {
		t.Errorf("expected two generations, got %d", gen.calls)
	}
	if g.ID == before.Generation.ID {
		t.Error("expected a new generation id")
	}
	if after.Generation != g {
		t.Errorf("snapshot generation %+v does not match %+v", after.Generation, g)
	}
	if after.Records[0].Username == before.Records[0].Username {
		t.Error("expected records to be replaced")
	}

	cctx, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := store.Refresh(cctx); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if gen.calls != 2 {
		t.Error("cancelled refresh must not generate")
	}
}

func TestSessionStore_ToggleMetric(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	list, err := store.ToggleMetric(ctx, model.MetricLikes)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d, _ := list.Find(model.MetricLikes); !d.Enabled {
		t.Error("expected likes to be enabled")
	}
	if d, _ := store.Descriptors(ctx).Find(model.MetricLikes); !d.Enabled {
		t.Error("expected toggle to be stored")
	}

	// Toggling twice restores the starting list.
	if _, err := store.ToggleMetric(ctx, model.MetricLikes); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d, _ := store.Descriptors(ctx).Find(model.MetricLikes); d.Enabled {
		t.Error("expected likes to be disabled again")
	}

	before := store.Descriptors(ctx)
	list, err = store.ToggleMetric(ctx, "karma")
	if !errors.Is(err, ErrUnknownMetric) {
		t.Errorf("expected ErrUnknownMetric, got %v", err)
	}
	if len(list) != len(before) {
		t.Fatalf("expected %d descriptors, got %d", len(before), len(list))
	}
	for i := range before {
		if list[i] != before[i] {
			t.Errorf("descriptor %d changed: %+v -> %+v", i, before[i], list[i])
		}
	}
}

func TestSessionStore_ViewState(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	state, err := store.SelectMetric(ctx, model.MetricRevenue)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state.Metric != model.MetricRevenue {
		t.Errorf("expected revenue, got %s", state.Metric)
	}
	if state.Sort {
		t.Error("selecting a metric must not enable sorting")
	}

	if _, err := store.SelectMetric(ctx, "karma"); !errors.Is(err, ErrUnknownMetric) {
		t.Errorf("expected ErrUnknownMetric, got %v", err)
	}
	if got := store.ViewState(ctx).Metric; got != model.MetricRevenue {
		t.Errorf("unknown metric must not change state, got %s", got)
	}

	if state := store.SetSort(ctx, true); !state.Sort || state.Metric != model.MetricRevenue {
		t.Errorf("unexpected state after sort: %+v", state)
	}
	if state := store.SetSearch(ctx, "  ninja "); state.Search != "  ninja " {
		t.Errorf("expected raw search text, got %q", state.Search)
	}
}

func TestSessionStore_UpdateState(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	search, metric, sort := "guru", model.MetricLikes, true
	state, err := store.UpdateState(ctx, StateUpdate{Search: &search, Metric: &metric, Sort: &sort})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := ViewState{Metric: model.MetricLikes, Sort: true, Search: "guru"}
	if state != want || store.ViewState(ctx) != want {
		t.Errorf("expected %+v, got %+v", want, state)
	}

	// Nil fields are kept.
	off := false
	if state, _ := store.UpdateState(ctx, StateUpdate{Sort: &off}); state.Search != "guru" || state.Sort {
		t.Errorf("partial update touched other fields: %+v", state)
	}

	// An unknown metric rejects the whole update.
	bad, other := model.MetricKey("karma"), "ninja"
	if _, err := store.UpdateState(ctx, StateUpdate{Search: &other, Metric: &bad}); !errors.Is(err, ErrUnknownMetric) {
		t.Errorf("expected ErrUnknownMetric, got %v", err)
	}
	if got := store.ViewState(ctx).Search; got != "guru" {
		t.Errorf("rejected update changed search to %q", got)
	}
}

func TestSessionStore_UpdateStateIsAtomic(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	searchA, metricA, sortA := "a", model.MetricLikes, true
	searchB, metricB, sortB := "b", model.MetricRevenue, false
	a := StateUpdate{Search: &searchA, Metric: &metricA, Sort: &sortA}
	b := StateUpdate{Search: &searchB, Metric: &metricB, Sort: &sortB}
	if _, err := store.UpdateState(ctx, a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stateA := ViewState{Search: "a", Metric: model.MetricLikes, Sort: true}
	stateB := ViewState{Search: "b", Metric: model.MetricRevenue, Sort: false}

	var wg sync.WaitGroup
	done := make(chan struct{})
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			u := a
			if i%2 == 0 {
				u = b
			}
			_, _ = store.UpdateState(ctx, u)
		}
		close(done)
	}()

	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-done:
					return
				default:
				}
				if got := store.Snapshot(ctx).State; got != stateA && got != stateB {
					t.Errorf("observed a half-applied state: %+v", got)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestSessionStore_SnapshotIsolation(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t, WithRecordCount(2))

	snap := store.Snapshot(ctx)
	snap.Records[0].Username = "mutated"
	snap.Descriptors[0].Enabled = false

	records := store.Records(ctx)
	records[1].Username = "mutated"

	again := store.Snapshot(ctx)
	if again.Records[0].Username == "mutated" || again.Records[1].Username == "mutated" {
		t.Error("caller mutation leaked into the store records")
	}
	if !again.Descriptors[0].Enabled {
		t.Error("caller mutation leaked into the store descriptors")
	}
}

func TestSessionStore_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	store, err := NewSessionStore(ctx, generator.New(generator.WithSeed(7)), WithRecordCount(20))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				switch j % 5 {
				case 0:
					_, _ = store.Refresh(ctx)
				case 1:
					_, _ = store.ToggleMetric(ctx, model.AllMetricKeys()[i])
				case 2:
					store.SetSort(ctx, j%2 == 0)
				case 3:
					store.SetSearch(ctx, fmt.Sprintf("q%d", i))
				default:
					snap := store.Snapshot(ctx)
					if len(snap.Records) != 20 || snap.Generation.Records != 20 {
						t.Errorf("inconsistent snapshot: %d records, generation says %d", len(snap.Records), snap.Generation.Records)
					}
				}
			}
		}(i)
	}
	wg.Wait()
}
