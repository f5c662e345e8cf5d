package search

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"eve-routes/internal/routes"
)

func mustBuild(t *testing.T, from, to string) Query {
	t.Helper()
	q, err := Build(from, to, 33500, 100000, 8)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return q
}

func waitResult(t *testing.T, ch <-chan Result) Result {
	t.Helper()
	select {
	case r := <-ch:
		return r
	case <-time.After(2 * time.Second):
		t.Fatal("no result delivered")
		return Result{}
	}
}

func TestManager_Success(t *testing.T) {
	m := NewManager(func(ctx context.Context, q url.Values) (*routes.ResultSet, error) {
		return &routes.ResultSet{Metadata: routes.Metadata{TotalFound: 2}}, nil
	}, 3)

	gen, ch := m.Start(context.Background(), mustBuild(t, "jita", "dodixie"))
	r := waitResult(t, ch)
	if r.Status != StatusOK {
		t.Fatalf("Status = %v, want OK (err %v)", r.Status, r.Err)
	}
	if r.Generation != gen {
		t.Errorf("Generation = %d, want %d", r.Generation, gen)
	}
	if r.Set.Metadata.TotalFound != 2 {
		t.Errorf("Set = %+v", r.Set)
	}
	if m.Active() {
		t.Error("Active() = true after resolution")
	}
}

func TestManager_Failure(t *testing.T) {
	boom := &routes.APIError{Status: 500, Message: "Internal server error"}
	m := NewManager(func(ctx context.Context, q url.Values) (*routes.ResultSet, error) {
		return nil, boom
	}, 3)

	_, ch := m.Start(context.Background(), mustBuild(t, "jita", "dodixie"))
	r := waitResult(t, ch)
	if r.Status != StatusFailed {
		t.Fatalf("Status = %v, want Failed", r.Status)
	}
	if !errors.Is(r.Err, boom) {
		t.Errorf("Err = %v", r.Err)
	}
	if m.Active() {
		t.Error("Active() = true after failure; handle must clear so the next search can proceed")
	}
}

func TestManager_SupersedeCancelsFirst(t *testing.T) {
	started := make(chan struct{}, 2)
	m := NewManager(func(ctx context.Context, q url.Values) (*routes.ResultSet, error) {
		started <- struct{}{}
		if q.Get("to_station") == "dodixie" {
			// First request: block until cancelled.
			<-ctx.Done()
			return nil, ctx.Err()
		}
		return &routes.ResultSet{Metadata: routes.Metadata{ToStation: q.Get("to_station")}}, nil
	}, 1)

	_, ch1 := m.Start(context.Background(), mustBuild(t, "jita", "dodixie"))
	<-started
	_, ch2 := m.Start(context.Background(), mustBuild(t, "jita", "amarr"))

	r1 := waitResult(t, ch1)
	if r1.Status != StatusCancelled {
		t.Errorf("first Status = %v, want Cancelled", r1.Status)
	}
	if r1.Err != nil || r1.Set != nil {
		t.Errorf("superseded result carries data: %+v", r1)
	}

	r2 := waitResult(t, ch2)
	if r2.Status != StatusOK {
		t.Fatalf("second Status = %v, want OK (err %v)", r2.Status, r2.Err)
	}
	if r2.Set.Metadata.ToStation != "amarr" {
		t.Errorf("second Set = %+v", r2.Set)
	}
}

func TestManager_LateSuccessDiscarded(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{}, 2)
	m := NewManager(func(ctx context.Context, q url.Values) (*routes.ResultSet, error) {
		started <- struct{}{}
		if q.Get("to_station") == "dodixie" {
			// Ignore cancellation and deliver a late success.
			<-release
			return &routes.ResultSet{Metadata: routes.Metadata{ToStation: "dodixie"}}, nil
		}
		return &routes.ResultSet{Metadata: routes.Metadata{ToStation: q.Get("to_station")}}, nil
	}, 1)

	_, ch1 := m.Start(context.Background(), mustBuild(t, "jita", "dodixie"))
	<-started
	_, ch2 := m.Start(context.Background(), mustBuild(t, "jita", "amarr"))
	if r2 := waitResult(t, ch2); r2.Status != StatusOK {
		t.Fatalf("second Status = %v", r2.Status)
	}

	close(release)
	r1 := waitResult(t, ch1)
	if r1.Status != StatusCancelled {
		t.Errorf("late first Status = %v, want Cancelled", r1.Status)
	}
	if r1.Set != nil {
		t.Error("stale response delivered data")
	}
}

func TestManager_CancelSilent(t *testing.T) {
	m := NewManager(func(ctx context.Context, q url.Values) (*routes.ResultSet, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}, 1)

	_, ch := m.Start(context.Background(), mustBuild(t, "jita", "dodixie"))
	if !m.Active() {
		t.Fatal("Active() = false while in flight")
	}
	m.Cancel()
	if m.Active() {
		t.Error("Active() = true after Cancel")
	}

	r := waitResult(t, ch)
	if r.Status != StatusCancelled || r.Err != nil {
		t.Errorf("Result = %+v, want silent Cancelled", r)
	}
}

func TestManager_GenerationAdvances(t *testing.T) {
	m := NewManager(func(ctx context.Context, q url.Values) (*routes.ResultSet, error) {
		return &routes.ResultSet{}, nil
	}, 1)

	g1, ch1 := m.Start(context.Background(), mustBuild(t, "jita", "dodixie"))
	waitResult(t, ch1)
	g2, ch2 := m.Start(context.Background(), mustBuild(t, "jita", "dodixie"))
	waitResult(t, ch2)
	if g2 != g1+1 {
		t.Errorf("generations = %d then %d, want monotonically increasing", g1, g2)
	}
}
