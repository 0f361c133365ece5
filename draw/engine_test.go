// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package draw

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/danielhkuo/quickly-draw/models"
	"github.com/danielhkuo/quickly-draw/random"
	"github.com/danielhkuo/quickly-draw/testutil"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// gatedAnnouncer answers only when release is closed.
type gatedAnnouncer struct {
	release chan struct{}
	mu      sync.Mutex
	calls   []string
}

func newGatedAnnouncer() *gatedAnnouncer {
	return &gatedAnnouncer{release: make(chan struct{})}
}

func (a *gatedAnnouncer) WinnerMessage(ctx context.Context, name string) string {
	a.mu.Lock()
	a.calls = append(a.calls, name)
	a.mu.Unlock()

	select {
	case <-a.release:
	case <-ctx.Done():
	}
	return "Bravo, " + name
}

type instantAnnouncer struct{}

func (instantAnnouncer) WinnerMessage(_ context.Context, name string) string {
	return "Bravo, " + name
}

func newEngine(t *testing.T, roster []models.Participant, opts ...Option) *Engine {
	t.Helper()
	opts = append([]Option{WithSource(random.Seeded(1, 2)), WithSpin(Spin{})}, opts...)
	e := New(opts...)
	e.OnRosterChanged(roster)
	t.Cleanup(e.Close)
	return e
}

func ids(ps []models.Participant) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.ID
	}
	return out
}

func TestDraw_TwoParticipantsThenEmpty(t *testing.T) {
	ctx := context.Background()
	roster := testutil.Participants("A", "B")
	e := newEngine(t, roster)

	first, err := e.Draw(ctx, nil)
	require.NoError(t, err)
	require.Contains(t, roster, first)
	require.Equal(t, 1, e.PoolSize())

	second, err := e.Draw(ctx, nil)
	require.NoError(t, err)
	require.NotEqual(t, first.ID, second.ID)
	require.Equal(t, 0, e.PoolSize())

	before := e.Snapshot()
	_, err = e.Draw(ctx, nil)
	require.ErrorIs(t, err, ErrEmptyPool)
	require.Equal(t, before, e.Snapshot())

	st := e.Snapshot()
	require.Equal(t, []models.Participant{second, first}, st.History)
}

func TestDraw_EachDrawShrinksPoolByOne(t *testing.T) {
	ctx := context.Background()
	roster := testutil.Participants("A", "B", "C", "D", "E", "F", "G")
	e := newEngine(t, roster)

	drawn := map[string]bool{}
	for i := len(roster); i > 0; i-- {
		before := e.Snapshot().Pool
		winner, err := e.Draw(ctx, nil)
		require.NoError(t, err)
		require.False(t, drawn[winner.ID], "winner drawn twice")
		drawn[winner.ID] = true

		after := e.Snapshot().Pool
		require.Len(t, after, len(before)-1)
		require.NotContains(t, ids(after), winner.ID)
		require.Contains(t, ids(before), winner.ID)
	}

	_, err := e.Draw(ctx, nil)
	require.ErrorIs(t, err, ErrEmptyPool)
	require.Len(t, e.Snapshot().History, len(roster))
}

func TestDraw_AllowRepeatKeepsPool(t *testing.T) {
	ctx := context.Background()
	roster := testutil.Participants("A", "B", "C")
	e := newEngine(t, roster)
	e.SetAllowRepeat(true)

	for i := 0; i < 20; i++ {
		_, err := e.Draw(ctx, nil)
		require.NoError(t, err)
		require.Equal(t, roster, e.Snapshot().Pool)
	}
	require.Len(t, e.Snapshot().History, 20)
}

func TestSetAllowRepeat_NotRetroactive(t *testing.T) {
	ctx := context.Background()
	e := newEngine(t, testutil.Participants("A", "B", "C"))

	_, err := e.Draw(ctx, nil)
	require.NoError(t, err)
	require.Equal(t, 2, e.PoolSize())

	e.SetAllowRepeat(true)
	require.Equal(t, 2, e.PoolSize())
	require.True(t, e.Snapshot().AllowRepeat)
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	roster := testutil.Participants("A", "B", "C")
	e := newEngine(t, roster)

	for i := 0; i < 2; i++ {
		_, err := e.Draw(ctx, nil)
		require.NoError(t, err)
	}

	e.Reset()
	st := e.Snapshot()
	require.Equal(t, roster, st.Pool)
	require.Empty(t, st.History)
	require.Nil(t, st.Winner)

	// idempotent
	e.Reset()
	require.Equal(t, st, e.Snapshot())
}

func TestOnRosterChanged_KeepsHistory(t *testing.T) {
	ctx := context.Background()
	e := newEngine(t, testutil.Participants("A", "B"))

	winner, err := e.Draw(ctx, nil)
	require.NoError(t, err)

	newRoster := testutil.Participants("C")
	newRoster[0].ID = "c"
	e.OnRosterChanged(newRoster)

	st := e.Snapshot()
	require.Equal(t, newRoster, st.Pool)
	require.Equal(t, []models.Participant{winner}, st.History)

	e.Reset()
	require.Equal(t, newRoster, e.Snapshot().Pool)
}

func TestDraw_Uniform(t *testing.T) {
	ctx := context.Background()
	roster := testutil.Participants("A", "B", "C")
	e := newEngine(t, roster)
	e.SetAllowRepeat(true)

	const trials = 3000
	counts := map[string]int{}
	for i := 0; i < trials; i++ {
		w, err := e.Draw(ctx, nil)
		require.NoError(t, err)
		counts[w.ID]++
	}

	for _, p := range roster {
		require.InDelta(t, trials/len(roster), counts[p.ID], 150, "participant %s", p.Name)
	}
}

func TestDraw_SpinFrames(t *testing.T) {
	ctx := context.Background()
	roster := testutil.Participants("A", "B", "C")
	e := newEngine(t, roster, WithSpin(Spin{Steps: 7, Interval: time.Millisecond}))

	var frames []models.SpinFrame
	winner, err := e.Draw(ctx, func(f models.SpinFrame) {
		frames = append(frames, f)
	})
	require.NoError(t, err)
	require.Contains(t, roster, winner)

	require.Len(t, frames, 7)
	for i, f := range frames {
		require.Equal(t, i+1, f.Step)
		require.Equal(t, (i+1)%len(roster), f.Index)
		require.Equal(t, roster[f.Index].Name, f.Name)
	}
}

func TestDraw_NewDrawCancelsRunningSpin(t *testing.T) {
	ctx := context.Background()
	e := newEngine(t, testutil.Participants("A", "B", "C"),
		WithSpin(Spin{Steps: 1000, Interval: 50 * time.Millisecond}))

	started := make(chan struct{})
	var once sync.Once
	done := make(chan error, 1)
	go func() {
		_, err := e.Draw(ctx, func(models.SpinFrame) {
			once.Do(func() { close(started) })
		})
		done <- err
	}()
	<-started

	winner, err := e.Draw(ctx, nil)
	require.NoError(t, err)

	require.ErrorIs(t, <-done, ErrDrawCancelled)

	st := e.Snapshot()
	require.Len(t, st.History, 1)
	require.Equal(t, winner, st.History[0])
	require.Len(t, st.Pool, 2)
}

func TestDraw_ResetCancelsRunningSpin(t *testing.T) {
	ctx := context.Background()
	roster := testutil.Participants("A", "B")
	e := newEngine(t, roster, WithSpin(Spin{Steps: 1000, Interval: 50 * time.Millisecond}))

	started := make(chan struct{})
	var once sync.Once
	done := make(chan error, 1)
	go func() {
		_, err := e.Draw(ctx, func(models.SpinFrame) {
			once.Do(func() { close(started) })
		})
		done <- err
	}()
	<-started

	e.Reset()
	require.ErrorIs(t, <-done, ErrDrawCancelled)
	require.Equal(t, roster, e.Snapshot().Pool)
	require.Empty(t, e.Snapshot().History)
}

func TestDraw_CallerCancellation(t *testing.T) {
	e := newEngine(t, testutil.Participants("A", "B"), WithSpin(Spin{Steps: 5, Interval: time.Millisecond}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.Draw(ctx, func(models.SpinFrame) {})
	require.ErrorIs(t, err, ErrDrawCancelled)
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, 2, e.PoolSize())
}

func TestClose(t *testing.T) {
	e := New(WithSpin(Spin{Steps: 1000, Interval: 50 * time.Millisecond}))
	e.OnRosterChanged(testutil.Participants("A", "B"))

	started := make(chan struct{})
	var once sync.Once
	done := make(chan error, 1)
	go func() {
		_, err := e.Draw(context.Background(), func(models.SpinFrame) {
			once.Do(func() { close(started) })
		})
		done <- err
	}()
	<-started

	e.Close()
	require.ErrorIs(t, <-done, ErrDrawCancelled)

	_, err := e.Draw(context.Background(), nil)
	require.ErrorIs(t, err, ErrClosed)

	// second close is a no-op
	e.Close()
}

func TestDraw_WinnerMessage(t *testing.T) {
	ctx := context.Background()
	e := newEngine(t, testutil.Participants("Ada"), WithAnnouncer(instantAnnouncer{}))

	_, err := e.Draw(ctx, nil)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		w := e.Snapshot().Winner
		return w != nil && w.Message == "Bravo, Ada"
	}, time.Second, 5*time.Millisecond)
}

func TestDraw_StaleWinnerMessageDiscardedAfterReset(t *testing.T) {
	ctx := context.Background()
	ann := newGatedAnnouncer()
	e := newEngine(t, testutil.Participants("Ada"), WithAnnouncer(ann))

	_, err := e.Draw(ctx, nil)
	require.NoError(t, err)

	e.Reset()
	close(ann.release)
	e.Close()

	require.Nil(t, e.Snapshot().Winner)
}

func TestDraw_StaleWinnerMessageDiscardedAfterNewDraw(t *testing.T) {
	ctx := context.Background()
	ann := newGatedAnnouncer()
	roster := testutil.Participants("Ada", "Bo")
	e := newEngine(t, roster, WithAnnouncer(ann))

	first, err := e.Draw(ctx, nil)
	require.NoError(t, err)
	second, err := e.Draw(ctx, nil)
	require.NoError(t, err)

	close(ann.release)
	e.Close()

	w := e.Snapshot().Winner
	require.NotNil(t, w)
	require.Equal(t, second, w.Participant)
	require.Equal(t, "Bravo, "+second.Name, w.Message)
	require.NotEqual(t, first.ID, second.ID)
}

func TestSpin_Duration(t *testing.T) {
	require.Equal(t, 3030*time.Millisecond, DefaultSpin.Duration())
	require.Zero(t, Spin{}.Duration())
}
