package datatable

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteRequiresConfirmation(t *testing.T) {
	rows := makeExpenses(5)
	var calls []string
	reg := NewActionRegistry().Register(Action{
		Kind:        ActionDelete,
		Confirm:     true,
		Destructive: true,
		Handler: func(_ context.Context, id string) error {
			calls = append(calls, id)
			return nil
		},
	})

	err := reg.Invoke(context.Background(), ActionDelete, "exp-03", false)
	assert.ErrorIs(t, err, ErrConfirmationRequired)
	assert.Empty(t, calls)
	assert.Len(t, rows, 5)

	require.NoError(t, reg.Invoke(context.Background(), ActionDelete, "exp-03", true))
	assert.Equal(t, []string{"exp-03"}, calls)
}

func TestInvokeUnavailableAction(t *testing.T) {
	reg := NewActionRegistry()
	err := reg.Invoke(context.Background(), ActionRun, "1", true)
	assert.ErrorIs(t, err, ErrActionUnavailable)

	reg.Register(Action{Kind: ActionEdit, Link: "/expenses/{id}/edit"})
	err = reg.Invoke(context.Background(), ActionEdit, "1", true)
	assert.ErrorIs(t, err, ErrActionUnavailable, "link-only actions are navigation")

	reg.Register(Action{Kind: ActionPay})
	_, ok := reg.Lookup(ActionPay)
	assert.False(t, ok, "an action without handler or link is not registered")
}

func TestInvokeRejectsBlankID(t *testing.T) {
	reg := NewActionRegistry().Register(Action{Kind: ActionRun, Handler: func(context.Context, string) error { return nil }})
	assert.ErrorIs(t, reg.Invoke(context.Background(), ActionRun, " ", false), ErrInvalidRowID)
}

func TestConcurrentInvocationsRunOnce(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	reg := NewActionRegistry().Register(Action{
		Kind: ActionRun,
		Handler: func(context.Context, string) error {
			calls.Add(1)
			<-release
			return nil
		},
	})

	var wg sync.WaitGroup
	for range 5 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, reg.Invoke(context.Background(), ActionRun, "sched-1", false))
		}()
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
}

func TestInvokeHonoursCancellation(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	t.Cleanup(func() { close(release) })
	reg := NewActionRegistry().Register(Action{
		Kind: ActionPay,
		Handler: func(context.Context, string) error {
			close(started)
			<-release
			return nil
		},
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- reg.Invoke(ctx, ActionPay, "po-1", true) }()
	<-started
	cancel()

	select {
	case err := <-done:
		assert.True(t, errors.Is(err, context.Canceled))
	case <-time.After(time.Second):
		t.Fatal("invoke did not return after cancellation")
	}
}

func TestSharedInvocationSurvivesFirstCallerCancel(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var handlerErr atomic.Value
	reg := NewActionRegistry().Register(Action{
		Kind: ActionRun,
		Handler: func(ctx context.Context, _ string) error {
			close(started)
			select {
			case <-ctx.Done():
				handlerErr.Store(ctx.Err())
				return ctx.Err()
			case <-release:
				return nil
			}
		},
	})

	first, cancelFirst := context.WithCancel(context.Background())
	firstDone := make(chan error, 1)
	go func() { firstDone <- reg.Invoke(first, ActionRun, "sched-9", false) }()
	<-started

	second, cancelSecond := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancelSecond()
	secondDone := make(chan error, 1)
	go func() { secondDone <- reg.Invoke(second, ActionRun, "sched-9", false) }()
	time.Sleep(50 * time.Millisecond)

	cancelFirst()
	select {
	case err := <-firstDone:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("cancelled caller did not return")
	}

	close(release)
	select {
	case err := <-secondDone:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("waiting caller did not return")
	}
	assert.Nil(t, handlerErr.Load(), "the shared call is not cancelled by one caller")
}

func TestKindsFollowMenuOrder(t *testing.T) {
	noop := func(context.Context, string) error { return nil }
	reg := NewActionRegistry().
		Register(Action{Kind: ActionDelete, Handler: noop}).
		Register(Action{Kind: "archive", Handler: noop}).
		Register(Action{Kind: ActionInfo, Link: "/x/{id}"}).
		Register(Action{Kind: ActionRun, Handler: noop})

	assert.Equal(t, []ActionKind{ActionInfo, ActionRun, ActionDelete, "archive"}, reg.Kinds())

	col, ok := ActionsColumn(reg)
	require.True(t, ok)
	assert.Equal(t, reg.Kinds(), col.Actions)

	_, ok = ActionsColumn(NewActionRegistry())
	assert.False(t, ok)
	assert.Len(t, WithActions([]Column{Text("a", "")}, nil), 1)
}

func TestActionsCellRendersRegisteredKinds(t *testing.T) {
	noop := func(context.Context, string) error { return nil }
	reg := NewActionRegistry().
		Register(Action{Kind: ActionEdit, Link: "/expenses/{id}/edit"}).
		Register(Action{Kind: ActionDelete, Handler: noop, Confirm: true, Destructive: true})
	cols := WithActions(expenseColumns(), reg)

	table, err := New(cols, makeExpenses(1))
	require.NoError(t, err)
	view := table.View(ViewOptions{BasePath: "/expenses", ActionBase: "/expenses/actions", Actions: reg})

	require.Len(t, view.Rows, 1)
	cells := view.Rows[0].Cells
	actions := cells[len(cells)-1].Actions
	require.Len(t, actions, 2)

	assert.Equal(t, "/expenses/exp-01/edit", actions[0].URL)
	assert.Equal(t, "Edit", actions[0].Label)

	del, err := url.Parse(actions[1].URL)
	require.NoError(t, err)
	assert.Equal(t, "/expenses/actions/exp-01/delete", del.Path)
	assert.Equal(t, "/expenses", del.Query().Get("return"))
	assert.True(t, actions[1].Confirm)
	assert.True(t, actions[1].Destructive)
}
