package lifecycle

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeComponent struct {
	name     string
	startErr error
	events   *[]string
}

func (f *fakeComponent) Name() string { return f.name }

func (f *fakeComponent) Start(ctx context.Context) error {
	*f.events = append(*f.events, "start:"+f.name)
	return f.startErr
}

func (f *fakeComponent) Stop(ctx context.Context) error {
	*f.events = append(*f.events, "stop:"+f.name)
	return nil
}

func TestManagerStartsInOrderStopsInReverse(t *testing.T) {
	var events []string
	m := NewManager()
	require.NoError(t, m.Register(&fakeComponent{name: "a", events: &events}))
	require.NoError(t, m.Register(&fakeComponent{name: "b", events: &events}))
	require.NoError(t, m.Register(&fakeComponent{name: "c", events: &events}))

	require.NoError(t, m.Start(context.Background()))
	require.NoError(t, m.Stop(context.Background()))

	assert.Equal(t, []string{
		"start:a", "start:b", "start:c",
		"stop:c", "stop:b", "stop:a",
	}, events)
}

func TestManagerRollsBackOnStartFailure(t *testing.T) {
	var events []string
	m := NewManager()
	require.NoError(t, m.Register(&fakeComponent{name: "a", events: &events}))
	require.NoError(t, m.Register(&fakeComponent{name: "b", startErr: fmt.Errorf("boom"), events: &events}))
	require.NoError(t, m.Register(&fakeComponent{name: "c", events: &events}))

	err := m.Start(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to start b")
	assert.Equal(t, []string{"start:a", "start:b", "stop:a"}, events)
}

func TestManagerRejectsBadRegistrations(t *testing.T) {
	var events []string
	m := NewManager()

	assert.Error(t, m.Register(nil))
	assert.Error(t, m.Register(&fakeComponent{name: "", events: &events}))

	c := &fakeComponent{name: "a", events: &events}
	require.NoError(t, m.Register(c))
	assert.Error(t, m.Register(c))
}
