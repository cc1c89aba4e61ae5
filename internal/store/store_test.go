package store

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/tasklist/pkg/types"
)

// memBackend is an in-memory types.Backend for store tests.
type memBackend struct {
	tasks    []types.Task
	exists   bool
	readErr  error
	writeErr error
	writes   int
}

func (m *memBackend) ReadTasks() ([]types.Task, error) {
	if m.readErr != nil {
		return nil, m.readErr
	}
	if !m.exists {
		return nil, fmt.Errorf("memory: %w", types.ErrSourceNotFound)
	}
	out := make([]types.Task, len(m.tasks))
	copy(out, m.tasks)
	return out, nil
}

func (m *memBackend) WriteTasks(tasks []types.Task) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	m.tasks = make([]types.Task, len(tasks))
	copy(m.tasks, tasks)
	m.exists = true
	m.writes++
	return nil
}

func (m *memBackend) Location() string { return "memory" }

func TestAddAssignsSequentialIDs(t *testing.T) {
	s := New()
	for want := 1; want <= 5; want++ {
		task, err := s.Add(fmt.Sprintf("task %d", want))
		require.NoError(t, err)
		assert.Equal(t, want, task.ID)
		assert.False(t, task.Completed)
	}
	assert.Equal(t, 6, s.NextID())
	assert.Equal(t, 5, s.Len())
}

func TestAddTrimsAndRejectsEmptyTitles(t *testing.T) {
	s := New()

	task, err := s.Add("  Buy milk  ")
	require.NoError(t, err)
	assert.Equal(t, types.Task{ID: 1, Title: "Buy milk"}, task)

	_, err = s.Add("   ")
	assert.ErrorIs(t, err, types.ErrInvalidTitle)
	assert.Equal(t, 1, s.Len(), "rejected add must not append")
	assert.Equal(t, 2, s.NextID(), "rejected add must not consume an ID")
}

func TestAddAllowsDuplicateTitles(t *testing.T) {
	s := New()
	a, err := s.Add("same")
	require.NoError(t, err)
	b, err := s.Add("same")
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestListEmptyIsNotNil(t *testing.T) {
	got := New().List()
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestListReturnsCopyInInsertionOrder(t *testing.T) {
	s := New()
	for _, title := range []string{"a", "b", "c"} {
		_, err := s.Add(title)
		require.NoError(t, err)
	}

	got := s.List()
	require.Len(t, got, 3)
	assert.Equal(t, []string{"a", "b", "c"}, titles(got))

	got[0].Title = "mutated"
	assert.Equal(t, "a", s.List()[0].Title, "List must not expose internal state")
}

func TestDelete(t *testing.T) {
	s := New()
	for _, title := range []string{"a", "b", "c"} {
		_, err := s.Add(title)
		require.NoError(t, err)
	}

	assert.True(t, s.Delete(2))
	assert.Equal(t, []string{"a", "c"}, titles(s.List()))

	assert.False(t, s.Delete(2), "second delete reports not found")
	assert.False(t, s.Delete(99))
	assert.Equal(t, 2, s.Len())
}

func TestDeletedIDNeverReused(t *testing.T) {
	s := New()
	_, err := s.Add("a")
	require.NoError(t, err)
	b, err := s.Add("b")
	require.NoError(t, err)

	require.True(t, s.Delete(b.ID))
	c, err := s.Add("c")
	require.NoError(t, err)
	assert.Equal(t, 3, c.ID)
}

func TestComplete(t *testing.T) {
	s := New()
	_, err := s.Add("a")
	require.NoError(t, err)
	_, err = s.Add("b")
	require.NoError(t, err)

	assert.True(t, s.Complete(1))
	once := s.List()
	assert.True(t, s.Complete(1), "completing twice still succeeds")
	assert.Equal(t, once, s.List(), "complete is idempotent")

	got, ok := s.Get(1)
	require.True(t, ok)
	assert.True(t, got.Completed)
	got, ok = s.Get(2)
	require.True(t, ok)
	assert.False(t, got.Completed)

	assert.False(t, s.Complete(42))
}

func TestLoadMissingSourceStartsFresh(t *testing.T) {
	s := New()
	_, err := s.Add("stale")
	require.NoError(t, err)

	require.NoError(t, s.Load(&memBackend{}))
	assert.Empty(t, s.List())
	assert.Equal(t, 1, s.NextID())
}

func TestLoadRecomputesNextID(t *testing.T) {
	tests := []struct {
		name   string
		tasks  []types.Task
		wantID int
	}{
		{"empty file", []types.Task{}, 1},
		{"single", []types.Task{{ID: 1, Title: "a"}}, 2},
		{"gap", []types.Task{{ID: 1, Title: "a"}, {ID: 7, Title: "b"}}, 8},
		{"max not last", []types.Task{{ID: 9, Title: "a"}, {ID: 3, Title: "b"}}, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			require.NoError(t, s.Load(&memBackend{tasks: tt.tasks, exists: true}))
			assert.Equal(t, tt.wantID, s.NextID())
			assert.Equal(t, len(tt.tasks), s.Len())
		})
	}
}

func TestLoadIsAllOrNothing(t *testing.T) {
	tests := []struct {
		name    string
		backend *memBackend
		wantErr error
	}{
		{
			name:    "parse error",
			backend: &memBackend{readErr: fmt.Errorf("bad json: %w", types.ErrMalformed)},
			wantErr: types.ErrMalformed,
		},
		{
			name:    "io error",
			backend: &memBackend{readErr: fmt.Errorf("permission denied: %w", types.ErrStorage)},
			wantErr: types.ErrStorage,
		},
		{
			name:    "duplicate ids",
			backend: &memBackend{exists: true, tasks: []types.Task{{ID: 1, Title: "x"}, {ID: 1, Title: "y"}}},
			wantErr: types.ErrMalformed,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			_, err := s.Add("keep me")
			require.NoError(t, err)
			before := s.List()

			err = s.Load(tt.backend)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, before, s.List())
			assert.Equal(t, 2, s.NextID())
		})
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	backend := &memBackend{}

	s := New()
	_, err := s.Add("Buy milk")
	require.NoError(t, err)
	_, err = s.Add("Walk dog")
	require.NoError(t, err)
	require.True(t, s.Complete(1))
	require.True(t, s.Delete(2))
	require.NoError(t, s.Save(backend))

	fresh := New()
	require.NoError(t, fresh.Load(backend))
	assert.Equal(t, []types.Task{{ID: 1, Title: "Buy milk", Completed: true}}, fresh.List())

	// The counter is recomputed from the IDs present after a reload.
	next, err := fresh.Add("Call mom")
	require.NoError(t, err)
	assert.Equal(t, 2, next.ID)
}

func TestSaveWrapsBackendError(t *testing.T) {
	s := New()
	backend := &memBackend{writeErr: fmt.Errorf("disk full: %w", types.ErrStorage)}
	err := s.Save(backend)
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrStorage))
	assert.Contains(t, err.Error(), "memory")
}

func titles(tasks []types.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.Title
	}
	return out
}

func TestLoadRejectsExhaustedIDSpace(t *testing.T) {
	st := New()
	_, err := st.Add("keep me")
	require.NoError(t, err)

	src := &memBackend{exists: true, tasks: []types.Task{{ID: math.MaxInt, Title: "last"}}}
	err = st.Load(src)
	assert.ErrorIs(t, err, types.ErrMalformed)
	assert.Equal(t, []types.Task{{ID: 1, Title: "keep me"}}, st.List(), "store untouched")
	assert.Equal(t, 2, st.NextID())

	src.tasks = []types.Task{{ID: math.MaxInt - 1, Title: "almost"}}
	require.NoError(t, st.Load(src))
	added, err := st.Add("fits")
	require.NoError(t, err)
	assert.Equal(t, math.MaxInt, added.ID)
}
