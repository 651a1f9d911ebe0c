package store

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryPersister struct {
	user    *User
	saved   int
	cleared int
	loadErr error
}

func (m *memoryPersister) Load() (*User, error) { return m.user, m.loadErr }
func (m *memoryPersister) Save(u *User) error   { m.user = u; m.saved++; return nil }
func (m *memoryPersister) Clear() error         { m.user = nil; m.cleared++; return nil }

func TestLoadingFlag(t *testing.T) {
	s := New()
	assert.False(t, s.Loading())

	s.SetLoading(true)
	assert.True(t, s.Loading())
	assert.True(t, s.State().Loading)

	s.SetLoading(false)
	assert.False(t, s.Loading())
}

func TestSessionLifecycle(t *testing.T) {
	p := &memoryPersister{}
	s := New(WithPersister(p))
	assert.False(t, s.HasSession())
	assert.Nil(t, s.User())

	s.SetUser(&User{ID: "u1", Email: "a@b.c", Role: "student"})
	assert.True(t, s.HasSession())
	assert.Equal(t, "u1", s.User().ID)
	assert.Equal(t, 1, p.saved)

	s.Logout()
	assert.False(t, s.HasSession())
	assert.Equal(t, 1, p.cleared)
	assert.Nil(t, p.user)
}

func TestSetNilUserLogsOut(t *testing.T) {
	s := New()
	s.SetUser(&User{ID: "u1"})
	s.SetUser(nil)
	assert.False(t, s.HasSession())
}

func TestStateIsASnapshot(t *testing.T) {
	s := New()
	u := &User{ID: "u1", FullName: "Ada"}
	s.SetUser(u)

	u.FullName = "changed"
	st := s.State()
	st.User.FullName = "also changed"

	assert.Equal(t, "Ada", s.User().FullName)
}

func TestRestore(t *testing.T) {
	p := &memoryPersister{user: &User{ID: "u9"}}
	s := New(WithPersister(p))
	require.NoError(t, s.Restore())
	assert.True(t, s.HasSession())
	assert.Equal(t, "u9", s.User().ID)

	empty := New(WithPersister(&memoryPersister{}))
	require.NoError(t, empty.Restore())
	assert.False(t, empty.HasSession())

	broken := New(WithPersister(&memoryPersister{loadErr: errors.New("corrupt")}))
	assert.Error(t, broken.Restore())
	assert.False(t, broken.HasSession())

	require.NoError(t, New().Restore())
}

func TestSubscribe(t *testing.T) {
	s := New()
	var got []AuthState
	unsubscribe := s.Subscribe(func(st AuthState) { got = append(got, st) })

	s.SetLoading(true)
	s.SetUser(&User{ID: "u1"})
	unsubscribe()
	unsubscribe()
	s.SetLoading(false)

	require.Len(t, got, 2)
	assert.True(t, got[0].Loading)
	assert.Nil(t, got[0].User)
	assert.True(t, got[1].Loading)
	assert.Equal(t, "u1", got[1].User.ID)
}

func TestListenerMayReadStore(t *testing.T) {
	s := New()
	var seen bool
	s.Subscribe(func(AuthState) { seen = s.Loading() })

	s.SetLoading(true)
	assert.True(t, seen)
}

func TestConcurrentUpdates(t *testing.T) {
	s := New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.SetLoading(i%2 == 0)
			_ = s.State()
		}(i)
	}
	wg.Wait()
}
