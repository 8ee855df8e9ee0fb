package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnonymousIsNotAuthenticated(t *testing.T) {
	assert.False(t, Anonymous.Authenticated())
	assert.False(t, Anonymous.IsSelf(0))
}

func TestManagerActivateResolve(t *testing.T) {
	m := NewManager()

	s := m.Activate(7, 2)
	require.NotEmpty(t, s.ID)
	assert.Equal(t, uint(7), s.UserID)
	assert.Equal(t, 2, s.Level)

	assert.Equal(t, s, m.Resolve(s.ID))
	assert.Equal(t, Anonymous, m.Resolve("other"))
	assert.Equal(t, Anonymous, m.Resolve(""))
}

func TestManagerActivateReplacesPrevious(t *testing.T) {
	m := NewManager()

	first := m.Activate(1, 1)
	second := m.Activate(2, 2)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, Anonymous, m.Resolve(first.ID))
	assert.Equal(t, second, m.Resolve(second.ID))
}

func TestManagerClear(t *testing.T) {
	m := NewManager()
	s := m.Activate(3, 2)

	m.Clear()

	assert.Equal(t, Anonymous, m.Resolve(s.ID))
	assert.False(t, m.Current().Authenticated())
}

func TestManagerRefreshOnlyTouchesActiveUser(t *testing.T) {
	m := NewManager()
	s := m.Activate(3, 2)

	m.Refresh(99, 1)
	assert.Equal(t, 2, m.Resolve(s.ID).Level)

	m.Refresh(3, 1)
	assert.Equal(t, 1, m.Resolve(s.ID).Level)
}
