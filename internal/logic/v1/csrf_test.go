package v1

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCsrfIssueStable(t *testing.T) {
	ctx := context.Background()
	repo := newMemSessionRepo()
	m := NewSessionManager(repo, time.Hour)
	g := NewCsrfGuard(repo)

	session, err := m.Start(ctx)
	require.NoError(t, err)

	first, err := g.Issue(ctx, session)
	require.NoError(t, err)
	require.NotEmpty(t, first)
	// 32 bytes hex-encoded.
	assert.Len(t, first, 64)

	second, err := g.Issue(ctx, session)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// The secret survives a session reload.
	reloaded, err := m.Get(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, first, reloaded.CsrfSecret)
}

func TestCsrfVerify(t *testing.T) {
	ctx := context.Background()
	repo := newMemSessionRepo()
	m := NewSessionManager(repo, time.Hour)
	g := NewCsrfGuard(repo)

	session, err := m.Start(ctx)
	require.NoError(t, err)
	token, err := g.Issue(ctx, session)
	require.NoError(t, err)

	assert.True(t, g.Verify(session, token))
	assert.False(t, g.Verify(session, ""))
	assert.False(t, g.Verify(session, "wrong-token"))
	assert.False(t, g.Verify(nil, token))
}

func TestCsrfTokenFromAnotherSessionRejected(t *testing.T) {
	ctx := context.Background()
	repo := newMemSessionRepo()
	m := NewSessionManager(repo, time.Hour)
	g := NewCsrfGuard(repo)

	s1, err := m.Start(ctx)
	require.NoError(t, err)
	s2, err := m.Start(ctx)
	require.NoError(t, err)

	t1, err := g.Issue(ctx, s1)
	require.NoError(t, err)
	t2, err := g.Issue(ctx, s2)
	require.NoError(t, err)

	assert.NotEqual(t, t1, t2)
	assert.False(t, g.Verify(s1, t2))
	assert.False(t, g.Verify(s2, t1))
}

func TestCsrfVerifyWithoutIssuedSecret(t *testing.T) {
	ctx := context.Background()
	repo := newMemSessionRepo()
	m := NewSessionManager(repo, time.Hour)
	g := NewCsrfGuard(repo)

	session, err := m.Start(ctx)
	require.NoError(t, err)

	// No secret stored yet: nothing verifies, not even empty input.
	assert.False(t, g.Verify(session, ""))
	assert.False(t, g.Verify(session, "anything"))
}
