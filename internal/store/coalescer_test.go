package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"promptpilot_server/internal/types"
)

func coalescerFixture(t *testing.T) (*Store, *types.ProjectFile) {
	t.Helper()
	s := newTestStore(t)
	ctx := context.Background()
	p := createTestProject(t, s, "user-1", "App")
	f := &types.ProjectFile{ProjectID: p.ID, FilePath: "src/App.tsx", Content: "v0", UserID: "user-1"}
	require.NoError(t, s.CreateFile(ctx, f))
	return s, f
}

func TestCoalescer_BatchesRapidSaves(t *testing.T) {
	s, f := coalescerFixture(t)
	c := NewCoalescer(s, 50*time.Millisecond)

	// Three keystrokes within the quiet period collapse to one write.
	c.Save("user-1", f.ID, "v1")
	c.Save("user-1", f.ID, "v2")
	c.Save("user-1", f.ID, "v3")

	// Nothing written while the debounce window is open.
	got, err := s.GetFile(context.Background(), "user-1", f.ID)
	require.NoError(t, err)
	assert.Equal(t, "v0", got.Content)

	assert.Eventually(t, func() bool {
		got, err := s.GetFile(context.Background(), "user-1", f.ID)
		return err == nil && got.Content == "v3"
	}, 2*time.Second, 10*time.Millisecond, "latest content should land after the quiet period")
}

func TestCoalescer_FlushWritesImmediately(t *testing.T) {
	s, f := coalescerFixture(t)
	c := NewCoalescer(s, time.Hour) // would never fire on its own

	c.Save("user-1", f.ID, "flushed")
	require.NoError(t, c.Flush(context.Background()))

	got, err := s.GetFile(context.Background(), "user-1", f.ID)
	require.NoError(t, err)
	assert.Equal(t, "flushed", got.Content)
}

func TestCoalescer_CloseRejectsFurtherSaves(t *testing.T) {
	s, f := coalescerFixture(t)
	c := NewCoalescer(s, time.Hour)

	c.Save("user-1", f.ID, "kept")
	require.NoError(t, c.Close(context.Background()))

	c.Save("user-1", f.ID, "dropped")
	require.NoError(t, c.Flush(context.Background()))

	got, err := s.GetFile(context.Background(), "user-1", f.ID)
	require.NoError(t, err)
	assert.Equal(t, "kept", got.Content)
}

func TestCoalescer_IndependentFiles(t *testing.T) {
	s, f1 := coalescerFixture(t)
	ctx := context.Background()
	f2 := &types.ProjectFile{ProjectID: f1.ProjectID, FilePath: "src/Other.tsx", Content: "o0", UserID: "user-1"}
	require.NoError(t, s.CreateFile(ctx, f2))

	c := NewCoalescer(s, time.Hour)
	c.Save("user-1", f1.ID, "a")
	c.Save("user-1", f2.ID, "b")
	require.NoError(t, c.Flush(ctx))

	g1, err := s.GetFile(ctx, "user-1", f1.ID)
	require.NoError(t, err)
	g2, err := s.GetFile(ctx, "user-1", f2.ID)
	require.NoError(t, err)
	assert.Equal(t, "a", g1.Content)
	assert.Equal(t, "b", g2.Content)
}
