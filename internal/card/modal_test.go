package card

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rishidar/freelance-connector/internal/models"
)

func reel() models.MediaRecord {
	return models.MediaRecord{ID: "r1", Title: "Reel", Creator: "Hari", Media: []string{"https://cdn/r1.mp4"}}
}

func TestModal_OpenAutoplaysWithSound(t *testing.T) {
	m := NewModal()
	assert.False(t, m.State().Open)

	st := m.Open(reel())
	assert.True(t, st.Open)
	assert.True(t, st.Playing)
	assert.False(t, st.Muted)
	assert.Equal(t, "r1", st.RecordID)
	assert.Equal(t, "https://cdn/r1.mp4", st.URL)
}

func TestModal_ClosedRejectsControls(t *testing.T) {
	m := NewModal()

	_, err := m.TogglePlay()
	assert.ErrorIs(t, err, ErrModalClosed)
	_, _, err = m.HandleKey("k")
	assert.ErrorIs(t, err, ErrModalClosed)
}

func TestModal_Keys(t *testing.T) {
	m := NewModal()
	m.Open(reel())

	st, handled, err := m.HandleKey(" ")
	require.NoError(t, err)
	assert.True(t, handled)
	assert.False(t, st.Playing)

	st, _, _ = m.HandleKey("k")
	assert.True(t, st.Playing)

	st, _, _ = m.HandleKey("m")
	assert.True(t, st.Muted)

	st, _, _ = m.HandleKey("f")
	assert.True(t, st.Fullscreen)

	st, _, _ = m.HandleKey("Escape")
	assert.True(t, st.Open)
	assert.False(t, st.Fullscreen)

	_, handled, _ = m.HandleKey("x")
	assert.False(t, handled)

	st, _, _ = m.HandleKey("Escape")
	assert.False(t, st.Open)
	assert.False(t, m.State().Open)
}

func TestModal_SeekIgnoresTimeWhileDragging(t *testing.T) {
	m := NewModal()
	m.Open(reel())

	st, err := m.SetDuration(30)
	require.NoError(t, err)
	assert.Equal(t, 30.0, st.Duration)

	st, _ = m.TimeUpdate(3)
	assert.Equal(t, 3.0, st.Position)

	st, _ = m.Seek(SeekStart, 10)
	assert.True(t, st.Dragging)
	assert.Equal(t, 10.0, st.Position)

	st, _ = m.TimeUpdate(4)
	assert.Equal(t, 10.0, st.Position)

	st, _ = m.Seek(SeekMove, 45)
	assert.Equal(t, 30.0, st.Position)

	st, _ = m.Seek(SeekEnd, 12)
	assert.False(t, st.Dragging)
	assert.Equal(t, 12.0, st.Position)

	st, _ = m.TimeUpdate(13)
	assert.Equal(t, 13.0, st.Position)

	st, _ = m.Seek(SeekMove, -5)
	assert.Equal(t, 0.0, st.Position)
}

func TestModal_DoesNotPauseCards(t *testing.T) {
	c := New(videoCategory(), reel())
	require.NoError(t, c.Observe(1))

	m := NewModal()
	m.Open(c.Record())

	assert.True(t, c.View().Playback.Playing)
	assert.True(t, m.State().Playing)
}

func TestModal_ReopenResetsState(t *testing.T) {
	m := NewModal()
	m.Open(reel())
	_, _ = m.ToggleMute()
	_, _ = m.ToggleFullscreen()
	_, _ = m.SetDuration(20)

	other := reel()
	other.ID = "r2"
	st := m.Open(other)

	assert.Equal(t, "r2", st.RecordID)
	assert.False(t, st.Muted)
	assert.False(t, st.Fullscreen)
	assert.Zero(t, st.Duration)

	assert.False(t, m.Close().Open)
}
