package card

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rishidar/freelance-connector/internal/models"
)

func imageCategory() models.CategoryDefinition {
	return models.CategoryDefinition{Slug: "posters", Kind: models.MediaKindImage}
}

func videoCategory() models.CategoryDefinition {
	return models.CategoryDefinition{Slug: "reels", Kind: models.MediaKindVideo, PlayThreshold: 0.8}
}

func TestImageLifecycle_ForwardOnly(t *testing.T) {
	l := NewImageLifecycle("https://cdn/a.png")
	assert.Equal(t, ImageNotLoaded, l.Status())
	assert.Equal(t, PlaceholderLoading, l.Placeholder())

	assert.True(t, l.Apply(ImageLoaded))
	assert.Equal(t, ImageLoaded, l.Status())
	assert.Empty(t, l.Placeholder())

	assert.False(t, l.Apply(ImageErrored))
	assert.False(t, l.Apply(ImageNotLoaded))
	assert.Equal(t, ImageLoaded, l.Status())
}

func TestImageLifecycle_EmptyURLIsErrored(t *testing.T) {
	l := NewImageLifecycle("")
	assert.Equal(t, ImageErrored, l.Status())
	assert.Equal(t, PlaceholderNotFound, l.Placeholder())
	assert.False(t, l.Apply(ImageLoaded))
}

func TestCard_DrawerDoesNotTouchRecord(t *testing.T) {
	rec := models.MediaRecord{ID: "1", Title: "Gig", Creator: "Hari", CreatedAt: "2024", Media: []string{"a.png"}}
	c := New(imageCategory(), rec)

	assert.Nil(t, c.View().Details)
	assert.True(t, c.ToggleDrawer())

	v := c.View()
	require.NotNil(t, v.Details)
	assert.Equal(t, "1", v.Details.ID)
	assert.Equal(t, "Gig", v.Details.Title)
	assert.Equal(t, "Hari", v.Details.Creator)
	assert.Equal(t, rec, c.Record())

	assert.False(t, c.ToggleDrawer())
	assert.False(t, c.View().DrawerOpen)
}

func TestCard_DrawerForEmptyImage(t *testing.T) {
	rec := models.MediaRecord{ID: "2", Title: "Logo B", Creator: "Mira", Media: []string{""}}
	c := New(imageCategory(), rec)

	assert.Equal(t, ImageErrored, c.View().Media[0].Status)
	assert.Equal(t, PlaceholderNotFound, c.View().Media[0].Placeholder)
	require.True(t, c.ToggleDrawer())

	d := c.View().Details
	require.NotNil(t, d)
	assert.Equal(t, "2", d.ID)
	assert.Equal(t, "Mira", d.Creator)
	assert.Equal(t, "Logo B", d.Title)
}

func TestCard_RecordIsCopied(t *testing.T) {
	rec := models.MediaRecord{ID: "1", Media: []string{"a.png"}}
	c := New(imageCategory(), rec)

	rec.Media[0] = "changed.png"
	assert.Equal(t, "a.png", c.Record().Media[0])

	out := c.Record()
	out.Media[0] = "also-changed.png"
	assert.Equal(t, "a.png", c.View().Media[0].URL)
}

func TestCard_ImageEvents(t *testing.T) {
	c := New(models.CategoryDefinition{Kind: models.MediaKindWebsite}, models.MediaRecord{
		ID:    "w",
		Media: []string{"1.png", "", "3.png", "4.png"},
	})

	v := c.View()
	require.Len(t, v.Media, 4)
	assert.Equal(t, ImageErrored, v.Media[1].Status)
	assert.Equal(t, PlaceholderNotFound, v.Media[1].Placeholder)

	require.NoError(t, c.ImageEvent(0, ImageLoaded))
	require.NoError(t, c.ImageEvent(2, ImageErrored))
	require.NoError(t, c.ImageEvent(2, ImageLoaded))

	v = c.View()
	assert.Equal(t, ImageLoaded, v.Media[0].Status)
	assert.Equal(t, ImageErrored, v.Media[2].Status)
	assert.Equal(t, ImageNotLoaded, v.Media[3].Status)

	assert.ErrorIs(t, c.ImageEvent(4, ImageLoaded), ErrSlotOutOfRange)
	assert.ErrorIs(t, c.ImageEvent(0, ImageStatus("bogus")), ErrUnknownStatus)
}

func TestCard_ImageWithoutPlayback(t *testing.T) {
	c := New(imageCategory(), models.MediaRecord{ID: "1", Media: []string{"a.png"}})

	assert.False(t, c.Playable())
	assert.Nil(t, c.View().Playback)
	assert.ErrorIs(t, c.Observe(1), ErrNotPlayable)
	assert.ErrorIs(t, c.TogglePlay(), ErrNotPlayable)
}

func TestCard_VisibilityPlayback(t *testing.T) {
	c := New(videoCategory(), models.MediaRecord{ID: "r1", Media: []string{"r1.mp4"}})

	pv := c.View().Playback
	require.NotNil(t, pv)
	assert.False(t, pv.Playing)
	assert.True(t, pv.Muted)

	require.NoError(t, c.Observe(0.85))
	assert.True(t, c.View().Playback.Playing)

	require.NoError(t, c.Observe(0.5))
	assert.False(t, c.View().Playback.Playing)

	require.NoError(t, c.Observe(0.8))
	assert.True(t, c.View().Playback.Playing)

	require.NoError(t, c.AutoplayBlocked())
	pv = c.View().Playback
	assert.False(t, pv.Playing)
	assert.True(t, pv.Blocked)

	require.NoError(t, c.ToggleMute())
	assert.False(t, c.View().Playback.Muted)
}

func TestCard_IndependentPlayback(t *testing.T) {
	a := New(videoCategory(), models.MediaRecord{ID: "a", Media: []string{"a.mp4"}})
	b := New(videoCategory(), models.MediaRecord{ID: "b", Media: []string{"b.mp4"}})

	require.NoError(t, a.Observe(0.9))
	require.NoError(t, b.Observe(0.95))

	assert.True(t, a.View().Playback.Playing)
	assert.True(t, b.View().Playback.Playing)

	require.NoError(t, a.Observe(0.1))
	assert.False(t, a.View().Playback.Playing)
	assert.True(t, b.View().Playback.Playing)
}

func TestPlayback_ThresholdDefaults(t *testing.T) {
	assert.Equal(t, DefaultThreshold, NewPlayback(0).View().Threshold)
	assert.Equal(t, DefaultThreshold, NewPlayback(1.5).View().Threshold)
	assert.Equal(t, 0.5, NewPlayback(0.5).View().Threshold)

	p := NewPlayback(0.5)
	p.Observe(7)
	assert.Equal(t, 1.0, p.View().Ratio)
	assert.True(t, p.View().Playing)
	p.Observe(-1)
	assert.Equal(t, 0.0, p.View().Ratio)
	assert.False(t, p.View().Playing)
}
