package promotion

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBanner(t *testing.T) {
	t.Run("creates active banner", func(t *testing.T) {
		b, err := NewBanner("Summer Sale", "https://cdn.example.com/summer.jpg", BannerPositionHero)
		require.NoError(t, err)
		assert.True(t, b.IsActive)
		assert.Equal(t, BannerPositionHero, b.Position)
	})

	t.Run("rejects blank title", func(t *testing.T) {
		_, err := NewBanner("  ", "https://cdn.example.com/x.jpg", BannerPositionStrip)
		assert.Error(t, err)
	})

	t.Run("rejects missing image", func(t *testing.T) {
		_, err := NewBanner("Sale", "", BannerPositionStrip)
		assert.Error(t, err)
	})

	t.Run("rejects unknown position", func(t *testing.T) {
		_, err := NewBanner("Sale", "https://cdn.example.com/x.jpg", BannerPosition("footer"))
		assert.Error(t, err)
	})
}

func TestBannerVisibility(t *testing.T) {
	now := time.Now()

	t.Run("active banner without window is visible", func(t *testing.T) {
		b, err := NewBanner("Sale", "https://cdn.example.com/x.jpg", BannerPositionSidebar)
		require.NoError(t, err)
		assert.True(t, b.IsVisible(now))
	})

	t.Run("deactivated banner is hidden", func(t *testing.T) {
		b, err := NewBanner("Sale", "https://cdn.example.com/x.jpg", BannerPositionSidebar)
		require.NoError(t, err)
		b.Deactivate()
		assert.False(t, b.IsVisible(now))
		b.Activate()
		assert.True(t, b.IsVisible(now))
	})

	t.Run("respects display window", func(t *testing.T) {
		b, err := NewBanner("Sale", "https://cdn.example.com/x.jpg", BannerPositionHero)
		require.NoError(t, err)
		start := now.Add(time.Hour)
		end := now.Add(2 * time.Hour)
		require.NoError(t, b.Schedule(&start, &end))

		assert.False(t, b.IsVisible(now))
		assert.True(t, b.IsVisible(now.Add(90*time.Minute)))
		assert.False(t, b.IsVisible(now.Add(3*time.Hour)))
	})

	t.Run("rejects inverted window", func(t *testing.T) {
		b, err := NewBanner("Sale", "https://cdn.example.com/x.jpg", BannerPositionHero)
		require.NoError(t, err)
		start := now.Add(2 * time.Hour)
		end := now.Add(time.Hour)
		assert.Error(t, b.Schedule(&start, &end))
	})
}

func TestBannerUpdate(t *testing.T) {
	b, err := NewBanner("Old", "https://cdn.example.com/old.jpg", BannerPositionHero)
	require.NoError(t, err)

	require.NoError(t, b.Update("New Title", "A subtitle", "https://cdn.example.com/new.jpg",
		"/sale", BannerPositionStrip))
	assert.Equal(t, "New Title", b.Title)
	assert.Equal(t, "A subtitle", b.Subtitle)
	assert.Equal(t, BannerPositionStrip, b.Position)
	assert.Equal(t, "/sale", b.LinkURL)

	assert.Error(t, b.Update("", "", "https://cdn.example.com/new.jpg", "", BannerPositionStrip))
}
