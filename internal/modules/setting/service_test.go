package setting

import (
	"testing"

	"github.com/quillpress/core/internal/modules/media"
	"github.com/stretchr/testify/assert"
)

func TestIsFileKey(t *testing.T) {
	for _, key := range []string{"logo", "favicon", "ad_image_1", "ad_image_5"} {
		assert.True(t, IsFileKey(key), key)
	}
	for _, key := range []string{
		"site_title", "ad_image_6", "ad_image_0", "ad_link_1", "ad_button_2", "",
	} {
		assert.False(t, IsFileKey(key), key)
	}
}

func TestDirForKey(t *testing.T) {
	assert.Equal(t, media.DirSettings, DirForKey("logo"))
	assert.Equal(t, media.DirSettings, DirForKey("favicon"))
	assert.Equal(t, media.DirSettingsAds, DirForKey("ad_image_3"))
}
