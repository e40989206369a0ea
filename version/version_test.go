package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetResolvesRuntimeFacts(t *testing.T) {
	info := Get()
	assert.NotEmpty(t, info.GoVersion)
	assert.Contains(t, info.Platform, "/")
	assert.Contains(t, info.String(), "bindgen")
}

func TestShort(t *testing.T) {
	assert.Equal(t, "0123abc", Info{CommitHash: "0123abcdef0123abcdef"}.Short())
	// Dev builds carry no full hash; Short passes them through.
	assert.Equal(t, "dev", Info{CommitHash: "dev"}.Short())
}
