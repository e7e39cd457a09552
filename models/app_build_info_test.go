package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppBuildInfo(t *testing.T) {
	info := NewAppBuildInfo("v1.0.0", "2026-01-02", "abc123")
	assert.Equal(t, "v1.0.0", info.BuildVersion())
	assert.Equal(t, "commit abc123, built 2026-01-02", info.String())

	empty := NewAppBuildInfo("", "", "")
	assert.Empty(t, empty.BuildVersion())
	assert.Equal(t, "commit N/A, built N/A", empty.String())
}
