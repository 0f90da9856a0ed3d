package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModeTitle(t *testing.T) {
	assert.Equal(t, "featherremote: remote [Mac]", ModeTitle("featherremote", "remote", "Mac"))
	assert.Equal(t, "featherremote: config_select", ModeTitle("featherremote", "config_select", ""))
}
