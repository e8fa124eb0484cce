package utils

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestParseEnvConfigList(t *testing.T) {
	t.Setenv("CORDOVACTL_LIST", "a")
	assert.Equal(t, map[int]string{-1: "a"}, ParseEnvConfigList("CORDOVACTL_LIST"))

	t.Setenv("CORDOVACTL_LIST_0", "b")
	t.Setenv("CORDOVACTL_LIST_1", "c")
	assert.Equal(t, map[int]string{-1: "a", 0: "b", 1: "c"}, ParseEnvConfigList("CORDOVACTL_LIST"))
}
