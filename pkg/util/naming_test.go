package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestResourceName 覆盖常见的不规则复数形式
func TestResourceName(t *testing.T) {
	cases := map[string]string{
		"Foo":           "foos",
		"Policy":        "policies",
		"Box":           "boxes",
		"Ingress":       "ingresses",
		"Branch":        "branches",
		"NetworkPolicy": "networkpolicies",
		"Deployment":    "deployments",
	}

	for kind, want := range cases {
		assert.Equal(t, want, ResourceName(kind), "kind %q", kind)
	}
}

func TestIsPlural(t *testing.T) {
	assert.False(t, IsPlural("Foo"))
	assert.False(t, IsPlural("Policy"))
	assert.True(t, IsPlural("Foos"))
	assert.True(t, IsPlural("policies"))
	// 单复数同形的名词会被误判为复数，这是已知的权衡。
	assert.True(t, IsPlural("Sheep"))
}

func TestIsCapitalizedWord(t *testing.T) {
	assert.True(t, IsCapitalizedWord("Foo"))
	assert.True(t, IsCapitalizedWord("HTTPRoute"))
	assert.True(t, IsCapitalizedWord("FooBar2"))

	assert.False(t, IsCapitalizedWord(""))
	assert.False(t, IsCapitalizedWord("foo"))
	assert.False(t, IsCapitalizedWord("Foo-Bar"))
	assert.False(t, IsCapitalizedWord("Foo Bar"))
	assert.False(t, IsCapitalizedWord("foo_bar"))
}
