// FILE: lixenwraith/c2rust-config/config_test.go
package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	c := New()
	assert.Equal(t, []string{SectionGlobal, SectionModel, SectionFeature}, c.Root().Keys())
	assert.Empty(t, c.Features())
}

func TestNormalizeFeature(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr error
	}{
		{"", DefaultFeature, nil},
		{"  ", DefaultFeature, nil},
		{"DEBUG", "debug", nil},
		{"Release", "release", nil},
		{"debug", "debug", nil},
		{"a.b", "", ErrInvalidKey},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := NormalizeFeature(tt.in)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSection(t *testing.T) {
	t.Run("GlobalAndModelAlwaysExist", func(t *testing.T) {
		c := New()
		for _, scope := range []Scope{ScopeGlobal, ScopeModel} {
			s, err := c.Section(scope, "", false)
			require.NoError(t, err)
			assert.Equal(t, string(scope), s.Name)
			assert.Empty(t, s.Feature)
		}
	})

	t.Run("FeatureOutsideMake", func(t *testing.T) {
		_, err := New().Section(ScopeModel, "debug", true)
		require.ErrorIs(t, err, ErrInvalidOperation)
		assert.Contains(t, err.Error(), "--feature can only be used with --make")
	})

	t.Run("MissingFeature", func(t *testing.T) {
		_, err := New().Section(ScopeMake, "debug", false)
		require.ErrorIs(t, err, ErrFeatureNotFound)
		assert.Equal(t, "feature 'feature.debug' not found", err.Error())
	})

	t.Run("CaseInsensitiveIdentity", func(t *testing.T) {
		c := New()
		upper, err := c.Section(ScopeMake, "DEBUG", true)
		require.NoError(t, err)
		_, err = upper.Set("compiler", "clang")
		require.NoError(t, err)

		lower, err := c.Section(ScopeMake, "debug", false)
		require.NoError(t, err)
		assert.Equal(t, "feature.debug", lower.Name)
		assert.Same(t, upper.Table(), lower.Table())
		assert.Equal(t, []string{"debug"}, c.Features())
	})

	t.Run("DefaultFeature", func(t *testing.T) {
		s, err := New().Section(ScopeMake, "", true)
		require.NoError(t, err)
		assert.Equal(t, "feature.default", s.Name)
		assert.Equal(t, DefaultFeature, s.Feature)
	})

	t.Run("UnknownScope", func(t *testing.T) {
		_, err := New().Section(Scope("nope"), "", false)
		assert.ErrorIs(t, err, ErrInvalidOperation)
	})

	t.Run("NonTableFeatureEntry", func(t *testing.T) {
		c := New()
		features, err := c.topLevel(SectionFeature)
		require.NoError(t, err)
		features.Put("broken", Scalar("x"))

		_, err = c.Section(ScopeMake, "broken", false)
		assert.ErrorIs(t, err, ErrTypeMismatch)
		assert.Empty(t, c.Features())
	})
}
