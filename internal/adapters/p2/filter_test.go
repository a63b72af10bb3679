package p2_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/eqrun/internal/adapters/p2"
	"go.trai.ch/eqrun/internal/core/domain"
)

func TestFilter_Match(t *testing.T) {
	env := map[string]string{
		"osgi.os":   "linux",
		"osgi.ws":   "gtk",
		"osgi.arch": "x86_64",
		"version":   "1.7",
	}

	tests := []struct {
		filter string
		want   bool
	}{
		{"(osgi.os=linux)", true},
		{"(osgi.os=win32)", false},
		{"(&(osgi.os=linux)(osgi.ws=gtk))", true},
		{"(& (osgi.os=linux) (osgi.arch=aarch64))", false},
		{"(|(osgi.os=win32)(osgi.os=linux))", true},
		{"(!(osgi.os=macosx))", true},
		{"(osgi.arch=x86*)", true},
		{"(osgi.arch=*64)", true},
		{"(osgi.nl=*)", false},
		{"(osgi.os=*)", true},
		{"(version>=1.6)", true},
		{"(version<=1.6)", false},
		{"(version=1.7.0)", true},
		{"(osgi.os~=LINUX)", true},
	}
	for _, tt := range tests {
		t.Run(tt.filter, func(t *testing.T) {
			f, err := p2.ParseFilter(tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, f.Match(env))
		})
	}
}

func TestParseFilter_Invalid(t *testing.T) {
	for _, s := range []string{"", "osgi.os=linux", "(osgi.os=linux", "(&)", "(=linux)", "(osgi.os!linux)", "(a=b))"} {
		t.Run(s, func(t *testing.T) {
			_, err := p2.ParseFilter(s)
			require.Error(t, err)
			assert.ErrorContains(t, err, domain.ErrInvalidFilter.Error())
		})
	}
}

func TestParseFilter_Escapes(t *testing.T) {
	f, err := p2.ParseFilter(`(name=a\(b\))`)
	require.NoError(t, err)
	assert.True(t, f.Match(map[string]string{"name": "a(b)"}))
}
