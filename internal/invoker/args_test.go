package invoker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractArgs(t *testing.T) {
	tests := []struct {
		name  string
		flags ToolFlags
		want  []string
	}{
		{name: "no flags", want: []string{"-o", "data/dir/a.nbl", "src/dir/a.nbl"}},
		{name: "debug", flags: ToolFlags{Debug: true}, want: []string{"-d", "-o", "data/dir/a.nbl", "src/dir/a.nbl"}},
		{name: "debug and verbose", flags: ToolFlags{Debug: true, Verbose: true}, want: []string{"-d", "-v", "-o", "data/dir/a.nbl", "src/dir/a.nbl"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractArgs(tt.flags, "data/dir/a.nbl", "src/dir/a.nbl"))
		})
	}
}

func TestListArgs(t *testing.T) {
	assert.Equal(t, []string{"-t", "a.nbl"}, ListArgs(ToolFlags{}, "a.nbl"))
	assert.Equal(t, []string{"-v", "-t", "a.nbl"}, ListArgs(ToolFlags{Verbose: true}, "a.nbl"))
}
