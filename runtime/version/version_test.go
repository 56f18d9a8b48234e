package version

import (
	"strings"
	"testing"

	"github.com/ssvlabs/ssv-keys/testing/assert"
)

func TestVersion(t *testing.T) {
	assert.Equal(t, "v0.0.0/Local build. Built at: Moments ago", Version())
	assert.Equal(t, "v0.0.0", SemanticVersion())
	assert.Equal(t, true, strings.HasPrefix(BuildData(), Version()+" (go"))
}
