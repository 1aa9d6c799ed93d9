package caller

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"

	"vibelog/src/internal/core"
)

func resolveDeep() string   { return Resolve() }
func resolveMiddle() string { return resolveDeep() }
func resolveOuter() string  { return resolveMiddle() }

func resolveRecursive(n int) string {
	if n == 0 {
		return Resolve()
	}
	return resolveRecursive(n - 1)
}

func TestResolve_Direct(t *testing.T) {
	source := Resolve()
	assert.Contains(t, source, "caller_test.go")
	assert.Contains(t, source, "TestResolve_Direct")
	assert.Regexp(t, regexp.MustCompile(`^caller_test\.go:\d+ in `), source)
}

func TestResolve_Nested(t *testing.T) {
	// Three levels deep: the immediate caller wins, not the outermost.
	source := resolveOuter()
	assert.Contains(t, source, "caller_test.go")
	assert.Contains(t, source, "resolveDeep")
	assert.NotContains(t, source, "resolveOuter")
}

func TestResolve_Recursive(t *testing.T) {
	source := resolveRecursive(5)
	assert.Contains(t, source, "resolveRecursive")
}

func TestResolve_AliasedReference(t *testing.T) {
	resolve := Resolve
	source := resolve()
	assert.Contains(t, source, "caller_test.go")
	assert.Contains(t, source, "TestResolve_AliasedReference")
}

func TestResolve_FromDeferredHandler(t *testing.T) {
	var source string
	func() {
		defer func() {
			if recover() != nil {
				source = Resolve()
			}
		}()
		panic("boom")
	}()
	assert.Contains(t, source, "caller_test.go")
	assert.NotEqual(t, core.UnknownSource, source)
}
