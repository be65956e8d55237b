package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"
)

// AssertGolden compares a snapshot against testdata/golden/<name>.golden
// in the caller's package. The compiler tests use it to pin the full
// statement corpus: one snapshot per dialect covering every signature.
//
// To regenerate golden files, run:
//
//	go test ./... -update
func AssertGolden(t *testing.T, name string, snapshot []byte) {
	t.Helper()

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, snapshot)
}
