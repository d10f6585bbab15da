package cell

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

type recordingSink struct {
	values []int
}

func (s *recordingSink) SetMirroredValue(v int) {
	s.values = append(s.values, v)
}
