package testsupport

import (
	"testing"

	"github.com/goliatone/go-typeconfig/pkg/abstracttype"
)

// AssertContract runs abstracttype.CheckContract for every type registered in
// reg, one subtest per type, so a malformed configuration is caught no matter
// which abstract type introduced it.
func AssertContract(t *testing.T, reg *abstracttype.Registry, samples map[abstracttype.Type][]abstracttype.DisplayOptions) {
	t.Helper()

	types := reg.List()
	if len(types) == 0 {
		t.Fatalf("registry holds no abstract types")
	}
	for _, typ := range types {
		typ := typ
		t.Run(string(typ), func(t *testing.T) {
			cfg := reg.MustGet(typ)
			if err := abstracttype.CheckContract(cfg, samples[typ]...); err != nil {
				t.Fatalf("contract violated for %q:\n%v", typ, err)
			}
		})
	}
}
