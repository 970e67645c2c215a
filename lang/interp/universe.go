package interp

import (
	"github.com/JBreidfjord/loxide/lang/types"
)

// installUniverse defines the builtin functions available to every program
// in the evaluator's global scope.
func installUniverse(i *Interp) {
	i.globals.Define("clock", types.NewBuiltin("clock", 0,
		func(args []types.Value) (types.Value, error) {
			// wall clock, deliberately not monotonic: the value grows but may
			// jump with the host clock
			t := i.now()
			return types.Number(float64(t.UnixNano()) / 1e9), nil
		}))
}
