package generate

import (
	"fmt"

	"github.com/llir/llvm/ir"
)

// verifyFunc checks the structural well-formedness of a generated function:
// every block ends in exactly one terminator and every branch targets a block
// of the same function.
func verifyFunc(fn *ir.Func) error {
	if len(fn.Blocks) == 0 {
		return fmt.Errorf("function has no blocks")
	}

	blocks := make(map[*ir.Block]struct{}, len(fn.Blocks))
	for _, block := range fn.Blocks {
		if _, ok := blocks[block]; ok {
			return fmt.Errorf("block `%s` appears twice", block.Name())
		}

		blocks[block] = struct{}{}
	}

	for _, block := range fn.Blocks {
		if block.Term == nil {
			return fmt.Errorf("block `%s` has no terminator", block.Name())
		}

		for _, succ := range block.Term.Succs() {
			if _, ok := blocks[succ]; !ok {
				return fmt.Errorf("block `%s` branches to `%s` outside the function", block.Name(), succ.Name())
			}
		}
	}

	return nil
}
