package shader

import (
	"fmt"

	"github.com/gogpu/naga"
)

// validateWGSL compiles WGSL to SPIR-V with naga and discards the output. A successful
// compile proves the program parses and type-checks; the device still compiles the
// WGSL itself when the pipeline is built.
func validateWGSL(key, source string) error {
	spirv, err := naga.Compile(source)
	if err != nil {
		return fmt.Errorf("shader %s: failed to compile: %w", key, err)
	}
	if len(spirv) < 4 {
		return fmt.Errorf("shader %s: compiler produced %d bytes of SPIR-V", key, len(spirv))
	}
	return nil
}
