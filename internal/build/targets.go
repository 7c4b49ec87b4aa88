package build

import (
	"github.com/mcell/classgen/internal/codegen"
	"github.com/mcell/classgen/internal/codegen/cpp"
)

// NewRegistry returns a registry with every built-in target
func NewRegistry() *codegen.Registry {
	r := codegen.NewRegistry()
	r.Register(cpp.TargetName, func(opts codegen.Options) codegen.Target {
		return cpp.NewGenerator(opts)
	})
	return r
}
