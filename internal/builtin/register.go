package builtin

import (
	"github.com/dop251/goja_nodejs/require"

	scrollbarmod "github.com/joeycumines/termscroll/internal/builtin/termui/scrollbar"
	"github.com/joeycumines/termscroll/internal/builtin/unicodetext"
)

// Prefix is prepended to every native module name.
const Prefix = "termscroll:"

// RegisterResult contains references to managers created during registration.
type RegisterResult struct {
	ScrollbarManager *scrollbarmod.Manager
}

// Register registers all native Go modules with the provided registry.
// Returns a RegisterResult containing references to created managers for further wiring.
func Register(registry *require.Registry) RegisterResult {
	scrollbarMgr := scrollbarmod.NewManager()
	registry.RegisterNativeModule(Prefix+"termui/scrollbar", scrollbarmod.Require(scrollbarMgr))
	registry.RegisterNativeModule(Prefix+"unicodetext", unicodetext.Require())

	return RegisterResult{
		ScrollbarManager: scrollbarMgr,
	}
}
