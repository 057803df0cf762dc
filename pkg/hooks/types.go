// Package hooks runs user-provided Tengo scripts around onboarding
// operations.
package hooks

// HookType represents the type of hook.
type HookType string

// Supported hook types.
const (
	PreOnboard  HookType = "pre-onboard"
	PostOnboard HookType = "post-onboard"
)

// Hook represents a hook script with its type and content.
type Hook struct {
	Type    HookType
	Content string
}

// HookContext contains information passed to hook scripts.
type HookContext struct {
	Source       string
	Strategy     string
	ArtifactPath string
	FileName     string
	Vars         map[string]interface{}
}

// Manager defines the interface for managing hooks.
type Manager interface {
	// Execute runs the specified hook type with the given context
	Execute(hookType HookType, ctx HookContext) error

	// AddHook adds a new hook
	AddHook(hook Hook) error

	// RemoveHook removes a hook of the specified type
	RemoveHook(hookType HookType) error

	// HasHook checks if a hook of the specified type exists
	HasHook(hookType HookType) bool
}
