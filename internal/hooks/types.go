package hooks

// Config is the hooks section of a form definition.
type Config struct {
	Version int         `yaml:"version,omitempty"`
	Hooks   HooksConfig `yaml:"hooks,omitempty"`
}

// HooksConfig contains all hook configurations.
type HooksConfig struct {
	OnEnter  *HookConfig `yaml:"on_enter,omitempty"`
	OnExit   *HookConfig `yaml:"on_exit,omitempty"`
	OnSubmit *HookConfig `yaml:"on_submit,omitempty"`
	// CanExit blocks leaving a step forward when the command exits non-zero.
	CanExit *HookConfig `yaml:"can_exit,omitempty"`
}

// HookConfig defines a single hook's configuration.
type HookConfig struct {
	Command string `yaml:"command"`
	Timeout int    `yaml:"timeout,omitempty"` // seconds, default 30
}

// DefaultTimeout is the default timeout for hook execution in seconds.
const DefaultTimeout = 30
