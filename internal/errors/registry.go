package errors

import (
	"sort"
	"sync"
)

// Template defines a registered error code.
type Template struct {
	Category Category
	Message  string
	Detail   string
}

const (
	CodeUnknownAction = "S001"
	CodeRenderLoop    = "S002"
	CodeRootClosed    = "S003"
	CodeStaleWrite    = "S004"
	CodeFetchFailed   = "S005"

	CodeInvalidConfig = "S010"
	CodeConfigRead    = "S011"

	CodeCommandFailed = "S020"
)

// Sentinels for errors.Is.
var (
	ErrUnknownAction = New(CodeUnknownAction)
	ErrRenderLoop    = New(CodeRenderLoop)
	ErrRootClosed    = New(CodeRootClosed)
	ErrStaleWrite    = New(CodeStaleWrite)
	ErrFetchFailed   = New(CodeFetchFailed)
	ErrInvalidConfig = New(CodeInvalidConfig)
)

var (
	registryMu sync.RWMutex
	registry   = map[string]Template{
		CodeUnknownAction: {
			Category: CategoryRuntime,
			Message:  "Unknown action",
			Detail:   "The named action is not part of the action set produced by the schema's action factory.",
		},
		CodeRenderLoop: {
			Category: CategoryRuntime,
			Message:  "Render loop limit exceeded",
			Detail:   "Flushing kept producing new work. An effect or render is probably writing state it also reads.",
		},
		CodeRootClosed: {
			Category: CategoryRuntime,
			Message:  "Root closed",
			Detail:   "The host root was closed; its tree is disposed and no further updates are applied.",
		},
		CodeStaleWrite: {
			Category: CategoryRuntime,
			Message:  "State write after provider unmount",
			Detail:   "A setter captured by an action fired after its provider was unmounted. The write was dropped.",
		},
		CodeFetchFailed: {
			Category: CategoryRuntime,
			Message:  "Fetch failed",
			Detail:   "An action's outbound request did not complete successfully.",
		},
		CodeInvalidConfig: {
			Category: CategoryConfig,
			Message:  "Invalid configuration",
			Detail:   "One or more configuration values failed validation.",
		},
		CodeConfigRead: {
			Category: CategoryConfig,
			Message:  "Configuration could not be read",
			Detail:   "The configuration file exists but could not be read or parsed.",
		},
		CodeCommandFailed: {
			Category: CategoryCLI,
			Message:  "Command failed",
		},
	}
)

// GetTemplate returns the template registered for code.
func GetTemplate(code string) (Template, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	t, ok := registry[code]
	return t, ok
}

// Register adds or replaces a code. Applications embedding statectx may
// register their own codes outside the S prefix.
func Register(code string, template Template) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[code] = template
}

// GetAllCodes returns every registered code in sorted order.
func GetAllCodes() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
