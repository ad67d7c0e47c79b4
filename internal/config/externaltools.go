package config

import (
	"errors"
	"strings"

	"rudder/internal/domain"
)

// ErrBadToolName is returned when an external tool name is empty or
// contains whitespace.
var ErrBadToolName = errors.New("external tool name must be non-empty and contain no whitespace")

// validToolName reports whether name can be used as an external tool name.
func validToolName(name string) bool {
	if name == "" {
		return false
	}
	return !strings.ContainsAny(name, " \t\n\r")
}

// AddExternalTool appends name to cfg.ExternalTools. Adding a name that is
// already present is a no-op.
func AddExternalTool(cfg *domain.Config, name string) error {
	name = strings.TrimSpace(name)
	if !validToolName(name) {
		return ErrBadToolName
	}
	for _, existing := range cfg.ExternalTools {
		if existing == name {
			return nil
		}
	}
	cfg.ExternalTools = append(cfg.ExternalTools, name)
	return nil
}

// RemoveExternalTool removes name from cfg.ExternalTools. Removing a name
// that is not present is a no-op.
func RemoveExternalTool(cfg *domain.Config, name string) {
	name = strings.TrimSpace(name)
	kept := cfg.ExternalTools[:0]
	for _, existing := range cfg.ExternalTools {
		if existing != name {
			kept = append(kept, existing)
		}
	}
	cfg.ExternalTools = kept
}

// IsExternalTool reports whether name is on cfg's external tool allowlist.
func IsExternalTool(cfg *domain.Config, name string) bool {
	for _, existing := range cfg.ExternalTools {
		if existing == name {
			return true
		}
	}
	return false
}
