package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// enumValue is a string flag restricted to a fixed set of lowercase values.
type enumValue struct {
	target  *string
	allowed []string
	kind    string
}

var _ pflag.Value = (*enumValue)(nil)

func newEnumValue(target *string, def, kind string, allowed []string) *enumValue {
	*target = def
	return &enumValue{target: target, allowed: allowed, kind: kind}
}

func (e *enumValue) String() string {
	if e.target == nil {
		return ""
	}
	return *e.target
}

func (e *enumValue) Set(s string) error {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, a := range e.allowed {
		if s == a {
			*e.target = s
			return nil
		}
	}
	return fmt.Errorf("must be one of %s", strings.Join(e.allowed, ", "))
}

func (e *enumValue) Type() string { return e.kind }

// enumFlag registers an enumValue on fs.
func enumFlag(fs *pflag.FlagSet, target *string, name, def, kind, usage string, allowed []string) {
	fs.Var(newEnumValue(target, def, kind, allowed), name, usage)
}
