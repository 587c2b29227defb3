package flags

import (
	"fmt"
)

// Arg is a flag arg represented by its name and optional value
type Arg struct {
	Name  string
	Value interface{}
}

func (a Arg) String() string {
	s := " --" + a.Name

	if a.Value == nil {
		return s
	}

	if str, ok := a.Value.(string); ok && str == "" {
		return fmt.Sprintf("%s %q", s, str)
	}
	return fmt.Sprintf("%s %v", s, a.Value)
}

// Args renders the args as a single command line suffix
func Args(args ...Arg) string {
	var s string
	for _, arg := range args {
		s += arg.String()
	}
	return s
}
