package dialog

import "fmt"

// ConfigurationError reports a dialog that was assembled incorrectly, such as
// an entry row that was never added to a section.
type ConfigurationError struct {
	Op      string
	Element string
	Msg     string
}

func (e *ConfigurationError) Error() string {
	if e.Element != "" {
		return fmt.Sprintf("%s %q: %s", e.Op, e.Element, e.Msg)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Msg)
}

const msgOutsideSection = "entry element used outside a section context"
