package learning

import "fmt"

// Label is the class assigned to a document
type Label string

const (
	Ham  Label = "ham"
	Spam Label = "spam"
)

// ParseLabel converts a string to a Label
func ParseLabel(s string) (Label, error) {
	switch Label(s) {
	case Ham, Spam:
		return Label(s), nil
	}
	return "", fmt.Errorf("unknown label: %q", s)
}

func (l Label) String() string {
	return string(l)
}
