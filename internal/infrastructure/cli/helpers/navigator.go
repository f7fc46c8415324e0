package helpers

import (
	"io"

	"github.com/doeshing/modelscout/internal/ports"
)

// LoginNavigator sends the user to `modelscout login` by printing a hint.
type LoginNavigator struct {
	Out     io.Writer
	Command string
}

// RedirectToLogin implements ports.Navigator.
func (n LoginNavigator) RedirectToLogin(reason string) {
	if n.Out == nil {
		return
	}
	cmd := n.Command
	if cmd == "" {
		cmd = "modelscout login"
	}
	WarningColor.Fprintf(n.Out, "%s. Run `%s` to sign in.\n", capitalize(reason), cmd)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	return string(b)
}

var _ ports.Navigator = LoginNavigator{}
