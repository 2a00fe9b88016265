package formatter

import (
	"fmt"
	"io"
	"strings"
)

// Var is one KEY=value pair of shell output. Order is preserved, since
// scripts read these lines positionally as often as they eval them.
type Var struct {
	Key   string
	Value string
}

// WriteShellVars writes KEY='value' lines suitable for eval in a POSIX
// shell. Single quotes inside values are escaped with the usual
// close-escape-reopen idiom.
func WriteShellVars(w io.Writer, vars []Var) error {
	for _, v := range vars {
		quoted := "'" + strings.ReplaceAll(v.Value, "'", `'\''`) + "'"
		if _, err := fmt.Fprintf(w, "%s=%s\n", v.Key, quoted); err != nil {
			return err
		}
	}
	return nil
}
