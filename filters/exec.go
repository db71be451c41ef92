package filters

// `exec` pipes text through an external command, for example
// [exec, uglifyjs, --compress].

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"
)

func init() {
	Register("exec", MakeExecFilter)
}

type execFilter struct {
	command string
	args    []string
}

func MakeExecFilter(args []string) (Filter, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("exec: no command given")
	}
	return &execFilter{command: args[0], args: args[1:]}, nil
}

func (f *execFilter) Name() string { return fmt.Sprintf("exec %s %q", f.command, f.args) }

func (f *execFilter) Apply(s string) (out string, err error) {
	cmd := exec.Command(f.command, f.args...)
	cmd.Stdin = strings.NewReader(s)
	var buf, stderr bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &stderr
	err = cmd.Run()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("%w: %s", err, msg)
		}
		return "", err
	}
	return buf.String(), nil
}
