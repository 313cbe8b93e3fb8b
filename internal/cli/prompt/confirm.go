// Package prompt provides the interactive confirmations CLI commands use
// before overwriting anything.
package prompt

import (
	"errors"
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
)

// ErrAborted is returned when the user aborts a prompt (Ctrl+C).
var ErrAborted = errors.New("aborted")

// Confirm asks a yes/no question and reports the answer. Ctrl+C surfaces
// as ErrAborted; a plain "n" is a regular false.
func Confirm(label string) (bool, error) {
	p := promptui.Prompt{
		Label:     fmt.Sprintf("%s [y/N]", label),
		IsConfirm: true,
	}

	result, err := p.Run()
	if err != nil {
		if errors.Is(err, promptui.ErrInterrupt) {
			return false, ErrAborted
		}
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}
		return false, err
	}

	answer := strings.ToLower(result)
	return answer == "y" || answer == "yes", nil
}

// ConfirmOverwrite returns true immediately when force is set, otherwise
// asks the user.
func ConfirmOverwrite(label string, force bool) (bool, error) {
	if force {
		return true, nil
	}
	return Confirm(label)
}
