package main

import (
	"fmt"
	"os"
	"strings"
)

// uiMode is the value of --ui; it implements pflag.Value so a bad mode
// fails during flag parsing and a bare --ui means "on".
type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

func readUIMode(value string) (uiMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return uiModeAuto, nil
	case "on", "true":
		return uiModeOn, nil
	case "off", "false":
		return uiModeOff, nil
	default:
		return "", fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
	}
}

func (m *uiMode) Set(value string) error {
	mode, err := readUIMode(value)
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

func (m *uiMode) String() string { return string(*m) }

func (m *uiMode) Type() string { return "mode" }

// enabled: the progress view draws on stderr, so auto follows stderr
// and a quiet run never starts it.
func (m uiMode) enabled(quiet bool) bool {
	switch m {
	case uiModeOn:
		return true
	case uiModeOff:
		return false
	default:
		return !quiet && isTerminal(os.Stderr)
	}
}
