package gtkui

import (
	"strings"
	"testing"
)

func TestBridgeScript(t *testing.T) {
	script := bridgeScript()
	for _, want := range []string{
		`window["__webshell_post"]`,
		"window.ipc = Object.freeze(",
		"postMessage: function (message)",
		"String(message)",
	} {
		if !strings.Contains(script, want) {
			t.Errorf("bridge script missing %q:\n%s", want, script)
		}
	}
}
