package gtkui

import "fmt"

// bindingName is the function the renderer exposes to page scripts.
const bindingName = "__webshell_post"

// bridgeScript installs window.ipc.postMessage before any page script runs.
// Non-string arguments are stringified so the dispatcher only sees strings.
func bridgeScript() string {
	return fmt.Sprintf(`(function () {
  var post = window[%q];
  window.ipc = Object.freeze({
    postMessage: function (message) {
      return post(typeof message === "string" ? message : String(message));
    }
  });
})();`, bindingName)
}
