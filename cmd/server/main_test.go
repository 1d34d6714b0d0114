package main

import (
	"testing"
)

// main must return immediately under SKIP_SERVER_RUN so the test binary
// does not block on a listening server.
func TestMainSkipsWhenEnvSet(t *testing.T) {
	t.Setenv("SKIP_SERVER_RUN", "1")
	main()
}
