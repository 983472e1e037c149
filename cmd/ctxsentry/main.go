// ctxsentry watches Claude Code transcripts and nags for checkpoints
// before context runs out.
package main

import (
	"os"

	"github.com/ctxsentry/ctxsentry/internal/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
