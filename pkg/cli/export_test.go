package cli

import (
	"context"
	"io"
)

// RunWithWriter runs the CLI with command output sent to w
func RunWithWriter(ctx context.Context, args []string, w io.Writer) error {
	return run(ctx, args, "test", w)
}

var Money = money
