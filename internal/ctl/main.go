package ctl

import (
	"context"
	"fmt"
	"io"
	"os"
)

// MainWithArgs runs classifyctl with args and returns the process exit code:
// 0 on success, 1 on command failure, 2 on usage errors.
func MainWithArgs(args []string) int {
	return run(context.Background(), args, os.Stdin, os.Stdout, os.Stderr)
}

func run(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) int {
	cfg := DefaultConfig()
	root := buildRootCmdWith(&cfg, in, out)
	root.SetErr(errOut)
	if len(args) == 0 {
		_ = root.Usage()
		return 2
	}
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(errOut, "classifyctl:", err)
		return 1
	}
	return 0
}
