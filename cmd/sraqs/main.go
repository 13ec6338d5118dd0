package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/GenomeTrakrUnofficial/sra-quick-submit/internal/cli"
	"github.com/GenomeTrakrUnofficial/sra-quick-submit/pkg/sraqs"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
			os.Exit(sraqs.ExitPanic)
		}
	}()

	if os.Getenv("SRAQS_TEST_PANIC") == "1" {
		panic("intentional test panic")
	}

	if err := cli.Execute(); err != nil {
		os.Exit(sraqs.ExitCodeForError(err))
	}
}
