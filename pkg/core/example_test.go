package core_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tisearch/tisearch/pkg/core"
)

// ExampleSearch searches a folder and prints each match in export format.
func ExampleSearch() {
	dir, err := os.MkdirTemp("", "core-example")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(dir)
	_ = os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("buy milk\nCall Alice\n"), 0o644)

	matches, sum, err := core.Search(context.Background(), dir, "alice", core.Config{})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	for _, m := range matches {
		fmt.Printf("%s:%d %s\n", filepath.Base(m.Path), m.Line, m.Text)
	}
	fmt.Println("files:", sum.FilesScanned)
	// Output:
	// notes.txt:2 Call Alice
	// files: 1
}

// ExampleNewEngine consumes the event stream directly.
func ExampleNewEngine() {
	dir, err := os.MkdirTemp("", "core-example")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(dir)
	_ = os.WriteFile(filepath.Join(dir, "a.txt"), []byte("hello\n"), 0o644)
	_ = os.WriteFile(filepath.Join(dir, "b.txt"), []byte("HELLO\n"), 0o644)

	eng := core.NewEngine(core.Config{})
	events, err := eng.Start(context.Background(), core.Request{Root: dir, Term: "Hello"})
	if err != nil {
		panic(err)
	}
	var matches int
	for ev := range events {
		switch ev := ev.(type) {
		case core.MatchEvent:
			matches++
		case core.ProgressEvent:
			fmt.Println("progress", ev.Percent)
		case core.CompletionEvent:
			fmt.Println("done", ev.Matches, matches)
		}
	}
	// Output:
	// progress 50
	// progress 100
	// done 2 2
}
