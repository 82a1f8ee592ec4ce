package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"example.com/notes-screen/internal/notes"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run a scripted session against a seeded store and print every notification",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDemo(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(demoCmd)
}

func runDemo(w io.Writer) error {
	store := notes.NewSeededStore()

	var werr error
	printf := func(format string, a ...any) {
		if werr == nil {
			_, werr = fmt.Fprintf(w, format, a...)
		}
	}

	notesSub := store.SubscribeNotes(func(list []notes.Note) {
		printf("notes: %s\n", formatNotes(list))
	})
	formSub := store.SubscribeFormVisible(func(v bool) {
		printf("form visible: %t\n", v)
	})
	defer store.Unsubscribe(notesSub)
	defer store.Unsubscribe(formSub)

	steps := []struct {
		label string
		run   func()
	}{
		{"toggle form", store.ToggleFormVisibility},
		{"add Hi1", func() { store.Add(notes.Note{Title: "Hi1", Content: "Hello"}) }},
		{"remove Hi1", func() { store.Remove(notes.Note{Title: "Hi1", Content: "Hello"}) }},
		{"remove missing", func() { store.Remove(notes.Note{Title: "nope", Content: "nope"}) }},
		{"hide form", store.HideForm},
		{"clear", store.Clear},
	}
	for _, s := range steps {
		printf("> %s\n", s.label)
		s.run()
	}
	if werr != nil {
		return fmt.Errorf("demo output: %w", werr)
	}
	return nil
}

func formatNotes(list []notes.Note) string {
	parts := make([]string, 0, len(list))
	for _, n := range list {
		parts = append(parts, fmt.Sprintf("(%s, %s)", n.Title, n.Content))
	}
	return "[" + strings.Join(parts, " ") + "]"
}
