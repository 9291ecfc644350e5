package internal

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	progressStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// spinner draws frames on w until stopped
type spinner struct {
	w       io.Writer
	message string
	done    chan struct{}
	wg      sync.WaitGroup
}

func startSpinner(w io.Writer, message string) *spinner {
	s := &spinner{w: w, message: message, done: make(chan struct{})}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for i := 0; ; i++ {
			select {
			case <-s.done:
				return
			case <-ticker.C:
				frame := spinnerFrames[i%len(spinnerFrames)]
				fmt.Fprintf(s.w, "\r%s %s", progressStyle.Render(frame), s.message)
			}
		}
	}()
	return s
}

func (s *spinner) stop(ok bool) {
	close(s.done)
	s.wg.Wait()
	mark := successStyle.Render("✓")
	if !ok {
		mark = errorStyle.Render("✗")
	}
	fmt.Fprintf(s.w, "\r%s %s\n", mark, s.message)
}

// TrackLoading shows a spinner on stderr while store is Loading and replaces
// it with ✓ or ✗ when the state settles. Outside a terminal it only logs.
// The returned func detaches the tracker.
func TrackLoading[T any](store *Store[T], message string) func() {
	interactive := isTerminal(os.Stderr)

	var (
		mu      sync.Mutex
		current *spinner
	)
	unsubscribe := store.Subscribe(func(st ViewState[T]) {
		mu.Lock()
		defer mu.Unlock()

		if st.Kind == StateLoading {
			if !interactive {
				LogInfo("%s", message)
				return
			}
			if current == nil {
				current = startSpinner(os.Stderr, message)
			}
			return
		}
		if current != nil {
			current.stop(st.Kind != StateErrored)
			current = nil
		}
	})

	return func() {
		unsubscribe()
		mu.Lock()
		defer mu.Unlock()
		if current != nil {
			current.stop(false)
			current = nil
		}
	}
}

// isTerminal checks if the writer is a terminal
func isTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		stat, err := f.Stat()
		if err != nil {
			return false
		}
		return (stat.Mode() & os.ModeCharDevice) != 0
	}
	return false
}

// IsTerminal reports whether w is an interactive terminal
func IsTerminal(w io.Writer) bool {
	return isTerminal(w)
}

// PrintSuccess prints a success message
func PrintSuccess(message string) {
	if isTerminal(os.Stdout) {
		fmt.Printf("%s %s\n", successStyle.Render("✓"), message)
	} else {
		fmt.Println(message)
	}
}

// PrintError prints an error message
func PrintError(message string) {
	if isTerminal(os.Stderr) {
		fmt.Fprintf(os.Stderr, "%s %s\n", errorStyle.Render("✗"), message)
	} else {
		fmt.Fprintf(os.Stderr, "%s\n", message)
	}
}

// PrintInfo prints an info message
func PrintInfo(message string) {
	if isTerminal(os.Stdout) {
		fmt.Printf("%s %s\n", progressStyle.Render("ℹ"), message)
	} else {
		fmt.Println(message)
	}
}

// PrintWarning prints a warning message
func PrintWarning(message string) {
	if isTerminal(os.Stderr) {
		fmt.Fprintf(os.Stderr, "%s %s\n", warningStyle.Render("⚠"), message)
	} else {
		fmt.Fprintf(os.Stderr, "WARNING: %s\n", message)
	}
}
