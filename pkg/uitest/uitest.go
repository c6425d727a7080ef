package uitest

import (
	"bytes"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/exp/teatest"

	tea "github.com/charmbracelet/bubbletea"
)

// BubbleModel is a Bubble Tea model whose Update returns its concrete type.
type BubbleModel[T any] interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (T, tea.Cmd)
	View() string
}

// adapter satisfies [tea.Model] for a [BubbleModel].
type adapter[T BubbleModel[T]] struct {
	model T
}

func (a adapter[T]) Init() tea.Cmd {
	return a.model.Init()
}

//nolint:ireturn // Must satisfy [tea.Model].
func (a adapter[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m, cmd := a.model.Update(msg)

	return adapter[T]{model: m}, cmd
}

func (a adapter[T]) View() string {
	return a.model.View()
}

// NewTestModel runs m in a test program with the given terminal size.
func NewTestModel[T BubbleModel[T]](tb testing.TB, m T, size Size) *teatest.TestModel {
	tb.Helper()

	return teatest.NewTestModel(tb, adapter[T]{model: m},
		teatest.WithInitialTermSize(size.Width, size.Height),
	)
}

// FinalModel waits for the program to finish and returns the model.
func FinalModel[T BubbleModel[T]](tb testing.TB, tm *teatest.TestModel, timeout time.Duration) T {
	tb.Helper()

	fm := tm.FinalModel(tb, teatest.WithFinalTimeout(timeout))

	a, ok := fm.(adapter[T])
	if !ok {
		tb.Fatalf("unexpected final model %T", fm)
	}

	return a.model
}

// WaitForText waits until the program output contains every text, ignoring
// ANSI sequences.
func WaitForText(tb testing.TB, tm *teatest.TestModel, texts ...string) {
	tb.Helper()

	teatest.WaitFor(tb, tm.Output(), func(b []byte) bool {
		plain := []byte(ansi.Strip(string(b)))
		for _, text := range texts {
			if !bytes.Contains(plain, []byte(text)) {
				return false
			}
		}

		return true
	},
		teatest.WithDuration(3*time.Second),
		teatest.WithCheckInterval(10*time.Millisecond),
	)
}
