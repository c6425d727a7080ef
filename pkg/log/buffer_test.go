package log_test

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/folio/pkg/log"
)

func TestCircularBuffer(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		writes   []string
		want     []string
		capacity int
	}{
		"empty": {
			capacity: 3,
		},
		"partial": {
			capacity: 3,
			writes:   []string{"a", "b"},
			want:     []string{"a", "b"},
		},
		"full": {
			capacity: 3,
			writes:   []string{"a", "b", "c"},
			want:     []string{"a", "b", "c"},
		},
		"wrapped": {
			capacity: 3,
			writes:   []string{"a", "b", "c", "d", "e"},
			want:     []string{"c", "d", "e"},
		},
		"empty writes ignored": {
			capacity: 2,
			writes:   []string{"a", "", "b"},
			want:     []string{"a", "b"},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			b := log.NewCircularBuffer(tc.capacity)
			for _, w := range tc.writes {
				_, err := b.Write([]byte(w))
				require.NoError(t, err)
			}

			var got []string
			for _, e := range b.Entries() {
				got = append(got, string(e))
			}

			assert.Equal(t, tc.want, got)
			assert.Equal(t, len(tc.want), b.Size())
		})
	}
}

func TestCircularBufferDefaults(t *testing.T) {
	t.Parallel()

	b := log.NewCircularBuffer(0)
	assert.Equal(t, log.DefaultBufferCapacity, b.Capacity())

	_, err := b.Write([]byte("x"))
	require.NoError(t, err)

	b.Clear()
	assert.Zero(t, b.Size())
	assert.Nil(t, b.Entries())
}

func TestCircularBufferEntriesAreCopies(t *testing.T) {
	t.Parallel()

	b := log.NewCircularBuffer(2)

	in := []byte("abc")
	_, err := b.Write(in)
	require.NoError(t, err)

	in[0] = 'x'
	out := b.Entries()
	out[0][1] = 'y'

	assert.Equal(t, "abc", string(b.Entries()[0]))
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) {
	return 0, errors.New("closed")
}

func TestCircularBufferWriteTo(t *testing.T) {
	t.Parallel()

	b := log.NewCircularBuffer(4)
	for i := range 6 {
		fmt.Fprintf(b, "line %d\n", i)
	}

	var out bytes.Buffer

	n, err := b.WriteTo(&out)
	require.NoError(t, err)
	assert.Equal(t, int64(out.Len()), n)
	assert.Equal(t, "line 2\nline 3\nline 4\nline 5\n", out.String())

	_, err = b.WriteTo(failWriter{})
	require.Error(t, err)

	var _ io.WriterTo = b
}

func TestCircularBufferConcurrent(t *testing.T) {
	t.Parallel()

	b := log.NewCircularBuffer(50)

	var wg sync.WaitGroup
	for i := range 10 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for j := range 20 {
				fmt.Fprintf(b, "%d-%d", i, j)
				b.Entries()
			}
		}()
	}

	wg.Wait()
	assert.Equal(t, 50, b.Size())
}
