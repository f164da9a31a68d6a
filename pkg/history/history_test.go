package history

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/birdayz/hexer/pkg/hexcodec"
)

func TestAdd_NewestFirst(t *testing.T) {
	h := New(0)
	ts := time.Unix(1700000000, 0)

	h.Add(NewEntry("A", "41", hexcodec.ModeTextToHex, ts))
	h.Add(NewEntry("42", "B", hexcodec.ModeHexToText, ts.Add(time.Second)))

	entries := h.Entries()
	require.Len(t, entries, 2)
	require.Equal(t, "42", entries[0].Input)
	require.Equal(t, hexcodec.ModeHexToText, entries[0].Mode)
	require.Equal(t, "A", entries[1].Input)
	require.NotEqual(t, entries[0].ID, entries[1].ID)
}

func TestAdd_EvictsOldest(t *testing.T) {
	h := New(DefaultCapacity)
	for i := 0; i < 15; i++ {
		h.Add(NewEntry(fmt.Sprint(i), "out", hexcodec.ModeTextToHex, time.Now()))
	}

	require.Equal(t, DefaultCapacity, h.Len())
	entries := h.Entries()
	require.Equal(t, "14", entries[0].Input)
	require.Equal(t, "5", entries[len(entries)-1].Input)
}

func TestEntries_ReturnsCopy(t *testing.T) {
	h := New(3)
	h.Add(NewEntry("A", "41", hexcodec.ModeTextToHex, time.Now()))

	entries := h.Entries()
	entries[0].Input = "changed"

	e, ok := h.At(0)
	require.True(t, ok)
	require.Equal(t, "A", e.Input)
}

func TestGetAndAt(t *testing.T) {
	h := New(3)
	e := NewEntry("A", "41", hexcodec.ModeTextToHex, time.Now())
	h.Add(e)

	got, ok := h.Get(e.ID)
	require.True(t, ok)
	require.Equal(t, e, got)

	_, ok = h.Get("missing")
	require.False(t, ok)

	_, ok = h.At(1)
	require.False(t, ok)
	_, ok = h.At(-1)
	require.False(t, ok)
}

func TestClear(t *testing.T) {
	h := New(3)
	h.Add(NewEntry("A", "41", hexcodec.ModeTextToHex, time.Now()))
	h.Clear()
	require.Zero(t, h.Len())
	require.Empty(t, h.Entries())
}

func TestConcurrentAdd(t *testing.T) {
	h := New(5)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h.Add(NewEntry("x", "78", hexcodec.ModeTextToHex, time.Now()))
		}()
	}
	wg.Wait()
	require.Equal(t, 5, h.Len())
}
