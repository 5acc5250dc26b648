package reactive

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueGetSet(t *testing.T) {
	v := New(10)
	assert.Equal(t, 10, v.Get())

	v.Set(20)
	assert.Equal(t, 20, v.Get())
}

func TestValueUpdate(t *testing.T) {
	v := New([]string{"a"})
	v.Update(func(s []string) []string { return append(s, "b") })
	assert.Equal(t, []string{"a", "b"}, v.Get())
}

func TestValueSubscribeAndCancel(t *testing.T) {
	v := New(0)

	var seen []int
	cancel := v.Subscribe(func(n int) { seen = append(seen, n) })

	v.Set(1)
	v.Update(func(n int) int { return n + 1 })
	require.Equal(t, []int{1, 2}, seen)

	cancel()
	v.Set(99)
	assert.Equal(t, []int{1, 2}, seen)
}

func TestValueMultipleSubscribers(t *testing.T) {
	v := New("")

	var a, b []string
	cancelA := v.Subscribe(func(s string) { a = append(a, s) })
	defer cancelA()
	cancelB := v.Subscribe(func(s string) { b = append(b, s) })
	defer cancelB()

	v.Set("x")
	assert.Equal(t, []string{"x"}, a)
	assert.Equal(t, []string{"x"}, b)
}

// A subscriber may read the value back without deadlocking, since
// notifications run outside the lock.
func TestValueSubscriberCanReadBack(t *testing.T) {
	v := New(1)

	var observed int
	cancel := v.Subscribe(func(int) { observed = v.Get() })
	defer cancel()

	v.Set(5)
	assert.Equal(t, 5, observed)
}

func TestValueConcurrentAccess(t *testing.T) {
	v := New(0)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v.Update(func(n int) int { return n + 1 })
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, v.Get())
}
