package timer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEventFiresInRegistrationOrder(t *testing.T) {
	var e Event
	var got []string
	e.Subscribe(func() { got = append(got, "a") })
	e.Subscribe(func() { got = append(got, "b") })
	e.Subscribe(func() { got = append(got, "c") })

	e.fire()
	require.Equal(t, []string{"a", "b", "c"}, got)
}

func TestEventZeroValueFiresNothing(t *testing.T) {
	var e Event
	require.Equal(t, 0, e.Len())
	e.fire()
}

func TestEventNilListenerIgnored(t *testing.T) {
	var e Event
	require.Equal(t, ListenerID(0), e.Subscribe(nil))
	require.Equal(t, 0, e.Len())
}

func TestEventUnsubscribe(t *testing.T) {
	var e Event
	hits := map[string]int{}
	a := e.Subscribe(func() { hits["a"]++ })
	b := e.Subscribe(func() { hits["b"]++ })
	require.NotEqual(t, a, b)

	require.True(t, e.Unsubscribe(a))
	require.False(t, e.Unsubscribe(a), "second unsubscribe must report absence")
	require.Equal(t, 1, e.Len())

	e.fire()
	require.Equal(t, 0, hits["a"])
	require.Equal(t, 1, hits["b"])
}

func TestEventChangesDuringFireApplyNextTime(t *testing.T) {
	var e Event
	var order []string
	var second ListenerID
	e.Subscribe(func() {
		order = append(order, "first")
		e.Unsubscribe(second)
		e.Subscribe(func() { order = append(order, "late") })
	})
	second = e.Subscribe(func() { order = append(order, "second") })

	e.fire()
	require.Equal(t, []string{"first", "second"}, order)

	order = nil
	e.fire()
	require.Equal(t, []string{"first", "late"}, order)
}
