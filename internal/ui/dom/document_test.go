package dom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIndexesElements(t *testing.T) {
	doc, err := ParseString(`<form class="hero__form" data-bookings='[{"checkin":"2025-06-01","checkout":"2025-06-04"}]'>
		<input id="checkin-input" value="5 июня 2025">
		<button id="checkin-btn">Заезд</button>
	</form>`)
	require.NoError(t, err)

	form := doc.First(WithClass("hero__form"))
	require.NotNil(t, form)
	payload, ok := form.Attr("data-bookings")
	assert.True(t, ok)
	assert.Contains(t, payload, "2025-06-01")

	input := doc.ByID("checkin-input")
	require.NotNil(t, input)
	assert.Equal(t, "5 июня 2025", input.Value())
	assert.Equal(t, form, input.Parent())
	assert.Equal(t, "Заезд", doc.ByID("checkin-btn").Text())
	assert.Nil(t, doc.ByID("missing"))
}

func TestListenersRegisterAndRemove(t *testing.T) {
	el := New("input")
	var calls []string
	off := el.On("change", func(ev Event) { calls = append(calls, "a:"+ev.Type) })
	el.On("change", func(Event) { calls = append(calls, "b") })

	el.Dispatch("change")
	off()
	el.Dispatch("change")
	el.Dispatch("blur")

	assert.Equal(t, []string{"a:change", "b", "b"}, calls)
	assert.Equal(t, 1, el.Listeners("change"))
}

func TestSetValueDoesNotDispatch(t *testing.T) {
	el := New("input")
	fired := false
	el.On("change", func(Event) { fired = true })
	el.SetValue("01.06.2025")
	assert.False(t, fired)
	assert.Equal(t, "01.06.2025", el.Value())
}

func TestNilElementAttr(t *testing.T) {
	var el *Element
	_, ok := el.Attr("data-bookings")
	assert.False(t, ok)
}
