package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_SingleTrailingHandle(t *testing.T) {
	body, excluded, err := Parse("Го в кино вечером? @vasya")

	require.NoError(t, err)
	assert.Equal(t, "Го в кино вечером?", body)
	assert.Equal(t, []string{"vasya"}, excluded)
}

func TestParse_MultipleTrailingHandles(t *testing.T) {
	body, excluded, err := Parse("Party at my place @alice_w @bober99")

	require.NoError(t, err)
	assert.Equal(t, "Party at my place", body)
	assert.Equal(t, []string{"alice_w", "bober99"}, excluded)
}

func TestParse_LowercasesAndDeduplicates(t *testing.T) {
	body, excluded, err := Parse("hello there @VaSyA @vasya @PeTro")

	require.NoError(t, err)
	assert.Equal(t, "hello there", body)
	assert.Equal(t, []string{"vasya", "petro"}, excluded)
}

func TestParse_MidSentenceHandleStaysInBody(t *testing.T) {
	body, excluded, err := Parse("ask @mikhail about it @vasya")

	require.NoError(t, err)
	// Only the trailing token is stripped; the embedded mention is still
	// part of the message, though it does join the excluded set.
	assert.Equal(t, "ask @mikhail about it", body)
	assert.Equal(t, []string{"mikhail", "vasya"}, excluded)
}

func TestParse_OnlyMidSentenceHandle(t *testing.T) {
	body, excluded, err := Parse("tell @mikhail the plan is off")

	require.NoError(t, err)
	assert.Equal(t, "tell @mikhail the plan is off", body)
	assert.Equal(t, []string{"mikhail"}, excluded)
}

func TestParse_NoHandles(t *testing.T) {
	_, _, err := Parse("just a plain message")
	assert.ErrorIs(t, err, ErrNoExclusions)
}

func TestParse_EmptyInput(t *testing.T) {
	_, _, err := Parse("")
	assert.ErrorIs(t, err, ErrNoExclusions)
}

func TestParse_HandleTooShort(t *testing.T) {
	// "@ab" is below Telegram's five character minimum, so it is not a
	// handle at all and no exclusions are found.
	_, _, err := Parse("   @ab")
	assert.ErrorIs(t, err, ErrNoExclusions)
}

func TestParse_HandlesOnlyNoBody(t *testing.T) {
	_, _, err := Parse("@alice_w @bober99")
	assert.ErrorIs(t, err, ErrEmptyBody)
}

func TestParse_WhitespaceBody(t *testing.T) {
	_, _, err := Parse("   @alice_w   ")
	assert.ErrorIs(t, err, ErrEmptyBody)
}

func TestParse_RepeatedTrailingHandleFullyStripped(t *testing.T) {
	body, excluded, err := Parse("see you there @vasya @vasya")

	require.NoError(t, err)
	assert.Equal(t, "see you there", body)
	assert.Equal(t, []string{"vasya"}, excluded)
}

func TestParse_HandleStartingWithDigitIgnored(t *testing.T) {
	_, _, err := Parse("numbers @1vasya")
	assert.ErrorIs(t, err, ErrNoExclusions)
}

func TestParse_TrailingStripIsCaseInsensitive(t *testing.T) {
	body, excluded, err := Parse("movie night @VASYA")

	require.NoError(t, err)
	assert.Equal(t, "movie night", body)
	assert.Equal(t, []string{"vasya"}, excluded)
}
