package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func mustItem(t *testing.T, id string, price float64) CartItem {
	t.Helper()
	item, err := NewCartItem(id, "Game "+id, price, "Action", "https://img.example.com/"+id+".png")
	require.NoError(t, err)
	return item
}

func TestNewCartItem_Validation(t *testing.T) {
	_, err := NewCartItem("  ", "Doom", 10, "Shooter", "")
	require.ErrorIs(t, err, ErrEmptyItemID)

	_, err = NewCartItem("g1", "Doom", -1, "Shooter", "")
	require.ErrorIs(t, err, ErrNegativePrice)

	_, err = NewCartItem("g1", "Doom", math.NaN(), "Shooter", "")
	require.ErrorIs(t, err, ErrNegativePrice)

	item, err := NewCartItem(" g1 ", "Doom", 0, "Shooter", "")
	require.NoError(t, err)
	require.Equal(t, "g1", item.ID)
}

func TestCart_DistinctAddsSumPrices(t *testing.T) {
	c := &Cart{}
	prices := []float64{19.99, 5, 0, 42.5}
	want := 0.0
	for i, p := range prices {
		require.Equal(t, OutcomeAdded, c.Add(mustItem(t, string(rune('a'+i)), p)))
		want += p
	}
	require.Equal(t, len(prices), c.Count())
	require.InDelta(t, want, c.Total(), 1e-9)
}

func TestCart_DuplicateKeepsExistingSnapshot(t *testing.T) {
	c := &Cart{}
	require.Equal(t, OutcomeAdded, c.Add(mustItem(t, "g1", 10)))
	require.Equal(t, OutcomeDuplicate, c.Add(mustItem(t, "g1", 99)))
	require.Equal(t, 1, c.Count())
	require.Equal(t, 10.0, c.Total())
	require.ErrorIs(t, OutcomeDuplicate.Err(), ErrDuplicateItem)
}

func TestCart_RemoveAbsentIsNotFound(t *testing.T) {
	c := &Cart{}
	require.Equal(t, OutcomeNotFound, c.Remove("missing"))
	c.Add(mustItem(t, "g1", 10))
	require.Equal(t, OutcomeNotFound, c.Remove("g2"))
	require.Equal(t, 1, c.Count())
}

func TestCart_RemovePreservesOrder(t *testing.T) {
	c := &Cart{}
	for _, id := range []string{"a", "b", "c"} {
		c.Add(mustItem(t, id, 1))
	}
	snapshot := c.Items()
	require.Equal(t, OutcomeRemoved, c.Remove("b"))

	ids := []string{}
	for _, item := range c.Items() {
		ids = append(ids, item.ID)
	}
	require.Equal(t, []string{"a", "c"}, ids)
	require.Equal(t, "b", snapshot[1].ID)
}

func TestCart_ClearEmpties(t *testing.T) {
	c := &Cart{}
	c.Add(mustItem(t, "a", 3))
	c.Add(mustItem(t, "b", 4))
	require.Equal(t, OutcomeCleared, c.Clear())
	require.Zero(t, c.Count())
	require.Zero(t, c.Total())
}

func TestNewCart_DropsInvalidAndRepeated(t *testing.T) {
	c, dropped := NewCart([]CartItem{
		{ID: "a", Price: 1},
		{ID: "", Price: 2},
		{ID: "b", Price: -3},
		{ID: "a", Price: 4},
		{ID: "c", Price: 5},
	})
	require.Equal(t, 3, dropped)
	require.Equal(t, 2, c.Count())
	require.Equal(t, 6.0, c.Total())
}

func TestCart_AddRejectsInvalidItems(t *testing.T) {
	c := &Cart{}
	require.Equal(t, OutcomeInvalid, c.Add(CartItem{ID: " ", Price: 1}))
	require.Equal(t, OutcomeInvalid, c.Add(CartItem{ID: "g1", Price: -5}))
	require.Zero(t, c.Count())
	require.False(t, OutcomeInvalid.Changed())
	require.ErrorIs(t, OutcomeInvalid.Err(), ErrInvalidItem)
}

func TestCart_RemoveAllKeepsOthersInOrder(t *testing.T) {
	c := &Cart{}
	for _, id := range []string{"a", "b", "c", "d"} {
		c.Add(mustItem(t, id, 1))
	}
	require.Equal(t, 2, c.RemoveAll([]string{"d", "b", "zz"}))
	ids := []string{}
	for _, item := range c.Items() {
		ids = append(ids, item.ID)
	}
	require.Equal(t, []string{"a", "c"}, ids)
	require.Zero(t, c.RemoveAll(nil))
}
