package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_EmptyCart(t *testing.T) {
	v := Render(Cart{})

	assert.True(t, v.Empty)
	assert.Equal(t, EmptyMessage, v.Message)
	assert.Empty(t, v.Rows)
	assert.False(t, v.CheckoutEnabled)
}

func TestRender_Rows(t *testing.T) {
	var c Cart
	c.Add("Mug", price(t, "$9.99"), "mug.jpg")
	c.Add("Mug", price(t, "$9.99"), "mug.jpg")
	c.Add("Plate", price(t, "$14.50"), "plate.jpg")

	v := Render(c)

	assert.False(t, v.Empty)
	assert.True(t, v.CheckoutEnabled)
	require.Len(t, v.Rows, 2)

	assert.Equal(t, 0, v.Rows[0].Index)
	assert.Equal(t, "Mug", v.Rows[0].Name)
	assert.Equal(t, "mug.jpg", v.Rows[0].ImageURL)
	assert.Equal(t, "$9.99", v.Rows[0].UnitPrice)
	assert.Equal(t, 2, v.Rows[0].Quantity)
	assert.Equal(t, "$19.98", v.Rows[0].LineTotal)

	assert.Equal(t, 1, v.Rows[1].Index)
	assert.Equal(t, "$14.50", v.Rows[1].LineTotal)

	assert.Equal(t, "$34.48", v.Total)
}
