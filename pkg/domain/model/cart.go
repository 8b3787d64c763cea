package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CartItem struct {
	ProductID    uuid.UUID       `json:"product_id"`
	BusinessID   uuid.UUID       `json:"business_id"`
	BusinessName string          `json:"business_name"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	Quantity     int             `json:"quantity"`
	ImageURL     *string         `json:"image_url,omitempty"`
}

// Cart is the list of candidate order lines before checkout.
type Cart struct {
	Items []CartItem `json:"items"`
}

// Add appends the product with quantity 1 or bumps the quantity of an existing line.
func (c *Cart) Add(item CartItem) {
	for i := range c.Items {
		if c.Items[i].ProductID == item.ProductID {
			c.Items[i].Quantity++
			return
		}
	}
	item.Quantity = 1
	c.Items = append(c.Items, item)
}

// Remove decrements the line quantity and drops lines that reach zero.
func (c *Cart) Remove(productID uuid.UUID) {
	items := c.Items[:0]
	for _, item := range c.Items {
		if item.ProductID == productID {
			item.Quantity--
		}
		if item.Quantity > 0 {
			items = append(items, item)
		}
	}
	c.Items = items
}

func (c *Cart) Clear() {
	c.Items = nil
}

func (c *Cart) Empty() bool {
	return len(c.Items) == 0
}

func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

func (c *Cart) ItemCount() int {
	count := 0
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}
