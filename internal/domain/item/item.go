// Package item defines the shared stacks the party carries.
// This package is PURE and must NOT import any infrastructure packages.
package item

// ItemType represents the kind of item.
type ItemType string

const (
	ItemFood   ItemType = "food"
	ItemWater  ItemType = "water"
	ItemWeapon ItemType = "weapon"
	ItemShield ItemType = "shield"
)

// StartingTypes are the stacks every new game begins with, in display order.
var StartingTypes = []ItemType{ItemFood, ItemWater, ItemWeapon, ItemShield}

// ItemStack represents a quantity of a specific item type.
type ItemStack struct {
	Type     ItemType `json:"type"`
	Quantity int      `json:"quantity"`
}

// Inventory is an ordered list of stacks, at most one per type.
type Inventory []ItemStack

// Quantity returns how many of t the inventory holds.
func (inv Inventory) Quantity(t ItemType) int {
	for _, s := range inv {
		if s.Type == t {
			return s.Quantity
		}
	}
	return 0
}

// Add increments the stack of t, appending a new stack when absent.
func (inv *Inventory) Add(t ItemType, n int) {
	for i := range *inv {
		if (*inv)[i].Type == t {
			(*inv)[i].Quantity += n
			return
		}
	}
	*inv = append(*inv, ItemStack{Type: t, Quantity: n})
}

// Remove takes n of t. Returns false, leaving the stack intact, when there
// are fewer than n.
func (inv *Inventory) Remove(t ItemType, n int) bool {
	for i := range *inv {
		if (*inv)[i].Type == t {
			if (*inv)[i].Quantity < n {
				return false
			}
			(*inv)[i].Quantity -= n
			return true
		}
	}
	return false
}

// Clone returns an independent copy.
func (inv Inventory) Clone() Inventory {
	if inv == nil {
		return nil
	}
	cp := make(Inventory, len(inv))
	copy(cp, inv)
	return cp
}
