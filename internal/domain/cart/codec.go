package cart

import (
	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/shopspring/decimal"
)

// EncodeItems serializes the ordered item list to JSON. Prices are encoded
// as plain decimal strings so no precision is lost in transit.
func EncodeItems(items []LineItem) []byte {
	var e jx.Encoder
	e.ArrStart()
	for _, li := range items {
		e.ObjStart()
		e.FieldStart("name")
		e.Str(li.Name)
		e.FieldStart("price")
		e.Str(li.UnitPrice.String())
		e.FieldStart("image")
		e.Str(li.ImageURL)
		e.FieldStart("quantity")
		e.Int(li.Quantity)
		e.ObjEnd()
	}
	e.ArrEnd()
	return e.Bytes()
}

// DecodeItems parses the serialized item list produced by EncodeItems.
// Any malformed input yields ErrCorruptSnapshot.
func DecodeItems(data []byte) ([]LineItem, error) {
	var items []LineItem
	d := jx.DecodeBytes(data)
	err := d.Arr(func(d *jx.Decoder) error {
		var li LineItem
		if err := d.Obj(func(d *jx.Decoder, key string) error {
			switch key {
			case "name":
				v, err := d.Str()
				if err != nil {
					return err
				}
				li.Name = v
			case "price":
				v, err := d.Str()
				if err != nil {
					return err
				}
				p, err := decimal.NewFromString(v)
				if err != nil {
					return errors.Wrap(err, "price")
				}
				li.UnitPrice = p
			case "image":
				v, err := d.Str()
				if err != nil {
					return err
				}
				li.ImageURL = v
			case "quantity":
				v, err := d.Int()
				if err != nil {
					return err
				}
				li.Quantity = v
			default:
				return d.Skip()
			}
			return nil
		}); err != nil {
			return err
		}
		if li.Quantity < 1 {
			return errors.Errorf("line %q: quantity %d", li.Name, li.Quantity)
		}
		items = append(items, li)
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(ErrCorruptSnapshot, err.Error())
	}
	return items, nil
}
