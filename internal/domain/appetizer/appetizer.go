// Package appetizer defines the catalog item type and its wire codec.
//
// The backend returns the catalog wrapped in an envelope object:
//
//	{"request": [ {...}, {...} ]}
//
// Items are immutable once decoded; the catalog store owns each snapshot and
// consumers reference items without copying them.
package appetizer

import (
	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/shopspring/decimal"
)

// Appetizer represents a purchasable catalog item.
type Appetizer struct {
	ID          int
	Name        string
	Description string
	Price       decimal.Decimal
	ImageURL    string
	Calories    int
	Protein     int
	Carbs       int
}

// DecodeCatalog parses the catalog envelope and returns the items in
// server-provided order. The "request" key must be present; any shape
// mismatch is an error.
func DecodeCatalog(data []byte) ([]Appetizer, error) {
	d := jx.DecodeBytes(data)

	var (
		items []Appetizer
		seen  bool
	)
	if err := d.Obj(func(d *jx.Decoder, key string) error {
		if key != "request" {
			return d.Skip()
		}
		seen = true
		return d.Arr(func(d *jx.Decoder) error {
			a, err := decodeAppetizer(d)
			if err != nil {
				return err
			}
			items = append(items, a)
			return nil
		})
	}); err != nil {
		return nil, errors.Wrap(err, "decode envelope")
	}
	if !seen {
		return nil, errors.New(`missing "request" key`)
	}
	return items, nil
}

func decodeAppetizer(d *jx.Decoder) (Appetizer, error) {
	var a Appetizer
	err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "id":
			a.ID, err = d.Int()
		case "name":
			a.Name, err = d.Str()
		case "description":
			a.Description, err = d.Str()
		case "price":
			var n jx.Num
			if n, err = d.Num(); err == nil {
				a.Price, err = decimal.NewFromString(string(n))
			}
		case "imageURL":
			a.ImageURL, err = d.Str()
		case "calories":
			a.Calories, err = d.Int()
		case "protein":
			a.Protein, err = d.Int()
		case "carbs":
			a.Carbs, err = d.Int()
		default:
			err = d.Skip()
		}
		return err
	})
	if err != nil {
		return Appetizer{}, errors.Wrap(err, "decode item")
	}
	return a, nil
}

// EncodeCatalog renders items into the catalog envelope. Used by the mock
// backend; the shape mirrors what DecodeCatalog accepts.
func EncodeCatalog(items []Appetizer) []byte {
	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		e.Field("request", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, a := range items {
					encodeAppetizer(e, a)
				}
			})
		})
	})
	return e.Bytes()
}

func encodeAppetizer(e *jx.Encoder, a Appetizer) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("id", func(e *jx.Encoder) { e.Int(a.ID) })
		e.Field("name", func(e *jx.Encoder) { e.Str(a.Name) })
		e.Field("description", func(e *jx.Encoder) { e.Str(a.Description) })
		e.Field("price", func(e *jx.Encoder) { e.Float64(a.Price.InexactFloat64()) })
		e.Field("imageURL", func(e *jx.Encoder) { e.Str(a.ImageURL) })
		e.Field("calories", func(e *jx.Encoder) { e.Int(a.Calories) })
		e.Field("protein", func(e *jx.Encoder) { e.Int(a.Protein) })
		e.Field("carbs", func(e *jx.Encoder) { e.Int(a.Carbs) })
	})
}
