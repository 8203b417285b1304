package models

import (
	"database/sql/driver"
	"fmt"
)

// Colour is the side to move. It is stored as a single bit.
type Colour uint8

const (
	White Colour = 0
	Black Colour = 1
)

// Bit returns the representation used when comparing against the stored column.
func (c Colour) Bit() string {
	if c == Black {
		return "1"
	}
	return "0"
}

func (c Colour) String() string {
	if c == Black {
		return "b"
	}
	return "w"
}

func (c Colour) Value() (driver.Value, error) {
	return int64(c), nil
}

func (c *Colour) Scan(src any) error {
	switch v := src.(type) {
	case int64:
		return c.set(v)
	case bool:
		if v {
			*c = Black
		} else {
			*c = White
		}
		return nil
	case []byte:
		return c.parse(string(v))
	case string:
		return c.parse(v)
	case nil:
		*c = White
		return nil
	}
	return fmt.Errorf("colour: unsupported scan type %T", src)
}

func (c *Colour) set(v int64) error {
	if v != 0 && v != 1 {
		return fmt.Errorf("colour: out of range %d", v)
	}
	*c = Colour(v)
	return nil
}

func (c *Colour) parse(s string) error {
	switch s {
	case "0", "w", "f", "false":
		*c = White
	case "1", "b", "t", "true":
		*c = Black
	default:
		return fmt.Errorf("colour: cannot parse %q", s)
	}
	return nil
}
