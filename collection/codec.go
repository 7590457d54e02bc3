package collection

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// MarshalJSON encodes the values as a JSON array, in current order. Keys are not
// part of the output.
func (c *Collection[K, V]) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Values())
}

// UnmarshalJSON replaces the entries with the values of a JSON array, re-deriving
// every key with the collection's key function. The collection must have been
// created with New, Empty or similar; a zero Collection yields ErrNoKeyFunc.
func (c *Collection[K, V]) UnmarshalJSON(data []byte) error {
	if c.keyOf == nil {
		return fmt.Errorf("%w: can't unmarshal JSON", ErrNoKeyFunc)
	}

	var values []V
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}

	c.replace(values)

	return nil
}

// MarshalYAML encodes the values as a YAML sequence, in current order.
func (c *Collection[K, V]) MarshalYAML() (any, error) {
	return c.Values(), nil
}

// UnmarshalYAML is the YAML counterpart of UnmarshalJSON.
func (c *Collection[K, V]) UnmarshalYAML(node *yaml.Node) error {
	if c.keyOf == nil {
		return fmt.Errorf("%w: can't unmarshal YAML", ErrNoKeyFunc)
	}

	var values []V
	if err := node.Decode(&values); err != nil {
		return err
	}

	c.replace(values)

	return nil
}

func (c *Collection[K, V]) replace(values []V) {
	c.storage().Clear()
	c.Push(values...)
}

var (
	_ json.Marshaler   = (*Collection[string, any])(nil)
	_ json.Unmarshaler = (*Collection[string, any])(nil)
	_ yaml.Marshaler   = (*Collection[string, any])(nil)
	_ yaml.Unmarshaler = (*Collection[string, any])(nil)
)
