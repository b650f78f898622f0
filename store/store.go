package store

import "encoding/json"

// Keys used by the ordering core.
const (
	KeyMenu          = "restaurant_menu"
	KeyOrders        = "restaurant_orders"
	KeyCurrentTable  = "current_table"
	KeyCart          = "cart"
	KeyBillingConfig = "billing_config"
)

// Store is a durable string-keyed JSON store. Get reports whether the key
// exists; a missing key is not an error.
type Store interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
	Remove(key string) error
}

// Load reads the value at key into v. It returns false when the key does
// not exist, leaving v untouched.
func Load(s Store, key string, v interface{}) (bool, error) {
	data, ok, err := s.Get(key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, err
	}
	return true, nil
}

// Save serializes v and writes it at key.
func Save(s Store, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.Set(key, data)
}
