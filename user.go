package regcheck

// Address is owned by a User by value; it has no identity of its own.
type Address struct {
	City        string `json:"city" yaml:"city"`
	Street      string `json:"street" yaml:"street"`
	HouseNumber int    `json:"house_number" yaml:"house_number"`
}

// User is the registration payload. Field order here is the canonical output
// order.
type User struct {
	Name       string  `json:"name" yaml:"name"`
	Age        int     `json:"age" yaml:"age"`
	Email      string  `json:"email" yaml:"email"`
	IsEmployed bool    `json:"is_employed" yaml:"is_employed"`
	Address    Address `json:"address" yaml:"address"`
}

// Wire keys, in declaration order. The decoder reports missing fields in
// this order.
const (
	keyName       = "name"
	keyAge        = "age"
	keyEmail      = "email"
	keyIsEmployed = "is_employed"
	keyAddress    = "address"

	keyCity        = "city"
	keyStreet      = "street"
	keyHouseNumber = "house_number"
)
