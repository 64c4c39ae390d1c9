package regcheck_test

import (
	"encoding/json"
	"testing"

	regcheck "github.com/reoring/regcheck"
)

// scenarioA is the accepted example payload.
const scenarioA = `
{
    "name": "Alice",
    "age": 25,
    "email": "alice@example.com",
    "is_employed": true,
    "address": {
        "city": "New York",
        "street": "Main Street",
        "house_number": 123
    }
}`

// scenarioB violates five independent rules.
const scenarioB = `
{
    "name": "A1ice",
    "age": 17,
    "email": "alice@example.com",
    "is_employed": true,
    "address": {
        "city": "N",
        "street": "M",
        "house_number": 0
    }
}`

const scenarioACanonical = `{"name":"Alice","age":25,"email":"alice@example.com","is_employed":true,"address":{"city":"New York","street":"Main Street","house_number":123}}`

func validUser() regcheck.User {
	return regcheck.User{
		Name:       "Alice",
		Age:        25,
		Email:      "alice@example.com",
		IsEmployed: true,
		Address:    regcheck.Address{City: "New York", Street: "Main Street", HouseNumber: 123},
	}
}

// validPayload returns scenario A as a mutable tree.
func validPayload() map[string]any {
	return map[string]any{
		"name":        "Alice",
		"age":         25,
		"email":       "alice@example.com",
		"is_employed": true,
		"address": map[string]any{
			"city":         "New York",
			"street":       "Main Street",
			"house_number": 123,
		},
	}
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return b
}

func paths(iss regcheck.Issues) []string {
	out := make([]string, 0, len(iss))
	for _, it := range iss {
		out = append(out, it.Path)
	}
	return out
}

func codes(iss regcheck.Issues) []string {
	out := make([]string, 0, len(iss))
	for _, it := range iss {
		out = append(out, it.Code)
	}
	return out
}
