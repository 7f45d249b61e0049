package vjson

import (
	"testing"
)

type rawMarshaler struct{}

func (rawMarshaler) MarshalJSON() ([]byte, error) {
	return []byte(`{"b":1,"a":2}`), nil
}

func TestJson(t *testing.T) {
	t.Run("Test Marshal struct", func(t *testing.T) {
		output, err := Marshal(struct {
			Nlist int `json:"nlist"`
		}{16})
		if err != nil {
			t.Fatal(err)
		}
		if string(output) != `{"nlist":16}` {
			t.Fatalf("%v", string(output))
		}
	})

	t.Run("Test Marshal uses json.Marshaler", func(t *testing.T) {
		output, err := Marshal(rawMarshaler{})
		if err != nil {
			t.Fatal(err)
		}
		if string(output) != `{"b":1,"a":2}` {
			t.Fatalf("%v", string(output))
		}
	})

	t.Run("Test ToJsonString", func(t *testing.T) {
		if s := ToJsonString(map[string]int{"k": 4}); s != `{"k":4}` {
			t.Fatalf("%v", s)
		}
	})
}
