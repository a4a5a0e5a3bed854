package domain

import (
	"encoding/json"
	"testing"
)

func TestItemIDAcceptsNumbersAndStrings(t *testing.T) {
	var items []Item
	body := `[{"id":7,"name":"A"},{"id":"8","name":"B"},{"id":null,"name":"C"},{"name":"D"}]`
	if err := json.Unmarshal([]byte(body), &items); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	want := []ItemID{"7", "8", "", ""}
	for i, it := range items {
		if it.ID != want[i] {
			t.Fatalf("items[%d].ID = %q, want %q", i, it.ID, want[i])
		}
	}
}

func TestItemIDMarshal(t *testing.T) {
	raw, err := json.Marshal([]Item{{ID: "7", Name: "A"}, {ID: "abc", Name: "B"}, {Name: "C"}})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `[{"id":7,"name":"A","sku":"","country_code":""},{"id":"abc","name":"B","sku":"","country_code":""},{"name":"C","sku":"","country_code":""}]`
	if string(raw) != want {
		t.Fatalf("Marshal = %s", raw)
	}
}
