package models

import (
	"encoding/json"
	"testing"
)

func TestMoneyCentsRoundTrip(t *testing.T) {
	m := NewMoneyFromInt(85)
	if m.Cents() != 8500 {
		t.Fatalf("expected 8500 cents, got %d", m.Cents())
	}
	back := MoneyFromCents(m.Cents())
	if back.String() != "85.00" {
		t.Fatalf("unexpected round trip value: %s", back.String())
	}
}

func TestMoneyMulInt(t *testing.T) {
	total := MoneyFromCents(7550).MulInt(3)
	if total.Cents() != 22650 {
		t.Fatalf("expected 22650 cents, got %d", total.Cents())
	}
}

func TestMoneyJSON(t *testing.T) {
	raw, err := json.Marshal(NewMoneyFromInt(100))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(raw) != `"100.00"` {
		t.Fatalf("unexpected json: %s", raw)
	}
	var m Money
	if err := json.Unmarshal([]byte(`"12.34"`), &m); err != nil {
		t.Fatalf("unmarshal string: %v", err)
	}
	if m.Cents() != 1234 {
		t.Fatalf("expected 1234 cents, got %d", m.Cents())
	}
	if err := json.Unmarshal([]byte(`60`), &m); err != nil {
		t.Fatalf("unmarshal number: %v", err)
	}
	if m.Cents() != 6000 {
		t.Fatalf("expected 6000 cents, got %d", m.Cents())
	}
}

func TestCartEntryLineTotal(t *testing.T) {
	entry := CartEntry{Price: NewMoneyFromInt(40), Quantity: 5}
	if entry.LineTotal().Cents() != 20000 {
		t.Fatalf("expected 20000 cents, got %d", entry.LineTotal().Cents())
	}
}

func TestIsLocalKey(t *testing.T) {
	if !IsLocalKey("local:0f2a") {
		t.Fatal("expected local key to be detected")
	}
	if IsLocalKey("64f0c2") {
		t.Fatal("expected remote key to be rejected")
	}
}
