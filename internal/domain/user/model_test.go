package user

import (
	"encoding/json"
	"testing"
)

func strPtr(s string) *string { return &s }

func TestAddressMerge_KeepsOmittedSubFields(t *testing.T) {
	a := Address{Street: strPtr("Rua A"), State: strPtr("SP")}
	a.Merge(Address{State: strPtr("RJ"), Country: strPtr("")})

	if *a.Street != "Rua A" {
		t.Errorf("expected street kept, got %q", *a.Street)
	}
	if *a.State != "RJ" {
		t.Errorf("expected state RJ, got %q", *a.State)
	}
	if a.Country == nil || *a.Country != "" {
		t.Errorf("expected empty country written, got %v", a.Country)
	}
	if a.Neighborhood != nil {
		t.Errorf("expected bairro to stay unset, got %v", a.Neighborhood)
	}
}

func TestUpdateInputApply_NilAddressKeepsAddress(t *testing.T) {
	u := User{Name: "Ana", Address: Address{Street: strPtr("Rua A")}}
	UpdateInput{Name: strPtr("Bia")}.Apply(&u)

	if u.Name != "Bia" {
		t.Errorf("expected name Bia, got %q", u.Name)
	}
	if u.Address.Street == nil || *u.Address.Street != "Rua A" {
		t.Errorf("expected address kept, got %+v", u.Address)
	}
}

func TestUpdateInputApply_EmptyStringOverwrites(t *testing.T) {
	u := User{Email: "a@x.com"}
	UpdateInput{Email: strPtr("")}.Apply(&u)
	if u.Email != "" {
		t.Errorf("expected email cleared, got %q", u.Email)
	}
}

func TestDetail_JSONShape(t *testing.T) {
	d := Detail{User: User{ID: 1, Name: "Ana", CPF: "111"}}
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]any
	json.Unmarshal(b, &m)
	for _, k := range []string{"id", "nome", "cpf", "email", "telefone", "endereco", "prontuarios"} {
		if _, ok := m[k]; !ok {
			t.Errorf("expected key %q in %s", k, b)
		}
	}
}
