package user

import (
	"github.com/prontuario/api/internal/domain/record"
)

// Address sub-fields are all optional. The same type is used on input,
// where a nil field means "not supplied".
type Address struct {
	Street       *string `json:"nomeDaRua,omitempty"`
	Neighborhood *string `json:"bairro,omitempty"`
	HouseNumber  *string `json:"numeroDaCasa,omitempty"`
	PostalCode   *string `json:"cep,omitempty"`
	State        *string `json:"estado,omitempty"`
	Country      *string `json:"pais,omitempty"`
}

// Merge overwrites the sub-fields supplied in patch.
func (a *Address) Merge(patch Address) {
	if patch.Street != nil {
		a.Street = patch.Street
	}
	if patch.Neighborhood != nil {
		a.Neighborhood = patch.Neighborhood
	}
	if patch.HouseNumber != nil {
		a.HouseNumber = patch.HouseNumber
	}
	if patch.PostalCode != nil {
		a.PostalCode = patch.PostalCode
	}
	if patch.State != nil {
		a.State = patch.State
	}
	if patch.Country != nil {
		a.Country = patch.Country
	}
}

type User struct {
	ID      int     `json:"id"`
	Name    string  `json:"nome"`
	CPF     string  `json:"cpf"`
	Email   string  `json:"email"`
	Phone   string  `json:"telefone"`
	Address Address `json:"endereco"`
}

func (u User) GetID() int { return u.ID }

// Detail is a user joined with the medical records that carry its cpf.
type Detail struct {
	User
	Records []record.MedicalRecord `json:"prontuarios"`
}

// CreateInput is the body of POST /users. Every field must be present and
// non-empty; an empty address object is accepted.
type CreateInput struct {
	Name    string   `json:"nome" validate:"required"`
	CPF     string   `json:"cpf" validate:"required"`
	Email   string   `json:"email" validate:"required"`
	Phone   string   `json:"telefone" validate:"required"`
	Address *Address `json:"endereco" validate:"required"`
}

// UpdateInput is the body of PUT /users/:id. Supplied fields overwrite,
// omitted ones are kept. A supplied endereco merges per sub-field.
type UpdateInput struct {
	Name    *string  `json:"nome"`
	CPF     *string  `json:"cpf"`
	Email   *string  `json:"email"`
	Phone   *string  `json:"telefone"`
	Address *Address `json:"endereco"`
}

func (in UpdateInput) Apply(u *User) {
	if in.Name != nil {
		u.Name = *in.Name
	}
	if in.CPF != nil {
		u.CPF = *in.CPF
	}
	if in.Email != nil {
		u.Email = *in.Email
	}
	if in.Phone != nil {
		u.Phone = *in.Phone
	}
	if in.Address != nil {
		u.Address.Merge(*in.Address)
	}
}
