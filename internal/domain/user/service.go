package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/prontuario/api/internal/domain/record"
	"github.com/prontuario/api/internal/platform/apperr"
	"github.com/prontuario/api/internal/platform/store"
)

const (
	msgRequired   = "Todos os campos são obrigatórios"
	msgNotFound   = "User not found"
	msgCPFTaken   = "CPF já cadastrado"
	msgCPFMissing = "CPF não pode ser vazio"
)

// RecordLinker is the record side of the user/record relationship.
type RecordLinker interface {
	ListByCPF(ctx context.Context, cpf string) ([]record.MedicalRecord, error)
	DeleteByCPF(ctx context.Context, cpf string) (int, error)
	RelinkCPF(ctx context.Context, from, to string) (int, error)
}

type Service struct {
	users     *store.Collection[User]
	records   RecordLinker
	uniqueCPF bool
	validate  *validator.Validate
}

func NewService(users *store.Collection[User]) *Service {
	return &Service{users: users, uniqueCPF: true, validate: validator.New()}
}

// SetRecordLinker wires the record service. Without it user detail has no
// records and deletes do not cascade.
func (s *Service) SetRecordLinker(rl RecordLinker) { s.records = rl }

// SetUniqueCPF toggles rejection of duplicate user cpfs.
func (s *Service) SetUniqueCPF(on bool) { s.uniqueCPF = on }

func (s *Service) CreateUser(ctx context.Context, in *CreateInput) (*User, error) {
	if in == nil || s.validate.Struct(in) != nil {
		return nil, apperr.Validation(msgRequired)
	}

	var created User
	err := s.users.Mutate(ctx, func(users []User) ([]User, error) {
		if s.uniqueCPF && indexOfCPF(users, in.CPF, 0) != -1 {
			return nil, apperr.Conflict(msgCPFTaken)
		}
		created = User{
			ID:      store.NextID(users),
			Name:    in.Name,
			CPF:     in.CPF,
			Email:   in.Email,
			Phone:   in.Phone,
			Address: *in.Address,
		}
		return append(users, created), nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *Service) ListUsers(ctx context.Context) []User {
	return s.users.LoadAll(ctx)
}

func (s *Service) GetUser(ctx context.Context, id int) (*User, error) {
	users := s.users.LoadAll(ctx)
	idx := store.IndexOf(users, id)
	if idx == -1 {
		return nil, apperr.NotFound(msgNotFound)
	}
	return &users[idx], nil
}

// GetUserDetail returns the user together with every record whose cpf
// matches the user's.
func (s *Service) GetUserDetail(ctx context.Context, id int) (*Detail, error) {
	u, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	d := &Detail{User: *u, Records: []record.MedicalRecord{}}
	if s.records == nil {
		return d, nil
	}
	recs, err := s.records.ListByCPF(ctx, u.CPF)
	if err != nil {
		return nil, fmt.Errorf("list records for user %d: %w", id, err)
	}
	d.Records = recs
	return d, nil
}

// UpdateUser merges in into the stored user. When the cpf changes, records
// owned by the old cpf are relinked to the new one after the user is saved.
func (s *Service) UpdateUser(ctx context.Context, id int, in *UpdateInput) (*User, error) {
	if in == nil {
		in = &UpdateInput{}
	}
	if in.CPF != nil && strings.TrimSpace(*in.CPF) == "" {
		return nil, apperr.Validation(msgCPFMissing)
	}

	var updated User
	var oldCPF string
	err := s.users.Mutate(ctx, func(users []User) ([]User, error) {
		idx := store.IndexOf(users, id)
		if idx == -1 {
			return nil, apperr.NotFound(msgNotFound)
		}
		oldCPF = users[idx].CPF
		if in.CPF != nil && *in.CPF != oldCPF && s.uniqueCPF && indexOfCPF(users, *in.CPF, id) != -1 {
			return nil, apperr.Conflict(msgCPFTaken)
		}
		in.Apply(&users[idx])
		updated = users[idx]
		return users, nil
	})
	if err != nil {
		return nil, err
	}

	if s.records != nil && updated.CPF != oldCPF {
		if _, err := s.records.RelinkCPF(ctx, oldCPF, updated.CPF); err != nil {
			return nil, fmt.Errorf("relink records of user %d: %w", id, err)
		}
	}
	return &updated, nil
}

// DeleteUser removes the user and then every record carrying its cpf. The
// two stores are saved separately; the user lock is released before the
// cascade starts.
func (s *Service) DeleteUser(ctx context.Context, id int) (*User, error) {
	var deleted User
	err := s.users.Mutate(ctx, func(users []User) ([]User, error) {
		idx := store.IndexOf(users, id)
		if idx == -1 {
			return nil, apperr.NotFound(msgNotFound)
		}
		deleted = users[idx]
		return append(users[:idx], users[idx+1:]...), nil
	})
	if err != nil {
		return nil, err
	}

	if s.records != nil {
		if _, err := s.records.DeleteByCPF(ctx, deleted.CPF); err != nil {
			return nil, fmt.Errorf("cascade delete records of user %d: %w", id, err)
		}
	}
	return &deleted, nil
}

// CPFExists reports whether any stored user carries cpf.
func (s *Service) CPFExists(ctx context.Context, cpf string) (bool, error) {
	found := false
	err := s.users.View(ctx, func(users []User) error {
		found = indexOfCPF(users, cpf, 0) != -1
		return nil
	})
	return found, err
}

// indexOfCPF finds the first user with cpf, skipping the user with id
// exceptID.
func indexOfCPF(users []User, cpf string, exceptID int) int {
	for i, u := range users {
		if u.CPF == cpf && u.ID != exceptID {
			return i
		}
	}
	return -1
}
