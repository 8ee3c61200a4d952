package record

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/prontuario/api/internal/platform/apperr"
	"github.com/prontuario/api/internal/platform/store"
)

const (
	msgInvalidCPF = "CPF inválido ou não encontrado"
	msgNotFound   = "Prontuário não encontrado"
)

// CPFChecker reports whether a user with the given cpf exists.
type CPFChecker interface {
	CPFExists(ctx context.Context, cpf string) (bool, error)
}

type Service struct {
	records  *store.Collection[MedicalRecord]
	users    CPFChecker
	validate *validator.Validate
}

func NewService(records *store.Collection[MedicalRecord], users CPFChecker) *Service {
	return &Service{records: records, users: users, validate: validator.New()}
}

// CreateRecord appends a record for an existing user. The cpf check runs
// while the record collection is locked.
func (s *Service) CreateRecord(ctx context.Context, in *CreateInput) (*MedicalRecord, error) {
	if in == nil || s.validate.Struct(in) != nil || strings.TrimSpace(in.CPF) == "" {
		return nil, apperr.Validation(msgInvalidCPF)
	}

	var created MedicalRecord
	err := s.records.Mutate(ctx, func(records []MedicalRecord) ([]MedicalRecord, error) {
		ok, err := s.users.CPFExists(ctx, in.CPF)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, apperr.Validation(msgInvalidCPF)
		}
		created = MedicalRecord{ID: store.NextID(records), CPF: in.CPF}
		in.Fields.Apply(&created)
		return append(records, created), nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *Service) ListRecords(ctx context.Context) []MedicalRecord {
	return s.records.LoadAll(ctx)
}

func (s *Service) GetRecord(ctx context.Context, id int) (*MedicalRecord, error) {
	records := s.records.LoadAll(ctx)
	idx := store.IndexOf(records, id)
	if idx == -1 {
		return nil, apperr.NotFound(msgNotFound)
	}
	return &records[idx], nil
}

func (s *Service) UpdateRecord(ctx context.Context, id int, in *UpdateInput) (*MedicalRecord, error) {
	var updated MedicalRecord
	err := s.records.Mutate(ctx, func(records []MedicalRecord) ([]MedicalRecord, error) {
		idx := store.IndexOf(records, id)
		if idx == -1 {
			return nil, apperr.NotFound(msgNotFound)
		}
		if in != nil {
			in.Fields.Apply(&records[idx])
		}
		updated = records[idx]
		return records, nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *Service) DeleteRecord(ctx context.Context, id int) (*MedicalRecord, error) {
	var deleted MedicalRecord
	err := s.records.Mutate(ctx, func(records []MedicalRecord) ([]MedicalRecord, error) {
		idx := store.IndexOf(records, id)
		if idx == -1 {
			return nil, apperr.NotFound(msgNotFound)
		}
		deleted = records[idx]
		return append(records[:idx], records[idx+1:]...), nil
	})
	if err != nil {
		return nil, err
	}
	return &deleted, nil
}

// ListByCPF returns the records owned by cpf, in store order.
func (s *Service) ListByCPF(ctx context.Context, cpf string) ([]MedicalRecord, error) {
	result := []MedicalRecord{}
	err := s.records.View(ctx, func(records []MedicalRecord) error {
		for _, r := range records {
			if r.CPF == cpf {
				result = append(result, r)
			}
		}
		return nil
	})
	return result, err
}

// DeleteByCPF removes every record owned by cpf and leaves the rest in
// order. Returns how many were removed.
func (s *Service) DeleteByCPF(ctx context.Context, cpf string) (int, error) {
	removed := 0
	err := s.records.Mutate(ctx, func(records []MedicalRecord) ([]MedicalRecord, error) {
		kept := make([]MedicalRecord, 0, len(records))
		for _, r := range records {
			if r.CPF == cpf {
				removed++
				continue
			}
			kept = append(kept, r)
		}
		if removed == 0 {
			return records, store.ErrUnchanged
		}
		return kept, nil
	})
	return removed, err
}

// RelinkCPF moves every record owned by from to the owner to.
func (s *Service) RelinkCPF(ctx context.Context, from, to string) (int, error) {
	if from == to {
		return 0, nil
	}
	moved := 0
	err := s.records.Mutate(ctx, func(records []MedicalRecord) ([]MedicalRecord, error) {
		for i := range records {
			if records[i].CPF == from {
				records[i].CPF = to
				moved++
			}
		}
		if moved == 0 {
			return records, store.ErrUnchanged
		}
		return records, nil
	})
	return moved, err
}
