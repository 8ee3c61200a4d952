package record

// MedicalRecord (prontuário) belongs to the user whose cpf it carries.
// Optional fields that were never supplied are omitted from the stored
// document.
type MedicalRecord struct {
	ID                     int     `json:"id"`
	CPF                    string  `json:"cpf"`
	BloodType              *string `json:"tipoSanguineo,omitempty"`
	Allergies              *string `json:"alergias,omitempty"`
	HasChronicDisease      *bool   `json:"possuirDoencaCronica,omitempty"`
	WhichDisease           *string `json:"qualDoenca,omitempty"`
	OnContinuousMedication *bool   `json:"usoContinuoMedicamento,omitempty"`
	WhichMedication        *string `json:"qualMedicamento,omitempty"`
	DiseaseHistory         *string `json:"historicoDoencas,omitempty"`
	MedicationHistory      *string `json:"historicoMedicamentos,omitempty"`
	Exams                  *string `json:"exames,omitempty"`
}

func (r MedicalRecord) GetID() int { return r.ID }

// CreateInput is the body of POST /prontuarios.
type CreateInput struct {
	CPF string `json:"cpf" validate:"required"`
	Fields
}

// Fields are the clinical attributes shared by create and update. A nil
// pointer means "not supplied"; a non-nil pointer is written as-is,
// including "" and false.
type Fields struct {
	BloodType              *string `json:"tipoSanguineo"`
	Allergies              *string `json:"alergias"`
	HasChronicDisease      *bool   `json:"possuirDoencaCronica"`
	WhichDisease           *string `json:"qualDoenca"`
	OnContinuousMedication *bool   `json:"usoContinuoMedicamento"`
	WhichMedication        *string `json:"qualMedicamento"`
	DiseaseHistory         *string `json:"historicoDoencas"`
	MedicationHistory      *string `json:"historicoMedicamentos"`
	Exams                  *string `json:"exames"`
}

// Apply overwrites every supplied field of r. The cpf and id are not part of
// Fields and cannot be changed this way.
func (f Fields) Apply(r *MedicalRecord) {
	if f.BloodType != nil {
		r.BloodType = f.BloodType
	}
	if f.Allergies != nil {
		r.Allergies = f.Allergies
	}
	if f.HasChronicDisease != nil {
		r.HasChronicDisease = f.HasChronicDisease
	}
	if f.WhichDisease != nil {
		r.WhichDisease = f.WhichDisease
	}
	if f.OnContinuousMedication != nil {
		r.OnContinuousMedication = f.OnContinuousMedication
	}
	if f.WhichMedication != nil {
		r.WhichMedication = f.WhichMedication
	}
	if f.DiseaseHistory != nil {
		r.DiseaseHistory = f.DiseaseHistory
	}
	if f.MedicationHistory != nil {
		r.MedicationHistory = f.MedicationHistory
	}
	if f.Exams != nil {
		r.Exams = f.Exams
	}
}

// UpdateInput is the body of PUT /prontuarios/:id.
type UpdateInput struct {
	Fields
}
