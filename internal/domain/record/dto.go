package record

// RecordPayload is the full writable field set, used both for creation and
// for admin edits (edits replace every field except id/created_at).
type RecordPayload struct {
	OperatorName    string   `json:"operator_name" validate:"required"`
	TechnicianName  string   `json:"technician_name" validate:"required"`
	CompanyName     string   `json:"company_name" validate:"required"`
	ContractNumber  string   `json:"contract_number" validate:"required"`
	ServiceType     string   `json:"service_type" validate:"required"`
	Street          string   `json:"street"`
	Neighborhood    string   `json:"neighborhood"`
	CTOLocation     string   `json:"cto_location"`
	AreaCX          string   `json:"area_cx"`
	AvailableSlots  string   `json:"available_slots"`
	Unit            string   `json:"unit"`
	VisitedCXs      string   `json:"visited_cxs"`
	GeneralComments string   `json:"general_comments"`
	Images          []string `json:"images" validate:"max=6"`
}

type DuplicateCheckResponse struct {
	ContractNumber string `json:"contract_number"`
	IsDuplicate    bool   `json:"is_duplicate"`
}
