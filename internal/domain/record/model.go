package record

import (
	"strconv"
	"strings"
	"time"
)

type ServiceType string

const (
	TypeActivation    ServiceType = "Ativação"
	TypeRepair        ServiceType = "Reparo"
	TypeAddressChange ServiceType = "Mudança Endereço"
	TypeCleanUp       ServiceType = "Clean Up"
)

func (t ServiceType) Valid() bool {
	switch t {
	case TypeActivation, TypeRepair, TypeAddressChange, TypeCleanUp:
		return true
	}
	return false
}

const MaxImages = 6

// ServiceRecord is one field-service visit. IsDuplicate is derived per
// query result set and never persisted.
type ServiceRecord struct {
	ID              string      `json:"id"`
	OperatorName    string      `json:"operator_name"`
	TechnicianName  string      `json:"technician_name"`
	CompanyName     string      `json:"company_name"`
	ContractNumber  string      `json:"contract_number"`
	ServiceType     ServiceType `json:"service_type"`
	Street          string      `json:"street"`
	Neighborhood    string      `json:"neighborhood"`
	CTOLocation     string      `json:"cto_location"`
	AreaCX          string      `json:"area_cx"`
	AvailableSlots  string      `json:"available_slots"`
	Unit            string      `json:"unit"`
	VisitedCXs      string      `json:"visited_cxs"`
	GeneralComments string      `json:"general_comments"`
	Images          []string    `json:"images"`
	CreatedBy       string      `json:"created_by,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
	IsDuplicate     bool        `json:"is_duplicate"`
}

// SlotsCount parses the free-text available-slots field; 0 on failure.
func (r *ServiceRecord) SlotsCount() int {
	n, err := strconv.Atoi(strings.TrimSpace(r.AvailableSlots))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// Filters is the conjunctive query input: all fields optional, empty
// string / nil means no constraint.
type Filters struct {
	Start        *time.Time
	End          *time.Time
	ServiceType  string
	Neighborhood string
	Operator     string
}
