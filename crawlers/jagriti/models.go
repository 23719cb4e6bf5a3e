package jagriti

import (
	"github.com/samber/mo"
)

// State is a state as listed by the portal
type State struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Commission is a district commission belonging to a state
type Commission struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Case is one row of the portal's results table. Optional columns marshal to null when absent.
type Case struct {
	CaseNumber          string            `json:"case_number"`
	CaseStage           string            `json:"case_stage"`
	FilingDate          string            `json:"filing_date"`
	Complainant         string            `json:"complainant"`
	Respondent          string            `json:"respondent"`
	ComplainantAdvocate mo.Option[string] `json:"complainant_advocate" swaggertype:"string"`
	RespondentAdvocate  mo.Option[string] `json:"respondent_advocate" swaggertype:"string"`
	DocumentLink        mo.Option[string] `json:"document_link" swaggertype:"string"`
}

// CaseSearchRequest is the body accepted by every case search endpoint
type CaseSearchRequest struct {
	State       string `json:"state" validate:"required" example:"KARNATAKA"`
	Commission  string `json:"commission" validate:"required" example:"Bangalore 1st & Rural Additional"`
	SearchValue string `json:"search_value" validate:"required" example:"REDDY"`
}

// SearchParams carries resolved portal ids into a search
type SearchParams struct {
	StateID      string
	CommissionID string
	Category     SearchCategory
	Value        string
}

// StateListResponse is returned by GET /states
type StateListResponse struct {
	States []State `json:"states"`
}

// CommissionListResponse is returned by GET /commissions/{state_id}
type CommissionListResponse struct {
	Commissions []Commission `json:"commissions"`
}

// CaseListResponse is returned by the case search endpoints
type CaseListResponse struct {
	Cases []Case `json:"cases"`
}
