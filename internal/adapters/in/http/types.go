package http

import (
	"time"

	"github.com/shopspring/decimal"
)

// Error is the uniform error payload of the API.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CreateInvoiceRequest is the billing import payload.
type CreateInvoiceRequest struct {
	InvoiceNo   string            `json:"invoice_no"`
	InvoiceDate time.Time         `json:"invoice_date"`
	Priority    string            `json:"priority"`
	Remarks     string            `json:"remarks"`
	LineItems   []LineItemRequest `json:"line_items"`
}

// LineItemRequest is one imported invoice line.
type LineItemRequest struct {
	Name          string          `json:"name"`
	Code          string          `json:"code"`
	Quantity      int             `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	BatchNo       string          `json:"batch_no"`
	Expiry        time.Time       `json:"expiry"`
	ShelfLocation string          `json:"shelf_location"`
}

// CreatedResponse reports the identifier of a newly created resource.
type CreatedResponse struct {
	ID string `json:"id"`
}

// StageRequest carries a worker action on a stage.
type StageRequest struct {
	Stage      string `json:"stage"`
	ActorEmail string `json:"actor_email"`
	Notes      string `json:"notes,omitempty"`
}

// ReturnRequest raises a return-to-billing.
type ReturnRequest struct {
	Stage      string `json:"stage"`
	ActorEmail string `json:"actor_email"`
	Reason     string `json:"reason"`
}

// ResubmitRequest resubmits a corrected invoice into the workflow.
type ResubmitRequest struct {
	ActorEmail string `json:"actor_email"`
}

// DispatchDirectRequest dispatches an over-the-counter handover.
type DispatchDirectRequest struct {
	ActorEmail      string `json:"actor_email"`
	SubMode         string `json:"sub_mode"`
	PickupUsername  string `json:"pickup_username"`
	PickupName      string `json:"pickup_name"`
	PickupPhone     string `json:"pickup_phone"`
	CompanyName     string `json:"company_name,omitempty"`
	CompanyRegistID string `json:"company_regist_id,omitempty"`
}

// DispatchCourierRequest hands an invoice to a courier.
type DispatchCourierRequest struct {
	ActorEmail string `json:"actor_email"`
	CourierID  string `json:"courier_id"`
	TrackingNo string `json:"tracking_no,omitempty"`
}

// DispatchInternalRequest assigns an invoice to a staff member.
type DispatchInternalRequest struct {
	ActorEmail string `json:"actor_email"`
	StaffEmail string `json:"staff_email"`
}

// UploadSlipRequest attaches a courier proof-of-delivery slip.
type UploadSlipRequest struct {
	ActorEmail string `json:"actor_email"`
	SlipRef    string `json:"slip_ref"`
}

// ConfirmInternalRequest confirms a staff delivery.
type ConfirmInternalRequest struct {
	ActorEmail string `json:"actor_email"`
}

// InvoiceResponse is the full invoice view.
type InvoiceResponse struct {
	ID            string                 `json:"id"`
	InvoiceNo     string                 `json:"invoice_no"`
	InvoiceDate   time.Time              `json:"invoice_date"`
	Priority      string                 `json:"priority"`
	Remarks       string                 `json:"remarks,omitempty"`
	Status        string                 `json:"status"`
	BillingStatus string                 `json:"billing_status"`
	TotalOverride *decimal.Decimal       `json:"total_override,omitempty"`
	LineItems     []LineItemResponse     `json:"line_items"`
	Sessions      []StageSessionResponse `json:"sessions"`
	Returns       []ReturnResponse       `json:"returns"`
}

// LineItemResponse is one invoice line in the view.
type LineItemResponse struct {
	Name          string          `json:"name"`
	Code          string          `json:"code"`
	Quantity      int             `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	BatchNo       string          `json:"batch_no"`
	ShelfLocation string          `json:"shelf_location"`
}

// StageSessionResponse is one stage session in the view.
type StageSessionResponse struct {
	ID         string     `json:"id"`
	Stage      string     `json:"stage"`
	AssignedTo string     `json:"assigned_to"`
	State      string     `json:"state"`
	StartedAt  time.Time  `json:"started_at"`
	EndedAt    *time.Time `json:"ended_at,omitempty"`
	Notes      string     `json:"notes,omitempty"`
}

// ReturnResponse is one return record in the view.
type ReturnResponse struct {
	ID       string    `json:"id"`
	Stage    string    `json:"stage"`
	ActorID  string    `json:"actor_id"`
	Reason   string    `json:"reason"`
	RaisedAt time.Time `json:"raised_at"`
}

// InvoiceSummaryResponse is one invoice in a worklist.
type InvoiceSummaryResponse struct {
	ID          string    `json:"id"`
	InvoiceNo   string    `json:"invoice_no"`
	InvoiceDate time.Time `json:"invoice_date"`
	Priority    string    `json:"priority"`
	Remarks     string    `json:"remarks,omitempty"`
}

// ConsiderListItemResponse is one pending delivery session.
type ConsiderListItemResponse struct {
	SessionID    string    `json:"session_id"`
	InvoiceID    string    `json:"invoice_id"`
	InvoiceNo    string    `json:"invoice_no"`
	DeliveryType string    `json:"delivery_type"`
	TrackingNo   string    `json:"tracking_no,omitempty"`
	StartedAt    time.Time `json:"started_at"`
}
