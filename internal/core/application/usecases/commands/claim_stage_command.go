package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrClaimStageCommandIsNotConstructed = errors.New(
	"ClaimStageCommand must be created via NewClaimStageCommand constructor",
)

// ClaimStageCommand represents a worker claiming an invoice for a
// fulfillment stage. Claiming creates the stage session and flips the
// invoice into the stage's in-progress status.
//
// Example:
//
//	cmd, err := NewClaimStageCommand("INV-1", kernel.StagePicking, "alice@pharma.example")
//	if err != nil {
//	    // invalid input
//	}
//	err = handler.Handle(ctx, cmd)
type ClaimStageCommand struct {
	invoiceNo  string
	stage      kernel.Stage
	actorEmail string

	guard guard.ConstructorGuard
}

// NewClaimStageCommand creates a validated claim command.
// The stage must be a worker stage (picking or packing).
func NewClaimStageCommand(invoiceNo string, stage kernel.Stage, actorEmail string) (ClaimStageCommand, error) {
	if invoiceNo == "" {
		return ClaimStageCommand{}, errs.NewValueIsRequiredError("invoice number")
	}
	if actorEmail == "" {
		return ClaimStageCommand{}, errs.NewValueIsRequiredError("actor email")
	}
	if err := stage.Validate(); err != nil {
		return ClaimStageCommand{}, err
	}
	if !stage.IsWorkerStage() {
		return ClaimStageCommand{}, errs.NewValueIsInvalidError("stage")
	}

	return ClaimStageCommand{
		invoiceNo:  invoiceNo,
		stage:      stage,
		actorEmail: actorEmail,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// InvoiceNo returns the business invoice number to claim.
func (c ClaimStageCommand) InvoiceNo() string { return c.invoiceNo }

// Stage returns the stage being claimed.
func (c ClaimStageCommand) Stage() kernel.Stage { return c.stage }

// ActorEmail returns the claiming worker's email.
func (c ClaimStageCommand) ActorEmail() string { return c.actorEmail }

// Validate ensures the command was created through the constructor.
func (c ClaimStageCommand) Validate() error {
	return c.guard.Validate(ErrClaimStageCommandIsNotConstructed)
}
