package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrCompleteStageCommandIsNotConstructed = errors.New(
	"CompleteStageCommand must be created via NewCompleteStageCommand constructor",
)

// CompleteStageCommand closes the active session of a worker stage and
// advances the invoice (PICKING→PICKED, PACKING→PACKED). Only the worker who
// claimed the stage may complete it.
type CompleteStageCommand struct {
	invoiceNo  string
	stage      kernel.Stage
	actorEmail string
	notes      string

	guard guard.ConstructorGuard
}

// NewCompleteStageCommand creates a validated command. Notes are optional
// free text recorded on the closed session.
func NewCompleteStageCommand(invoiceNo string, stage kernel.Stage, actorEmail string, notes string) (
	CompleteStageCommand, error) {
	if invoiceNo == "" {
		return CompleteStageCommand{}, errs.NewValueIsRequiredError("invoiceNo")
	}
	if !stage.IsWorkerStage() {
		return CompleteStageCommand{}, errs.NewValueIsInvalidError("stage")
	}
	if actorEmail == "" {
		return CompleteStageCommand{}, errs.NewValueIsRequiredError("actorEmail")
	}

	return CompleteStageCommand{
		invoiceNo:  invoiceNo,
		stage:      stage,
		actorEmail: actorEmail,
		notes:      notes,

		guard: guard.NewConstructorGuard(),
	}, nil
}

// InvoiceNo returns the business number of the invoice being worked.
func (c CompleteStageCommand) InvoiceNo() string { return c.invoiceNo }

// Stage returns the worker stage being completed.
func (c CompleteStageCommand) Stage() kernel.Stage { return c.stage }

// ActorEmail returns the identity of the worker completing the stage.
func (c CompleteStageCommand) ActorEmail() string { return c.actorEmail }

// Notes returns the optional completion notes.
func (c CompleteStageCommand) Notes() string { return c.notes }

// Validate checks that the command was built through the constructor.
func (c CompleteStageCommand) Validate() error {
	return c.guard.Validate(ErrCompleteStageCommandIsNotConstructed)
}
