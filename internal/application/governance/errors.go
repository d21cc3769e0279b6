package governance

import "errors"

var (
	ErrInvalidTaskInput     = errors.New("invalid task input")
	ErrInvalidRowPayload    = errors.New("invalid row payload")
	ErrEnrichmentRunning    = errors.New("enrichment already running for this task")
	ErrTaskNotTransmittable = errors.New("task is not ready to transmit")
	ErrTransmitFailed       = errors.New("transmit failed")
	ErrInvalidSeed          = errors.New("invalid generation seed")
	ErrGenerationFailed     = errors.New("style generation failed")
	ErrInvalidFieldConfig   = errors.New("invalid field configuration")
)
