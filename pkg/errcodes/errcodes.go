package errcodes

import "git.appkode.ru/pub/go/failure"

const (
	InternalServerError failure.ErrorCode = "InternalServerError"
	Forbidden           failure.ErrorCode = "Forbidden"
	ValidationError     failure.ErrorCode = "ValidationError"
	NotFound            failure.ErrorCode = "NotFound"

	InvalidURL         failure.ErrorCode = "InvalidURL"
	InvalidCategory    failure.ErrorCode = "InvalidCategory"
	InvalidMarginInput failure.ErrorCode = "InvalidMarginInput"
	InvalidPolicy      failure.ErrorCode = "InvalidPolicy"

	// Scrape backend.
	ScrapeFailed           failure.ErrorCode = "ScrapeFailed"
	ScrapeCreditsExhausted failure.ErrorCode = "ScrapeCreditsExhausted"

	// Inference backend and the tool loop.
	AgentUnavailable failure.ErrorCode = "AgentUnavailable"
	AgentStepLimit   failure.ErrorCode = "AgentStepLimit"
	UnknownTool      failure.ErrorCode = "UnknownTool"
	InvalidToolArgs  failure.ErrorCode = "InvalidToolArgs"

	// Paywall.
	InvalidSignature failure.ErrorCode = "InvalidSignature"
	MissingUserID    failure.ErrorCode = "MissingUserID"
)
