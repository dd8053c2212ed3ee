package types

import "fmt"

// ResultKind tags a Result as a success or a failure.
type ResultKind string

const (
	ResultSuccess ResultKind = "success" // ResultSuccess carries model text.
	ResultFailure ResultKind = "failure" // ResultFailure carries a failure code and message.

	// ResultDeferred means the trigger opened the intake form. The outcome
	// arrives with the form submission.
	ResultDeferred ResultKind = "deferred"
)

// FailureCode classifies why a request did not produce model text.
type FailureCode string

const (
	FailureMissingCredential FailureCode = "missing_credential" // FailureMissingCredential means no API key is stored.
	FailureNoText            FailureCode = "no_text"            // FailureNoText means the trigger resolved to empty text.
	FailureInvalidForm       FailureCode = "invalid_form"       // FailureInvalidForm means a required intake field is absent.
	FailureUnknownAction     FailureCode = "unknown_action"     // FailureUnknownAction means the menu item is not in the action table.
	FailureNetwork           FailureCode = "network"            // FailureNetwork means the request never got a response.
	FailureHTTPStatus        FailureCode = "http_status"        // FailureHTTPStatus means the API answered with a non-success status.
	FailureMalformedResponse FailureCode = "malformed_response" // FailureMalformedResponse means the body could not be decoded.
	FailureEmptyResponse     FailureCode = "empty_response"     // FailureEmptyResponse means the first choice had no text.
	FailureCanceled          FailureCode = "canceled"           // FailureCanceled means the caller canceled the request.
)

var failureMessages = map[FailureCode]string{
	FailureMissingCredential: "API key is not set. Please set it in the settings.",
	FailureNoText:            "No text selected or available in the editable field.",
	FailureInvalidForm:       "Required fields are missing from the form.",
	FailureUnknownAction:     "Unknown action.",
	FailureNetwork:           "Error communicating with the language model API.",
	FailureHTTPStatus:        "The language model API rejected the request.",
	FailureMalformedResponse: "The language model API returned an unreadable response.",
	FailureEmptyResponse:     "No response from the language model.",
	FailureCanceled:          "The request was canceled.",
}

// Result is the outcome of one trigger. Exactly one of Text (success) or
// Failure/Message (failure) is meaningful, selected by Kind.
type Result struct {
	Err       error
	Kind      ResultKind
	Text      string
	Failure   FailureCode
	Message   string
	TriggerID string
}

// Success creates a successful result holding the model text.
func Success(text string) Result {
	return Result{Kind: ResultSuccess, Text: text}
}

// Failed creates a failure result. The message is the fixed human-readable
// text for code, extended with err when one is given.
func Failed(code FailureCode, err error) Result {
	msg, ok := failureMessages[code]
	if !ok {
		msg = "The request failed."
	}
	if err != nil {
		msg = fmt.Sprintf("%s (%v)", msg, err)
	}
	return Result{Kind: ResultFailure, Failure: code, Message: msg, Err: err}
}

// Deferred creates a result for a trigger that handed off to the intake form.
func Deferred() Result {
	return Result{Kind: ResultDeferred}
}

// IsSuccess reports whether the result carries model text.
func (r Result) IsSuccess() bool {
	return r.Kind == ResultSuccess
}

// Display returns the text to show the user: the model text on success, the
// failure message on failure and "" for a deferred result.
func (r Result) Display() string {
	if r.IsSuccess() {
		return r.Text
	}
	if r.Kind == ResultDeferred {
		return ""
	}
	if r.Message == "" {
		return "The request failed."
	}
	return r.Message
}

// WithTrigger returns a copy of r tagged with the originating trigger id.
func (r Result) WithTrigger(id string) Result {
	r.TriggerID = id
	return r
}
