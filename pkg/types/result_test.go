package types

import (
	"errors"
	"testing"
)

func TestSuccess(t *testing.T) {
	r := Success("Plan: hydrate")

	if !r.IsSuccess() {
		t.Fatal("expected success result")
	}
	if r.Display() != "Plan: hydrate" {
		t.Errorf("expected display text to be the model text, got %q", r.Display())
	}
	if r.Failure != "" {
		t.Errorf("success must not carry a failure code, got %q", r.Failure)
	}
}

func TestFailed(t *testing.T) {
	tests := []struct {
		name string
		code FailureCode
		err  error
	}{
		{name: "missing credential", code: FailureMissingCredential},
		{name: "no text", code: FailureNoText},
		{name: "http status with cause", code: FailureHTTPStatus, err: errors.New("status 401")},
		{name: "network with cause", code: FailureNetwork, err: errors.New("connection refused")},
		{name: "unknown code", code: FailureCode("mystery")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Failed(tt.code, tt.err)

			if r.IsSuccess() {
				t.Fatal("expected failure result")
			}
			if r.Kind != ResultFailure {
				t.Errorf("expected kind %q, got %q", ResultFailure, r.Kind)
			}
			if r.Failure != tt.code {
				t.Errorf("expected code %q, got %q", tt.code, r.Failure)
			}
			if r.Display() == "" {
				t.Error("failure display must never be empty")
			}
			if tt.err != nil && !errors.Is(r.Err, tt.err) {
				t.Error("failure should keep the wrapped error")
			}
		})
	}
}

func TestResult_DisplayZeroFailure(t *testing.T) {
	r := Result{Kind: ResultFailure}
	if r.Display() == "" {
		t.Error("zero failure should still display a message")
	}
}

func TestDeferred(t *testing.T) {
	r := Deferred()
	if r.IsSuccess() {
		t.Error("deferred result should not be a success")
	}
	if r.Display() != "" {
		t.Errorf("deferred result should display nothing, got %q", r.Display())
	}
}

func TestResult_WithTrigger(t *testing.T) {
	r := Success("ok").WithTrigger("abc")
	if r.TriggerID != "abc" {
		t.Errorf("expected trigger id abc, got %q", r.TriggerID)
	}
}

func TestTriggers(t *testing.T) {
	menu := NewMenuTrigger("chatgpt-summarize", "text").WithEditable("field")
	if !menu.IsMenu() || menu.IsForm() {
		t.Error("menu trigger type mismatch")
	}
	if !menu.Editable || menu.EditableContent != "field" {
		t.Error("editable content not recorded")
	}
	if menu.ID == "" {
		t.Error("trigger should have an id")
	}

	form := NewFormTrigger().WithMetadata("source", "tui")
	if !form.IsForm() {
		t.Error("form trigger type mismatch")
	}
	if form.Metadata["source"] != "tui" {
		t.Error("metadata not recorded")
	}
	if form.ID == menu.ID {
		t.Error("trigger ids must be unique")
	}
}
