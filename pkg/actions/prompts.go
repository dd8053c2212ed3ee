package actions

import (
	"fmt"
	"strings"

	"github.com/entrhq/scribby/pkg/types"
)

// SystemPrompt is the fixed instruction sent ahead of every request.
const SystemPrompt = `You are a highly efficient assistant specialized in analyzing, structuring, and processing data
and patient notes for urological cases. Ensure all responses are concise and well-organized
clearly for easy readability and usability in clinical settings.`

// fullNoteIntro precedes the intake text in the full-note prompt.
const fullNoteIntro = `Based on this patient data, generate a SOAP note that is concise, professional, and well-organized, suitable for clinical documentation:`

// FullNoteGuidelines is the section-by-section instruction for the full note.
const FullNoteGuidelines = `Strictly, follow these guidelines:

Subjective (HPI):
Write a detailed, elaborative paragraph for the History of Present Illness (HPI) based on the chief complaint.
Include all relevant details such as onset, duration, frequency, severity, associated symptoms, triggers, previous episodes, and the impact on the patient's daily life.
Maintain a formal and clinical tone.

Objective:
Include this section only if at least one of the following is provided:
Physical Examination Findings
Laboratory Results
Diagnostic Imaging
If all relevant data is marked as "Not provided" or "Pending," the Objective section should be entirely omitted. Do not include placeholder text or headings.
When included, organize the information into concise and structured bullet points or paragraphs.

Assessment:
Provide a concise summary of the clinical impression, including a likely diagnosis or differential diagnoses.
Avoid using phrases like "Based on the subjective information provided." Instead, state the assessment directly in a professional tone.

Plan:
Include detailed information on:
Medications: Provide specific drug names, dosages, administration routes, and frequencies. For each medication, list:
Side Effects: Highlight common and significant adverse effects.
Benefits: Explain the therapeutic advantages and intended outcomes.
If a medication name is not determined, recommend commonly used options for the condition.
Imaging Studies: Outline the next steps, including rationale and expected outcomes.
Labs and Testing Studies: Specify required laboratory or diagnostic tests, with rationale and expected insights.
Surgical Interventions: If indicated, include a discussion of risks, benefits, and alternatives.`

// BuildPrompt renders the user prompt for a request. Callers must not pass
// empty text; an empty request yields a prompt with an empty body.
func BuildPrompt(req Request) string {
	switch req.Action.Kind {
	case KindFullNote:
		var builder strings.Builder
		builder.WriteString(fullNoteIntro)
		builder.WriteString("\n\n")
		builder.WriteString(req.SourceText)
		builder.WriteString("\n\n")
		builder.WriteString(FullNoteGuidelines)
		return builder.String()
	default:
		return fmt.Sprintf("%s based on:\n%s", req.Action.Label, req.SourceText)
	}
}

// Messages builds the two-message conversation for a request.
func Messages(req Request) []*types.Message {
	return []*types.Message{
		types.NewSystemMessage(SystemPrompt),
		types.NewUserMessage(BuildPrompt(req)),
	}
}
