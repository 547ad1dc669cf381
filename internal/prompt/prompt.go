// Package prompt renders report text into the fixed instruction blocks sent
// to the model. Pure string assembly, no I/O.
package prompt

import "fmt"

// SystemMessage is sent as the system role on every completion call.
const SystemMessage = "You are an expert building damage report assistant. Output JSON only when asked."

const analysisTemplate = `You are an expert on building and damage reports.
Analyze the text below and return valid JSON with this structure:
{
  "summary": "short summary",
  "missing_info": ["list of missing information"],
  "issues": ["list of errors and inconsistencies"],
  "improvements": "concrete improvements",
  "items": [{"desc": "description", "qty": number, "unit": "m2/pcs", "suggested_unit_price": number}],
  "estimated_total": "%s <number>"
}
Text:
%s

NOTE: Output MUST be valid JSON without any extra explanatory text.`

const repairTemplate = `Modify the output below so that it becomes valid JSON. This is what was answered previously:
%s
Return only valid JSON with the structure specified earlier.`

// Analysis embeds the extracted report text into the instruction block that
// names the expected JSON schema. The explicit schema is the first line of
// defense against malformed output; the decoder is the second.
func Analysis(text, currency string) string {
	return fmt.Sprintf(analysisTemplate, currency, text)
}

// Repair asks the model to reformat its own prior reply into valid JSON only.
func Repair(prevReply string) string {
	return fmt.Sprintf(repairTemplate, prevReply)
}
