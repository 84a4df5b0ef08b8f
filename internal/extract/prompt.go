// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"bytes"
	"text/template"
)

// signalSpec describes one numeric signal as it is presented to the model.
type signalSpec struct {
	Name     string
	Question string
	Low      string
	High     string
}

// primarySignals and secondarySignals are listed in schema order.
var primarySignals = []signalSpec{
	{"urgency", "How time-sensitive or emotionally charged is this?", "no rush", "act now or lives lost"},
	{"strategy", "How clear and well-formed is the plan?", "no plan/improvising", "detailed protocol in place"},
	{"risk", "How much exposure to negative outcomes?", "no downside", "catastrophic/lethal consequences"},
	{"support", "How strong is the evidence/data?", "guessing/no data", "confirmed by multiple reliable sources"},
	{"stability", "How stable are conditions?", "everything falling apart", "calm and predictable"},
}

var secondarySignals = []signalSpec{
	{"irreversibility", "Can this be undone?", "fully reversible", "permanent/lethal"},
	{"stakes", "How much is on the line?", "trivial", "existential"},
	{"time_pressure", "How much does delay cost?", "can wait forever", "seconds matter"},
}

// SignalFields lists the eight numeric signal names in schema order.
var SignalFields = func() []string {
	names := make([]string, 0, len(primarySignals)+len(secondarySignals))
	for _, s := range primarySignals {
		names = append(names, s.Name)
	}
	for _, s := range secondarySignals {
		names = append(names, s.Name)
	}
	return names
}()

// systemPromptTmpl is the fixed instruction sent with every scenario. The
// scenario itself travels as the user message, never inside this text.
var systemPromptTmpl = template.Must(template.New("system").Parse(`You are the NERVA signal extractor. Your job is to read a natural-language scenario and extract five primary numerical signals (each 0.00 to 1.00).

The five primary signals:
{{range .Primary}}- {{.Name}}: {{.Question}} 0 = {{.Low}}, 1 = {{.High}}
{{end}}
Also infer these secondary signals (each 0.00 to 1.00):
{{range .Secondary}}- {{.Name}}: {{.Question}} 0 = {{.Low}}, 1 = {{.High}}
{{end}}
Rules:
- Be conservative. If the scenario is ambiguous, default toward 0.50.
- Never hallucinate details not in the scenario.
- Include a brief "reasoning" string (1-2 sentences) explaining your extraction logic.

Respond with only a single JSON object. No markdown fencing, no backticks, no prose outside the JSON.

Example output:
{"urgency":0.80,"strategy":0.40,"risk":0.85,"support":0.35,"stability":0.60,"irreversibility":0.90,"stakes":0.85,"time_pressure":0.70,"reasoning":"High urgency military scenario with weak intelligence and significant lethal risk."}`))

// SystemPrompt is the rendered instruction shared by every transport binding.
var SystemPrompt = renderSystemPrompt()

func renderSystemPrompt() string {
	var buf bytes.Buffer
	data := struct {
		Primary   []signalSpec
		Secondary []signalSpec
	}{primarySignals, secondarySignals}
	if err := systemPromptTmpl.Execute(&buf, data); err != nil {
		panic("rendering system prompt: " + err.Error())
	}
	return buf.String()
}
