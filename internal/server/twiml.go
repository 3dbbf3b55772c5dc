package server

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
)

const (
	twimlVoice = "Polly.Joanna"

	callDisclaimer = "Hello. This is an automated summary call from the vitals monitoring system. " +
		"This is not a diagnosis or treatment recommendation."
	callClosing = "This concludes the automated vitals summary. Thank you."
)

// voiceTwiML renders the call content returned to the provider when a call
// is answered: disclaimer, summary, closing, separated by short pauses.
func voiceTwiML(summaryText string) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n<Response>")
	writeSay(&b, callDisclaimer)
	b.WriteString(`<Pause length="1"/>`)
	writeSay(&b, summaryText)
	b.WriteString(`<Pause length="1"/>`)
	writeSay(&b, callClosing)
	b.WriteString("</Response>")
	return b.String()
}

// errorTwiML renders a single spoken error message.
func errorTwiML(message string) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n<Response>")
	writeSay(&b, message)
	b.WriteString("</Response>")
	return b.String()
}

func writeSay(b *strings.Builder, text string) {
	fmt.Fprintf(b, `<Say voice="%s">%s</Say>`, twimlVoice, xmlEscape(text))
}

func xmlEscape(text string) string {
	var buf bytes.Buffer
	// EscapeText only fails on invalid UTF-8, which summaries never contain
	_ = xml.EscapeText(&buf, []byte(text))
	return buf.String()
}
