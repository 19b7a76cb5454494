// Package prompt assembles chat completion prompts from retrieved sources.
package prompt

import (
	"strings"

	"github.com/kailas-cloud/docqa/internal/domain"
)

// SystemInstruction is the system message sent with every answer request.
// It constrains the model to the retrieved sources and standardizes citations.
const SystemInstruction = `You are a helpful AI assistant. Use the following pieces of context to answer the Question at the end.
If you don't know the answer, just say you don't know. DO NOT try to make up an answer.
If the question is not related to the context, politely respond that you are tuned to only answer questions that are related to the context. Be brief in your answers.
Answer ONLY with the facts listed in the list of Sources and Chat History below.
For tabular information return it as an html table. Do not return markdown format.
Each Source and Chat History has a name followed by colon and the actual information, always include the source name for each fact you use in the response. Use square brackets to reference the source, e.g. [coca-cola-2015.pdf]. Don't combine sources, list each source separately, e.g. [coca-cola-2018.pdf][pepsi-2020.pdf].
You can also use Chat History provided after the sources, to answer question.`

// Assemble builds the user message: each source as a "filename:: content"
// line, then the chat history, then the question. Empty sources and history
// keep their section headers so the model sees a stable layout.
func Assemble(sources []domain.Source, chatHistory, question string) string {
	lines := make([]string, 0, len(sources))
	for _, s := range sources {
		lines = append(lines, s.Filename+":: "+s.Content+"\n")
	}

	var b strings.Builder
	b.WriteString("Sources:\n")
	b.WriteString(strings.Join(lines, "\n"))
	b.WriteString("\n\nChat History:\n")
	b.WriteString(chatHistory)
	b.WriteString("\n\nQuestion:\n")
	b.WriteString(question)
	return b.String()
}
