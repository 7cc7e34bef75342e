package ai

import "context"

// Summarizer genera el resumen ejecutivo del reporte del barangay.
// La implementación real llama a un LLM externo; puede no estar
// configurada (IsConfigured() == false) y el caller degrada a texto plano.
type Summarizer interface {
	IsConfigured() bool
	Summarize(ctx context.Context, prompt string) (string, error)
}
