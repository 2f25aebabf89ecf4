// internal/app/message.go
package app

import (
	"fmt"
	"strings"

	"lesson_planning_bot/internal/domain/planning"
)

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

// ComposeMessage renders the chat message for one period of the form.
func ComposeMessage(f *planning.Form, pp *planning.PeriodPlan) string {
	tag := pp.Period().Tag()

	var b strings.Builder
	b.WriteString("🎯 # Formulário de Planejamento de Conteúdo!\n\n")
	fmt.Fprintf(&b, "👤 **Nome:** %s\n\n", f.RespondentName)
	fmt.Fprintf(&b, "🏫 **Ano Letivo:** %s\n\n", orDefault(f.AcademicYear, "Não informado"))
	fmt.Fprintf(&b, "🎓 **Série:** %s\n\n", orDefault(f.GradeLevel, "Não informada"))
	fmt.Fprintf(&b, "📚 **Disciplina:** %s\n\n", f.Subject.Label())
	fmt.Fprintf(&b, "🗓️ **Mês:** %s\n\n", tag)

	for i, w := range pp.Weeks {
		obs := "Nenhuma"
		if strings.TrimSpace(w.Observation) != "" {
			obs = fmt.Sprintf("[%s] %s", tag, w.Observation)
		}
		file := "Nenhum"
		if w.AttachedFile != nil {
			file = w.AttachedFile.Name
		}
		link := "N/A"
		if w.UploadedURL != "" {
			link = fmt.Sprintf("[Download](%s)", w.UploadedURL)
		}

		fmt.Fprintf(&b, "📅 **Semana %d:**\n", i+1)
		fmt.Fprintf(&b, "   • Conteúdos: %s\n", w.ContentText)
		fmt.Fprintf(&b, "   • Observações: %s\n", obs)
		fmt.Fprintf(&b, "   • Arquivo: %s\n", file)
		fmt.Fprintf(&b, "   • Link: %s\n\n", link)
	}

	fmt.Fprintf(&b, "📝 **Observações Gerais:** %s\n\n", orDefault(pp.GeneralNotes, "Nenhuma"))
	b.WriteString("🚀 **Status:** Formulário de planejamento completo enviado com sucesso!")
	return b.String()
}
