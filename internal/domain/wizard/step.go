package wizard

// Step identifies one screen of the wizard.
type Step string

const (
	StepStart    Step = "inicio"
	StepName     Step = "nome"
	StepSubject  Step = "disciplina"
	StepMonth    Step = "mes"
	StepPeriods  Step = "periodos"
	StepPlanning Step = "planejamento"
	StepWeek1    Step = "semana1"
	StepWeek2    Step = "semana2"
	StepWeek3    Step = "semana3"
	StepWeek4    Step = "semana4"
	StepNotes    Step = "observacoes"
	StepFinal    Step = "final"
)
