package planning

// Subject is the discipline a plan is written for.
type Subject string

const (
	SubjectMath       Subject = "matematica"
	SubjectPortuguese Subject = "portugues"
	SubjectHistory    Subject = "historia"
	SubjectGeography  Subject = "geografia"
	SubjectScience    Subject = "ciencias"
)

// Subjects lists the selectable disciplines in display order.
var Subjects = []Subject{
	SubjectMath,
	SubjectPortuguese,
	SubjectHistory,
	SubjectGeography,
	SubjectScience,
}

var subjectLabels = map[Subject]string{
	SubjectMath:       "Matemática",
	SubjectPortuguese: "Português",
	SubjectHistory:    "História",
	SubjectGeography:  "Geografia",
	SubjectScience:    "Ciências",
}

var subjectIcons = map[Subject]string{
	SubjectMath:       "➗",
	SubjectPortuguese: "✍️",
	SubjectHistory:    "📜",
	SubjectGeography:  "🌍",
	SubjectScience:    "🔬",
}

// Valid reports whether s is one of the five known subjects.
func (s Subject) Valid() bool {
	_, ok := subjectLabels[s]
	return ok
}

// Label returns the human readable name, or the raw value for unknown subjects.
func (s Subject) Label() string {
	if l, ok := subjectLabels[s]; ok {
		return l
	}
	return string(s)
}

// ButtonLabel is the label with its emoji, used on the chat keyboard.
func (s Subject) ButtonLabel() string {
	if icon, ok := subjectIcons[s]; ok {
		return icon + " " + s.Label()
	}
	return s.Label()
}
