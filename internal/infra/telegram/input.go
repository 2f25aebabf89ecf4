package telegram

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"lesson_planning_bot/internal/domain/planning"
	"lesson_planning_bot/internal/domain/wizard"
)

var errUnknownCommand = fmt.Errorf("unknown command")

type periodCommandKind int

const (
	periodAdd periodCommandKind = iota
	periodRemove
	periodEdit
)

// periodCommand is a parsed period-step message. Index is zero-based.
type periodCommand struct {
	Kind   periodCommandKind
	Index  int
	Period planning.Period
}

// parsePeriodCommand reads "MM/AAAA", "remover N" or "editar N MM/AAAA".
func parsePeriodCommand(text string) (periodCommand, error) {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(text)))
	if len(fields) == 0 {
		return periodCommand{}, errUnknownCommand
	}

	switch fields[0] {
	case "remover":
		if len(fields) != 2 {
			return periodCommand{}, errUnknownCommand
		}
		n, err := strconv.Atoi(fields[1])
		if err != nil {
			return periodCommand{}, errUnknownCommand
		}
		return periodCommand{Kind: periodRemove, Index: n - 1}, nil
	case "editar":
		if len(fields) != 3 {
			return periodCommand{}, errUnknownCommand
		}
		n, err := strconv.Atoi(fields[1])
		if err != nil {
			return periodCommand{}, errUnknownCommand
		}
		p, err := planning.ParsePeriod(fields[2])
		if err != nil {
			return periodCommand{}, err
		}
		return periodCommand{Kind: periodEdit, Index: n - 1, Period: p}, nil
	}

	if len(fields) != 1 {
		return periodCommand{}, errUnknownCommand
	}
	p, err := planning.ParsePeriod(fields[0])
	if err != nil {
		return periodCommand{}, err
	}
	return periodCommand{Kind: periodAdd, Period: p}, nil
}

// parseGoto reads "ir P [S]" into zero-based indexes. week is -1 when omitted.
func parseGoto(text string) (period, week int, ok bool) {
	fields := strings.Fields(strings.ToLower(text))
	if len(fields) < 2 || len(fields) > 3 || fields[0] != "ir" {
		return 0, 0, false
	}
	p, err := strconv.Atoi(fields[1])
	if err != nil || p < 1 {
		return 0, 0, false
	}
	week = -1
	if len(fields) == 3 {
		w, err := strconv.Atoi(fields[2])
		if err != nil || w < 1 || w > len(planning.Weeks) {
			return 0, 0, false
		}
		week = w - 1
	}
	return p - 1, week, true
}

// parseObservation reads "obs: texto".
func parseObservation(text string) (string, bool) {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) < 4 || !strings.EqualFold(trimmed[:4], "obs:") {
		return "", false
	}
	return strings.TrimSpace(trimmed[4:]), true
}

func isClearAttachment(text string) bool {
	return strings.EqualFold(strings.TrimSpace(text), "remover arquivo")
}

var allowedExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".pdf":  "application/pdf",
}

// attachmentMime returns the content type for an accepted file name.
func attachmentMime(name string) (string, bool) {
	mime, ok := allowedExtensions[strings.ToLower(filepath.Ext(name))]
	return mime, ok
}

// weekOfStep maps the single-week steps to their week.
func weekOfStep(s wizard.Step) (planning.WeekKey, bool) {
	switch s {
	case wizard.StepWeek1:
		return planning.Week1, true
	case wizard.StepWeek2:
		return planning.Week2, true
	case wizard.StepWeek3:
		return planning.Week3, true
	case wizard.StepWeek4:
		return planning.Week4, true
	}
	return "", false
}

func progressBar(fraction float64, width int) string {
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	filled := int(fraction*float64(width) + 0.5)
	return strings.Repeat("▓", filled) + strings.Repeat("░", width-filled)
}
