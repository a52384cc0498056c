package service

import (
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/cetprep/cetprep-backend/internal/model"
)

var (
	questionPrefixRe = regexp.MustCompile(`^Q[0-9]+\.\s*`)
	optionLineRe     = regexp.MustCompile(`^[A-D]\)\s`)
)

// ParseManualQuestions parses the plain-text authoring format into questions.
//
// Questions are separated by "---" lines. Within a block the first line is
// the question text (an optional "Q<n>." numbering prefix is stripped), lines
// shaped "A) ..." through "D) ..." are options, and "Answer:" / "Section:"
// lines (case-insensitive) carry the key and the subject grouping. The answer
// value is matched against options by prefix, so "Answer: 7" selects the
// option "7" and an author can also paste the full option text. A section
// value other than exactly "Mathematics" falls back to Physics & Chemistry.
//
// The format is forgiving: blocks with missing pieces still produce a
// question with empty fields rather than an error.
func ParseManualQuestions(text string) []model.Question {
	var questions []model.Question

	for _, block := range strings.Split(text, "---") {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}

		lines := strings.Split(block, "\n")
		questionText := questionPrefixRe.ReplaceAllString(strings.TrimSpace(lines[0]), "")
		lines = lines[1:]

		var (
			options    []string
			rawAnswer  string
			rawSection string
		)
		for _, line := range lines {
			switch {
			case optionLineRe.MatchString(line):
				options = append(options, strings.TrimSpace(line[3:]))
			case hasFoldPrefix(line, "answer:") && rawAnswer == "":
				rawAnswer = labelValue(line)
			case hasFoldPrefix(line, "section:") && rawSection == "":
				rawSection = labelValue(line)
			}
		}

		questions = append(questions, model.Question{
			ID:            uuid.New(),
			Text:          questionText,
			Options:       options,
			CorrectAnswer: resolveAnswer(options, rawAnswer),
			Section:       model.ParseSection(rawSection),
		})
	}

	return questions
}

// resolveAnswer maps the raw "Answer:" value onto the option it abbreviates.
// The first option the value is a prefix of wins; with no match the raw
// value is kept as-is.
func resolveAnswer(options []string, raw string) string {
	if raw == "" {
		return ""
	}
	for _, o := range options {
		if strings.HasPrefix(o, raw) {
			return o
		}
	}
	return raw
}

func hasFoldPrefix(line, prefix string) bool {
	return strings.HasPrefix(strings.ToLower(line), prefix)
}

// labelValue extracts the value of a "Label: value" line. Only the segment
// between the first and second colon counts, mirroring the authoring format.
func labelValue(line string) string {
	parts := strings.Split(line, ":")
	if len(parts) < 2 {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
