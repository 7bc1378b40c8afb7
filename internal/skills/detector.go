// Package skills detects skill labels in resume text. The label list is
// policy data kept out of the interview engine; swap it by constructing a
// detector with a different list.
package skills

import (
	"regexp"
	"strings"
	"unicode"
)

// DefaultLabels is the stock label list, in detection priority order.
var DefaultLabels = []string{
	"Python", "Java", "JavaScript", "SQL", "Machine Learning",
	"Data Science", "Django", "React", "Node.js", "HTML", "CSS",
	"C++", "C#", "Ruby", "Kotlin", "TypeScript", "Angular",
	"Flask", "Spring Boot", "AWS", "Azure", "Google Cloud", "Docker",
	"Kubernetes", "Git", "Jenkins", "Linux", "REST API", "GraphQL",
	"jQuery", "Next.js", "Express.js", "MongoDB", "Flutter",
	"React Native", "Hadoop", "JIRA", "Salesforce", "Power BI",
	"Bash", "Shell Scripting", "Big Data", "Data Analytics",
	"Data Visualization", "MATLAB", "Scikit-learn", "NLTK", "OpenCV",
	"Apache", "FastAPI",
}

type pattern struct {
	label string
	re    *regexp.Regexp
}

// Detector matches a fixed, ordered label list against free text. It is
// pure and safe for concurrent use.
type Detector struct {
	patterns []pattern
}

// NewDetector compiles a detector for DefaultLabels.
func NewDetector() *Detector {
	return NewDetectorWithLabels(DefaultLabels)
}

// NewDetectorWithLabels compiles a detector for the given labels, keeping
// their order. Blank labels are ignored.
func NewDetectorWithLabels(labels []string) *Detector {
	patterns := make([]pattern, 0, len(labels))
	for _, label := range labels {
		label = strings.TrimSpace(label)
		if label == "" {
			continue
		}
		patterns = append(patterns, pattern{label: label, re: compileLabel(label)})
	}
	return &Detector{patterns: patterns}
}

// Detect returns the labels present in the text, unique, in the detector's
// label order.
func (d *Detector) Detect(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var found []string
	for _, p := range d.patterns {
		if p.re.MatchString(text) {
			found = append(found, p.label)
		}
	}
	return found
}

// compileLabel builds a case-insensitive whole-word pattern. Word boundaries
// only apply next to word characters, so labels ending in symbols ("C++",
// "C#") keep a boundary on the letter side only.
func compileLabel(label string) *regexp.Regexp {
	expr := regexp.QuoteMeta(label)

	runes := []rune(label)
	if isWordRune(runes[0]) {
		expr = `\b` + expr
	}
	if isWordRune(runes[len(runes)-1]) {
		expr += `\b`
	}

	return regexp.MustCompile(`(?i)` + expr)
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
