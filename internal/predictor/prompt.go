package predictor

import (
	"fmt"
	"strings"

	"github.com/BerylCAtieno/admissions-predictor/internal/models"
)

const (
	notSpecified = "Not specified"
	notProvided  = "Not provided"
)

// BuildPrompt renders the template instructions, the profile and the
// numbered college list.
func BuildPrompt(tmpl *Template, profile *models.StudentProfile, colleges []string) string {
	var parts []string

	parts = append(parts, tmpl.Instructions)

	parts = append(parts, "\nStudent Profile:")
	parts = append(parts, fmt.Sprintf("- Gender: %s", profile.Gender.Or(notSpecified)))
	parts = append(parts, fmt.Sprintf("- US Citizen: %s", profile.Citizen.Or(notSpecified)))
	parts = append(parts, fmt.Sprintf("- Attends a US High School: %s", profile.USSchool.Or(notSpecified)))
	parts = append(parts, fmt.Sprintf("- Cumulative GPA: %s", profile.GPA.Or(notProvided)))
	parts = append(parts, fmt.Sprintf("- GPA by Grade: %s", gradeGPALine(profile)))
	parts = append(parts, fmt.Sprintf("- SAT: %s", profile.SAT.Or(notProvided)))
	parts = append(parts, fmt.Sprintf("- AP Exam Scores: %s", profile.APScores.Join("None reported")))
	parts = append(parts, fmt.Sprintf("- Extracurriculars: %s", profile.ECs.Join("None listed")))
	parts = append(parts, fmt.Sprintf("- Awards: %s", profile.Awards.Join("None listed")))

	parts = append(parts, "\nTarget College List:")
	for i, college := range colleges {
		parts = append(parts, fmt.Sprintf("%d. %s", i+1, college))
	}

	return strings.Join(parts, "\n")
}

func gradeGPALine(profile *models.StudentProfile) string {
	grades := profile.GradeGPAs()
	if len(grades) == 0 {
		return notProvided
	}
	out := make([]string, len(grades))
	for i, g := range grades {
		out[i] = fmt.Sprintf("%s grade %s", g.Grade, g.GPA)
	}
	return strings.Join(out, ", ")
}
