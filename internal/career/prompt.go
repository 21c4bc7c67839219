package career

import (
	"fmt"
	"strings"

	"mentorpath/internal/model"
)

const responseShape = `{
  "title": "Career Path Title",
  "description": "Overview of the career path",
  "steps": [
    {
      "id": "step1",
      "title": "Step 1 Title",
      "description": "Detailed description of this career step",
      "resources": [
        {
          "id": "resource1",
          "title": "Resource Title",
          "type": "course/book/website/other",
          "link": "optional link",
          "description": "Brief description of this resource"
        }
      ],
      "timeframe": "Estimated time to complete this step"
    }
  ],
  "skills": ["Skill 1", "Skill 2"],
  "potentialRoles": ["Role 1", "Role 2"],
  "estimatedTimeline": "Overall estimated timeline"
}`

// BuildPrompt renders the profile into the advisor prompt. The output only
// depends on the profile.
func BuildPrompt(profile model.Profile) string {
	var sb strings.Builder
	sb.WriteString("As a career advisor, create a detailed career path based on the following information:\n\n")
	sb.WriteString(fmt.Sprintf("Education: %s\n", profile.Education))
	sb.WriteString(fmt.Sprintf("Experience: %s\n", strings.Join(profile.Experience, ", ")))
	sb.WriteString(fmt.Sprintf("Skills: %s\n", strings.Join(profile.Skills, ", ")))
	sb.WriteString(fmt.Sprintf("Interests: %s\n", strings.Join(profile.Interests, ", ")))
	sb.WriteString(fmt.Sprintf("Career Goals: %s\n", profile.Goals))
	sb.WriteString(fmt.Sprintf("Preferred Work Style: %s\n\n", profile.WorkStyle))
	sb.WriteString("Please provide a comprehensive career path with the following structure in JSON format:\n\n")
	sb.WriteString(responseShape)
	sb.WriteString("\n\nFocus on providing realistic, actionable advice that aligns with the person's background and goals.\n")
	sb.WriteString("Return ONLY the JSON object, no markdown, no explanation.\n")
	return sb.String()
}

// CleanProfile trims every field and drops blank list entries.
func CleanProfile(profile model.Profile) model.Profile {
	return model.Profile{
		Education:  strings.TrimSpace(profile.Education),
		Experience: cleanList(profile.Experience),
		Skills:     cleanList(profile.Skills),
		Interests:  cleanList(profile.Interests),
		Goals:      strings.TrimSpace(profile.Goals),
		WorkStyle:  strings.TrimSpace(profile.WorkStyle),
	}
}

func cleanList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
