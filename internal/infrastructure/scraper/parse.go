package scraper

import (
	"regexp"
	"strings"

	"github.com/rizzedin/rizzedin-backend/internal/domain"
)

// The profile documents arrive as markdown with "## About me",
// "## Work Experience" and "## Education" sections; entries inside the
// latter two start with "- ### Title at [Name](url)".

var (
	aboutSectionRe = regexp.MustCompile(`## About me\n([\s\S]*?)(?:\n## |$)`)
	workSectionRe  = regexp.MustCompile(`## Work Experience\n([\s\S]*?)(?:\n## |$)`)
	eduSectionRe   = regexp.MustCompile(`## Education\n([\s\S]*?)(?:\n## |$)`)
	entryHeaderRe  = regexp.MustCompile(`^(.+?) at \[([^\]]+)\]\(([^)]+)\)`)
	durationLineRe = regexp.MustCompile(`\n([A-Z][a-z]{2} \d{4}[^\n]*)`)
	locationLineRe = regexp.MustCompile(`(?m)\n([A-Z][a-z]+(?:, [A-Z][a-z]+)?)\s*$`)
)

// Profile is the parsed enrichment payload applied to a user record.
type Profile struct {
	Name       *string
	Image      *string
	Bio        *string
	About      *string
	Experience domain.Experiences
	Education  domain.Educations
}

// ParseProfile extracts all enrichment fields from a fetched document.
func ParseProfile(res *Result) *Profile {
	p := &Profile{
		Experience: ParseExperience(res.Text),
		Education:  ParseEducation(res.Text),
	}

	if res.Author != "" {
		p.Name = &res.Author
	}
	if res.Image != "" {
		p.Image = &res.Image
	}
	if about := parseAbout(res.Text); about != "" {
		p.About = &about
	}
	if bio := parseBio(res.Text); bio != "" {
		p.Bio = &bio
	}

	return p
}

func parseAbout(text string) string {
	if m := aboutSectionRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// parseBio returns the headline, conventionally the line right after the
// "# Name" heading.
func parseBio(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if strings.HasPrefix(line, "# ") && i+1 < len(lines) {
			return strings.TrimSpace(lines[i+1])
		}
	}
	return ""
}

// ParseExperience parses the work experience section into entries.
func ParseExperience(text string) domain.Experiences {
	section := workSectionRe.FindStringSubmatch(text)
	if section == nil {
		return nil
	}

	var out domain.Experiences
	for _, entry := range splitEntries(section[1]) {
		header := entryHeaderRe.FindStringSubmatch(entry)
		if header == nil {
			continue
		}

		exp := domain.Experience{
			Title:   strings.TrimSpace(header[1]),
			Company: strings.TrimSpace(header[2]),
		}

		lines := nonEmptyLines(entry)
		if len(lines) > 1 {
			desc := strings.TrimSpace(lines[1])
			exp.Description = &desc
		}
		if m := durationLineRe.FindStringSubmatch(entry); m != nil {
			dur := strings.TrimSpace(m[1])
			exp.Duration = &dur
		}
		if m := locationLineRe.FindStringSubmatch(entry); m != nil {
			loc := strings.TrimSpace(m[1])
			exp.Location = &loc
		}

		out = append(out, exp)
	}
	return out
}

// ParseEducation parses the education section. A "Degree || Field" header
// splits into degree and field of study.
func ParseEducation(text string) domain.Educations {
	section := eduSectionRe.FindStringSubmatch(text)
	if section == nil {
		return nil
	}

	var out domain.Educations
	for _, entry := range splitEntries(section[1]) {
		header := entryHeaderRe.FindStringSubmatch(entry)
		if header == nil {
			continue
		}

		edu := domain.Education{
			School: strings.TrimSpace(header[2]),
		}

		parts := strings.SplitN(header[1], " || ", 2)
		if degree := strings.TrimSpace(parts[0]); degree != "" {
			edu.Degree = &degree
		}
		if len(parts) == 2 {
			if field := strings.TrimSpace(parts[1]); field != "" {
				edu.FieldOfStudy = &field
			}
		}

		out = append(out, edu)
	}
	return out
}

func splitEntries(section string) []string {
	var entries []string
	for _, e := range strings.Split(section, "- ### ") {
		if strings.TrimSpace(e) != "" {
			entries = append(entries, e)
		}
	}
	return entries
}

func nonEmptyLines(s string) []string {
	var lines []string
	for _, l := range strings.Split(s, "\n") {
		if strings.TrimSpace(l) != "" {
			lines = append(lines, l)
		}
	}
	return lines
}
