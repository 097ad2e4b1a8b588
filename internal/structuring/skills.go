package structuring

import "strings"

// maxSkillLength is the longest bare line still taken as a single skill.
const maxSkillLength = 50

// parseSkills reads comma lists, bullets and short lines. Longer prose is dropped.
func parseSkills(lines []string) []string {
	skills := []string{}
	rules := []lineRule{
		{
			name:  "list",
			match: func(line string) bool { return strings.Contains(line, ",") },
			apply: func(line string) {
				if isBullet(line) {
					line = stripBullet(line)
				}
				for _, item := range strings.Split(line, ",") {
					if item = strings.TrimSpace(item); item != "" {
						skills = append(skills, item)
					}
				}
			},
		},
		{
			name:  "bullet",
			match: isBullet,
			apply: func(line string) {
				if item := stripBullet(line); item != "" {
					skills = append(skills, item)
				}
			},
		},
		{
			name:  "single",
			match: func(line string) bool { return runeLen(line) < maxSkillLength },
			apply: func(line string) { skills = append(skills, line) },
		},
	}

	for _, line := range bodyLines(lines) {
		applyRules(rules, line)
	}
	return skills
}
