package types

// SkillTargets is the weighted list of skills a job description asks for, most important first
type SkillTargets struct {
	Skills []Skill `json:"skills"`
}

// Skill is one target skill with its weight and where it was found
type Skill struct {
	Name   string  `json:"name"`
	Weight float64 `json:"weight"`
	Source string  `json:"source"`
	Count  int     `json:"count"` // mentions in the whole document
}

// Names returns the skill names in target order
func (t *SkillTargets) Names() []string {
	if t == nil {
		return []string{}
	}
	names := make([]string, len(t.Skills))
	for i, s := range t.Skills {
		names[i] = s.Name
	}
	return names
}
