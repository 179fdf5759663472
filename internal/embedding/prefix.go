package embedding

import "strings"

// BGEQueryInstruction is prepended to queries for BGE models
const BGEQueryInstruction = "Represent this sentence for searching relevant passages: "

// ApplyPrefix adds the input convention a model family expects.
// E5 models need "query: " or "passage: " on every input; BGE models only instruct queries.
func ApplyPrefix(info ModelInfo, text string, isQuery bool) string {
	switch {
	case isE5(info):
		if isQuery {
			return "query: " + text
		}
		return "passage: " + text
	case info.Family == FamilyBGE && isQuery:
		return BGEQueryInstruction + text
	default:
		return text
	}
}

func isE5(info ModelInfo) bool {
	return info.Family == FamilyE5 || strings.Contains(strings.ToLower(info.Name), "e5")
}
