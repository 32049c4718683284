package a2a

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/BerylCAtieno/nutrigenius-agent/internal/planner"
)

type commandKind int

const (
	commandUnknown commandKind = iota
	commandGenerate
	commandSwap
	commandShow
)

func (k commandKind) String() string {
	switch k {
	case commandGenerate:
		return "generate"
	case commandSwap:
		return "swap"
	case commandShow:
		return "show"
	default:
		return "unknown"
	}
}

type command struct {
	kind     commandKind
	request  planner.RawRequest
	foodItem string
}

// structured input sent as a data part
type dataInput struct {
	planner.RawRequest
	FoodItem string `json:"foodItem"`
}

func (d dataInput) empty() bool {
	return d.DietaryRestrictions == "" && d.HealthGoals == "" && d.Preferences == "" &&
		d.MealCount == nil && d.FoodItem == ""
}

var fieldAliases = map[string]string{
	"dietary":              "dietary",
	"diet":                 "dietary",
	"restrictions":         "dietary",
	"dietary restrictions": "dietary",
	"goals":                "goals",
	"goal":                 "goals",
	"health goals":         "goals",
	"preferences":          "preferences",
	"prefs":                "preferences",
	"food preferences":     "preferences",
	"meals":                "meals",
	"meal count":           "meals",
	"meals per day":        "meals",
	"swap":                 "swap",
	"food item":            "swap",
}

var (
	pairSeparator = regexp.MustCompile(`[;\n]+`)
	htmlTag       = regexp.MustCompile(`</?[a-zA-Z][^>]*>`)
	showPattern   = regexp.MustCompile(`(?i)^(show|get|view|current)( my| the)?( current)? (meal )?plan\.?$`)
)

// parseCommand reads "key: value" pairs separated by semicolons or newlines.
// Structured data takes precedence over text.
func parseCommand(text string, data *dataInput) command {
	if data != nil {
		if strings.TrimSpace(data.FoodItem) != "" {
			return command{kind: commandSwap, foodItem: data.FoodItem}
		}
		return command{kind: commandGenerate, request: data.RawRequest}
	}

	text = strings.TrimSpace(text)
	if showPattern.MatchString(text) {
		return command{kind: commandShow}
	}

	fields := make(map[string]string)
	for _, pair := range pairSeparator.Split(text, -1) {
		parts := strings.SplitN(pair, ":", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(parts[0]))
		if canonical, ok := fieldAliases[key]; ok {
			fields[canonical] = strings.TrimSpace(parts[1])
		}
	}

	if item, ok := fields["swap"]; ok {
		return command{kind: commandSwap, foodItem: item}
	}
	if len(fields) == 0 {
		return command{kind: commandUnknown}
	}

	cmd := command{
		kind: commandGenerate,
		request: planner.RawRequest{
			DietaryRestrictions: fields["dietary"],
			HealthGoals:         fields["goals"],
			Preferences:         fields["preferences"],
		},
	}
	if meals, ok := fields["meals"]; ok {
		cmd.request.MealCount = meals
	}
	return cmd
}

// extractInput collects the user's text from text parts and the latest user
// entry of any history data part. A data part holding an object is decoded
// as structured input.
func extractInput(msg A2AMessage) (string, *dataInput) {
	var texts []string
	var structured *dataInput

	for _, part := range msg.Parts {
		switch part.Kind {
		case "text":
			if t := cleanText(part.Text); t != "" {
				texts = append(texts, t)
			}
		case "data":
			if part.Data == nil {
				continue
			}
			raw, err := json.Marshal(part.Data)
			if err != nil {
				continue
			}

			var history []map[string]any
			if err := json.Unmarshal(raw, &history); err == nil {
				if t := latestHistoryText(history); t != "" {
					texts = append(texts, t)
				}
				continue
			}

			var in dataInput
			if err := json.Unmarshal(raw, &in); err == nil && !in.empty() {
				structured = &in
			}
		}
	}

	return strings.TrimSpace(strings.Join(texts, "\n")), structured
}

func latestHistoryText(history []map[string]any) string {
	for i := len(history) - 1; i >= 0; i-- {
		item := history[i]
		if kind, _ := item["kind"].(string); kind != "text" {
			continue
		}
		text, _ := item["text"].(string)
		text = cleanText(text)

		// skip progress chatter echoed back by clients
		lower := strings.ToLower(text)
		if text == "" || strings.Contains(lower, "generating") || strings.Trim(text, ".") == "" {
			continue
		}
		return text
	}
	return ""
}

func cleanText(s string) string {
	return strings.TrimSpace(htmlTag.ReplaceAllString(s, ""))
}
