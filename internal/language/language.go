package language

import (
	"strings"

	xlang "golang.org/x/text/language"
)

type entry struct {
	code    string   // ISO 639-1 (2-letter), what whisper expects
	display string   // Human-readable name
	words   []string // Full word forms (e.g. "english")
}

// Languages whisper handles well; anything else falls through to BCP-47
// parsing so regional tags like pt-BR still resolve.
var languages = []entry{
	{"en", "English", []string{"english"}},
	{"es", "Spanish", []string{"spanish"}},
	{"fr", "French", []string{"french"}},
	{"de", "German", []string{"german"}},
	{"it", "Italian", []string{"italian"}},
	{"pt", "Portuguese", []string{"portuguese"}},
	{"nl", "Dutch", []string{"dutch"}},
	{"ja", "Japanese", []string{"japanese"}},
	{"ko", "Korean", []string{"korean"}},
	{"zh", "Chinese", []string{"chinese", "mandarin"}},
	{"ru", "Russian", []string{"russian"}},
	{"ar", "Arabic", []string{"arabic"}},
	{"hi", "Hindi", []string{"hindi"}},
	{"pl", "Polish", []string{"polish"}},
	{"sv", "Swedish", []string{"swedish"}},
	{"da", "Danish", []string{"danish"}},
	{"no", "Norwegian", []string{"norwegian"}},
	{"fi", "Finnish", []string{"finnish"}},
	{"tr", "Turkish", []string{"turkish"}},
	{"uk", "Ukrainian", []string{"ukrainian"}},
}

var (
	byCode map[string]*entry
	byWord map[string]*entry
)

func init() {
	byCode = make(map[string]*entry, len(languages))
	byWord = make(map[string]*entry, len(languages)*2)
	for i := range languages {
		e := &languages[i]
		byCode[e.code] = e
		for _, w := range e.words {
			byWord[w] = e
		}
	}
}

// Normalize converts a user-supplied language identifier to the two-letter
// code whisper expects. It accepts two-letter codes, English word forms, and
// BCP-47 tags ("en-US" -> "en"). The second return reports recognition.
func Normalize(input string) (string, bool) {
	cleaned := strings.ToLower(strings.TrimSpace(input))
	if cleaned == "" {
		return "", false
	}
	if e, ok := byCode[cleaned]; ok {
		return e.code, true
	}
	if e, ok := byWord[cleaned]; ok {
		return e.code, true
	}
	tag, err := xlang.Parse(cleaned)
	if err != nil {
		return "", false
	}
	base, confidence := tag.Base()
	if confidence == xlang.No {
		return "", false
	}
	return base.String(), true
}

// DisplayName returns a human-readable name for a normalized code. Falls
// back to the uppercased code for languages outside the table.
func DisplayName(code string) string {
	cleaned := strings.ToLower(strings.TrimSpace(code))
	if cleaned == "" {
		return "Unknown"
	}
	if e, ok := byCode[cleaned]; ok {
		return e.display
	}
	return strings.ToUpper(cleaned)
}
