package vision

import (
	"Menu-Builder-Backend/domain"
	"encoding/json"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ParseMenu turns free-form model output into a validated menu. The first
// decodable JSON object anywhere in the text is used, so prose and markdown
// fences around it are tolerated.
func ParseMenu(text string, validate *validator.Validate) (domain.ExtractedMenu, error) {
	raw, ok := firstJSONObject(text)
	if !ok {
		return domain.ExtractedMenu{}, &domain.MalformedResponseError{Reason: "no JSON object found in model response"}
	}

	var menu domain.ExtractedMenu
	if err := json.Unmarshal(raw, &menu); err != nil {
		return domain.ExtractedMenu{}, &domain.MalformedResponseError{Reason: "JSON does not match menu schema", Err: err}
	}

	menu.Normalize()
	if err := validate.Struct(menu); err != nil {
		return domain.ExtractedMenu{}, &domain.MalformedResponseError{Reason: "menu failed validation", Err: err}
	}

	return menu, nil
}

func firstJSONObject(text string) (json.RawMessage, bool) {
	for i := strings.IndexByte(text, '{'); i >= 0; {
		var raw json.RawMessage
		dec := json.NewDecoder(strings.NewReader(text[i:]))
		if err := dec.Decode(&raw); err == nil {
			return raw, true
		}

		next := strings.IndexByte(text[i+1:], '{')
		if next < 0 {
			break
		}
		i += next + 1
	}
	return nil, false
}
